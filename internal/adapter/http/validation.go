package http

import (
	"math"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Reusable error payload
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
type ErrorResponse struct {
	Error   string       `json:"error"`
	Details []FieldError `json:"details,omitempty"`
}

var reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// all entity ids = 32-char lowercase hex
	_ = v.RegisterValidation("hex32", func(fl validator.FieldLevel) bool {
		return reHex32.MatchString(fl.Field().String())
	})
	// rate percentages carry at most 2 decimal places
	_ = v.RegisterValidation("dec2", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return math.Abs(f-(math.Round(f*100)/100)) < 1e-9
	})
	// payment shape of an offer
	_ = v.RegisterValidation("paytype", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "once_off" || s == "installments"
	})
	// out-of-band payment channel
	_ = v.RegisterValidation("paymethod", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "bank_transfer", "mobile_money", "cash", "other":
			return true
		}
		return false
	})
	// delinquency flag severity
	_ = v.RegisterValidation("flagtype", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "LATE_1_7", "LATE_8_30", "LATE_31_60", "DEFAULT", "CLEARED":
			return true
		}
		return false
	})

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// Map validator.ValidationErrors → []FieldError with readable messages.
func ToFieldErrors(err error) []FieldError {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		field := e.Field()
		switch e.Tag() {
		case "required":
			out = append(out, FieldError{Field: field, Message: "is required"})
		case "hex32":
			out = append(out, FieldError{Field: field, Message: "must be 32-char lowercase hex"})
		case "dec2":
			out = append(out, FieldError{Field: field, Message: "must have at most 2 decimal places"})
		case "paytype":
			out = append(out, FieldError{Field: field, Message: "must be once_off or installments"})
		case "paymethod":
			out = append(out, FieldError{Field: field, Message: "must be bank_transfer, mobile_money, cash or other"})
		case "flagtype":
			out = append(out, FieldError{Field: field, Message: "is not a known flag type"})
		case "gt":
			out = append(out, FieldError{Field: field, Message: "must be greater than " + e.Param()})
		case "gte":
			out = append(out, FieldError{Field: field, Message: "must be greater than or equal to " + e.Param()})
		case "lte":
			out = append(out, FieldError{Field: field, Message: "must be less than or equal to " + e.Param()})
		default:
			out = append(out, FieldError{Field: field, Message: e.Tag() + " validation failed"})
		}
	}
	return out
}
