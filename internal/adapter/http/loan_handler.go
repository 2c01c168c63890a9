package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	loanDomain "peerlend-backend/internal/domain/loan"
	"peerlend-backend/internal/usecase/loan"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createOfferReq struct {
	BorrowerID       string  `json:"borrower_id" validate:"required,hex32"`
	LenderID         string  `json:"lender_id" validate:"required,hex32"`
	PrincipalMinor   int64   `json:"principal_minor" validate:"required,gt=0"`
	BaseRatePercent  float64 `json:"base_rate_percent" validate:"gte=0,dec2"`
	ExtraRatePercent float64 `json:"extra_rate_percent" validate:"gte=0,dec2"`
	PaymentType      string  `json:"payment_type" validate:"required,paytype"`
	InstallmentCount int     `json:"installment_count" validate:"gte=0,lte=60"`
	Currency         string  `json:"currency" validate:"required,len=3"`
}

func (h *LoanHandler) CreateOffer(c echo.Context) error {
	var req createOfferReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.CreateOffer(c.Request().Context(), loan.CreateOfferInput{
		BorrowerID:       req.BorrowerID,
		LenderID:         req.LenderID,
		PrincipalMinor:   req.PrincipalMinor,
		BaseRatePercent:  req.BaseRatePercent,
		ExtraRatePercent: req.ExtraRatePercent,
		PaymentType:      req.PaymentType,
		InstallmentCount: req.InstallmentCount,
		Currency:         req.Currency,
	})
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetOffer(c echo.Context) error {
	dto, err := h.uc.GetOffer(c.Request().Context(), c.Param("offer_id"))
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type acceptOfferReq struct {
	CountryCode string `json:"country_code" validate:"required,len=2"`
}

func (h *LoanHandler) AcceptOffer(c echo.Context) error {
	var req acceptOfferReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	borrowerID := c.Request().Header.Get("X-Actor-Id")
	dto, err := h.uc.AcceptOffer(c.Request().Context(), c.Param("offer_id"), borrowerID, req.CountryCode)
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type signReq struct {
	Party string `json:"party" validate:"required,oneof=borrower lender"`
}

func (h *LoanHandler) Sign(c echo.Context) error {
	var req signReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.Sign(c.Request().Context(), c.Param("loan_id"), loanDomain.Party(req.Party))
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Disburse(c echo.Context) error {
	dto, err := h.uc.Disburse(c.Request().Context(), c.Param("loan_id"), time.Now().UTC())
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Cancel(c echo.Context) error {
	dto, err := h.uc.Cancel(c.Request().Context(), c.Param("loan_id"))
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type markDefaultReq struct {
	Reason    string `json:"reason" validate:"required"`
	ProofHash string `json:"proof_hash" validate:"required"`
}

func (h *LoanHandler) MarkDefaulted(c echo.Context) error {
	var req markDefaultReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.MarkDefaulted(c.Request().Context(), c.Param("loan_id"), req.Reason, req.ProofHash)
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
