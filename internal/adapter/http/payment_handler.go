package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/usecase/settlement"
)

type PaymentHandler struct{ uc *settlement.Usecase }

func NewPaymentHandler(uc *settlement.Usecase) *PaymentHandler { return &PaymentHandler{uc: uc} }

type recordPaymentReq struct {
	AmountMinor int64  `json:"amount_minor" validate:"required,gt=0"`
	PaidAt      string `json:"paid_at" validate:"required"`
	Method      string `json:"method" validate:"required,paymethod"`
}

// RecordPayment settles a lender-confirmed receipt against the loan's
// outstanding installments in FIFO order.
func (h *PaymentHandler) RecordPayment(c echo.Context) error {
	var req recordPaymentReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	paidAt, err := time.Parse(time.RFC3339, req.PaidAt)
	if err != nil {
		return invalid(c, err)
	}
	res, err := h.uc.ApplyPayment(c.Request().Context(), c.Param("loan_id"), req.AmountMinor, paidAt, req.Method)
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, res)
}
