package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/usecase/proof"
)

type ProofHandler struct{ uc *proof.Usecase }

func NewProofHandler(uc *proof.Usecase) *ProofHandler { return &ProofHandler{uc: uc} }

type submitProofReq struct {
	AmountMinor   int64  `json:"amount_minor" validate:"required,gt=0"`
	PaymentDate   string `json:"payment_date" validate:"required"`
	Method        string `json:"method" validate:"required,paymethod"`
	Reference     string `json:"reference"`
	AttachmentRef string `json:"attachment_ref"`
}

func (h *ProofHandler) Submit(c echo.Context) error {
	var req submitProofReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	paymentDate, err := time.Parse(time.RFC3339, req.PaymentDate)
	if err != nil {
		return invalid(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), proof.SubmitInput{
		LoanID:        c.Param("loan_id"),
		AmountMinor:   req.AmountMinor,
		PaymentDate:   paymentDate,
		Method:        req.Method,
		Reference:     req.Reference,
		AttachmentRef: req.AttachmentRef,
	})
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ProofHandler) Get(c echo.Context) error {
	dto, err := h.uc.Get(c.Request().Context(), c.Param("proof_id"))
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ProofHandler) Approve(c echo.Context) error {
	reviewerID := c.Request().Header.Get("X-Actor-Id")
	dto, err := h.uc.Approve(c.Request().Context(), c.Param("proof_id"), reviewerID)
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectProofReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *ProofHandler) Reject(c echo.Context) error {
	var req rejectProofReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	reviewerID := c.Request().Header.Get("X-Actor-Id")
	dto, err := h.uc.Reject(c.Request().Context(), c.Param("proof_id"), reviewerID, req.Reason)
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
