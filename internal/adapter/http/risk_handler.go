package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"peerlend-backend/internal/usecase/risk"
	"peerlend-backend/internal/usecase/score"
)

type RiskHandler struct {
	uc     *risk.Usecase
	scores *score.Usecase
}

func NewRiskHandler(uc *risk.Usecase, scores *score.Usecase) *RiskHandler {
	return &RiskHandler{uc: uc, scores: scores}
}

type flagReq struct {
	BorrowerID  string `json:"borrower_id" validate:"required,hex32"`
	Type        string `json:"type" validate:"required,flagtype"`
	Reason      string `json:"reason" validate:"required"`
	AmountMinor *int64 `json:"amount_minor"`
	ProofHash   string `json:"proof_hash" validate:"required"`
}

func (h *RiskHandler) Flag(c echo.Context) error {
	var req flagReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	reporterID := c.Request().Header.Get("X-Actor-Id")
	f, err := h.uc.Flag(c.Request().Context(), risk.FlagInput{
		BorrowerID:  req.BorrowerID,
		Type:        req.Type,
		Reason:      req.Reason,
		AmountMinor: req.AmountMinor,
		ProofHash:   req.ProofHash,
		ReporterID:  reporterID,
	})
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusCreated, f)
}

type resolveFlagReq struct {
	Reason string `json:"reason" validate:"required"`
}

func (h *RiskHandler) Resolve(c echo.Context) error {
	var req resolveFlagReq
	if err := c.Bind(&req); err != nil {
		return badBody(c)
	}
	if err := c.Validate(&req); err != nil {
		return invalid(c, err)
	}
	f, err := h.uc.Resolve(c.Request().Context(), c.Param("flag_id"), req.Reason)
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, f)
}

func (h *RiskHandler) Summary(c echo.Context) error {
	s, err := h.uc.Summary(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *RiskHandler) Score(c echo.Context) error {
	dto, err := h.scores.Score(c.Request().Context(), c.Param("borrower_id"))
	if err != nil {
		return writeFault(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
