package handler

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/usecase"
	"gemora/pkg/response"
	"gemora/pkg/utils"
)

type DepositHandler struct {
	depositUseCase *usecase.DepositUseCase
	authUseCase    *usecase.AuthUseCase
}

func NewDepositHandler(depositUseCase *usecase.DepositUseCase, authUseCase *usecase.AuthUseCase) *DepositHandler {
	return &DepositHandler{
		depositUseCase: depositUseCase,
		authUseCase:    authUseCase,
	}
}

type recordDepositRequest struct {
	AuctionID  string  `json:"auction_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	Bank       string  `json:"bank" validate:"required"`
	Branch     string  `json:"branch"`
	SlipURL    string  `json:"slip_url" validate:"required,url"`
	PayerName  string  `json:"payer_name"`
	PayerEmail string  `json:"payer_email" validate:"omitempty,email"`
	PayerPhone string  `json:"payer_phone"`
}

type depositDecisionRequest struct {
	Status string `json:"status" validate:"required,oneof=success failure"`
}

func (h *DepositHandler) RecordDeposit(c echo.Context) error {
	var req recordDepositRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	deposit, err := h.depositUseCase.RecordDeposit(c.Request().Context(), usecase.RecordDepositInput{
		AuctionID:  req.AuctionID,
		Amount:     req.Amount,
		Bank:       req.Bank,
		Branch:     req.Branch,
		SlipURL:    req.SlipURL,
		PayerName:  req.PayerName,
		PayerEmail: req.PayerEmail,
		PayerPhone: req.PayerPhone,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, deposit)
}

func (h *DepositHandler) ReviewDeposit(c echo.Context) error {
	id := c.Param("id")

	var req depositDecisionRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	deposit, err := h.depositUseCase.SetStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, deposit)
}

func (h *DepositHandler) GetDeposit(c echo.Context) error {
	id := c.Param("id")

	deposit, err := h.depositUseCase.GetDeposit(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, deposit)
}

func (h *DepositHandler) ListDeposits(c echo.Context) error {
	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)

	deposits, total, err := h.depositUseCase.ListByStatus(c.Request().Context(), actor, c.QueryParam("status"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, deposits, total, pagination.Page, pagination.PageSize)
}
