package handler

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/usecase"
	"gemora/pkg/response"
	"gemora/pkg/utils"
)

type PaymentHandler struct {
	paymentUseCase *usecase.PaymentUseCase
	authUseCase    *usecase.AuthUseCase
}

func NewPaymentHandler(paymentUseCase *usecase.PaymentUseCase, authUseCase *usecase.AuthUseCase) *PaymentHandler {
	return &PaymentHandler{
		paymentUseCase: paymentUseCase,
		authUseCase:    authUseCase,
	}
}

type initiatePaymentRequest struct {
	AuctionID  string  `json:"auction_id" validate:"required"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	PayerName  string  `json:"payer_name" validate:"required"`
	PayerEmail string  `json:"payer_email" validate:"required,email"`
	PayerPhone string  `json:"payer_phone"`
	CardNumber string  `json:"card_number" validate:"required,min=12"`
	CardBrand  string  `json:"card_brand"`
}

type verifyCodeRequest struct {
	Code string `json:"code" validate:"required,len=6,numeric"`
}

type updatePaymentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *PaymentHandler) InitiatePayment(c echo.Context) error {
	var req initiatePaymentRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	result, err := h.paymentUseCase.Initiate(c.Request().Context(), usecase.InitiatePaymentInput{
		AuctionID:  req.AuctionID,
		Amount:     req.Amount,
		PayerName:  req.PayerName,
		PayerEmail: req.PayerEmail,
		PayerPhone: req.PayerPhone,
		CardNumber: req.CardNumber,
		CardBrand:  req.CardBrand,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}

func (h *PaymentHandler) VerifyCode(c echo.Context) error {
	id := c.Param("id")

	var req verifyCodeRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	payment, err := h.paymentUseCase.VerifyCode(c.Request().Context(), id, req.Code)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) ResendCode(c echo.Context) error {
	id := c.Param("id")

	payment, err := h.paymentUseCase.ResendCode(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) UpdateStatus(c echo.Context) error {
	id := c.Param("id")

	var req updatePaymentStatusRequest
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

	payment, err := h.paymentUseCase.UpdateStatus(c.Request().Context(), actor, id, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id := c.Param("id")

	payment, err := h.paymentUseCase.GetPayment(c.Request().Context(), id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, payment)
}

func (h *PaymentHandler) ListPayments(c echo.Context) error {
	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)

	payments, total, err := h.paymentUseCase.ListByStatus(c.Request().Context(), actor, c.QueryParam("status"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, payments, total, pagination.Page, pagination.PageSize)
}
