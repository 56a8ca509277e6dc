package handler

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/usecase"
	"gemora/pkg/response"
)

type OnboardingHandler struct {
	onboardingUseCase *usecase.OnboardingUseCase
	authUseCase       *usecase.AuthUseCase
}

func NewOnboardingHandler(onboardingUseCase *usecase.OnboardingUseCase, authUseCase *usecase.AuthUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
		authUseCase:       authUseCase,
	}
}

type documentFileRequest struct {
	URL         string `json:"url" validate:"required,url"`
	ContentType string `json:"content_type" validate:"required"`
	SizeBytes   int64  `json:"size_bytes" validate:"required,gt=0"`
}

type submitDocumentRequest struct {
	DocumentType string                `json:"document_type" validate:"required,oneof=identity business"`
	Files        []documentFileRequest `json:"files" validate:"required,min=1,dive"`
}

type reviewDocumentRequest struct {
	SellerID        string `json:"seller_id" validate:"required"`
	DocumentType    string `json:"document_type" validate:"required,oneof=identity business"`
	Decision        string `json:"decision" validate:"required,oneof=approved rejected"`
	RejectionReason string `json:"rejection_reason"`
}

type skipDocumentRequest struct {
	DocumentType string `json:"document_type" validate:"required"`
}

type payoutMethodRequest struct {
	Type          string `json:"type" validate:"required,oneof=bank_account mobile_money"`
	BankName      string `json:"bank_name"`
	Branch        string `json:"branch"`
	AccountName   string `json:"account_name"`
	AccountNumber string `json:"account_number"`
	Provider      string `json:"provider"`
	Msisdn        string `json:"msisdn"`
}

type settleFeeRequest struct {
	SellerID    string `json:"seller_id" validate:"required"`
	Source      string `json:"source" validate:"required,oneof=online deposit"`
	ReferenceID string `json:"reference_id" validate:"required"`
}

func (h *OnboardingHandler) SubmitDocument(c echo.Context) error {
	var req submitDocumentRequest
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

	files := make([]usecase.DocumentFileInput, len(req.Files))
	for i, f := range req.Files {
		files[i] = usecase.DocumentFileInput{
			URL:         f.URL,
			ContentType: f.ContentType,
			SizeBytes:   f.SizeBytes,
		}
	}

	user, err := h.onboardingUseCase.SubmitDocument(c.Request().Context(), actor, req.DocumentType, files)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *OnboardingHandler) ReviewDocument(c echo.Context) error {
	var req reviewDocumentRequest
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

	user, err := h.onboardingUseCase.ReviewDocument(c.Request().Context(), actor, req.SellerID, req.DocumentType, req.Decision, req.RejectionReason)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *OnboardingHandler) SkipDocument(c echo.Context) error {
	var req skipDocumentRequest
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

	user, err := h.onboardingUseCase.SkipOptional(c.Request().Context(), actor, req.DocumentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *OnboardingHandler) RecordPayoutMethod(c echo.Context) error {
	var req payoutMethodRequest
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

	user, err := h.onboardingUseCase.RecordPayoutMethod(c.Request().Context(), actor, usecase.PayoutMethodInput{
		Type:          req.Type,
		BankName:      req.BankName,
		Branch:        req.Branch,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
		Provider:      req.Provider,
		Msisdn:        req.Msisdn,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *OnboardingHandler) SettleRegistrationFee(c echo.Context) error {
	var req settleFeeRequest
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

	user, err := h.onboardingUseCase.SettleRegistrationFee(c.Request().Context(), actor, req.SellerID, req.Source, req.ReferenceID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, user)
}

func (h *OnboardingHandler) GetActivationStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	sellerID := c.QueryParam("seller_id")
	if sellerID == "" {
		sellerID = uid
	}

	if sellerID != uid {
		actor, err := actorFrom(c, h.authUseCase)
		if err != nil {
			return response.Error(c, err)
		}
		if !actor.IsAdmin() {
			sellerID = uid
		}
	}

	status, err := h.onboardingUseCase.EvaluateActivation(c.Request().Context(), sellerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, status)
}
