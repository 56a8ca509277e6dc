package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"gemora/internal/domain/repository"
	"gemora/internal/usecase"
	"gemora/pkg/response"
	"gemora/pkg/utils"
)

type ListingHandler struct {
	listingUseCase *usecase.ListingUseCase
	authUseCase    *usecase.AuthUseCase
}

func NewListingHandler(listingUseCase *usecase.ListingUseCase, authUseCase *usecase.AuthUseCase) *ListingHandler {
	return &ListingHandler{
		listingUseCase: listingUseCase,
		authUseCase:    authUseCase,
	}
}

type listingImageRequest struct {
	URL          string `json:"url" validate:"required,url"`
	DisplayOrder int    `json:"display_order"`
}

type listingContentRequest struct {
	Name         string                `json:"name" validate:"required"`
	Description  string                `json:"description"`
	Category     string                `json:"category" validate:"required"`
	MinimumBid   float64               `json:"minimum_bid" validate:"required,gt=0"`
	WeightCarats float64               `json:"weight_carats" validate:"omitempty,gt=0"`
	Color        string                `json:"color"`
	Origin       string                `json:"origin"`
	Images       []listingImageRequest `json:"images"`
}

type listingImagesRequest struct {
	Images []listingImageRequest `json:"images" validate:"required,min=1,dive"`
	Mode   string                `json:"mode" validate:"required,oneof=replace append"`
}

type rejectListingRequest struct {
	Reason      string `json:"reason" validate:"required"`
	Suggestions string `json:"suggestions"`
}

type verifyListingRequest struct {
	Notes string `json:"notes"`
}

func toImageInputs(images []listingImageRequest) []usecase.ListingImageInput {
	inputs := make([]usecase.ListingImageInput, len(images))
	for i, img := range images {
		inputs[i] = usecase.ListingImageInput{
			URL:          img.URL,
			DisplayOrder: img.DisplayOrder,
		}
	}
	return inputs
}

func contentInputOf(req listingContentRequest) usecase.ListingContentInput {
	return usecase.ListingContentInput{
		Name:         req.Name,
		Description:  req.Description,
		Category:     req.Category,
		MinimumBid:   req.MinimumBid,
		WeightCarats: req.WeightCarats,
		Color:        req.Color,
		Origin:       req.Origin,
	}
}

func (h *ListingHandler) CreateListing(c echo.Context) error {
	var req listingContentRequest
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

	listing, err := h.listingUseCase.CreateListing(c.Request().Context(), actor, contentInputOf(req), toImageInputs(req.Images))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, listing)
}

func (h *ListingHandler) UpdateListing(c echo.Context) error {
	id := c.Param("id")

	var req listingContentRequest
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

	result, err := h.listingUseCase.ApplyContentEdit(c.Request().Context(), actor, id, contentInputOf(req))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}

func (h *ListingHandler) UpdateImages(c echo.Context) error {
	id := c.Param("id")

	var req listingImagesRequest
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

	listing, err := h.listingUseCase.ReplaceOrAppendImages(c.Request().Context(), actor, id, toImageInputs(req.Images), req.Mode)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) SubmitForReview(c echo.Context) error {
	id := c.Param("id")

	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.SubmitForReview(c.Request().Context(), actor, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) VerifyListing(c echo.Context) error {
	id := c.Param("id")

	var req verifyListingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.Verify(c.Request().Context(), actor, id, req.Notes)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) RejectListing(c echo.Context) error {
	id := c.Param("id")

	var req rejectListingRequest
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

	listing, err := h.listingUseCase.Reject(c.Request().Context(), actor, id, req.Reason, req.Suggestions)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) DeleteListing(c echo.Context) error {
	id := c.Param("id")

	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.listingUseCase.SoftDelete(c.Request().Context(), actor, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Listing deactivated"})
}

func (h *ListingHandler) RestoreListing(c echo.Context) error {
	id := c.Param("id")

	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	listing, err := h.listingUseCase.Restore(c.Request().Context(), actor, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, listing)
}

func (h *ListingHandler) HardDeleteListing(c echo.Context) error {
	id := c.Param("id")

	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	if err := h.listingUseCase.HardDelete(c.Request().Context(), actor, id); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]string{"message": "Listing deleted"})
}

func (h *ListingHandler) GetListing(c echo.Context) error {
	id := c.Param("id")

	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	view, err := h.listingUseCase.GetListing(c.Request().Context(), actor, id)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, view)
}

func filterFromQuery(c echo.Context) repository.ListingFilter {
	minPrice, _ := strconv.ParseFloat(c.QueryParam("min_price"), 64)
	maxPrice, _ := strconv.ParseFloat(c.QueryParam("max_price"), 64)
	minWeight, _ := strconv.ParseFloat(c.QueryParam("min_weight"), 64)
	maxWeight, _ := strconv.ParseFloat(c.QueryParam("max_weight"), 64)

	return repository.ListingFilter{
		Category:    c.QueryParam("category"),
		ReviewState: c.QueryParam("review_state"),
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		MinWeight:   minWeight,
		MaxWeight:   maxWeight,
	}
}

func (h *ListingHandler) ListListings(c echo.Context) error {
	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	sort := c.QueryParam("sort")

	views, total, err := h.listingUseCase.ListListings(c.Request().Context(), actor, filterFromQuery(c), sort, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, views, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) SearchListings(c echo.Context) error {
	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)
	query := c.QueryParam("q")

	views, total, err := h.listingUseCase.SearchListings(c.Request().Context(), actor, query, filterFromQuery(c), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, views, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListMyListings(c echo.Context) error {
	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)

	views, total, err := h.listingUseCase.ListMyListings(c.Request().Context(), actor, c.QueryParam("review_state"), pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, views, total, pagination.Page, pagination.PageSize)
}

func (h *ListingHandler) ListReviewQueue(c echo.Context) error {
	actor, err := actorFrom(c, h.authUseCase)
	if err != nil {
		return response.Error(c, err)
	}

	pagination := utils.GetPaginationParams(c)

	views, total, err := h.listingUseCase.ListReviewQueue(c.Request().Context(), actor, pagination.Page, pagination.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, views, total, pagination.Page, pagination.PageSize)
}
