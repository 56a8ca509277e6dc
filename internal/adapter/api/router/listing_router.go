package router

import (
	"github.com/labstack/echo/v4"

	"gemora/internal/adapter/api/handler"
	"gemora/internal/adapter/api/middleware"
)

func SetupListingRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, adminMiddleware *middleware.AdminMiddleware) {
	listingHandler := handler.GetListingHandler()

	// Public read surface. Tokens are optional; they only widen what the
	// caller is allowed to see.
	listings := e.Group("/v1/listings")
	listings.Use(authMiddleware.OptionalAuthenticate())
	listings.GET("", listingHandler.ListListings)
	listings.GET("/search", listingHandler.SearchListings)
	listings.GET("/:id", listingHandler.GetListing)

	myListings := e.Group("/v1/my-listings")
	myListings.Use(authMiddleware.Authenticate())
	myListings.GET("", listingHandler.ListMyListings)
	myListings.POST("", listingHandler.CreateListing)
	myListings.PUT("/:id", listingHandler.UpdateListing)
	myListings.PUT("/:id/images", listingHandler.UpdateImages)
	myListings.POST("/:id/submit", listingHandler.SubmitForReview)
	myListings.DELETE("/:id", listingHandler.DeleteListing)

	admin := e.Group("/v1/admin/listings")
	admin.Use(authMiddleware.Authenticate())
	admin.Use(adminMiddleware.RequireAdmin())
	admin.GET("/review-queue", listingHandler.ListReviewQueue)
	admin.POST("/:id/verify", listingHandler.VerifyListing)
	admin.POST("/:id/reject", listingHandler.RejectListing)
	admin.POST("/:id/restore", listingHandler.RestoreListing)
	admin.DELETE("/:id", listingHandler.HardDeleteListing)
}
