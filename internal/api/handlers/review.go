package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/hungryup/hungryup-backend/internal/api/middleware"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	service "github.com/hungryup/hungryup-backend/internal/services"
	"github.com/hungryup/hungryup-backend/internal/utils"
	"github.com/hungryup/hungryup-backend/internal/utils/response"
)

type ReviewHandler struct {
	reviewService service.ReviewService
	validator     *validator.Validate
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, validator: validator.New()}
}

// CreateReview godoc
//	@Summary		Review a product
//	@Description	Creates the authenticated user's review. One review per user per product.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			review	body		models.ReviewRequest	true	"Review"
//	@Success		201		{object}	models.Review			"Created review"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Failure		409		{object}	response.ErrorResponse	"Already reviewed"
//	@Security		BearerAuth
//	@Router			/reviews [post]
func (h *ReviewHandler) CreateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.ReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid review input")

			return
		}

		review, err := h.reviewService.CreateReview(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to create review", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Review created", slog.String("productId", req.ProductID.String()))
		response.Success(w, http.StatusCreated, review)
	}
}

// UpdateReview godoc
//	@Summary		Update my review
//	@Description	Rewrites the authenticated user's existing review of the product.
//	@Tags			Reviews
//	@Accept			json
//	@Produce		json
//	@Param			review	body		models.ReviewRequest	true	"Review"
//	@Success		200		{object}	models.Review			"Updated review"
//	@Failure		400		{object}	response.ErrorResponse	"Validation error"
//	@Failure		401		{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse	"Review not found"
//	@Security		BearerAuth
//	@Router			/reviews [put]
func (h *ReviewHandler) UpdateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.ReviewRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid review input")

			return
		}

		review, err := h.reviewService.UpdateReview(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update review", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, review)
	}
}

// LikeProduct godoc
//	@Summary		Like a product
//	@Description	Records the authenticated user's like. One like per user per product.
//	@Tags			Reviews
//	@Produce		json
//	@Param			id	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		204	"Liked"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Product not found"
//	@Failure		409	{object}	response.ErrorResponse	"Already liked"
//	@Security		BearerAuth
//	@Router			/products/{id}/like [post]
func (h *ReviewHandler) LikeProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		if err := h.reviewService.LikeProduct(r.Context(), productID, claims.UserID); err != nil {
			logger.Error("Failed to like product", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// UnlikeProduct godoc
//	@Summary		Remove a product like
//	@Description	Removes the authenticated user's like of the product.
//	@Tags			Reviews
//	@Produce		json
//	@Param			id	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		204	"Like removed"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Product is not liked"
//	@Security		BearerAuth
//	@Router			/products/{id}/like [delete]
func (h *ReviewHandler) UnlikeProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		if err := h.reviewService.UnlikeProduct(r.Context(), productID, claims.UserID); err != nil {
			logger.Error("Failed to unlike product", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
