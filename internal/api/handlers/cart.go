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

type CartHandler struct {
	cartService service.CartService
	validator   *validator.Validate
}

func NewCartHandler(cartService service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService, validator: validator.New()}
}

// GetCart godoc
//	@Summary		Get my cart
//	@Description	Returns the authenticated user's cart with line items and computed total.
//	@Tags			Carts
//	@Produce		json
//	@Success		200	{object}	models.Cart				"Cart"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Cart not found"
//	@Security		BearerAuth
//	@Router			/carts [get]
func (h *CartHandler) GetCart() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		cart, err := h.cartService.GetCart(r.Context(), claims.UserID)
		if err != nil {
			logger.Error("Failed to fetch cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}

// UpsertItem godoc
//	@Summary		Set a cart item quantity
//	@Description	Adds the product to the cart or overwrites its quantity. Not additive on repeat calls.
//	@Tags			Carts
//	@Accept			json
//	@Produce		json
//	@Param			item	body		models.UpsertItemRequest	true	"Product and quantity"
//	@Success		200		{object}	models.Cart					"Updated cart"
//	@Failure		400		{object}	response.ErrorResponse		"Validation error"
//	@Failure		401		{object}	response.ErrorResponse		"Authentication required"
//	@Failure		404		{object}	response.ErrorResponse		"Product not found"
//	@Security		BearerAuth
//	@Router			/carts/items [put]
func (h *CartHandler) UpsertItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		var req models.UpsertItemRequest
		if !utils.ParseAndValidate(r, w, &req, h.validator) {
			logger.Warn("Invalid cart item input")

			return
		}

		cart, err := h.cartService.UpsertItem(r.Context(), claims.UserID, &req)
		if err != nil {
			logger.Error("Failed to update cart", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		logger.Info("Cart item set", slog.String("productId", req.ProductID.String()), slog.Int64("quantity", req.Quantity))
		response.Success(w, http.StatusOK, cart)
	}
}

// DeleteItem godoc
//	@Summary		Remove a cart item
//	@Description	Deletes the item from the authenticated user's cart.
//	@Tags			Carts
//	@Produce		json
//	@Param			id	path		string					true	"Cart item ID (UUID)"	Format(uuid)
//	@Success		200	{object}	models.Cart				"Updated cart"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid item ID"
//	@Failure		401	{object}	response.ErrorResponse	"Authentication required"
//	@Failure		404	{object}	response.ErrorResponse	"Item not found in this cart"
//	@Security		BearerAuth
//	@Router			/carts/items/{id} [delete]
func (h *CartHandler) DeleteItem() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		claims, ok := r.Context().Value(middleware.UserContextKey).(*models.Claims)
		if !ok {
			response.Error(w, errors.UnauthorizedError("Authentication required"))

			return
		}

		itemID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		cart, err := h.cartService.DeleteItem(r.Context(), claims.UserID, itemID)
		if err != nil {
			logger.Error("Failed to delete cart item", slog.String("itemId", itemID.String()), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, cart)
	}
}
