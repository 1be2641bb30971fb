package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/hungryup/hungryup-backend/internal/api/middleware"
	"github.com/hungryup/hungryup-backend/internal/errors"
	"github.com/hungryup/hungryup-backend/internal/models"
	service "github.com/hungryup/hungryup-backend/internal/services"
	"github.com/hungryup/hungryup-backend/internal/utils"
	"github.com/hungryup/hungryup-backend/internal/utils/response"
)

type ProductHandler struct {
	catalogService service.CatalogService
}

func NewProductHandler(catalogService service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// ListProducts godoc
//	@Summary		Browse the catalog
//	@Description	Cursor-paginated product listing, filterable by category, tag, and keyword.
//	@Tags			Products
//	@Produce		json
//	@Param			take		query		int		false	"Page size (max 50)"
//	@Param			cursor		query		string	false	"Opaque cursor from the previous page"	Format(uuid)
//	@Param			category	query		string	false	"Category slug filter"
//	@Param			tag			query		string	false	"Tag slug filter"
//	@Param			keyword		query		string	false	"Name search keyword"
//	@Success		200			{object}	models.ProductPage		"Page of products"
//	@Failure		400			{object}	response.ErrorResponse	"Invalid cursor"
//	@Failure		404			{object}	response.ErrorResponse	"No products found"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products [get]
func (h *ProductHandler) ListProducts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		filter := models.ProductFilter{
			Category: r.URL.Query().Get("category"),
			Tag:      r.URL.Query().Get("tag"),
			Keyword:  r.URL.Query().Get("keyword"),
		}

		if take := r.URL.Query().Get("take"); take != "" {
			if n, err := strconv.Atoi(take); err == nil {
				filter.Take = n
			}
		}

		if cursor := r.URL.Query().Get("cursor"); cursor != "" {

			id, err := uuid.Parse(cursor)
			if err != nil {
				response.Error(w, errors.BadRequestError("Invalid cursor"))

				return
			}

			filter.Cursor = &id
		}

		page, err := h.catalogService.ListProducts(r.Context(), filter)
		if err != nil {
			logger.Error("Failed to list products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, page)
	}
}

// GetProduct godoc
//	@Summary		Get a product by slug
//	@Description	Returns the product with its category, tags, reviews, likes, and average rating.
//	@Tags			Products
//	@Produce		json
//	@Param			slug	path		string					true	"Product slug"
//	@Success		200		{object}	models.Product			"Product"
//	@Failure		404		{object}	response.ErrorResponse	"Product not found"
//	@Router			/products/{slug} [get]
func (h *ProductHandler) GetProduct() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		slug := r.PathValue("slug")
		if slug == "" {
			response.Error(w, errors.BadRequestError("Product slug is required"))

			return
		}

		product, err := h.catalogService.GetProduct(r.Context(), slug)
		if err != nil {
			logger.Warn("Product lookup failed", slog.String("slug", slug), slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, product)
	}
}

// BestRated godoc
//	@Summary		Best rated products of a category
//	@Description	Top ten products with an average rating of at least 3, ranked by rating then likes.
//	@Tags			Products
//	@Produce		json
//	@Param			category	query		string					true	"Category slug"
//	@Success		200			{array}		models.Product			"Ranked products"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/best-rated [get]
func (h *ProductHandler) BestRated() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		products, err := h.catalogService.BestRatedProducts(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			logger.Error("Failed to list best rated products", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, products)
	}
}

// ProductReviews godoc
//	@Summary		List reviews of a product
//	@Description	Returns the product's reviews, newest first, with author details.
//	@Tags			Products
//	@Produce		json
//	@Param			id	path		string					true	"Product ID (UUID)"	Format(uuid)
//	@Success		200	{array}		models.Review			"Reviews"
//	@Failure		400	{object}	response.ErrorResponse	"Invalid product ID"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/products/{id}/reviews [get]
func (h *ProductHandler) ProductReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		productID, err := utils.ParseID(r, "id")
		if err != nil {
			response.Error(w, err)

			return
		}

		reviews, err := h.catalogService.GetProductReviews(r.Context(), productID)
		if err != nil {
			logger.Error("Failed to list product reviews", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, reviews)
	}
}

// ListCategories godoc
//	@Summary		List categories
//	@Tags			Products
//	@Produce		json
//	@Success		200	{array}		models.Category			"Categories"
//	@Failure		404	{object}	response.ErrorResponse	"No categories found"
//	@Failure		500	{object}	response.ErrorResponse	"Internal server error"
//	@Router			/categories [get]
func (h *ProductHandler) ListCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		categories, err := h.catalogService.ListCategories(r.Context())
		if err != nil {
			logger.Error("Failed to list categories", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, categories)
	}
}

// ListTags godoc
//	@Summary		List tags
//	@Description	All tags, or only those used within a category when ?category= is given.
//	@Tags			Products
//	@Produce		json
//	@Param			category	query		string					false	"Category slug filter"
//	@Success		200			{array}		models.Tag				"Tags"
//	@Failure		404			{object}	response.ErrorResponse	"No tags found"
//	@Failure		500			{object}	response.ErrorResponse	"Internal server error"
//	@Router			/tags [get]
func (h *ProductHandler) ListTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {

		logger := middleware.LoggerFromContext(r.Context())

		tags, err := h.catalogService.ListTags(r.Context(), r.URL.Query().Get("category"))
		if err != nil {
			logger.Error("Failed to list tags", slog.Any("error", err))
			response.Error(w, err)

			return
		}

		response.Success(w, http.StatusOK, tags)
	}
}
