package models

import (
	"time"

	"github.com/google/uuid"
)

type Category struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

// Product price is in minor units (cents).
type Product struct {
	ID            uuid.UUID   `json:"id"`
	CategoryID    uuid.UUID   `json:"category_id"`
	Name          string      `json:"name"`
	Slug          string      `json:"slug"`
	Description   string      `json:"description"`
	Price         int64       `json:"price"`
	Image         string      `json:"image,omitempty"`
	Category      *Category   `json:"category,omitempty"`
	Tags          []Tag       `json:"tags,omitempty"`
	Reviews       []Review    `json:"reviews,omitempty"`
	LikedBy       []uuid.UUID `json:"liked_by,omitempty"`
	AverageRating float64     `json:"average_rating"`
	LikesCount    int64       `json:"likes_count"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// Cursor pagination over the catalog, keyed on product id.
type ProductEdge struct {
	Node   *Product  `json:"node"`
	Cursor uuid.UUID `json:"cursor"`
}

type PageInfo struct {
	EndCursor   uuid.UUID `json:"end_cursor"`
	HasNextPage bool      `json:"has_next_page"`
}

type ProductPage struct {
	Edges    []ProductEdge `json:"edges"`
	PageInfo PageInfo      `json:"page_info"`
}

type ProductFilter struct {
	Take     int
	Cursor   *uuid.UUID
	Category string
	Tag      string
	Keyword  string
}
