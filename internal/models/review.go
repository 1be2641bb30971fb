package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	UserID      uuid.UUID `json:"user_id"`
	Description string    `json:"description"`
	Rating      int       `json:"rating"`
	User        *User     `json:"user,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ProductLike struct {
	ProductID uuid.UUID `json:"product_id"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type ReviewRequest struct {
	ProductID   uuid.UUID `json:"product_id" validate:"required"`
	Description string    `json:"description" validate:"required"`
	Rating      int       `json:"rating" validate:"required,min=1,max=5"`
}
