package handler

import "time"

// --- Request types ---

type createCardRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	// Position defaults to 0; siblings are not shifted on create.
	Position *int `json:"position" validate:"omitempty,gte=0"`
}

type updateCardRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Position    *int    `json:"position" validate:"omitempty,gte=0"`
}

type moveCardRequest struct {
	ListID   string `json:"list_id"  validate:"required"`
	Position *int   `json:"position" validate:"required,gte=0"`
}

// --- Response types ---

type cardResponse struct {
	ID          string    `json:"id"`
	ListID      string    `json:"list_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
