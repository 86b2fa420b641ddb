package handler

// --- Request types ---

type createListRequest struct {
	Title string `json:"title" validate:"required"`
	// Position defaults to 0; siblings are not shifted on create.
	Position *int `json:"position" validate:"omitempty,gte=0"`
}

type updateListRequest struct {
	Title    *string `json:"title"`
	Position *int    `json:"position" validate:"omitempty,gte=0"`
}

// --- Response types ---

type listResponse struct {
	ID       string         `json:"id"`
	BoardID  string         `json:"board_id"`
	Title    string         `json:"title"`
	Position int            `json:"position"`
	Cards    []cardResponse `json:"cards"`
}
