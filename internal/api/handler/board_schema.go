package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createBoardRequest struct {
	Title string `json:"title" validate:"required"`
}

// updateBoardRequest carries an optional new title; an empty title leaves
// the board unchanged.
type updateBoardRequest struct {
	Title string `json:"title"`
}

type inviteRequest struct {
	EmailOrUsername string `json:"email_or_username" validate:"required"`
}

type addMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// --- Response types ---
// The JSON contract is owned here, not by the ports or domain types.

type memberResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type boardResponse struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	CreatedAt time.Time        `json:"created_at"`
	Lists     []listResponse   `json:"lists"`
	Members   []memberResponse `json:"members"`
}

type activityResponse struct {
	ActorID   string    `json:"actor_id"`
	Action    string    `json:"action"`
	Detail    string    `json:"detail,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type boardActivityResponse struct {
	BoardID string             `json:"board_id"`
	Entries []activityResponse `json:"entries"`
}
