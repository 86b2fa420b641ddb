package domain

import "time"

// Board is the core aggregate root: a titled container of ordered lists
// plus a flat membership set. Membership is binary: a user either is a
// member (full read/write on the board and everything beneath it) or is
// not. There are no roles.
type Board struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	MemberIDs []string  `json:"-" bson:"member_ids"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// HasMember reports whether userID belongs to the board's membership set.
func (b *Board) HasMember(userID string) bool {
	for _, id := range b.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// List is an ordered column of cards within a board. Position is the
// 0-based rank of the list among its board's lists.
type List struct {
	ID       string `json:"id" bson:"_id,omitempty"`
	BoardID  string `json:"board_id" bson:"board_id"`
	Title    string `json:"title" bson:"title"`
	Position int    `json:"position" bson:"position"`
}

// Card is a task item within a list. Position is the 0-based rank of the
// card among its list's cards. UpdatedAt is refreshed on every mutation,
// including moves.
type Card struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ListID      string    `json:"list_id" bson:"list_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Position    int       `json:"position" bson:"position"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// CardPositionUpdate is a single position write produced by the move
// algorithm. A batch of these is applied atomically by the repository.
type CardPositionUpdate struct {
	CardID   string
	ListID   string
	Position int
}
