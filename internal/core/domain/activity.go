package domain

import "time"

// ActivityAction identifies what happened on a board.
type ActivityAction string

const (
	ActionBoardCreated  ActivityAction = "board_created"
	ActionListCreated   ActivityAction = "list_created"
	ActionListDeleted   ActivityAction = "list_deleted"
	ActionCardCreated   ActivityAction = "card_created"
	ActionCardDeleted   ActivityAction = "card_deleted"
	ActionCardMoved     ActivityAction = "card_moved"
	ActionMemberAdded   ActivityAction = "member_added"
	ActionMemberRemoved ActivityAction = "member_removed"
)

// Activity records a single change made to a board. Entries are written
// asynchronously and serve the board's activity feed.
type Activity struct {
	BoardID   string         `json:"board_id" bson:"board_id"`
	ActorID   string         `json:"actor_id" bson:"actor_id"`
	Action    ActivityAction `json:"action" bson:"action"`
	Detail    string         `json:"detail,omitempty" bson:"detail,omitempty"`
	Timestamp time.Time      `json:"timestamp" bson:"timestamp"`
}
