package domain

import "time"

type Entity string

const (
	EntityOrder        Entity = "order"
	EntityShoppingItem Entity = "shopping_item"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// ChangeEvent describes one committed mutation of a stored record.
// Record is nil for deletions.
type ChangeEvent struct {
	Entity Entity    `json:"entity"`
	Action Action    `json:"action"`
	ID     int64     `json:"id"`
	At     time.Time `json:"at"`
	Record any       `json:"record,omitempty"`
}
