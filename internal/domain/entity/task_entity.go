package entity

import (
	"time"
)

// Task is the aggregate root for the task tracker.
//
// Creator and assignee names are denormalized at creation time and are not
// kept in sync with later changes to the referenced users. Done is the only
// field that mutates after creation.
type Task struct {
	ID             string    `json:"id"`
	CreatedByUid   string    `json:"createdByUid"`
	CreatedByName  string    `json:"createdByName"`
	AssignedToUid  string    `json:"assignedToUid"`
	AssignedToName string    `json:"assignedToName"`
	Description    string    `json:"description"`
	Done           bool      `json:"done"`
	CreatedAt      time.Time `json:"created_at"`
}
