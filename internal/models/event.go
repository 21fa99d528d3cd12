package models

import "time"

// Event is an audit-trail record of a content or account action.
type Event struct {
	ID        string    `db:"id" json:"id"`
	Type      string    `db:"type" json:"type"`
	Level     string    `db:"level" json:"level"`
	Message   string    `db:"message" json:"message"`
	BlogID    *string   `db:"blog_id" json:"blogId,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}
