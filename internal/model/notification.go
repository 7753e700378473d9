package model

import "time"

// Notification is an ephemeral event record shown in the admin inbox and
// broadcast to listeners on creation.
type Notification struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Link      string    `json:"link"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
