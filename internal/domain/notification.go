package domain

import "time"

// Notification is the in-app counterpart of a lifecycle email. Both are
// best-effort; neither failure rolls back the transition that fired them.
type Notification struct {
	ID        int32     `json:"id"`
	UserID    int32     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedOn time.Time `json:"created_on"`
}
