package domain

import "time"

// Default role tags. Role-derived assignments are limited to this name set;
// anything else on a user is treated as manually assigned.
const (
	TagNewClient     = "New Client"
	TagVIPClient     = "VIP Client"
	TagEmployee      = "Employee"
	TagAdministrator = "Administrator"
)

// RoleTagNames is the fixed set removed and re-applied when a user's
// staff/superuser flags change.
var RoleTagNames = []string{TagNewClient, TagVIPClient, TagEmployee, TagAdministrator}

type Tag struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	Description string    `json:"description,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}

// Group is a named collection, usually mapping to an external chat channel,
// visible only to holders of its tag.
type Group struct {
	ID          int32     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TagID       *int32    `json:"tag_id,omitempty"`
	Tag         *Tag      `json:"tag,omitempty"` // Populated when needed
	ChatLink    string    `json:"chat_link,omitempty"`
	CreatedOn   time.Time `json:"created_on"`
}
