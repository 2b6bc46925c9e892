package domain

import "time"

// DefaultTitle replaces a blank title at save time.
const DefaultTitle = "Untitled"

// Diagram is a persisted Mermaid diagram. JSON names follow the storage columns so the
// same type decodes PostgREST rows.
type Diagram struct {
	ID           string    `json:"id"`
	Title        string    `json:"title" validate:"max=200"`
	Description  string    `json:"description"`
	Content      string    `json:"content" validate:"required,notblank"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty" validate:"omitempty,url"`
	OwnerID      string    `json:"user_id"`
	IsPublic     bool      `json:"is_public"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
