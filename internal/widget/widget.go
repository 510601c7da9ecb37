package widget

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("widget not found")

// Widget is a dashboard widget owned by one user. Config and Layout are
// JSON documents stored as text; Config may be absent and UpdatedAt is
// NULL until the first update.
type Widget struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Name      string     `json:"name"`
	Type      string     `json:"type"`
	Config    *string    `json:"config,omitempty"`
	Layout    string     `json:"layout"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// CreateInput carries the fields a user supplies when adding a widget.
type CreateInput struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Config *string `json:"config"`
	Layout string  `json:"layout"`
}

// UpdateInput carries a partial update; nil fields are left unchanged.
type UpdateInput struct {
	Name   *string `json:"name"`
	Type   *string `json:"type"`
	Config *string `json:"config"`
	Layout *string `json:"layout"`
}
