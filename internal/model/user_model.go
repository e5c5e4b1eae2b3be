package model

import "time"

type User struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	Uniquifier  string     `json:"-"` // never JSON-encode
	CreatedAt   time.Time  `json:"created_at"`

	Roles []Role `json:"roles,omitempty"`
}
