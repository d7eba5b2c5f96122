package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// UpdateUser carries a partial update; nil fields are left untouched.
type UpdateUser struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}
