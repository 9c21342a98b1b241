package models

import "time"

type User struct {
	ID           string    `json:"id"` // uuid
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
