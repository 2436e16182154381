package models

import (
	"time"

	"github.com/google/uuid"
)

type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBase() Base {
	return Base{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
}
