package models

import (
	"time"

	"github.com/google/uuid"
)

// Folder is the container new teams and players are created under
type Folder struct {
	ID        uuid.UUID `json:"id"`
	Path      string    `json:"path"`
	Key       string    `json:"key"`
	CreatedAt time.Time `json:"created_at"`
}
