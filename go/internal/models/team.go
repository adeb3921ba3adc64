package models

import (
	"time"

	"github.com/google/uuid"
)

// Coordinates is a latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Team represents a sports team in the system
type Team struct {
	ID          uuid.UUID   `json:"id"`
	FolderID    uuid.UUID   `json:"folder_id"`
	Key         string      `json:"key"`
	Name        string      `json:"name"`
	Trainer     string      `json:"trainer"`
	Location    string      `json:"location"`
	Coordinates Coordinates `json:"coordinates"`
	Founded     int         `json:"founded"`
	Description string      `json:"description"`
	LogoPath    *string     `json:"logo_path,omitempty"`
	Published   bool        `json:"published"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// IsNew reports whether the team has not been saved yet
func (t *Team) IsNew() bool {
	return t.ID == uuid.Nil
}
