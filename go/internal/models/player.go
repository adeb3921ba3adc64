package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Player represents a sports player in the system
type Player struct {
	ID        uuid.UUID  `json:"id"`
	FolderID  uuid.UUID  `json:"folder_id"`
	Key       string     `json:"key"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Number    float64    `json:"number"`
	Birthday  time.Time  `json:"birthday"`
	Position  string     `json:"position"`
	TeamID    *uuid.UUID `json:"team_id,omitempty"`
	Published bool       `json:"published"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PlayerKey is the natural key players are matched on during an import
type PlayerKey struct {
	FirstName string
	LastName  string
	Number    float64
	Position  string
}

// NaturalKey returns the key the player is matched on
func (p *Player) NaturalKey() PlayerKey {
	return PlayerKey{
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Number:    p.Number,
		Position:  p.Position,
	}
}

// FullName joins first and last name with a single space
func (p *Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// IsNew reports whether the player has not been saved yet
func (p *Player) IsNew() bool {
	return p.ID == uuid.Nil
}
