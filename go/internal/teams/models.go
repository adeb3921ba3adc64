package teams

import "github.com/mcdev12/teamsheet/go/internal/models"

// TeamSummary is a team as listed in the directory
type TeamSummary struct {
	models.Team
	PlayerCount int `json:"player_count"`
}

// TeamDetail is a team together with its roster
type TeamDetail struct {
	models.Team
	Players []models.Player `json:"players"`
}
