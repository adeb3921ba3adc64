package importer

import (
	"fmt"
	"strings"

	"github.com/mcdev12/teamsheet/go/internal/sheet"
)

// team column indexes
const (
	teamColID = iota
	teamColName
	teamColTrainer
	teamColLocation
	teamColLatitude
	teamColLongitude
	teamColFounded
	teamColDescription
	teamColLogoPath
)

// player column indexes
const (
	playerColID = iota
	playerColFirstName
	playerColLastName
	playerColNumber
	playerColBirthday
	playerColPosition
	playerColTeamID
)

var teamRules = []rule{
	{field: "id", column: teamColID, tag: "required", message: "id cannot be empty"},
	{field: "id", column: teamColID, tag: "numericvalue", message: "id must be a number"},
	{field: "id", column: teamColID, tag: "wholenumber", message: "id must be a whole number"},
	{field: "name", column: teamColName, tag: "required", message: "name cannot be empty"},
	{field: "trainer", column: teamColTrainer, tag: "required", message: "trainer cannot be empty"},
	{field: "location", column: teamColLocation, tag: "required", message: "location cannot be empty"},
	{field: "latitude", column: teamColLatitude, tag: "required", message: "latitude cannot be empty"},
	{field: "latitude", column: teamColLatitude, tag: "numericvalue", message: "latitude must be numeric"},
	{field: "longitude", column: teamColLongitude, tag: "required", message: "longitude cannot be empty"},
	{field: "longitude", column: teamColLongitude, tag: "numericvalue", message: "longitude must be numeric"},
	{field: "founded", column: teamColFounded, tag: "required", message: "founding year cannot be empty"},
	{field: "founded", column: teamColFounded, tag: "numericvalue", message: "founding year must be numeric"},
	{field: "founded", column: teamColFounded, tag: "wholenumber", message: "founding year must be a whole number"},
	{field: "founded", column: teamColFounded, tag: "int32value", message: "founding year is out of range"},
	{field: "description", column: teamColDescription, tag: "required", message: "description cannot be empty"},
}

var playerRules = []rule{
	{field: "id", column: playerColID, tag: "required", message: "id cannot be empty"},
	{field: "id", column: playerColID, tag: "numericvalue", message: "id must be a number"},
	{field: "id", column: playerColID, tag: "wholenumber", message: "id must be a whole number"},
	{field: "first_name", column: playerColFirstName, tag: "required", message: "first name cannot be empty"},
	{field: "last_name", column: playerColLastName, tag: "required", message: "second name cannot be empty"},
	{field: "number", column: playerColNumber, tag: "required", message: "player number cannot be empty"},
	{field: "number", column: playerColNumber, tag: "numericvalue", message: "player number must be numeric"},
	{field: "birthday", column: playerColBirthday, tag: "required", message: "birthday cannot be empty"},
	{field: "birthday", column: playerColBirthday, tag: "numericvalue", message: "birthday must be numeric"},
	{field: "position", column: playerColPosition, tag: "required", message: "position cannot be empty"},
	{field: "team_id", column: playerColTeamID, tag: "omitempty,numericvalue", message: "team id must be numeric"},
	{field: "team_id", column: playerColTeamID, tag: "omitempty,wholenumber", message: "team id must be a whole number"},
}

// TeamRecord is a validated row of the teams sheet
type TeamRecord struct {
	Row         int
	TeamID      int64
	Name        string
	Trainer     string
	Location    string
	Latitude    float64
	Longitude   float64
	Founded     int
	Description string
	LogoPath    string
}

// PlayerRecord is a validated row of the players sheet
type PlayerRecord struct {
	Row       int
	PlayerID  int64
	FirstName string
	LastName  string
	Number    float64
	Birthday  float64
	Position  string
	TeamID    *int64
}

// FullName joins first and last name like the stored player does
func (p PlayerRecord) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// ParseTeam validates a teams row and converts it into a TeamRecord
func (rv *RowValidator) ParseTeam(row sheet.Row) (*TeamRecord, error) {
	if err := rv.Check(row, teamRules); err != nil {
		return nil, err
	}

	cell := func(i int) string {
		v, _ := row.Cell(i)
		return v
	}

	// the rules above guarantee these parse
	id, _ := parseWhole(cell(teamColID))
	lat, _ := parseNumber(cell(teamColLatitude))
	lon, _ := parseNumber(cell(teamColLongitude))
	founded, _ := parseWhole(cell(teamColFounded))

	return &TeamRecord{
		Row:         row.Number,
		TeamID:      id,
		Name:        cell(teamColName),
		Trainer:     cell(teamColTrainer),
		Location:    cell(teamColLocation),
		Latitude:    lat,
		Longitude:   lon,
		Founded:     int(founded),
		Description: cell(teamColDescription),
		LogoPath:    cell(teamColLogoPath),
	}, nil
}

// ParsePlayer validates a players row and converts it into a PlayerRecord
func (rv *RowValidator) ParsePlayer(row sheet.Row) (*PlayerRecord, error) {
	if err := rv.Check(row, playerRules); err != nil {
		return nil, err
	}

	cell := func(i int) string {
		v, _ := row.Cell(i)
		return v
	}

	id, _ := parseWhole(cell(playerColID))
	number, _ := parseNumber(cell(playerColNumber))
	birthday, _ := parseNumber(cell(playerColBirthday))

	rec := &PlayerRecord{
		Row:       row.Number,
		PlayerID:  id,
		FirstName: cell(playerColFirstName),
		LastName:  cell(playerColLastName),
		Number:    number,
		Birthday:  birthday,
		Position:  cell(playerColPosition),
	}

	if raw, ok := row.Cell(playerColTeamID); ok {
		teamID, err := parseWhole(raw)
		if err != nil {
			return nil, fmt.Errorf("team id: %w", err)
		}
		rec.TeamID = &teamID
	}

	return rec, nil
}

// rowLabel names a row in log lines the way an operator would recognise it
func rowLabel(kind string, row sheet.Row, nameCols ...int) string {
	parts := make([]string, 0, len(nameCols))
	for _, c := range nameCols {
		if v, ok := row.Cell(c); ok {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return fmt.Sprintf("%s in row %d", kind, row.Number)
	}
	return kind + " " + strings.Join(parts, " ")
}
