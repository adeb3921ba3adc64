package importer

import (
	"context"
	"fmt"

	"github.com/mcdev12/teamsheet/go/internal/models"
	"github.com/mcdev12/teamsheet/go/internal/objectkey"
	"github.com/mcdev12/teamsheet/go/internal/sheet"
	"github.com/rs/zerolog"
)

// TeamIdentifierMap maps spreadsheet team ids to the teams saved for them in this run
type TeamIdentifierMap map[int64]*models.Team

// Lookup returns the team saved for id, or nil when id is nil or unknown
func (m TeamIdentifierMap) Lookup(id *int64) *models.Team {
	if id == nil {
		return nil
	}
	return m[*id]
}

// TeamReconciler creates or overwrites teams from validated rows
type TeamReconciler struct {
	store  TeamStore
	assets AssetStore
	logger zerolog.Logger
}

// NewTeamReconciler creates a new TeamReconciler
func NewTeamReconciler(store TeamStore, assets AssetStore, logger zerolog.Logger) *TeamReconciler {
	return &TeamReconciler{
		store:  store,
		assets: assets,
		logger: logger,
	}
}

// Reconcile saves rec as a team, matching an existing team by name.
// Returned warnings are non-fatal problems, such as an unusable logo.
func (r *TeamReconciler) Reconcile(ctx context.Context, rec *TeamRecord, folder *models.Folder) (*models.Team, Outcome, []string, error) {
	team, err := r.store.FindTeamByName(ctx, rec.Name)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to find team %q: %w", rec.Name, err)
	}

	outcome := OutcomeUpdated
	if team != nil {
		r.logger.Info().Str("team", rec.Name).Int("row", rec.Row).Msg("Overwriting team")
	} else {
		team = &models.Team{
			FolderID: folder.ID,
			Key:      objectkey.Valid(rec.Name),
		}
		outcome = OutcomeCreated
		r.logger.Info().Str("team", rec.Name).Int("row", rec.Row).Msg("Creating new team")
	}

	team.Name = rec.Name
	team.Trainer = rec.Trainer
	team.Location = rec.Location
	team.Founded = rec.Founded
	team.Description = rec.Description
	team.Coordinates = models.Coordinates{
		Latitude:  rec.Latitude,
		Longitude: rec.Longitude,
	}

	var warnings []string
	team.LogoPath = nil
	if rec.LogoPath != "" {
		if w := r.attachLogo(ctx, team, rec.LogoPath); w != "" {
			warnings = append(warnings, w)
			r.logger.Warn().Str("team", rec.Name).Str("logo", rec.LogoPath).Msg(w)
		}
	}

	team.Published = true
	if err := r.store.SaveTeam(ctx, team); err != nil {
		return nil, "", warnings, fmt.Errorf("failed to save team %q: %w", rec.Name, err)
	}

	r.logger.Info().Str("team", team.Name).Str("id", team.ID.String()).Msg("Team saved")
	return team, outcome, warnings, nil
}

// attachLogo sets the logo when path resolves to an image and returns a warning otherwise
func (r *TeamReconciler) attachLogo(ctx context.Context, team *models.Team, path string) string {
	asset, err := r.assets.Get(ctx, path)
	switch {
	case err != nil:
		return fmt.Sprintf("logo lookup failed at %s: %v", path, err)
	case asset == nil:
		return fmt.Sprintf("logo not found at %s", path)
	case !asset.IsImage():
		return fmt.Sprintf("logo at %s is not an image (%s)", path, asset.MimeType)
	}

	logo := asset.Path
	team.LogoPath = &logo
	return ""
}

// PlayerReconciler creates or overwrites players from validated rows
type PlayerReconciler struct {
	store  PlayerStore
	logger zerolog.Logger
}

// NewPlayerReconciler creates a new PlayerReconciler
func NewPlayerReconciler(store PlayerStore, logger zerolog.Logger) *PlayerReconciler {
	return &PlayerReconciler{
		store:  store,
		logger: logger,
	}
}

// Reconcile saves rec as a player, matching an existing player by natural key and
// linking it to a team saved earlier in the run when the team id is known.
// A birthday serial that cannot be converted is reported as a *ValidationError.
func (r *PlayerReconciler) Reconcile(ctx context.Context, rec *PlayerRecord, folder *models.Folder, teams TeamIdentifierMap, dates sheet.DateSystem) (*models.Player, Outcome, []string, error) {
	birthday, err := sheet.SerialToTime(rec.Birthday, dates)
	if err != nil {
		return nil, "", nil, &ValidationError{Row: rec.Row, Field: "birthday", Message: fmt.Sprintf("birthday is not a valid date: %v", err)}
	}

	key := models.PlayerKey{
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Number:    rec.Number,
		Position:  rec.Position,
	}

	player, err := r.store.FindPlayer(ctx, key)
	if err != nil {
		return nil, "", nil, fmt.Errorf("failed to find player %q: %w", rec.FullName(), err)
	}

	outcome := OutcomeUpdated
	if player != nil {
		r.logger.Info().Str("player", rec.FullName()).Int("row", rec.Row).Msg("Overwriting player")
	} else {
		player = &models.Player{
			FolderID: folder.ID,
			Key:      objectkey.Valid(rec.FullName()),
		}
		outcome = OutcomeCreated
		r.logger.Info().Str("player", rec.FullName()).Int("row", rec.Row).Msg("Creating new player")
	}

	var warnings []string
	team := teams.Lookup(rec.TeamID)
	if team != nil && player.TeamID != nil && *player.TeamID != team.ID {
		w := fmt.Sprintf("player natural key collides across teams: moving from team %s to %s", *player.TeamID, team.ID)
		warnings = append(warnings, w)
		r.logger.Warn().Str("player", rec.FullName()).Msg(w)
	}

	player.FirstName = rec.FirstName
	player.LastName = rec.LastName
	player.Number = rec.Number
	player.Birthday = birthday
	player.Position = rec.Position
	player.TeamID = nil
	if team != nil {
		id := team.ID
		player.TeamID = &id
	}

	player.Published = true
	if err := r.store.SavePlayer(ctx, player); err != nil {
		return nil, "", warnings, fmt.Errorf("failed to save player %q: %w", rec.FullName(), err)
	}

	r.logger.Info().Str("player", player.FullName()).Str("id", player.ID.String()).Msg("Player saved")
	return player, outcome, warnings, nil
}
