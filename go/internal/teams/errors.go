package teams

import "errors"

// ErrTeamNotFound is returned when no team has the requested id
var ErrTeamNotFound = errors.New("team does not exist")
