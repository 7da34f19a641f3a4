package services

import "errors"

// Errors shared across services and the HTTP error mapping.
var (
	ErrTournamentNotFound        = errors.New("tournament not found")
	ErrUnsupportedTournamentType = errors.New("unsupported tournament type")
)
