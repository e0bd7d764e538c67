package domain

import "errors"

// Sentinel errors shared by repositories and services.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	// ErrAssociationWrite marks a failure while rewriting series associations.
	// The whole save is rolled back when it is returned.
	ErrAssociationWrite = errors.New("association write failed")
)
