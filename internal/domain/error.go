package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound             = errors.New("entity not found")
	ErrPromptRequired       = errors.New("prompt is required")
	ErrInvalidMediaType     = errors.New("invalid media type")
	ErrGenerationInProgress = errors.New("generation already in progress")
	ErrClosed               = errors.New("gallery closed")
)
