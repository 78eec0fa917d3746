package model

import (
	"strings"
	"time"

	"prompt-gallery/internal/domain"

	"github.com/oklog/ulid/v2"
)

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// ParseMediaType accepts "image" or "video" in any case.
func ParseMediaType(s string) (MediaType, error) {
	switch MediaType(strings.ToLower(strings.TrimSpace(s))) {
	case MediaTypeImage:
		return MediaTypeImage, nil
	case MediaTypeVideo:
		return MediaTypeVideo, nil
	}
	return "", domain.ErrInvalidMediaType
}

type MediaStatus string

const (
	MediaStatusGenerating MediaStatus = "generating"
	MediaStatusCompleted  MediaStatus = "completed"
)

// MediaItem is one gallery entry. It lives only in client memory: created as
// generating with an empty URL, completed in place once a URL is known.
type MediaItem struct {
	ID        string
	Prompt    string
	URL       string
	Type      MediaType
	Status    MediaStatus
	Timestamp time.Time
}

// NewMediaItem builds a pending item. IDs are ULIDs, so they sort by creation
// time and stay unique for submissions within the same millisecond.
func NewMediaItem(prompt string, typ MediaType, now time.Time) (*MediaItem, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, domain.ErrPromptRequired
	}
	if typ != MediaTypeImage && typ != MediaTypeVideo {
		return nil, domain.ErrInvalidMediaType
	}
	return &MediaItem{
		ID:        ulid.Make().String(),
		Prompt:    prompt,
		Type:      typ,
		Status:    MediaStatusGenerating,
		Timestamp: now,
	}, nil
}

// Complete marks the item ready with its URL.
func (m *MediaItem) Complete(url string) {
	m.URL = url
	m.Status = MediaStatusCompleted
}

func (m *MediaItem) IsGenerating() bool { return m != nil && m.Status == MediaStatusGenerating }
