package repository

import "prompt-gallery/internal/domain/model"

// MediaItemRepository holds the gallery list, most recent first.
// Implementations return copies so callers never share item memory.
type MediaItemRepository interface {
	Prepend(item *model.MediaItem)
	// Complete sets status=completed and url on the matching item.
	Complete(id, url string) (*model.MediaItem, error)
	// Remove drops the item; it is not an error if it is already gone.
	Remove(id string) bool
	List() []*model.MediaItem
	Len() int
}
