package memory

import (
	"sync"

	"prompt-gallery/internal/domain"
	"prompt-gallery/internal/domain/model"
	"prompt-gallery/internal/domain/ports/repository"
)

var _ repository.MediaItemRepository = (*MediaItemRepo)(nil)

// MediaItemRepo keeps gallery items in memory, newest first.
type MediaItemRepo struct {
	mu    sync.RWMutex
	items []*model.MediaItem
}

func NewMediaItemRepo() *MediaItemRepo {
	return &MediaItemRepo{}
}

func (r *MediaItemRepo) Prepend(item *model.MediaItem) {
	cp := *item
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append([]*model.MediaItem{&cp}, r.items...)
}

func (r *MediaItemRepo) Complete(id, url string) (*model.MediaItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range r.items {
		if it.ID == id {
			it.Complete(url)
			cp := *it
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *MediaItemRepo) Remove(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, it := range r.items {
		if it.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return true
		}
	}
	return false
}

func (r *MediaItemRepo) List() []*model.MediaItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.MediaItem, 0, len(r.items))
	for _, it := range r.items {
		cp := *it
		out = append(out, &cp)
	}
	return out
}

func (r *MediaItemRepo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
