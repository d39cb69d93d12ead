package product

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	domkv "example.com/storefront/internal/domain/kv"
)

// LikesKey is the storage key of the liked product ids.
const LikesKey = "likedProducts"

type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Likes keeps one shopper's liked products as a JSON array of ids.
type Likes struct {
	storage Storage
}

func NewLikes(storage Storage) *Likes {
	return &Likes{storage: storage}
}

// List returns the liked ids. A missing or unreadable entry counts as none.
func (l *Likes) List(ctx context.Context) ([]int64, error) {
	data, err := l.storage.Get(ctx, LikesKey)
	if errors.Is(err, domkv.ErrNotFound) {
		return []int64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil || ids == nil {
		return []int64{}, nil
	}
	return ids, nil
}

// Toggle flips the like on id and reports whether it is now liked.
func (l *Likes) Toggle(ctx context.Context, id int64) (bool, error) {
	ids, err := l.List(ctx)
	if err != nil {
		return false, err
	}

	liked := true
	if i := slices.Index(ids, id); i >= 0 {
		ids = slices.Delete(ids, i, i+1)
		liked = false
	} else {
		ids = append(ids, id)
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return false, err
	}
	if err := l.storage.Set(ctx, LikesKey, data); err != nil {
		return false, fmt.Errorf("save likes: %w", err)
	}
	return liked, nil
}
