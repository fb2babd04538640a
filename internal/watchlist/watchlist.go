// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/wiki-watch/pkg/types"
)

var (
	// ErrInvalidEntry is returned when an entry lacks a title or URL.
	ErrInvalidEntry = errors.New("bookmark entry needs a title and a URL")

	// ErrIndexOutOfRange is returned by Remove for a position not in the list.
	ErrIndexOutOfRange = errors.New("watch list index out of range")
)

// WatchList is the ordered list of saved articles kept in one storage slot.
type WatchList struct {
	storage *Storage
	key     string
}

// New returns the watch list stored under types.WatchListKey.
func New(storage *Storage) *WatchList {
	return &WatchList{storage: storage, key: types.WatchListKey}
}

// Entries returns the saved entries, oldest first. An absent slot is an
// empty list.
func (w *WatchList) Entries(ctx context.Context) (types.WatchList, error) {
	raw, ok, err := w.storage.Get(ctx, w.key)
	if err != nil {
		return nil, err
	}
	return decode(raw, ok)
}

// Append adds entry at the end of the list and returns the updated list.
// Duplicates are kept.
func (w *WatchList) Append(ctx context.Context, entry types.BookmarkEntry) (types.WatchList, error) {
	entry.Title = strings.TrimSpace(entry.Title)
	entry.URL = strings.TrimSpace(entry.URL)
	if entry.Title == "" || entry.URL == "" {
		return nil, ErrInvalidEntry
	}

	var updated types.WatchList
	err := w.storage.Update(ctx, w.key, func(old []byte, ok bool) ([]byte, error) {
		list, err := decode(old, ok)
		if err != nil {
			return nil, err
		}
		updated = append(list, entry)
		return json.Marshal(updated)
	})
	if err != nil {
		return nil, fmt.Errorf("saving %q: %w", entry.Title, err)
	}
	return updated, nil
}

// Remove deletes the entry at index and returns it.
func (w *WatchList) Remove(ctx context.Context, index int) (types.BookmarkEntry, error) {
	var removed types.BookmarkEntry
	err := w.storage.Update(ctx, w.key, func(old []byte, ok bool) ([]byte, error) {
		list, err := decode(old, ok)
		if err != nil {
			return nil, err
		}
		if index < 0 || index >= len(list) {
			return nil, fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, index, len(list))
		}
		removed = list[index]
		list = append(list[:index], list[index+1:]...)
		return json.Marshal(list)
	})
	if err != nil {
		return types.BookmarkEntry{}, err
	}
	return removed, nil
}

// Clear empties the watch list slot. Other slots are untouched.
func (w *WatchList) Clear(ctx context.Context) error {
	return w.storage.Delete(ctx, w.key)
}

func decode(raw []byte, ok bool) (types.WatchList, error) {
	if !ok || len(raw) == 0 {
		return types.WatchList{}, nil
	}
	var list types.WatchList
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("decoding watch list: %w", err)
	}
	if list == nil {
		list = types.WatchList{}
	}
	return list, nil
}
