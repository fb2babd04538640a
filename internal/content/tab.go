// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package content runs the in-page side of wiki-watch. A Tab owns one host
// document, receives commands from the background process, and handles
// the events of the injected search UI: submit, clear, and save clicks.
//
// See DESIGN.md § Message Dispatcher.
package content

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/pdiddy/wiki-watch/internal/page"
	"github.com/pdiddy/wiki-watch/internal/search"
	"github.com/pdiddy/wiki-watch/pkg/types"
)

var (
	// ErrNotInjected is returned for UI events that arrive before the
	// search wrapper was injected and its handlers wired.
	ErrNotInjected = errors.New("search UI is not injected")

	// ErrStale is returned when a newer search was issued while this one
	// was in flight; its results are dropped.
	ErrStale = errors.New("search superseded by a newer one")

	// ErrNoItem is returned when a save click names no rendered result.
	ErrNoItem = errors.New("no rendered result at index")
)

// Bookmarker appends an entry to the persisted watch list.
type Bookmarker interface {
	Append(ctx context.Context, entry types.BookmarkEntry) (types.WatchList, error)
}

// Tab is one host page with the injected search UI. All document access is
// serialized; network calls run outside the lock.
type Tab struct {
	ID string

	searcher  search.Searcher
	bookmarks Bookmarker
	logger    *slog.Logger

	mu    sync.Mutex
	doc   *page.Document
	wired bool
	items []page.Item
	gen   uint64
}

// NewTab wraps doc. A nil logger discards output.
func NewTab(id string, doc *page.Document, searcher search.Searcher, bookmarks Bookmarker, logger *slog.Logger) *Tab {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Tab{
		ID:        id,
		doc:       doc,
		searcher:  searcher,
		bookmarks: bookmarks,
		logger:    logger.With("tab", id),
	}
}

// Render writes the current document to w.
func (t *Tab) Render(w io.Writer) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.doc.Render(w)
}

// Inject inserts the search wrapper and wires its handlers. A second call
// is a no-op and returns false.
func (t *Tab) Inject() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.injectLocked()
}

func (t *Tab) injectLocked() (bool, error) {
	injected, err := t.doc.InjectWrapper()
	if err != nil {
		return false, err
	}
	// Handlers are wired right after insertion; the elements exist once
	// InjectWrapper returns.
	t.wired = true
	if injected {
		t.logger.Debug("search UI injected")
	}
	return injected, nil
}

// Submit handles the search form: the input is trimmed and searched.
func (t *Tab) Submit(ctx context.Context, input string) error {
	t.mu.Lock()
	wired := t.wired
	t.mu.Unlock()
	if !wired {
		return ErrNotInjected
	}
	return t.Search(ctx, strings.TrimSpace(input))
}

// Clear handles the clear button: the results container is emptied.
func (t *Tab) Clear() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.wired {
		return ErrNotInjected
	}
	t.items = nil
	t.gen++ // a search still in flight must not repopulate the list
	return t.doc.ClearResults()
}

// Search queries the encyclopedia and mounts the outcome into the results
// container: the results on success, an error element otherwise. The
// search error is returned as well. The wrapper is injected first if it is
// missing. When a newer search or a clear happened meanwhile the outcome
// is dropped and ErrStale is returned.
func (t *Tab) Search(ctx context.Context, query string) error {
	t.mu.Lock()
	if _, err := t.injectLocked(); err != nil {
		t.mu.Unlock()
		return err
	}
	t.gen++
	gen := t.gen
	t.mu.Unlock()

	results, searchErr := t.searcher.Search(ctx, query)

	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		t.logger.Debug("dropping stale search", "query", query)
		return ErrStale
	}

	if searchErr != nil {
		t.items = nil
		if err := t.doc.DisplayError(searchErr.Error()); err != nil {
			return errors.Join(searchErr, err)
		}
		return searchErr
	}

	items, err := t.doc.RenderResults(results)
	if err != nil {
		t.items = nil
		return fmt.Errorf("rendering results: %w", err)
	}
	t.items = items
	t.logger.Debug("results rendered", "query", query, "count", len(items))
	return nil
}

// Items returns the handles of the currently rendered results.
func (t *Tab) Items() []page.Item {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]page.Item(nil), t.items...)
}

// Save handles a click on the save button of the result at index: the
// entry carried by that result is appended to the watch list.
func (t *Tab) Save(ctx context.Context, index int) (types.WatchList, error) {
	t.mu.Lock()
	if index < 0 || index >= len(t.items) {
		t.mu.Unlock()
		return nil, fmt.Errorf("%w %d", ErrNoItem, index)
	}
	entry := t.items[index].Entry
	t.mu.Unlock()

	list, err := t.bookmarks.Append(ctx, entry)
	if err != nil {
		return nil, err
	}
	t.logger.Info("article saved", "title", entry.Title, "watch_list_size", len(list))
	return list, nil
}
