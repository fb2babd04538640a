// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"errors"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/pdiddy/wiki-watch/internal/page"
	"github.com/pdiddy/wiki-watch/internal/search"
)

// ErrNotFound is returned for an unknown tab id.
var ErrNotFound = errors.New("tab not found")

// Manager keeps the open tabs. All tabs share one searcher and one watch
// list.
type Manager struct {
	searcher  search.Searcher
	bookmarks Bookmarker
	logger    *slog.Logger

	mu   sync.RWMutex
	tabs map[string]*Tab
}

// NewManager returns an empty manager. A nil logger discards output.
func NewManager(searcher search.Searcher, bookmarks Bookmarker, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Manager{
		searcher:  searcher,
		bookmarks: bookmarks,
		logger:    logger,
		tabs:      make(map[string]*Tab),
	}
}

// Open parses markup as a host page and registers a new tab for it. Empty
// markup opens a blank page.
func (m *Manager) Open(markup string) (*Tab, error) {
	doc, err := page.ParseString(markup)
	if err != nil {
		return nil, err
	}
	t := NewTab(uuid.New().String(), doc, m.searcher, m.bookmarks, m.logger)

	m.mu.Lock()
	m.tabs[t.ID] = t
	m.mu.Unlock()

	m.logger.Debug("tab opened", "tab", t.ID)
	return t, nil
}

// Get returns the tab with id.
func (m *Manager) Get(id string) (*Tab, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tabs[id]
	return t, ok
}

// List returns the ids of all open tabs in lexical order.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.tabs))
	for id := range m.tabs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close forgets the tab with id.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tabs[id]; !ok {
		return ErrNotFound
	}
	delete(m.tabs, id)
	return nil
}
