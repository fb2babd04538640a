// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for wiki-watch.
// Implements: search results returned by the encyclopedia client,
// bookmark entries, and the persisted watch list.
//
// See DESIGN.md § Data model.
package types

// SearchResult is one hit returned by the encyclopedia search API.
// Results are created per response item and are not retained once rendered.
type SearchResult struct {
	// Title is the article title as returned by the API.
	Title string `json:"title" yaml:"title"`

	// Snippet is the highlighted excerpt. The API returns it with inline
	// markup (e.g. <span class="searchmatch">); consumers must treat it as
	// untrusted.
	Snippet string `json:"snippet" yaml:"snippet"`

	// URL is the article URL derived from Title.
	URL string `json:"url" yaml:"url"`
}

// Entry returns the bookmark entry for this result.
func (r SearchResult) Entry() BookmarkEntry {
	return BookmarkEntry{Title: r.Title, URL: r.URL}
}

// BookmarkEntry is a saved article. No uniqueness is enforced; saving the
// same article twice yields two entries.
type BookmarkEntry struct {
	Title string `json:"title" yaml:"title"`
	URL   string `json:"url" yaml:"url"`
}

// WatchList is the ordered sequence of saved entries, oldest first.
type WatchList []BookmarkEntry

// WatchListKey is the storage slot the watch list is persisted under.
const WatchListKey = "watchList"
