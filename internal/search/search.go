// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search queries the encyclopedia search API and formats results
// for the command line.
//
// See DESIGN.md § Remote Search Client.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/wiki-watch/pkg/types"
)

// Searcher runs a single search. Wikipedia implements it; tests substitute
// fakes.
type Searcher interface {
	Search(ctx context.Context, query string) ([]types.SearchResult, error)
}

// SnippetText reduces an API snippet to plain text: inline markup is
// dropped and entities are decoded. The result still needs escaping
// before it is placed in markup.
func SnippetText(snippet string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(snippet))
	if err != nil {
		return snippet
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// FormatTable writes results as a human-readable table to w.
func FormatTable(results []types.SearchResult, w io.Writer) {
	if len(results) == 0 {
		fmt.Fprintln(w, ErrNoResults.Error())
		return
	}

	fmt.Fprintf(w, "%-4s  %-40s  %s\n", "Rank", "Title", "Snippet")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for i, r := range results {
		fmt.Fprintf(w, "%-4d  %-40s  %s\n", i+1, truncate(r.Title, 40), truncate(SnippetText(r.Snippet), 54))
		fmt.Fprintf(w, "      %s\n", r.URL)
	}

	fmt.Fprintf(w, "\n%d results\n", len(results))
}

// FormatJSON writes results as indented JSON to w.
func FormatJSON(results []types.SearchResult, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
