// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/wiki-watch/internal/httputil"
	"github.com/pdiddy/wiki-watch/pkg/types"
)

const (
	// DefaultHost is the encyclopedia queried when no host is configured.
	DefaultHost = "https://de.wikipedia.org"

	// DefaultResultLimit is the srlimit sent when none is configured.
	DefaultResultLimit = 6

	apiPath     = "/w/api.php"
	articlePath = "/wiki/"

	// fixedParams are sent with every request, in this order, ahead of
	// srlimit and srsearch.
	fixedParams = "action=query&list=search&prop=info&inprop=url&utf8=&format=json&origin=*"
)

var (
	// ErrEmptyQuery is returned when the trimmed query has no text.
	ErrEmptyQuery = errors.New("search query is empty")

	// ErrNoResults is returned when the API answers with zero hits. Its
	// message is shown to the user verbatim.
	ErrNoResults = errors.New("No results found")
)

// Wikipedia queries the MediaWiki search API of one encyclopedia host.
type Wikipedia struct {
	client *http.Client
	cfg    types.SearchConfig
	logger *slog.Logger
}

// NewWikipedia returns a client for cfg. A nil client gets an http.Client
// with cfg.Timeout (zero means no timeout). A nil logger discards output.
func NewWikipedia(client *http.Client, cfg types.SearchConfig, logger *slog.Logger) *Wikipedia {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	cfg.Host = strings.TrimRight(cfg.Host, "/")
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Wikipedia{client: client, cfg: cfg, logger: logger}
}

// Name returns the backend identifier.
func (w *Wikipedia) Name() string { return "wikipedia" }

// Host returns the encyclopedia base URL the client queries.
func (w *Wikipedia) Host() string { return w.cfg.Host }

// Search issues one GET against the search API and returns the hits in API
// order. Zero hits yield ErrNoResults. No request is made for a query that
// is empty after trimming.
func (w *Wikipedia) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	query = norm.NFC.String(strings.TrimSpace(query))
	if query == "" {
		return nil, ErrEmptyQuery
	}

	reqURL := w.requestURL(query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if ua := w.userAgent(); ua != "" {
		req.Header.Set("User-Agent", ua)
	}

	w.logger.Debug("searching", "host", w.cfg.Host, "query", query)

	resp, err := httputil.DoWithRetry(ctx, w.client, req, w.cfg.MaxRetries, w.logger)
	if err != nil {
		return nil, fmt.Errorf("wikipedia API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wikipedia API returned HTTP %d", resp.StatusCode)
	}

	var wr wikipediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		return nil, fmt.Errorf("parsing wikipedia response: %w", err)
	}
	if wr.Error != nil {
		return nil, fmt.Errorf("wikipedia API error %s: %s", wr.Error.Code, wr.Error.Info)
	}
	if len(wr.Query.Search) == 0 {
		return nil, ErrNoResults
	}

	results := make([]types.SearchResult, 0, len(wr.Query.Search))
	for _, hit := range wr.Query.Search {
		results = append(results, types.SearchResult{
			Title:   hit.Title,
			Snippet: hit.Snippet,
			URL:     ArticleURL(w.cfg.Host, hit.Title),
		})
	}
	return results, nil
}

// requestURL builds the API URL. The parameter order is fixed; only the
// search term is escaped.
func (w *Wikipedia) requestURL(query string) string {
	return fmt.Sprintf("%s%s?%s&srlimit=%d&srsearch=%s",
		w.cfg.Host, apiPath, fixedParams, w.cfg.ResultLimit, url.QueryEscape(query))
}

func (w *Wikipedia) userAgent() string {
	switch {
	case w.cfg.UserAgent != "" && w.cfg.Contact != "":
		return fmt.Sprintf("%s (%s)", w.cfg.UserAgent, w.cfg.Contact)
	default:
		return w.cfg.UserAgent
	}
}

// ArticleURL returns the percent-encoded article URL for title on host.
// Spaces and reserved characters are escaped; path separators are kept.
func ArticleURL(host, title string) string {
	u := url.URL{Path: articlePath + title}
	return strings.TrimRight(host, "/") + u.EscapedPath()
}

// MediaWiki API JSON structures.
type wikipediaResponse struct {
	Query struct {
		SearchInfo struct {
			TotalHits int `json:"totalhits"`
		} `json:"searchinfo"`
		Search []wikipediaHit `json:"search"`
	} `json:"query"`
	Error *wikipediaError `json:"error"`
}

type wikipediaHit struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

type wikipediaError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}
