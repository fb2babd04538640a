// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package page owns the host document a tab works on: it injects the
// search wrapper into the page and mounts search results and errors into
// the results container.
//
// Markup is produced by html/template so every value taken from the
// search API is escaped before it reaches the document. Mutation and
// lookup go through goquery.
package page

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Element identifiers of the injected UI.
const (
	WrapperID       = "wikiSearchWrapper"
	FormID          = "searchForm"
	InputID         = "searchFormInput"
	SubmitID        = "submitSearch"
	ClearID         = "clearSearch"
	ResultWrapperID = "resultWrapper"
	ResultsID       = "searchResults"
)

// Class markers carried by rendered results.
const (
	ItemClass    = "resultItem"
	TitleClass   = "resultTitle"
	SaveClass    = "saveArticle"
	SnippetClass = "resultSnippet"
	LinkClass    = "resultLink"
	ErrorClass   = "errorMessage"
)

// Placeholder is the hint shown in the empty search input.
const Placeholder = "Search on Wikipedia"

// BlankPage is used when a tab is opened without host markup.
const BlankPage = "<!DOCTYPE html><html><head></head><body></body></html>"

var (
	// ErrNoBody is returned when the document has no <body> to inject into.
	ErrNoBody = errors.New("document has no body element")

	// ErrNoContainer is returned when #searchResults is missing.
	ErrNoContainer = errors.New("results container not found")
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Document is a parsed host page. It is not safe for concurrent use; the
// owning tab serializes access.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML document from r. Fragments and empty input are
// completed into a full document by the HTML parser.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString parses markup held in a string. An empty string yields
// BlankPage.
func ParseString(markup string) (*Document, error) {
	if strings.TrimSpace(markup) == "" {
		markup = BlankPage
	}
	return Parse(strings.NewReader(markup))
}

// Find returns the elements matching a CSS selector.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// Render writes the whole document as HTML to w.
func (d *Document) Render(w io.Writer) error {
	for _, n := range d.doc.Nodes {
		if err := html.Render(w, n); err != nil {
			return fmt.Errorf("rendering document: %w", err)
		}
	}
	return nil
}

// String returns the rendered document, or an empty string if rendering
// fails.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// execute renders a named template into a string.
func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing %s template: %w", name, err)
	}
	return buf.String(), nil
}
