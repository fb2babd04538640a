// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/wiki-watch/internal/search"
	"github.com/pdiddy/wiki-watch/pkg/types"
)

// Item is the handle for one rendered result. Tabs keep the handles
// returned by RenderResults and resolve save clicks through them instead
// of scanning the document for buttons.
type Item struct {
	Index     int
	Entry     types.BookmarkEntry
	Selection *goquery.Selection
}

// Button returns the item's save button.
func (i Item) Button() *goquery.Selection {
	return i.Selection.Find("button." + SaveClass)
}

type resultView struct {
	Index   int
	Title   string
	URL     string
	Snippet string
}

func (d *Document) container() (*goquery.Selection, error) {
	c := d.doc.Find("#" + ResultsID).First()
	if c.Length() == 0 {
		return nil, ErrNoContainer
	}
	return c, nil
}

// RenderResults replaces the content of the results container with one
// item per result, in order, and returns a handle per item.
func (d *Document) RenderResults(results []types.SearchResult) ([]Item, error) {
	c, err := d.container()
	if err != nil {
		return nil, err
	}
	c.Empty()

	items := make([]Item, 0, len(results))
	for i, r := range results {
		markup, err := execute("result", resultView{
			Index:   i,
			Title:   r.Title,
			URL:     r.URL,
			Snippet: search.SnippetText(r.Snippet),
		})
		if err != nil {
			c.Empty()
			return nil, err
		}
		c.AppendHtml(markup)

		items = append(items, Item{
			Index:     i,
			Entry:     r.Entry(),
			Selection: c.Children().Last(),
		})
	}
	return items, nil
}

// DisplayError replaces the content of the results container with a
// single error element showing msg as text.
func (d *Document) DisplayError(msg string) error {
	c, err := d.container()
	if err != nil {
		return err
	}
	markup, err := execute("error", msg)
	if err != nil {
		return err
	}
	c.Empty()
	c.AppendHtml(markup)
	return nil
}

// ClearResults empties the results container.
func (d *Document) ClearResults() error {
	c, err := d.container()
	if err != nil {
		return err
	}
	c.Empty()
	return nil
}

// ResultCount returns the number of elements in the results container.
func (d *Document) ResultCount() int {
	c, err := d.container()
	if err != nil {
		return 0
	}
	return c.Children().Length()
}
