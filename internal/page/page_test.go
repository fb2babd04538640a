// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package page

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wiki-watch/internal/search"
	"github.com/pdiddy/wiki-watch/pkg/types"
)

const hostPage = `<!DOCTYPE html>
<html><head><title>Host</title></head>
<body><p id="hostContent">Die Turingmaschine ist ein Rechnermodell.</p></body></html>`

func injectedDoc(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(hostPage)
	require.NoError(t, err)
	injected, err := doc.InjectWrapper()
	require.NoError(t, err)
	require.True(t, injected)
	return doc
}

func results(titles ...string) []types.SearchResult {
	out := make([]types.SearchResult, len(titles))
	for i, title := range titles {
		out[i] = types.SearchResult{
			Title:   title,
			Snippet: fmt.Sprintf(`<span class="searchmatch">%s</span> snippet`, title),
			URL:     search.ArticleURL(search.DefaultHost, title),
		}
	}
	return out
}

// --- parsing ---

func TestParseStringEmptyYieldsBlankPage(t *testing.T) {
	doc, err := ParseString("   ")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Find("body").Length())
	assert.Contains(t, doc.String(), "<body></body>")
}

func TestRenderRoundTripsHostContent(t *testing.T) {
	doc, err := ParseString(hostPage)
	require.NoError(t, err)
	out := doc.String()
	assert.Contains(t, out, `<p id="hostContent">`)
	assert.Contains(t, out, "<title>Host</title>")
}

// --- injection ---

func TestInjectWrapperStructure(t *testing.T) {
	doc := injectedDoc(t)

	first := doc.Find("body").Children().First()
	id, _ := first.Attr("id")
	assert.Equal(t, WrapperID, id, "wrapper must be the first child of body")

	for _, sel := range []string{
		"#" + FormID + " form",
		"#" + InputID,
		"#" + SubmitID,
		"#" + ClearID,
		"#" + ResultWrapperID + " > section#" + ResultsID,
	} {
		assert.Equal(t, 1, doc.Find(sel).Length(), "selector %s", sel)
	}

	placeholder, _ := doc.Find("#" + InputID).Attr("placeholder")
	assert.Equal(t, Placeholder, placeholder)
	assert.Equal(t, 0, doc.ResultCount())

	// Host content stays after the wrapper.
	assert.Equal(t, 1, doc.Find("#"+WrapperID+" ~ #hostContent").Length())
}

func TestInjectWrapperIsIdempotent(t *testing.T) {
	doc := injectedDoc(t)

	injected, err := doc.InjectWrapper()
	require.NoError(t, err)
	assert.False(t, injected)
	assert.Equal(t, 1, doc.Find("#"+WrapperID).Length())
	assert.True(t, doc.Injected())
}

func TestInjectWrapperNoBody(t *testing.T) {
	doc, err := ParseString(`<html><head></head><frameset><frame src="a.html"></frameset></html>`)
	require.NoError(t, err)

	_, err = doc.InjectWrapper()
	assert.ErrorIs(t, err, ErrNoBody)
	assert.False(t, doc.Injected())
}

// --- rendering ---

func TestRenderResults(t *testing.T) {
	doc := injectedDoc(t)
	res := results("Alan Turing", "Turing-Maschine", "Go (Programmiersprache)")

	items, err := doc.RenderResults(res)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, 3, doc.ResultCount())

	children := doc.Find("#" + ResultsID).Children()
	for i, r := range res {
		child := children.Eq(i)
		assert.True(t, child.HasClass(ItemClass))

		href, _ := child.Find("h2." + TitleClass + " a").Attr("href")
		assert.Equal(t, search.DefaultHost+"/wiki/"+strings.NewReplacer(" ", "%20", "(", "%28", ")", "%29").Replace(r.Title), href)
		assert.Equal(t, r.Title, child.Find("h2."+TitleClass+" a").Text())

		target, _ := child.Find("a." + LinkClass).Attr("target")
		assert.Equal(t, "_blank", target)
		assert.Equal(t, r.URL, child.Find("a."+LinkClass).Text())

		assert.Equal(t, r.Title+" snippet", child.Find("span."+SnippetClass).Text())

		btn := items[i].Button()
		title, _ := btn.Attr("data-title")
		url, _ := btn.Attr("data-url")
		assert.Equal(t, r.Title, title)
		assert.Equal(t, r.URL, url)

		assert.Equal(t, i, items[i].Index)
		assert.Equal(t, types.BookmarkEntry{Title: r.Title, URL: r.URL}, items[i].Entry)
	}
}

func TestRenderResultsReplacesPriorContent(t *testing.T) {
	doc := injectedDoc(t)

	_, err := doc.RenderResults(results("A", "B", "C"))
	require.NoError(t, err)
	_, err = doc.RenderResults(results("D"))
	require.NoError(t, err)

	assert.Equal(t, 1, doc.ResultCount())
	assert.Equal(t, "D", doc.Find("."+ItemClass+" h2 a").Text())
}

func TestRenderResultsEscapesSnippetAndTitle(t *testing.T) {
	doc := injectedDoc(t)
	res := []types.SearchResult{{
		Title:   `<img src=x onerror=alert(1)>`,
		Snippet: `<script>alert("xss")</script><b>bold</b>`,
		URL:     "https://de.wikipedia.org/wiki/X",
	}}

	_, err := doc.RenderResults(res)
	require.NoError(t, err)

	assert.Equal(t, 0, doc.Find("#"+ResultsID+" script").Length())
	assert.Equal(t, 0, doc.Find("#"+ResultsID+" img").Length())
	assert.Equal(t, 0, doc.Find("#"+ResultsID+" b").Length())
	assert.Contains(t, doc.Find("span."+SnippetClass).Text(), "bold")
	assert.Equal(t, `<img src=x onerror=alert(1)>`, doc.Find("h2."+TitleClass+" a").Text())
}

func TestRenderResultsNoContainer(t *testing.T) {
	doc, err := ParseString(hostPage)
	require.NoError(t, err)

	_, err = doc.RenderResults(results("A"))
	assert.ErrorIs(t, err, ErrNoContainer)
	assert.ErrorIs(t, doc.DisplayError("x"), ErrNoContainer)
	assert.ErrorIs(t, doc.ClearResults(), ErrNoContainer)
	assert.Equal(t, 0, doc.ResultCount())
}

// --- errors and clearing ---

func TestDisplayError(t *testing.T) {
	doc := injectedDoc(t)
	_, err := doc.RenderResults(results("A", "B"))
	require.NoError(t, err)

	require.NoError(t, doc.DisplayError(search.ErrNoResults.Error()))

	assert.Equal(t, 1, doc.ResultCount())
	errs := doc.Find("#" + ResultsID + " h3." + ErrorClass)
	require.Equal(t, 1, errs.Length())
	assert.Equal(t, "No results found", errs.Text())
}

func TestDisplayErrorEscapesMessage(t *testing.T) {
	doc := injectedDoc(t)
	require.NoError(t, doc.DisplayError(`<i>boom</i>`))

	assert.Equal(t, 0, doc.Find("#"+ResultsID+" i").Length())
	assert.Equal(t, "<i>boom</i>", doc.Find("h3."+ErrorClass).Text())
}

func TestClearResults(t *testing.T) {
	doc := injectedDoc(t)
	_, err := doc.RenderResults(results("A", "B"))
	require.NoError(t, err)

	require.NoError(t, doc.ClearResults())
	assert.Equal(t, 0, doc.ResultCount())
	assert.True(t, doc.Injected())
}
