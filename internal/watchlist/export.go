// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package watchlist

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/nao1215/markdown"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wiki-watch/pkg/types"
)

// Format selects the export encoding.
type Format string

const (
	FormatYAML     Format = "yaml"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
)

// ParseFormat maps a flag value to a Format. "md" is accepted for Markdown.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "yaml", "yml", "":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("unsupported format %q: use yaml, json, or markdown", s)
	}
}

// Export writes the watch list to w in the given format.
func (wl *WatchList) Export(ctx context.Context, format Format, w io.Writer) error {
	entries, err := wl.Entries(ctx)
	if err != nil {
		return err
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatMarkdown:
		return writeMarkdown(entries, w)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// ExportFile writes the watch list to path.
func (wl *WatchList) ExportFile(ctx context.Context, format Format, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := wl.Export(ctx, format, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeMarkdown(entries types.WatchList, w io.Writer) error {
	md := markdown.NewMarkdown(w)
	md.H1("Watch list")
	md.PlainText("")

	if len(entries) == 0 {
		md.PlainText("No saved articles.")
		return md.Build()
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		rows = append(rows, []string{strconv.Itoa(i + 1), markdown.Link(e.Title, e.URL)})
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Article"},
		Rows:   rows,
	})
	return md.Build()
}
