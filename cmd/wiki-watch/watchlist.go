// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/wiki-watch/internal/search"
	"github.com/pdiddy/wiki-watch/internal/watchlist"
	"github.com/pdiddy/wiki-watch/pkg/types"
)

var watchlistCmd = &cobra.Command{
	Use:   "watchlist",
	Short: "Inspect and maintain the watch list (list, add, remove, export, clear)",
	Long: `Watchlist manages the saved articles kept in the synced storage database.
Use subcommands to list, add, remove, export, or clear entries.`,
}

// --- list subcommand ---

var watchlistListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print saved articles, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withWatchList(func(wl *watchlist.WatchList) error {
			entries, err := wl.Entries(cmd.Context())
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No saved articles.")
				return nil
			}
			fmt.Fprintf(os.Stdout, "%-4s  %-40s  %s\n", "#", "Title", "URL")
			fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
			for i, e := range entries {
				fmt.Fprintf(os.Stdout, "%-4d  %-40s  %s\n", i+1, e.Title, e.URL)
			}
			fmt.Fprintf(os.Stdout, "\n%d articles\n", len(entries))
			return nil
		})
	},
}

// --- add subcommand ---

var watchlistAddCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Save an article by title",
	Long: `Add appends an article to the watch list. The URL is derived from the
title and the configured encyclopedia host unless --url is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		title := strings.Join(args, " ")
		url, _ := cmd.Flags().GetString("url")
		if url == "" {
			url = search.ArticleURL(cfg.Search.Host, title)
		}

		return withWatchList(func(wl *watchlist.WatchList) error {
			list, err := wl.Append(cmd.Context(), types.BookmarkEntry{Title: title, URL: url})
			if err != nil {
				return err
			}
			fmt.Printf("Saved %q (%d articles)\n", title, len(list))
			return nil
		})
	},
}

// --- remove subcommand ---

var watchlistRemoveCmd = &cobra.Command{
	Use:   "remove <number>",
	Short: "Remove the article at a position shown by list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid position %q: %w", args[0], err)
		}
		return withWatchList(func(wl *watchlist.WatchList) error {
			removed, err := wl.Remove(cmd.Context(), n-1)
			if err != nil {
				return err
			}
			fmt.Printf("Removed %q\n", removed.Title)
			return nil
		})
	},
}

// --- export subcommand ---

var watchlistExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the watch list to YAML, JSON, or Markdown",
	RunE: func(cmd *cobra.Command, args []string) error {
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := watchlist.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		output, _ := cmd.Flags().GetString("output")

		return withWatchList(func(wl *watchlist.WatchList) error {
			if output == "" || output == "-" {
				return wl.Export(cmd.Context(), format, os.Stdout)
			}
			if err := wl.ExportFile(cmd.Context(), format, output); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
			return nil
		})
	},
}

// --- clear subcommand ---

var watchlistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every saved article",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to clear the watch list without --yes")
		}
		return withWatchList(func(wl *watchlist.WatchList) error {
			if err := wl.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Watch list cleared.")
			return nil
		})
	},
}

// --- shared helpers ---

// withWatchList opens the configured storage for the duration of fn.
func withWatchList(fn func(*watchlist.WatchList) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := watchlist.Open(cfg.Storage)
	if err != nil {
		return err
	}
	defer store.Close()
	return fn(watchlist.New(store))
}

func init() {
	watchlistAddCmd.Flags().String("url", "", "article URL (default: derived from the title)")

	watchlistExportCmd.Flags().String("format", "yaml", "export format: yaml, json, or markdown")
	watchlistExportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	watchlistClearCmd.Flags().Bool("yes", false, "confirm clearing the watch list")

	watchlistCmd.AddCommand(watchlistListCmd)
	watchlistCmd.AddCommand(watchlistAddCmd)
	watchlistCmd.AddCommand(watchlistRemoveCmd)
	watchlistCmd.AddCommand(watchlistExportCmd)
	watchlistCmd.AddCommand(watchlistClearCmd)

	rootCmd.AddCommand(watchlistCmd)
}
