// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/wiki-watch/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the encyclopedia and print the results",
	Long: `Search sends one query to the encyclopedia search API and prints the hits
with their article URLs. The query is trimmed; an empty query is rejected
without contacting the API.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client := search.NewWikipedia(nil, cfg.Search, logger)
	results, err := client.Search(cmd.Context(), strings.Join(args, " "))
	if errors.Is(err, search.ErrNoResults) {
		search.FormatTable(nil, os.Stdout)
		return nil
	}
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return search.FormatJSON(results, os.Stdout)
	}
	search.FormatTable(results, os.Stdout)
	return nil
}

func init() {
	searchCmd.Flags().Int("limit", search.DefaultResultLimit, "maximum number of results (srlimit)")
	searchCmd.Flags().Int("max-retries", 0, "retries on HTTP 429 (0 disables retries)")
	searchCmd.Flags().Duration("timeout", 0, "HTTP timeout (0 means none)")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	_ = viper.BindPFlag("search.result_limit", searchCmd.Flags().Lookup("limit"))
	_ = viper.BindPFlag("search.max_retries", searchCmd.Flags().Lookup("max-retries"))
	_ = viper.BindPFlag("search.timeout", searchCmd.Flags().Lookup("timeout"))

	rootCmd.AddCommand(searchCmd)
}
