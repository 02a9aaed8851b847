package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/figshare-search/internal/controller"
	"github.com/pdiddy/figshare-search/internal/render"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search figshare and print the results as cards",
	Long: `Search sends one query to the figshare article search API and prints the
returned records as cards, in the order the API returned them. With --filter,
only records whose title or description contains the term (case-insensitive)
are printed.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("query", "q", "", "search term sent to figshare")
	searchCmd.Flags().String("filter", "", "keep only results whose title or description contains this text")
	searchCmd.Flags().String("format", "text", "output format: text, html, json, yaml, or csl")
	searchCmd.Flags().StringP("output", "o", "", "write output to this file instead of stdout")
	searchCmd.Flags().Int("description-limit", 0, "characters of description shown before truncation (default 200)")

	viper.BindPFlag("render.description_limit", searchCmd.Flags().Lookup("description-limit"))

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" && len(args) > 0 {
		query = args[0]
	}
	filter, _ := cmd.Flags().GetString("filter")
	formatName, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("output")

	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	cfg := loadConfig()
	ctrl := controller.New(newClient(cfg), log)

	if err := ctrl.Search(cmd.Context(), query); err != nil {
		return err
	}
	displayed := ctrl.Filter(filter)

	var w io.Writer = cmd.OutOrStdout()
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	title := fmt.Sprintf("figshare results for %q", ctrl.Snapshot().Query)
	if err := render.Write(w, format, displayed, cfg.Render, title); err != nil {
		return err
	}

	if outPath != "" {
		log.WithField("file", outPath).WithField("results", len(displayed)).Info("wrote results")
	}
	return nil
}
