package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/figshare-search/internal/controller"
	"github.com/pdiddy/figshare-search/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Search and filter interactively in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		// Logs would corrupt the alternate screen.
		log.SetOutput(io.Discard)

		ctrl := controller.New(newClient(cfg), log)
		p := tea.NewProgram(tui.New(cmd.Context(), ctrl, cfg.Render), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
