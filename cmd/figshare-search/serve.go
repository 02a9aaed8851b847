package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/figshare-search/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the search page over HTTP",
	Long: `Serve starts an HTTP server with a search form, a filter form, and the result
cards. Each browser session keeps its own results until it expires.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return web.NewServer(newClient(cfg), cfg, log).Run(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default :8080)")
	serveCmd.Flags().Duration("session-ttl", 0, "how long an idle session keeps its results (default 2h)")

	viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))
	viper.BindPFlag("serve.session_ttl", serveCmd.Flags().Lookup("session-ttl"))

	rootCmd.AddCommand(serveCmd)
}
