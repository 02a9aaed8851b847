// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the figshare-search CLI. It wires
// configuration, logging, and the figshare client into the search, serve,
// and tui subcommands.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/figshare-search/internal/figshare"
	"github.com/pdiddy/figshare-search/internal/logging"
	"github.com/pdiddy/figshare-search/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// log is configured in PersistentPreRunE from the log.* settings.
var log = logging.Discard()

// rootCmd is the base command for the figshare-search CLI.
var rootCmd = &cobra.Command{
	Use:   "figshare-search",
	Short: "Search figshare research data and filter the results",
	Long: `figshare-search queries the public figshare article search API, keeps the
returned records in memory, renders them as cards, and filters them locally by
substring over title and description.

Use "search" for a one-shot query, "serve" for the web page, and "tui" for the
interactive terminal interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := logging.New(loadConfig().Log, os.Stderr)
		if err != nil {
			return err
		}
		log = l
		if f := viper.ConfigFileUsed(); f != "" {
			log.WithField("file", f).Debug("using config file")
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./figshare-search.yaml or ~/.config/figshare-search/figshare-search.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text or json")
	rootCmd.PersistentFlags().String("endpoint", "", "figshare article search endpoint")

	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("search.endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("figshare-search")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "figshare-search"))
		}
	}

	viper.SetEnvPrefix("FIGSHARE_SEARCH")
	viper.SetEnvKeyReplacer(envKeyReplacer)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintln(os.Stderr, "warning: reading config:", err)
		}
	}
}

// loadConfig reads all settings from viper and fills in defaults.
func loadConfig() types.Config {
	cfg := types.Config{
		Search: types.SearchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   viper.GetDuration("http.timeout"),
				UserAgent: viper.GetString("http.user_agent"),
			},
			Endpoint:   viper.GetString("search.endpoint"),
			MaxRetries: viper.GetInt("search.max_retries"),
		},
		Render: types.RenderConfig{
			DescriptionLimit: viper.GetInt("render.description_limit"),
		},
		Serve: types.ServeConfig{
			Addr:           viper.GetString("serve.addr"),
			SessionTTL:     viper.GetDuration("serve.session_ttl"),
			AllowedOrigins: viper.GetStringSlice("serve.allowed_origins"),
		},
		Log: types.LogConfig{
			Level:  viper.GetString("log.level"),
			Format: viper.GetString("log.format"),
		},
	}
	return cfg.WithDefaults()
}

// newClient returns a figshare client for cfg.
func newClient(cfg types.Config) *figshare.Client {
	if cfg.Search.UserAgent == types.DefaultUserAgent && version != "dev" {
		cfg.Search.UserAgent = "figshare-search/" + version
	}
	return figshare.NewClient(cfg.Search, nil, log)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
