package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/monster-js/documentation/internal/config"
)

var cfgFile string
var appConfig config.Config
var logger = slog.Default()

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"out-dir":    "outputDir",
	"docs-dir":   "docsDir",
	"static-dir": "staticDir",
	"site":       "siteFile",
	"port":       "port",
	"verbose":    "verbose",
}

var rootCmd = &cobra.Command{
	Use:   "monster-docs",
	Short: "Builds the MonsterJS documentation website",
	Long: `monster-docs turns the site configuration and the Markdown files in
./docs/ into the static MonsterJS website: homepage, documentation pages,
category indexes and sitemap.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	flags.String("out-dir", "build", "directory the site is written to")
	flags.String("docs-dir", "docs", "directory holding the Markdown docs")
	flags.String("static-dir", "static", "directory of static assets copied as-is")
	flags.String("site", "site.yaml", "site configuration overrides")
	flags.BoolP("verbose", "v", false, "enable debug logging")
}

func initializeConfig(cmd *cobra.Command) error {
	v := viper.New()

	for key, value := range config.Defaults {
		v.SetDefault(key, value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("MONSTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag --%s: %w", flag, err)
			}
		}
	}

	configUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configUsed = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}

	logger = newLogger(appConfig.Verbose)
	slog.SetDefault(logger)
	if configUsed != "" {
		logger.Debug("Using config file", "path", configUsed)
	}
	return nil
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
