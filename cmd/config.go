package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/monster-js/documentation/internal/site"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Prints the effective site configuration",
	Long: `The config command prints the site configuration as YAML: the built-in
defaults merged with the site file, then validates it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := site.Load(appConfig.SiteFile)
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("failed to encode site configuration: %w", err)
		}
		if _, err := cmd.OutOrStdout().Write(out); err != nil {
			return err
		}
		return cfg.Validate()
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}
