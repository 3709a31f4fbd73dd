package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/monster-js/documentation/internal/build"
	"github.com/monster-js/documentation/internal/site"
)

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Builds the static site from the site config, docs and static assets",
	Long: `The build command renders the homepage, every Markdown file under
'./docs/' and one index page per docs category, copies './static/' as-is,
writes the sitemap and checks every internal link of the result. The site
is written to the configured output directory (default './build/').`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runBuild(cmd.Context())
		return err
	},
}

func runBuild(ctx context.Context) (*build.Result, error) {
	cfg, err := site.Load(appConfig.SiteFile)
	if err != nil {
		return nil, err
	}
	return build.Run(ctx, appConfig, cfg, logger)
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
