package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var envFile string

	root := &cobra.Command{
		Use:   "newsscrape",
		Short: "Scrape news sources into a single report",
		Long: `newsscrape opens each source's pages in a headless browser, follows links
to articles whose titles match the keywords, and publishes a report.

Example usage:
  newsscrape sources                         # List built-in sources
  newsscrape run --keyword election          # Scrape every built-in source
  newsscrape run --source BBC --publisher pdf
  newsscrape run --sources sources.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&envFile, "env", ".env", "env file with configuration overrides")

	root.AddCommand(newRunCmd(&envFile), newSourcesCmd())
	return root
}
