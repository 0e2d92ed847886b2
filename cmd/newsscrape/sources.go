package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/user/newsscrape-service/internal/entity"
)

func newSourcesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sources",
		Aliases: []string{"ls"},
		Short:   "List built-in sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tURLS")
			for _, s := range entity.DefaultSources() {
				fmt.Fprintf(w, "%s\t%s\n", s.Name, strings.Join(s.URLs, ", "))
			}
			return w.Flush()
		},
	}
}
