package main

import (
	"github.com/spf13/cobra"
)

var (
	fetchQuery   string
	fetchLimit   int
	fetchDelayMS int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the top N icons for a single query",
	Long: `Search for a query, paging through results up to the limit, and
download every match under an id-derived filename.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFlags(); err != nil {
			return err
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		_, err = newRunner(client, fetchDelayMS).RunQuery(cmd.Context(), fetchQuery, fetchLimit)
		return err
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchQuery, "query", "", "search term, e.g. 'api'")
	fetchCmd.Flags().IntVar(&fetchLimit, "limit", 10, "max icons to fetch")
	fetchCmd.Flags().IntVar(&fetchDelayMS, "delay-ms", 150, "delay between items (ms)")
	_ = fetchCmd.MarkFlagRequired("query")
}
