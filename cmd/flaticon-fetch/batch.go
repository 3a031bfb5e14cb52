package main

import (
	"github.com/spf13/cobra"

	"github.com/iconkit/flaticon-go/internal/fetch"
)

var (
	batchFile    string
	batchDelayMS int
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Download one icon per label from a text file",
	Long: `Read labels from a file (one per line, blank lines and # comments
skipped), normalize each into a search query, take the top result, and
download it under a filename derived from the label.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFlags(); err != nil {
			return err
		}
		client, err := newClient(cmd)
		if err != nil {
			return err
		}
		labels, err := fetch.ReadLabelsFile(batchFile)
		if err != nil {
			return err
		}
		_, err = newRunner(client, batchDelayMS).RunLabels(cmd.Context(), labels)
		return err
	},
}

func init() {
	batchCmd.Flags().StringVar(&batchFile, "file", "", "path to a text file with one label per line")
	batchCmd.Flags().IntVar(&batchDelayMS, "delay-ms", 200, "delay between items (ms)")
	_ = batchCmd.MarkFlagRequired("file")
}
