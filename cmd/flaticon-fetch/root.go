package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iconkit/flaticon-go/flaticon"
	"github.com/iconkit/flaticon-go/internal/fetch"
)

type config struct {
	APIKey string `env:"FLATICON_API_KEY"`
}

var (
	flagBase    string
	flagTimeout time.Duration
	flagVerbose bool

	flagFormat string
	flagSize   int
	flagOrder  string
	flagOut    string
)

var rootCmd = &cobra.Command{
	Use:           "flaticon-fetch",
	Short:         "Fetch icons from Flaticon via the official API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBase, "base", "", "override API base URL (for testing)")
	pf.DurationVar(&flagTimeout, "timeout", 30*time.Second, "HTTP request timeout")
	pf.BoolVar(&flagVerbose, "verbose", false, "log API requests to stderr")
	pf.StringVar(&flagFormat, "format", "png", "download format: png|svg")
	pf.IntVar(&flagSize, "size", 128, "PNG size (ignored for SVG)")
	pf.StringVar(&flagOrder, "order", "priority", "search order: priority|added")
	pf.StringVar(&flagOut, "out", "icons", "output directory")

	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(fetchCmd)
}

func validateFlags() error {
	if !flaticon.Format(flagFormat).Valid() {
		return fmt.Errorf("invalid --format %q (want png or svg)", flagFormat)
	}
	if !flaticon.Order(flagOrder).Valid() {
		return fmt.Errorf("invalid --order %q (want priority or added)", flagOrder)
	}
	return nil
}

// newClient reads the API key from the environment, builds a client, and
// performs the token exchange. A missing key exits with the reserved
// status 2 before any network call.
func newClient(cmd *cobra.Command) (*flaticon.Client, error) {
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		fmt.Fprintln(os.Stderr, "FLATICON_API_KEY is not set")
		os.Exit(2)
	}

	opts := []flaticon.Option{
		flaticon.WithHTTPClient(&http.Client{Timeout: flagTimeout}),
	}
	if flagBase != "" {
		opts = append(opts, flaticon.WithBaseURL(flagBase))
	}
	if flagVerbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, flaticon.WithLogger(logger))
	}

	client := flaticon.NewClient(opts...)
	if _, err := client.Authenticate(cmd.Context(), cfg.APIKey); err != nil {
		return nil, err
	}
	return client, nil
}

func newRunner(client *flaticon.Client, delayMS int) *fetch.Runner {
	return &fetch.Runner{
		Searcher:   client,
		Downloader: client,
		Format:     flaticon.Format(flagFormat),
		Size:       flagSize,
		Order:      flaticon.Order(flagOrder),
		OutDir:     flagOut,
		Delay:      time.Duration(delayMS) * time.Millisecond,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
	}
}
