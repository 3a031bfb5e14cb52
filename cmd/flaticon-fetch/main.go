// flaticon-fetch downloads icons from Flaticon via the official v3 API,
// either one icon per label from a text file (batch) or the top N results
// for a single query (fetch).
//
// Environment:
//
//	FLATICON_API_KEY  API secret; its absence exits with status 2.
//
// Exit codes: 0 after a completed run regardless of per-item failures,
// 1 for fatal errors such as a failed token exchange, 2 for a missing key.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
