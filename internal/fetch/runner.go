package fetch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/iconkit/flaticon-go/flaticon"
)

// Searcher finds icons for a query. *flaticon.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, order flaticon.Order, limit int) ([]flaticon.Icon, error)
	SearchFirst(ctx context.Context, query string, order flaticon.Order) (*flaticon.Icon, error)
}

// Downloader persists one icon asset. *flaticon.Client satisfies it.
type Downloader interface {
	Download(ctx context.Context, id int, format flaticon.Format, size int, dest string) (string, error)
}

// Summary tallies one run. Misses count as failures.
type Summary struct {
	Succeeded int
	Failed    int
}

// Runner drives search-then-download over a batch of work items. Items are
// processed strictly sequentially with Delay between them; a failed item is
// reported and counted, never aborts the run.
type Runner struct {
	Searcher   Searcher
	Downloader Downloader

	Format flaticon.Format
	Size   int
	Order  flaticon.Order
	OutDir string
	Delay  time.Duration

	Out    io.Writer // per-item OK lines and the final summary
	ErrOut io.Writer // misses and failures
}

// RunLabels processes one label at a time: normalize it into a query, take
// the top search result, and download it under a filename derived from the
// original label. No result, or a result without an id, is a miss.
func (r *Runner) RunLabels(ctx context.Context, labels []string) (Summary, error) {
	if err := r.ensureOutDir(); err != nil {
		return Summary{}, err
	}

	var sum Summary
	for i, label := range labels {
		if i > 0 {
			sleep(ctx, r.Delay)
		}
		query := NormalizeQuery(label)
		dest := filepath.Join(r.OutDir, SafeFilename(label)+"."+string(r.Format))

		icon, err := r.Searcher.SearchFirst(ctx, query, r.Order)
		switch {
		case err != nil:
			sum.Failed++
			fmt.Fprintf(r.ErrOut, "ERR  | label=%q | query=%q | %v\n", label, query, err)
		case icon == nil:
			sum.Failed++
			fmt.Fprintf(r.ErrOut, "MISS | label=%q | query=%q | reason=no results\n", label, query)
		case icon.ID == 0:
			sum.Failed++
			fmt.Fprintf(r.ErrOut, "MISS | label=%q | query=%q | reason=missing id\n", label, query)
		default:
			if _, err := r.Downloader.Download(ctx, icon.ID, r.Format, r.Size, dest); err != nil {
				sum.Failed++
				fmt.Fprintf(r.ErrOut, "ERR  | label=%q | query=%q | %v\n", label, query, err)
			} else {
				sum.Succeeded++
				fmt.Fprintf(r.Out, "OK   | label=%q | query=%q | id=%d | -> %s\n", label, query, icon.ID, dest)
			}
		}
	}

	fmt.Fprintf(r.Out, "Done. %d succeeded, %d failed. Output: %s\n", sum.Succeeded, sum.Failed, r.OutDir)
	return sum, nil
}

// RunQuery fetches up to limit results for a single query and downloads
// every one of them under id-derived filenames. Records without an id are
// skipped. A failed search is fatal here: with one query there is nothing
// left to continue with.
func (r *Runner) RunQuery(ctx context.Context, query string, limit int) (Summary, error) {
	if err := r.ensureOutDir(); err != nil {
		return Summary{}, err
	}

	icons, err := r.Searcher.Search(ctx, query, r.Order, limit)
	if err != nil {
		return Summary{}, err
	}
	fmt.Fprintf(r.Out, "Found %d results; downloading up to %d\n", len(icons), limit)

	var sum Summary
	for i, icon := range icons {
		if i > 0 {
			sleep(ctx, r.Delay)
		}
		if icon.ID == 0 {
			continue
		}
		dest := filepath.Join(r.OutDir, strconv.Itoa(icon.ID)+"."+string(r.Format))
		if _, err := r.Downloader.Download(ctx, icon.ID, r.Format, r.Size, dest); err != nil {
			sum.Failed++
			fmt.Fprintf(r.ErrOut, "✖ %d: %v\n", icon.ID, err)
			continue
		}
		sum.Succeeded++
		fmt.Fprintf(r.Out, "✔ %d -> %s\n", icon.ID, dest)
	}

	fmt.Fprintf(r.Out, "Done. Downloaded %d file(s) to %s\n", sum.Succeeded, r.OutDir)
	return sum, nil
}

func (r *Runner) ensureOutDir() error {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return errors.Wrap(err, "create output dir")
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
