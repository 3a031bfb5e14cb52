package flaticon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Search returns up to limit icons matching query, in the upstream's order.
// Results are accumulated a page at a time with a short pause between
// pages, stopping early when a page comes back empty or the pagination
// metadata says no pages remain.
func (c *Client) Search(ctx context.Context, query string, order Order, limit int) ([]Icon, error) {
	if !order.Valid() {
		return nil, fmt.Errorf("flaticon: invalid order %q", order)
	}
	if limit <= 0 {
		return nil, nil
	}

	var out []Icon
	for page := 1; len(out) < limit; page++ {
		size := limit - len(out)
		if size > maxPageSize {
			size = maxPageSize
		}
		icons, meta, err := c.searchPage(ctx, query, order, page, size)
		if err != nil {
			return nil, err
		}
		if len(icons) == 0 {
			break
		}
		out = append(out, icons...)
		if lastPage(meta, size, page) {
			break
		}
		if len(out) < limit {
			sleep(ctx, c.pageDelay)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SearchFirst returns the top-ranked icon for query, or nil when the search
// yields nothing. An empty result set is a miss, not an error.
func (c *Client) SearchFirst(ctx context.Context, query string, order Order) (*Icon, error) {
	icons, _, err := c.searchPage(ctx, query, order, 1, 1)
	if err != nil {
		return nil, err
	}
	if len(icons) == 0 {
		return nil, nil
	}
	icon := icons[0]
	return &icon, nil
}

func (c *Client) searchPage(ctx context.Context, query string, order Order, page, size int) ([]Icon, searchMetadata, error) {
	if !order.Valid() {
		return nil, searchMetadata{}, fmt.Errorf("flaticon: invalid order %q", order)
	}

	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(size))
	q.Set("page", strconv.Itoa(page))

	res, err := c.get(ctx, fmt.Sprintf("%s/search/icons/%s?%s", c.baseURL, order, q.Encode()))
	if err != nil {
		return nil, searchMetadata{}, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(res.Body, maxErrorBody))
		return nil, searchMetadata{}, &SearchError{Query: query, Status: res.StatusCode, Body: excerpt(b)}
	}

	var sr searchResponse
	if err := json.NewDecoder(res.Body).Decode(&sr); err != nil {
		return nil, searchMetadata{}, fmt.Errorf("flaticon: decode search response: %w", err)
	}
	return sr.Data, sr.Metadata, nil
}

// lastPage reports whether the metadata of the page just fetched indicates
// no further pages remain. The upstream reports the result count as either
// "total" or "count" depending on deployment.
func lastPage(meta searchMetadata, size, page int) bool {
	total := meta.Total
	if total == 0 {
		total = meta.Count
	}
	if total <= 0 || size <= 0 {
		return false
	}
	pages := (total + size - 1) / size
	return page >= pages
}
