package flaticon

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// searchHandler serves /app/authentication plus /search/icons/{order},
// delegating page requests to page.
func searchHandler(t *testing.T, order Order, page func(w http.ResponseWriter, r *http.Request, pageNum, size int)) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/app/authentication":
			_, _ = w.Write([]byte(`{"token":"T1","expires":86400}`))
		case "/search/icons/" + string(order):
			assert.Equal(t, "Bearer T1", r.Header.Get("Authorization"))
			pageNum, _ := strconv.Atoi(r.URL.Query().Get("page"))
			size, _ := strconv.Atoi(r.URL.Query().Get("limit"))
			page(w, r, pageNum, size)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}
}

func iconPage(from, n, total int) string {
	body := `{"data":[`
	for i := 0; i < n; i++ {
		if i > 0 {
			body += ","
		}
		body += fmt.Sprintf(`{"id":%d}`, from+i)
	}
	return body + fmt.Sprintf(`],"metadata":{"page":%d,"total":%d}}`, 1, total)
}

func TestSearch_AccumulatesPages(t *testing.T) {
	var calls int
	handler := searchHandler(t, OrderPriority, func(w http.ResponseWriter, r *http.Request, page, size int) {
		calls++
		assert.Equal(t, "guitar", r.URL.Query().Get("q"))
		switch page {
		case 1:
			assert.Equal(t, 100, size)
			_, _ = w.Write([]byte(iconPage(1, 100, 150)))
		case 2:
			assert.Equal(t, 50, size)
			_, _ = w.Write([]byte(iconPage(101, 50, 150)))
		default:
			t.Errorf("unexpected page %d", page)
		}
	})
	c := newTestClient(t, handler)
	authenticate(t, c, "k")

	icons, err := c.Search(context.Background(), "guitar", OrderPriority, 150)
	require.NoError(t, err)
	assert.Len(t, icons, 150)
	assert.Equal(t, 1, icons[0].ID)
	assert.Equal(t, 150, icons[149].ID)
	assert.Equal(t, 2, calls)
}

func TestSearch_StopsWhenMetadataExhausted(t *testing.T) {
	var calls int
	handler := searchHandler(t, OrderAdded, func(w http.ResponseWriter, r *http.Request, page, size int) {
		calls++
		// Only 30 icons exist; the requested limit is higher.
		_, _ = w.Write([]byte(iconPage(1, 30, 30)))
	})
	c := newTestClient(t, handler)
	authenticate(t, c, "k")

	icons, err := c.Search(context.Background(), "drum", OrderAdded, 50)
	require.NoError(t, err)
	assert.Len(t, icons, 30)
	assert.Equal(t, 1, calls, "metadata says one page; no second request")
}

func TestSearch_StopsOnEmptyPage(t *testing.T) {
	var calls int
	handler := searchHandler(t, OrderPriority, func(w http.ResponseWriter, r *http.Request, page, size int) {
		calls++
		if page == 1 {
			// Metadata overstates the total; next page is empty.
			_, _ = w.Write([]byte(iconPage(1, 100, 100000)))
			return
		}
		_, _ = w.Write([]byte(`{"data":[],"metadata":{"page":2,"total":100000}}`))
	})
	c := newTestClient(t, handler)
	authenticate(t, c, "k")

	icons, err := c.Search(context.Background(), "piano", OrderPriority, 300)
	require.NoError(t, err)
	assert.Len(t, icons, 100)
	assert.Equal(t, 2, calls)
}

func TestSearch_CountFallback(t *testing.T) {
	handler := searchHandler(t, OrderPriority, func(w http.ResponseWriter, r *http.Request, page, size int) {
		// Some deployments report "count" instead of "total".
		_, _ = w.Write([]byte(`{"data":[{"id":7}],"metadata":{"page":1,"count":1}}`))
	})
	c := newTestClient(t, handler)
	authenticate(t, c, "k")

	icons, err := c.Search(context.Background(), "sax", OrderPriority, 10)
	require.NoError(t, err)
	assert.Len(t, icons, 1)
}

func TestSearch_HTTPError(t *testing.T) {
	handler := searchHandler(t, OrderPriority, func(w http.ResponseWriter, r *http.Request, page, size int) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	c := newTestClient(t, handler)
	authenticate(t, c, "k")

	_, err := c.Search(context.Background(), "cello", OrderPriority, 5)
	var searchErr *SearchError
	require.ErrorAs(t, err, &searchErr)
	assert.Equal(t, http.StatusTooManyRequests, searchErr.Status)
	assert.Equal(t, "cello", searchErr.Query)
}

func TestSearch_InvalidOrder(t *testing.T) {
	c := NewClient()
	_, err := c.Search(context.Background(), "x", Order("newest"), 5)
	require.Error(t, err)
}

func TestSearchFirst_Hit(t *testing.T) {
	handler := searchHandler(t, OrderPriority, func(w http.ResponseWriter, r *http.Request, page, size int) {
		assert.Equal(t, 1, page)
		assert.Equal(t, 1, size)
		_, _ = w.Write([]byte(`{"data":[{"id":42,"description":"guitar"}],"metadata":{"page":1,"total":9000}}`))
	})
	c := newTestClient(t, handler)
	authenticate(t, c, "k")

	icon, err := c.SearchFirst(context.Background(), "guitar", OrderPriority)
	require.NoError(t, err)
	require.NotNil(t, icon)
	assert.Equal(t, 42, icon.ID)
}

func TestSearchFirst_MissIsNotAnError(t *testing.T) {
	handler := searchHandler(t, OrderPriority, func(w http.ResponseWriter, r *http.Request, page, size int) {
		_, _ = w.Write([]byte(`{"data":[],"metadata":{"page":1,"total":0}}`))
	})
	c := newTestClient(t, handler)
	authenticate(t, c, "k")

	icon, err := c.SearchFirst(context.Background(), "xyzzy", OrderPriority)
	require.NoError(t, err)
	assert.Nil(t, icon)
}
