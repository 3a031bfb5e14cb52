package flaticon

import "fmt"

// excerptLen bounds body excerpts carried inside errors so that logs never
// contain unbounded or sensitive payloads.
const excerptLen = 500

// excerpt truncates a response body for diagnostics.
func excerpt(b []byte) string {
	if len(b) > excerptLen {
		b = b[:excerptLen]
	}
	return string(b)
}

// AuthError reports a failed token exchange. It aborts the whole run;
// nothing retries it.
type AuthError struct {
	Status int
	Reason string
	Body   string
}

func (e *AuthError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("flaticon: auth failed: %s (status=%d): %s", e.Reason, e.Status, e.Body)
	}
	return fmt.Sprintf("flaticon: auth failed: status=%d: %s", e.Status, e.Body)
}

// SearchError reports a non-200 search response. It is fatal for the query
// that produced it, not for the run.
type SearchError struct {
	Query  string
	Status int
	Body   string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("flaticon: search %q failed: status=%d: %s", e.Query, e.Status, e.Body)
}

// DownloadError reports a failed download resolution or asset fetch.
type DownloadError struct {
	IconID int
	Status int
	Body   string
	Err    error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("flaticon: download %d failed: %v", e.IconID, e.Err)
	}
	return fmt.Sprintf("flaticon: download %d failed: status=%d: %s", e.IconID, e.Status, e.Body)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// UnexpectedResponseError reports a download-resolution response that is
// neither a JSON envelope with an asset URL nor a direct image payload.
type UnexpectedResponseError struct {
	IconID int
	Body   string
}

func (e *UnexpectedResponseError) Error() string {
	return fmt.Sprintf("flaticon: unexpected download response for %d: %s", e.IconID, e.Body)
}
