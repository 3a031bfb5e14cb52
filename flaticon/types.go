package flaticon

// Order selects the search ranking applied by the upstream.
type Order string

const (
	OrderPriority Order = "priority"
	OrderAdded    Order = "added"
)

// Valid reports whether o is an ordering the API accepts.
func (o Order) Valid() bool {
	return o == OrderPriority || o == OrderAdded
}

// Format selects the downloaded asset encoding. Size applies to PNG only.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
)

// Valid reports whether f is a format the API accepts.
func (f Format) Valid() bool {
	return f == FormatPNG || f == FormatSVG
}

// Icon is one search result. Only the identifier is consumed by this
// module; the other fields are carried for callers that want them.
type Icon struct {
	ID          int    `json:"id"`
	Description string `json:"description,omitempty"`
	Tags        string `json:"tags,omitempty"`
}

type searchMetadata struct {
	Page  int `json:"page"`
	Total int `json:"total"`
	Count int `json:"count"`
}

type searchResponse struct {
	Data     []Icon         `json:"data"`
	Metadata searchMetadata `json:"metadata"`
}

// downloadEnvelope is the preferred download-resolution response: a JSON
// wrapper around a short-lived, unauthenticated CDN URL.
type downloadEnvelope struct {
	Data struct {
		URL string `json:"url"`
	} `json:"data"`
}
