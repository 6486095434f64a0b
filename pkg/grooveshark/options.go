package grooveshark

// Params is the parameter map of a single call. Values must be JSON
// serializable.
type Params map[string]any

// Option sets an optional call parameter. Parameters without a matching
// Option are omitted from the request entirely rather than sent as null.
type Option func(Params)

// WithLimit caps the number of results.
func WithLimit(n int) Option {
	return func(p Params) { p["limit"] = n }
}

// WithOffset skips the first n results.
func WithOffset(n int) Option {
	return func(p Params) { p["offset"] = n }
}

// WithPage selects a result page for calls that paginate by page number.
func WithPage(n int) Option {
	return func(p Params) { p["page"] = n }
}

// WithLowBitrate requests a low bitrate stream.
func WithLowBitrate(low bool) Option {
	return func(p Params) { p["lowBitrate"] = low }
}

// with applies opts to p and returns it.
func (p Params) with(opts []Option) Params {
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}
