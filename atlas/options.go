package atlas

// Default sizes, in pixels.
const (
	DefaultSize    = 512
	DefaultMaxSize = 8192
)

// Option configures an Atlas.
type Option func(*config)

type config struct {
	size    int
	maxSize int
	padding int
}

func defaultConfig() config {
	return config{size: DefaultSize, maxSize: DefaultMaxSize}
}

func (c *config) validate() error {
	switch {
	case c.size < 1:
		return &ConfigError{Field: "Size", Reason: "must be at least 1"}
	case c.maxSize < c.size:
		return &ConfigError{Field: "MaxSize", Reason: "must be at least Size"}
	case c.padding < 0:
		return &ConfigError{Field: "Padding", Reason: "must be non-negative"}
	}
	return nil
}

// WithInitialSize sets the starting edge length.
func WithInitialSize(n int) Option {
	return func(c *config) { c.size = n }
}

// WithMaxSize caps the edge length the atlas may grow to.
func WithMaxSize(n int) Option {
	return func(c *config) { c.maxSize = n }
}

// WithPadding reserves p transparent pixels around every sub-image so
// linear filtering does not bleed between neighbours.
func WithPadding(p int) Option {
	return func(c *config) { c.padding = p }
}
