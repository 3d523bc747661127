package sketch

import (
	"log/slog"

	"github.com/gogpu/sketch/atlas"
)

// ContextOption configures a Context during creation.
//
// Example:
//
//	c, err := sketch.NewContext(dev,
//	    sketch.WithQuality(sketch.High),
//	    sketch.WithAtlasSize(1024),
//	)
type ContextOption func(*contextOptions)

type contextOptions struct {
	quality      Level
	atlasSize    int
	maxAtlasSize int
	logger       *slog.Logger
	clear        Color
}

func defaultOptions() contextOptions {
	return contextOptions{
		quality:      Medium,
		atlasSize:    atlas.DefaultSize,
		maxAtlasSize: atlas.DefaultMaxSize,
	}
}

// WithQuality sets the initial tessellation quality.
func WithQuality(l Level) ContextOption {
	return func(o *contextOptions) {
		o.quality = l
	}
}

// WithAtlasSize sets the initial size of atlases created by NewAtlas and
// NewFont.
func WithAtlasSize(n int) ContextOption {
	return func(o *contextOptions) {
		o.atlasSize = n
	}
}

// WithMaxAtlasSize caps atlas growth for atlases created by NewAtlas and
// NewFont.
func WithMaxAtlasSize(n int) ContextOption {
	return func(o *contextOptions) {
		o.maxAtlasSize = n
	}
}

// WithLogger sets the package logger, as SetLogger does.
func WithLogger(l *slog.Logger) ContextOption {
	return func(o *contextOptions) {
		o.logger = l
	}
}

// WithClearColor sets the color Clear uses when called with nil.
func WithClearColor(c Color) ContextOption {
	return func(o *contextOptions) {
		o.clear = c
	}
}

func (o contextOptions) atlasOptions() []atlas.Option {
	return []atlas.Option{
		atlas.WithInitialSize(o.atlasSize),
		atlas.WithMaxSize(o.maxAtlasSize),
	}
}
