package savekit

import (
	"go.uber.org/zap"

	"github.com/forgeyard/savekit/internal/codec/zlibcodec"
	"github.com/forgeyard/savekit/internal/exportstring"
	"github.com/forgeyard/savekit/internal/stats"
)

// Option configures a Client.
type Option interface {
	apply(*options)
}

// options holds the client configuration.
type options struct {
	formats   []exportstring.Format
	encodeTag byte
	stats     stats.Collector
	logger    *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		formats:   []exportstring.Format{exportstring.NewV0(nil)},
		encodeTag: exportstring.TagV0,
		stats:     stats.NewNoop(),
		logger:    zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithCompressionLevel sets the zlib level used when encoding export strings.
// Default is best compression (9).
func WithCompressionLevel(level int) Option {
	return optionFunc(func(o *options) {
		o.formats = []exportstring.Format{exportstring.NewV0(zlibcodec.New(level))}
		o.encodeTag = exportstring.TagV0
	})
}

// WithFormat registers an additional export-string format. Encoding keeps
// using the default version unless WithEncodeTag selects another.
func WithFormat(f exportstring.Format) Option {
	return optionFunc(func(o *options) {
		o.formats = append(o.formats, f)
	})
}

// WithEncodeTag selects the version used by Encode.
// The tag must belong to a registered format.
func WithEncodeTag(tag byte) Option {
	return optionFunc(func(o *options) {
		o.encodeTag = tag
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
