// Package savekit converts game-save blueprints between JSON and packed
// export strings, and unpacks level.dat content from zipped save archives.
//
// Example usage:
//
//	client, err := savekit.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	export, err := client.Encode([]byte(`{"blueprint":{"item":"blueprint"}}`))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	doc, err := client.Decode(export)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(doc))
package savekit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/forgeyard/savekit/internal/exportstring"
	"github.com/forgeyard/savekit/internal/leveldat"
	"github.com/forgeyard/savekit/internal/orderedjson"
	"github.com/forgeyard/savekit/internal/stats"
)

// Client converts blueprints to and from export strings and extracts
// level.dat content from save archives. A Client is stateless and safe for
// concurrent use, except that two extractions must not share a workspace
// path.
type Client struct {
	registry  *exportstring.Registry
	extractor *leveldat.Extractor
	encodeTag byte
	logger    *zap.Logger
	stats     stats.Collector
}

// New creates a new Client with the given options.
// If no options are provided, sensible defaults are used.
func New(opts ...Option) (*Client, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	registry, err := exportstring.NewRegistry(cfg.formats...)
	if err != nil {
		return nil, err
	}

	c := &Client{
		registry:  registry,
		extractor: leveldat.New(nil, cfg.logger.Named("leveldat"), cfg.stats),
		encodeTag: cfg.encodeTag,
		logger:    cfg.logger,
		stats:     cfg.stats,
	}

	c.logger.Debug("client initialized",
		zap.Int("formats", len(cfg.formats)),
		zap.String("encodeTag", string(cfg.encodeTag)),
	)
	return c, nil
}

// Encode packs a JSON blueprint into an export string. The input is trimmed,
// parsed with object key order preserved, re-serialized compactly and packed
// under the client's encode version (version '0' by default).
func (c *Client) Encode(jsonText []byte) (string, error) {
	doc, err := orderedjson.Parse(bytes.TrimSpace(jsonText))
	if err != nil {
		return "", err
	}

	compact, err := orderedjson.MarshalCompact(doc)
	if err != nil {
		return "", err
	}

	export, err := c.registry.Encode(c.encodeTag, compact)
	if err != nil {
		return "", err
	}

	c.stats.IncCounter(stats.MetricEncodes, 1)
	if len(compact) > 0 {
		c.stats.ObserveHistogram(stats.MetricCompressionRatio, float64(len(export))/float64(len(compact)))
	}
	c.logger.Debug("blueprint encoded",
		zap.Int("documentBytes", len(compact)),
		zap.Int("exportBytes", len(export)),
	)
	return export, nil
}

// Decode unpacks an export string back into JSON text with one-space
// indentation, compact separators and object keys in original order.
//
// The version tag is dispatched before any payload decoding; an unrecognized
// tag yields an *exportstring.UnsupportedVersionError (see IsUnsupportedVersion).
func (c *Client) Decode(export string) ([]byte, error) {
	compact, err := c.registry.Decode(strings.TrimSpace(export))
	if err != nil {
		c.stats.IncCounter(stats.MetricDecodeFailures, 1)
		return nil, err
	}

	doc, err := orderedjson.Parse(compact)
	if err != nil {
		c.stats.IncCounter(stats.MetricDecodeFailures, 1)
		return nil, fmt.Errorf("savekit: decoded payload: %w", err)
	}

	out, err := orderedjson.MarshalIndent(doc)
	if err != nil {
		return nil, err
	}

	c.stats.IncCounter(stats.MetricDecodes, 1)
	return out, nil
}

// ExtractLevelDat unpacks the archive into workspace, streams the
// decompressed level.dat content to out, and validates the byte count of each
// chunk directory against its metadata file.
//
// Any directory already at workspace is deleted first; the caller must pass a
// path it is willing to lose. On success the workspace is removed again; on a
// size mismatch it is left in place and the returned error is a
// *leveldat.SizeMismatchError carrying both values.
func (c *Client) ExtractLevelDat(ctx context.Context, archivePath, workspace string, out io.Writer) (*leveldat.Report, error) {
	return c.extractor.Extract(ctx, archivePath, workspace, out)
}

// IsUnsupportedVersion reports whether err is an unsupported-version
// condition and, if so, returns the offending tag.
func IsUnsupportedVersion(err error) (byte, bool) {
	var verr *exportstring.UnsupportedVersionError
	if errors.As(err, &verr) {
		return verr.Tag, true
	}
	return 0, false
}
