// Package zlibcodec provides a zlib (RFC 1950) compression codec.
// Both the export-string payload and level.dat chunk files are zlib streams.
package zlibcodec

import (
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/forgeyard/savekit/internal/codec"
)

// Compression levels, re-exported so callers need not import zlib directly.
const (
	DefaultCompression = zlib.DefaultCompression
	BestSpeed          = zlib.BestSpeed
	BestCompression    = zlib.BestCompression
)

// Compile-time check that Codec implements codec.Codec.
var _ codec.Codec = (*Codec)(nil)

// Codec implements zlib compression at a fixed level.
type Codec struct {
	level int
}

// New returns a new zlib codec compressing at the given level.
func New(level int) *Codec {
	return &Codec{level: level}
}

// Reader wraps r to decompress zlib data.
func (c *Codec) Reader(r io.Reader) (io.ReadCloser, error) {
	return zlib.NewReader(r)
}

// Writer wraps w to compress data with zlib.
func (c *Codec) Writer(w io.Writer) (io.WriteCloser, error) {
	return zlib.NewWriterLevel(w, c.level)
}

// Extension returns "zz".
func (c *Codec) Extension() string {
	return "zz"
}
