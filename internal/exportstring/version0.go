package exportstring

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/forgeyard/savekit/internal/codec"
	"github.com/forgeyard/savekit/internal/codec/zlibcodec"
)

// TagV0 is the version tag of the original export-string format.
const TagV0 = '0'

// Compile-time check that V0 implements Format.
var _ Format = (*V0)(nil)

// V0 is the version '0' format: base64(zlib(document)).
type V0 struct {
	codec codec.Codec
}

// NewV0 returns the version '0' format using the given compression codec.
// If c is nil, zlib at best compression is used.
func NewV0(c codec.Codec) *V0 {
	if c == nil {
		c = zlibcodec.New(zlibcodec.BestCompression)
	}
	return &V0{codec: c}
}

// Tag returns '0'.
func (v *V0) Tag() byte { return TagV0 }

// EncodePayload compresses doc and encodes it as standard padded base64.
func (v *V0) EncodePayload(doc []byte) (string, error) {
	var buf bytes.Buffer
	w, err := v.codec.Writer(&buf)
	if err != nil {
		return "", fmt.Errorf("exportstring: creating compressor: %w", err)
	}
	if _, err := w.Write(doc); err != nil {
		return "", fmt.Errorf("exportstring: compressing document: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("exportstring: flushing compressor: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodePayload base64-decodes and decompresses the payload.
func (v *V0) DecodePayload(payload string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}

	r, err := v.codec.Reader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	defer r.Close()

	doc, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecompression, err)
	}
	return doc, nil
}
