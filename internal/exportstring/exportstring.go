// Package exportstring packs blueprint documents into versioned export
// strings and back.
//
// Wire format:
//
//	<1-char version tag><payload>
//
// The tag is a single ASCII character. How the payload is encoded belongs to
// the Format registered for that tag; the payload of an unrecognized tag is
// meaningless and is never touched.
package exportstring

import (
	"errors"
	"fmt"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrEmpty indicates an export string with no version tag.
	ErrEmpty = errors.New("exportstring: empty export string")

	// ErrEncoding indicates a payload that is not valid base64.
	ErrEncoding = errors.New("exportstring: malformed base64 payload")

	// ErrDecompression indicates a corrupt or truncated compressed payload.
	ErrDecompression = errors.New("exportstring: corrupt compressed payload")
)

// UnsupportedVersionError indicates an export string whose version tag has no
// registered Format.
type UnsupportedVersionError struct {
	Tag byte
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("exportstring: unsupported version %q", e.Tag)
}

// Format encodes and decodes the payload that follows the version tag.
type Format interface {
	// Tag returns the version character this format claims.
	Tag() byte

	// EncodePayload packs a compact JSON document into a payload string.
	EncodePayload(doc []byte) (string, error)

	// DecodePayload unpacks a payload string back into the JSON document.
	DecodePayload(payload string) ([]byte, error)
}

// Registry dispatches on the version tag. Adding a version is a registration,
// not an edit to existing formats.
type Registry struct {
	formats map[byte]Format
}

// NewRegistry creates a registry holding the given formats.
// Registering two formats with the same tag is an error.
func NewRegistry(formats ...Format) (*Registry, error) {
	r := &Registry{formats: make(map[byte]Format, len(formats))}
	for _, f := range formats {
		if err := r.Register(f); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register adds a format to the registry.
func (r *Registry) Register(f Format) error {
	tag := f.Tag()
	if _, ok := r.formats[tag]; ok {
		return fmt.Errorf("exportstring: version %q already registered", tag)
	}
	r.formats[tag] = f
	return nil
}

// Encode packs doc under the format registered for tag.
func (r *Registry) Encode(tag byte, doc []byte) (string, error) {
	f, ok := r.formats[tag]
	if !ok {
		return "", &UnsupportedVersionError{Tag: tag}
	}

	payload, err := f.EncodePayload(doc)
	if err != nil {
		return "", err
	}
	return string(tag) + payload, nil
}

// Decode unpacks an export string into the JSON document it carries.
// The version tag is checked before any of the payload is interpreted.
func (r *Registry) Decode(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, ErrEmpty
	}

	tag := s[0]
	f, ok := r.formats[tag]
	if !ok {
		return nil, &UnsupportedVersionError{Tag: tag}
	}
	return f.DecodePayload(s[1:])
}
