package encoder

import (
	"fmt"
	"sort"
	"strings"
)

// Registry holds the available output encoders.
type Registry struct {
	encoders map[string]Encoder
}

// NewRegistry creates a registry with all built-in encoders.
func NewRegistry() *Registry {
	r := &Registry{
		encoders: make(map[string]Encoder),
	}
	for _, enc := range []Encoder{
		&PNGEncoder{},
		&JPEGEncoder{},
		&RawEncoder{},
	} {
		r.encoders[enc.Format()] = enc
	}
	return r
}

// Get returns an encoder for the given format.
func (r *Registry) Get(format string) (Encoder, error) {
	enc, ok := r.encoders[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (available: %s)", format, r.String())
	}
	return enc, nil
}

// Formats returns all registered format names, sorted.
func (r *Registry) Formats() []string {
	var out []string
	for f := range r.encoders {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// ResolveFormat picks a default output format when none is requested:
// PNG when the image carries alpha, JPEG otherwise.
func (r *Registry) ResolveFormat(requested string, hasAlpha bool) string {
	if requested != "" {
		return strings.ToLower(requested)
	}
	if hasAlpha {
		return "png"
	}
	return "jpeg"
}

// String returns a summary of registered encoders.
func (r *Registry) String() string {
	return strings.Join(r.Formats(), ", ")
}
