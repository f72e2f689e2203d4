// Package json provides a JSON codec for shroud processors.
package json

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/zoobzio/shroud"
)

// ContentType is the MIME type produced by this codec.
const ContentType = "application/json"

// jsonCodec implements shroud.Codec for JSON.
type jsonCodec struct {
	prefix     string
	indent     string
	escapeHTML bool
}

// Option configures the JSON codec.
type Option func(*jsonCodec)

// WithIndent pretty-prints output with the given indent.
func WithIndent(indent string) Option {
	return func(c *jsonCodec) {
		c.indent = indent
	}
}

// WithEscapeHTML escapes <, > and & inside strings.
func WithEscapeHTML() Option {
	return func(c *jsonCodec) {
		c.escapeHTML = true
	}
}

// New returns a JSON codec. HTML escaping is off so masked text survives
// encoding unchanged.
func New(opts ...Option) shroud.Codec {
	c := &jsonCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as JSON without a trailing newline.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(c.escapeHTML)
	if c.indent != "" {
		enc.SetIndent(c.prefix, c.indent)
	}
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Send masks a copy of v and encodes it as JSON using a cached processor.
func Send[T any](ctx context.Context, v *T) ([]byte, error) {
	p, err := shroud.Use[T](New())
	if err != nil {
		return nil, err
	}
	return p.Send(ctx, v)
}
