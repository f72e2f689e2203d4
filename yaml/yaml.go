// Package yaml provides a YAML codec for shroud processors.
package yaml

import (
	"bytes"
	"context"

	"github.com/zoobzio/shroud"
	"gopkg.in/yaml.v3"
)

// ContentType is the MIME type produced by this codec.
const ContentType = "application/yaml"

// yamlCodec implements shroud.Codec for YAML.
type yamlCodec struct {
	indent int
}

// Option configures the YAML codec.
type Option func(*yamlCodec)

// WithIndent sets the number of spaces used per nesting level.
func WithIndent(spaces int) Option {
	return func(c *yamlCodec) {
		c.indent = spaces
	}
}

// New returns a YAML codec.
func New(opts ...Option) shroud.Codec {
	c := &yamlCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as YAML.
func (c *yamlCodec) Marshal(v any) ([]byte, error) {
	if c.indent <= 0 {
		return yaml.Marshal(v)
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(c.indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML data into v.
func (c *yamlCodec) Unmarshal(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

// Send masks a copy of v and encodes it as YAML using a cached processor.
func Send[T any](ctx context.Context, v *T) ([]byte, error) {
	p, err := shroud.Use[T](New())
	if err != nil {
		return nil, err
	}
	return p.Send(ctx, v)
}
