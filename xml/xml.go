// Package xml provides an XML codec for shroud processors.
package xml

import (
	"context"
	"encoding/xml"

	"github.com/zoobzio/shroud"
)

// ContentType is the MIME type produced by this codec.
const ContentType = "application/xml"

// xmlCodec implements shroud.Codec for XML.
type xmlCodec struct {
	indent string
	header bool
}

// Option configures the XML codec.
type Option func(*xmlCodec)

// WithIndent pretty-prints output with the given indent.
func WithIndent(indent string) Option {
	return func(c *xmlCodec) {
		c.indent = indent
	}
}

// WithHeader prefixes output with the standard XML declaration.
func WithHeader() Option {
	return func(c *xmlCodec) {
		c.header = true
	}
}

// New returns an XML codec.
func New(opts ...Option) shroud.Codec {
	c := &xmlCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentType returns the MIME type for XML.
func (c *xmlCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as XML.
func (c *xmlCodec) Marshal(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if c.indent != "" {
		data, err = xml.MarshalIndent(v, "", c.indent)
	} else {
		data, err = xml.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	if c.header {
		data = append([]byte(xml.Header), data...)
	}
	return data, nil
}

// Unmarshal decodes XML data into v.
func (c *xmlCodec) Unmarshal(data []byte, v any) error {
	return xml.Unmarshal(data, v)
}

// Send masks a copy of v and encodes it as XML using a cached processor.
func Send[T any](ctx context.Context, v *T) ([]byte, error) {
	p, err := shroud.Use[T](New())
	if err != nil {
		return nil, err
	}
	return p.Send(ctx, v)
}
