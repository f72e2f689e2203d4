// Package msgpack provides a MessagePack codec for shroud processors.
package msgpack

import (
	"bytes"
	"context"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zoobzio/shroud"
)

// ContentType is the MIME type produced by this codec.
const ContentType = "application/msgpack"

// msgpackCodec implements shroud.Codec for MessagePack.
type msgpackCodec struct {
	structTag string
	compact   bool
}

// Option configures the MessagePack codec.
type Option func(*msgpackCodec)

// WithStructTag reads field names from the given struct tag, such as "json".
func WithStructTag(tag string) Option {
	return func(c *msgpackCodec) {
		c.structTag = tag
	}
}

// WithCompactInts encodes integers with the smallest fitting representation.
func WithCompactInts() Option {
	return func(c *msgpackCodec) {
		c.compact = true
	}
}

// New returns a MessagePack codec.
func New(opts ...Option) shroud.Codec {
	c := &msgpackCodec{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as MessagePack.
func (c *msgpackCodec) Marshal(v any) ([]byte, error) {
	if c.structTag == "" && !c.compact {
		return msgpack.Marshal(v)
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if c.structTag != "" {
		enc.SetCustomStructTag(c.structTag)
	}
	enc.UseCompactInts(c.compact)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes MessagePack data into v.
func (c *msgpackCodec) Unmarshal(data []byte, v any) error {
	if c.structTag == "" {
		return msgpack.Unmarshal(data, v)
	}
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(c.structTag)
	return dec.Decode(v)
}

// Send masks a copy of v and encodes it as MessagePack using a cached processor.
func Send[T any](ctx context.Context, v *T) ([]byte, error) {
	p, err := shroud.Use[T](New())
	if err != nil {
		return nil, err
	}
	return p.Send(ctx, v)
}
