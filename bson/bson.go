// Package bson provides a BSON codec for shroud processors.
//
// BSON documents must be structs or maps at the top level, so Marshal
// rejects scalars, slices and nil.
package bson

import (
	"context"
	"errors"

	"github.com/zoobzio/shroud"
	"go.mongodb.org/mongo-driver/bson"
)

// ContentType is the MIME type produced by this codec.
const ContentType = "application/bson"

// ErrNotDocument is returned when marshaling a value with no document form.
var ErrNotDocument = errors.New("bson: value is not a document")

// bsonCodec implements shroud.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() shroud.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return ContentType
}

// Marshal encodes v as a BSON document.
func (c *bsonCodec) Marshal(v any) ([]byte, error) {
	if v == nil {
		return nil, ErrNotDocument
	}
	return bson.Marshal(v)
}

// Unmarshal decodes BSON data into v.
func (c *bsonCodec) Unmarshal(data []byte, v any) error {
	return bson.Unmarshal(data, v)
}

// Raw decodes data into a map for inspection without a target type.
func Raw(data []byte) (bson.M, error) {
	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Send masks a copy of v and encodes it as BSON using a cached processor.
func Send[T any](ctx context.Context, v *T) ([]byte, error) {
	p, err := shroud.Use[T](New())
	if err != nil {
		return nil, err
	}
	return p.Send(ctx, v)
}
