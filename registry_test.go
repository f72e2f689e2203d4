package shroud_test

import (
	"encoding/json"
	"testing"

	"github.com/zoobzio/shroud"
)

type jsonCodec struct{}

func (jsonCodec) ContentType() string                { return "application/json" }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type yamlishCodec struct{ jsonCodec }

func (yamlishCodec) ContentType() string { return "application/yaml" }

type CacheTestUser struct {
	Name string `json:"name" mask:"chinese_name"`
}

type CacheBadUser struct {
	Name string `json:"name" mask:"nope"`
}

func TestUse_Caching(t *testing.T) {
	shroud.Reset()

	s1, err := shroud.Use[CacheTestUser](jsonCodec{})
	if err != nil {
		t.Fatalf("Use() error: %v", err)
	}

	s2, err := shroud.Use[CacheTestUser](jsonCodec{})
	if err != nil {
		t.Fatalf("Use() error: %v", err)
	}

	if s1 != s2 {
		t.Error("Use() should return cached processor")
	}
}

func TestUse_DifferentCodecs(t *testing.T) {
	shroud.Reset()

	s1, _ := shroud.Use[CacheTestUser](jsonCodec{})
	s2, _ := shroud.Use[CacheTestUser](yamlishCodec{})

	if s1 == s2 {
		t.Error("different content types should not share a processor")
	}
}

func TestUse_InvalidTag(t *testing.T) {
	shroud.Reset()

	if _, err := shroud.Use[CacheBadUser](jsonCodec{}); err == nil {
		t.Error("Use() should fail for an invalid mask tag")
	}
}

func TestReset(t *testing.T) {
	s1, _ := shroud.Use[CacheTestUser](jsonCodec{})

	shroud.Reset()

	s2, _ := shroud.Use[CacheTestUser](jsonCodec{})

	if s1 == s2 {
		t.Error("Reset() should clear cache, new processor expected")
	}
}
