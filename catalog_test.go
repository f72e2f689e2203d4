package shroud

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/zoobzio/sentinel"
)

type CatalogBase struct {
	Email string `json:"email" mask:"email"`
}

type catalogUser struct {
	CatalogBase
	Name    string         `json:"name" mask:"chinese_name" mask.when:"visible"`
	Tags    []string       `mask:"chinese_name"`
	Labels  map[int]string `mask:"mobile_phone"`
	Next    *catalogUser   `json:"-"`
	Plain   int            `json:"plain"`
	Counts  map[string]int `json:"counts"`
	Nested  [3]string      `json:"nested"`
	private string
	Extra   map[string]string `json:"extra"`
}

func TestCatalog_FieldsOf(t *testing.T) {
	c := NewCatalog()
	fields, err := c.FieldsOf(reflect.TypeOf(catalogUser{}))
	if err != nil {
		t.Fatalf("FieldsOf() error: %v", err)
	}

	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	want := []string{"CatalogBase.Email", "Name", "Tags", "Labels", "Next", "Plain", "Counts", "Nested", "Extra"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("field names = %v, want %v", names, want)
	}

	byName := make(map[string]Field)
	for _, f := range fields {
		byName[f.Name] = f
	}

	email := byName["CatalogBase.Email"]
	if !reflect.DeepEqual(email.Index, []int{0, 0}) {
		t.Errorf("embedded Index = %v, want [0 0]", email.Index)
	}
	if email.Rule == nil || email.Rule.Type != MaskEmail {
		t.Errorf("embedded Rule = %+v", email.Rule)
	}

	name := byName["Name"]
	if name.Rule == nil || name.Rule.When != "visible" {
		t.Errorf("Name Rule = %+v", name.Rule)
	}
	if name.Tags[TagWhen] != "visible" || name.Tags[TagMask] != "chinese_name" {
		t.Errorf("Name Tags = %v", name.Tags)
	}

	kinds := []struct {
		name    string
		kindOK  bool
		textual bool
	}{
		{"Name", byName["Name"].Kind == sentinel.KindScalar, true},
		{"Tags", byName["Tags"].Kind == sentinel.KindSlice, true},
		{"Labels", byName["Labels"].Kind == sentinel.KindMap, true},
		{"Next", byName["Next"].Kind == sentinel.KindPointer, false},
		{"Plain", byName["Plain"].Kind == sentinel.KindScalar, false},
		{"Counts", byName["Counts"].Kind == sentinel.KindMap, false},
		{"Nested", byName["Nested"].Kind == sentinel.KindSlice, true},
	}
	for _, k := range kinds {
		if !k.kindOK {
			t.Errorf("%s Kind = %v", k.name, byName[k.name].Kind)
		}
		if got := byName[k.name].Textual(); got != k.textual {
			t.Errorf("%s Textual() = %v, want %v", k.name, got, k.textual)
		}
	}
	if byName["Plain"].Rule != nil {
		t.Error("untagged field should have no rule")
	}
}

func TestCatalog_Metadata(t *testing.T) {
	c := NewCatalog()
	meta, ok := c.Metadata(reflect.TypeOf(catalogUser{}))
	if !ok {
		t.Fatal("Metadata() should succeed for structs")
	}
	if meta.TypeName != "catalogUser" || meta.PackageName != "github.com/zoobzio/shroud" {
		t.Errorf("Metadata() = %s / %s", meta.TypeName, meta.PackageName)
	}
	if len(meta.Fields) != 9 {
		t.Errorf("Metadata() has %d fields, want 9", len(meta.Fields))
	}

	if _, ok := c.Metadata(reflect.TypeOf(0)); ok {
		t.Error("Metadata() should fail for non-structs")
	}
}

func TestCatalog_NonStruct(t *testing.T) {
	fields, err := NewCatalog().FieldsOf(reflect.TypeOf([]string{}))
	if fields != nil || err != nil {
		t.Errorf("FieldsOf(slice) = %v, %v", fields, err)
	}
}

func TestCatalog_InvalidTag(t *testing.T) {
	type bad struct {
		Good string `mask:"email"`
		Bad  string `mask:"ssn"`
	}

	fields, err := NewCatalog().FieldsOf(reflect.TypeOf(bad{}))
	if !errors.Is(err, ErrInvalidTag) {
		t.Fatalf("FieldsOf() error = %v, want ErrInvalidTag", err)
	}
	if len(fields) != 2 {
		t.Fatalf("FieldsOf() returned %d fields, want 2", len(fields))
	}
	if fields[0].Rule == nil || fields[1].Rule != nil {
		t.Errorf("rules = %+v, %+v", fields[0].Rule, fields[1].Rule)
	}
}

func TestCatalog_CachesAndResets(t *testing.T) {
	c := NewCatalog()
	typ := reflect.TypeOf(catalogUser{})

	first, _ := c.FieldsOf(typ)
	second, _ := c.FieldsOf(typ)
	if &first[0] != &second[0] {
		t.Error("FieldsOf() should return the cached slice")
	}

	c.Reset()
	third, _ := c.FieldsOf(typ)
	if &first[0] == &third[0] {
		t.Error("Reset() should clear the cache")
	}
}

func TestCatalog_Concurrent(t *testing.T) {
	c := NewCatalog()
	typ := reflect.TypeOf(catalogUser{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if fields, err := c.FieldsOf(typ); err != nil || len(fields) != 9 {
				t.Errorf("FieldsOf() = %d fields, %v", len(fields), err)
			}
		}()
	}
	wg.Wait()
}

type catalogHidden struct {
	Phone string `mask:"mobile_phone"`
	note  string
}

type catalogHiddenPtr struct {
	Email string `mask:"email"`
}

type catalogShadowed struct {
	catalogHidden
	*catalogHiddenPtr
	Name string `mask:"chinese_name"`
}

func TestCatalog_UnexportedEmbedded(t *testing.T) {
	fields, err := NewCatalog().FieldsOf(reflect.TypeOf(catalogShadowed{}))
	if err != nil {
		t.Fatalf("FieldsOf() error: %v", err)
	}

	var names []string
	for _, f := range fields {
		names = append(names, f.Name)
	}
	want := []string{"catalogHidden.Phone", "catalogHiddenPtr", "Name"}
	if !reflect.DeepEqual(names, want) {
		t.Fatalf("field names = %v, want %v", names, want)
	}

	if !reflect.DeepEqual(fields[0].Index, []int{0, 0}) || fields[0].Rule == nil {
		t.Errorf("promoted Phone = %+v", fields[0])
	}
	if fields[1].Kind != sentinel.KindPointer || fields[1].Rule != nil {
		t.Errorf("embedded pointer = %+v", fields[1])
	}
}

type CatalogScanned struct {
	Email string `json:"email" mask:"email"`
	Plain string `json:"plain"`
}

func TestCatalog_UsesSentinelMetadata(t *testing.T) {
	sentinel.Scan[CatalogScanned]()

	c := NewCatalog()
	typ := reflect.TypeOf(CatalogScanned{})
	meta, ok := c.Metadata(typ)
	if !ok {
		t.Fatal("Metadata() should succeed for structs")
	}
	if meta.FQDN != "github.com/zoobzio/shroud.CatalogScanned" || meta.ReflectType != typ {
		t.Errorf("Metadata() = %s / %v", meta.FQDN, meta.ReflectType)
	}

	fields, err := c.FieldsOf(typ)
	if err != nil {
		t.Fatalf("FieldsOf() error: %v", err)
	}
	if len(fields) != 2 {
		t.Fatalf("FieldsOf() returned %d fields, want 2", len(fields))
	}
	// Only sentinel records the json tag.
	if fields[0].Tags["json"] != "email" || fields[0].Rule == nil || fields[0].Rule.Type != MaskEmail {
		t.Errorf("Email = %+v", fields[0])
	}
}

func scannedLocalType() reflect.Type {
	type catalogLocal struct {
		A string `mask:"email"`
	}
	sentinel.Scan[catalogLocal]()
	return reflect.TypeOf(catalogLocal{})
}

func TestCatalog_LocalTypeNameClash(t *testing.T) {
	scanned := scannedLocalType()

	type catalogLocal struct {
		B string `mask:"mobile_phone"`
		C string
	}
	typ := reflect.TypeOf(catalogLocal{})
	if typ == scanned || fqdn(typ) != fqdn(scanned) {
		t.Fatalf("expected two distinct types named %s", fqdn(typ))
	}

	fields, err := NewCatalog().FieldsOf(typ)
	if err != nil {
		t.Fatalf("FieldsOf() error: %v", err)
	}
	if len(fields) != 2 || fields[0].Name != "B" || fields[0].Rule == nil || fields[0].Rule.Type != MaskMobilePhone {
		t.Errorf("FieldsOf() = %+v, want the fields of the local type", fields)
	}
}
