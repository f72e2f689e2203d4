package shroud

import (
	"cmp"
	"errors"
	"reflect"
	"slices"
	"sync"

	"github.com/zoobzio/sentinel"
)

// Struct tag keys recognized on fields.
const (
	TagMask = "mask"      // mask type, e.g. `mask:"email"`
	TagWhen = "mask.when" // effectiveness predicate name, e.g. `mask.when:"MaskContact"`
)

func init() {
	sentinel.Tag(TagMask)
	sentinel.Tag(TagWhen)
}

// textKind describes how a field carries text eligible for masking.
type textKind int

const (
	textNone     textKind = iota
	textString            // string
	textSequence          // []string, [N]string
	textMapping           // map[K]string
)

// Field describes one traversable field of a struct type.
type Field struct {
	sentinel.FieldMetadata

	// Rule is the masking rule declared on the field, or nil.
	Rule *Rule

	text textKind
}

// Textual reports whether the field's declared type carries maskable text.
func (f Field) Textual() bool {
	return f.text != textNone
}

type catalogEntry struct {
	meta   sentinel.Metadata
	fields []Field
	err    error
}

// Catalog discovers and caches the traversable fields of struct types.
// It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	types map[reflect.Type]*catalogEntry
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{types: make(map[reflect.Type]*catalogEntry)}
}

var defaultCatalog = NewCatalog()

// FieldsOf returns the exported fields of struct type t in declaration order,
// with fields of embedded structs flattened in place whether or not the
// embedded type is exported. An embedded pointer of unexported type is listed
// as a field of its own. Non-struct types have no fields. When a mask tag is invalid the remaining fields are still returned
// together with the error.
func (c *Catalog) FieldsOf(t reflect.Type) ([]Field, error) {
	e := c.lookup(t)
	if e == nil {
		return nil, nil
	}
	return e.fields, e.err
}

// Metadata returns the sentinel metadata of struct type t.
func (c *Catalog) Metadata(t reflect.Type) (sentinel.Metadata, bool) {
	e := c.lookup(t)
	if e == nil {
		return sentinel.Metadata{}, false
	}
	return e.meta, true
}

// Reset clears the catalog.
// This is primarily useful for test isolation.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.types = make(map[reflect.Type]*catalogEntry)
}

func (c *Catalog) lookup(t reflect.Type) *catalogEntry {
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}

	// Fast path: read-lock cache check
	c.mu.RLock()
	if e, ok := c.types[t]; ok {
		c.mu.RUnlock()
		return e
	}
	c.mu.RUnlock()

	// Scanning is pure, so it runs outside the lock.
	e := scanType(t)

	c.mu.Lock()
	defer c.mu.Unlock()
	if cached, ok := c.types[t]; ok {
		return cached
	}
	c.types[t] = e
	return e
}

// scanType builds the catalog entry for a struct type.
func scanType(rt reflect.Type) *catalogEntry {
	e := &catalogEntry{}
	if meta, ok := lookupMetadata(rt); ok {
		e.meta = meta
	} else {
		e.meta = sentinel.Metadata{
			ReflectType: rt,
			FQDN:        fqdn(rt),
			TypeName:    rt.Name(),
			PackageName: rt.PkgPath(),
		}
	}

	var errs []error
	scanFields(rt, nil, "", &e.fields, &errs)

	e.meta.Fields = make([]sentinel.FieldMetadata, len(e.fields))
	for i := range e.fields {
		e.meta.Fields[i] = e.fields[i].FieldMetadata
	}
	e.err = errors.Join(errs...)
	return e
}

// fqdn returns the name sentinel caches rt under.
func fqdn(rt reflect.Type) string {
	if rt.PkgPath() == "" {
		return rt.Name()
	}
	return rt.PkgPath() + "." + rt.Name()
}

// lookupMetadata returns the metadata sentinel has cached for rt.
// Function-local types may share a name within a package, so the cached
// type must be rt itself.
func lookupMetadata(rt reflect.Type) (sentinel.Metadata, bool) {
	if rt.Name() == "" {
		return sentinel.Metadata{}, false
	}
	meta, ok := sentinel.Lookup(fqdn(rt))
	if !ok || meta.ReflectType != rt {
		return sentinel.Metadata{}, false
	}
	return meta, true
}

// declaredFields returns the direct fields of rt in declaration order.
// Exported fields come from sentinel when it has scanned rt. sentinel skips
// unexported fields, so embedded structs of unexported type are always read
// from reflection: codecs still encode their promoted fields.
func declaredFields(rt reflect.Type) []sentinel.FieldMetadata {
	meta, cached := lookupMetadata(rt)
	var fields []sentinel.FieldMetadata
	if cached {
		fields = slices.Clone(meta.Fields)
	}

	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.IsExported() {
			if !cached {
				fields = append(fields, fieldMetadata(sf))
			}
			continue
		}
		if sf.Anonymous && isStructLike(sf.Type) {
			fields = append(fields, fieldMetadata(sf))
		}
	}

	slices.SortFunc(fields, func(a, b sentinel.FieldMetadata) int {
		return cmp.Compare(a.Index[0], b.Index[0])
	})
	return fields
}

// scanFields appends the fields of rt, flattening embedded value structs.
func scanFields(rt reflect.Type, parentIndex []int, namePrefix string, out *[]Field, errs *[]error) {
	for _, fm := range declaredFields(rt) {
		sf := rt.Field(fm.Index[0])
		fm.Index = append(append([]int{}, parentIndex...), fm.Index[0])
		if namePrefix != "" {
			fm.Name = namePrefix + "." + fm.Name
		}

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			scanFields(sf.Type, fm.Index, fm.Name, out, errs)
			continue
		}

		f := Field{FieldMetadata: fm, text: textKindOf(sf.Type)}

		rule, err := parseRule(fm.Tags, fm.Name)
		if err != nil {
			*errs = append(*errs, err)
		}
		f.Rule = rule

		*out = append(*out, f)
	}
}

// fieldMetadata describes sf the way sentinel does, keeping only mask tags.
func fieldMetadata(sf reflect.StructField) sentinel.FieldMetadata {
	fm := sentinel.FieldMetadata{
		Name:        sf.Name,
		Type:        sf.Type.String(),
		ReflectType: sf.Type,
		Index:       sf.Index,
		Tags:        parseMaskTags(sf.Tag),
	}

	switch sf.Type.Kind() {
	case reflect.Struct:
		fm.Kind = sentinel.KindStruct
	case reflect.Ptr:
		fm.Kind = sentinel.KindPointer
	case reflect.Slice, reflect.Array:
		fm.Kind = sentinel.KindSlice
	case reflect.Map:
		fm.Kind = sentinel.KindMap
	case reflect.Interface:
		fm.Kind = sentinel.KindInterface
	default:
		fm.Kind = sentinel.KindScalar
	}
	return fm
}

func isStructLike(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// parseMaskTags extracts the mask tags from a struct tag. Empty values are
// dropped, as sentinel drops them.
func parseMaskTags(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	for _, key := range []string{TagMask, TagWhen} {
		if val := tag.Get(key); val != "" {
			tags[key] = val
		}
	}
	return tags
}

// parseRule builds the masking rule for a field, validating the mask type.
func parseRule(tags map[string]string, field string) (*Rule, error) {
	val, ok := tags[TagMask]
	if !ok {
		return nil, nil
	}
	if !IsValidMaskType(MaskType(val)) {
		return nil, newConfigError(ErrInvalidTag, val, field)
	}
	return &Rule{Type: MaskType(val), When: tags[TagWhen]}, nil
}

// textKindOf classifies a declared field type for masking.
func textKindOf(t reflect.Type) textKind {
	switch t.Kind() {
	case reflect.String:
		return textString
	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.String {
			return textSequence
		}
	case reflect.Map:
		if t.Elem().Kind() == reflect.String {
			return textMapping
		}
	}
	return textNone
}
