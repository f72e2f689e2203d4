// Package shroud produces masked copies of arbitrary Go values.
//
// Fields are marked sensitive with struct tags. Masking always works on a
// deep clone, so the caller's value is never modified, and it follows
// pointers, slices, arrays, maps and interfaces. Each struct, pointer, map
// and slice identity is visited once per call, which keeps self-referencing
// graphs finite. Promoted fields of embedded structs are masked whether or
// not the embedded type is exported.
//
// # Tag Syntax
//
//	mask:"{type}"           - mask the field with the named algorithm
//	mask.when:"{predicate}" - only mask when the predicate holds for the instance
//
// Masking applies to string fields, to each element of []string and [N]string
// fields, and to each value of map[K]string fields. Map keys are never masked.
//
// # Basic Usage
//
//	type Customer struct {
//	    Name    string `json:"name" mask:"chinese_name"`
//	    Mobile  string `json:"mobile" mask:"mobile_phone"`
//	    Email   string `json:"email" mask:"email" mask.when:"contact"`
//	    Private bool   `json:"-"`
//	}
//
//	func (c *Customer) MaskEffective(name string) bool {
//	    return name == "contact" && c.Private
//	}
//
//	masked, err := shroud.Mask(ctx, customer)
//
// # Mask Types
//
//   - chinese_name: 李小龙 → 李**
//   - id_card:      110101199003074518 → 1****************8
//   - fixed_phone:  01086551122 → *******1122
//   - mobile_phone: 13512346810 → 135****6810
//   - address:      last seven characters hidden
//   - email:        daniel@126.com → d*****@126.com
//   - bank_card:    6217000012340567 → 6217*********567
//   - secret_num:   10000.05 → 1****.05, 0.56 → *.56, 1234 → ***4
//
// # Predicates
//
// The mask.when tag names a predicate evaluated against the struct that owns
// the field. Predicates are resolved from RegisterPredicate first, then from
// the Effective interface. A predicate that cannot be resolved or panics
// leaves the field unmasked unless the engine was built WithFailClosed.
//
// # Encoding
//
// A Processor masks and then marshals with a Codec. Codecs are available as
// subpackages:
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
package shroud

// Codec provides content-type aware marshaling.
type Codec interface {
	// ContentType returns the MIME type for this codec (e.g., "application/json").
	ContentType() string

	// Marshal encodes v into bytes.
	Marshal(v any) ([]byte, error)

	// Unmarshal decodes data into v.
	Unmarshal(data []byte, v any) error
}
