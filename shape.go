package shroud

import (
	"reflect"
	"strings"
)

// Shape classifies a type for traversal.
type Shape int

const (
	ShapeScalar     Shape = iota // bool, numbers, strings, []byte
	ShapeArray                   // [N]T
	ShapeSequence                // []T
	ShapeMapping                 // map[K]V
	ShapeComposite               // struct
	ShapeFixedValue              // named non-string scalar, the enum idiom
	ShapeIndirect                // *T
	ShapeInterface               // interface values
	ShapeOpaque                  // chan, func, unsafe.Pointer
)

var shapeNames = [...]string{
	ShapeScalar:     "scalar",
	ShapeArray:      "array",
	ShapeSequence:   "sequence",
	ShapeMapping:    "mapping",
	ShapeComposite:  "composite",
	ShapeFixedValue: "fixed-value",
	ShapeIndirect:   "indirect",
	ShapeInterface:  "interface",
	ShapeOpaque:     "opaque",
}

func (s Shape) String() string {
	if s < 0 || int(s) >= len(shapeNames) {
		return "unknown"
	}
	return shapeNames[s]
}

// shapeOf returns the traversal shape of t.
func shapeOf(t reflect.Type) Shape {
	switch t.Kind() {
	case reflect.Array:
		return ShapeArray
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return ShapeScalar
		}
		return ShapeSequence
	case reflect.Map:
		return ShapeMapping
	case reflect.Struct:
		return ShapeComposite
	case reflect.Pointer:
		return ShapeIndirect
	case reflect.Interface:
		return ShapeInterface
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return ShapeOpaque
	case reflect.String:
		return ShapeScalar
	default:
		if t.Name() != "" && t.PkgPath() != "" {
			return ShapeFixedValue
		}
		return ShapeScalar
	}
}

// isGeneral reports whether values of type t are never traversed: scalars,
// fixed values, opaque values and types declared in the standard library.
func isGeneral(t reflect.Type) bool {
	switch shapeOf(t) {
	case ShapeScalar, ShapeFixedValue, ShapeOpaque:
		return true
	case ShapeIndirect:
		return isGeneral(t.Elem())
	}
	return isStdlib(t.PkgPath())
}

// stdRoots holds the first path element of every standard library package.
var stdRoots = map[string]bool{
	"archive": true, "bufio": true, "bytes": true, "cmp": true,
	"compress": true, "container": true, "context": true, "crypto": true,
	"database": true, "debug": true, "embed": true, "encoding": true,
	"errors": true, "expvar": true, "flag": true, "fmt": true,
	"go": true, "hash": true, "html": true, "image": true,
	"index": true, "internal": true, "io": true, "iter": true,
	"log": true, "maps": true, "math": true, "mime": true,
	"net": true, "os": true, "path": true, "plugin": true,
	"reflect": true, "regexp": true, "runtime": true, "slices": true,
	"sort": true, "strconv": true, "strings": true, "structs": true,
	"sync": true, "syscall": true, "testing": true, "text": true,
	"time": true, "unicode": true, "unique": true, "unsafe": true,
	"vendor": true, "weak": true,
}

// isStdlib reports whether pkg is a standard library import path.
// Module paths without a dot, such as "myapp/models", are not.
func isStdlib(pkg string) bool {
	first, _, _ := strings.Cut(pkg, "/")
	return stdRoots[first]
}
