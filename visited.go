package shroud

import "reflect"

// visitKey identifies a value by address and type. The type is part of the
// key because a struct and its first field share an address. Slices also key
// on length so distinct windows of one backing array are each traversed.
type visitKey struct {
	addr uintptr
	typ  reflect.Type
	n    int
}

// visitedSet records identities already traversed in one mask call.
type visitedSet map[visitKey]struct{}

// add registers v, an addressable struct, and reports whether it was new.
func (s visitedSet) add(v reflect.Value) bool {
	return s.mark(visitKey{addr: v.UnsafeAddr(), typ: v.Type()})
}

// addRef registers the referent of v, a non-nil pointer, map or slice, and
// reports whether it was new. Empty slices own no elements and are never new.
func (s visitedSet) addRef(v reflect.Value) bool {
	key := visitKey{addr: v.Pointer(), typ: v.Type()}
	if v.Kind() == reflect.Slice {
		if v.Len() == 0 {
			return false
		}
		key.n = v.Len()
	}
	return s.mark(key)
}

func (s visitedSet) mark(key visitKey) bool {
	if _, seen := s[key]; seen {
		return false
	}
	s[key] = struct{}{}
	return true
}
