package shroud

import (
	"context"
	"fmt"
	"reflect"
	"unsafe"
)

// Cloner allows types to provide their own deep copy logic.
// When the root value passed to Mask or Clone implements Cloner, its Clone
// method replaces the reflection-based copy.
//
// The Clone method must return a deep copy where modifications to the clone
// do not affect the original value. For types containing pointers, slices, or maps,
// ensure these are also copied to achieve true isolation.
//
// For simple value types with no pointers, slices, or maps, Clone can simply return
// the receiver value:
//
//	func (u User) Clone() User { return u }
type Cloner[T any] interface {
	Clone() T
}

// cloneKey identifies a reference value already copied. Slices also key on
// length so that distinct windows of one backing array clone separately.
type cloneKey struct {
	addr uintptr
	typ  reflect.Type
	n    int
}

// cloner produces structurally independent copies of value graphs.
// A cloner is used for one top-level call.
type cloner struct {
	ctx     context.Context
	catalog *Catalog
	memo    map[cloneKey]reflect.Value
}

func newCloner(ctx context.Context, catalog *Catalog) *cloner {
	return &cloner{
		ctx:     ctx,
		catalog: catalog,
		memo:    make(map[cloneKey]reflect.Value),
	}
}

// cloneRoot returns an addressable deep copy of src.
func (c *cloner) cloneRoot(src reflect.Value) (dst reflect.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			dst = reflect.Value{}
			err = newCloneError(ErrClone, src.Type().String(), fmt.Errorf("%v", r))
		}
	}()

	dst = reflect.New(src.Type()).Elem()
	c.cloneInto(dst, src)
	return dst, nil
}

// cloneInto deep copies src into dst. dst must be settable and hold either
// the zero value or a shallow copy of src.
func (c *cloner) cloneInto(dst, src reflect.Value) {
	switch src.Kind() {
	case reflect.Pointer:
		if src.IsNil() {
			dst.Set(src)
			return
		}
		key := cloneKey{addr: src.Pointer(), typ: src.Type()}
		if p, ok := c.memo[key]; ok {
			dst.Set(p)
			return
		}
		p := reflect.New(src.Type().Elem())
		c.memo[key] = p
		c.cloneInto(p.Elem(), src.Elem())
		dst.Set(p)

	case reflect.Struct:
		dst.Set(src)
		if isGeneral(src.Type()) {
			return
		}
		// Tag errors are reported by the walker; cloning copies every field.
		fields, _ := c.catalog.FieldsOf(src.Type())
		for i := range fields {
			d := accessible(dst.FieldByIndex(fields[i].Index))
			s := src.FieldByIndex(fields[i].Index)
			if !s.CanInterface() {
				// dst already holds the shallow copy of s.
				s = reflect.New(d.Type()).Elem()
				s.Set(d)
			}
			c.cloneInto(d, s)
		}

	case reflect.Slice:
		if src.IsNil() {
			dst.Set(src)
			return
		}
		key := cloneKey{addr: src.Pointer(), typ: src.Type(), n: src.Len()}
		if s, ok := c.memo[key]; ok {
			dst.Set(s)
			return
		}
		s := reflect.MakeSlice(src.Type(), src.Len(), src.Cap())
		c.memo[key] = s
		if sh := shapeOf(src.Type().Elem()); sh == ShapeScalar || sh == ShapeFixedValue {
			reflect.Copy(s, src)
		} else {
			for i := 0; i < src.Len(); i++ {
				c.cloneInto(s.Index(i), src.Index(i))
			}
		}
		dst.Set(s)

	case reflect.Array:
		for i := 0; i < src.Len(); i++ {
			c.cloneInto(dst.Index(i), src.Index(i))
		}

	case reflect.Map:
		if src.IsNil() {
			dst.Set(src)
			return
		}
		key := cloneKey{addr: src.Pointer(), typ: src.Type()}
		if m, ok := c.memo[key]; ok {
			dst.Set(m)
			return
		}
		m := reflect.MakeMapWithSize(src.Type(), src.Len())
		c.memo[key] = m
		elem := src.Type().Elem()
		iter := src.MapRange()
		for iter.Next() {
			v := reflect.New(elem).Elem()
			c.cloneInto(v, iter.Value())
			m.SetMapIndex(iter.Key(), v)
		}
		dst.Set(m)

	case reflect.Interface:
		if src.IsNil() {
			dst.Set(src)
			return
		}
		concrete := src.Elem()
		v := reflect.New(concrete.Type()).Elem()
		c.cloneInto(v, concrete)
		dst.Set(v)

	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		dst.Set(src)
		if !src.IsNil() {
			emitCloneShallow(c.ctx, src.Type().String())
		}

	default:
		dst.Set(src)
	}
}

// accessible returns v without the read-only flag reflect sets on values
// reached through an unexported embedded field. v must be addressable.
func accessible(v reflect.Value) reflect.Value {
	if v.CanInterface() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}
