package shroud

import (
	"context"
	"reflect"
)

var defaultEngine = NewEngine()

// Default returns the engine used by the package-level functions.
func Default() *Engine {
	return defaultEngine
}

// Mask returns a masked deep copy of v using the default engine.
func Mask[T any](ctx context.Context, v T) (T, error) {
	return MaskWith(ctx, defaultEngine, v)
}

// MaskWith returns a masked deep copy of v using engine e.
//
// A nil pointer comes back as nil. A nil interface yields ErrNilValue. On
// error the zero value is returned, never v itself.
func MaskWith[T any](ctx context.Context, e *Engine, v T) (T, error) {
	var zero T
	src := reflect.ValueOf(&v).Elem()
	if src.Kind() == reflect.Interface && src.IsNil() {
		return zero, newCloneError(ErrNilValue, src.Type().String(), nil)
	}

	out, err := e.run(ctx, src.Type().String(), func(c *cloner) (reflect.Value, error) {
		return cloneTyped(c, v)
	})
	if err != nil {
		return zero, err
	}
	return out.Interface().(T), nil
}

// Clone returns a deep copy of v using the default engine.
func Clone[T any](v T) (T, error) {
	var zero T
	src := reflect.ValueOf(&v).Elem()
	if src.Kind() == reflect.Interface && src.IsNil() {
		return zero, newCloneError(ErrNilValue, src.Type().String(), nil)
	}

	out, err := cloneTyped(newCloner(context.Background(), defaultEngine.catalog), v)
	if err != nil {
		return zero, err
	}
	return out.Interface().(T), nil
}

// cloneTyped copies v into a fresh addressable holder of type T, using the
// Cloner override when T implements it.
func cloneTyped[T any](c *cloner, v T) (reflect.Value, error) {
	if cl, ok := any(v).(Cloner[T]); ok {
		copied := cl.Clone()
		holder := reflect.New(reflect.TypeFor[T]()).Elem()
		holder.Set(reflect.ValueOf(&copied).Elem())
		return holder, nil
	}
	return c.cloneRoot(reflect.ValueOf(&v).Elem())
}
