package shroud

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"time"
)

// Engine clones value graphs and masks tagged fields on the copy.
//
// Engines are safe for concurrent use. SetMasker may be called at any time.
type Engine struct {
	catalog    *Catalog
	failClosed bool

	mu      sync.RWMutex
	maskers map[MaskType]Masker
}

// Option configures an Engine.
type Option func(*Engine)

// WithMasker replaces the masker used for a mask type.
func WithMasker(mt MaskType, m Masker) Option {
	return func(e *Engine) {
		e.maskers[mt] = m
	}
}

// WithFailClosed masks a field when its effectiveness predicate cannot be
// evaluated. By default such fields are left unmasked.
func WithFailClosed() Option {
	return func(e *Engine) {
		e.failClosed = true
	}
}

// WithCatalog sets the field catalog. Engines share a process-wide catalog by default.
func WithCatalog(c *Catalog) Option {
	return func(e *Engine) {
		e.catalog = c
	}
}

// NewEngine creates an Engine with the builtin maskers.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		catalog: defaultCatalog,
		maskers: builtinMaskers(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetMasker registers a masker for the given type.
// Returns the engine for chaining. Safe for concurrent use.
func (e *Engine) SetMasker(mt MaskType, m Masker) *Engine {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.maskers[mt] = m
	return e
}

// hasMasker reports whether a non-nil masker is registered for mt.
func (e *Engine) hasMasker(mt MaskType) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.maskers[mt] != nil
}

// Clone returns a deep copy of v.
func (e *Engine) Clone(v any) (any, error) {
	if v == nil {
		return nil, newCloneError(ErrNilValue, "", nil)
	}
	out, err := newCloner(context.Background(), e.catalog).cloneRoot(reflect.ValueOf(v))
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// Mask returns a deep copy of v with every tagged field masked.
// v itself is never modified.
func (e *Engine) Mask(ctx context.Context, v any) (any, error) {
	if v == nil {
		return nil, newCloneError(ErrNilValue, "", nil)
	}
	src := reflect.ValueOf(v)
	out, err := e.run(ctx, src.Type().String(), func(c *cloner) (reflect.Value, error) {
		return c.cloneRoot(src)
	})
	if err != nil {
		return nil, err
	}
	return out.Interface(), nil
}

// run clones via cloneFn and masks the clone in place.
// The returned value is addressable and owned by the caller.
func (e *Engine) run(ctx context.Context, typeName string, cloneFn func(*cloner) (reflect.Value, error)) (reflect.Value, error) {
	start := time.Now()
	emitMaskStart(ctx, typeName)

	w := &walker{ctx: ctx, catalog: e.catalog, failClosed: e.failClosed, visited: make(visitedSet)}
	var retErr error
	defer func() {
		emitMaskComplete(ctx, typeName, time.Since(start), w.masked, len(w.visited), retErr)
	}()

	clone, err := cloneFn(newCloner(ctx, e.catalog))
	if err != nil {
		retErr = err
		return reflect.Value{}, retErr
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	w.maskers = e.maskers

	if m, ok := asMaskable(clone); ok {
		if err := m.Mask(e.maskers); err != nil {
			retErr = newTransformError(ErrMask, "mask", typeName, err)
			return reflect.Value{}, retErr
		}
		return clone, nil
	}

	w.descend(clone)
	if len(w.errs) > 0 {
		retErr = errors.Join(w.errs...)
		return reflect.Value{}, retErr
	}
	return clone, nil
}

// asMaskable returns the Maskable override of an addressable root, if any.
func asMaskable(v reflect.Value) (Maskable, bool) {
	switch {
	case v.Kind() == reflect.Pointer:
		if v.IsNil() {
			return nil, false
		}
		m, ok := v.Interface().(Maskable)
		return m, ok
	case v.Kind() != reflect.Interface && v.CanAddr():
		m, ok := v.Addr().Interface().(Maskable)
		return m, ok
	}
	return nil, false
}

// walker masks one cloned graph in place.
type walker struct {
	ctx        context.Context
	catalog    *Catalog
	maskers    map[MaskType]Masker
	failClosed bool
	visited    visitedSet

	masked int
	errs   []error
	failed map[reflect.Type]struct{}
}

// descend dispatches on the shape of v. Mutations are made in place, so v
// must be addressable wherever its own contents are to be rewritten.
func (w *walker) descend(v reflect.Value) {
	switch shapeOf(v.Type()) {
	case ShapeIndirect:
		if v.IsNil() || !w.visited.addRef(v) {
			return
		}
		w.descend(v.Elem())

	case ShapeComposite:
		if isGeneral(v.Type()) || !v.CanAddr() || !w.visited.add(v) {
			return
		}
		w.walk(v)

	case ShapeArray:
		if isGeneral(v.Type().Elem()) {
			return
		}
		for i := 0; i < v.Len(); i++ {
			w.descend(v.Index(i))
		}

	case ShapeSequence:
		if v.IsNil() || isGeneral(v.Type().Elem()) || !w.visited.addRef(v) {
			return
		}
		for i := 0; i < v.Len(); i++ {
			w.descend(v.Index(i))
		}

	case ShapeMapping:
		if v.IsNil() || isGeneral(v.Type().Elem()) || !w.visited.addRef(v) {
			return
		}
		// Keys are never traversed or masked.
		for _, k := range v.MapKeys() {
			if out, changed := w.descendCopy(v.MapIndex(k)); changed {
				v.SetMapIndex(k, out)
			}
		}

	case ShapeInterface:
		if v.IsNil() {
			return
		}
		if out, changed := w.descendCopy(v.Elem()); changed && v.CanSet() {
			v.Set(out)
		}
	}
}

// descendCopy descends into a value that cannot be modified in place, such
// as a map value or an interface's dynamic value. Struct and array values are
// copied into an addressable temporary which is returned with changed=true.
func (w *walker) descendCopy(v reflect.Value) (reflect.Value, bool) {
	if !needsCopy(v) {
		w.descend(v)
		return v, false
	}
	tmp := reflect.New(v.Type()).Elem()
	tmp.Set(v)
	w.descend(tmp)
	return tmp, true
}

// needsCopy reports whether v holds composite data by value that masking
// may rewrite.
func needsCopy(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Struct, reflect.Array:
		return !v.CanAddr() && !isGeneral(v.Type())
	case reflect.Interface:
		return !v.IsNil() && needsCopy(v.Elem())
	}
	return false
}

// walk masks the fields of inst, an addressable struct. Composite members are
// processed before the field itself is considered for masking.
func (w *walker) walk(inst reflect.Value) {
	fields, err := w.catalog.FieldsOf(inst.Type())
	if err != nil {
		w.fail(inst.Type(), err)
	}

	for i := range fields {
		f := &fields[i]
		if shapeOf(f.ReflectType) == ShapeFixedValue {
			continue
		}

		fv := accessible(inst.FieldByIndex(f.Index))
		w.descend(fv)

		if f.Rule != nil && f.Textual() {
			w.apply(inst, f, fv)
		}
	}
}

// apply evaluates the field's rule and overwrites its text with the masked form.
func (w *walker) apply(inst reflect.Value, f *Field, fv reflect.Value) {
	masker := w.maskers[f.Rule.Type]
	if masker == nil {
		w.fail(inst.Type(), newConfigError(ErrMissingMasker, string(f.Rule.Type), f.Name))
		return
	}

	ok, err := effective(inst, f.Rule)
	if err != nil {
		emitPredicateFailed(w.ctx, inst.Type().String(), f.Name, f.Rule.When,
			newTransformError(ErrPredicate, "predicate", f.Name, err))
		ok = w.failClosed
	}
	if !ok {
		return
	}

	switch f.text {
	case textString:
		if w.maskString(fv, masker) {
			w.masked++
		}

	case textSequence:
		for i := 0; i < fv.Len(); i++ {
			if w.maskString(fv.Index(i), masker) {
				w.masked++
			}
		}

	case textMapping:
		if fv.IsNil() {
			return
		}
		for _, k := range fv.MapKeys() {
			old := fv.MapIndex(k).String()
			if isBlank(old) {
				continue
			}
			nv := reflect.New(fv.Type().Elem()).Elem()
			nv.SetString(masker.Mask(old))
			fv.SetMapIndex(k, nv)
			w.masked++
		}
	}
}

// fail records a configuration error once per struct type.
func (w *walker) fail(t reflect.Type, err error) {
	if w.failed == nil {
		w.failed = make(map[reflect.Type]struct{})
	}
	if _, seen := w.failed[t]; seen {
		return
	}
	w.failed[t] = struct{}{}
	w.errs = append(w.errs, err)
}

// maskString masks a settable string value in place. Blank values are left alone.
func (w *walker) maskString(v reflect.Value, masker Masker) bool {
	if !v.CanSet() {
		return false
	}
	old := v.String()
	if isBlank(old) {
		return false
	}
	v.SetString(masker.Mask(old))
	return true
}
