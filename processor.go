package shroud

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/zoobzio/sentinel"
)

// Processor masks values of type T and encodes the masked copy with a Codec.
//
// Processors are safe for concurrent use. SetMasker may be called at any time.
//
// Validation occurs automatically on first operation. Configure all required
// maskers before the first call to Mask or Send.
type Processor[T any] struct {
	codec  Codec
	engine *Engine

	// Validation state (runs once on first operation)
	validateOnce sync.Once
	validateErr  error

	// Rules reachable from T (immutable after construction)
	rules []ruleRef

	// Type metadata
	typeName string
}

// ruleRef locates a masking rule declared somewhere in T's type graph.
type ruleRef struct {
	owner string
	field string
	rule  Rule
}

// NewProcessor creates a new Processor for type T.
//
// The processor is created with the builtin maskers. T is scanned with
// sentinel and every struct type reachable from it is catalogued up front,
// so an invalid mask tag fails here rather than on first use.
func NewProcessor[T any](codec Codec, opts ...Option) (*Processor[T], error) {
	engine := NewEngine(opts...)
	typ := reflect.TypeFor[T]()

	// Scanning fills sentinel's cache for T and the struct types it
	// references, which the catalog reads before falling back to reflection.
	if typ.Kind() == reflect.Struct || typ.Kind() == reflect.Pointer {
		_, _ = sentinel.TryScan[T]()
	}

	rules, err := collectRules(engine.catalog, typ)
	if err != nil {
		return nil, err
	}

	p := &Processor[T]{
		codec:    codec,
		engine:   engine,
		rules:    rules,
		typeName: typ.String(),
	}

	emitProcessorCreated(context.Background(), codec.ContentType(), p.typeName)
	return p, nil
}

// SetMasker registers a masker for the given type.
// Returns the processor for chaining. Safe for concurrent use.
func (p *Processor[T]) SetMasker(mt MaskType, m Masker) *Processor[T] {
	p.engine.SetMasker(mt, m)
	return p
}

// Validate checks that every mask type used by T has a registered masker.
//
// Validation also runs automatically on first operation. Calling Validate
// explicitly allows catching configuration errors at startup.
func (p *Processor[T]) Validate() error {
	return p.ensureValidated()
}

// ensureValidated runs validation once and caches the result.
func (p *Processor[T]) ensureValidated() error {
	p.validateOnce.Do(func() {
		p.validateErr = p.validateMaskers()
	})
	return p.validateErr
}

// validateMaskers ensures all required maskers are registered.
// Skips validation when T implements Maskable.
func (p *Processor[T]) validateMaskers() error {
	var zero T
	if _, ok := any(&zero).(Maskable); ok {
		return nil
	}
	for _, ref := range p.rules {
		if !p.engine.hasMasker(ref.rule.Type) {
			return newConfigError(ErrMissingMasker, string(ref.rule.Type), ref.owner+"."+ref.field)
		}
	}
	return nil
}

// Mask returns a masked deep copy of obj. A nil obj yields nil.
func (p *Processor[T]) Mask(ctx context.Context, obj *T) (*T, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, nil
	}

	masked, err := MaskWith(ctx, p.engine, *obj)
	if err != nil {
		return nil, err
	}
	return &masked, nil
}

// Send masks a copy of obj and marshals the result.
// Use for data going to external destinations (API responses, events, logs).
func (p *Processor[T]) Send(ctx context.Context, obj *T) ([]byte, error) {
	if err := p.ensureValidated(); err != nil {
		return nil, err
	}

	start := time.Now()
	var retErr error
	var retData []byte
	defer func() {
		emitSendComplete(ctx, p.codec.ContentType(), p.typeName,
			len(retData), time.Since(start), retErr)
	}()

	if obj == nil {
		retData, retErr = p.marshal(nil)
		return retData, retErr
	}

	masked, err := p.Mask(ctx, obj)
	if err != nil {
		retErr = err
		return nil, retErr
	}

	retData, retErr = p.marshal(masked)
	return retData, retErr
}

func (p *Processor[T]) marshal(v any) ([]byte, error) {
	data, err := p.codec.Marshal(v)
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// collectRules returns every masking rule reachable from typ, failing on the
// first invalid tag.
func collectRules(catalog *Catalog, typ reflect.Type) ([]ruleRef, error) {
	var rules []ruleRef
	seen := make(map[reflect.Type]bool)

	var visit func(t reflect.Type) error
	visit = func(t reflect.Type) error {
		if seen[t] {
			return nil
		}
		seen[t] = true

		switch t.Kind() {
		case reflect.Pointer, reflect.Slice, reflect.Array:
			return visit(t.Elem())
		case reflect.Map:
			return visit(t.Elem())
		case reflect.Struct:
			if isGeneral(t) {
				return nil
			}
			fields, err := catalog.FieldsOf(t)
			if err != nil {
				return err
			}
			for _, f := range fields {
				if f.Rule != nil && f.Textual() {
					rules = append(rules, ruleRef{owner: t.String(), field: f.Name, rule: *f.Rule})
				}
				if err := visit(f.ReflectType); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := visit(typ); err != nil {
		return nil, err
	}
	return rules, nil
}
