package shroud

import (
	"fmt"
	"reflect"
	"sync"
)

// Rule is the masking rule declared on a field.
type Rule struct {
	// Type selects the masking algorithm.
	Type MaskType

	// When names an effectiveness predicate evaluated against the containing
	// instance. Empty means masking is always enabled.
	When string
}

// Effective lets a type decide, per instance, whether a named rule applies.
// The predicate name comes from the field's mask.when tag.
//
//	type Order struct {
//	    Buyer string `mask:"chinese_name" mask.when:"anonymous"`
//	    Anonymous bool
//	}
//
//	func (o *Order) MaskEffective(name string) bool {
//	    return name == "anonymous" && o.Anonymous
//	}
type Effective interface {
	MaskEffective(predicate string) bool
}

type predicateKey struct {
	typ  reflect.Type
	name string
}

var (
	predicates   = make(map[predicateKey]func(reflect.Value) bool)
	predicatesMu sync.RWMutex
)

// RegisterPredicate registers a named effectiveness predicate for type T.
// Registered predicates take precedence over an Effective implementation,
// which makes them usable for types you cannot add methods to.
func RegisterPredicate[T any](name string, fn func(*T) bool) {
	key := predicateKey{typ: reflect.TypeFor[T](), name: name}
	wrapped := func(v reflect.Value) bool {
		return fn(v.Interface().(*T))
	}

	predicatesMu.Lock()
	defer predicatesMu.Unlock()
	predicates[key] = wrapped
}

// ResetPredicates removes every registered predicate.
// This is primarily useful for test isolation.
func ResetPredicates() {
	predicatesMu.Lock()
	defer predicatesMu.Unlock()
	predicates = make(map[predicateKey]func(reflect.Value) bool)
}

func lookupPredicate(t reflect.Type, name string) (func(reflect.Value) bool, bool) {
	predicatesMu.RLock()
	defer predicatesMu.RUnlock()
	fn, ok := predicates[predicateKey{typ: t, name: name}]
	return fn, ok
}

// effective evaluates the rule's predicate against inst, an addressable struct.
// A predicate that cannot be resolved or panics yields ErrPredicate.
func effective(inst reflect.Value, rule *Rule) (ok bool, err error) {
	if rule.When == "" {
		return true, nil
	}

	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("%w: %s.%s panicked: %v", ErrPredicate, inst.Type(), rule.When, r)
		}
	}()

	if fn, found := lookupPredicate(inst.Type(), rule.When); found {
		return fn(inst.Addr()), nil
	}

	if e, isEffective := inst.Addr().Interface().(Effective); isEffective {
		return e.MaskEffective(rule.When), nil
	}

	return false, fmt.Errorf("%w: %q is not defined for %s", ErrPredicate, rule.When, inst.Type())
}
