package shroud

// Override interfaces allow types to bypass reflection-based masking.
// When the root value of a mask call implements one of these interfaces, the
// engine calls the interface method on the clone instead of walking it.
//
// These interfaces are designed for codegen: a code generator can implement
// these methods based on struct tags, providing compile-time safety and
// avoiding reflection on hot paths.

// Maskable bypasses reflection for masking.
// Implement this to handle all masking for a type.
type Maskable interface {
	// Mask transforms the receiver's fields that require masking.
	// The maskers map contains all registered maskers keyed by type.
	// The receiver is a clone, so mutations are safe.
	Mask(maskers map[MaskType]Masker) error
}
