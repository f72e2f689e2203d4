package shroud

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for masking events.
var (
	SignalProcessorCreated = capitan.NewSignal("shroud.processor.created", "Processor instantiated")
	SignalMaskStart        = capitan.NewSignal("shroud.mask.start", "Mask operation beginning")
	SignalMaskComplete     = capitan.NewSignal("shroud.mask.complete", "Mask operation finished")
	SignalSendComplete     = capitan.NewSignal("shroud.send.complete", "Send operation finished")
	SignalCloneShallow     = capitan.NewSignal("shroud.clone.shallow", "Value copied by reference during clone")
	SignalPredicateFailed  = capitan.NewSignal("shroud.predicate.failed", "Effectiveness predicate could not be evaluated")
)

// Keys for typed event data.
var (
	KeyContentType  = capitan.NewStringKey("content_type")
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeyField        = capitan.NewStringKey("field")
	KeyPredicate    = capitan.NewStringKey("predicate")
	KeySize         = capitan.NewIntKey("size")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
	KeyMaskedCount  = capitan.NewIntKey("masked_count")
	KeyVisitedCount = capitan.NewIntKey("visited_count")
)

// emitProcessorCreated emits an event when a processor is created.
func emitProcessorCreated(ctx context.Context, contentType, typeName string) {
	capitan.Emit(ctx, SignalProcessorCreated,
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
	)
}

// emitMaskStart emits an event when masking begins.
func emitMaskStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalMaskStart,
		KeyTypeName.Field(typeName),
	)
}

// emitMaskComplete emits an event when masking finishes.
func emitMaskComplete(ctx context.Context, typeName string, duration time.Duration, masked, visited int, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyDuration.Field(duration),
		KeyMaskedCount.Field(masked),
		KeyVisitedCount.Field(visited),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalMaskComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalMaskComplete, fields...)
	}
}

// emitSendComplete emits an event when a processor finishes encoding.
func emitSendComplete(ctx context.Context, contentType, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyContentType.Field(contentType),
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalSendComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalSendComplete, fields...)
	}
}

// emitCloneShallow emits an event when a value is carried into the clone by reference.
func emitCloneShallow(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalCloneShallow,
		KeyTypeName.Field(typeName),
	)
}

// emitPredicateFailed emits an event when a field's predicate could not be evaluated.
func emitPredicateFailed(ctx context.Context, typeName, field, predicate string, err error) {
	capitan.Error(ctx, SignalPredicateFailed,
		KeyTypeName.Field(typeName),
		KeyField.Field(field),
		KeyPredicate.Field(predicate),
		KeyError.Field(err),
	)
}
