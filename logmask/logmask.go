// Package logmask masks tagged values on their way into log/slog records.
//
//	logger.Info("order placed", "customer", logmask.Value(customer))
//
// Masking is deferred until a handler resolves the value, so disabled log
// levels cost nothing.
package logmask

import (
	"context"
	"log/slog"

	"github.com/zoobzio/shroud"
)

// Placeholder is logged in place of a value that could not be masked.
const Placeholder = "<unmaskable>"

type valuer struct {
	engine *shroud.Engine
	v      any
}

// Value wraps v so that it is masked with the default engine when logged.
func Value(v any) slog.LogValuer {
	return valuer{engine: shroud.Default(), v: v}
}

// ValueWith wraps v so that it is masked with engine e when logged.
func ValueWith(e *shroud.Engine, v any) slog.LogValuer {
	return valuer{engine: e, v: v}
}

// LogValue implements slog.LogValuer.
func (lv valuer) LogValue() slog.Value {
	return maskValue(lv.engine, lv.v)
}

// ReplaceAttr masks attributes that carry arbitrary values. It is meant for
// slog.HandlerOptions.ReplaceAttr so that values logged without Value are
// masked too.
func ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindAny {
		a.Value = maskValue(shroud.Default(), a.Value.Any())
	}
	return a
}

func maskValue(e *shroud.Engine, v any) slog.Value {
	if v == nil {
		return slog.AnyValue(nil)
	}
	masked, err := e.Mask(context.Background(), v)
	if err != nil {
		return slog.StringValue(Placeholder)
	}
	return slog.AnyValue(masked)
}
