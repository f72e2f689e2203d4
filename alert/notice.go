// Package alert turns errors into notices for chat-webhook alerting.
//
// A Notice captures the error chain, a short stack trace and the call
// arguments. Arguments are masked by a shroud engine before they are stored,
// so tagged fields never reach the webhook in clear text.
//
//	n := alert.New(ctx, err, alert.WithProject("billing"), alert.WithArgs(req))
//	post(webhook, n.DingTalkText())
package alert

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/zoobzio/shroud"
)

const (
	// MaxFrames is the number of stack frames kept on a notice.
	MaxFrames = 10

	// NilErrorMessage is the message recorded when New is given a nil error.
	NilErrorMessage = "error is nil, no stack trace available"

	// UnmaskedParam replaces an argument that could not be masked.
	UnmaskedParam = "<unmaskable>"

	// compactLimit bounds params and trace lines in the compact renderers.
	compactLimit = 3

	// compactTraceLen bounds the compact trace text in characters.
	compactTraceLen = 2500

	autogenerated = "<autogenerated>"
)

// Notice describes one error occurrence.
type Notice struct {
	Project          string
	UID              string
	MethodName       string
	Params           []any
	TraceID          string
	ClassPath        string
	ExceptionMessage string
	TraceInfo        []string
}

// Option configures New.
type Option func(*config)

type config struct {
	project string
	traceID string
	args    []any
	hasArgs bool
	digest  Digest
	engine  *shroud.Engine
	skip    int
}

// WithProject sets the project name shown on the notice.
func WithProject(name string) Option {
	return func(c *config) {
		c.project = name
	}
}

// WithTraceID sets the request trace identifier.
func WithTraceID(id string) Option {
	return func(c *config) {
		c.traceID = id
	}
}

// WithArgs records the arguments of the failing call. Each argument is
// masked before it is stored.
func WithArgs(args ...any) Option {
	return func(c *config) {
		c.args = args
		c.hasArgs = true
	}
}

// WithDigest selects the digest used for the notice UID. MD5 is the default.
func WithDigest(d Digest) Option {
	return func(c *config) {
		c.digest = d
	}
}

// WithEngine sets the engine used to mask arguments.
// The shroud default engine is used otherwise.
func WithEngine(e *shroud.Engine) Option {
	return func(c *config) {
		c.engine = e
	}
}

// WithSkip skips additional caller frames when the trace is captured by New.
func WithSkip(n int) Option {
	return func(c *config) {
		c.skip = n
	}
}

// New builds a Notice for err.
//
// The stack trace is taken from err when any error in its chain exposes
// Callers() []uintptr or StackTrace() []uintptr. Otherwise it is captured
// at the call to New.
func New(ctx context.Context, err error, opts ...Option) *Notice {
	cfg := config{digest: MD5(), engine: shroud.Default()}
	for _, opt := range opts {
		opt(&cfg)
	}

	n := &Notice{
		Project:          cfg.project,
		TraceID:          cfg.traceID,
		ExceptionMessage: describe(err),
	}
	if cfg.hasArgs {
		n.Params = maskArgs(ctx, cfg.engine, cfg.args)
	}

	if err != nil {
		pcs := stackOf(err)
		if pcs == nil {
			pcs = capture(cfg.skip + 3)
		}
		frames := framesOf(pcs)
		if len(frames) > 0 {
			n.TraceInfo = make([]string, len(frames))
			for i, f := range frames {
				n.TraceInfo[i] = formatFrame(f)
			}
			n.ClassPath, n.MethodName = splitFunction(frames[0].Function)
		}
	}

	n.UID = cfg.digest.Sum([]byte(n.ExceptionMessage + "-" + first(n.TraceInfo)))
	return n
}

// describe renders err and its causes, outermost first.
func describe(err error) string {
	if err == nil {
		return NilErrorMessage
	}
	s := fmt.Sprintf("%T: %s", err, err.Error())
	if cause := errors.Unwrap(err); cause != nil {
		s = fmt.Sprintf("%s\r\n\tcaused by : %s", s, describe(cause))
	}
	return s
}

func maskArgs(ctx context.Context, e *shroud.Engine, args []any) []any {
	out := make([]any, len(args))
	for i, arg := range args {
		if arg == nil {
			continue
		}
		masked, err := e.Mask(ctx, arg)
		if err != nil {
			out[i] = UnmaskedParam
			continue
		}
		out[i] = masked
	}
	return out
}

type callersTracer interface {
	Callers() []uintptr
}

type stackTracer interface {
	StackTrace() []uintptr
}

// stackOf returns the program counters recorded on err's chain, if any.
func stackOf(err error) []uintptr {
	var ct callersTracer
	if errors.As(err, &ct) {
		return ct.Callers()
	}
	var st stackTracer
	if errors.As(err, &st) {
		return st.StackTrace()
	}
	return nil
}

func capture(skip int) []uintptr {
	pcs := make([]uintptr, MaxFrames*2)
	n := runtime.Callers(skip, pcs)
	return pcs[:n]
}

// framesOf resolves pcs, dropping frames without a source file.
func framesOf(pcs []uintptr) []runtime.Frame {
	if len(pcs) == 0 {
		return nil
	}
	var out []runtime.Frame
	frames := runtime.CallersFrames(pcs)
	for len(out) < MaxFrames {
		f, more := frames.Next()
		if f.File != "" && f.File != autogenerated {
			out = append(out, f)
		}
		if !more {
			break
		}
	}
	return out
}

func formatFrame(f runtime.Frame) string {
	return fmt.Sprintf("%s(%s:%d)", f.Function, f.File, f.Line)
}

// splitFunction splits a qualified function name such as
// "example.com/pkg.(*T).Method" into "example.com/pkg.(*T)" and "Method".
func splitFunction(fn string) (owner, name string) {
	slash := strings.LastIndex(fn, "/")
	dot := strings.LastIndex(fn[slash+1:], ".")
	if dot < 0 {
		return "", fn
	}
	dot += slash + 1
	return fn[:dot], fn[dot+1:]
}

func first(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}
