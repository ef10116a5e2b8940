package ctxlogger

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/mdobak/go-xerrors"
)

type ctxKey string

const slogFields ctxKey = "slog_fields"

// ContextHandler adds attributes stored in the context by AppendCtx to every record.
type ContextHandler struct {
	slog.Handler
}

func (h ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs, ok := ctx.Value(slogFields).([]slog.Attr); ok {
		r.AddAttrs(attrs...)
	}

	return h.Handler.Handle(ctx, r)
}

func (h ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h ContextHandler) WithGroup(name string) slog.Handler {
	return ContextHandler{Handler: h.Handler.WithGroup(name)}
}

// AppendCtx returns a copy of parent carrying attr in addition to the attributes it already had.
func AppendCtx(parent context.Context, attr slog.Attr) context.Context {
	if parent == nil {
		parent = context.Background()
	}

	if v, ok := parent.Value(slogFields).([]slog.Attr); ok {
		attrs := make([]slog.Attr, 0, len(v)+1)
		attrs = append(attrs, v...)
		attrs = append(attrs, attr)
		return context.WithValue(parent, slogFields, attrs)
	}

	return context.WithValue(parent, slogFields, []slog.Attr{attr})
}

type stackFrame struct {
	Func   string `json:"func"`
	Source string `json:"source"`
	Line   int    `json:"line"`
}

// ReplaceAttr renders error values as a group with the message and, when the
// error carries one, its stack trace.
func ReplaceAttr(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() != slog.KindAny {
		return a
	}

	err, ok := a.Value.Any().(error)
	if !ok {
		return a
	}

	values := []slog.Attr{slog.String("msg", err.Error())}
	if frames := marshalStack(err); frames != nil {
		values = append(values, slog.Any("trace", frames))
	}
	a.Value = slog.GroupValue(values...)

	return a
}

func marshalStack(err error) []stackFrame {
	trace := xerrors.StackTrace(err)
	if len(trace) == 0 {
		return nil
	}

	frames := trace.Frames()
	s := make([]stackFrame, len(frames))
	for i, v := range frames {
		s[i] = stackFrame{
			Source: filepath.Join(filepath.Base(filepath.Dir(v.File)), filepath.Base(v.File)),
			Func:   filepath.Base(v.Function),
			Line:   v.Line,
		}
	}

	return s
}
