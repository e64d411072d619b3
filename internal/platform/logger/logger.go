// Package logger wraps zerolog. The root logger is built once from LOG_* and
// request or run ids travel on the context so C(ctx) can stamp them on events
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"judolguard/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the type every package logs through
type Logger = zerolog.Logger

// Options configures the root logger
type Options struct {
	Level        string
	Format       string // console or json
	Service      string
	Component    string
	Writer       io.Writer // stdout when nil
	WithCaller   bool
	SampleEvery  int
	StaticFields map[string]string
}

// FromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_SERVICE, LOG_COMPONENT, LOG_CALLER and LOG_SAMPLE_EVERY.
// It goes through config/raw because config itself logs
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       strings.ToLower(env.Get("LEVEL", "debug")),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", ""),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once   sync.Once
	root   atomic.Pointer[Logger]
	inited atomic.Bool
)

// Init builds the root logger. Only the first call has an effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		zerolog.TimeFieldFormat = time.RFC3339Nano

		out := opt.Writer
		if out == nil {
			out = os.Stdout
		}
		if opt.Format == "console" {
			out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
		}

		fields := map[string]string{"service": opt.Service, "component": opt.Component}
		if bi, ok := debug.ReadBuildInfo(); ok {
			fields["go_version"] = bi.GoVersion
		}
		for k, v := range opt.StaticFields {
			fields[k] = v
		}
		b := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp()
		for k, v := range fields {
			if v != "" {
				b = b.Str(k, v)
			}
		}
		if opt.WithCaller {
			b = b.Caller()
		}

		l := b.Logger()
		if opt.SampleEvery > 1 {
			l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
		}
		root.Store(&l)
		inited.Store(true)
	})
}

// Get returns the root logger, building it from the environment on first use
func Get() *Logger {
	if !inited.Load() {
		Init(FromEnv())
	}
	return root.Load()
}

// parseLevel accepts zerolog level names plus "warning". Anything else is debug
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" || lvl == zerolog.NoLevel || lvl == zerolog.Disabled {
		return zerolog.DebugLevel
	}
	return lvl
}

type ctxKey uint8

const (
	requestKey ctxKey = iota
	runKey
)

// WithRequest stores the ids on ctx. Empty ids leave the current value alone
func WithRequest(ctx context.Context, reqID, runID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, requestKey, reqID)
	}
	if runID != "" {
		ctx = context.WithValue(ctx, runKey, runID)
	}
	return ctx
}

// IDs returns the request and run ids carried by ctx
func IDs(ctx context.Context) (reqID, runID string) {
	reqID, _ = ctx.Value(requestKey).(string)
	runID, _ = ctx.Value(runKey).(string)
	return reqID, runID
}

// C is the root logger with request_id and run_id from ctx
func C(ctx context.Context) *Logger {
	b := Get().With()
	reqID, runID := IDs(ctx)
	if reqID != "" {
		b = b.Str("request_id", reqID)
	}
	if runID != "" {
		b = b.Str("run_id", runID)
	}
	l := b.Logger()
	return &l
}

// Named is the root logger tagged with component
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
