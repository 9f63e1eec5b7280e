package reg

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/joshuapare/regkit/internal/command"
	"github.com/joshuapare/regkit/internal/deletion"
	"github.com/joshuapare/regkit/internal/locale"
	"github.com/joshuapare/regkit/internal/observability"
	"github.com/joshuapare/regkit/internal/options"
	"github.com/joshuapare/regkit/internal/process"
	"github.com/joshuapare/regkit/internal/query"
	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
)

type (
	// Defaults are the process-wide settings a call falls back to.
	Defaults = options.Defaults
	// Options overrides Defaults for one call. Nil fields are unset.
	Options = options.Options
	// Request is a fully resolved call.
	Request = options.Request

	// Runner starts reg.exe. Swap it to run against a fake.
	Runner = process.Runner
	// RunnerFunc adapts a function to Runner.
	RunnerFunc = process.RunnerFunc
	// Output is what a Runner captured from one run.
	Output = process.Output

	// Locale is what the locale queries learned about this machine's reg.exe.
	Locale = locale.State

	// Value is registry data: Bytes, Strings, Int, Int64 or String.
	Value = regtext.Value
	// Bytes is REG_BINARY data.
	Bytes = regtext.Bytes
	// Strings is REG_MULTI_SZ data.
	Strings = regtext.Strings
	// Int is REG_DWORD data.
	Int = regtext.Int
	// Int64 is REG_QWORD data.
	Int64 = regtext.Int64
	// String is REG_SZ or REG_EXPAND_SZ data.
	String = regtext.String

	// QueryResult is the listing of one key.
	QueryResult = regtext.QueryResult
	// QueryValue is one value in a QueryResult.
	QueryValue = regtext.QueryValue
)

// Config wires a Client. The zero Config runs reg.exe from PATH with no
// telemetry.
type Config struct {
	Program  string // default "reg.exe"
	Runner   Runner // default: os/exec
	Defaults Defaults

	// Telemetry, when set, reports invocations to the global otel
	// providers unless MeterProvider or TracerProvider name others.
	Telemetry      bool
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Client runs registry operations through one reg.exe and one locale
// bootstrap. It is safe for concurrent use.
type Client struct {
	exec     *command.Executor
	defaults *options.Store
	lister   *query.Lister
	engine   *deletion.Engine
}

// New builds a Client from cfg.
func New(cfg Config) (*Client, error) {
	ccfg := command.Config{Program: cfg.Program, Runner: cfg.Runner}

	switch {
	case cfg.MeterProvider != nil:
		m, err := observability.NewMetricsRecorderFrom(cfg.MeterProvider.Meter(observability.InstrumentationName))
		if err != nil {
			return nil, err
		}
		ccfg.Metrics = m
	case cfg.Telemetry:
		ccfg.Metrics = observability.NewMetricsRecorder()
	}
	switch {
	case cfg.TracerProvider != nil:
		ccfg.Spans = observability.NewSpanManagerFrom(cfg.TracerProvider)
	case cfg.Telemetry:
		ccfg.Spans = observability.NewSpanManager()
	}

	exec := command.New(ccfg)
	lister := query.NewLister(exec)
	return &Client{
		exec:     exec,
		defaults: options.NewStore(cfg.Defaults),
		lister:   lister,
		engine:   deletion.New(exec, lister),
	}, nil
}

var defaultClient = sync.OnceValue(func() *Client {
	c, _ := New(Config{}) // cannot fail without a MeterProvider
	return c
})

// Default returns the process-wide Client running reg.exe from PATH.
func Default() *Client { return defaultClient() }

// Ptr returns a pointer to v, for filling Options.
func Ptr[T any](v T) *T { return &v }

// Defaults returns the current defaults.
func (c *Client) Defaults() Defaults { return c.defaults.Get() }

// SetDefaults replaces the defaults for calls made afterwards.
func (c *Client) SetDefaults(d Defaults) { c.defaults.Set(d) }

// UpdateDefaults edits the defaults for calls made afterwards.
func (c *Client) UpdateDefaults(fn func(*Defaults)) { c.defaults.Update(fn) }

// Resolve merges opts over path over the current defaults.
func (c *Client) Resolve(path string, opts *Options) Request {
	return c.defaults.Resolve(options.Args{Path: path}, opts)
}

// Locale waits for the locale queries and returns their result.
func (c *Client) Locale(ctx context.Context) (Locale, error) {
	return c.exec.Locale(ctx)
}

// Execute runs reg.exe with raw arguments. found is false when reg.exe
// reported the key or value missing.
func (c *Client) Execute(ctx context.Context, args ...string) (stdout string, found bool, err error) {
	return c.exec.Execute(ctx, args...)
}

// Delete removes the value opts.Name names, or the key at path when opts
// names no value.
func (c *Client) Delete(ctx context.Context, path string, opts *Options) error {
	return c.engine.Delete(ctx, c.Resolve(path, opts))
}

// DeleteKey removes the key at path and everything under it.
func (c *Client) DeleteKey(ctx context.Context, path string, opts *Options) error {
	req := c.Resolve(path, opts)
	req.Name = nil
	return c.engine.DeleteKey(ctx, req)
}

// DeleteValue removes one value of the key at path. Pass
// types.DefaultValue for the unnamed value.
func (c *Client) DeleteValue(ctx context.Context, path string, name types.ValueName, opts *Options) error {
	req := c.Resolve(path, opts)
	req.Name = &name
	return c.engine.DeleteValue(ctx, req)
}

// ClearValues removes every value of the key at path.
func (c *Client) ClearValues(ctx context.Context, path string, opts *Options) error {
	return c.engine.ClearValues(ctx, c.Resolve(path, opts))
}

// ClearKeys removes every subkey of the key at path.
func (c *Client) ClearKeys(ctx context.Context, path string, opts *Options) error {
	return c.engine.ClearKeys(ctx, c.Resolve(path, opts))
}

// Clear removes every value and subkey of the key at path, keeping the
// key itself.
func (c *Client) Clear(ctx context.Context, path string, opts *Options) error {
	return c.engine.Clear(ctx, c.Resolve(path, opts))
}

// Keys returns the names of the immediate subkeys of path. A missing key
// has none.
func (c *Client) Keys(ctx context.Context, path string, opts *Options) ([]string, error) {
	return c.lister.Keys(ctx, c.Resolve(path, opts))
}

// Query lists the values and subkeys of path. found is false when the key
// does not exist.
func (c *Client) Query(ctx context.Context, path string, opts *Options) (res QueryResult, found bool, err error) {
	return c.lister.Query(ctx, c.Resolve(path, opts))
}
