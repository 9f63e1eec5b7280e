// Package command is the single entry point for running reg.exe. It gates
// every run on the locale bootstrap and turns the output into a result, an
// absence, or a typed error.
package command

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/joshuapare/regkit/internal/locale"
	"github.com/joshuapare/regkit/internal/logger"
	"github.com/joshuapare/regkit/internal/observability"
	"github.com/joshuapare/regkit/internal/process"
	"github.com/joshuapare/regkit/internal/regtext"
	"github.com/joshuapare/regkit/pkg/types"
)

// Config wires an Executor. Zero fields select defaults.
type Config struct {
	Program    string         // default regtext.Program
	Runner     process.Runner // default process.NewExecRunner()
	Bootstrap  *locale.Bootstrap
	Classifier Classifier // default LocaleClassifier
	Metrics    observability.MetricsRecorder
	Spans      observability.SpanManager
}

// Executor runs reg.exe commands. It is safe for concurrent use.
type Executor struct {
	program  string
	runner   process.Runner
	boot     *locale.Bootstrap
	classify Classifier
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
}

// New builds an Executor from cfg.
func New(cfg Config) *Executor {
	e := &Executor{
		program:  cfg.Program,
		runner:   cfg.Runner,
		boot:     cfg.Bootstrap,
		classify: cfg.Classifier,
		metrics:  cfg.Metrics,
		spans:    cfg.Spans,
	}
	if e.program == "" {
		e.program = regtext.Program
	}
	if e.runner == nil {
		e.runner = process.NewExecRunner()
	}
	if e.metrics == nil {
		e.metrics = observability.NoopMetrics{}
	}
	if e.spans == nil {
		e.spans = observability.NoopSpanManager{}
	}
	if e.boot == nil {
		e.boot = locale.New(e.runner, e.program, e.metrics)
	}
	if e.classify == nil {
		e.classify = LocaleClassifier{}
	}
	return e
}

// Locale waits for the locale bootstrap and returns what it learned.
func (e *Executor) Locale(ctx context.Context) (locale.State, error) {
	return e.boot.Wait(ctx)
}

// Execute runs reg.exe with args. found is false with a nil error when the
// key or value does not exist. Failures reported by reg.exe come back as
// *types.Error of kind ErrKindExec carrying the command line; failures to
// start reg.exe are returned unchanged from the runner.
func (e *Executor) Execute(ctx context.Context, args ...string) (stdout string, found bool, err error) {
	st, err := e.boot.Wait(ctx)
	if err != nil {
		return "", false, err
	}

	id := uuid.NewString()
	cmdline := CommandLine(args)
	log := logger.With("component", "command", "invocation_id", id)
	log.Debug("exec", "args", args)

	ctx, span := e.spans.StartExecSpan(ctx, cmdline, id)
	start := time.Now()

	out, err := e.runner.Run(ctx, e.program, args)
	if err != nil {
		e.metrics.RecordInvocation(ctx, verb(args), observability.OutcomeFailure, time.Since(start))
		e.spans.EndSpan(span, observability.OutcomeFailure, err)
		log.Debug("spawn failed", "error", err)
		return "", false, err
	}

	verdict := e.classify.Classify(st, out)
	e.metrics.RecordInvocation(ctx, verb(args), verdict.String(), time.Since(start))

	switch verdict {
	case VerdictSuccess:
		e.spans.EndSpan(span, verdict.String(), nil)
		log.Debug("exec done", "bytes", len(out.Stdout))
		return out.Stdout, true, nil

	case VerdictAbsent:
		e.spans.EndSpan(span, verdict.String(), nil)
		log.Debug("exec absent")
		return "", false, nil

	default:
		line := regtext.ErrorLine(out.Stderr)
		execErr := &types.Error{
			Kind:    types.ErrKindExec,
			Msg:     regtext.StripErrorPrefix(line),
			Command: cmdline,
		}
		e.spans.EndSpan(span, verdict.String(), execErr)
		log.Debug("exec failed", "error", execErr, "exit_code", out.ExitCode)
		return "", false, execErr
	}
}

// CommandLine renders args the way error messages show them.
func CommandLine(args []string) string {
	return regtext.CommandName + " " + strings.Join(args, " ")
}

func verb(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.ToLower(args[0])
}
