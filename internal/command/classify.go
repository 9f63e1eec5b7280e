package command

import (
	"github.com/joshuapare/regkit/internal/locale"
	"github.com/joshuapare/regkit/internal/observability"
	"github.com/joshuapare/regkit/internal/process"
	"github.com/joshuapare/regkit/internal/regtext"
)

// Verdict is how a finished reg.exe run is interpreted.
type Verdict int

const (
	VerdictSuccess Verdict = iota // stdout is the result
	VerdictAbsent                 // the key or value does not exist
	VerdictFailure                // reg.exe reported an error
)

// String returns the observability outcome label for v.
func (v Verdict) String() string {
	switch v {
	case VerdictSuccess:
		return observability.OutcomeSuccess
	case VerdictAbsent:
		return observability.OutcomeAbsent
	default:
		return observability.OutcomeFailure
	}
}

// Classifier decides what a reg.exe run meant. It is the single place that
// knows how "not found" is detected.
type Classifier interface {
	Classify(st locale.State, out process.Output) Verdict
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(st locale.State, out process.Output) Verdict

// Classify calls f.
func (f ClassifierFunc) Classify(st locale.State, out process.Output) Verdict { return f(st, out) }

// LocaleClassifier treats empty stderr as success and a first stderr line
// equal to the learned "not found" message as absence. This depends on the
// exact phrasing of the installed reg.exe.
type LocaleClassifier struct{}

// Classify implements Classifier.
func (LocaleClassifier) Classify(st locale.State, out process.Output) Verdict {
	if out.Stderr == "" {
		return VerdictSuccess
	}
	if regtext.ErrorLine(out.Stderr) == st.NotFound {
		return VerdictAbsent
	}
	return VerdictFailure
}
