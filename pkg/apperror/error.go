package apperror

import (
	"context"
	"errors"
	"fmt"

	"ai-vocab-coach/pkg/apperror/status"
)

// Kind classifies a failure by which single feature it degrades. Every
// Oracle-facing call localizes its errors into one of these at the boundary;
// none of them is fatal to the process.
type Kind string

const (
	KindLookup             Kind = "lookup_failure"
	KindImage              Kind = "image_failure"
	KindScenarioGeneration Kind = "scenario_generation_failure"
	KindTurn               Kind = "turn_failure"
	KindEvaluation         Kind = "evaluation_failure"
	KindAudio              Kind = "audio_failure"
	KindOracle             Kind = "oracle_error"
	KindTimeout            Kind = "timeout"
)

// Failure is a classified error carrying a stable numeric code.
type Failure struct {
	Kind Kind
	Code status.ErrorCode
	Err  error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return string(f.Kind)
	}
	return fmt.Sprintf("%s: %v", f.Kind, f.Err)
}

func (f *Failure) Unwrap() error { return f.Err }

// Is matches any Failure of the same kind, so callers can test against the
// sentinel values below with errors.Is.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	return ok && t.Kind == f.Kind
}

func (f *Failure) ErrorCode() status.ErrorCode { return f.Code }

// Sentinels for errors.Is checks.
var (
	ErrLookupFailure             = &Failure{Kind: KindLookup}
	ErrImageFailure              = &Failure{Kind: KindImage}
	ErrScenarioGenerationFailure = &Failure{Kind: KindScenarioGeneration}
	ErrTurnFailure               = &Failure{Kind: KindTurn}
	ErrEvaluationFailure         = &Failure{Kind: KindEvaluation}
	ErrAudioFailure              = &Failure{Kind: KindAudio}
	ErrOracleError               = &Failure{Kind: KindOracle}
	ErrTimeout                   = &Failure{Kind: KindTimeout}
)

// Wrap classifies err under the given kind and code. Returns nil for nil err.
func Wrap(kind Kind, code status.ErrorCode, err error) error {
	if err == nil {
		return nil
	}
	return &Failure{Kind: kind, Code: code, Err: err}
}

// Wrapf classifies a formatted error under the given kind and code.
func Wrapf(kind Kind, code status.ErrorCode, format string, args ...interface{}) error {
	return &Failure{Kind: kind, Code: code, Err: fmt.Errorf(format, args...)}
}

// FromContext maps context cancellation/deadline errors onto the Timeout
// kind, otherwise defers to fallback classification.
func FromContext(err error, fallbackKind Kind, fallbackCode status.ErrorCode) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Failure{Kind: KindTimeout, Code: status.OracleTimeout, Err: err}
	}
	return Wrap(fallbackKind, fallbackCode, err)
}

// IsKind reports whether err (or anything it wraps) is a Failure of kind k.
func IsKind(err error, k Kind) bool {
	var f *Failure
	if !errors.As(err, &f) {
		return false
	}
	return f.Kind == k
}
