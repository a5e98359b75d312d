package models

import (
	"errors"
	"fmt"
)

// Kind classifies why an analysis run failed.
type Kind int

const (
	KindUnknown Kind = iota
	// KindCredential means the access token is missing; nothing was attempted.
	KindCredential
	// KindFetch means the repository could not be cloned.
	KindFetch
	// KindParse means a single file could not be parsed; the run continues.
	KindParse
	KindWalk
	KindSave
	KindConfig
)

func (k Kind) String() string {
	switch k {
	case KindCredential:
		return "credential"
	case KindFetch:
		return "fetch"
	case KindParse:
		return "parse"
	case KindWalk:
		return "walk"
	case KindSave:
		return "save"
	case KindConfig:
		return "config"
	default:
		return "unknown"
	}
}

// ErrMissingToken is returned when no access token is configured.
var ErrMissingToken = errors.New("please set the GITHUB_TOKEN environment variable")

// AnalysisError tags an error with the stage that produced it.
type AnalysisError struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *AnalysisError) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s error: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewError wraps err with a kind and operation name. A nil err yields nil.
func NewError(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &AnalysisError{Kind: kind, Op: op, Err: err}
}

// KindOf returns the kind of the first AnalysisError in err's chain.
func KindOf(err error) Kind {
	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) {
		return analysisErr.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
