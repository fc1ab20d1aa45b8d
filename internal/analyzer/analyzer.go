package analyzer

import (
	"context"
	"errors"
)

// Analyzer is the capability interface for the external sentiment model. An
// implementation sends free text out for analysis and returns the raw label.
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

var (
	// ErrUnavailable means the analysis service could not be reached or did
	// not answer within the configured timeout.
	ErrUnavailable = errors.New("analysis service unavailable")
	// ErrBadResponse means the service answered but its payload carried no
	// usable sentiment.
	ErrBadResponse = errors.New("invalid response from analysis service")
)
