package reconcile

import (
	"errors"
	"fmt"
)

// ErrMalformedSource is wrapped by every SourceError: the payload is not a JSON array of objects.
var ErrMalformedSource = errors.New("malformed source payload")

// SourceError identifies which supplier and which stage rejected a payload.
type SourceError struct {
	Supplier Supplier
	Stage    string // decode | shape
	Index    int    // offending array element, -1 for the payload itself
	Err      error
}

func (e *SourceError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("reconcile: %s: %s: record %d: %v", e.Supplier, e.Stage, e.Index, e.Err)
	}
	return fmt.Sprintf("reconcile: %s: %s: %v", e.Supplier, e.Stage, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

func malformed(s Supplier, stage string, idx int, format string, args ...any) error {
	return &SourceError{
		Supplier: s,
		Stage:    stage,
		Index:    idx,
		Err:      fmt.Errorf("%w: "+format, append([]any{ErrMalformedSource}, args...)...),
	}
}
