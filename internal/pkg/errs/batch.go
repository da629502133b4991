package errs

import (
	"fmt"
	"strings"
)

// AggregateFailure pairs an aggregate identifier with the error its
// storage operation returned.
type AggregateFailure struct {
	ID    string
	Cause error
}

func (f AggregateFailure) Error() string {
	return fmt.Sprintf("%s: %v", sanitize(f.ID), f.Cause)
}

func (f AggregateFailure) Unwrap() error {
	return f.Cause
}

// BatchError collects every per-aggregate failure of one commit or rollback
// pass. Aggregates not listed in Failures completed successfully.
type BatchError struct {
	Operation string
	Total     int
	Failures  []AggregateFailure
}

func NewBatchError(operation string, total int, failures []AggregateFailure) *BatchError {
	return &BatchError{
		Operation: operation,
		Total:     total,
		Failures:  failures,
	}
}

func (e *BatchError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, f.Error())
	}
	return fmt.Sprintf("%s: %s failed for %d of %d aggregates: %s",
		ErrBatchFailed, e.Operation, len(e.Failures), e.Total, strings.Join(parts, "; "))
}

// FailedIDs lists the identifiers whose operation failed, in visiting order.
func (e *BatchError) FailedIDs() []string {
	ids := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		ids = append(ids, f.ID)
	}
	return ids
}

func (e *BatchError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures)+1)
	errs = append(errs, ErrBatchFailed)
	for _, f := range e.Failures {
		errs = append(errs, f)
	}
	return errs
}
