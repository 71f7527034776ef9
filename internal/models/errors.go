package models

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition rejects a lifecycle operation before any write,
// e.g. dismissing an already-completed notification or recording a
// non-positive payment amount.
var ErrInvalidTransition = errors.New("invalid notification transition")

// PartialWriteError reports a multi-step payment workflow that failed
// after some steps may have committed. There is no automatic rollback;
// the failed step is surfaced for manual reconciliation.
type PartialWriteError struct {
	Step string
	Err  error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("payment workflow failed at step %q: %v", e.Step, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
