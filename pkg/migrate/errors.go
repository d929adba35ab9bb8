package migrate

import (
	"errors"
	"fmt"
)

// ErrUnknownVersion is returned when a requested version is not in the chain.
var ErrUnknownVersion = errors.New("migrate: unknown version")

// ErrDisconnectedChain is returned when no path exists between two versions
// that are both present in the chain. A validated chain cannot produce this;
// it guards against malformed or hand-edited step sets.
var ErrDisconnectedChain = errors.New("migrate: disconnected chain")

// ErrIrreversible is returned when a downgrade path crosses a step that is
// not declared reversible and the caller did not force the run.
var ErrIrreversible = errors.New("migrate: irreversible step")

// IsUnknownVersionErr returns true if err is or wraps ErrUnknownVersion.
func IsUnknownVersionErr(err error) bool {
	return errors.Is(err, ErrUnknownVersion)
}

// ValidationError describes one structural defect found in a step set.
type ValidationError struct {
	Version string // offending step version, empty for chain-level defects
	Reason  string
}

func (e *ValidationError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("migrate: invalid chain: %s", e.Reason)
	}
	return fmt.Sprintf("migrate: invalid step %s: %s", e.Version, e.Reason)
}

// OperationError identifies the exact operation that failed while applying a
// step. The enclosing transaction has already been rolled back when the
// caller sees this, so the schema and the version marker are unchanged.
type OperationError struct {
	Version   string
	Direction Direction
	Index     int
	SQL       string
	Err       error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("migrate: step %s %s: operation %d failed: %v",
		e.Version, e.Direction, e.Index, e.Err)
}

func (e *OperationError) Unwrap() error { return e.Err }
