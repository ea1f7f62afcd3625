package bootstrap

import (
	"errors"
	"fmt"
	"strings"
)

// ── Error taxonomy ────────────────────────────────────────────────────────────

// DuplicateUnitError is returned by ComputePlan when two units share a name.
// Unit names are the graph's identifiers and must be unique.
type DuplicateUnitError struct{ Unit string }

func (e DuplicateUnitError) Error() string {
	return fmt.Sprintf("bootstrap: duplicate unit name %q", e.Unit)
}

// UnresolvedDependencyError is returned by ComputePlan when a unit names a
// predecessor with no matching unit.
type UnresolvedDependencyError struct {
	Unit       string
	Dependency string
}

func (e UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("bootstrap: unit %q depends on unknown unit %q", e.Unit, e.Dependency)
}

// CyclicLoaderDependencyError is returned by ComputePlan when the loader
// graph admits no topological order. Cycle holds the path with the first
// unit repeated at the end.
type CyclicLoaderDependencyError struct{ Cycle []string }

func (e CyclicLoaderDependencyError) Error() string {
	return "bootstrap: cyclic loader dependency " + strings.Join(e.Cycle, " -> ")
}

// ErrTimeout marks a unit failure caused by exceeding its deadline. It is
// the Cause of the resulting BootstrapFailure, matchable with errors.Is.
var ErrTimeout = errors.New("bootstrap: unit deadline exceeded")

// BootstrapFailure is returned by Orchestrator.Run when a unit fails. The
// orchestrator does not attempt rollback — resource release semantics are
// unit-specific — so Succeeded lists the units whose side effects the
// embedding process now owns and may need to release.
type BootstrapFailure struct {
	Unit      string   // the failing unit
	Succeeded []string // units that completed before the failure, in run order
	Cause     error
}

func (e *BootstrapFailure) Error() string {
	return fmt.Sprintf("bootstrap: unit %q failed (after %d succeeded): %v",
		e.Unit, len(e.Succeeded), e.Cause)
}

func (e *BootstrapFailure) Unwrap() error { return e.Cause }
