package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/km-arc/go-foundation/framework/container"
)

// ── Orchestrator ──────────────────────────────────────────────────────────────

// Orchestrator executes a Plan strictly in order, one unit at a time. Later
// units are permitted to assume earlier units' side effects (a registered
// connection handle, a warmed cache) are already visible in the container,
// so no two units ever run concurrently.
type Orchestrator struct {
	log    *zap.Logger
	states map[string]State
}

// NewOrchestrator creates an orchestrator logging through log. A nil logger
// is replaced with a no-op one, keeping tests quiet.
func NewOrchestrator(log *zap.Logger) *Orchestrator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Orchestrator{log: log}
}

// Run executes the plan against c. On the first unit failure it stops
// scheduling and returns a *BootstrapFailure carrying the failing unit's
// name, its cause, and the units that had already succeeded; it performs no
// rollback of its own. On success the container — now populated with
// whatever handles the units bound into it — is ready for the embedding
// process, and Run returns nil.
//
// A unit with a Timeout runs under a derived deadline context. Cancellation
// is cooperative: the orchestrator waits for the unit to return, and a
// deadline overrun surfaces as a BootstrapFailure whose Cause matches
// ErrTimeout. Run spawns no background work of its own.
func (o *Orchestrator) Run(ctx context.Context, plan *Plan, c *container.Container) error {
	units := plan.Units()
	o.states = make(map[string]State, len(units))
	for _, u := range units {
		o.states[u.Name] = Pending
	}

	succeeded := make([]string, 0, len(units))
	for _, u := range units {
		o.states[u.Name] = Running
		o.log.Info("bootstrap: running unit",
			zap.String("unit", u.Name),
			zap.Strings("depends_on", u.DependsOn))

		start := time.Now()
		err := o.runUnit(ctx, u, c)
		if err != nil {
			o.states[u.Name] = Failed
			o.log.Error("bootstrap: unit failed",
				zap.String("unit", u.Name),
				zap.Duration("elapsed", time.Since(start)),
				zap.Error(err))
			return &BootstrapFailure{
				Unit:      u.Name,
				Succeeded: succeeded,
				Cause:     err,
			}
		}

		o.states[u.Name] = Succeeded
		succeeded = append(succeeded, u.Name)
		o.log.Info("bootstrap: unit succeeded",
			zap.String("unit", u.Name),
			zap.Duration("elapsed", time.Since(start)))
	}

	o.log.Info("bootstrap: complete", zap.Strings("units", succeeded))
	return nil
}

// runUnit applies the unit's deadline, if any, and normalizes overruns to
// ErrTimeout so the embedding process can tell timeouts from other causes.
func (o *Orchestrator) runUnit(ctx context.Context, u *Unit, c *container.Container) error {
	runCtx := ctx
	if u.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, u.Timeout)
		defer cancel()
	}

	err := u.Run(runCtx, c)
	if err != nil && u.Timeout > 0 && errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

// StateOf reports a unit's state after (or during) the most recent Run.
// Units from plans never run report Pending.
func (o *Orchestrator) StateOf(name string) State {
	return o.states[name]
}
