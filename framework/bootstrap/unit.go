package bootstrap

import (
	"context"
	"time"

	"github.com/km-arc/go-foundation/framework/container"
)

// ── Loader units ──────────────────────────────────────────────────────────────

// RunFunc is the body of a loader unit. It receives the container so it can
// resolve what earlier units bound and bind back any resource handle it
// produces (a live connection, a started listener). It must honor ctx: the
// orchestrator cancels it on deadline and never abandons it mid-flight.
type RunFunc func(ctx context.Context, c *container.Container) error

// Unit is a named, independently testable initialization step with declared
// predecessors.
//
//	db := &bootstrap.Unit{
//	    Name:      "database.connect",
//	    DependsOn: []string{"config.load"},
//	    Run: func(ctx context.Context, c *container.Container) error {
//	        conn, err := database.Connect(ctx, cfg)
//	        if err != nil {
//	            return err
//	        }
//	        return c.BindValue("db", conn)
//	    },
//	}
type Unit struct {
	Name      string
	DependsOn []string

	// Timeout bounds Run via a derived context deadline; zero means none.
	Timeout time.Duration

	Run RunFunc
}

// State is a unit's position in its lifecycle. A unit only leaves Pending
// once every unit it depends on has reached Succeeded.
type State int

const (
	Pending State = iota
	Running
	Succeeded
	Failed
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}
