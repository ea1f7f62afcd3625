package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-foundation/framework/container"
)

func noopUnit(name string, deps ...string) *Unit {
	return &Unit{
		Name:      name,
		DependsOn: deps,
		Run:       func(context.Context, *container.Container) error { return nil },
	}
}

// countingUnit increments n when run, to prove planning never executes.
func countingUnit(name string, n *int, deps ...string) *Unit {
	return &Unit{
		Name:      name,
		DependsOn: deps,
		Run: func(context.Context, *container.Container) error {
			*n++
			return nil
		},
	}
}

//
// -----------------------------------------------------------------------------
// Ordering
// -----------------------------------------------------------------------------

func TestComputePlan_TopologicalOrder(t *testing.T) {
	t.Parallel()

	plan, err := ComputePlan([]*Unit{
		noopUnit("startTransport", "initDatabase"),
		noopUnit("initDatabase", "initConfig"),
		noopUnit("initConfig"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"initConfig", "initDatabase", "startTransport"}, plan.Order())
}

func TestComputePlan_TiesBrokenByDeclarationOrder(t *testing.T) {
	t.Parallel()

	// b and c are both ready once a is placed; b was declared first.
	plan, err := ComputePlan([]*Unit{
		noopUnit("a"),
		noopUnit("b", "a"),
		noopUnit("c", "a"),
		noopUnit("d", "b", "c"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, plan.Order())
}

func TestComputePlan_Deterministic(t *testing.T) {
	t.Parallel()

	units := []*Unit{
		noopUnit("cache.warm", "config.load"),
		noopUnit("config.load"),
		noopUnit("database.connect", "config.load"),
		noopUnit("http.serve", "cache.warm", "database.connect"),
	}

	first, err := ComputePlan(units)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := ComputePlan(units)
		require.NoError(t, err)
		assert.Equal(t, first.Order(), again.Order())
	}
}

//
// -----------------------------------------------------------------------------
// Invalid graphs
// -----------------------------------------------------------------------------

func TestComputePlan_UnresolvedDependency(t *testing.T) {
	t.Parallel()

	_, err := ComputePlan([]*Unit{
		noopUnit("initDatabase", "initConfig"),
	})

	var unresolved UnresolvedDependencyError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "initDatabase", unresolved.Unit)
	assert.Equal(t, "initConfig", unresolved.Dependency)
}

func TestComputePlan_DuplicateUnitName(t *testing.T) {
	t.Parallel()

	_, err := ComputePlan([]*Unit{
		noopUnit("initConfig"),
		noopUnit("initConfig"),
	})

	var dup DuplicateUnitError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "initConfig", dup.Unit)
}

func TestComputePlan_CycleFailsAndRunsNothing(t *testing.T) {
	t.Parallel()

	runs := 0
	_, err := ComputePlan([]*Unit{
		countingUnit("a", &runs, "c"),
		countingUnit("b", &runs, "a"),
		countingUnit("c", &runs, "b"),
	})

	var cyc CyclicLoaderDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"a", "c", "b", "a"}, cyc.Cycle)
	assert.Zero(t, runs, "planning must never execute a unit")
}

func TestComputePlan_CycleBehindCompletedUnits(t *testing.T) {
	t.Parallel()

	// config plans fine; the x<->y knot behind it is still reported.
	_, err := ComputePlan([]*Unit{
		noopUnit("config"),
		noopUnit("x", "config", "y"),
		noopUnit("y", "x"),
	})

	var cyc CyclicLoaderDependencyError
	require.ErrorAs(t, err, &cyc)
	assert.Equal(t, []string{"x", "y", "x"}, cyc.Cycle)
}
