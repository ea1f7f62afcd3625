package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-foundation/framework/app"
	"github.com/km-arc/go-foundation/framework/bootstrap"
	"github.com/km-arc/go-foundation/framework/container"
	"github.com/km-arc/go-foundation/framework/providers"
)

// newTestApp pins the env so tests do not depend on the host machine or a
// stray .env file, and stops the scheduler the boot sequence starts.
func newTestApp(t *testing.T) *app.Application {
	t.Helper()
	t.Setenv("APP_ENV", "testing")
	t.Setenv("DB_DATABASE", "") // no live database in unit tests
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "console")

	a := app.New("testdata/absent.env")
	t.Cleanup(func() {
		if a.Bound("schedule") && a.Resolved("schedule") {
			_ = a.Schedule().Stop(context.Background())
		}
	})
	return a
}

//
// -----------------------------------------------------------------------------
// Boot
// -----------------------------------------------------------------------------

func TestApplication_BootWiresCoreServices(t *testing.T) {
	a := newTestApp(t)

	require.NoError(t, a.Boot(context.Background()))
	assert.True(t, a.Booted())

	assert.True(t, a.Resolved("config"))
	assert.True(t, a.Resolved("log"))
	assert.Equal(t, "testing", a.Environment())
	assert.True(t, a.IsTesting())

	// No database configured: the connect unit is a no-op and "db" stays unbound.
	_, err := a.DB()
	var unknown container.UnknownTokenError
	require.ErrorAs(t, err, &unknown)
}

func TestApplication_BootIsIdempotent(t *testing.T) {
	a := newTestApp(t)

	runs := 0
	a.Use(&bootstrap.Unit{
		Name:      "cache.warm",
		DependsOn: []string{providers.UnitConfigLoad},
		Run: func(context.Context, *container.Container) error {
			runs++
			return nil
		},
	})

	require.NoError(t, a.Boot(context.Background()))
	require.NoError(t, a.Boot(context.Background()))
	assert.Equal(t, 1, runs)
}

func TestApplication_UserUnitsRunAfterTheirPredecessors(t *testing.T) {
	a := newTestApp(t)

	var ran []string
	a.Use(
		&bootstrap.Unit{
			Name:      "search.index",
			DependsOn: []string{"cache.warm"},
			Run: func(context.Context, *container.Container) error {
				ran = append(ran, "search.index")
				return nil
			},
		},
		&bootstrap.Unit{
			Name:      "cache.warm",
			DependsOn: []string{providers.UnitConfigLoad},
			Run: func(context.Context, *container.Container) error {
				ran = append(ran, "cache.warm")
				return nil
			},
		},
	)

	require.NoError(t, a.Boot(context.Background()))
	assert.Equal(t, []string{"cache.warm", "search.index"}, ran)
}

//
// -----------------------------------------------------------------------------
// Fail-fast
// -----------------------------------------------------------------------------

func TestApplication_BootFailureLeavesAppUnbooted(t *testing.T) {
	a := newTestApp(t)

	boom := errors.New("index server unreachable")
	a.Use(&bootstrap.Unit{
		Name:      "search.index",
		DependsOn: []string{providers.UnitConfigLoad},
		Run:       func(context.Context, *container.Container) error { return boom },
	})

	err := a.Boot(context.Background())

	var bf *bootstrap.BootstrapFailure
	require.ErrorAs(t, err, &bf)
	assert.Equal(t, "search.index", bf.Unit)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, bf.Succeeded, providers.UnitConfigLoad)
	assert.False(t, a.Booted(), "a failed bootstrap must never look ready")
}

func TestApplication_UnknownUnitDependencyFailsPlanning(t *testing.T) {
	a := newTestApp(t)

	a.Use(&bootstrap.Unit{
		Name:      "search.index",
		DependsOn: []string{"ghost.unit"},
		Run:       func(context.Context, *container.Container) error { return nil },
	})

	err := a.Boot(context.Background())

	var unresolved bootstrap.UnresolvedDependencyError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "search.index", unresolved.Unit)
	assert.Equal(t, "ghost.unit", unresolved.Dependency)
	assert.False(t, a.Booted())
}

//
// -----------------------------------------------------------------------------
// User bindings through the embedded container
// -----------------------------------------------------------------------------

func TestApplication_UserServiceResolvesThroughKernel(t *testing.T) {
	a := newTestApp(t)

	type greeter struct{ name string }
	require.NoError(t, a.Bind("greeter", container.Singleton, func(deps ...any) (any, error) {
		return &greeter{name: "foundation"}, nil
	}))

	require.NoError(t, a.Boot(context.Background()))

	g, err := container.Resolve[*greeter](a.Container, "greeter")
	require.NoError(t, err)
	assert.Equal(t, "foundation", g.name)
}
