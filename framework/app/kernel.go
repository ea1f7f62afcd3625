package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-foundation/framework/bootstrap"
	"github.com/km-arc/go-foundation/framework/config"
	"github.com/km-arc/go-foundation/framework/container"
	"github.com/km-arc/go-foundation/framework/database"
	"github.com/km-arc/go-foundation/framework/providers"
	"github.com/km-arc/go-foundation/framework/routing"
	"github.com/km-arc/go-foundation/framework/schedule"
)

// UnitHTTPServe is the transport unit the kernel appends last: it depends on
// every other unit, so the application only starts accepting connections
// once the rest of the bootstrap plan has succeeded.
const UnitHTTPServe = "http.serve"

// Application is the top-level kernel. It embeds the DI Container so user
// code can call app.Bind(), app.Get(), app.Scope() directly, and it owns the
// loader-unit graph the bootstrap orchestrator executes.
type Application struct {
	*container.Container

	units  []*bootstrap.Unit
	booted bool
}

// New creates the application and registers the framework core providers:
// config, logging, database, routing, and the scheduler. Registration only
// declares bindings and units — nothing connects or starts until Boot.
func New(envFiles ...string) *Application {
	app := &Application{Container: container.New()}

	core := []providers.ServiceProvider{
		&providers.ConfigServiceProvider{EnvFiles: envFiles},
		&providers.LoggingServiceProvider{},
		&providers.DatabaseServiceProvider{},
		&providers.RoutingServiceProvider{},
		&providers.ScheduleServiceProvider{},
	}
	for _, p := range core {
		if err := app.Register(p); err != nil {
			// Core providers bind into a fresh container; a collision here is
			// a framework bug, not a recoverable condition.
			panic(err)
		}
	}
	return app
}

// Register adds a service provider: its bindings immediately, its loader
// units to the bootstrap graph.
func (a *Application) Register(p providers.ServiceProvider) error {
	if err := p.Register(a.Container); err != nil {
		return err
	}
	a.units = append(a.units, p.Units()...)
	return nil
}

// Use appends loader units to the bootstrap graph. Declaration order breaks
// plan ties, so repeated runs with the same units boot identically.
func (a *Application) Use(units ...*bootstrap.Unit) {
	a.units = append(a.units, units...)
}

// Units returns the declared loader units in declaration order.
func (a *Application) Units() []*bootstrap.Unit {
	out := make([]*bootstrap.Unit, len(a.units))
	copy(out, a.units)
	return out
}

// Boot computes the bootstrap plan and runs it. It fails fast: any unit
// failure aborts with a *bootstrap.BootstrapFailure and the application must
// not serve traffic. Boot is idempotent once successful.
func (a *Application) Boot(ctx context.Context) error {
	if a.booted {
		return nil
	}

	plan, err := bootstrap.ComputePlan(a.units)
	if err != nil {
		return err
	}

	// The orchestrator reports through the app logger when one is bindable;
	// before config is loadable (or in tests) it stays quiet.
	log, err := container.Resolve[*zap.Logger](a.Container, "log")
	if err != nil {
		log = zap.NewNop()
	}

	if err := bootstrap.NewOrchestrator(log).Run(ctx, plan, a.Container); err != nil {
		return err
	}
	a.booted = true
	return nil
}

// Booted reports whether Boot has completed successfully.
func (a *Application) Booted() bool { return a.booted }

// Run appends the transport unit — depending on all declared units — then
// boots. The HTTP server starts only as the final step of a fully
// successful plan and blocks until ctx is cancelled or the listener fails.
func (a *Application) Run(ctx context.Context) error {
	if a.booted {
		// Already bootstrapped; start the transport directly.
		return a.serve(ctx, a.Container)
	}
	deps := make([]string, len(a.units))
	for i, u := range a.units {
		deps[i] = u.Name
	}
	a.Use(&bootstrap.Unit{
		Name:      UnitHTTPServe,
		DependsOn: deps,
		Run:       a.serve,
	})
	return a.Boot(ctx)
}

// serve is the transport unit body: start accepting connections.
func (a *Application) serve(ctx context.Context, c *container.Container) error {
	cfg, err := container.Resolve[*config.Config](c, "config")
	if err != nil {
		return err
	}
	router, err := container.Resolve[*routing.Router](c, "router")
	if err != nil {
		return err
	}
	log := container.MustResolve[*zap.Logger](c, "log")

	srv := &http.Server{Addr: ":" + cfg.App.Port, Handler: router}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	log.Info("serving",
		zap.String("app", cfg.App.Name),
		zap.String("addr", srv.Addr),
		zap.String("env", cfg.App.Env))
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("app: http server: %w", err)
	}
	return nil
}

// ── Accessors ────────────────────────────────────────────────────────────────

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config")
}

// Log resolves the application logger.
func (a *Application) Log() *zap.Logger {
	return container.MustResolve[*zap.Logger](a.Container, "log")
}

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, "router")
}

// DB resolves the live database handle bound by the database.connect unit.
func (a *Application) DB() (*database.Conn, error) {
	return container.Resolve[*database.Conn](a.Container, "db")
}

// Schedule resolves the cron scheduler.
func (a *Application) Schedule() *schedule.Scheduler {
	return container.MustResolve[*schedule.Scheduler](a.Container, "schedule")
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
func (a *Application) Version() string     { return "0.1.0" }
