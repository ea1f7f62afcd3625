package providers

import (
	"context"

	"go.uber.org/zap"

	"github.com/km-arc/go-foundation/framework/bootstrap"
	"github.com/km-arc/go-foundation/framework/config"
	"github.com/km-arc/go-foundation/framework/container"
	"github.com/km-arc/go-foundation/framework/database"
	"github.com/km-arc/go-foundation/framework/logging"
	"github.com/km-arc/go-foundation/framework/routing"
	"github.com/km-arc/go-foundation/framework/schedule"
)

// ServiceProvider bundles a subsystem's container bindings with the loader
// units that bring it to life. Register runs during the registration phase
// and must not resolve anything; all side-effectful work belongs in Units,
// which the orchestrator sequences by their declared predecessors.
type ServiceProvider interface {
	Register(c *container.Container) error
	Units() []*bootstrap.Unit
}

// Core loader unit names, exported so user units can depend on them.
const (
	UnitConfigLoad      = "config.load"
	UnitLoggingInit     = "logging.init"
	UnitDatabaseConnect = "database.connect"
	UnitScheduleStart   = "schedule.start"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the configuration source: a Singleton with no
// dependencies, resolved first.
//
// Bound tokens:
//   - "config" → *config.Config
type ConfigServiceProvider struct {
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(c *container.Container) error {
	envFiles := p.EnvFiles
	return c.Bind("config", container.Singleton, func(...any) (any, error) {
		return config.Load(envFiles...), nil
	})
}

func (p *ConfigServiceProvider) Units() []*bootstrap.Unit {
	return []*bootstrap.Unit{{
		Name: UnitConfigLoad,
		Run: func(_ context.Context, c *container.Container) error {
			_, err := container.Resolve[*config.Config](c, "config")
			return err
		},
	}}
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the structured logger built from Config.Log.
//
// Bound tokens:
//   - "log" → *zap.Logger
type LoggingServiceProvider struct{}

func (p *LoggingServiceProvider) Register(c *container.Container) error {
	return c.Bind("log", container.Singleton, func(deps ...any) (any, error) {
		cfg := deps[0].(*config.Config)
		return logging.New(cfg.Log)
	}, "config")
}

func (p *LoggingServiceProvider) Units() []*bootstrap.Unit {
	return []*bootstrap.Unit{{
		Name:      UnitLoggingInit,
		DependsOn: []string{UnitConfigLoad},
		Run: func(_ context.Context, c *container.Container) error {
			_, err := container.Resolve[*zap.Logger](c, "log")
			return err
		},
	}}
}

// ── DatabaseServiceProvider ───────────────────────────────────────────────────

// DatabaseServiceProvider contributes the "database.connect" unit, which
// opens and pings the configured database and binds the live handle as a
// Singleton value under "db". Deployments without a configured database
// (DB_DATABASE empty) skip the connection and leave "db" unbound.
type DatabaseServiceProvider struct{}

func (p *DatabaseServiceProvider) Register(_ *container.Container) error {
	// The handle is produced at bootstrap time; nothing to bind upfront.
	return nil
}

func (p *DatabaseServiceProvider) Units() []*bootstrap.Unit {
	return []*bootstrap.Unit{{
		Name:      UnitDatabaseConnect,
		DependsOn: []string{UnitConfigLoad, UnitLoggingInit},
		Run: func(ctx context.Context, c *container.Container) error {
			cfg, err := container.Resolve[*config.Config](c, "config")
			if err != nil {
				return err
			}
			if cfg.DB.Database == "" {
				return nil
			}
			conn, err := database.Connect(ctx, cfg.DB)
			if err != nil {
				return err
			}
			return c.BindValue("db", conn)
		},
	}}
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider binds the HTTP router with the per-request scope
// middleware installed, so Scoped providers resolve once per request.
//
// Bound tokens:
//   - "router" → *routing.Router
type RoutingServiceProvider struct{}

func (p *RoutingServiceProvider) Register(c *container.Container) error {
	return c.Bind("router", container.Singleton, func(deps ...any) (any, error) {
		owner := deps[0].(*container.Container)
		r := routing.New()
		r.Middleware(routing.ScopeMiddleware(owner))
		return r, nil
	}, "container")
}

func (p *RoutingServiceProvider) Units() []*bootstrap.Unit { return nil }

// ── ScheduleServiceProvider ───────────────────────────────────────────────────

// ScheduleServiceProvider binds the cron scheduler and starts it once
// logging is up. The embedding process owns the scheduler until shutdown.
//
// Bound tokens:
//   - "schedule" → *schedule.Scheduler
type ScheduleServiceProvider struct{}

func (p *ScheduleServiceProvider) Register(c *container.Container) error {
	return c.Bind("schedule", container.Singleton, func(deps ...any) (any, error) {
		return schedule.New(deps[0].(*zap.Logger)), nil
	}, "log")
}

func (p *ScheduleServiceProvider) Units() []*bootstrap.Unit {
	return []*bootstrap.Unit{{
		Name:      UnitScheduleStart,
		DependsOn: []string{UnitLoggingInit},
		Run: func(_ context.Context, c *container.Container) error {
			s, err := container.Resolve[*schedule.Scheduler](c, "schedule")
			if err != nil {
				return err
			}
			s.Start()
			return nil
		},
	}}
}
