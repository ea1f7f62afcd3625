package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/km-arc/go-foundation/framework/app"
	"github.com/km-arc/go-foundation/framework/bootstrap"
	"github.com/km-arc/go-foundation/framework/config"
	"github.com/km-arc/go-foundation/framework/container"
	"github.com/km-arc/go-foundation/framework/providers"
	"github.com/km-arc/go-foundation/framework/routing"
)

// Greeter is a tiny example service wired through the container.
type Greeter struct {
	AppName string
}

func (g *Greeter) Greet() string { return "Welcome to " + g.AppName + "!" }

// RequestID is a Scoped example: one value per inbound request.
type RequestID struct {
	N uint64
}

var requestCounter uint64

func main() {
	application := app.New() // loads .env automatically

	// ── Service bindings ─────────────────────────────────────────────────────

	err := application.Bind("greeter", container.Singleton, func(deps ...any) (any, error) {
		cfg := deps[0].(*config.Config)
		return &Greeter{AppName: cfg.App.Name}, nil
	}, "config")
	if err != nil {
		log.Fatalf("bind greeter: %v", err)
	}

	err = application.Bind("request.id", container.Scoped, func(...any) (any, error) {
		return &RequestID{N: atomic.AddUint64(&requestCounter, 1)}, nil
	})
	if err != nil {
		log.Fatalf("bind request.id: %v", err)
	}

	// ── Custom loader unit ───────────────────────────────────────────────────

	application.Use(&bootstrap.Unit{
		Name:      "cache.warm",
		DependsOn: []string{providers.UnitConfigLoad, providers.UnitLoggingInit},
		Timeout:   5 * time.Second,
		Run: func(ctx context.Context, c *container.Container) error {
			// Stand-in for real warmup work; honors the unit deadline.
			select {
			case <-time.After(10 * time.Millisecond):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	// ── Routes ───────────────────────────────────────────────────────────────

	r := application.Router()

	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		greeter := container.MustResolve[*Greeter](application.Container, "greeter")
		writeJSON(w, http.StatusOK, map[string]any{"message": greeter.Greet()})
	})

	r.Prefix("/api/v1", func(api *routing.Router) {
		api.Get("/whoami", func(w http.ResponseWriter, req *http.Request) {
			sc := routing.ScopeFrom(req)
			id, err := container.ResolveIn[*RequestID](sc, "request.id")
			if err != nil {
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"request": id.N})
		})
	})

	// ── Scheduled job ────────────────────────────────────────────────────────

	if err := application.Schedule().Call("*/5 * * * *", "heartbeat", func() error {
		application.Log().Info("heartbeat")
		return nil
	}); err != nil {
		log.Fatalf("schedule heartbeat: %v", err)
	}

	// ── Boot & serve ─────────────────────────────────────────────────────────

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := application.Run(ctx); err != nil {
		log.Fatalf("bootstrap failed: %v", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
