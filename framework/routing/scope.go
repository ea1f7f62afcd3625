package routing

import (
	"context"
	"net/http"

	"github.com/km-arc/go-foundation/framework/container"
)

type scopeKey struct{}

// ScopeMiddleware opens a fresh container scope context per inbound request,
// so Scoped providers resolve to one instance per request. Scope contexts
// are never shared across requests — each handler sees only its own cache.
//
//	router.Middleware(routing.ScopeMiddleware(c))
//
//	router.Get("/profile", func(w http.ResponseWriter, r *http.Request) {
//	    sc := routing.ScopeFrom(r)
//	    state, _ := container.ResolveIn[*RequestState](sc, "request.state")
//	    ...
//	})
func ScopeMiddleware(c *container.Container) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sc := c.Scope()
			ctx := context.WithValue(r.Context(), scopeKey{}, sc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ScopeFrom returns the request's scope context, or nil when
// ScopeMiddleware is not installed.
func ScopeFrom(r *http.Request) *container.ScopeContext {
	sc, _ := r.Context().Value(scopeKey{}).(*container.ScopeContext)
	return sc
}
