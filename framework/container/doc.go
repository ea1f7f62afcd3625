// Package container provides the dependency-injection core of go-foundation:
// a Registry of provider bindings, a Resolver that realizes instances with
// cycle detection and scoping, and a Container façade combining the two.
//
// # Overview
//
// A Provider binds a Token to a construction recipe: a factory plus an
// ordered list of dependency tokens and a lifetime scope. The Resolver walks
// the declared graph depth-first, constructing dependencies strictly before
// their dependents and caching results per scope:
//
//   - Singleton — one instance per process
//   - Scoped    — one instance per ScopeContext (bootstrap run or request)
//   - Transient — a fresh instance on every resolution
//
// # Registering
//
//	c := container.New()
//
//	c.BindValue("config", cfg)
//
//	c.Bind("db", container.Singleton, func(deps ...any) (any, error) {
//	    return database.Connect(deps[0].(*config.Config))
//	}, "config")
//
//	c.Bind("user.service", container.Singleton, func(deps ...any) (any, error) {
//	    return NewUserService(deps[0].(*database.Conn)), nil
//	}, "db")
//
// # Resolving
//
//	svc, err := container.Resolve[*UserService](c, "user.service")
//
// Resolution fails loudly, never retries, and never hands back a partially
// constructed graph:
//
//   - UnknownTokenError       — no binding for a requested token
//   - CyclicDependencyError   — the graph re-entered a token under
//     construction; the error names the full cycle path
//   - ProviderConstructionError — a factory failed; wraps the innermost
//     cause and the token chain that led there
//
// # Scopes
//
//	scope := c.Scope()
//	a, _ := scope.Get("request.state") // cached within this context
//	b, _ := scope.Get("request.state") // same instance as a
//
// # Manifests
//
// The wiring shape can also be declared in YAML (an ordered list of
// {token, dependencies, scope} records) and bound with BindManifest, keeping
// factories in code while the graph stays reviewable as data.
package container
