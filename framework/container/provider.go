package container

// ── Tokens & Scopes ───────────────────────────────────────────────────────────

// Token uniquely identifies a bindable capability within a Registry.
//
//	const TokenDB container.Token = "db"
type Token string

// Scope is the lifetime policy applied to resolved instances.
type Scope int

const (
	// Singleton — constructed once per process, cached in the Resolver.
	Singleton Scope = iota

	// Scoped — constructed once per ScopeContext (per bootstrap run, or per
	// inbound request when the routing scope middleware is installed).
	Scoped

	// Transient — constructed fresh on every resolution, never cached.
	Transient
)

// String returns the manifest spelling of the scope.
func (s Scope) String() string {
	switch s {
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	case Transient:
		return "transient"
	default:
		return "unknown"
	}
}

// ParseScope converts a manifest spelling back into a Scope.
func ParseScope(s string) (Scope, bool) {
	switch s {
	case "singleton":
		return Singleton, true
	case "scoped":
		return Scoped, true
	case "transient":
		return Transient, true
	default:
		return Singleton, false
	}
}

// ── Providers ─────────────────────────────────────────────────────────────────

// Factory constructs a value from its already-resolved dependencies.
// deps arrive in the order declared by the Provider's Dependencies slice —
// the Resolver guarantees every dependency is fully constructed before the
// factory runs.
type Factory func(deps ...any) (any, error)

// Provider binds a Token to a construction recipe and a lifetime scope.
//
//	p := &container.Provider{
//	    Token:        "user.service",
//	    Dependencies: []container.Token{"db"},
//	    Scope:        container.Singleton,
//	    Build: func(deps ...any) (any, error) {
//	        return NewUserService(deps[0].(*sql.DB)), nil
//	    },
//	}
type Provider struct {
	Token        Token
	Dependencies []Token
	Scope        Scope
	Build        Factory
}

// NewValue wraps a pre-built value in a Singleton provider with no
// dependencies. Resolving the token always yields the same value.
func NewValue(token Token, value any) *Provider {
	return &Provider{
		Token: token,
		Scope: Singleton,
		Build: func(...any) (any, error) { return value, nil },
	}
}
