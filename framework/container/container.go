package container

import (
	"fmt"
	"sync"
)

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the public façade over Registry + Resolver. It is the value
// every loader unit and root object receives explicitly — there is no shared
// global instance, which keeps wiring testable.
//
// Lifecycle:
//
//  1. Create:   c := container.New()
//  2. Register: c.Bind(...) / c.BindValue(...) — append-only registration phase
//  3. Bootstrap: the orchestrator resolves and runs loader units
//  4. Serve:    Get / Scope during steady state
type Container struct {
	mu       sync.Mutex // serializes registration; resolution locking lives in Resolver
	registry *Registry
	resolver *Resolver
}

// New creates an empty container. The container binds itself under the
// "container" token so factories that genuinely need the façade can declare
// it like any other dependency.
func New() *Container {
	c := &Container{registry: NewRegistry()}
	c.resolver = NewResolver(c.registry)
	_ = c.BindValue("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a construction recipe under token.
//
//	c.Bind("user.service", container.Singleton, func(deps ...any) (any, error) {
//	    return NewUserService(deps[0].(*sql.DB)), nil
//	}, "db")
func (c *Container) Bind(token Token, scope Scope, build Factory, deps ...Token) error {
	return c.Register(&Provider{Token: token, Dependencies: deps, Scope: scope, Build: build})
}

// BindValue registers a pre-built value as a Singleton.
func (c *Container) BindValue(token Token, value any) error {
	return c.Register(NewValue(token, value))
}

// Register adds a fully-specified provider, failing with DuplicateTokenError
// if the token is already bound.
func (c *Container) Register(p *Provider) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Register(p)
}

// Override replaces any existing binding for token and drops its committed
// singleton, so subsequent Get calls use the new recipe.
func (c *Container) Override(token Token, scope Scope, build Factory, deps ...Token) {
	c.OverrideProvider(&Provider{Token: token, Dependencies: deps, Scope: scope, Build: build})
}

// OverrideValue replaces any existing binding with a pre-built value.
func (c *Container) OverrideValue(token Token, value any) {
	c.OverrideProvider(NewValue(token, value))
}

// OverrideProvider is the explicit-override counterpart of Register.
func (c *Container) OverrideProvider(p *Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.registry.Override(p)
	c.resolver.Forget(p.Token)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves token with a fresh top-level scope context.
//
// Get is idempotent for Singleton tokens (the identical instance across
// calls) and always constructs anew for Transient tokens.
func (c *Container) Get(token Token) (any, error) {
	return c.resolver.Resolve(token, nil)
}

// Scope opens a new scope context. Scoped providers resolved through the
// returned context are cached for its lifetime only.
func (c *Container) Scope() *ScopeContext {
	return c.resolver.NewScope()
}

// ── Introspection ─────────────────────────────────────────────────────────────

// Bound reports whether token has a registered provider.
func (c *Container) Bound(token Token) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Bound(token)
}

// Resolved reports whether a Singleton instance has been committed for token.
func (c *Container) Resolved(token Token) bool {
	return c.resolver.Resolved(token)
}

// Tokens returns every bound token in registration order.
func (c *Container) Tokens() []Token {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.registry.Tokens()
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve resolves token and type-asserts the result.
//
//	db, err := container.Resolve[*sql.DB](c, "db")
func Resolve[T any](c *Container, token Token) (T, error) {
	var zero T
	v, err := c.Get(token)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: token %q resolved to %T, want %T", string(token), v, zero)
	}
	return typed, nil
}

// MustResolve is Resolve for wiring paths where a type mismatch is a
// programming error worth halting on.
func MustResolve[T any](c *Container, token Token) T {
	v, err := Resolve[T](c, token)
	if err != nil {
		panic(err)
	}
	return v
}

// ResolveIn resolves token inside an existing scope context and
// type-asserts the result.
func ResolveIn[T any](sc *ScopeContext, token Token) (T, error) {
	var zero T
	v, err := sc.Get(token)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("container: token %q resolved to %T, want %T", string(token), v, zero)
	}
	return typed, nil
}
