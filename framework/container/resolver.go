package container

import "sync"

// ── Resolver ──────────────────────────────────────────────────────────────────

// Resolver walks the dependency graph declared by each Provider's
// Dependencies and realizes instances according to their scope.
//
// Construction order is a strict post-order of the dependency DAG: every
// dependency is fully constructed before the dependent's factory runs.
//
// The singleton cache is guarded by a mutex so that concurrent Get calls on
// the same Container stay safe; the intended steady state, however, is that
// bootstrap fully populates singletons before concurrent traffic begins.
type Resolver struct {
	registry *Registry

	mu         sync.Mutex
	singletons map[Token]any
}

// NewResolver creates a resolver backed by reg.
func NewResolver(reg *Registry) *Resolver {
	return &Resolver{
		registry:   reg,
		singletons: make(map[Token]any),
	}
}

// ScopeContext is the cache boundary for Scoped providers: one instance per
// context. Contexts are never shared across goroutines, so the instance map
// needs no locking — only isolation per context.
type ScopeContext struct {
	resolver  *Resolver
	instances map[Token]any
}

// NewScope opens a fresh scope context.
func (r *Resolver) NewScope() *ScopeContext {
	return &ScopeContext{resolver: r, instances: make(map[Token]any)}
}

// Get resolves token within this scope context.
func (sc *ScopeContext) Get(token Token) (any, error) {
	return sc.resolver.Resolve(token, sc)
}

// resolveState tracks one top-level Resolve call: the path walked so far and
// the set of tokens currently under construction (for cycle detection).
type resolveState struct {
	stack      []Token
	inProgress map[Token]struct{}
}

// Resolve returns a ready instance for token. A nil scope context gets a
// fresh one, so top-level calls behave like Container.Get.
func (r *Resolver) Resolve(token Token, sc *ScopeContext) (any, error) {
	if sc == nil {
		sc = r.NewScope()
	}
	st := &resolveState{inProgress: make(map[Token]struct{})}
	return r.resolve(token, sc, st)
}

func (r *Resolver) resolve(token Token, sc *ScopeContext, st *resolveState) (any, error) {
	if _, busy := st.inProgress[token]; busy {
		return nil, CyclicDependencyError{Cycle: cyclePath(st.stack, token)}
	}

	p, err := r.registry.Lookup(token)
	if err != nil {
		return nil, err // UnknownTokenError, propagated unchanged
	}

	// Cache hits short-circuit before the token enters the in-progress set.
	switch p.Scope {
	case Singleton:
		r.mu.Lock()
		if v, ok := r.singletons[token]; ok {
			r.mu.Unlock()
			return v, nil
		}
		r.mu.Unlock()
	case Scoped:
		if v, ok := sc.instances[token]; ok {
			return v, nil
		}
	}

	st.inProgress[token] = struct{}{}
	st.stack = append(st.stack, token)
	defer func() {
		delete(st.inProgress, token)
		st.stack = st.stack[:len(st.stack)-1]
	}()

	deps := make([]any, len(p.Dependencies))
	for i, depToken := range p.Dependencies {
		v, err := r.resolve(depToken, sc, st)
		if err != nil {
			// Construction errors from deeper frames pass through unchanged;
			// nothing on the failing path is cached.
			return nil, err
		}
		deps[i] = v
	}

	v, err := p.Build(deps...)
	if err != nil {
		return nil, ProviderConstructionError{
			Token: token,
			Chain: append([]Token(nil), st.stack...),
			Err:   err,
		}
	}

	switch p.Scope {
	case Singleton:
		r.mu.Lock()
		// First committed instance wins, keeping Get idempotent even if two
		// goroutines raced through construction.
		if existing, ok := r.singletons[token]; ok {
			r.mu.Unlock()
			return existing, nil
		}
		r.singletons[token] = v
		r.mu.Unlock()
	case Scoped:
		sc.instances[token] = v
	}

	return v, nil
}

// Resolved reports whether a singleton instance has been committed for token.
func (r *Resolver) Resolved(token Token) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.singletons[token]
	return ok
}

// Forget drops the committed singleton for token, forcing reconstruction on
// the next resolution. Used by Container.Override.
func (r *Resolver) Forget(token Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.singletons, token)
}

// cyclePath extracts the cycle from the walk stack: everything from the
// first occurrence of token onward, with token repeated at the end.
func cyclePath(stack []Token, token Token) []Token {
	start := 0
	for i, t := range stack {
		if t == token {
			start = i
			break
		}
	}
	path := append([]Token(nil), stack[start:]...)
	return append(path, token)
}
