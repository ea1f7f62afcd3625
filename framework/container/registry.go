package container

// ── Registry ──────────────────────────────────────────────────────────────────

// Registry stores provider bindings: token → construction recipe + scope.
// It is pure bookkeeping — no resolution logic lives here.
//
// The registry preserves registration order so that introspection (Tokens)
// and manifest round-trips stay deterministic.
//
// Registry is NOT safe for concurrent use. The Container façade serializes
// registration; the intended steady state is registration during bootstrap,
// before any concurrent traffic begins.
type Registry struct {
	providers map[Token]*Provider
	order     []Token
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[Token]*Provider)}
}

// Register stores a provider. Registering a token twice fails with
// DuplicateTokenError — use Override to replace a binding on purpose.
func (r *Registry) Register(p *Provider) error {
	if _, exists := r.providers[p.Token]; exists {
		return DuplicateTokenError{Token: p.Token}
	}
	r.providers[p.Token] = p
	r.order = append(r.order, p.Token)
	return nil
}

// Override stores a provider, replacing any existing binding for the token.
// A token seen for the first time keeps its registration-order slot.
func (r *Registry) Override(p *Provider) {
	if _, exists := r.providers[p.Token]; !exists {
		r.order = append(r.order, p.Token)
	}
	r.providers[p.Token] = p
}

// Lookup returns the provider bound to token, or UnknownTokenError.
func (r *Registry) Lookup(token Token) (*Provider, error) {
	p, ok := r.providers[token]
	if !ok {
		return nil, UnknownTokenError{Token: token}
	}
	return p, nil
}

// Bound reports whether a provider exists for token.
func (r *Registry) Bound(token Token) bool {
	_, ok := r.providers[token]
	return ok
}

// Tokens returns all registered tokens in registration order.
func (r *Registry) Tokens() []Token {
	out := make([]Token, len(r.order))
	copy(out, r.order)
	return out
}
