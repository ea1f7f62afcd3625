package container

import (
	"fmt"
	"strings"
)

// ── Error taxonomy ────────────────────────────────────────────────────────────
//
// Wiring mistakes must surface immediately and loudly: none of these errors is
// retried internally, and every one is a typed struct so callers can match with
// errors.As and inspect the offending tokens.

// DuplicateTokenError is returned by Registry.Register when the token is
// already bound and no override was requested.
type DuplicateTokenError struct{ Token Token }

func (e DuplicateTokenError) Error() string {
	return fmt.Sprintf("container: token %q is already registered", string(e.Token))
}

// UnknownTokenError is returned by Registry.Lookup (and propagated unchanged
// through Resolve) when no provider is bound for the token.
type UnknownTokenError struct{ Token Token }

func (e UnknownTokenError) Error() string {
	return fmt.Sprintf("container: no provider registered for token %q", string(e.Token))
}

// CyclicDependencyError is returned by Resolve when the declared dependency
// graph re-enters a token that is still under construction. Cycle holds the
// full path, first token repeated at the end: [A B A].
type CyclicDependencyError struct{ Cycle []Token }

func (e CyclicDependencyError) Error() string {
	return "container: cyclic dependency " + joinTokens(e.Cycle)
}

// ProviderConstructionError wraps a factory failure with the token chain that
// led to it. It is created once at the innermost failing provider and
// propagated unchanged through outer resolution frames.
type ProviderConstructionError struct {
	Token Token   // the provider whose factory failed
	Chain []Token // resolution path from the root request down to Token
	Err   error   // innermost cause
}

func (e ProviderConstructionError) Error() string {
	return fmt.Sprintf("container: constructing %q (via %s): %v",
		string(e.Token), joinTokens(e.Chain), e.Err)
}

func (e ProviderConstructionError) Unwrap() error { return e.Err }

func joinTokens(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = string(t)
	}
	return strings.Join(parts, " -> ")
}
