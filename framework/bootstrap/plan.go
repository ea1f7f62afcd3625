package bootstrap

// ── Bootstrap plan ────────────────────────────────────────────────────────────

// Plan is the topologically ordered execution sequence derived once from the
// declared unit graph. It is immutable after ComputePlan returns.
type Plan struct {
	units []*Unit
}

// Units returns the ordered units.
func (p *Plan) Units() []*Unit {
	out := make([]*Unit, len(p.units))
	copy(out, p.units)
	return out
}

// Order returns the ordered unit names.
func (p *Plan) Order() []string {
	names := make([]string, len(p.units))
	for i, u := range p.units {
		names[i] = u.Name
	}
	return names
}

// ComputePlan topologically sorts units. Ties — units whose predecessors are
// all satisfied at the same step — are broken by declaration order, so the
// plan is deterministic for a fixed input ordering.
//
// It fails without executing anything:
//   - DuplicateUnitError when two units share a name
//   - UnresolvedDependencyError when a DependsOn entry matches no unit
//   - CyclicLoaderDependencyError when the graph has no topological order
func ComputePlan(units []*Unit) (*Plan, error) {
	byName := make(map[string]*Unit, len(units))
	for _, u := range units {
		if _, exists := byName[u.Name]; exists {
			return nil, DuplicateUnitError{Unit: u.Name}
		}
		byName[u.Name] = u
	}
	for _, u := range units {
		for _, dep := range u.DependsOn {
			if _, ok := byName[dep]; !ok {
				return nil, UnresolvedDependencyError{Unit: u.Name, Dependency: dep}
			}
		}
	}

	placed := make(map[string]bool, len(units))
	ordered := make([]*Unit, 0, len(units))
	for len(ordered) < len(units) {
		next := firstReady(units, placed)
		if next == nil {
			// No ready unit among the remainder means a cycle.
			return nil, CyclicLoaderDependencyError{Cycle: findCycle(units, byName, placed)}
		}
		placed[next.Name] = true
		ordered = append(ordered, next)
	}

	return &Plan{units: ordered}, nil
}

// firstReady returns the first unit in declaration order whose predecessors
// have all been placed, or nil when the remainder is stuck.
func firstReady(units []*Unit, placed map[string]bool) *Unit {
	for _, u := range units {
		if placed[u.Name] {
			continue
		}
		ready := true
		for _, dep := range u.DependsOn {
			if !placed[dep] {
				ready = false
				break
			}
		}
		if ready {
			return u
		}
	}
	return nil
}

// findCycle walks the stuck remainder depth-first with an in-progress stack
// and returns the cycle path, first unit repeated at the end.
func findCycle(units []*Unit, byName map[string]*Unit, placed map[string]bool) []string {
	const (
		unvisited = iota
		inProgress
		done
	)
	state := make(map[string]int, len(units))
	var stack []string
	var cycle []string

	var visit func(u *Unit) bool
	visit = func(u *Unit) bool {
		state[u.Name] = inProgress
		stack = append(stack, u.Name)
		for _, dep := range u.DependsOn {
			if placed[dep] {
				continue
			}
			switch state[dep] {
			case inProgress:
				start := 0
				for i, name := range stack {
					if name == dep {
						start = i
						break
					}
				}
				cycle = append(append([]string(nil), stack[start:]...), dep)
				return true
			case unvisited:
				if visit(byName[dep]) {
					return true
				}
			}
		}
		stack = stack[:len(stack)-1]
		state[u.Name] = done
		return false
	}

	for _, u := range units {
		if !placed[u.Name] && state[u.Name] == unvisited {
			if visit(u) {
				return cycle
			}
		}
	}
	return nil
}
