package migrate

import (
	"fmt"
)

// Chain is a validated, ordered view over a set of migration steps. Steps are
// discovered as scattered values each naming its own parent; the chain loads
// them into a version-indexed table and builds the root-to-head traversal
// order once, up front, so path resolution never re-walks the raw set.
//
// The chain is a single linked list: exactly one root, no cycles, no
// branches. Chains are immutable after construction.
type Chain struct {
	order []*Step
	index map[string]int
}

// NewChain validates steps and builds the chain. All structural defects are
// collected by Validate; only the first is returned here, callers that want
// the full set should call Validate directly.
func NewChain(steps []Step) (*Chain, error) {
	if errs := Validate(steps); len(errs) > 0 {
		return nil, errs[0]
	}

	byParent := make(map[string]*Step, len(steps))
	owned := make([]Step, len(steps))
	copy(owned, steps)
	for i := range owned {
		byParent[owned[i].Parent] = &owned[i]
	}

	c := &Chain{
		order: make([]*Step, 0, len(owned)),
		index: make(map[string]int, len(owned)),
	}
	for s := byParent[""]; s != nil; s = byParent[s.Version] {
		c.index[s.Version] = len(c.order)
		c.order = append(c.order, s)
	}
	return c, nil
}

// Validate checks the structural invariants of a step set and returns every
// defect found: duplicate versions, parents that reference no existing step,
// zero or multiple roots, cycles, steps unreachable from the root, branching,
// and steps declared reversible whose upgrade destroys data. An empty result
// means the set forms a well-formed linear chain.
func Validate(steps []Step) []error {
	var errs []error

	seen := make(map[string]bool, len(steps))
	for i := range steps {
		s := &steps[i]
		if s.Version == "" {
			errs = append(errs, &ValidationError{Reason: fmt.Sprintf("step at index %d has empty version", i)})
			continue
		}
		if seen[s.Version] {
			errs = append(errs, &ValidationError{Version: s.Version, Reason: "duplicate version"})
		}
		seen[s.Version] = true
		if s.Reversible && s.Lossy() {
			errs = append(errs, &ValidationError{Version: s.Version,
				Reason: "declared reversible but upgrade contains a destructive operation"})
		}
	}

	var roots int
	children := make(map[string][]string, len(steps))
	for i := range steps {
		s := &steps[i]
		if s.Version == "" {
			continue
		}
		if s.Parent == "" {
			roots++
			continue
		}
		if !seen[s.Parent] {
			errs = append(errs, &ValidationError{Version: s.Version,
				Reason: fmt.Sprintf("parent %s does not exist", s.Parent)})
			continue
		}
		if s.Parent == s.Version {
			errs = append(errs, &ValidationError{Version: s.Version, Reason: "step is its own parent"})
			continue
		}
		children[s.Parent] = append(children[s.Parent], s.Version)
	}
	if len(steps) > 0 && roots == 0 {
		errs = append(errs, &ValidationError{Reason: "no root step (every step names a parent)"})
	}
	if roots > 1 {
		errs = append(errs, &ValidationError{Reason: fmt.Sprintf("%d root steps, expected exactly one", roots)})
	}
	for parent, kids := range children {
		if len(kids) > 1 {
			errs = append(errs, &ValidationError{Version: parent,
				Reason: fmt.Sprintf("has %d children %v, chain must be linear", len(kids), kids)})
		}
	}

	// Walk from the root; anything left over sits on a cycle or a detached
	// island and can never be reached by a migration run.
	if roots == 1 && len(errs) == 0 {
		reached := 0
		var rootVersion string
		for i := range steps {
			if steps[i].Parent == "" {
				rootVersion = steps[i].Version
				break
			}
		}
		for v := rootVersion; v != ""; {
			reached++
			kids := children[v]
			if len(kids) == 0 {
				break
			}
			v = kids[0]
		}
		if reached != len(steps) {
			errs = append(errs, &ValidationError{Reason: fmt.Sprintf(
				"%d of %d steps unreachable from root (cycle or disconnected segment)",
				len(steps)-reached, len(steps))})
		}
	}

	return errs
}

// Root returns the first step of the chain, or nil for an empty chain.
func (c *Chain) Root() *Step {
	if len(c.order) == 0 {
		return nil
	}
	return c.order[0]
}

// Head returns the last step of the chain, or nil for an empty chain.
func (c *Chain) Head() *Step {
	if len(c.order) == 0 {
		return nil
	}
	return c.order[len(c.order)-1]
}

// Steps returns the chain in root-to-head order.
func (c *Chain) Steps() []*Step {
	out := make([]*Step, len(c.order))
	copy(out, c.order)
	return out
}

// Lookup returns the step with the given version, or nil.
func (c *Chain) Lookup(version string) *Step {
	i, ok := c.index[version]
	if !ok {
		return nil
	}
	return c.order[i]
}

// position maps a version to its chain offset. The empty version denotes the
// state before the root step (an empty schema) and sits at -1.
func (c *Chain) position(version string) (int, error) {
	if version == "" {
		return -1, nil
	}
	i, ok := c.index[version]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVersion, version)
	}
	return i, nil
}

// ResolvePath walks the chain from current to target and returns the steps to
// execute in order. A descendant target yields upgrade entries oldest-first;
// an ancestor target yields downgrade entries newest-first. Either endpoint
// may be "" for the empty-schema state. Identical endpoints yield an empty
// plan.
func (c *Chain) ResolvePath(current, target string) ([]PlanEntry, error) {
	from, err := c.position(current)
	if err != nil {
		return nil, err
	}
	to, err := c.position(target)
	if err != nil {
		return nil, err
	}

	switch {
	case from == to:
		return nil, nil
	case from < to:
		plan := make([]PlanEntry, 0, to-from)
		for i := from + 1; i <= to; i++ {
			plan = append(plan, PlanEntry{Step: c.order[i], Direction: DirectionUp})
		}
		return c.checkConnected(current, target, plan)
	default:
		plan := make([]PlanEntry, 0, from-to)
		for i := from; i > to; i-- {
			plan = append(plan, PlanEntry{Step: c.order[i], Direction: DirectionDown})
		}
		return c.checkConnected(current, target, plan)
	}
}

// checkConnected verifies every hop in the plan follows a parent link.
// Impossible for a chain built through NewChain, but ResolvePath is also the
// last line of defense against a step table mutated behind the chain's back.
func (c *Chain) checkConnected(current, target string, plan []PlanEntry) ([]PlanEntry, error) {
	at := current
	for _, e := range plan {
		var from, to string
		if e.Direction == DirectionUp {
			from, to = e.Step.Parent, e.Step.Version
		} else {
			from, to = e.Step.Version, e.Step.Parent
		}
		if from != at {
			return nil, fmt.Errorf("%w: no path from %q to %q", ErrDisconnectedChain, current, target)
		}
		at = to
	}
	if at != target {
		return nil, fmt.Errorf("%w: no path from %q to %q", ErrDisconnectedChain, current, target)
	}
	return plan, nil
}
