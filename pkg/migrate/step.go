package migrate

// Direction selects which operation set of a step to execute.
type Direction int

const (
	DirectionUp Direction = iota
	DirectionDown
)

func (d Direction) String() string {
	if d == DirectionDown {
		return "downgrade"
	}
	return "upgrade"
}

// Step is one versioned schema transformation in the chain.
//
// Version is an opaque unique token, immutable once the step has been applied
// anywhere shared. Parent references the predecessor step's version; the root
// step has Parent == "".
//
// Reversible is an explicit declaration that applying Up and then Down
// restores the previous schema and data. Steps whose Up contains a
// destructive operation (dropped column, dropped table, data delete) cannot
// be reversible: Down may restore the column or table shape, but the values
// are gone. Validate rejects steps that declare Reversible while destroying
// data, and the runner refuses to downgrade through a non-reversible step
// unless forced.
type Step struct {
	Version    string
	Parent     string
	Label      string
	Reversible bool
	Up         []Operation
	Down       []Operation
}

// Ops returns the operation set for the given direction.
func (s *Step) Ops(d Direction) []Operation {
	if d == DirectionDown {
		return s.Down
	}
	return s.Up
}

// Lossy reports whether the step's upgrade destroys row data.
func (s *Step) Lossy() bool {
	for _, op := range s.Up {
		if op.Destructive() {
			return true
		}
	}
	return false
}

// PlanEntry is one element of a resolved migration path: a step paired with
// the direction it must be executed in.
type PlanEntry struct {
	Step      *Step
	Direction Direction
}

// TargetVersion returns the version the schema marker must record after the
// entry executes: the step's own version going up, its parent going down
// ("" when downgrading the root step off an empty chain position).
func (e PlanEntry) TargetVersion() string {
	if e.Direction == DirectionDown {
		return e.Step.Parent
	}
	return e.Step.Version
}
