// Package filter implements the eligibility decision of the move engine as an
// ordered set of independent predicate gates, combined by short-circuit
// evaluation. The gate order is fixed: type, size, extension, busy,
// duplicate. The first gate that rules an entry out wins.
package filter

import (
	"fmt"

	"github.com/desertwitch/diskmv/internal/schema"
)

// Decision is the verdict of a [Gate] (or a whole [Set]) over one entry.
type Decision int

const (
	// DecisionEligible passes the entry on to the move executor.
	DecisionEligible Decision = iota

	// DecisionSkipBusy rules the entry out as opened by another process.
	DecisionSkipBusy

	// DecisionSkipDuplicate rules the entry out as already present at the
	// destination (clobber not set).
	DecisionSkipDuplicate

	// DecisionSkipFiltered rules the entry out on type, size or extension.
	DecisionSkipFiltered
)

// fsProvider defines filesystem probing methods needed by the gates.
type fsProvider interface {
	ExistsNoFollow(path string) (exists bool, isDir bool, err error)
	IsEmptyFolder(path string) (bool, error)
	IsInUse(path string) bool
}

// Gate is one independent eligibility predicate over an entry.
type Gate interface {
	// Name returns the gate's reporting name.
	Name() string

	// Check evaluates the gate; any [Decision] other than
	// [DecisionEligible] is terminal for the entry.
	Check(entry *schema.Entry) (Decision, error)
}

// Set is a [schema.Policy] compiled into the ordered gate chain.
type Set struct {
	gates []Gate
}

// NewSet compiles a [schema.Policy] into a [Set]. The policy is read once
// here and never consulted again during evaluation.
func NewSet(policy *schema.Policy, fsHandler fsProvider) *Set {
	return &Set{
		gates: []Gate{
			&typeGate{policy: policy, fsHandler: fsHandler},
			&sizeGate{policy: policy},
			&extensionGate{policy: policy},
			&busyGate{fsHandler: fsHandler},
			&duplicateGate{policy: policy, fsHandler: fsHandler},
		},
	}
}

// Eligible evaluates an entry against the gate chain, short-circuiting on the
// first gate that rules it out. The name of the deciding gate is returned for
// reporting; for eligible entries it is empty.
func (s *Set) Eligible(entry *schema.Entry) (Decision, string, error) {
	for _, gate := range s.gates {
		decision, err := gate.Check(entry)
		if err != nil {
			return decision, gate.Name(), fmt.Errorf("(filter-%s) %w", gate.Name(), err)
		}
		if decision != DecisionEligible {
			return decision, gate.Name(), nil
		}
	}

	return DecisionEligible, "", nil
}
