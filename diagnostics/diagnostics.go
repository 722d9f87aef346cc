// Package diagnostics collects the record of requirement violations the
// fixer could not repair. It never aborts compilation early: every
// violation found while walking the graph is appended, and the full list is
// handed back to the caller once the walk finishes.
package diagnostics

import (
	"fmt"

	"github.com/bmgraph/compiler/ir"
	"github.com/bmgraph/compiler/types"
)

// Violation records one edge whose producer could not be converted to meet
// its consumer's Requirement.
type Violation struct {
	Node        ir.Node
	Requirement *types.Requirement
	Consumer    ir.Node
	EdgeLabel   string

	// Err, when non-nil, names the specific sentinel reason the fixer gave
	// up on this edge (e.g. ErrUnsupportedTensorRequirement). It is nil for
	// a plain "no legal conversion exists" violation with no more specific
	// cause.
	Err error
}

func (v Violation) String() string {
	s := fmt.Sprintf("%s edge of %s requires %s, got %s", v.EdgeLabel, v.Consumer.Kind(), v.Requirement, v.Node.Kind())
	if v.Err != nil {
		s += ": " + v.Err.Error()
	}
	return s
}

// ErrorReport is the purely additive result of a fixer pass: a list of
// every Violation found, in the order the fixer encountered them.
type ErrorReport struct {
	violations []Violation
}

// NewErrorReport returns an empty report.
func NewErrorReport() *ErrorReport {
	return &ErrorReport{}
}

// Add appends a violation to the report.
func (r *ErrorReport) Add(v Violation) {
	r.violations = append(r.violations, v)
}

// Violations returns every recorded violation, in discovery order.
func (r *ErrorReport) Violations() []Violation {
	return r.violations
}

// Empty reports whether no violations were recorded.
func (r *ErrorReport) Empty() bool {
	return len(r.violations) == 0
}

// Len reports how many violations were recorded.
func (r *ErrorReport) Len() int {
	return len(r.violations)
}
