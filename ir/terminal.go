package ir

import "github.com/bmgraph/compiler/types"

// Observation pins a sample node to an observed value. It is a terminal: it
// is never legal as another node's producer, matching the fix_requirements.py
// invariant that meet_requirement asserts false if ever asked to fix an
// Observation or Query in the producer position.
type Observation struct {
	base
}

func (o *Observation) Kind() Kind          { return ObservationKind }
func (o *Observation) EdgeLabels() []string { return []string{"sample", "value"} }
func (o *Observation) label() string        { return "Observation" }

func (o *Observation) Requirements(b *Builder) []*types.Requirement {
	sampleType := b.Node(o.inputs[0]).GraphType(b)
	return []*types.Requirement{types.Exact(sampleType), types.Exact(sampleType)}
}

// GraphType and InfType are never consulted for a terminal: nothing ever
// consumes an Observation as an input edge.
func (o *Observation) GraphType(_ *Builder) *types.Type { return types.BottomType }
func (o *Observation) InfType(_ *Builder) *types.Type   { return types.BottomType }

// Query marks an operator node's value for extraction at runtime.
type Query struct {
	base
}

func (q *Query) Kind() Kind          { return QueryKind }
func (q *Query) EdgeLabels() []string { return []string{"operator"} }
func (q *Query) label() string        { return "Query" }

func (q *Query) Requirements(b *Builder) []*types.Requirement {
	return []*types.Requirement{types.Exact(b.Node(q.inputs[0]).InfType(b))}
}

func (q *Query) GraphType(_ *Builder) *types.Type { return types.BottomType }
func (q *Query) InfType(_ *Builder) *types.Type   { return types.BottomType }

func newObservation(h Handle, sample, value Handle) *Observation {
	return &Observation{base: base{handle: h, inputs: []Handle{sample, value}}}
}

func newQuery(h Handle, operator Handle) *Query {
	return &Query{base: base{handle: h, inputs: []Handle{operator}}}
}
