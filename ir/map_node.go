package ir

import "github.com/bmgraph/compiler/types"

// Map is a placeholder for the deprecated index/map node family: a
// lookup table selecting among a fixed set of values by an index operand.
// Nothing in the current distribution set (Bernoulli, Beta, Binomial,
// Normal, HalfNormal, Gamma) produces one; it exists so the fixer's
// dispatch has a documented, inert branch for it rather than silently
// mis-routing a future node kind through the operator path. The fixer
// returns a Map node unchanged: its requirement on every edge is its own
// current type, which is always already met.
type Map struct {
	base
}

func (m *Map) Kind() Kind          { return MapKind }
func (m *Map) EdgeLabels() []string { return nil }
func (m *Map) label() string        { return "Map" }

func (m *Map) Requirements(b *Builder) []*types.Requirement {
	reqs := make([]*types.Requirement, len(m.inputs))
	for i, h := range m.inputs {
		reqs[i] = types.Exact(b.Node(h).GraphType(b))
	}
	return reqs
}

func (m *Map) GraphType(b *Builder) *types.Type {
	if len(m.inputs) == 0 {
		return types.MalformedType
	}
	return b.Node(m.inputs[0]).GraphType(b)
}

func (m *Map) InfType(b *Builder) *types.Type {
	if len(m.inputs) == 0 {
		return types.MalformedType
	}
	return b.Node(m.inputs[0]).InfType(b)
}
