package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmgraph/compiler/diagnostics"
	"github.com/bmgraph/compiler/ir"
	"github.com/bmgraph/compiler/types"
)

func TestErrorReport_EmptyByDefault(t *testing.T) {
	r := diagnostics.NewErrorReport()
	assert.True(t, r.Empty())
	assert.Equal(t, 0, r.Len())
}

func TestErrorReport_AddIsAdditive(t *testing.T) {
	b := ir.NewBuilder()
	c := b.AddConstantOfType(types.NaturalType, 2.0)
	dist := b.AddBernoulli(c)

	r := diagnostics.NewErrorReport()
	r.Add(diagnostics.Violation{
		Node:        b.Node(c),
		Requirement: types.Exact(types.ProbabilityType),
		Consumer:    b.Node(dist),
		EdgeLabel:   "probability",
	})
	require.False(t, r.Empty())
	assert.Equal(t, 1, r.Len())

	r.Add(diagnostics.Violation{
		Node:        b.Node(c),
		Requirement: types.UpperBound(types.RealType),
		Consumer:    b.Node(dist),
		EdgeLabel:   "probability",
	})
	assert.Equal(t, 2, r.Len())
	assert.Len(t, r.Violations(), 2)
}

func TestViolation_String(t *testing.T) {
	b := ir.NewBuilder()
	c := b.AddConstantOfType(types.NaturalType, 2.0)
	dist := b.AddBernoulli(c)

	v := diagnostics.Violation{
		Node:        b.Node(c),
		Requirement: types.Exact(types.ProbabilityType),
		Consumer:    b.Node(dist),
		EdgeLabel:   "probability",
	}
	assert.Contains(t, v.String(), "probability")
	assert.Contains(t, v.String(), "constant")
}
