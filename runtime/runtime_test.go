package runtime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmgraph/compiler/diagnostics"
	"github.com/bmgraph/compiler/fixer"
	"github.com/bmgraph/compiler/ir"
	"github.com/bmgraph/compiler/runtime"
	"github.com/bmgraph/compiler/types"
)

func buildBernoulliQuery(t *testing.T) (*ir.Builder, *diagnostics.ErrorReport) {
	t.Helper()
	b := ir.NewBuilder()
	p := b.AddConstantOfType(types.ProbabilityType, 0.5)
	dist := b.AddBernoulli(p)
	sample := b.AddSample(dist)
	b.AddQuery(sample)

	report := fixer.New().FixProblems(b)
	require.True(t, report.Empty())
	return b, report
}

func TestEmit_RefusesWhenReportNonEmpty(t *testing.T) {
	b := ir.NewBuilder()
	report := diagnostics.NewErrorReport()
	report.Add(diagnostics.Violation{})

	err := runtime.Emit(b, report, runtime.NewMemoryRuntime())
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostics.ErrViolationsPresent)
}

func TestEmit_BernoulliSampleQuery(t *testing.T) {
	b, report := buildBernoulliQuery(t)

	rt := runtime.NewMemoryRuntime()
	require.NoError(t, runtime.Emit(b, report, rt))

	assert.Equal(t, "constant", rt.KindAt(0))
	assert.Equal(t, "distribution", rt.KindAt(1))
	assert.Equal(t, "operator", rt.KindAt(2))
	assert.Equal(t, ir.OpSample, rt.OpAt(2))
	assert.Equal(t, []int{2}, rt.Queries())
}

func TestEmit_Observation(t *testing.T) {
	b := ir.NewBuilder()
	p := b.AddConstantOfType(types.ProbabilityType, 0.5)
	dist := b.AddBernoulli(p)
	sample := b.AddSample(dist)
	value := b.AddConstantOfType(types.BooleanType, 1.0)
	b.AddObservation(sample, value)

	report := fixer.New().FixProblems(b)
	require.True(t, report.Empty())

	rt := runtime.NewMemoryRuntime()
	require.NoError(t, runtime.Emit(b, report, rt))

	require.Len(t, rt.Observations(), 1)
	assert.Equal(t, 1.0, rt.Observations()[0].Value)
}
