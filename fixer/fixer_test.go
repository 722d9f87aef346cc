package fixer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bmgraph/compiler/diagnostics"
	"github.com/bmgraph/compiler/fixer"
	"github.com/bmgraph/compiler/ir"
	"github.com/bmgraph/compiler/types"
)

// Bernoulli(Add(Sample(Beta), Sample(Beta))): two probabilities can't be
// added directly, so the fixer promotes both to PositiveReal and clamps
// the sum back down with an explicit ToProbability.
func TestFixProblems_SumOfProbabilitiesIntoBernoulli(t *testing.T) {
	b := ir.NewBuilder()

	a1 := b.AddConstantOfType(types.PositiveRealType, 2.0)
	a2 := b.AddConstantOfType(types.PositiveRealType, 3.0)
	beta1 := b.AddBeta(a1, a2)
	sample1 := b.AddSample(beta1)

	b1 := b.AddConstantOfType(types.PositiveRealType, 1.0)
	b2 := b.AddConstantOfType(types.PositiveRealType, 5.0)
	beta2 := b.AddBeta(b1, b2)
	sample2 := b.AddSample(beta2)

	sum := b.AddAdd(sample1, sample2)
	bernoulli := b.AddBernoulli(sum)
	sampleOutput := b.AddSample(bernoulli)
	b.AddQuery(sampleOutput)

	report := fixer.New().FixProblems(b)
	require.True(t, report.Empty())

	bernNode := b.Node(bernoulli).(*ir.Distribution)
	probEdge := b.Node(bernNode.Inputs()[0]).(*ir.Operator)
	assert.Equal(t, ir.OpToProbability, probEdge.Op)

	addNode := b.Node(probEdge.Inputs()[0]).(*ir.Operator)
	assert.Equal(t, ir.OpAdd, addNode.Op)
	assert.Same(t, types.PositiveRealType, addNode.GraphType(b))

	left := b.Node(addNode.Inputs()[0]).(*ir.Operator)
	right := b.Node(addNode.Inputs()[1]).(*ir.Operator)
	assert.Equal(t, ir.OpToPositiveReal, left.Op)
	assert.Equal(t, ir.OpToPositiveReal, right.Op)
}

// Mul(Sample(Bernoulli), Sample(Binomial)) is malformed (Boolean x Natural)
// and gets rewritten to IfThenElse(bool, natural, Natural(0)).
func TestFixProblems_MalformedMultiplicationRewritesToIfThenElse(t *testing.T) {
	b := ir.NewBuilder()

	p := b.AddConstantOfType(types.ProbabilityType, 0.5)
	bernoulli := b.AddBernoulli(p)
	boolSample := b.AddSample(bernoulli)

	count := b.AddConstantOfType(types.NaturalType, 10.0)
	binomial := b.AddBinomial(count, p)
	natSample := b.AddSample(binomial)

	mul := b.AddMul(boolSample, natSample)
	assert.Same(t, types.MalformedType, b.Node(mul).GraphType(b))

	queryHandle := b.AddQuery(mul)

	report := fixer.New().FixProblems(b)
	require.True(t, report.Empty())

	query := b.Node(queryHandle).(*ir.Query)
	ite := b.Node(query.Inputs()[0]).(*ir.Operator)
	require.Equal(t, ir.OpIfThenElse, ite.Op)
	assert.Same(t, types.NaturalType, ite.GraphType(b))

	cond := b.Node(ite.Inputs()[0])
	assert.Same(t, types.BooleanType, cond.GraphType(b))
	cons := b.Node(ite.Inputs()[1])
	assert.Same(t, types.NaturalType, cons.GraphType(b))
	alt := b.Node(ite.Inputs()[2]).(*ir.Constant)
	assert.Same(t, types.NaturalType, alt.GraphType(b))
	assert.Equal(t, 0.0, alt.Value())
}

// Pow(Sample(Beta), Sample(Bernoulli)) is malformed (Boolean exponent) and
// gets rewritten to IfThenElse(exponent, base, Probability(1.0)).
func TestFixProblems_MalformedPowerRewritesToIfThenElse(t *testing.T) {
	b := ir.NewBuilder()

	alpha := b.AddConstantOfType(types.PositiveRealType, 2.0)
	beta := b.AddConstantOfType(types.PositiveRealType, 2.0)
	betaDist := b.AddBeta(alpha, beta)
	base := b.AddSample(betaDist)

	p := b.AddConstantOfType(types.ProbabilityType, 0.5)
	bernoulli := b.AddBernoulli(p)
	exp := b.AddSample(bernoulli)

	pow := b.AddPow(base, exp)
	assert.Same(t, types.MalformedType, b.Node(pow).GraphType(b))

	queryHandle := b.AddQuery(pow)

	report := fixer.New().FixProblems(b)
	require.True(t, report.Empty())

	query := b.Node(queryHandle).(*ir.Query)
	ite := b.Node(query.Inputs()[0]).(*ir.Operator)
	require.Equal(t, ir.OpIfThenElse, ite.Op)
	assert.Same(t, types.ProbabilityType, ite.GraphType(b))

	alt := b.Node(ite.Inputs()[2]).(*ir.Constant)
	assert.Same(t, types.ProbabilityType, alt.GraphType(b))
	assert.Equal(t, 1.0, alt.Value())
}

// A Natural(3) constant demanded as Real by its consumer is replaced
// outright by a Real(3.0) constant -- no ToReal wrapper needed, since a
// constant's identity is just its value.
func TestFixProblems_ConstantRematerializedAtRequiredType(t *testing.T) {
	b := ir.NewBuilder()

	three := b.AddConstantOfType(types.NaturalType, 3.0)
	stddev := b.AddConstantOfType(types.PositiveRealType, 1.0)
	normal := b.AddNormal(three, stddev) // Normal's mean param requires Exact(Real)
	sample := b.AddSample(normal)
	b.AddQuery(sample)

	report := fixer.New().FixProblems(b)
	require.True(t, report.Empty())

	normalNode := b.Node(normal).(*ir.Distribution)
	replaced := b.Node(normalNode.Inputs()[0]).(*ir.Constant)
	assert.Same(t, types.RealType, replaced.GraphType(b))
	assert.Equal(t, 3.0, replaced.Value())
}

// When no legal conversion exists the fixer records a Violation instead of
// raising: a negative-real-valued constant can never meet Bernoulli's
// Exact(Probability) requirement, since NegativeReal's supremum with
// Probability is Real, not Probability.
func TestFixProblems_UnsatisfiableRequirementRecordsViolation(t *testing.T) {
	b := ir.NewBuilder()

	negative := b.AddConstantOfType(types.NegativeRealType, -5.0)
	bernoulli := b.AddBernoulli(negative)
	sample := b.AddSample(bernoulli)
	b.AddQuery(sample)

	report := fixer.New().FixProblems(b)
	require.False(t, report.Empty())
	require.Equal(t, 1, report.Len())

	v := report.Violations()[0]
	assert.Same(t, types.ProbabilityType, v.Requirement.Bound())
	assert.Equal(t, "probability", v.EdgeLabel)
}

// Add(left, right) over two differently-shaped matrix constants has no
// common InfType: Sup falls through to Tensor before the PositiveReal
// floor is even applied, so both of Add's own edges end up requiring
// Exact(Tensor). Per spec.md section 4.4, Exact(Tensor) has no legal
// producer at all; the fixer must record an ErrUnsupportedTensorRequirement
// violation rather than fabricate a Tensor-typed constant.
func TestFixProblems_ExactTensorRequirementRecordsUnsupportedViolation(t *testing.T) {
	b := ir.NewBuilder()

	left := b.AddConstantOfMatrixType(types.NaturalMatrix(1, 2), mat.NewDense(1, 2, []float64{2, 3}))
	right := b.AddConstantOfMatrixType(types.NaturalMatrix(2, 1), mat.NewDense(2, 1, []float64{2, 3}))
	b.AddAdd(left, right)

	report := fixer.New().FixProblems(b)
	require.False(t, report.Empty())

	for _, v := range report.Violations() {
		assert.Same(t, types.TensorType, v.Requirement.Bound())
		require.Error(t, v.Err)
		assert.ErrorIs(t, v.Err, diagnostics.ErrUnsupportedTensorRequirement)
	}
}

// Running the fixer a second time over an already-fixed graph must be a
// no-op: every edge already meets its consumer's requirement, so no new
// nodes are appended and the second report is empty (spec.md section 8,
// property 6).
func TestFixProblems_IsIdempotent(t *testing.T) {
	b := ir.NewBuilder()

	a1 := b.AddConstantOfType(types.PositiveRealType, 2.0)
	a2 := b.AddConstantOfType(types.PositiveRealType, 3.0)
	beta1 := b.AddBeta(a1, a2)
	sample1 := b.AddSample(beta1)

	b1 := b.AddConstantOfType(types.PositiveRealType, 1.0)
	b2 := b.AddConstantOfType(types.PositiveRealType, 5.0)
	beta2 := b.AddBeta(b1, b2)
	sample2 := b.AddSample(beta2)

	sum := b.AddAdd(sample1, sample2)
	bernoulli := b.AddBernoulli(sum)
	sampleOutput := b.AddSample(bernoulli)
	b.AddQuery(sampleOutput)

	first := fixer.New().FixProblems(b)
	require.True(t, first.Empty())
	lenAfterFirst := b.Len()

	second := fixer.New().FixProblems(b)
	require.True(t, second.Empty())
	assert.Equal(t, lenAfterFirst, b.Len())
}
