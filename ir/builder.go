package ir

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/bmgraph/compiler/types"
)

// BuilderOption configures a Builder at construction time. The functional
// options pattern here mirrors the GraphOption style used for configuring
// graph construction elsewhere in this codebase's lineage, generalized to
// this package's single real knob.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	capacityHint int
}

// WithCapacityHint preallocates the node arena, useful when the caller
// knows roughly how large the graph being built will be.
func WithCapacityHint(n int) BuilderOption {
	return func(o *builderOptions) { o.capacityHint = n }
}

// Builder is an arena of interned, topologically-ordered nodes. Nodes are
// deduplicated by structural key: building the same constant, distribution,
// or operator twice over the same inputs returns the same Handle, and
// because every add_* call requires its operands' Handles up front, child
// nodes are always inserted before the parents that reference them --
// insertion order is topological order by construction.
type Builder struct {
	nodes []Node
	dedup map[string]Handle
}

// NewBuilder constructs an empty Builder.
func NewBuilder(opts ...BuilderOption) *Builder {
	var o builderOptions
	for _, opt := range opts {
		opt(&o)
	}

	return &Builder{
		nodes: make([]Node, 0, o.capacityHint),
		dedup: make(map[string]Handle, o.capacityHint),
	}
}

// Node resolves a Handle to the node it currently refers to.
func (b *Builder) Node(h Handle) Node { return b.nodes[h] }

// Nodes returns every node in topological (insertion) order. The returned
// slice is owned by the Builder and must not be mutated by the caller.
func (b *Builder) Nodes() []Node { return b.nodes }

// Len reports how many nodes the builder currently holds.
func (b *Builder) Len() int { return len(b.nodes) }

func (b *Builder) insert(key string, n Node) Handle {
	if h, ok := b.dedup[key]; ok {
		return h
	}

	h := Handle(len(b.nodes))
	switch node := n.(type) {
	case *Constant:
		node.handle = h
	case *Distribution:
		node.handle = h
	case *Operator:
		node.handle = h
	case *Observation:
		node.handle = h
	case *Query:
		node.handle = h
	case *Map:
		node.handle = h
	}

	b.nodes = append(b.nodes, n)
	b.dedup[key] = h
	return h
}

func handleKey(parts ...Handle) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(int(p)))
	}
	return sb.String()
}

// AddConstantOfType inserts a scalar constant node fixed at graph_type t.
func (b *Builder) AddConstantOfType(t *types.Type, value float64) Handle {
	key := "const:" + t.String() + ":" + strconv.FormatFloat(value, 'g', -1, 64)
	return b.insert(key, newScalarConstant(0, t, value))
}

// AddConstantOfMatrixType inserts a matrix-valued constant node fixed at
// graph_type t. Matrix constants are identified by pointer, not by value
// equality -- building the same slice of floats into two different
// *mat.Dense values is not deduplicated, matching the fact that the
// underlying value is itself mutable state the caller owns.
func (b *Builder) AddConstantOfMatrixType(t *types.Type, m *mat.Dense) Handle {
	key := "matconst:" + t.String() + fmt.Sprintf(":%p", m)
	return b.insert(key, newMatrixConstant(0, t, m))
}

func (b *Builder) addDistribution(v DistributionVariant, inputs []Handle) Handle {
	key := "dist:" + v.String() + handleKey(inputs...)
	return b.insert(key, newDistribution(0, v, inputs))
}

// AddBernoulli inserts a Bernoulli(probability) distribution node.
func (b *Builder) AddBernoulli(probability Handle) Handle {
	return b.addDistribution(Bernoulli, []Handle{probability})
}

// AddBeta inserts a Beta(alpha, beta) distribution node.
func (b *Builder) AddBeta(alpha, beta Handle) Handle {
	return b.addDistribution(Beta, []Handle{alpha, beta})
}

// AddBinomial inserts a Binomial(count, probability) distribution node.
func (b *Builder) AddBinomial(count, probability Handle) Handle {
	return b.addDistribution(Binomial, []Handle{count, probability})
}

// AddNormal inserts a Normal(mean, stddev) distribution node.
func (b *Builder) AddNormal(mean, stddev Handle) Handle {
	return b.addDistribution(Normal, []Handle{mean, stddev})
}

// AddHalfNormal inserts a HalfNormal(stddev) distribution node.
func (b *Builder) AddHalfNormal(stddev Handle) Handle {
	return b.addDistribution(HalfNormal, []Handle{stddev})
}

// AddGamma inserts a Gamma(concentration, rate) distribution node.
func (b *Builder) AddGamma(concentration, rate Handle) Handle {
	return b.addDistribution(Gamma, []Handle{concentration, rate})
}

func (b *Builder) addOperator(op OpKind, inputs []Handle) Handle {
	key := "op:" + op.String() + handleKey(inputs...)
	return b.insert(key, newOperator(0, op, inputs))
}

// AddAdd inserts an Add(left, right) operator node.
func (b *Builder) AddAdd(left, right Handle) Handle { return b.addOperator(OpAdd, []Handle{left, right}) }

// AddMul inserts a Mul(left, right) operator node.
func (b *Builder) AddMul(left, right Handle) Handle { return b.addOperator(OpMul, []Handle{left, right}) }

// AddPow inserts a Pow(base, exponent) operator node.
func (b *Builder) AddPow(base, exponent Handle) Handle {
	return b.addOperator(OpPow, []Handle{base, exponent})
}

// AddNegate inserts a Negate(operand) operator node.
func (b *Builder) AddNegate(operand Handle) Handle { return b.addOperator(OpNegate, []Handle{operand}) }

// AddExp inserts an Exp(operand) operator node.
func (b *Builder) AddExp(operand Handle) Handle { return b.addOperator(OpExp, []Handle{operand}) }

// AddToReal inserts a ToReal(operand) coercion node.
func (b *Builder) AddToReal(operand Handle) Handle { return b.addOperator(OpToReal, []Handle{operand}) }

// AddToPositiveReal inserts a ToPositiveReal(operand) coercion node.
func (b *Builder) AddToPositiveReal(operand Handle) Handle {
	return b.addOperator(OpToPositiveReal, []Handle{operand})
}

// AddToProbability inserts a ToProbability(operand) clamp node.
func (b *Builder) AddToProbability(operand Handle) Handle {
	return b.addOperator(OpToProbability, []Handle{operand})
}

// AddIfThenElse inserts an IfThenElse(condition, consequence, alternative)
// operator node.
func (b *Builder) AddIfThenElse(condition, consequence, alternative Handle) Handle {
	return b.addOperator(OpIfThenElse, []Handle{condition, consequence, alternative})
}

// AddSample inserts a Sample(distribution) operator node.
func (b *Builder) AddSample(distribution Handle) Handle {
	return b.addOperator(OpSample, []Handle{distribution})
}

// AddObservation inserts an Observation pinning sample to value.
func (b *Builder) AddObservation(sample, value Handle) Handle {
	key := "obs" + handleKey(sample, value)
	return b.insert(key, newObservation(0, sample, value))
}

// AddQuery inserts a Query marking operator for extraction.
func (b *Builder) AddQuery(operator Handle) Handle {
	key := "query" + handleKey(operator)
	return b.insert(key, newQuery(0, operator))
}

// AddMap inserts a placeholder Map (deprecated index) node over the given
// entries. No distribution in this compiler ever produces one; it exists so
// a future extension has a structurally-legal, already-handled node kind to
// land on rather than inventing new fixer dispatch.
func (b *Builder) AddMap(entries ...Handle) Handle {
	key := "map" + handleKey(entries...)
	return b.insert(key, &Map{base: base{handle: 0, inputs: entries}})
}
