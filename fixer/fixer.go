// Package fixer implements the single whole-graph rewrite pass that makes
// every edge in an ir.Builder meet its consumer's Requirement: inserting
// coercions where a cheap legal conversion exists, rewriting malformed
// Boolean-involving Mul/Pow nodes into an equivalent IfThenElse, and
// recording a diagnostics.Violation for anything it cannot repair.
package fixer

import (
	"github.com/bmgraph/compiler/diagnostics"
	"github.com/bmgraph/compiler/ir"
	"github.com/bmgraph/compiler/types"
)

// Fixer walks a graph once, in topological order, rewriting every edge to
// meet its consumer's requirement.
type Fixer struct{}

// New returns a ready-to-use Fixer. There is no configuration: the pass is
// a pure function of the graph it is handed.
func New() *Fixer {
	return &Fixer{}
}

// FixProblems walks every node of b in topological order and rewrites its
// input edges to meet the requirements that node places on them. It never
// stops early: every violation it cannot repair is recorded in the
// returned report and the walk continues.
func (f *Fixer) FixProblems(b *ir.Builder) *diagnostics.ErrorReport {
	report := diagnostics.NewErrorReport()

	nodes := b.Nodes()
	for _, n := range nodes {
		reqs := n.Requirements(b)
		labels := n.EdgeLabels()
		inputs := n.Inputs()

		for i, req := range reqs {
			if i >= len(inputs) {
				break
			}

			label := ""
			if i < len(labels) {
				label = labels[i]
			}

			fixed := f.meetRequirement(b, inputs[i], req, n, label, report)
			n.SetInput(i, fixed)
			inputs = n.Inputs()
		}
	}

	return report
}

// meetRequirement returns a Handle whose node satisfies req, converting or
// rewriting the producer currently at handle h as needed, or recording a
// Violation against report when no legal conversion exists.
func (f *Fixer) meetRequirement(b *ir.Builder, h ir.Handle, req *types.Requirement, consumer ir.Node, edge string, report *diagnostics.ErrorReport) ir.Handle {
	node := b.Node(h)

	switch node.Kind() {
	case ir.ObservationKind, ir.QueryKind:
		panic("fixer: Observation and Query are never legal as a producer")

	case ir.ConstantKind:
		return f.meetConstantRequirement(b, node.(*ir.Constant), req, consumer, edge, report)

	case ir.DistributionKind:
		// A distribution's graph_type and inf_type are both its fixed
		// sample type; the only edges into a distribution are Sample's,
		// and Sample always asks for exactly that type.
		return h

	case ir.MapKind:
		return h

	case ir.OperatorKind:
		return f.meetOperatorRequirement(b, node.(*ir.Operator), req, consumer, edge, report)

	default:
		report.Add(diagnostics.Violation{Node: node, Requirement: req, Consumer: consumer, EdgeLabel: edge})
		return h
	}
}

// meetConstantRequirement tries to re-materialize the constant directly at
// the required type, since a constant's identity is just its value: there
// is never a need to wrap it in a coercion operator the way an operator
// node must be.
func (f *Fixer) meetConstantRequirement(b *ir.Builder, c *ir.Constant, req *types.Requirement, consumer ir.Node, edge string, report *diagnostics.ErrorReport) ir.Handle {
	if types.Meets(c.GraphType(b), req) {
		return c.Handle()
	}

	target, ok := targetTypeFor(req, c.InfType(b))
	if !ok {
		report.Add(diagnostics.Violation{Node: c, Requirement: req, Consumer: consumer, EdgeLabel: edge, Err: tensorErrIfNamed(req)})
		return c.Handle()
	}

	if c.Matrix() != nil {
		return b.AddConstantOfMatrixType(target, c.Matrix())
	}

	return b.AddConstantOfType(target, c.Value())
}

// canForceToProb reports whether a Real or PositiveReal value can be
// explicitly clamped into Probability via ToProbability -- the "force to
// probability" special case, used when a value's inf_type is too wide to
// satisfy Exact(Probability) via ordinary promotion.
func canForceToProb(it *types.Type) bool {
	return it == types.RealType || it == types.PositiveRealType
}

// requirementNamesTensor reports whether req is Exact(Tensor): per
// spec.md section 4.4 and fix_requirements.py's _convert_node, this
// requirement has no legal producer at all and must fail fast rather than
// be treated as satisfiable. Tensor is the lattice supremum's absorbing
// structural relative -- Sup(t, Tensor) == Tensor for every t but Malformed --
// which would otherwise make every value look like a trivially legal
// conversion target for it; that structural fact is not a legality fact,
// so it is special-cased out here rather than left to fall through Sup.
func requirementNamesTensor(req *types.Requirement) bool {
	return !req.IsUpperBound() && req.Bound() == types.TensorType
}

// tensorErrIfNamed returns ErrUnsupportedTensorRequirement when req is the
// unsatisfiable Exact(Tensor) case, or nil for an ordinary violation with
// no more specific cause.
func tensorErrIfNamed(req *types.Requirement) error {
	if requirementNamesTensor(req) {
		return diagnostics.ErrUnsupportedTensorRequirement
	}
	return nil
}

// targetTypeFor reports the concrete type a value of inf_type it should be
// converted to in order to meet req, and whether that conversion is legal
// at all.
func targetTypeFor(req *types.Requirement, it *types.Type) (*types.Type, bool) {
	if requirementNamesTensor(req) {
		return nil, false
	}

	if req.IsUpperBound() {
		if types.Meets(it, req) {
			return it, true
		}
		return nil, false
	}

	bound := req.Bound()
	if types.Sup(it, bound) == bound {
		return bound, true
	}

	return nil, false
}

func constantAt(b *ir.Builder, target *types.Type, value float64) ir.Handle {
	return b.AddConstantOfType(target, value)
}

// meetOperatorRequirement fixes an Operator producer to satisfy req. When a
// legal target type exists it first tries the malformed-node repairs (for a
// Malformed Mul or Pow) and otherwise inserts a direct coercion; when none
// exists it tries the force-to-probability special case. Anything else is
// recorded as a Violation.
func (f *Fixer) meetOperatorRequirement(b *ir.Builder, op *ir.Operator, req *types.Requirement, consumer ir.Node, edge string, report *diagnostics.ErrorReport) ir.Handle {
	if types.Meets(op.GraphType(b), req) {
		return op.Handle()
	}

	it := op.InfType(b)
	target, ok := targetTypeFor(req, it)

	if !ok {
		if !req.IsUpperBound() && req.Bound() == types.ProbabilityType && canForceToProb(it) {
			intermediate := f.meetRequirement(b, op.Handle(), types.Exact(it), consumer, edge, report)
			return b.AddToProbability(intermediate)
		}

		report.Add(diagnostics.Violation{Node: op, Requirement: req, Consumer: consumer, EdgeLabel: edge, Err: tensorErrIfNamed(req)})
		return op.Handle()
	}

	if op.GraphType(b) == types.MalformedType {
		switch op.Op {
		case ir.OpMul:
			if h, ok := f.convertMalformedMultiplication(b, op, target, consumer, edge, report); ok {
				return h
			}
		case ir.OpPow:
			if h, ok := f.convertMalformedPower(b, op, target, consumer, edge, report); ok {
				return h
			}
		}
	}

	h, ok := f.convertNode(b, op, target)
	if !ok {
		report.Add(diagnostics.Violation{Node: op, Requirement: req, Consumer: consumer, EdgeLabel: edge})
		return op.Handle()
	}

	return h
}

// convertNode inserts the coercion needed to bring op up to target: an
// IfThenElse for a Boolean-typed node becoming Natural or Probability, one
// of the three explicit coercion operators otherwise. Returns ok=false if
// target names a type this compiler has no coercion operator for.
//
// target is always a value targetTypeFor already approved, which means it
// is never types.TensorType (targetTypeFor fails Exact(Tensor) fast) --
// the check below is defense in depth against that invariant rather than
// a path exercised in practice.
func (f *Fixer) convertNode(b *ir.Builder, op *ir.Operator, target *types.Type) (ir.Handle, bool) {
	if target == types.TensorType {
		return op.Handle(), false
	}

	gt := op.GraphType(b)

	if gt == types.BooleanType && (target == types.NaturalType || target == types.ProbabilityType) {
		one := constantAt(b, target, 1.0)
		zero := constantAt(b, target, 0.0)
		return b.AddIfThenElse(op.Handle(), one, zero), true
	}

	switch target {
	case types.RealType:
		return b.AddToReal(op.Handle()), true
	case types.PositiveRealType:
		return b.AddToPositiveReal(op.Handle()), true
	case types.ProbabilityType:
		return b.AddToProbability(op.Handle()), true
	default:
		return op.Handle(), false
	}
}

// convertMalformedMultiplication rewrites a Mul(left, right) node whose
// graph_type is Malformed because exactly one operand is Boolean into an
// equivalent IfThenElse(boolOperand, otherOperand, zero-of-otherType),
// matching fix_requirements.py's _convert_malformed_multiplication: x*b is
// x when b is true, 0 when b is false.
func (f *Fixer) convertMalformedMultiplication(b *ir.Builder, op *ir.Operator, target *types.Type, consumer ir.Node, edge string, report *diagnostics.ErrorReport) (ir.Handle, bool) {
	inputs := op.Inputs()
	left := b.Node(inputs[0])
	right := b.Node(inputs[1])
	lt, rt := left.GraphType(b), right.GraphType(b)

	var boolOperand, otherOperand ir.Handle
	var otherType *types.Type

	switch {
	case lt == types.BooleanType && rt != types.BooleanType:
		boolOperand, otherOperand, otherType = inputs[0], inputs[1], rt
	case rt == types.BooleanType && lt != types.BooleanType:
		boolOperand, otherOperand, otherType = inputs[1], inputs[0], lt
	default:
		return op.Handle(), false
	}

	zero := constantAt(b, otherType, 0.0)
	ifThenElse := b.AddIfThenElse(boolOperand, otherOperand, zero)

	return f.meetRequirement(b, ifThenElse, types.Exact(target), consumer, edge, report), true
}

// convertMalformedPower rewrites a Pow(base, exponent) node whose
// graph_type is Malformed because the exponent is Boolean into
// IfThenElse(exponent, base, one-of-baseType): x^b is x when b is true, 1
// when b is false.
func (f *Fixer) convertMalformedPower(b *ir.Builder, op *ir.Operator, target *types.Type, consumer ir.Node, edge string, report *diagnostics.ErrorReport) (ir.Handle, bool) {
	inputs := op.Inputs()
	base := b.Node(inputs[0])
	exponent := b.Node(inputs[1])

	if exponent.GraphType(b) != types.BooleanType {
		return op.Handle(), false
	}

	baseType := base.GraphType(b)
	one := constantAt(b, baseType, 1.0)
	ifThenElse := b.AddIfThenElse(inputs[1], inputs[0], one)

	return f.meetRequirement(b, ifThenElse, types.Exact(target), consumer, edge, report), true
}
