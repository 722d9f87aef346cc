package ir

import "github.com/bmgraph/compiler/types"

// OpKind identifies which operator an Operator node performs.
type OpKind int

const (
	OpAdd OpKind = iota
	OpMul
	OpPow
	OpNegate
	OpExp
	OpToReal
	OpToPositiveReal
	OpToProbability
	OpIfThenElse
	OpSample
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "Add"
	case OpMul:
		return "Mul"
	case OpPow:
		return "Pow"
	case OpNegate:
		return "Negate"
	case OpExp:
		return "Exp"
	case OpToReal:
		return "ToReal"
	case OpToPositiveReal:
		return "ToPositiveReal"
	case OpToProbability:
		return "ToProbability"
	case OpIfThenElse:
		return "IfThenElse"
	case OpSample:
		return "Sample"
	default:
		return "unknown op"
	}
}

// Operator is the workhorse node family: arithmetic, coercions, control
// flow (IfThenElse) and sampling. Behavior differs per OpKind, so the
// interface methods dispatch through a switch rather than embedding a
// strategy per variant -- the variant count is small and fixed, matching
// how bmg_nodes.py's concrete operator subclasses are each a handful of
// lines over a common base.
type Operator struct {
	base
	Op OpKind
}

func newOperator(h Handle, op OpKind, inputs []Handle) *Operator {
	return &Operator{base: base{handle: h, inputs: inputs}, Op: op}
}

func (o *Operator) Kind() Kind { return OperatorKind }
func (o *Operator) label() string { return o.Op.String() }

func (o *Operator) EdgeLabels() []string {
	switch o.Op {
	case OpAdd:
		return []string{"left", "right"}
	case OpMul:
		return []string{"left", "right"}
	case OpPow:
		return []string{"base", "exponent"}
	case OpNegate, OpExp, OpToReal, OpToPositiveReal, OpToProbability, OpSample:
		return []string{"operand"}
	case OpIfThenElse:
		return []string{"condition", "consequence", "alternative"}
	default:
		return nil
	}
}

func (o *Operator) operand(b *Builder, i int) Node { return b.Node(o.inputs[i]) }

// isAtLeastProbability reports whether t is Probability or one of the
// types above it on the path to Real (t's sup with Probability is t
// itself): the BMG domain in which an arithmetic operator's output is
// actually representable.
func isAtLeastProbability(t *types.Type) bool {
	return types.Sup(t, types.ProbabilityType) == t
}

func (o *Operator) Requirements(b *Builder) []*types.Requirement {
	switch o.Op {
	case OpAdd, OpMul:
		left := o.operand(b, 0)
		right := o.operand(b, 1)
		lt := left.GraphType(b)
		rt := right.GraphType(b)

		// A Boolean operand can never be promoted by the generic common-type
		// rule below without becoming an IfThenElse; leave both edges as
		// they are so the node surfaces as Malformed. For Mul, the fixer's
		// malformed-multiplication repair (not plain coercion) picks it up;
		// the fixer has no such repair for Add.
		if lt == types.BooleanType || rt == types.BooleanType {
			return []*types.Requirement{types.Exact(lt), types.Exact(rt)}
		}

		s := types.Sup(types.Sup(left.InfType(b), right.InfType(b)), types.PositiveRealType)
		return []*types.Requirement{types.Exact(s), types.Exact(s)}

	case OpPow:
		base := o.operand(b, 0)
		exp := o.operand(b, 1)
		return []*types.Requirement{types.Exact(base.InfType(b)), types.Exact(exp.InfType(b))}

	case OpNegate:
		return []*types.Requirement{types.Exact(o.operand(b, 0).InfType(b))}

	case OpExp:
		return []*types.Requirement{types.UpperBound(types.RealType)}

	case OpToReal:
		return []*types.Requirement{types.UpperBound(types.RealType)}

	case OpToPositiveReal:
		return []*types.Requirement{types.UpperBound(types.PositiveRealType)}

	case OpToProbability:
		// An explicit runtime clamp: it accepts anything real-valued, not
		// just things already known to be <= 1.
		return []*types.Requirement{types.UpperBound(types.RealType)}

	case OpIfThenElse:
		cons := o.operand(b, 1)
		alt := o.operand(b, 2)
		t := types.Sup(cons.InfType(b), alt.InfType(b))
		return []*types.Requirement{types.Exact(types.BooleanType), types.Exact(t), types.Exact(t)}

	case OpSample:
		d := o.operand(b, 0)
		return []*types.Requirement{types.Exact(d.InfType(b))}

	default:
		return nil
	}
}

func negateType(t *types.Type) *types.Type {
	switch t {
	case types.PositiveRealType:
		return types.NegativeRealType
	case types.NegativeRealType:
		return types.PositiveRealType
	case types.RealType:
		return types.RealType
	default:
		return types.MalformedType
	}
}

func (o *Operator) GraphType(b *Builder) *types.Type {
	switch o.Op {
	case OpAdd:
		left, right := o.operand(b, 0).GraphType(b), o.operand(b, 1).GraphType(b)
		if left == right {
			return left
		}
		return types.MalformedType

	case OpMul:
		left, right := o.operand(b, 0).GraphType(b), o.operand(b, 1).GraphType(b)
		if left == right && isAtLeastProbability(left) {
			return left
		}
		return types.MalformedType

	case OpPow:
		base, exp := o.operand(b, 0), o.operand(b, 1)
		if exp.GraphType(b) == types.BooleanType {
			return types.MalformedType
		}
		return base.GraphType(b)

	case OpNegate:
		return negateType(o.operand(b, 0).GraphType(b))

	case OpExp:
		if o.operand(b, 0).GraphType(b) == types.MalformedType {
			return types.MalformedType
		}
		return types.PositiveRealType

	case OpToReal:
		return types.RealType

	case OpToPositiveReal:
		return types.PositiveRealType

	case OpToProbability:
		return types.ProbabilityType

	case OpIfThenElse:
		cond := o.operand(b, 0).GraphType(b)
		cons := o.operand(b, 1).GraphType(b)
		alt := o.operand(b, 2).GraphType(b)
		if cond == types.BooleanType && cons == alt {
			return cons
		}
		return types.MalformedType

	case OpSample:
		return o.operand(b, 0).GraphType(b)

	default:
		return types.MalformedType
	}
}

func (o *Operator) InfType(b *Builder) *types.Type {
	switch o.Op {
	case OpAdd:
		// Addition has no primitive below PositiveReal, so that is its floor.
		left, right := o.operand(b, 0), o.operand(b, 1)
		return types.Sup(types.Sup(left.InfType(b), right.InfType(b)), types.PositiveRealType)

	case OpMul:
		left, right := o.operand(b, 0), o.operand(b, 1)
		return types.Sup(left.InfType(b), right.InfType(b))

	case OpPow:
		return o.operand(b, 0).InfType(b)

	case OpNegate:
		return negateType(types.Sup(o.operand(b, 0).InfType(b), types.RealType))

	case OpExp:
		return types.PositiveRealType

	case OpToReal:
		return types.RealType

	case OpToPositiveReal:
		return types.PositiveRealType

	case OpToProbability:
		return types.ProbabilityType

	case OpIfThenElse:
		return types.Sup(o.operand(b, 1).InfType(b), o.operand(b, 2).InfType(b))

	case OpSample:
		return o.operand(b, 0).InfType(b)

	default:
		return types.MalformedType
	}
}
