// Package runtime translates a fixed ir.Builder graph into calls against an
// external graph-construction API (add_constant / add_distribution /
// add_operator / observe / query). The concrete service behind that API is
// out of scope here -- it lives in a separate runtime process this package
// only speaks an interface to -- but the interface contract and the
// gating/translation logic that walks up to it are this package's job.
package runtime

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bmgraph/compiler/diagnostics"
	"github.com/bmgraph/compiler/ir"
	"github.com/bmgraph/compiler/types"
)

// Runtime is the external graph-construction API this package emits calls
// against. A production implementation forwards these to the real BMG
// inference engine; MemoryRuntime is the in-process reference
// implementation used by this package's own tests.
type Runtime interface {
	AddConstant(t *types.Type, value float64) (int, error)
	AddConstantMatrix(t *types.Type, m *mat.Dense) (int, error)
	AddDistribution(variant ir.DistributionVariant, params []int) (int, error)
	AddOperator(op ir.OpKind, operands []int) (int, error)
	Observe(sampleID int, value float64) error
	Query(operatorID int) error
}

// Emit walks b in topological order and issues one Runtime call per node,
// refusing outright if report carries any unresolved violation. Nodes whose
// current graph_type is analysis-only (Tensor, OneHot, Zero, Bottom,
// Malformed) are never legal at this boundary -- AnalysisOnly gates them
// the same way it gates the lattice itself -- and produce
// diagnostics.ErrUnsupportedNodeType rather than being silently forwarded.
func Emit(b *ir.Builder, report *diagnostics.ErrorReport, rt Runtime) error {
	if !report.Empty() {
		return fmt.Errorf("runtime: refusing to emit %d violations: %w", report.Len(), diagnostics.ErrViolationsPresent)
	}

	ids := make(map[ir.Handle]int, b.Len())

	for _, n := range b.Nodes() {
		h := n.Handle()

		switch node := n.(type) {
		case *ir.Constant:
			if err := emitConstant(rt, node, ids, h); err != nil {
				return err
			}

		case *ir.Distribution:
			if err := emitDistribution(rt, node, ids, h); err != nil {
				return err
			}

		case *ir.Operator:
			if err := emitOperator(b, rt, node, ids, h); err != nil {
				return err
			}

		case *ir.Observation:
			sampleID, okS := ids[node.Inputs()[0]]
			valueNode, okV := b.Node(node.Inputs()[1]).(*ir.Constant)
			if !okS || !okV {
				return fmt.Errorf("runtime: observation edges not resolved: %w", diagnostics.ErrUnsupportedNodeType)
			}
			if err := rt.Observe(sampleID, valueNode.Value()); err != nil {
				return fmt.Errorf("runtime: observe failed: %w", err)
			}

		case *ir.Query:
			operatorID, ok := ids[node.Inputs()[0]]
			if !ok {
				return fmt.Errorf("runtime: query operand not resolved: %w", diagnostics.ErrUnsupportedNodeType)
			}
			if err := rt.Query(operatorID); err != nil {
				return fmt.Errorf("runtime: query failed: %w", err)
			}

		default:
			return fmt.Errorf("runtime: %w: %s", diagnostics.ErrUnsupportedNodeType, n.Kind())
		}
	}

	return nil
}

func emitConstant(rt Runtime, c *ir.Constant, ids map[ir.Handle]int, h ir.Handle) error {
	gt := c.GraphType(nil)
	if types.AnalysisOnly(gt) {
		return fmt.Errorf("runtime: constant of type %s: %w", gt, diagnostics.ErrUnsupportedNodeType)
	}

	if m := c.Matrix(); m != nil {
		id, err := rt.AddConstantMatrix(gt, m)
		if err != nil {
			return fmt.Errorf("runtime: add_constant_of_matrix_type failed: %w", err)
		}
		ids[h] = id
		return nil
	}

	id, err := rt.AddConstant(gt, c.Value())
	if err != nil {
		return fmt.Errorf("runtime: add_constant_of_type failed: %w", err)
	}
	ids[h] = id
	return nil
}

func emitDistribution(rt Runtime, d *ir.Distribution, ids map[ir.Handle]int, h ir.Handle) error {
	params := make([]int, len(d.Inputs()))
	for i, in := range d.Inputs() {
		id, ok := ids[in]
		if !ok {
			return fmt.Errorf("runtime: distribution parameter not resolved: %w", diagnostics.ErrUnsupportedNodeType)
		}
		params[i] = id
	}

	id, err := rt.AddDistribution(d.Variant, params)
	if err != nil {
		return fmt.Errorf("runtime: add_distribution failed: %w", err)
	}
	ids[h] = id
	return nil
}

func emitOperator(b *ir.Builder, rt Runtime, op *ir.Operator, ids map[ir.Handle]int, h ir.Handle) error {
	gt := op.GraphType(b)
	if types.AnalysisOnly(gt) {
		return fmt.Errorf("runtime: operator %s produced type %s: %w", op.Op, gt, diagnostics.ErrUnsupportedNodeType)
	}

	operands := make([]int, len(op.Inputs()))
	for i, in := range op.Inputs() {
		id, ok := ids[in]
		if !ok {
			return fmt.Errorf("runtime: operand not resolved: %w", diagnostics.ErrUnsupportedNodeType)
		}
		operands[i] = id
	}

	id, err := rt.AddOperator(op.Op, operands)
	if err != nil {
		return fmt.Errorf("runtime: add_operator failed: %w", err)
	}
	ids[h] = id
	return nil
}
