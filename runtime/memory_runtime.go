package runtime

import (
	"gonum.org/v1/gonum/mat"

	"github.com/bmgraph/compiler/ir"
	"github.com/bmgraph/compiler/types"
)

// nodeRecord is one entry in a MemoryRuntime's graph log.
type nodeRecord struct {
	kind     string
	typ      *types.Type
	value    float64
	matrix   *mat.Dense
	variant  ir.DistributionVariant
	op       ir.OpKind
	operands []int
}

// MemoryRuntime is an in-process Runtime that appends every call to a
// slice instead of forwarding to a real inference engine. It exists for
// this package's own tests and as a worked reference for what a Runtime
// implementation looks like; it does not perform inference.
type MemoryRuntime struct {
	nodes        []nodeRecord
	observations []Observed
	queries      []int
}

// Observed records one Observe call.
type Observed struct {
	SampleID int
	Value    float64
}

// NewMemoryRuntime returns an empty MemoryRuntime.
func NewMemoryRuntime() *MemoryRuntime {
	return &MemoryRuntime{}
}

func (m *MemoryRuntime) AddConstant(t *types.Type, value float64) (int, error) {
	id := len(m.nodes)
	m.nodes = append(m.nodes, nodeRecord{kind: "constant", typ: t, value: value})
	return id, nil
}

func (m *MemoryRuntime) AddConstantMatrix(t *types.Type, value *mat.Dense) (int, error) {
	id := len(m.nodes)
	m.nodes = append(m.nodes, nodeRecord{kind: "constant_matrix", typ: t, matrix: value})
	return id, nil
}

func (m *MemoryRuntime) AddDistribution(variant ir.DistributionVariant, params []int) (int, error) {
	id := len(m.nodes)
	m.nodes = append(m.nodes, nodeRecord{kind: "distribution", variant: variant, operands: params})
	return id, nil
}

func (m *MemoryRuntime) AddOperator(op ir.OpKind, operands []int) (int, error) {
	id := len(m.nodes)
	m.nodes = append(m.nodes, nodeRecord{kind: "operator", op: op, operands: operands})
	return id, nil
}

func (m *MemoryRuntime) Observe(sampleID int, value float64) error {
	m.observations = append(m.observations, Observed{SampleID: sampleID, Value: value})
	return nil
}

func (m *MemoryRuntime) Query(operatorID int) error {
	m.queries = append(m.queries, operatorID)
	return nil
}

// Len reports how many nodes were added to the runtime graph.
func (m *MemoryRuntime) Len() int { return len(m.nodes) }

// KindAt reports the recorded kind ("constant", "constant_matrix",
// "distribution", "operator") of the node added at id.
func (m *MemoryRuntime) KindAt(id int) string { return m.nodes[id].kind }

// OpAt reports the OpKind recorded for an operator node added at id.
func (m *MemoryRuntime) OpAt(id int) ir.OpKind { return m.nodes[id].op }

// TypeAt reports the graph_type recorded for a constant node added at id.
func (m *MemoryRuntime) TypeAt(id int) *types.Type { return m.nodes[id].typ }

// Queries returns every operator id passed to Query, in call order.
func (m *MemoryRuntime) Queries() []int { return m.queries }

// Observations returns every (sampleID, value) pair passed to Observe, in
// call order.
func (m *MemoryRuntime) Observations() []Observed { return m.observations }
