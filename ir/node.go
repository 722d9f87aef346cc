package ir

import "github.com/bmgraph/compiler/types"

// Kind identifies which node family a Node belongs to. The fixer dispatches
// on Kind rather than on a Go type switch in the hot path, mirroring the
// class hierarchy (ConstantNode/DistributionNode/OperatorNode/Observation/
// Query) that bm_graph_builder.py walks with isinstance checks.
type Kind int

const (
	ConstantKind Kind = iota
	DistributionKind
	OperatorKind
	ObservationKind
	QueryKind
	MapKind
)

func (k Kind) String() string {
	switch k {
	case ConstantKind:
		return "constant"
	case DistributionKind:
		return "distribution"
	case OperatorKind:
		return "operator"
	case ObservationKind:
		return "observation"
	case QueryKind:
		return "query"
	case MapKind:
		return "map"
	default:
		return "unknown"
	}
}

// Node is the common interface every member of the graph implements. A Node
// never mutates its own identity: the fixer never edits a node in place,
// it redirects the Handle slots a consumer holds.
type Node interface {
	Handle() Handle
	Kind() Kind

	// Inputs returns this node's current operand handles in edge order.
	// The slice is owned by the node; callers must not retain it across a
	// SetInput call.
	Inputs() []Handle

	// SetInput rebinds edge i to point at a different handle. Used
	// exclusively by the fixer when it inserts a coercion or a repair.
	SetInput(i int, h Handle)

	// EdgeLabels names each input edge (e.g. "left", "right", "probability")
	// for diagnostics and for the labels fix_requirements.py threads through
	// meet_requirement.
	EdgeLabels() []string

	// Requirements reports, for each input edge, the Requirement this node
	// places on whatever currently occupies that edge.
	Requirements(b *Builder) []*types.Requirement

	// GraphType is the type this node currently has given the live
	// GraphType of its inputs. It is Malformed when the current inputs do
	// not form a legal instance of this node.
	GraphType(b *Builder) *types.Type

	// InfType is the smallest type this node could be converted to,
	// independent of whether it is currently Malformed.
	InfType(b *Builder) *types.Type

	label() string
}

// base holds the bookkeeping every node kind shares: its own handle and its
// mutable input edge list.
type base struct {
	handle Handle
	inputs []Handle
}

func (n *base) Handle() Handle      { return n.handle }
func (n *base) Inputs() []Handle    { return n.inputs }
func (n *base) SetInput(i int, h Handle) { n.inputs[i] = h }
