package ir

import "github.com/bmgraph/compiler/types"

// DistributionVariant identifies which sampling distribution a Distribution
// node represents. Each variant has a fixed sample type: the type Sample(d)
// produces is a property of the distribution kind, never of its parameters.
type DistributionVariant int

const (
	Bernoulli DistributionVariant = iota
	Beta
	Binomial
	Normal
	HalfNormal
	Gamma
)

func (v DistributionVariant) String() string {
	switch v {
	case Bernoulli:
		return "Bernoulli"
	case Beta:
		return "Beta"
	case Binomial:
		return "Binomial"
	case Normal:
		return "Normal"
	case HalfNormal:
		return "HalfNormal"
	case Gamma:
		return "Gamma"
	default:
		return "unknown distribution"
	}
}

func (v DistributionVariant) sampleType() *types.Type {
	switch v {
	case Bernoulli:
		return types.BooleanType
	case Beta:
		return types.ProbabilityType
	case Binomial:
		return types.NaturalType
	case Normal:
		return types.RealType
	case HalfNormal:
		return types.PositiveRealType
	case Gamma:
		return types.PositiveRealType
	default:
		return types.MalformedType
	}
}

func (v DistributionVariant) edgeLabels() []string {
	switch v {
	case Bernoulli:
		return []string{"probability"}
	case Beta:
		return []string{"alpha", "beta"}
	case Binomial:
		return []string{"count", "probability"}
	case Normal:
		return []string{"mean", "stddev"}
	case HalfNormal:
		return []string{"stddev"}
	case Gamma:
		return []string{"concentration", "rate"}
	default:
		return nil
	}
}

func (v DistributionVariant) paramRequirements() []*types.Requirement {
	switch v {
	case Bernoulli:
		return []*types.Requirement{types.Exact(types.ProbabilityType)}
	case Beta:
		return []*types.Requirement{types.Exact(types.PositiveRealType), types.Exact(types.PositiveRealType)}
	case Binomial:
		return []*types.Requirement{types.Exact(types.NaturalType), types.Exact(types.ProbabilityType)}
	case Normal:
		return []*types.Requirement{types.Exact(types.RealType), types.Exact(types.PositiveRealType)}
	case HalfNormal:
		return []*types.Requirement{types.Exact(types.PositiveRealType)}
	case Gamma:
		return []*types.Requirement{types.Exact(types.PositiveRealType), types.Exact(types.PositiveRealType)}
	default:
		return nil
	}
}

// Distribution is a node whose sole purpose is to be the argument of a
// Sample operator. Its own graph_type and inf_type are both the fixed
// sample type for its variant: a distribution is never itself Malformed,
// because meeting its parameter requirements is entirely the fixer's job
// on the parameter edges, not a property of the distribution node.
type Distribution struct {
	base
	Variant DistributionVariant
}

func (d *Distribution) Kind() Kind                  { return DistributionKind }
func (d *Distribution) EdgeLabels() []string         { return d.Variant.edgeLabels() }
func (d *Distribution) Requirements(_ *Builder) []*types.Requirement {
	return d.Variant.paramRequirements()
}
func (d *Distribution) GraphType(_ *Builder) *types.Type { return d.Variant.sampleType() }
func (d *Distribution) InfType(_ *Builder) *types.Type   { return d.Variant.sampleType() }
func (d *Distribution) label() string                    { return d.Variant.String() }

func newDistribution(h Handle, v DistributionVariant, inputs []Handle) *Distribution {
	return &Distribution{base: base{handle: h, inputs: inputs}, Variant: v}
}
