package types

// elementPairResult is the 9x9 supremum table from spec.md section 4.1. It
// is keyed by (left element variant, right element variant) and gives the
// *element* variant of the result; the caller reattaches the common
// (rows, columns). The table is built once at package load and never
// re-derived per call, per the "table-driven lattice" design note.
var elementPairResult = buildSupTable()

// elementVariants enumerates the nine element-kind lattice nodes that
// participate in the supremum table (excludes Bottom/Tensor/Malformed,
// which are handled by the structural rules in Sup before the table is
// ever consulted).
var elementVariants = []Variant{Real, PositiveReal, NegativeReal, Probability, Simplex, Natural, Boolean, OneHot, Zero}

func buildSupTable() map[[2]Variant]Variant {
	// Row/column order: R, R+, R-, P, S, N, B, OH, Z (spec.md section 4.1).
	rows := [][9]Variant{
		{Real, Real, Real, Real, Real, Real, Real, Real, Real},
		{Real, PositiveReal, Real, PositiveReal, PositiveReal, PositiveReal, PositiveReal, PositiveReal, PositiveReal},
		{Real, Real, NegativeReal, Real, Real, Real, Real, Real, NegativeReal},
		{Real, PositiveReal, Real, Probability, Probability, PositiveReal, Probability, Probability, Probability},
		{Real, PositiveReal, Real, Probability, Simplex, PositiveReal, PositiveReal, Simplex, Real},
		{Real, PositiveReal, Real, PositiveReal, PositiveReal, Natural, Natural, Natural, Natural},
		{Real, PositiveReal, Real, Probability, PositiveReal, Natural, Boolean, Boolean, Boolean},
		{Real, PositiveReal, Real, Probability, Simplex, Natural, Boolean, OneHot, Boolean},
		{Real, PositiveReal, NegativeReal, Probability, Real, Natural, Boolean, Boolean, Zero},
	}

	table := make(map[[2]Variant]Variant, len(elementVariants)*len(elementVariants))
	for i, left := range elementVariants {
		for j, right := range elementVariants {
			table[[2]Variant{left, right}] = rows[i][j]
		}
	}

	return table
}

// constructorFor maps an element-kind Variant to the matrix constructor
// used to build the result type at the operands' shared dimensions.
func constructorFor(v Variant) func(rows, columns int) *Type {
	switch v {
	case Real:
		return RealMatrix
	case PositiveReal:
		return PositiveRealMatrix
	case NegativeReal:
		return NegativeRealMatrix
	case Probability:
		return ProbabilityMatrix
	case Simplex:
		return SimplexMatrix
	case Natural:
		return NaturalMatrix
	case Boolean:
		return BooleanMatrix
	case OneHot:
		return OneHotMatrix
	case Zero:
		return ZeroMatrix
	default:
		return nil
	}
}

// Sup returns the smallest type greater than or equal to both t and u, per
// the ordered rules in spec.md section 4.1.
func Sup(t, u *Type) *Type {
	if t == u {
		return t
	}
	if t == BottomType {
		return u
	}
	if u == BottomType {
		return t
	}
	if t == MalformedType || u == MalformedType {
		return MalformedType
	}
	if t == TensorType || u == TensorType {
		return TensorType
	}
	if t.rows != u.rows || t.columns != u.columns {
		return TensorType
	}

	result, ok := elementPairResult[[2]Variant{t.variant, u.variant}]
	if !ok {
		// t and u share dimensions but neither is a table element kind;
		// this can only happen for Bottom/Tensor/Malformed, already handled.
		return MalformedType
	}

	return constructorFor(result)(t.rows, t.columns)
}

// SupAll folds Sup over any number of types, starting from Bottom. Passing
// zero types returns Bottom.
func SupAll(ts ...*Type) *Type {
	result := BottomType
	for _, t := range ts {
		result = Sup(result, t)
	}

	return result
}
