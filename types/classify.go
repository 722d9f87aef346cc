package types

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// SimplexPrecision is the tolerance used when deciding whether a matrix
// row sums to 1 (spec.md section 4.1, epsilon = 1e-10).
const SimplexPrecision = 1e-10

// TypeOfBool classifies a boolean literal: True is the one-hot scalar,
// False is the zero scalar (spec.md section 4.1).
func TypeOfBool(v bool) *Type {
	if v {
		return OneType
	}

	return ZeroType
}

// TypeOfInt classifies an integer literal per spec.md section 4.1.
func TypeOfInt(v int64) *Type {
	switch {
	case v == 0:
		return ZeroType
	case v == 1:
		return OneType
	case v >= 2:
		return NaturalType
	default:
		return NegativeRealType
	}
}

// TypeOfFloat classifies a floating-point literal per spec.md section 4.1:
// integral values dispatch to TypeOfInt; otherwise the sign and range of v
// select Probability, PositiveReal, or NegativeReal.
func TypeOfFloat(v float64) *Type {
	if v == float64(int64(v)) {
		return TypeOfInt(int64(v))
	}
	if v < 0 {
		return NegativeRealType
	}
	if v < 1 {
		return ProbabilityType
	}

	return PositiveRealType
}

// TypeOfMatrix classifies a dense matrix value per spec.md section 4.1.
// Rank > 2 (anything that cannot be represented by *mat.Dense) is the
// caller's responsibility to have already routed to TensorType; this
// function only ever sees genuine 2-D matrices.
func TypeOfMatrix(v *mat.Dense) *Type {
	r, c := v.Dims()
	if r == 1 && c == 1 {
		return TypeOfFloat(v.At(0, 0))
	}

	elementSup := BottomType
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			elementSup = Sup(elementSup, TypeOfFloat(v.At(i, j)))
		}
	}

	switch elementSup {
	case RealType, PositiveRealType, NegativeRealType, NaturalType:
		return elementSup.WithDimensions(r, c)
	}

	// The only remaining possibilities: every element classified as
	// Boolean, Zero, OneHot, or Probability.
	sumsToOne := true

	for i := 0; i < r && sumsToOne; i++ {
		row := make([]float64, c)
		for j := 0; j < c; j++ {
			row[j] = v.At(i, j)
		}

		if !floats.EqualWithinAbs(floats.Sum(row), 1.0, SimplexPrecision) {
			sumsToOne = false
		}
	}

	if sumsToOne {
		if elementSup == ProbabilityType {
			return SimplexMatrix(r, c)
		}

		return OneHotMatrix(r, c)
	}

	if elementSup == ProbabilityType {
		return elementSup.WithDimensions(r, c)
	}
	if elementSup == ZeroType {
		return elementSup.WithDimensions(r, c)
	}

	// Remaining possibilities: all ones, or a mixture of zeros and ones
	// that isn't row-normalized. Either way the smallest type is Boolean.
	return BooleanMatrix(r, c)
}
