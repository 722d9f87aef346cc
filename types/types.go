// Package types implements the BMG type lattice: a finite-height algebraic
// lattice of scalar and matrix types with a supremum operation, a
// requirement abstraction (exact or upper-bound), and the classifiers that
// map literal values onto the lattice.
//
// Types are interned: two Type values constructed with the same
// (variant, rows, columns) compare pointer-equal, which makes equality and
// map-keying in the hot paths of the fixer O(1).
package types

import "fmt"

// Variant names one node of the lattice.
type Variant int

// Lattice variants, in no particular order. Matrix variants carry element
// kind via the Variant itself (e.g. Boolean vs BooleanMatrix is the same
// Variant at different dimensions; scalars are simply the 1x1 case).
const (
	// Bottom is the lattice infimum; it is smaller than every other type.
	Bottom Variant = iota
	// Boolean is the boolean matrix variant (1x1 is the scalar alias).
	Boolean
	// Natural is the non-negative-integer matrix variant.
	Natural
	// Probability is the [0,1] real matrix variant.
	Probability
	// PositiveReal is the (0,+inf) real matrix variant.
	PositiveReal
	// NegativeReal is the (-inf,0) real matrix variant.
	NegativeReal
	// Real is the unrestricted real matrix variant.
	Real
	// Simplex is a Probability matrix whose rows each sum to 1.
	Simplex
	// OneHot is a Boolean matrix whose rows each have exactly one 1.
	OneHot
	// Zero is the all-zero matrix variant.
	Zero
	// Tensor marks a rank > 2 value; unrepresentable in the BMG runtime.
	Tensor
	// Malformed is the lattice supremum; it marks an irreducible type error.
	Malformed
)

func (v Variant) String() string {
	switch v {
	case Bottom:
		return "Bottom"
	case Boolean:
		return "Boolean"
	case Natural:
		return "Natural"
	case Probability:
		return "Probability"
	case PositiveReal:
		return "PositiveReal"
	case NegativeReal:
		return "NegativeReal"
	case Real:
		return "Real"
	case Simplex:
		return "Simplex"
	case OneHot:
		return "OneHot"
	case Zero:
		return "Zero"
	case Tensor:
		return "Tensor"
	case Malformed:
		return "Malformed"
	default:
		return fmt.Sprintf("Variant(%d)", int(v))
	}
}

// Type is an interned lattice element: a Variant together with the matrix
// dimensions it was parameterized on. Bottom, Tensor and Malformed ignore
// Rows/Columns (they are dimension-less markers).
type Type struct {
	variant Variant
	rows    int
	columns int
}

// Variant reports which lattice node this Type occupies.
func (t *Type) Variant() Variant { return t.variant }

// Rows reports the matrix row count (1 for scalar aliases).
func (t *Type) Rows() int { return t.rows }

// Columns reports the matrix column count (1 for scalar aliases).
func (t *Type) Columns() int { return t.columns }

// IsScalar reports whether this Type is the 1x1 alias of its element kind.
func (t *Type) IsScalar() bool { return t.rows == 1 && t.columns == 1 }

func (t *Type) String() string {
	if t.rows == 1 && t.columns == 1 {
		return t.variant.String()
	}

	return fmt.Sprintf("%s(%d,%d)", t.variant, t.rows, t.columns)
}

type key struct {
	variant Variant
	rows    int
	columns int
}

var intern = make(map[key]*Type)

// internedType returns the canonical *Type for (variant, rows, columns),
// creating it on first use. Callers must not construct Type values any
// other way: identity (pointer) equality depends on going through here.
func internedType(variant Variant, rows, columns int) *Type {
	k := key{variant, rows, columns}
	if t, ok := intern[k]; ok {
		return t
	}

	t := &Type{variant: variant, rows: rows, columns: columns}
	intern[k] = t

	return t
}

// dimensionless returns the single interned instance of a marker variant
// (Bottom, Tensor, Malformed) that carries no rows/columns.
func dimensionless(variant Variant) *Type {
	return internedType(variant, 0, 0)
}

// Scalar lattice elements, interned once at package initialization. These
// are the 1x1 matrix aliases described in spec.md section 3.1.
var (
	// BottomType is the lattice infimum.
	BottomType = dimensionless(Bottom)
	// BooleanType is the scalar boolean type.
	BooleanType = internedType(Boolean, 1, 1)
	// NaturalType is the scalar natural-number type.
	NaturalType = internedType(Natural, 1, 1)
	// ProbabilityType is the scalar probability type.
	ProbabilityType = internedType(Probability, 1, 1)
	// PositiveRealType is the scalar positive-real type.
	PositiveRealType = internedType(PositiveReal, 1, 1)
	// NegativeRealType is the scalar negative-real type.
	NegativeRealType = internedType(NegativeReal, 1, 1)
	// RealType is the scalar real type.
	RealType = internedType(Real, 1, 1)
	// OneType is the scalar one-hot type (a 1x1 matrix whose sole entry is 1).
	OneType = internedType(OneHot, 1, 1)
	// ZeroType is the scalar zero type.
	ZeroType = internedType(Zero, 1, 1)
	// TensorType marks an unrepresentable rank > 2 value.
	TensorType = dimensionless(Tensor)
	// MalformedType is the lattice supremum; it marks a type error.
	MalformedType = dimensionless(Malformed)
)

// BooleanMatrix returns the interned rows x columns boolean matrix type.
func BooleanMatrix(rows, columns int) *Type { return internedType(Boolean, rows, columns) }

// NaturalMatrix returns the interned rows x columns natural matrix type.
func NaturalMatrix(rows, columns int) *Type { return internedType(Natural, rows, columns) }

// ProbabilityMatrix returns the interned rows x columns probability matrix type.
func ProbabilityMatrix(rows, columns int) *Type { return internedType(Probability, rows, columns) }

// PositiveRealMatrix returns the interned rows x columns positive-real matrix type.
func PositiveRealMatrix(rows, columns int) *Type {
	return internedType(PositiveReal, rows, columns)
}

// NegativeRealMatrix returns the interned rows x columns negative-real matrix type.
func NegativeRealMatrix(rows, columns int) *Type {
	return internedType(NegativeReal, rows, columns)
}

// RealMatrix returns the interned rows x columns real matrix type.
func RealMatrix(rows, columns int) *Type { return internedType(Real, rows, columns) }

// SimplexMatrix returns the interned rows x columns simplex matrix type: a
// probability matrix whose every row sums to 1 within tolerance.
func SimplexMatrix(rows, columns int) *Type { return internedType(Simplex, rows, columns) }

// OneHotMatrix returns the interned rows x columns one-hot matrix type: a
// boolean matrix whose every row has exactly one 1.
func OneHotMatrix(rows, columns int) *Type { return internedType(OneHot, rows, columns) }

// ZeroMatrix returns the interned rows x columns all-zero matrix type.
func ZeroMatrix(rows, columns int) *Type { return internedType(Zero, rows, columns) }

// WithDimensions returns the interned type of the same variant as t but
// with the given dimensions. It is used by the classifiers to broadcast a
// 1x1 element-kind result out to a matrix's actual shape.
func (t *Type) WithDimensions(rows, columns int) *Type {
	return internedType(t.variant, rows, columns)
}

// analysisOnly reports whether t is one of the lattice-internal markers
// (OneHot, Zero, Tensor, Malformed, Bottom) that must never reach the BMG
// runtime as a node's final graph type.
func (t *Type) analysisOnly() bool {
	switch t.variant {
	case OneHot, Zero, Tensor, Malformed, Bottom:
		return true
	default:
		return false
	}
}

// AnalysisOnly reports whether t is one of the lattice-internal markers
// (OneHot, Zero, Tensor, Malformed, Bottom) that must never reach the BMG
// runtime as a node's final graph type. See spec.md section 9.
func AnalysisOnly(t *Type) bool { return t.analysisOnly() }
