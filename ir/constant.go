package ir

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/bmgraph/compiler/types"
)

// Constant is a leaf node carrying a literal value at a fixed graph_type
// (the type it was constructed with). Its InfType is computed fresh from
// the underlying value, independent of that fixed type, which is what lets
// the fixer replace a Constant wholesale (add_constant_of_type) instead of
// wrapping it in a coercion operator.
type Constant struct {
	base
	graphType *types.Type
	scalar    float64
	matrix    *mat.Dense
}

func (c *Constant) Kind() Kind               { return ConstantKind }
func (c *Constant) EdgeLabels() []string      { return nil }
func (c *Constant) Requirements(_ *Builder) []*types.Requirement { return nil }
func (c *Constant) GraphType(_ *Builder) *types.Type { return c.graphType }

func (c *Constant) InfType(_ *Builder) *types.Type {
	if c.matrix != nil {
		return types.TypeOfMatrix(c.matrix)
	}

	return types.TypeOfFloat(c.scalar)
}

func (c *Constant) label() string {
	if c.matrix != nil {
		r, col := c.matrix.Dims()
		return fmt.Sprintf("constant(%s, %dx%d)", c.graphType, r, col)
	}

	return fmt.Sprintf("constant(%s, %v)", c.graphType, c.scalar)
}

// Value returns the scalar value of a non-matrix Constant.
func (c *Constant) Value() float64 { return c.scalar }

// Matrix returns the underlying dense value, or nil for scalar constants.
func (c *Constant) Matrix() *mat.Dense { return c.matrix }

func newScalarConstant(h Handle, t *types.Type, v float64) *Constant {
	return &Constant{base: base{handle: h}, graphType: t, scalar: v}
}

func newMatrixConstant(h Handle, t *types.Type, m *mat.Dense) *Constant {
	return &Constant{base: base{handle: h}, graphType: t, matrix: m}
}
