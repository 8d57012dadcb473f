package expr_test

import (
	"math/big"
	"testing"

	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mkIdx(t *testing.T, base string, id uint32, sp index.IndexSpace) index.Index {
	t.Helper()
	i, err := index.New(base, id, sp)
	require.NoError(t, err)
	return i
}

func TestConstantZeroOne(t *testing.T) {
	z := expr.Int(0)
	assert.True(t, z.IsZero())
	one := expr.Int(1)
	assert.True(t, one.IsOne())
}

func TestSumZeroPruning(t *testing.T) {
	s := expr.NewSum(expr.Int(0), expr.NewVariable("x"), expr.Int(0))
	assert.Equal(t, 1, s.Len())
	e, err := s.At(0)
	require.NoError(t, err)
	v, ok := expr.As[*expr.Variable](e)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
}

func TestSumEmptyIsZero(t *testing.T) {
	s := expr.NewSum()
	assert.True(t, s.IsZero())
	assert.Equal(t, "0", s.String())
}

func TestProductScalarExtraction(t *testing.T) {
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{
		expr.Int(3), expr.NewVariable("x"), expr.Int(2),
	}, expr.FlattenYes)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, big.NewRat(6, 1).RatString(), p.Scalar.RatString())
}

func TestProductOnePruning(t *testing.T) {
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{
		expr.Int(1), expr.NewVariable("x"),
	}, expr.FlattenYes)
	assert.Equal(t, 1, p.Len())
}

func TestProductSingleFactorUnitEquivalence(t *testing.T) {
	v := expr.NewVariable("x")
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{v}, expr.FlattenYes)
	got, ok := p.AsSingleFactor()
	require.True(t, ok)
	gv, ok := expr.As[*expr.Variable](got)
	require.True(t, ok)
	assert.Same(t, v, gv)
}

func TestProductFlattenNestedProducts(t *testing.T) {
	inner := expr.NewProduct(big.NewRat(2, 1), []expr.Expr{expr.NewVariable("y")}, expr.FlattenYes)
	outer := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{expr.NewVariable("x"), inner}, expr.FlattenYes)
	assert.Equal(t, 2, outer.Len())
	assert.Equal(t, big.NewRat(2, 1).RatString(), outer.Scalar.RatString())
}

func TestProductFlattenNoKeepsNested(t *testing.T) {
	inner := expr.NewProduct(big.NewRat(2, 1), []expr.Expr{expr.NewVariable("y")}, expr.FlattenNo)
	outer := expr.NewProduct(big.NewRat(1, 1), nil, expr.FlattenNo)
	require.NoError(t, outer.Append(inner))
	assert.Equal(t, 1, outer.Len())
	assert.Equal(t, big.NewRat(1, 1).RatString(), outer.Scalar.RatString())
}

func TestTensorAdjointSwapsBraKet(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	virt := index.IndexSpace{Type: index.Unoccupied}
	i1 := mkIdx(t, "i", 1, occ)
	a1 := mkIdx(t, "a", 1, virt)
	tn := expr.NewTensor("t", []index.Index{i1}, []index.Index{a1}, nil, expr.AntisymmetricTag, expr.BraKetNonSymmetric)

	adj, ok := expr.As[*expr.Tensor](tn.Adjoint())
	require.True(t, ok)
	require.Len(t, adj.Bra, 1)
	require.Len(t, adj.Ket, 1)
	assert.True(t, adj.Bra[0].Equal(a1))
	assert.True(t, adj.Ket[0].Equal(i1))
}

func TestProductAdjointReversesFactors(t *testing.T) {
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{
		expr.NewVariable("a"), expr.NewVariable("b"),
	}, expr.FlattenNo)
	adj, ok := expr.As[*expr.Product](p.Adjoint())
	require.True(t, ok)
	require.Equal(t, 2, adj.Len())
	f0, _ := adj.At(0)
	f1, _ := adj.At(1)
	v0, _ := expr.As[*expr.Variable](f0)
	v1, _ := expr.As[*expr.Variable](f1)
	assert.Equal(t, "b", v0.Name)
	assert.Equal(t, "a", v1.Name)
	assert.True(t, v0.Conjugated)
}

func TestHashValueOrderSensitiveBeforeCanonicalization(t *testing.T) {
	s1 := expr.NewSum(expr.NewVariable("a"), expr.NewVariable("b"))
	s2 := expr.NewSum(expr.NewVariable("b"), expr.NewVariable("a"))
	assert.NotEqual(t, s1.HashValue(), s2.HashValue())
}

func TestHashValueStableOnEqualContent(t *testing.T) {
	v1 := expr.NewVariable("a")
	v2 := expr.NewVariable("a")
	assert.Equal(t, v1.HashValue(), v2.HashValue())
}

func TestCloneIsIndependent(t *testing.T) {
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{expr.NewVariable("x")}, expr.FlattenYes)
	clone := p.Clone().(*expr.Product)
	clone.Scalar.SetInt64(99)
	assert.NotEqual(t, p.Scalar.RatString(), clone.Scalar.RatString())
}

func TestVisitPreOrder(t *testing.T) {
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{
		expr.NewVariable("a"), expr.NewVariable("b"),
	}, expr.FlattenNo)
	var seen []string
	p.Visit(func(e expr.Expr) { seen = append(seen, e.String()) })
	assert.Equal(t, []string{"a * b", "a", "b"}, seen)
}

func TestPullScalarAbsorbsNested(t *testing.T) {
	inner := expr.NewProduct(big.NewRat(3, 1), []expr.Expr{expr.NewVariable("y")}, expr.FlattenNo)
	outer := expr.NewProduct(big.NewRat(2, 1), []expr.Expr{inner}, expr.FlattenNo)
	expr.PullScalar(outer)
	assert.Equal(t, big.NewRat(6, 1).RatString(), outer.Scalar.RatString())
	assert.Equal(t, big.NewRat(1, 1).RatString(), inner.Scalar.RatString())
}

// TestTailFactorDropsLeadingFactor exercises the amplitude-evaluation
// preparatory step: dropping a leading "A" antisymmetrizer tensor ahead of
// the amplitude tensors themselves.
func TestTailFactorDropsLeadingFactor(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	virt := index.IndexSpace{Type: index.Unoccupied}
	h1 := mkIdx(t, "h", 1, occ)
	p1 := mkIdx(t, "p", 1, virt)

	symmetrizer := expr.NewTensor("A", []index.Index{h1}, []index.Index{p1}, nil, expr.AntisymmetricTag, expr.BraKetNonSymmetric)
	amplitude := expr.NewTensor("T", []index.Index{h1}, []index.Index{p1}, nil, expr.NonSymmetric, expr.BraKetNonSymmetric)
	p := expr.NewProduct(big.NewRat(1, 2), []expr.Expr{symmetrizer, amplitude}, expr.FlattenNo)

	out := expr.TailFactor(p)
	outP, ok := out.(*expr.Product)
	require.True(t, ok)
	require.Len(t, outP.Factors, 1)
	assert.Equal(t, "T", outP.Factors[0].(*expr.Tensor).Label)
	assert.Equal(t, big.NewRat(1, 2).RatString(), outP.Scalar.RatString())

	// Non-Product input is returned unchanged (a clone), mirroring
	// pull_scalar's documented no-op convention for non-Product input.
	v := expr.NewVariable("x")
	assert.Equal(t, v.HashValue(), expr.TailFactor(v).HashValue())
}
