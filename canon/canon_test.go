package canon_test

import (
	"math/big"
	"testing"

	"github.com/ares201005/sequant-go/canon"
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

func TestCanonicalizeFlattensNestedSums(t *testing.T) {
	a := expr.NewVariable("a")
	b := expr.NewVariable("b")
	c := expr.NewVariable("c")
	inner := expr.NewSum(b, c)
	outer := expr.NewSum(a, inner)

	out, err := canon.Canonicalize(outer)
	require.NoError(t, err)
	sum, ok := expr.As[*expr.Sum](out)
	require.True(t, ok)
	assert.Equal(t, 3, sum.Len())
}

func TestCanonicalizeFoldsNestedProductScalars(t *testing.T) {
	inner := expr.NewProduct(big.NewRat(2, 1), []expr.Expr{expr.NewVariable("x")}, expr.FlattenNo)
	outer := expr.NewProduct(big.NewRat(3, 1), nil, expr.FlattenNo)
	require.NoError(t, outer.Append(inner))

	out, err := canon.Canonicalize(outer)
	require.NoError(t, err)
	p, ok := expr.As[*expr.Product](out)
	require.True(t, ok)
	assert.Equal(t, big.NewRat(6, 1).RatString(), p.Scalar.RatString())
	assert.Equal(t, 1, p.Len())
}

func TestCanonicalizeDropsZeroSumAndProduct(t *testing.T) {
	zeroSum, err := canon.Canonicalize(expr.NewSum())
	require.NoError(t, err)
	assert.True(t, mustConstant(t, zeroSum).IsZero())

	zeroProduct, err := canon.Canonicalize(expr.NewProduct(big.NewRat(0, 1), []expr.Expr{expr.NewVariable("x")}, expr.FlattenYes))
	require.NoError(t, err)
	assert.True(t, mustConstant(t, zeroProduct).IsZero())
}

func mustConstant(t *testing.T, e expr.Expr) *expr.Constant {
	t.Helper()
	c, ok := expr.As[*expr.Constant](e)
	require.True(t, ok)
	return c
}

func TestCanonicalizeCollapsesUnitSingleFactorProduct(t *testing.T) {
	v := expr.NewVariable("x")
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{v}, expr.FlattenYes)
	out, err := canon.Canonicalize(p)
	require.NoError(t, err)
	got, ok := expr.As[*expr.Variable](out)
	require.True(t, ok)
	assert.Equal(t, "x", got.Name)
}

func TestCanonicalizeSortsSumByHash(t *testing.T) {
	s := expr.NewSum(expr.NewVariable("b"), expr.NewVariable("a"))
	out1, err := canon.Canonicalize(s)
	require.NoError(t, err)

	reordered := expr.NewSum(expr.NewVariable("a"), expr.NewVariable("b"))
	out2, err := canon.Canonicalize(reordered)
	require.NoError(t, err)

	assert.Equal(t, out1.HashValue(), out2.HashValue())
}

func TestCanonicalizeRenamesDummiesConsistently(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	virt := index.IndexSpace{Type: index.Unoccupied}
	i1 := mkIdx(t, "i", 1, occ)

	build := func(dummyID uint32) expr.Expr {
		dummy := mkIdx(t, "a", dummyID, virt)
		f := expr.NewTensor("f", []index.Index{i1}, []index.Index{dummy}, nil, expr.NonSymmetric, expr.BraKetNonSymmetric)
		tt := expr.NewTensor("t", []index.Index{dummy}, nil, nil, expr.NonSymmetric, expr.BraKetNonSymmetric)
		return expr.NewProduct(big.NewRat(1, 1), []expr.Expr{f, tt}, expr.FlattenYes)
	}

	out1, err := canon.Canonicalize(build(1))
	require.NoError(t, err)
	out42, err := canon.Canonicalize(build(42))
	require.NoError(t, err)

	assert.Equal(t, out1.HashValue(), out42.HashValue())
	assert.Equal(t, out1.String(), out42.String())
}

func TestCanonicalizeMergesConstantSummands(t *testing.T) {
	s := expr.NewSum(expr.Int(2), expr.NewVariable("x"), expr.Int(3))
	out, err := canon.Canonicalize(s)
	require.NoError(t, err)

	sum, ok := expr.As[*expr.Sum](out)
	require.True(t, ok)
	require.Equal(t, 2, sum.Len())
	first, err := sum.At(0)
	require.NoError(t, err)
	c := mustConstant(t, first)
	assert.Equal(t, big.NewRat(5, 1).RatString(), c.Value.RatString())
}

func TestCanonicalizeCancellingConstantsVanish(t *testing.T) {
	s := expr.NewSum(expr.Int(2), expr.NewVariable("x"), expr.Int(-2))
	out, err := canon.Canonicalize(s)
	require.NoError(t, err)

	// The constants cancel and the lone survivor is unwrapped.
	v, ok := expr.As[*expr.Variable](out)
	require.True(t, ok)
	assert.Equal(t, "x", v.Name)
}

func TestCanonicalizeIdempotent(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	virt := index.IndexSpace{Type: index.Unoccupied}
	i3 := mkIdx(t, "i", 3, occ)
	a9 := mkIdx(t, "a", 9, virt)

	f := expr.NewTensor("f", []index.Index{i3}, []index.Index{a9}, nil, expr.NonSymmetric, expr.BraKetNonSymmetric)
	tt := expr.NewTensor("t", []index.Index{a9}, []index.Index{i3}, nil, expr.NonSymmetric, expr.BraKetNonSymmetric)
	p := expr.NewProduct(big.NewRat(2, 1), []expr.Expr{f, tt}, expr.FlattenYes)
	s := expr.NewSum(p, expr.NewVariable("y"))

	once, err := canon.Canonicalize(s)
	require.NoError(t, err)
	twice, err := canon.Canonicalize(once)
	require.NoError(t, err)

	assert.Equal(t, once.HashValue(), twice.HashValue())
	assert.Equal(t, once.String(), twice.String())
}

func TestCanonicalizeVariablesSortAheadOfTensors(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	i1 := mkIdx(t, "i", 1, occ)
	tensor := expr.NewTensor("T", []index.Index{i1}, nil, nil, expr.NonSymmetric, expr.BraKetNonSymmetric)
	p := expr.NewProduct(big.NewRat(1, 1), []expr.Expr{tensor, expr.NewVariable("x")}, expr.FlattenYes)

	out, err := canon.Canonicalize(p)
	require.NoError(t, err)
	prod, ok := expr.As[*expr.Product](out)
	require.True(t, ok)
	require.Equal(t, 2, prod.Len())
	first, err := prod.At(0)
	require.NoError(t, err)
	assert.True(t, expr.Is[*expr.Variable](first))
}
