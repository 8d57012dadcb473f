// Package canon implements the fixed-point expression rewrite that turns an
// expr.Expr into a deterministic representative of its equivalence class,
// so that structural hashing detects semantic equality.
package canon

import (
	"math/big"

	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/network"
	"slices"
)

// Canonicalize rewrites e by repeatedly applying, until no further change
// is possible: flattening nested Sums/Products, constant-folding, zero/one
// elimination, recursive child canonicalization, dummy-index renaming (via
// the tensor network canonical form of each Product's Tensor factors), and
// a deterministic sort of Sum summands and Product factors.
//
// Any impure prefactor a commutation or rename step would introduce is, in
// this implementation, always 1: dummy renaming here is a pure structural
// permutation among same-space indices (see DESIGN.md), so no Constant
// multiplier is ever separately returned; Canonicalize's single return
// value already carries the whole rewritten expression.
func Canonicalize(e expr.Expr) (expr.Expr, error) {
	if e == nil {
		return nil, expr.ErrNilExpr
	}
	out, err := canonicalize(e)
	if err != nil {
		return nil, err
	}
	for pass := 1; pass < maxPasses; pass++ {
		next, err := canonicalize(out)
		if err != nil {
			return nil, err
		}
		if next.HashValue() == out.HashValue() && next.String() == out.String() {
			break
		}
		out = next
	}
	return out, nil
}

// maxPasses bounds the fixed-point loop in Canonicalize.
const maxPasses = 8

func canonicalize(e expr.Expr) (expr.Expr, error) {
	switch v := e.(type) {
	case *expr.Constant:
		return v.Clone(), nil
	case *expr.Variable:
		return v.Clone(), nil
	case *expr.Tensor:
		return v.Clone(), nil
	case *expr.Sum:
		return canonicalizeSum(v)
	case *expr.Product:
		return canonicalizeProduct(v)
	default:
		return nil, expr.ErrUnsupportedExpression
	}
}

func canonicalizeSum(s *expr.Sum) (expr.Expr, error) {
	var flat []expr.Expr
	folded := new(big.Rat)
	for i := 0; i < s.Len(); i++ {
		summand, err := s.At(i)
		if err != nil {
			return nil, err
		}
		cs, err := canonicalize(summand)
		if err != nil {
			return nil, err
		}
		if nested, ok := expr.As[*expr.Sum](cs); ok {
			for j := 0; j < nested.Len(); j++ {
				f, _ := nested.At(j)
				if c, isConst := expr.As[*expr.Constant](f); isConst {
					folded.Add(folded, c.Value)
					continue
				}
				flat = append(flat, f)
			}
			continue
		}
		if c, isConst := expr.As[*expr.Constant](cs); isConst {
			folded.Add(folded, c.Value)
			continue
		}
		flat = append(flat, cs)
	}

	slices.SortStableFunc(flat, compareExprByHash)

	out := expr.NewSum()
	if folded.Sign() != 0 {
		if err := out.Append(expr.NewConstant(folded)); err != nil {
			return nil, err
		}
	}
	for _, e := range flat {
		if err := out.Append(e); err != nil {
			return nil, err
		}
	}
	if out.IsZero() {
		return expr.Int(0), nil
	}
	if out.Len() == 1 {
		only, err := out.At(0)
		if err != nil {
			return nil, err
		}
		return only, nil
	}
	return out, nil
}

func canonicalizeProduct(p *expr.Product) (expr.Expr, error) {
	out := expr.NewProduct(p.Scalar, nil, expr.FlattenYes)
	for i := 0; i < p.Len(); i++ {
		factor, err := p.At(i)
		if err != nil {
			return nil, err
		}
		cf, err := canonicalize(factor)
		if err != nil {
			return nil, err
		}
		if err := out.Append(cf); err != nil {
			return nil, err
		}
	}
	if out.IsZero() {
		return expr.Int(0), nil
	}

	if err := renameDummies(out); err != nil {
		return nil, err
	}

	slices.SortStableFunc(out.Factors, compareProductFactors)

	if out.Len() == 0 {
		return expr.NewConstant(new(big.Rat).Set(out.Scalar)), nil
	}
	if single, ok := out.AsSingleFactor(); ok {
		return single, nil
	}
	return out, nil
}

// renameDummies treats the Tensor factors of a Product as a tensor network
// whose summation indices are renamed to the canonical sequence chosen by
// network.CanonicalForm's vertex-coloring procedure. Non-Tensor factors are
// left untouched.
func renameDummies(p *expr.Product) error {
	var tensors []*expr.Tensor
	var positions []int
	for i, f := range p.Factors {
		if t, ok := expr.As[*expr.Tensor](f); ok {
			tensors = append(tensors, t)
			positions = append(positions, i)
		}
	}
	if len(tensors) == 0 {
		return nil
	}

	tn, err := network.New(tensors)
	if err != nil {
		return err
	}
	rename, err := network.CanonicalForm(tn)
	if err != nil {
		return err
	}
	if len(rename) == 0 {
		return nil
	}
	for k, pos := range positions {
		p.Factors[pos] = network.Rename(tensors[k], rename)
	}
	return nil
}

// compareExprByHash orders two expressions by structural hash, breaking
// ties by their (already-canonical, by this point) string rendering. Used
// for Sum summands, which carry no commutation restriction.
func compareExprByHash(a, b expr.Expr) int {
	ha, hb := a.HashValue(), b.HashValue()
	switch {
	case ha < hb:
		return -1
	case ha > hb:
		return 1
	default:
		return stringCompare(a.String(), b.String())
	}
}

// compareProductFactors orders Product factors by commutation class then
// hash: scalar-valued factors (Variables, opaque
// Sums) form class 0 and sort ahead of Tensor factors, class 1. Only
// Tensor factors are treated as mutually commuting, so two of them compare
// by compareExprByHash, while two class-0 factors report "equal" and keep
// their relative position under the caller's stable sort, the
// conservative reading of an otherwise-unspecified commutation rule, since
// no Wick/operator-algebra model exists at this layer to decide which
// non-Tensor factors actually commute.
func compareProductFactors(a, b expr.Expr) int {
	ca, cb := commutationClass(a), commutationClass(b)
	if ca != cb {
		return ca - cb
	}
	if ca == 0 {
		return 0
	}
	return compareExprByHash(a, b)
}

func commutationClass(e expr.Expr) int {
	if expr.Is[*expr.Tensor](e) {
		return 1
	}
	return 0
}

func stringCompare(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
