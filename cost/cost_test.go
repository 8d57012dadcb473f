package cost_test

import (
	"errors"
	"testing"

	"github.com/ares201005/sequant-go/cost"
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

func dims(occ, virt uint64) cost.DimOracle {
	return func(i index.Index) (uint64, error) {
		switch i.Space.Type {
		case index.Occupied, index.ActiveOccupied:
			return occ, nil
		case index.Unoccupied, index.ActiveUnoccupied:
			return virt, nil
		default:
			return 0, errors.New("unmapped space")
		}
	}
}

func TestCommonAndExternalIndices(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	virt := index.IndexSpace{Type: index.Unoccupied}
	i1 := mkIdx(t, "i", 1, occ)
	i2 := mkIdx(t, "i", 2, occ)
	a1 := mkIdx(t, "a", 1, virt)

	l := cost.SortedCopy([]index.Index{i1, a1})
	r := cost.SortedCopy([]index.Index{i1, i2})

	common := cost.CommonIndices(l, r)
	require.Len(t, common, 1)
	assert.True(t, common[0].Equal(i1))

	ext := cost.ExternalIndices(l, r)
	require.Len(t, ext, 2)
	assert.True(t, ext[0].Equal(i2) || ext[1].Equal(i2))
	assert.True(t, ext[0].Equal(a1) || ext[1].Equal(a1))
}

func TestFlopsScalarContractionIsZeroCost(t *testing.T) {
	f, err := cost.Flops(dims(10, 20), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, f)
}

func TestFlopsMultipliesAllDistinctIndices(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	virt := index.IndexSpace{Type: index.Unoccupied}
	i1 := mkIdx(t, "i", 1, occ)
	a1 := mkIdx(t, "a", 1, virt)
	a2 := mkIdx(t, "a", 2, virt)

	// l = {i1, a1}, r = {i1, a2}: common = {i1}, external = {a1, a2}
	l := cost.SortedCopy([]index.Index{i1, a1})
	r := cost.SortedCopy([]index.Index{i1, a2})

	f, err := cost.Flops(dims(10, 20), l, r)
	require.NoError(t, err)
	// product over external (a1, a2) and common (i1): 20 * 20 * 10
	assert.Equal(t, 4000.0, f)
}

func TestFlopsRejectsNonPositiveDimension(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	i1 := mkIdx(t, "i", 1, occ)
	zero := func(index.Index) (uint64, error) { return 0, nil }
	_, err := cost.Flops(zero, []index.Index{i1}, nil)
	assert.ErrorIs(t, err, cost.ErrNonPositiveDimension)
}

func TestFlopsPropagatesOracleError(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	i1 := mkIdx(t, "i", 1, occ)
	boom := errors.New("boom")
	bad := func(index.Index) (uint64, error) { return 0, boom }
	_, err := cost.Flops(bad, []index.Index{i1}, nil)
	assert.ErrorIs(t, err, boom)
}
