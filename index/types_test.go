package index_test

import (
	"testing"

	"github.com/ares201005/sequant-go/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	cases := []struct {
		label    string
		wantBase string
		wantID   uint32
		wantErr  bool
	}{
		{"o_1", "o", 1, false},
		{"v_12", "v", 12, false},
		{"i1", "i", 1, false},
		{"o", "o", 0, false},
		{"", "", 0, true},
		{"_5", "", 0, true},
	}
	for _, c := range cases {
		base, id, err := index.ParseLabel(c.label)
		if c.wantErr {
			require.Error(t, err, c.label)
			continue
		}
		require.NoError(t, err, c.label)
		assert.Equal(t, c.wantBase, base, c.label)
		assert.Equal(t, c.wantID, id, c.label)
	}
}

func TestIndexEqual(t *testing.T) {
	sp := index.IndexSpace{Type: index.Occupied}
	a, err := index.New("i", 1, sp)
	require.NoError(t, err)
	b, err := index.New("i", 1, sp)
	require.NoError(t, err)
	c, err := index.New("i", 2, sp)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestIndexEqualIgnoresSpaceDrift(t *testing.T) {
	// Equal only compares label/id/proto; two Index values sharing a label
	// but built against differing spaces are still the "same slot" for
	// equality purposes.
	a, err := index.New("i", 1, index.IndexSpace{Type: index.Occupied})
	require.NoError(t, err)
	b, err := index.New("i", 1, index.IndexSpace{Type: index.Unoccupied})
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestIndexLessTotalOrder(t *testing.T) {
	sp := index.IndexSpace{}
	i1, _ := index.New("i", 1, sp)
	i2, _ := index.New("i", 2, sp)
	j1, _ := index.New("j", 1, sp)

	assert.True(t, i1.Less(i2))
	assert.False(t, i2.Less(i1))
	assert.True(t, i1.Less(j1))
	assert.Equal(t, -1, index.ByLabel(i1, i2))
	assert.Equal(t, 0, index.ByLabel(i1, i1))
	assert.Equal(t, 1, index.ByLabel(i2, i1))
}

func TestIndexSpaceIntersect(t *testing.T) {
	occ := index.IndexSpace{Type: index.Occupied}
	aocc := index.IndexSpace{Type: index.ActiveOccupied}
	complete := index.IndexSpace{Type: index.Complete}
	virt := index.IndexSpace{Type: index.Unoccupied}

	got, ok := occ.Intersect(aocc)
	require.True(t, ok)
	assert.Equal(t, aocc, got)

	got, ok = complete.Intersect(virt)
	require.True(t, ok)
	assert.Equal(t, virt, got)

	_, ok = occ.Intersect(virt)
	assert.False(t, ok)
}

func TestColorStableAcrossEqualValues(t *testing.T) {
	sp := index.IndexSpace{Type: index.Occupied, Qns: index.Alpha}
	a, _ := index.New("i", 1, sp)
	b, _ := index.New("i", 1, sp)
	assert.Equal(t, a.Color(), b.Color())

	c, _ := index.New("i", 2, sp)
	assert.NotEqual(t, a.Color(), c.Color())
}

func TestRegistryPushPop(t *testing.T) {
	base := index.DefaultReg()

	custom := index.NewRegistry()
	custom.Register("x", index.IndexSpace{Type: index.Unoccupied})

	handle := index.PushDefaultRegistry(custom)
	assert.Same(t, custom, index.DefaultReg())

	idx, err := index.FromLabel(index.DefaultReg(), "x_3")
	require.NoError(t, err)
	assert.Equal(t, uint32(3), idx.ID)

	handle.Pop()
	assert.Same(t, base, index.DefaultReg())

	// Pop is idempotent.
	handle.Pop()
	assert.Same(t, base, index.DefaultReg())
}

func TestRegistryBasesDeterministicOrder(t *testing.T) {
	r := index.NewRegistry()
	r.Register("v", index.IndexSpace{Type: index.Unoccupied})
	r.Register("o", index.IndexSpace{Type: index.Occupied})
	r.Register("a", index.IndexSpace{Type: index.ActiveOccupied})

	assert.Equal(t, []string{"a", "o", "v"}, r.Bases())
}

func TestFromLabelUnknownSpace(t *testing.T) {
	r := index.NewRegistry()
	_, err := index.FromLabel(r, "q_1")
	require.ErrorIs(t, err, index.ErrUnknownSpace)
}
