package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEffectiveNodeCount(t *testing.T) {
	tests := []struct {
		name string
		pool NodePool
		want int
	}{
		{"fixed", NodePool{NodeCount: 3, MinNodes: 1, MaxNodes: 9}, 3},
		{"autoscale midpoint", NodePool{EnableAutoScaling: true, MinNodes: 2, MaxNodes: 8}, 5},
		{"autoscale rounds half up", NodePool{EnableAutoScaling: true, MinNodes: 1, MaxNodes: 2}, 2},
		{"autoscale equal bounds", NodePool{EnableAutoScaling: true, MinNodes: 4, MaxNodes: 4, NodeCount: 1}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pool.EffectiveNodeCount())
		})
	}
}

func TestNewUserPool(t *testing.T) {
	pool := NewUserPool(2)
	assert.Equal(t, "userpool3", pool.Name)
	assert.Equal(t, DefaultVMSize, pool.VMSize)
	assert.Equal(t, 2, pool.NodeCount)
	assert.Equal(t, PoolModeUser, pool.Mode)
	assert.True(t, pool.SizingValid())
}

func TestUserPoolRoundTrip(t *testing.T) {
	base := Default()
	base = AddUserPool(base, NodePool{Name: "a", VMSize: "Standard_D2s_v3", NodeCount: 1})
	base = AddUserPool(base, NodePool{Name: "b", VMSize: "Standard_D4s_v3", NodeCount: 2})
	before := append([]NodePool(nil), base.UserNodePools...)

	added := AddUserPool(base, NewUserPool(len(base.UserNodePools)))
	require.Len(t, added.UserNodePools, 3)
	assert.Len(t, base.UserNodePools, 2, "input must not be modified")

	removed, err := RemoveUserPool(added, 2)
	require.NoError(t, err)
	assert.Equal(t, before, removed.UserNodePools)
}

func TestRemoveUserPool_PreservesOrder(t *testing.T) {
	cfg := Default()
	for _, name := range []string{"a", "b", "c", "d"} {
		cfg = AddUserPool(cfg, NodePool{Name: name, NodeCount: 1})
	}

	out, err := RemoveUserPool(cfg, 1)
	require.NoError(t, err)

	var names []string
	for _, p := range out.UserNodePools {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"a", "c", "d"}, names)
	assert.Len(t, cfg.UserNodePools, 4)
}

func TestRemoveUserPool_OutOfRange(t *testing.T) {
	cfg := AddUserPool(Default(), NewUserPool(0))
	for _, idx := range []int{-1, 1, 5} {
		_, err := RemoveUserPool(cfg, idx)
		assert.ErrorIs(t, err, ErrPoolIndexOutOfRange)
	}
}

func TestClone_IsDeep(t *testing.T) {
	cfg := AddUserPool(Default(), NewUserPool(0))
	cfg.MultiRegion.SecondaryRegions = []string{"westus"}

	clone := cfg.Clone()
	clone.UserNodePools[0].Name = "changed"
	clone.MultiRegion.SecondaryRegions[0] = "changed"

	assert.Equal(t, "userpool1", cfg.UserNodePools[0].Name)
	assert.Equal(t, "westus", cfg.MultiRegion.SecondaryRegions[0])
}

func TestClone_KeepsEmptySlices(t *testing.T) {
	clone := Default().Clone()
	assert.NotNil(t, clone.UserNodePools)
	assert.NotNil(t, clone.MultiRegion.SecondaryRegions)
}
