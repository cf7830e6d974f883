package config

import (
	"fmt"
	"math"

	"github.com/jinzhu/copier"
)

// Node count bounds enforced by validation.
const (
	MinFixedNodes    = 1
	MaxFixedNodes    = 10
	MinAutoScaleNode = 1
	MaxAutoScaleNode = 100
)

// EffectiveNodeCount returns the node count used for cost purposes: the
// fixed count, or the rounded midpoint of the autoscaling range.
func (p NodePool) EffectiveNodeCount() int {
	if p.EnableAutoScaling {
		return int(math.Round(float64(p.MinNodes+p.MaxNodes) / 2))
	}
	return p.NodeCount
}

// SizingValid reports whether the active scaling mode is within bounds.
func (p NodePool) SizingValid() bool {
	if p.EnableAutoScaling {
		return p.MinNodes >= MinAutoScaleNode && p.MinNodes <= p.MaxNodes && p.MaxNodes <= MaxAutoScaleNode
	}
	return p.NodeCount >= MinFixedNodes && p.NodeCount <= MaxFixedNodes
}

// NewUserPool returns the template for the next user pool given the
// current number of user pools.
func NewUserPool(existing int) NodePool {
	return NodePool{
		Name:      fmt.Sprintf("userpool%d", existing+1),
		VMSize:    DefaultVMSize,
		NodeCount: 2,
		MinNodes:  1,
		MaxNodes:  5,
		Mode:      PoolModeUser,
	}
}

// AddUserPool returns a copy of cfg with pool appended to the user pools.
func AddUserPool(cfg Config, pool NodePool) Config {
	out := cfg.Clone()
	pool.Mode = PoolModeUser
	out.UserNodePools = append(out.UserNodePools, pool)
	return out
}

// RemoveUserPool returns a copy of cfg without the user pool at index.
// Survivors keep their relative order.
func RemoveUserPool(cfg Config, index int) (Config, error) {
	if index < 0 || index >= len(cfg.UserNodePools) {
		return cfg, fmt.Errorf("%w: %d (have %d)", ErrPoolIndexOutOfRange, index, len(cfg.UserNodePools))
	}
	out := cfg.Clone()
	pools := make([]NodePool, 0, len(out.UserNodePools)-1)
	pools = append(pools, out.UserNodePools[:index]...)
	out.UserNodePools = append(pools, out.UserNodePools[index+1:]...)
	return out, nil
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	var out Config
	if err := copier.CopyWithOption(&out, &c, copier.Option{DeepCopy: true}); err != nil {
		out = c
		out.UserNodePools = append([]NodePool(nil), c.UserNodePools...)
		out.MultiRegion.SecondaryRegions = append([]string(nil), c.MultiRegion.SecondaryRegions...)
	}
	// copier does not distinguish nil from empty slices.
	if c.UserNodePools != nil && out.UserNodePools == nil {
		out.UserNodePools = []NodePool{}
	}
	if c.MultiRegion.SecondaryRegions != nil && out.MultiRegion.SecondaryRegions == nil {
		out.MultiRegion.SecondaryRegions = []string{}
	}
	return out
}
