// File: config.go
// Role: functional-option configuration for the topology generators:
// resolve once, apply options in order, later overrides earlier.
package fixtures

import (
	"github.com/ares201005/sequant-go/cost"
	"github.com/ares201005/sequant-go/expr"
	"github.com/ares201005/sequant-go/index"
)

// Config is the resolved, immutable set of parameters every generator in
// this package consumes: the occupied/unoccupied spaces to draw indices
// from and their dimensions, and the default tensor symmetry tags to
// stamp onto generated factors.
type Config struct {
	OccSpace       index.IndexSpace
	VirtSpace      index.IndexSpace
	OccDim         uint64
	VirtDim        uint64
	TensorSymmetry expr.Symmetry
	BraKetSymmetry expr.BraKetSymmetry
}

// Option customizes a Config before a generator consumes it.
type Option func(*Config)

var (
	occSpace  = index.IndexSpace{Type: index.Occupied}
	virtSpace = index.IndexSpace{Type: index.Unoccupied}
)

// defaultConfig is the conventional small test regime: o=10, v=100,
// plain (non-symmetric) tensors over the standard Occupied/Unoccupied
// spaces.
func defaultConfig() Config {
	return Config{
		OccSpace:       occSpace,
		VirtSpace:      virtSpace,
		OccDim:         10,
		VirtDim:        100,
		TensorSymmetry: expr.NonSymmetric,
		BraKetSymmetry: expr.BraKetNonSymmetric,
	}
}

// resolve applies opts in order over defaultConfig(), later options
// overriding earlier ones.
func resolve(opts ...Option) Config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithDims overrides the occupied/unoccupied dimensions used by DimOracle
// and, where relevant, by callers sizing their own expectations against a
// generated fixture.
func WithDims(occDim, virtDim uint64) Option {
	return func(cfg *Config) {
		cfg.OccDim = occDim
		cfg.VirtDim = virtDim
	}
}

// WithSymmetry overrides the permutational and bra-ket symmetry tags
// stamped onto every generated Tensor.
func WithSymmetry(sym expr.Symmetry, brak expr.BraKetSymmetry) Option {
	return func(cfg *Config) {
		cfg.TensorSymmetry = sym
		cfg.BraKetSymmetry = brak
	}
}

// DimOracle returns a cost.DimOracle reflecting cfg's OccSpace/VirtSpace
// dimensions, the oracle every Optimize/SingleTermOpt call in a test or
// Example built from this package's fixtures is run against.
func (cfg Config) DimOracle() cost.DimOracle {
	return func(idx index.Index) (uint64, error) {
		switch {
		case idx.Space.Equal(cfg.OccSpace):
			return cfg.OccDim, nil
		case idx.Space.Equal(cfg.VirtSpace):
			return cfg.VirtDim, nil
		default:
			return 0, ErrUnknownSpace
		}
	}
}
