// File: errors.go
// Role: sentinel errors for the fixtures package, same discipline as
// matrix/errors.go and expr/errors.go: every condition a caller should
// branch on is a package-level sentinel matched via errors.Is.
package fixtures

import "errors"

var (
	// ErrTooFewFactors is returned when a generator is asked for fewer
	// tensor factors than its topology requires (e.g. Chain(0), Star(0)).
	ErrTooFewFactors = errors.New("fixtures: too few factors for this topology")

	// ErrUnknownSpace is returned by a Config-derived DimOracle when asked
	// for the dimension of an index outside cfg.OccSpace/cfg.VirtSpace.
	ErrUnknownSpace = errors.New("fixtures: index space has no configured dimension")
)
