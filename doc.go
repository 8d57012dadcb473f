// Package sequant implements a contraction-order optimizer for symbolic
// tensor expressions arising in second-quantized many-body theory: an
// expression algebra (expr), its tensor-network view and canonicalization
// (network, canon), a FLOP cost model (cost), and the exact bitmask dynamic
// program that finds a minimal-cost binary contraction plan for a Product's
// Tensor factors (optimize).
//
// Under the hood, everything is organized under seven subpackages:
//
//	index/    - labeled index spaces, the Index value type, scoped registries
//	expr/     - the closed Constant/Variable/Tensor/Sum/Product expression algebra
//	canon/    - fixed-point canonicalization (flatten, fold, dummy-rename, sort)
//	network/  - the bipartite tensor/index view and its vertex-coloring canonical form
//	cost/     - the FLOP cost functional and label-sorted index set operations
//	optimize/ - the bitmask DP single-term optimizer and multi-term reorderer
//	fixtures/ - synthetic tensor-network topologies for tests and examples
//
// The three public entry points are optimize.Optimize, optimize.SingleTermOpt,
// and canon.Canonicalize; see their doc comments for the full contract.
package sequant
