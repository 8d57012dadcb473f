// Package fixtures generates small synthetic tensor-network topologies for
// tests, benchmarks, and Example... functions: chains, stars, complete
// (all-to-all) graphs, and antisymmetric pairs, each returned as an
// *expr.Product of *expr.Tensor factors over deterministic index.Index
// fixtures.
//
// Every generator follows the same functional-option shape (a
// fixtures.Option mutates a fixtures.Config which each generator consumes
// directly) and the same determinism discipline: same inputs and options,
// identical output.
package fixtures
