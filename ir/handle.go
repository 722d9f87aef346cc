// Package ir implements the content-addressed, topologically-ordered DAG of
// immutable nodes that is the compiler's intermediate representation: the
// node model (constants, distributions, operators, samples, observations,
// queries) and the arena-backed Builder that interns them.
package ir

// Handle is a small integer index into a Builder's node arena. Handles are
// cheap to copy and stable for the lifetime of the Builder that produced
// them; the fixer rewrites edges by reassigning which Handle a node's input
// slot points to, never by mutating the node a Handle refers to.
type Handle int
