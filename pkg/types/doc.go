// Package types defines the entities, store interface, and standard errors
// for the quilt placement board: cells, tokens, placements, moves, saved
// designs, and backend configuration.
package types
