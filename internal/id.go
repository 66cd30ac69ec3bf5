// Package internal implements the reactive event-graph scheduler: cells,
// links, the event scope, and the involved-set/activation algorithm. The
// public API in package eventgraph is a thin, typed wrapper around it.
package internal

import "github.com/google/uuid"

// Id is the stable opaque handle carried by every Cell and Link. It is
// comparable and usable as a map key, satisfying the identity invariant
// without exposing pointer identity to callers (loggers, trace snapshots,
// and golden tests all want something printable).
type Id = uuid.UUID

// NewId mints a fresh identity for a cell or link.
func NewId() Id {
	return uuid.New()
}
