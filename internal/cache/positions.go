// Package cache keeps computed bowl layouts so that scrubbing back to a move
// restores exactly what was shown before.
//
// Positions are stored normalized to the bowl radius, so a cached layout
// survives window resizes unchanged.
package cache

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/davemarvit/SGFPlayer-sub000/internal/core"
)

// Key identifies one snapshot.
type Key struct {
	Move      int
	Container core.ContainerID
}

// Stats counts cache traffic since the last Clear.
type Stats struct {
	Entries int
	Hits    int
	Misses  int
	Stores  int
	Version uint64
}

// Positions is an append-only store of normalized layouts keyed by move and
// container. It is not safe for concurrent use.
type Positions struct {
	entries map[Key][]r2.Vec
	version uint64
	hits    int
	misses  int
	stores  int
}

// NewPositions returns an empty cache.
func NewPositions() *Positions {
	return &Positions{entries: make(map[Key][]r2.Vec)}
}

// Store saves a normalized layout. A snapshot never changes once written for
// a version: storing an existing key again is rejected and returns false.
func (c *Positions) Store(move int, container core.ContainerID, normalized []r2.Vec) bool {
	k := Key{Move: move, Container: container}
	if _, ok := c.entries[k]; ok {
		return false
	}
	c.entries[k] = append(make([]r2.Vec, 0, len(normalized)), normalized...)
	c.stores++
	return true
}

// Fetch returns a copy of the stored layout.
func (c *Positions) Fetch(move int, container core.ContainerID) ([]r2.Vec, bool) {
	pos, ok := c.entries[Key{Move: move, Container: container}]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return append(make([]r2.Vec, 0, len(pos)), pos...), true
}

// Has reports whether a snapshot exists without touching the counters.
func (c *Positions) Has(move int, container core.ContainerID) bool {
	_, ok := c.entries[Key{Move: move, Container: container}]
	return ok
}

// Invalidate discards every snapshot because the algorithm selection changed.
func (c *Positions) Invalidate() {
	clear(c.entries)
	c.version++
}

// Clear discards every snapshot and resets the counters for a new game.
func (c *Positions) Clear() {
	clear(c.entries)
	c.version++
	c.hits, c.misses, c.stores = 0, 0, 0
}

// Version increases every time snapshots are discarded.
func (c *Positions) Version() uint64 {
	return c.version
}

// Len returns the number of stored snapshots.
func (c *Positions) Len() int {
	return len(c.entries)
}

// Stats returns a copy of the counters.
func (c *Positions) Stats() Stats {
	return Stats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
		Stores:  c.stores,
		Version: c.version,
	}
}
