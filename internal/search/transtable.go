package search

import (
	"sync/atomic"

	"github.com/nullmove/negavote/internal/chess"
)

func roundPowerOfTwo(size int) int {
	var x = 1
	for (x << 1) <= size {
		x <<= 1
	}
	return x
}

// entry is one 24-byte transposition-table slot. gate is an
// entry-embedded spin lock (0 = free, 1 = held) that pairs with key32
// to detect and discard torn reads under concurrent access, instead of
// guarding the whole table with a single mutex.
type entry struct {
	gate  int32
	key32 uint32
	move  chess.Move
	score int32
	depth int32
	bound Bound
}

// PositionTable is the shared, concurrently-accessed cache mapping a
// position's hash to its most recently computed PositionEntry.
type PositionTable struct {
	entries []entry
	mask    uint64
}

// NewPositionTable allocates a table sized to hold roughly megabytes
// worth of entries, rounded down to a power of two for fast masking.
func NewPositionTable(megabytes int) *PositionTable {
	var size = roundPowerOfTwo(1024 * 1024 * megabytes / 32)
	if size < 1 {
		size = 1
	}
	return &PositionTable{
		entries: make([]entry, size),
		mask:    uint64(size - 1),
	}
}

// Lookup returns the entry stored for pos's hash, if any.
func (t *PositionTable) Lookup(pos *chess.Position) (PositionEntry, bool) {
	var key = pos.Hash()
	var slot = &t.entries[key&t.mask]
	if !atomic.CompareAndSwapInt32(&slot.gate, 0, 1) {
		return PositionEntry{}, false
	}
	defer atomic.StoreInt32(&slot.gate, 0)

	if slot.key32 != uint32(key>>32) {
		return PositionEntry{}, false
	}
	return PositionEntry{
		BestMove: slot.move,
		Rating:   int(slot.score),
		Depth:    int(slot.depth),
		Bound:    slot.bound,
	}, true
}

// Store inserts or replaces the entry for pos's hash. An existing entry
// for a different key is always replaced, whatever its depth; a same-key
// entry is replaced by a result at least as deep, and by an exact-bound
// result regardless of depth.
func (t *PositionTable) Store(pos *chess.Position, e PositionEntry) {
	var key = pos.Hash()
	var slot = &t.entries[key&t.mask]
	if !atomic.CompareAndSwapInt32(&slot.gate, 0, 1) {
		return
	}
	defer atomic.StoreInt32(&slot.gate, 0)

	var sameKey = slot.key32 == uint32(key>>32)
	var replace = !sameKey || e.Depth >= int(slot.depth) || e.Bound == InWindow
	if replace {
		slot.key32 = uint32(key >> 32)
		slot.move = e.BestMove
		slot.score = int32(e.Rating)
		slot.depth = int32(e.Depth)
		slot.bound = e.Bound
	}
}

// Clear discards every entry, used between distinct games.
func (t *PositionTable) Clear() {
	for i := range t.entries {
		t.entries[i] = entry{}
	}
}
