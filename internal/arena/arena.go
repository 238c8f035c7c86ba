// Package arena provides per-thread scratch storage for the search:
// fixed-size move buffers and killer-move slots indexed by ply, reused
// across nodes instead of allocated fresh at every recursion.
package arena

import (
	"sync"

	"github.com/nullmove/negavote/internal/chess"
)

// MaxPly bounds how many plies of scratch frames a thread carries. A
// search that recurses deeper than this reuses the last frame, which
// only affects move-ordering hints, never correctness.
const MaxPly = 128

// KillerSlots is the number of killer moves tracked per ply.
const KillerSlots = 3

// KillerRing is a fixed-size FIFO ring of non-capturing moves that
// previously caused a beta cut-off, indexed by node level rather than
// remaining depth: killers at the same ply correlate across
// iterative-deepening iterations, so the ring lives in per-ply scratch
// storage rather than being rebuilt each call.
type KillerRing struct {
	moves [KillerSlots]chess.Move
	next  int
}

// Add inserts move into the ring, evicting the oldest entry once full.
// A move already present is left in place rather than duplicated.
func (k *KillerRing) Add(move chess.Move) {
	for _, existing := range k.moves {
		if existing == move {
			return
		}
	}
	k.moves[k.next] = move
	k.next = (k.next + 1) % len(k.moves)
}

// Contains reports whether move matches any live killer in the ring.
func (k *KillerRing) Contains(move chess.Move) bool {
	for _, existing := range k.moves {
		if existing == move && move != chess.NoMove {
			return true
		}
	}
	return false
}

type stackFrame struct {
	moveBuffer [chess.MaxMoves]chess.Move
	killers    KillerRing
}

type threadState struct {
	frames [MaxPly]stackFrame
}

func newThreadState() *threadState {
	return &threadState{}
}

func (t *threadState) reset() {
	for i := range t.frames {
		t.frames[i].killers = KillerRing{}
	}
}

// Arena owns the scratch storage for every search thread, keyed by an
// integer thread id assigned by the caller (the ensemble's searcher
// index).
type Arena struct {
	mu      sync.Mutex
	threads map[int]*threadState
}

// New returns an empty arena; threads must call RegisterThread before
// requesting scratch storage.
func New() *Arena {
	return &Arena{threads: make(map[int]*threadState)}
}

// RegisterThread allocates scratch storage for threadID if it does not
// already have any. Safe to call multiple times.
func (a *Arena) RegisterThread(threadID int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.threads[threadID]; !ok {
		a.threads[threadID] = newThreadState()
	}
}

// ResetThread clears threadID's killer slots, called between
// iterative-deepening iterations to bound stale move-ordering hints.
func (a *Arena) ResetThread(threadID int) {
	a.mu.Lock()
	var t = a.threads[threadID]
	a.mu.Unlock()
	if t != nil {
		t.reset()
	}
}

// ResetAllThreads clears every registered thread's killer slots,
// called before a fresh top-level search begins.
func (a *Arena) ResetAllThreads() {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, t := range a.threads {
		t.reset()
	}
}

func (a *Arena) frame(threadID, level int) *stackFrame {
	a.mu.Lock()
	var t = a.threads[threadID]
	a.mu.Unlock()
	if level >= MaxPly {
		level = MaxPly - 1
	}
	return &t.frames[level]
}

// MoveBuffer returns the reusable move-list backing array for
// threadID at the given ply, avoiding a fresh allocation per node.
// Callers index into it directly (as chess.GeneratePseudoLegalMoves
// does) rather than appending.
func (a *Arena) MoveBuffer(threadID, level int) []chess.Move {
	var f = a.frame(threadID, level)
	return f.moveBuffer[:]
}

// Killers returns the mutable killer-move ring for threadID at the
// given ply.
func (a *Arena) Killers(threadID, level int) *KillerRing {
	return &a.frame(threadID, level).killers
}
