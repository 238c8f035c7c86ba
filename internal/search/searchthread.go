package search

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/nullmove/negavote/internal/chess"
)

// PonderDepth is the effectively-infinite depth used while pondering:
// the search only stops on cancellation, never on reaching this depth.
const PonderDepth = 255

// GameState is the position, requested depth, and repetition history a
// SearchThread will search against once its current wait is woken.
type GameState struct {
	Position   chess.Position
	Depth      int
	Repetition chess.RepetitionMap
}

// SearchThread is a single long-lived worker looping around an
// Ensemble, mirroring an idle/pondering/calculating state machine:
// idle while waiting for a command, pondering on the opponent's clock
// to warm the transposition table, calculating on our own clock to a
// requested depth. SetPosition/Go/Stop drive the transitions and each
// cancels any in-flight search and signals the condition variable:
// SetPosition and Go publish the new state before cancelling, Stop
// cancels before clearing the ponder flag. think re-checks the flags
// after every wait so a race between stop and a fresh calculation request can
// never leave the thread calculating on stale state.
type SearchThread struct {
	ensemble   *Ensemble
	onBestMove func(chess.Move)
	log        zerolog.Logger

	mu                   sync.Mutex
	cond                 *sync.Cond
	state                GameState
	shouldPonder         bool
	calculationRequested bool
	closed               bool
}

// NewSearchThread starts the worker goroutine and returns immediately;
// onBestMove is invoked from the worker goroutine whenever a
// calculation completes with a move.
func NewSearchThread(ensemble *Ensemble, onBestMove func(chess.Move)) *SearchThread {
	return NewSearchThreadWithLogger(ensemble, onBestMove, zerolog.Nop())
}

// NewSearchThreadWithLogger is NewSearchThread with structured
// depth/move reporting on every completed calculation and ponder.
func NewSearchThreadWithLogger(ensemble *Ensemble, onBestMove func(chess.Move), logger zerolog.Logger) *SearchThread {
	var t = &SearchThread{ensemble: ensemble, onBestMove: onBestMove, log: logger}
	t.cond = sync.NewCond(&t.mu)
	go t.run()
	return t
}

// SetPosition installs a new position to ponder on (typically called
// after the opponent's move lands) and cancels any search in flight.
func (t *SearchThread) SetPosition(state GameState) {
	t.mu.Lock()
	t.shouldPonder = true
	t.state = state
	t.mu.Unlock()
	t.ensemble.Cancel()
	t.cond.Signal()
}

// Go requests a calculation to the given depth on the current
// position, cancelling any search (including pondering) in flight.
func (t *SearchThread) Go(depth int) {
	t.mu.Lock()
	t.calculationRequested = true
	t.shouldPonder = false
	t.state.Depth = depth
	t.mu.Unlock()
	t.ensemble.Cancel()
	t.cond.Signal()
}

// Stop cancels whatever the thread is currently doing without
// installing a new request.
func (t *SearchThread) Stop() {
	t.ensemble.Cancel()
	t.mu.Lock()
	t.shouldPonder = false
	t.mu.Unlock()
	t.cond.Signal()
}

// Close stops the worker goroutine for good.
func (t *SearchThread) Close() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
	t.ensemble.Cancel()
	t.cond.Signal()
}

func (t *SearchThread) run() {
	for {
		if !t.think() {
			return
		}

		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			return
		}
		var state = t.state
		t.calculationRequested = false
		t.mu.Unlock()

		var move, ok = t.ensemble.FindBestMove(context.Background(), state.Position, state.Depth, state.Repetition)

		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			return
		}
		t.mu.Unlock()

		if !ok {
			t.log.Info().Int("depth", state.Depth).Msg("calculation cancelled before any iteration completed")
			t.mu.Lock()
			t.shouldPonder = false
			t.mu.Unlock()
			continue
		}

		t.log.Info().Int("depth", state.Depth).Str("move", move.String()).Msg("calculation complete")
		t.onBestMove(move)

		t.mu.Lock()
		if !t.calculationRequested {
			var child chess.Position
			if t.state.Position.MakeMove(move, &child) {
				t.state.Position = child
				var rep = t.state.Repetition.Clone()
				rep.Push(child.Hash())
				t.state.Repetition = rep
			}
			t.shouldPonder = true
		}
		t.mu.Unlock()
	}
}

// think ponders in a loop until either a calculation is requested
// (returns true, ready for run to act on it) or the thread is closed
// (returns false).
func (t *SearchThread) think() bool {
	for {
		t.mu.Lock()
		if t.closed {
			t.mu.Unlock()
			return false
		}
		if t.calculationRequested {
			t.mu.Unlock()
			return true
		}
		for !t.shouldPonder && !t.calculationRequested && !t.closed {
			t.cond.Wait()
		}
		if t.closed {
			t.mu.Unlock()
			return false
		}
		if t.calculationRequested {
			t.mu.Unlock()
			return true
		}
		var state = t.state
		t.mu.Unlock()

		var move, ok = t.ensemble.FindBestMove(context.Background(), state.Position, PonderDepth, state.Repetition)
		if ok {
			t.log.Info().Int("depth", PonderDepth).Str("move", move.String()).Msg("ponder stopped")
		}

		t.mu.Lock()
		if !ok && !t.calculationRequested {
			t.shouldPonder = false
		}
		t.mu.Unlock()
	}
}
