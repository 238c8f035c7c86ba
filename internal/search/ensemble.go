package search

import (
	"context"
	"math"
	"sync/atomic"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/nullmove/negavote/internal/arena"
	"github.com/nullmove/negavote/internal/chess"
	"github.com/nullmove/negavote/internal/eval"
)

// Ensemble is a pool of Searchers sharing one transposition table and
// one cancellation flag. Searcher 0 is the primary: full requested
// depth, no shuffling, unrestricted TT use at the root. The rest are
// helpers that alternate between requestedDepth and requestedDepth-1
// and shuffle shallow move order (see Searcher.searchChildren).
type Ensemble struct {
	table     *PositionTable
	arena     *arena.Arena
	stop      *atomic.Bool
	searchers []*Searcher
}

// NewEnsemble builds an ensemble of the given size (clamped to at
// least 1), typically hardware concurrency.
func NewEnsemble(size int, table *PositionTable, evaluator eval.Evaluator, a *arena.Arena) *Ensemble {
	if size < 1 {
		size = 1
	}
	var stop atomic.Bool
	var searchers = make([]*Searcher, size)
	for i := range searchers {
		searchers[i] = NewSearcher(i, i != 0, 1, table, evaluator, a, &stop, int64(i)+1)
	}
	return &Ensemble{table: table, arena: a, stop: &stop, searchers: searchers}
}

// Cancel requests every in-flight searcher to shortcut on its next
// node entry. Cooperative: there is no preemption.
func (e *Ensemble) Cancel() {
	e.stop.Store(true)
}

// searcherResult pairs a searcher's outcome with the depth it was
// actually assigned, since the voting formula weighs by depth.
type searcherResult struct {
	MoveRating
	depth int
}

// FindBestMove runs the full ensemble against pos to the requested
// depth and returns the voted move, or false if any searcher reported
// no move (a terminal position, or cancellation before that searcher
// completed a full iteration).
func (e *Ensemble) FindBestMove(ctx context.Context, pos chess.Position, depth int, repetition chess.RepetitionMap) (chess.Move, bool) {
	e.arena.ResetAllThreads()
	e.stop.Store(false)

	for i, s := range e.searchers {
		s.Depth = depth
		if i != 0 && i%2 == 1 && depth > 1 {
			s.Depth = depth - 1
		}
	}

	var group, gctx = errgroup.WithContext(ctx)
	var results = make([]searcherResult, len(e.searchers))
	for i, s := range e.searchers {
		var i, s = i, s
		group.Go(func() error {
			if gctx.Err() != nil {
				e.stop.Store(true)
			}
			results[i] = searcherResult{MoveRating: s.Search(pos, repetition), depth: s.Depth}
			return nil
		})
	}
	_ = group.Wait()

	for _, r := range results {
		if r.IsNone() {
			return chess.NoMove, false
		}
	}

	return voteForBestMove(results), true
}

// voteForBestMove implements the weighted-vote aggregation: a shortest
// forced mate wins outright, otherwise every searcher's rating
// contributes weight to its chosen move, scaled by search depth and
// relative score, and the highest-weight move wins ties by first
// occurrence.
func voteForBestMove(results []searcherResult) chess.Move {
	if move, ok := shortestMate(results); ok {
		return move
	}

	var worst = lo.MinBy(results, func(a, b searcherResult) bool { return a.Rating < b.Rating }).Rating
	var best = lo.MaxBy(results, func(a, b searcherResult) bool { return a.Rating > b.Rating }).Rating
	var spread = best - worst

	var order = lo.Map(
		lo.UniqBy(results, func(r searcherResult) chess.Move { return r.Move }),
		func(r searcherResult, _ int) chess.Move { return r.Move },
	)

	var weight = map[chess.Move]float64{}
	for _, r := range results {
		var depthTerm = math.Pow(2, float64(r.depth))
		var w = 1 + depthTerm
		if spread != 0 {
			w += 1.2 * float64(r.Rating-worst) / float64(spread) * (1 + depthTerm)
		}
		if r.HasCheckmate && r.CheckmateLevel > 0 {
			w += w / float64(r.CheckmateLevel)
		}
		weight[r.Move] += w
	}

	return lo.MaxBy(order, func(a, b chess.Move) bool { return weight[a] > weight[b] })
}

// shortestMate reports the move backing the shallowest discovered
// forced mate, if any searcher found one.
func shortestMate(results []searcherResult) (chess.Move, bool) {
	var found = false
	var bestLevel = 0
	var bestMove = chess.NoMove
	for _, r := range results {
		if !r.HasCheckmate {
			continue
		}
		if !found || r.CheckmateLevel < bestLevel {
			found = true
			bestLevel = r.CheckmateLevel
			bestMove = r.Move
		}
	}
	return bestMove, found
}
