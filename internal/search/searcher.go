package search

import (
	"math/rand"
	"sync/atomic"

	"github.com/nullmove/negavote/internal/arena"
	"github.com/nullmove/negavote/internal/chess"
	"github.com/nullmove/negavote/internal/eval"
)

// Searcher runs one independent iterative-deepening alpha-beta search
// against a transposition table shared with its siblings. Searcher 0
// in an Ensemble is conventionally the primary (IsHelper == false);
// the rest are helpers that diversify exploration by shuffling shallow
// move order and skipping the root's TT entry.
type Searcher struct {
	ID        int
	IsHelper  bool
	Depth     int
	Table     *PositionTable
	Evaluator eval.Evaluator
	Arena     *arena.Arena
	Stop      *atomic.Bool
	rand      *rand.Rand
}

// NewSearcher builds a searcher; seed only matters for helper searchers,
// which use it to diversify shallow move ordering across the ensemble.
func NewSearcher(id int, isHelper bool, depth int, table *PositionTable, evaluator eval.Evaluator, a *arena.Arena, stop *atomic.Bool, seed int64) *Searcher {
	a.RegisterThread(id)
	return &Searcher{
		ID:        id,
		IsHelper:  isHelper,
		Depth:     depth,
		Table:     table,
		Evaluator: evaluator,
		Arena:     a,
		Stop:      stop,
		rand:      rand.New(rand.NewSource(seed)),
	}
}

// Search performs iterative deepening from depth 1 up to s.Depth and
// returns the result of the last iteration that produced a move (the
// first iteration's result when none did). The per-thread arena is reset
// between iterations to bound killer-table staleness.
func (s *Searcher) Search(pos chess.Position, repetition chess.RepetitionMap) MoveRating {
	var rootRepetition = repetition.Clone()
	rootRepetition.Push(pos.Hash())

	var result MoveRating
	for iterDepth := 1; iterDepth <= s.Depth; iterDepth++ {
		var iterResult = s.startAlphaBetaSearch(pos, iterDepth, rootRepetition)
		// The first iteration always replaces result, even with a null
		// move, so a position with no legal moves still reports none. A
		// later cancellation must not erase an already-completed iteration.
		if iterDepth == 1 || !iterResult.IsNone() {
			result = iterResult
		}
		s.Arena.ResetThread(s.ID)
		if s.Stop.Load() {
			break
		}
	}
	return result
}

func (s *Searcher) startAlphaBetaSearch(pos chess.Position, iterDepth int, repetition chess.RepetitionMap) MoveRating {
	var root = Node{
		Position:       pos,
		RemainingDepth: iterDepth,
		Level:          0,
		Repetition:     repetition,
	}
	return s.search(&root, worstWindow())
}

// search is the node-entry procedure: terminal, repetition, and
// cancellation checks, then a transposition-table probe, then either a
// leaf evaluation or a recursive expansion of the node's children.
func (s *Searcher) search(node *Node, window AlphaBeta) MoveRating {
	var buf = s.Arena.MoveBuffer(s.ID, node.Level)
	var pseudo = chess.GeneratePseudoLegalMoves(buf, &node.Position)
	var legal = make([]chess.Move, 0, len(pseudo))
	var child chess.Position
	for _, m := range pseudo {
		if node.Position.MakeMove(m, &child) {
			legal = append(legal, m)
		}
	}

	if len(legal) == 0 {
		if node.Position.IsCheck() {
			return MoveRating{
				Move:           chess.NoMove,
				Rating:         LossIn(node.Level),
				HasCheckmate:   true,
				CheckmateLevel: node.Level,
			}
		}
		return MoveRating{Move: chess.NoMove, Rating: 0}
	}

	if node.Repetition.Count(node.Position.Hash()) >= 3 {
		return MoveRating{Move: chess.NoMove, Rating: 0, InvalidTTEntry: true}
	}

	if s.Stop.Load() {
		return MoveRating{Move: chess.NoMove, Rating: s.Evaluator.Evaluate(&node.Position)}
	}

	var pvMove = chess.NoMove
	var skipTT = s.IsHelper && node.Level == 0
	if !skipTT {
		if e, ok := s.Table.Lookup(&node.Position); ok {
			pvMove = e.BestMove
			var useBound = true
			if pvMove != chess.NoMove {
				var pvChild chess.Position
				if node.Position.MakeMove(pvMove, &pvChild) {
					if node.Repetition.Count(pvChild.Hash())+1 >= 2 {
						useBound = false
					}
				}
			}
			if useBound && e.Depth >= node.RemainingDepth {
				switch e.Bound {
				case InWindow:
					return MoveRating{Move: e.BestMove, Rating: e.Rating}
				case LowerBound:
					if e.Rating >= window.Beta {
						return MoveRating{Move: e.BestMove, Rating: e.Rating}
					}
					window.Alpha = max(window.Alpha, e.Rating)
				case UpperBound:
					if e.Rating <= window.Alpha {
						return MoveRating{Move: e.BestMove, Rating: e.Rating}
					}
					window.Beta = min(window.Beta, e.Rating)
				}
			}
		}
	}

	if node.RemainingDepth == 0 {
		return MoveRating{Move: chess.NoMove, Rating: s.Evaluator.Evaluate(&node.Position)}
	}

	return s.searchChildren(node, legal, pvMove, window)
}

// searchChildren orders the node's legal moves, searches each in turn
// with late-move reduction and re-search, and classifies the resulting
// bound before (conditionally) storing it in the transposition table.
func (s *Searcher) searchChildren(node *Node, legalMoves []chess.Move, pvMove chess.Move, window AlphaBeta) MoveRating {
	var originalAlpha = window.Alpha
	var killers = s.Arena.Killers(s.ID, node.Level)
	var priorities = OrderMoves(node, legalMoves, pvMove, killers)

	if s.IsHelper && node.Level < 3 {
		s.rand.Shuffle(len(priorities), func(i, j int) {
			priorities[i], priorities[j] = priorities[j], priorities[i]
		})
	}

	var best = MoveRating{Move: chess.NoMove, Rating: -MateValue - 1}
	var bound = InWindow
	var pruned = false

	for _, priority := range priorities {
		var result = s.searchMove(node, priority, window)

		if priority.IsTrimmed(node.RemainingDepth) && result.Rating >= window.Alpha {
			var full = priority
			full.SearchDepth = node.RemainingDepth - 1
			result = s.searchMove(node, full, window)
		}

		if result.Rating > best.Rating {
			best = result
		}

		window = window.raiseAlpha(best.Rating)

		if window.CanPrune() {
			if priority.Move.CapturedPiece() == chess.Empty {
				killers.Add(priority.Move)
			}
			bound = LowerBound
			pruned = true
			break
		}
		if best.Rating >= WinIn(node.Level+1) {
			break
		}
	}

	if !pruned {
		if best.Rating <= originalAlpha {
			bound = UpperBound
		} else {
			bound = InWindow
		}
	}

	if !best.InvalidTTEntry {
		s.Table.Store(&node.Position, PositionEntry{
			BestMove: best.Move,
			Rating:   best.Rating,
			Depth:    node.RemainingDepth,
			Bound:    bound,
		})
	}

	best.InvalidTTEntry = false
	return best
}

// searchMove plays priority.Move, recurses into the resulting child
// with the window and role inverted (negamax), and returns the result
// from this node's perspective with Move set to the move just played.
func (s *Searcher) searchMove(node *Node, priority MovePriority, window AlphaBeta) MoveRating {
	var childPos chess.Position
	node.Position.MakeMove(priority.Move, &childPos)

	var childRepetition = node.Repetition.Clone()
	childRepetition.Push(childPos.Hash())

	var childNode = Node{
		Position:       childPos,
		RemainingDepth: priority.SearchDepth,
		Level:          node.Level + 1,
		Repetition:     childRepetition,
	}

	var childResult = s.search(&childNode, window.childWindow())
	return MoveRating{
		Move:           priority.Move,
		Rating:         -childResult.Rating,
		InvalidTTEntry: childResult.InvalidTTEntry,
		HasCheckmate:   childResult.HasCheckmate,
		CheckmateLevel: childResult.CheckmateLevel,
	}
}
