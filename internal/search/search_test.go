package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nullmove/negavote/internal/arena"
	"github.com/nullmove/negavote/internal/chess"
	"github.com/nullmove/negavote/internal/eval"
)

func newTestArena(t *testing.T) *arena.Arena {
	t.Helper()
	var a = arena.New()
	a.RegisterThread(0)
	return a
}

func newTestEnsemble(t *testing.T, size int) *Ensemble {
	t.Helper()
	var table = NewPositionTable(1)
	var a = arena.New()
	return NewEnsemble(size, table, eval.NewMaterial(), a)
}

func mustFEN(t *testing.T, fen string) chess.Position {
	t.Helper()
	var pos, err = chess.NewPositionFromFEN(fen)
	require.NoError(t, err)
	return pos
}

func TestFindBestMoveStartingPositionDepthOne(t *testing.T) {
	var ens = newTestEnsemble(t, 2)
	var pos = mustFEN(t, chess.InitialPositionFEN)
	var move, ok = ens.FindBestMove(context.Background(), pos, 1, chess.NewRepetitionMap())
	require.True(t, ok)
	require.NotEqual(t, chess.NoMove, move)

	var legal = pos.LegalMoves()
	require.Len(t, legal, 20)
	require.Contains(t, legal, move)
}

func TestFindBestMoveSingleLegalMove(t *testing.T) {
	// Black king boxed in check with exactly one legal reply: Kh7.
	var pos = mustFEN(t, "R6k/8/5K2/8/8/8/8/8 b - - 0 1")
	var legal = pos.LegalMoves()
	require.Len(t, legal, 1)

	var ens = newTestEnsemble(t, 2)
	var move, ok = ens.FindBestMove(context.Background(), pos, 3, chess.NewRepetitionMap())
	require.True(t, ok)
	require.Equal(t, legal[0], move)
}

func TestFindBestMoveBackRankMateInOne(t *testing.T) {
	// White to move, Ra8# available.
	var pos = mustFEN(t, "6k1/5ppp/8/8/8/8/8/R3K3 w - - 0 1")
	var ens = newTestEnsemble(t, 2)
	var move, ok = ens.FindBestMove(context.Background(), pos, 3, chess.NewRepetitionMap())
	require.True(t, ok)

	var child chess.Position
	require.True(t, pos.MakeMove(move, &child))
	require.True(t, child.IsCheckmate())
}

func TestFindBestMoveStalemateReturnsNone(t *testing.T) {
	// Black to move, stalemated.
	var pos = mustFEN(t, "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.True(t, pos.IsStalemate())

	var ens = newTestEnsemble(t, 2)
	var _, ok = ens.FindBestMove(context.Background(), pos, 3, chess.NewRepetitionMap())
	require.False(t, ok)
}

func TestFindBestMoveWithRepetitionHistory(t *testing.T) {
	// Black (king and queen against a lone king) to move, with the current
	// position already recorded once in the game history: the search must
	// still return a move.
	var pos = mustFEN(t, "k7/8/1K6/8/8/8/8/7q b - - 0 1")
	var repetition = chess.NewRepetitionMap()
	repetition.Push(pos.Hash())

	var ens = newTestEnsemble(t, 1)
	var move, ok = ens.FindBestMove(context.Background(), pos, 2, repetition)
	require.True(t, ok)
	require.NotEqual(t, chess.NoMove, move)
}

func TestFindBestMoveCancellation(t *testing.T) {
	var pos = mustFEN(t, chess.InitialPositionFEN)
	var ens = newTestEnsemble(t, 2)

	var ctx, cancel = context.WithCancel(context.Background())
	cancel()
	var move, ok = ens.FindBestMove(ctx, pos, 4, chess.NewRepetitionMap())
	if ok {
		require.NotEqual(t, chess.NoMove, move)
	}
}

func TestOrderMovesPermutationAndPVFirst(t *testing.T) {
	var pos = mustFEN(t, chess.InitialPositionFEN)
	var legal = pos.LegalMoves()
	var node = &Node{Position: pos, RemainingDepth: 3, Level: 0, Repetition: chess.NewRepetitionMap()}
	var pv = legal[len(legal)-1]
	var killers = newTestArena(t).Killers(0, 0)
	var priorities = OrderMoves(node, legal, pv, killers)

	require.Len(t, priorities, len(legal))
	require.Equal(t, pv, priorities[0].Move)

	var seen = map[chess.Move]bool{}
	for _, p := range priorities {
		seen[p.Move] = true
	}
	for _, m := range legal {
		require.True(t, seen[m])
	}
}

func TestVoteForBestMovePrefersShortestMate(t *testing.T) {
	var slow = chess.Move(1)
	var fast = chess.Move(2)
	var results = []searcherResult{
		{MoveRating: MoveRating{Move: slow, Rating: WinIn(4), HasCheckmate: true, CheckmateLevel: 4}, depth: 5},
		{MoveRating: MoveRating{Move: fast, Rating: WinIn(2), HasCheckmate: true, CheckmateLevel: 2}, depth: 5},
	}
	require.Equal(t, fast, voteForBestMove(results))
}

func TestVoteForBestMoveWeightsByDepthAndScore(t *testing.T) {
	var a = chess.Move(1)
	var b = chess.Move(2)
	var results = []searcherResult{
		{MoveRating: MoveRating{Move: a, Rating: 100}, depth: 8},
		{MoveRating: MoveRating{Move: b, Rating: -50}, depth: 4},
	}
	require.Equal(t, a, voteForBestMove(results))
}

func TestPositionTableLookupMiss(t *testing.T) {
	var table = NewPositionTable(1)
	var pos = mustFEN(t, chess.InitialPositionFEN)
	var _, ok = table.Lookup(&pos)
	require.False(t, ok)
}

func TestPositionTableStoreAndLookup(t *testing.T) {
	var table = NewPositionTable(1)
	var pos = mustFEN(t, chess.InitialPositionFEN)
	var legal = pos.LegalMoves()
	table.Store(&pos, PositionEntry{BestMove: legal[0], Rating: 25, Depth: 4, Bound: InWindow})

	var entry, ok = table.Lookup(&pos)
	require.True(t, ok)
	require.Equal(t, legal[0], entry.BestMove)
	require.Equal(t, 25, entry.Rating)
	require.Equal(t, InWindow, entry.Bound)
}

