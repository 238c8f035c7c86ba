package search

import (
	"sort"

	"github.com/nullmove/negavote/internal/arena"
	"github.com/nullmove/negavote/internal/chess"
)

// threatOrder lists the piece types MoveOrdering checks for enemy
// threats against, most valuable first: a hanging queen is addressed
// before a hanging pawn.
var threatOrder = [...]int{chess.Queen, chess.Rook, chess.Bishop, chess.Knight, chess.Pawn}

// OrderMoves builds the move-ordering pipeline of spec.md §4.2: exchange
// rating sort, PV-to-front, threat/evasion partition, killer partition,
// and late-move-reduction trimming. moves is consumed to build the
// priority list and is not retained.
func OrderMoves(node *Node, moves []chess.Move, pvMove chess.Move, killers *arena.KillerRing) []MovePriority {
	var priorities = make([]MovePriority, len(moves))
	for i, m := range moves {
		priorities[i] = MovePriority{
			Move:           m,
			ExchangeRating: node.Position.StaticExchangeRating(m),
			SearchDepth:    node.RemainingDepth - 1,
		}
	}

	sort.Slice(priorities, func(i, j int) bool {
		return priorities[i].ExchangeRating > priorities[j].ExchangeRating
	})

	var pvOffset = 0
	if pvMove != chess.NoMove {
		for i, p := range priorities {
			if p.Move == pvMove {
				priorities[0], priorities[i] = priorities[i], priorities[0]
				pvOffset = 1
				break
			}
		}
	}

	var tail = priorities[pvOffset:]
	var evasionEnd = partitionEvasions(&node.Position, tail)
	var killerEnd = partitionKillers(tail[evasionEnd:], killers)

	if node.RemainingDepth-1 > 0 {
		var baseOffset = pvOffset + evasionEnd + killerEnd
		var likelyBadMoves = priorities[baseOffset:]
		for i := range likelyBadMoves {
			likelyBadMoves[i].trim(baseOffset + i)
		}
	}

	return priorities
}

// partitionEvasions stably moves, to the front of tail, any move that
// answers or evades a live enemy threat against one of our pieces —
// iterating threatened pieces from most to least valuable, per
// spec.md §4.2 step 4. It returns the length of the resulting front
// block.
func partitionEvasions(pos *chess.Position, tail []MovePriority) int {
	var ownPieces = pos.PiecesByColor(pos.WhiteMove)
	var enemySide = !pos.WhiteMove
	var frontEnd = 0

	var piecesByType = map[int]chess.Bitboard{
		chess.Queen:  pos.Queens,
		chess.Rook:   pos.Rooks,
		chess.Bishop: pos.Bishops,
		chess.Knight: pos.Knights,
		chess.Pawn:   pos.Pawns,
	}

	for _, pieceType := range threatOrder {
		for bb := piecesByType[pieceType] & ownPieces; bb != 0; bb &= bb - 1 {
			var square = chess.FirstOne(bb)
			var attackers = pos.CalcAttackers(square, enemySide)
			if attackers.Locations == 0 {
				continue
			}
			var attackedValue = chess.PieceValue[pieceType]
			frontEnd += stablePartition(tail[frontEnd:], func(mp MovePriority) bool {
				if mp.ExchangeRating >= attackedValue {
					return true
				}
				var dest = chess.SquareMask[mp.Move.To()]
				return (dest&attackers.Locations) != 0 || (dest&attackers.Rays) != 0
			})
		}
	}
	return frontEnd
}

// partitionKillers moves any move matching a live killer to the front
// of tail. An unstable in-place partition is permitted here. It
// returns the length of the resulting front block.
func partitionKillers(tail []MovePriority, killers *arena.KillerRing) int {
	if killers == nil {
		return 0
	}
	var i = 0
	for j := 0; j < len(tail); j++ {
		if killers.Contains(tail[j].Move) {
			tail[i], tail[j] = tail[j], tail[i]
			i++
		}
	}
	return i
}

// stablePartition reorders s in place so that every element for which
// pred is true comes first, preserving the relative order within each
// group, and returns how many elements satisfied pred.
func stablePartition(s []MovePriority, pred func(MovePriority) bool) int {
	var front = make([]MovePriority, 0, len(s))
	var back = make([]MovePriority, 0, len(s))
	for _, mp := range s {
		if pred(mp) {
			front = append(front, mp)
		} else {
			back = append(back, mp)
		}
	}
	copy(s, front)
	copy(s[len(front):], back)
	return len(front)
}
