// Package eval provides static position evaluation, the leaf rating a
// search node falls back to once it has no depth left to look further.
package eval

import "github.com/nullmove/negavote/internal/chess"

// Evaluator scores a position from the perspective of the side to move.
type Evaluator interface {
	Evaluate(pos *chess.Position) int
}

// Material is a straightforward piece-counting evaluator: no
// positional terms, just chess.PieceValue summed per side.
type Material struct{}

// NewMaterial returns a ready-to-use material evaluator.
func NewMaterial() *Material {
	return &Material{}
}

func (Material) Evaluate(p *chess.Position) int {
	var score = chess.PieceValue[chess.Pawn]*(chess.PopCount(p.Pawns&p.White)-chess.PopCount(p.Pawns&p.Black)) +
		chess.PieceValue[chess.Knight]*(chess.PopCount(p.Knights&p.White)-chess.PopCount(p.Knights&p.Black)) +
		chess.PieceValue[chess.Bishop]*(chess.PopCount(p.Bishops&p.White)-chess.PopCount(p.Bishops&p.Black)) +
		chess.PieceValue[chess.Rook]*(chess.PopCount(p.Rooks&p.White)-chess.PopCount(p.Rooks&p.Black)) +
		chess.PieceValue[chess.Queen]*(chess.PopCount(p.Queens&p.White)-chess.PopCount(p.Queens&p.Black))
	if !p.WhiteMove {
		score = -score
	}
	return score
}
