package chess

// Move packs a legal or pseudo-legal chess move into a 32-bit value:
// from(6) | to(6) | movingPiece(3) | capturedPiece(3) | promotion(3).
type Move int32

// NoMove is the sentinel value representing "no move" (a1a1 encoding
// cannot occur since a piece never moves to its own square).
const NoMove Move = 0

func makeMove(from, to, movingPiece, capturedPiece int) Move {
	return Move(from ^ (to << 6) ^ (movingPiece << 12) ^ (capturedPiece << 15))
}

func makePawnMove(from, to, capturedPiece, promotion int) Move {
	return Move(from ^ (to << 6) ^ (Pawn << 12) ^ (capturedPiece << 15) ^ (promotion << 18))
}

func (m Move) From() int          { return int(m & 63) }
func (m Move) To() int            { return int((m >> 6) & 63) }
func (m Move) MovingPiece() int   { return int((m >> 12) & 7) }
func (m Move) CapturedPiece() int { return int((m >> 15) & 7) }
func (m Move) Promotion() int     { return int((m >> 18) & 7) }

// String returns the UCI long algebraic representation, e.g. "e2e4", "a7a8q".
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	var sPromotion = ""
	if m.Promotion() != Empty {
		sPromotion = string("nbrq"[m.Promotion()-Knight])
	}
	return SquareName(m.From()) + SquareName(m.To()) + sPromotion
}
