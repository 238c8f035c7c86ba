package chess

import "strings"

var (
	f1g1Mask Bitboard
	b1d1Mask Bitboard
	f8g8Mask Bitboard
	b8d8Mask Bitboard
)

var (
	whiteKingSideCastle  Move
	whiteQueenSideCastle Move
	blackKingSideCastle  Move
	blackQueenSideCastle Move
)

func init() {
	f1g1Mask = SquareMask[SquareF1] | SquareMask[SquareG1]
	b1d1Mask = SquareMask[SquareB1] | SquareMask[SquareC1] | SquareMask[SquareD1]
	f8g8Mask = SquareMask[SquareF8] | SquareMask[SquareG8]
	b8d8Mask = SquareMask[SquareB8] | SquareMask[SquareC8] | SquareMask[SquareD8]

	whiteKingSideCastle = makeMove(SquareE1, SquareG1, King, Empty)
	whiteQueenSideCastle = makeMove(SquareE1, SquareC1, King, Empty)
	blackKingSideCastle = makeMove(SquareE8, SquareG8, King, Empty)
	blackQueenSideCastle = makeMove(SquareE8, SquareC8, King, Empty)
}

func addPromotions(ml []Move, move Move) int {
	ml[0] = move ^ Move(Queen<<18)
	ml[1] = move ^ Move(Rook<<18)
	ml[2] = move ^ Move(Bishop<<18)
	ml[3] = move ^ Move(Knight<<18)
	return 4
}

// GeneratePseudoLegalMoves writes moves that obey piece movement rules
// but may leave the mover's own king in check into ml from index 0 and
// returns the filled prefix; callers must filter with MakeMove before
// trusting a move. When the side to move is in check, knight, bishop,
// rook and queen moves are only generated onto the checker's square or
// the squares between it and the king.
func GeneratePseudoLegalMoves(ml []Move, p *Position) []Move {
	var count = 0
	var ownPieces, oppPieces Bitboard
	if p.WhiteMove {
		ownPieces, oppPieces = p.White, p.Black
	} else {
		ownPieces, oppPieces = p.Black, p.White
	}

	var allPieces = p.AllPieces()
	var target = ^ownPieces
	if p.Checkers != 0 {
		var kingSq = FirstOne(p.Kings & ownPieces)
		target = p.Checkers | Between(FirstOne(p.Checkers), kingSq)
	}

	var ownPawns = p.Pawns & ownPieces

	if p.EpSquare != SquareNone {
		for fromBB := PawnAttacks(p.EpSquare, !p.WhiteMove) & ownPawns; fromBB != 0; fromBB &= fromBB - 1 {
			var from = FirstOne(fromBB)
			ml[count] = makeMove(from, p.EpSquare, Pawn, Pawn)
			count++
		}
	}

	if p.WhiteMove {
		for fromBB := p.Pawns & ownPieces &^ Rank7Mask; fromBB != 0; fromBB &= fromBB - 1 {
			var from = FirstOne(fromBB)
			if (SquareMask[from+8] & allPieces) == 0 {
				ml[count] = makeMove(from, from+8, Pawn, Empty)
				count++
				if Rank(from) == Rank2 && (SquareMask[from+16]&allPieces) == 0 {
					ml[count] = makeMove(from, from+16, Pawn, Empty)
					count++
				}
			}
			if File(from) > FileA && (SquareMask[from+7]&oppPieces) != 0 {
				ml[count] = makeMove(from, from+7, Pawn, p.WhatPiece(from+7))
				count++
			}
			if File(from) < FileH && (SquareMask[from+9]&oppPieces) != 0 {
				ml[count] = makeMove(from, from+9, Pawn, p.WhatPiece(from+9))
				count++
			}
		}
		for fromBB := p.Pawns & ownPieces & Rank7Mask; fromBB != 0; fromBB &= fromBB - 1 {
			var from = FirstOne(fromBB)
			if (SquareMask[from+8] & allPieces) == 0 {
				count += addPromotions(ml[count:], makeMove(from, from+8, Pawn, Empty))
			}
			if File(from) > FileA && (SquareMask[from+7]&oppPieces) != 0 {
				count += addPromotions(ml[count:], makeMove(from, from+7, Pawn, p.WhatPiece(from+7)))
			}
			if File(from) < FileH && (SquareMask[from+9]&oppPieces) != 0 {
				count += addPromotions(ml[count:], makeMove(from, from+9, Pawn, p.WhatPiece(from+9)))
			}
		}
	} else {
		for fromBB := p.Pawns & ownPieces &^ Rank2Mask; fromBB != 0; fromBB &= fromBB - 1 {
			var from = FirstOne(fromBB)
			if (SquareMask[from-8] & allPieces) == 0 {
				ml[count] = makeMove(from, from-8, Pawn, Empty)
				count++
				if Rank(from) == Rank7 && (SquareMask[from-16]&allPieces) == 0 {
					ml[count] = makeMove(from, from-16, Pawn, Empty)
					count++
				}
			}
			if File(from) > FileA && (SquareMask[from-9]&oppPieces) != 0 {
				ml[count] = makeMove(from, from-9, Pawn, p.WhatPiece(from-9))
				count++
			}
			if File(from) < FileH && (SquareMask[from-7]&oppPieces) != 0 {
				ml[count] = makeMove(from, from-7, Pawn, p.WhatPiece(from-7))
				count++
			}
		}
		for fromBB := p.Pawns & ownPieces & Rank2Mask; fromBB != 0; fromBB &= fromBB - 1 {
			var from = FirstOne(fromBB)
			if (SquareMask[from-8] & allPieces) == 0 {
				count += addPromotions(ml[count:], makeMove(from, from-8, Pawn, Empty))
			}
			if File(from) > FileA && (SquareMask[from-9]&oppPieces) != 0 {
				count += addPromotions(ml[count:], makeMove(from, from-9, Pawn, p.WhatPiece(from-9)))
			}
			if File(from) < FileH && (SquareMask[from-7]&oppPieces) != 0 {
				count += addPromotions(ml[count:], makeMove(from, from-7, Pawn, p.WhatPiece(from-7)))
			}
		}
	}

	for fromBB := p.Knights & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		for toBB := KnightAttacks[from] & target; toBB != 0; toBB &= toBB - 1 {
			var to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Knight, p.WhatPiece(to))
			count++
		}
	}

	for fromBB := p.Bishops & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		for toBB := BishopAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			var to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Bishop, p.WhatPiece(to))
			count++
		}
	}

	for fromBB := p.Rooks & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		for toBB := RookAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			var to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Rook, p.WhatPiece(to))
			count++
		}
	}

	for fromBB := p.Queens & ownPieces; fromBB != 0; fromBB &= fromBB - 1 {
		var from = FirstOne(fromBB)
		for toBB := QueenAttacks(from, allPieces) & target; toBB != 0; toBB &= toBB - 1 {
			var to = FirstOne(toBB)
			ml[count] = makeMove(from, to, Queen, p.WhatPiece(to))
			count++
		}
	}

	{
		var from = FirstOne(p.Kings & ownPieces)
		for toBB := KingAttacks[from] &^ ownPieces; toBB != 0; toBB &= toBB - 1 {
			var to = FirstOne(toBB)
			ml[count] = makeMove(from, to, King, p.WhatPiece(to))
			count++
		}

		if p.WhiteMove {
			if (p.CastleRights&WhiteKingSide) != 0 &&
				(allPieces&f1g1Mask) == 0 &&
				!p.isAttackedBySide(SquareE1, false) &&
				!p.isAttackedBySide(SquareF1, false) {
				ml[count] = whiteKingSideCastle
				count++
			}
			if (p.CastleRights&WhiteQueenSide) != 0 &&
				(allPieces&b1d1Mask) == 0 &&
				!p.isAttackedBySide(SquareE1, false) &&
				!p.isAttackedBySide(SquareD1, false) {
				ml[count] = whiteQueenSideCastle
				count++
			}
		} else {
			if (p.CastleRights&BlackKingSide) != 0 &&
				(allPieces&f8g8Mask) == 0 &&
				!p.isAttackedBySide(SquareE8, true) &&
				!p.isAttackedBySide(SquareF8, true) {
				ml[count] = blackKingSideCastle
				count++
			}
			if (p.CastleRights&BlackQueenSide) != 0 &&
				(allPieces&b8d8Mask) == 0 &&
				!p.isAttackedBySide(SquareE8, true) &&
				!p.isAttackedBySide(SquareD8, true) {
				ml[count] = blackQueenSideCastle
				count++
			}
		}
	}

	return ml[:count]
}

// LegalMoves returns every legal move from p; this is the interface the
// search's move ordering pipeline consumes.
func (p *Position) LegalMoves() []Move {
	var buffer [MaxMoves]Move
	var pseudo = GeneratePseudoLegalMoves(buffer[:], p)
	var result = make([]Move, 0, len(pseudo))
	var child Position
	for _, m := range pseudo {
		if p.MakeMove(m, &child) {
			result = append(result, m)
		}
	}
	return result
}

// MakeMoveLAN applies a move given in long algebraic notation (e.g. "e2e4"),
// used by the UCI "position ... moves ..." command.
func (p *Position) MakeMoveLAN(lan string) (Position, bool) {
	for _, m := range p.LegalMoves() {
		if strings.EqualFold(m.String(), lan) {
			var result Position
			if p.MakeMove(m, &result) {
				return result, true
			}
			return Position{}, false
		}
	}
	return Position{}, false
}

// IsCheckmate reports whether the side to move has no legal moves and is
// currently in check.
func (p *Position) IsCheckmate() bool {
	return p.Checkers != 0 && len(p.LegalMoves()) == 0
}

// IsStalemate reports whether the side to move has no legal moves and is
// not in check.
func (p *Position) IsStalemate() bool {
	return p.Checkers == 0 && len(p.LegalMoves()) == 0
}
