package chess

// StaticExchangeRating estimates the material result of the capture
// sequence started by move on its destination square, without
// generating or making any moves. Positive means the exchange favours
// the side making move.
func (p *Position) StaticExchangeRating(move Move) int {
	var piece = move.MovingPiece()
	var score = 0
	if move.CapturedPiece() != Empty {
		score += PieceValue[move.CapturedPiece()]
	}
	if promotion := move.Promotion(); promotion != Empty {
		piece = promotion
		score += PieceValue[promotion] - PieceValue[Pawn]
	}
	var occ = (p.White | p.Black) &^ SquareMask[move.From()]
	score -= seeExchange(p, !p.WhiteMove, move.To(), occ, piece)
	return score
}

func seeAttackersTo(p *Position, to int, bySide bool, occ Bitboard) Bitboard {
	var att = (PawnAttacks(to, !bySide) & p.Pawns) |
		(KnightAttacks[to] & p.Knights) |
		(KingAttacks[to] & p.Kings) |
		(BishopAttacks(to, occ) & (p.Bishops | p.Queens)) |
		(RookAttacks(to, occ) & (p.Rooks | p.Queens))
	return p.PiecesByColor(bySide) & att & occ
}

func seeLeastValuableAttacker(p *Position, to int, bySide bool, occ Bitboard) (piece, from int) {
	piece, from = Empty, SquareNone
	var best = PieceValue[King] + 1
	for att := seeAttackersTo(p, to, bySide, occ); att != 0; att &= att - 1 {
		var sq = FirstOne(att)
		var pc = p.WhatPiece(sq)
		if PieceValue[pc] < best {
			piece, from, best = pc, sq, PieceValue[pc]
		}
	}
	return
}

// seeExchange recursively resolves the exchange on `to`, returning the
// best score bySide can force by continuing to capture there.
func seeExchange(p *Position, bySide bool, to int, occ Bitboard, capturedPiece int) int {
	var piece, from = seeLeastValuableAttacker(p, to, bySide, occ)
	if from == SquareNone {
		return 0
	}
	var gain = PieceValue[capturedPiece]
	if capturedPiece != King {
		gain -= seeExchange(p, !bySide, to, occ&^SquareMask[from], piece)
	}
	if gain < 0 {
		return 0
	}
	return gain
}
