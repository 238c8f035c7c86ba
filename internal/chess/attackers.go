package chess

// AttackerSet reports, for one target square, which enemy pieces attack
// it and the squares a defender could interpose on to block a sliding
// attack. It is the boundary function move ordering's evasion partition
// consumes: a candidate move survives the evasion filter if its
// destination lands on Locations or on Rays.
type AttackerSet struct {
	Locations Bitboard
	Rays      Bitboard
}

// CalcAttackers finds every enemy piece (bySide to move from the
// opponent's perspective) attacking target, plus the blocking squares
// between each slider attacker and target.
func (p *Position) CalcAttackers(target int, bySide bool) AttackerSet {
	var occ = p.AllPieces()
	var attackers = p.attackersTo(target, occ) & p.PiecesByColor(bySide)

	var rays Bitboard
	for sliders := attackers & (p.Bishops | p.Rooks | p.Queens); sliders != 0; sliders &= sliders - 1 {
		var from = FirstOne(sliders)
		rays |= Between(from, target)
	}

	return AttackerSet{Locations: attackers, Rays: rays}
}
