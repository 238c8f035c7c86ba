package search

// childWindow derives the window a negamax child search sees: the
// board is same but roles are swapped, so alpha and beta invert sign
// and swap places.
func (ab AlphaBeta) childWindow() AlphaBeta {
	return AlphaBeta{Alpha: -ab.Beta, Beta: -ab.Alpha}
}

// raiseAlpha narrows the window after a child search improves on the
// current best, the way a maximiser raises its floor.
func (ab AlphaBeta) raiseAlpha(rating int) AlphaBeta {
	if rating > ab.Alpha {
		ab.Alpha = rating
	}
	return ab
}
