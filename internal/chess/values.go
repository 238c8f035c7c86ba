package chess

// PieceValue gives the material worth of each piece type in centipawns,
// indexed by piece type constant (Empty, Pawn, Knight, ...). It backs
// both static evaluation and static exchange evaluation so the two
// stay on a comparable scale.
var PieceValue = [...]int{0, 100, 400, 400, 600, 1200, 20000}
