package chess

import "testing"

// https://www.chessprogramming.org/Perft_Results
func TestPerft(t *testing.T) {
	var tests = []struct {
		fen   string
		depth int
		nodes int
	}{
		{InitialPositionFEN, 1, 20},
		{InitialPositionFEN, 2, 400},
		{InitialPositionFEN, 3, 8902},
		{InitialPositionFEN, 4, 197281},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 2, 2039},
		{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 3, 97862},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 1, 14},
		{"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", 4, 43238},
	}
	for i, test := range tests {
		pos, err := NewPositionFromFEN(test.fen)
		if err != nil {
			t.Fatal(err)
		}
		var nodes = perft(&pos, test.depth)
		if nodes != test.nodes {
			t.Errorf("case %d (%s) depth %d: got %d nodes, want %d", i, test.fen, test.depth, nodes, test.nodes)
		}
	}
}

func perft(p *Position, depth int) int {
	if depth == 0 {
		return 1
	}
	var buffer [MaxMoves]Move
	var child Position
	var result = 0
	for _, move := range GeneratePseudoLegalMoves(buffer[:], p) {
		if p.MakeMove(move, &child) {
			result += perft(&child, depth-1)
		}
	}
	return result
}

func TestFENRoundTrip(t *testing.T) {
	var fens = []string{
		InitialPositionFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
	}
	for _, fen := range fens {
		pos, err := NewPositionFromFEN(fen)
		if err != nil {
			t.Fatal(err)
		}
		if got := pos.String(); got != fen {
			t.Errorf("round trip mismatch: got %q want %q", got, fen)
		}
	}
}

func TestNewPositionFromFENInvalid(t *testing.T) {
	if _, err := NewPositionFromFEN("not a fen"); err == nil {
		t.Error("expected error for malformed fen")
	}
}

func TestLegalMovesCount(t *testing.T) {
	pos, err := NewPositionFromFEN(InitialPositionFEN)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(pos.LegalMoves()); got != 20 {
		t.Errorf("initial position: got %d legal moves, want 20", got)
	}
}

func TestCheckmateDetection(t *testing.T) {
	// Fool's mate.
	pos, err := NewPositionFromFEN("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsCheckmate() {
		t.Error("expected checkmate")
	}
}

func TestZobristIncrementalMatchesFromScratch(t *testing.T) {
	pos, err := NewPositionFromFEN(InitialPositionFEN)
	if err != nil {
		t.Fatal(err)
	}
	for _, lan := range []string{"e2e4", "e7e5", "g1f3"} {
		next, ok := pos.MakeMoveLAN(lan)
		if !ok {
			t.Fatalf("move %s rejected as illegal", lan)
		}
		recomputed, err := NewPositionFromFEN(next.String())
		if err != nil {
			t.Fatal(err)
		}
		if next.Key != recomputed.Key {
			t.Errorf("incremental key %d does not match recomputed key %d after %s", next.Key, recomputed.Key, lan)
		}
		pos = next
	}
}

func TestCalcAttackers(t *testing.T) {
	pos, err := NewPositionFromFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	var set = pos.CalcAttackers(SquareE1, false)
	if set.Locations == 0 {
		t.Error("expected black rook to be detected attacking e1")
	}
	if (set.Locations & SquareMask[SquareE2]) == 0 {
		t.Error("expected e2 rook in attacker set")
	}
}
