package main

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/nullmove/negavote/internal/chess"
)

// perftCases mirrors internal/chess's own perft_test.go coverage; kept
// here too since "test" is a standalone diagnostic entrypoint separate
// from `go test`, matching the original engine's runAllTests() command.
var perftCases = []struct {
	fen   string
	depth int
	nodes uint64
}{
	{chess.InitialPositionFEN, 1, 20},
	{chess.InitialPositionFEN, 2, 400},
	{chess.InitialPositionFEN, 3, 8902},
	{"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", 1, 48},
}

func perft(pos chess.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	var buf [chess.MaxMoves]chess.Move
	var moves = chess.GeneratePseudoLegalMoves(buf[:], &pos)
	var nodes uint64
	var child chess.Position
	for _, m := range moves {
		if pos.MakeMove(m, &child) {
			nodes += perft(child, depth-1)
		}
	}
	return nodes
}

func runSelfTest(logger zerolog.Logger) {
	var failures = 0
	for _, tc := range perftCases {
		var pos, err = chess.NewPositionFromFEN(tc.fen)
		if err != nil {
			logger.Error().Err(err).Str("fen", tc.fen).Msg("perft: invalid FEN")
			failures++
			continue
		}
		var start = time.Now()
		var got = perft(pos, tc.depth)
		var elapsed = time.Since(start)
		if got != tc.nodes {
			logger.Error().
				Str("fen", tc.fen).
				Int("depth", tc.depth).
				Uint64("want", tc.nodes).
				Uint64("got", got).
				Msg("perft mismatch")
			failures++
			continue
		}
		logger.Info().
			Str("fen", tc.fen).
			Int("depth", tc.depth).
			Uint64("nodes", got).
			Dur("elapsed", elapsed).
			Msg("perft ok")
	}

	if failures == 0 {
		logger.Info().Msg("all self-tests passed")
	} else {
		logger.Error().Int("failures", failures).Msg("self-tests failed")
	}
}
