package main

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/nullmove/negavote/internal/chess"
)

const moveTimeBenchDepth = 5

// runMeasureMoveTime benchmarks move generation throughput from the
// starting position, grounded on the original engine's measureMoveTime.
func runMeasureMoveTime(logger zerolog.Logger) {
	var pos, err = chess.NewPositionFromFEN(chess.InitialPositionFEN)
	if err != nil {
		logger.Error().Err(err).Msg("could not parse starting position")
		return
	}

	var start = time.Now()
	var nodes = perft(pos, moveTimeBenchDepth)
	var elapsed = time.Since(start)

	var nodesPerSec = float64(nodes) / elapsed.Seconds()
	logger.Info().
		Int("depth", moveTimeBenchDepth).
		Uint64("nodes", nodes).
		Dur("elapsed", elapsed).
		Float64("nodes_per_sec", nodesPerSec).
		Msg("move generation benchmark")
}
