// Command negavote is the engine's entrypoint: UCI mode by default, plus
// a handful of peripheral diagnostic subcommands inherited from the
// original engine's command-line surface.
package main

import (
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/nullmove/negavote/pkg/uci"
)

const (
	engineName    = "negavote"
	engineAuthor  = "Alex Marlowe"
	engineVersion = "1.0"
	defaultDepth  = 8
)

func main() {
	var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if len(os.Args) < 2 {
		runUCI(logger, defaultDepth)
		return
	}

	switch os.Args[1] {
	case "uci":
		var depth = defaultDepth
		if len(os.Args) > 2 {
			var d, err = strconv.Atoi(os.Args[2])
			if err != nil {
				logger.Error().Err(err).Msg("could not parse depth argument")
				os.Exit(1)
			}
			if d < 1 {
				logger.Error().Msg("depth must be at least 1")
				os.Exit(1)
			}
			depth = d
		}
		runUCI(logger, depth)
	case "test":
		runSelfTest(logger)
	case "draw_bitboard":
		runDrawBitboard(logger, os.Args[2:])
	case "generate_bmi_table":
		runGenerateAttackTableReport(logger)
	case "measure_move_time":
		runMeasureMoveTime(logger)
	case "help":
		printUsage()
	default:
		logger.Error().Str("command", os.Args[1]).Msg("unrecognized command")
		printUsage()
		os.Exit(1)
	}
}

func runUCI(logger zerolog.Logger, depth int) {
	var p = uci.New(engineName, engineAuthor, engineVersion, depth, logger)
	p.Run()
}

func printUsage() {
	println("Options:")
	println("(none)\t\t\t\t\t\t- Start the engine in UCI mode (default depth = 8)")
	println("uci [depth]\t\t\t\t\t- Start the engine in UCI mode with specified depth")
	println("test\t\t\t\t\t\t- Run move generation (perft) self-checks")
	println("draw_bitboard [bitboard, base, filename]\t- Draw a bitboard as a PNG image")
	println("generate_bmi_table\t\t\t\t- Report sliding-piece attack table sizes")
	println("measure_move_time\t\t\t\t- Benchmark move generation throughput")
}
