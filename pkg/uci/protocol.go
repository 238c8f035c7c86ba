// Package uci implements the text command loop a chess GUI drives an
// engine through: position setup, search requests, and option
// configuration, wired to an internal/search.SearchThread.
package uci

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/nullmove/negavote/internal/arena"
	"github.com/nullmove/negavote/internal/chess"
	"github.com/nullmove/negavote/internal/eval"
	"github.com/nullmove/negavote/internal/search"
)

// Protocol owns one running engine instance: its search machinery,
// its advertised options, and the position the GUI last set.
type Protocol struct {
	name         string
	author       string
	version      string
	defaultDepth int

	log zerolog.Logger

	hashMB  int
	threads int
	options []Option

	table    *search.PositionTable
	arena    *arena.Arena
	ensemble *search.Ensemble
	thread   *search.SearchThread
}

// New builds a Protocol ready for Run. defaultDepth is used by `go`
// commands that omit an explicit depth.
func New(name, author, version string, defaultDepth int, logger zerolog.Logger) *Protocol {
	var p = &Protocol{
		name:         name,
		author:       author,
		version:      version,
		defaultDepth: defaultDepth,
		log:          logger,
		hashMB:       64,
		threads:      runtime.NumCPU(),
	}
	p.options = []Option{
		&IntOption{Name: "Hash", Min: 1, Max: 4096, Value: &p.hashMB},
		&IntOption{Name: "Threads", Min: 1, Max: 128, Value: &p.threads},
	}
	p.reset()
	return p
}

// reset (re)builds the search machinery from the current option
// values, discarding the transposition table and any position in
// progress. Called on startup and whenever Hash or Threads changes,
// since both require a table (and, for Threads, an ensemble) of a
// different size than the one already allocated.
func (p *Protocol) reset() {
	if p.thread != nil {
		p.thread.Close()
	}
	p.table = search.NewPositionTable(p.hashMB)
	p.arena = arena.New()
	p.ensemble = search.NewEnsemble(p.threads, p.table, eval.NewMaterial(), p.arena)
	p.thread = search.NewSearchThreadWithLogger(p.ensemble, p.onBestMove, p.log)

	p.setStartingPosition()
}

// newGame clears the existing transposition table and returns to the
// starting position, without tearing down and reallocating the search
// machinery the way reset does — `ucinewgame` doesn't change Hash or
// Threads, so the existing table/arena/ensemble/thread are still the
// right size, just stale.
func (p *Protocol) newGame() {
	p.table.Clear()
	p.setStartingPosition()
}

func (p *Protocol) setStartingPosition() {
	var initial, err = chess.NewPositionFromFEN(chess.InitialPositionFEN)
	if err != nil {
		panic(err)
	}
	var repetition = chess.NewRepetitionMap()
	repetition.Push(initial.Hash())
	p.thread.SetPosition(search.GameState{Position: initial, Repetition: repetition})
}

func (p *Protocol) onBestMove(move chess.Move) {
	fmt.Printf("bestmove %v\n", move.String())
	os.Stdout.Sync()
}

// Run reads UCI commands from stdin until "quit" or EOF, logging (and
// otherwise ignoring) malformed lines rather than aborting the loop.
func (p *Protocol) Run() {
	defer p.thread.Close()

	var scanner = bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		var line = scanner.Text()
		if line == "quit" {
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.handle(line); err != nil {
			p.log.Error().Err(err).Str("command", line).Msg("malformed UCI command")
		}
	}
}

func (p *Protocol) handle(line string) error {
	var fields = strings.Fields(line)
	var name = fields[0]
	var args = fields[1:]

	switch name {
	case "uci":
		return p.uciCommand()
	case "isready":
		fmt.Println("readyok")
		return nil
	case "setoption":
		return p.setOptionCommand(args)
	case "ucinewgame":
		p.newGame()
		return nil
	case "position":
		return p.positionCommand(args)
	case "go":
		return p.goCommand(args)
	case "stop":
		p.thread.Stop()
		return nil
	case "ponderhit":
		return nil
	default:
		return fmt.Errorf("unrecognized command %q", name)
	}
}

func (p *Protocol) uciCommand() error {
	fmt.Printf("id name %s %s\n", p.name, p.version)
	fmt.Printf("id author %s\n", p.author)
	for _, opt := range p.options {
		fmt.Println(opt.UciString())
	}
	fmt.Println("uciok")
	return nil
}

func (p *Protocol) setOptionCommand(args []string) error {
	// "name <Name> value <Value>"
	if len(args) < 4 {
		return errors.New("invalid setoption arguments")
	}
	var name, value = args[1], args[3]
	for _, opt := range p.options {
		if strings.EqualFold(opt.UciName(), name) {
			if err := opt.Set(value); err != nil {
				return err
			}
			if strings.EqualFold(name, "Hash") || strings.EqualFold(name, "Threads") {
				p.reset()
			}
			return nil
		}
	}
	return fmt.Errorf("unhandled option %q", name)
}

func (p *Protocol) positionCommand(args []string) error {
	if len(args) == 0 {
		return errors.New("missing position arguments")
	}

	var fen string
	var movesIndex = indexOf(args, "moves")
	switch args[0] {
	case "startpos":
		fen = chess.InitialPositionFEN
	case "fen":
		if movesIndex == -1 {
			fen = strings.Join(args[1:], " ")
		} else {
			fen = strings.Join(args[1:movesIndex], " ")
		}
	default:
		return errors.New("unknown position command")
	}

	var pos, err = chess.NewPositionFromFEN(fen)
	if err != nil {
		return err
	}

	var repetition = chess.NewRepetitionMap()
	repetition.Push(pos.Hash())
	if movesIndex >= 0 {
		for _, lan := range args[movesIndex+1:] {
			var next, ok = pos.MakeMoveLAN(lan)
			if !ok {
				return fmt.Errorf("illegal move %q", lan)
			}
			pos = next
			repetition.Push(pos.Hash())
		}
	}

	p.thread.SetPosition(search.GameState{Position: pos, Repetition: repetition})
	return nil
}

func (p *Protocol) goCommand(args []string) error {
	var depth = p.defaultDepth
	for i := 0; i < len(args); i++ {
		if args[i] == "depth" && i+1 < len(args) {
			var d, err = strconv.Atoi(args[i+1])
			if err != nil {
				return err
			}
			depth = d
			i++
		}
	}
	if depth < 1 {
		depth = 1
	}
	p.thread.Go(depth)
	return nil
}

func indexOf(args []string, value string) int {
	for i, a := range args {
		if a == value {
			return i
		}
	}
	return -1
}
