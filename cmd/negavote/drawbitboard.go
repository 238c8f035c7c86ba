package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"strconv"

	"github.com/rs/zerolog"
)

const squarePixels = 48

// setColor and clearColor match the original engine's bitboard dump.
var (
	setColor   = color.RGBA{R: 97, G: 10, B: 255, A: 255}
	clearColor = color.RGBA{R: 255, G: 255, B: 0, A: 255}
)

// runDrawBitboard renders a 64-bit board mask as an 8x8 PNG, one square
// per bit, rank 8 at the top and file a on the left. No corpus example
// carries an imaging dependency, so this stays on the standard library's
// image/png rather than reaching for a third-party graphics package.
func runDrawBitboard(logger zerolog.Logger, args []string) {
	if len(args) != 3 {
		logger.Error().Msg("draw_bitboard requires 3 arguments: [bitboard, base, filename]")
		return
	}

	var base, err = strconv.Atoi(args[1])
	if err != nil {
		logger.Error().Err(err).Msg("could not parse base argument")
		return
	}

	var bitboard, parseErr = strconv.ParseUint(args[0], base, 64)
	if parseErr != nil {
		logger.Error().Err(parseErr).Msg("could not parse bitboard argument")
		return
	}

	var filename = args[2]
	if err := drawBitboardImage(bitboard, filename); err != nil {
		logger.Error().Err(err).Str("filename", filename).Msg("could not write bitboard image")
		return
	}
	logger.Info().Str("filename", filename).Msg("wrote bitboard image")
}

func drawBitboardImage(bitboard uint64, filename string) error {
	var img = image.NewRGBA(image.Rect(0, 0, 8*squarePixels, 8*squarePixels))

	for rank := 0; rank < 8; rank++ {
		for file := 0; file < 8; file++ {
			var sq = (7-rank)*8 + file
			var c = clearColor
			if bitboard&(uint64(1)<<uint(sq)) != 0 {
				c = setColor
			}
			var x0, y0 = file * squarePixels, rank * squarePixels
			for y := y0; y < y0+squarePixels; y++ {
				for x := x0; x < x0+squarePixels; x++ {
					img.SetRGBA(x, y, c)
				}
			}
		}
	}

	var f, err = os.Create(filename)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	return png.Encode(f, img)
}
