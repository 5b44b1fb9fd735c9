package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/blockfall/tetris"
)

var palette = [tetris.KindCount + 1]color.RGBA{
	{0, 0, 0, 0},
	{0x00, 0xf0, 0xf0, 0xff}, // I
	{0xf0, 0xf0, 0x00, 0xff}, // O
	{0xf0, 0x00, 0xf0, 0xff}, // T
	{0xf0, 0xa0, 0x00, 0xff}, // L
	{0x00, 0x00, 0xf0, 0xff}, // J
	{0x00, 0xf0, 0x00, 0xff}, // S
	{0xf0, 0x00, 0x00, 0xff}, // Z
}

var (
	gridColor  = color.RGBA{0x40, 0x40, 0x40, 0xff}
	ghostColor = color.RGBA{0xff, 0xff, 0xff, 0x50}
)

func cellColor(c tetris.Cell) color.RGBA {
	if int(c) >= len(palette) {
		return color.RGBA{0xff, 0xff, 0xff, 0xff}
	}
	return palette[c]
}

func drawCell(dst *ebiten.Image, ox, oy, col, row int, clr color.Color) {
	x := float32(ox + col*cellSize)
	y := float32(oy + row*cellSize)
	vector.DrawFilledRect(dst, x, y, cellSize, cellSize, clr, false)
	vector.StrokeRect(dst, x, y, cellSize, cellSize, 1, color.Black, false)
}

func drawPiece(dst *ebiten.Image, ox, oy int, p tetris.Piece, clr color.Color) {
	for _, c := range p.Cells() {
		if c[1] < 0 {
			continue
		}
		drawCell(dst, ox, oy, c[0], c[1], clr)
	}
}

func drawBoard(dst *ebiten.Image, snap tetris.Snapshot, rows, cols int) {
	vector.StrokeRect(dst, margin-2, margin-2, float32(cols*cellSize+4), float32(rows*cellSize+4), 1, gridColor, false)

	for r, row := range snap.Board {
		for c, cell := range row {
			if !cell.Empty() {
				drawCell(dst, margin, margin, c, r, cellColor(cell))
			}
		}
	}

	if snap.Status == tetris.StatusIdle {
		return
	}
	if snap.Status != tetris.StatusOver {
		drawPiece(dst, margin, margin, snap.Ghost, ghostColor)
	}
	drawPiece(dst, margin, margin, snap.Current, cellColor(snap.Current.Color()))
}

func drawSidebar(dst *ebiten.Image, snap tetris.Snapshot, cols int) {
	x := margin*2 + cols*cellSize
	y := margin

	ebitenutil.DebugPrintAt(dst, "NEXT", x, y)
	next := snap.Next
	next.X, next.Y = 0, 0
	drawPiece(dst, x, y+16, next, cellColor(next.Color()))

	y += 16 + 4*cellSize
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("SCORE %d", snap.Score), x, y)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("LEVEL %d", snap.Level), x, y+16)
	ebitenutil.DebugPrintAt(dst, fmt.Sprintf("LINES %d", snap.Lines), x, y+32)
	ebitenutil.DebugPrintAt(dst, snap.Difficulty, x, y+48)

	y += 72
	for i, kind := range tetris.Kinds() {
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("%s %3d", kind, snap.Counts[kind]), x, y+i*14)
	}

	switch snap.Status {
	case tetris.StatusPaused:
		ebitenutil.DebugPrintAt(dst, "PAUSED", margin+8, margin+8)
	case tetris.StatusOver:
		ebitenutil.DebugPrintAt(dst, "GAME OVER", margin+8, margin+8)
		ebitenutil.DebugPrintAt(dst, fmt.Sprintf("score %d", snap.Score), margin+8, margin+24)
		ebitenutil.DebugPrintAt(dst, "ENTER restarts", margin+8, margin+40)
	}
}
