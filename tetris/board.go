package tetris

// Cell is a single board square. Zero is empty, any other value is the
// color id of the piece that was locked there.
type Cell uint8

// Empty reports whether the cell is unoccupied.
func (c Cell) Empty() bool {
	return c == 0
}

// Board is a fixed rows x cols grid. Row 0 is the top.
type Board struct {
	rows  int
	cols  int
	cells [][]Cell
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(rows, cols int) *Board {
	b := &Board{
		rows:  rows,
		cols:  cols,
		cells: make([][]Cell, rows),
	}
	for i := range b.cells {
		b.cells[i] = make([]Cell, cols)
	}
	return b
}

// Rows returns the number of rows.
func (b *Board) Rows() int { return b.rows }

// Cols returns the number of columns.
func (b *Board) Cols() int { return b.cols }

// At returns the cell at (row, col). Out of range coordinates read as empty.
func (b *Board) At(row, col int) Cell {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return 0
	}
	return b.cells[row][col]
}

// Set writes a cell. Out of range coordinates are ignored.
func (b *Board) Set(row, col int, c Cell) {
	if row < 0 || row >= b.rows || col < 0 || col >= b.cols {
		return
	}
	b.cells[row][col] = c
}

// Cells returns a deep copy of the grid.
func (b *Board) Cells() [][]Cell {
	out := make([][]Cell, b.rows)
	for i, row := range b.cells {
		out[i] = make([]Cell, b.cols)
		copy(out[i], row)
	}
	return out
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	return &Board{
		rows:  b.rows,
		cols:  b.cols,
		cells: b.Cells(),
	}
}

// Clear empties every cell.
func (b *Board) Clear() {
	for _, row := range b.cells {
		clear(row)
	}
}

// IsEmpty reports whether no cell is occupied.
func (b *Board) IsEmpty() bool {
	for _, row := range b.cells {
		for _, c := range row {
			if !c.Empty() {
				return false
			}
		}
	}
	return true
}

// CanPlace reports whether shape fits with its bounding box origin at (x, y).
// Cells above the board (row < 0) are always passable so that pieces can
// spawn partially hidden.
func (b *Board) CanPlace(shape Shape, x, y int) bool {
	for dy, row := range shape {
		for dx, filled := range row {
			if !filled {
				continue
			}

			col := x + dx
			r := y + dy

			if col < 0 || col >= b.cols || r >= b.rows {
				return false
			}

			if r >= 0 && !b.cells[r][col].Empty() {
				return false
			}
		}
	}
	return true
}

// Merge writes the piece's occupied cells into the board using its color.
// Cells above the top row are dropped.
func (b *Board) Merge(p Piece) {
	color := p.Kind.Color()
	for dy, row := range p.Shape {
		for dx, filled := range row {
			if filled && p.Y+dy >= 0 {
				b.Set(p.Y+dy, p.X+dx, color)
			}
		}
	}
}

func (b *Board) rowComplete(r int) bool {
	for _, c := range b.cells[r] {
		if c.Empty() {
			return false
		}
	}
	return true
}

// ClearLines removes every complete row, shifting the rows above it down and
// inserting an empty row at the top. It returns the number of rows removed.
func (b *Board) ClearLines() int {
	cleared := 0

	for r := b.rows - 1; r >= 0; {
		if !b.rowComplete(r) {
			r--
			continue
		}

		removed := b.cells[r]
		copy(b.cells[1:r+1], b.cells[:r])
		clear(removed)
		b.cells[0] = removed
		cleared++
		// the row above now sits at r, so r is checked again
	}

	return cleared
}
