package tetris

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindL
	KindJ
	KindS
	KindZ
)

// KindCount is the number of distinct tetrominoes.
const KindCount = 7

var kindNames = [KindCount]string{"I", "O", "T", "L", "J", "S", "Z"}

var spawnShapes = [KindCount]Shape{
	KindI: ParseShape("####"),
	KindO: ParseShape("##", "##"),
	KindT: ParseShape("###", ".#."),
	KindL: ParseShape("###", "#.."),
	KindJ: ParseShape("###", "..#"),
	KindS: ParseShape("##.", ".##"),
	KindZ: ParseShape(".##", "##."),
}

// Kinds returns all kinds in generator order.
func Kinds() []Kind {
	return []Kind{KindI, KindO, KindT, KindL, KindJ, KindS, KindZ}
}

func (k Kind) String() string {
	if int(k) >= KindCount {
		return "?"
	}
	return kindNames[k]
}

// Color returns the cell value written to the board when a piece of this
// kind locks.
func (k Kind) Color() Cell {
	return Cell(k) + 1
}

// Shape returns a fresh copy of the kind's spawn orientation.
func (k Kind) Shape() Shape {
	return spawnShapes[k].Clone()
}

// Piece is the falling tetromino: its current orientation and the board
// position of its bounding box origin.
type Piece struct {
	Kind  Kind
	Shape Shape
	X, Y  int
}

// NewPiece returns a piece of the given kind in spawn orientation,
// horizontally centered on a board with cols columns at row 0.
func NewPiece(kind Kind, cols int) Piece {
	shape := kind.Shape()
	return Piece{
		Kind:  kind,
		Shape: shape,
		X:     (cols - shape.Width()) / 2,
		Y:     0,
	}
}

// Color returns the piece's cell value.
func (p Piece) Color() Cell {
	return p.Kind.Color()
}

// Cells returns the absolute board coordinates (col, row) of every occupied
// cell.
func (p Piece) Cells() [][2]int {
	out := make([][2]int, 0, 4)
	for dy, row := range p.Shape {
		for dx, filled := range row {
			if filled {
				out = append(out, [2]int{p.X + dx, p.Y + dy})
			}
		}
	}
	return out
}

// Clone returns a copy whose shape does not alias p's.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}
