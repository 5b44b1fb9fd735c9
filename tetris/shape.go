package tetris

// Shape is the occupancy matrix of a piece inside its bounding box.
// Shapes are treated as immutable; Rotate returns a new matrix.
type Shape [][]bool

// Width returns the number of columns in the bounding box.
func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Height returns the number of rows in the bounding box.
func (s Shape) Height() int {
	return len(s)
}

// Rotate returns the shape turned by 90 degrees: the bounding matrix is
// transposed and its columns reversed, so a w x h box becomes h x w.
func (s Shape) Rotate() Shape {
	w, h := s.Width(), s.Height()
	rotated := make(Shape, w)
	for i := range w {
		rotated[i] = make([]bool, h)
		for j := range h {
			rotated[i][j] = s[j][w-1-i]
		}
	}
	return rotated
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for i := range s {
		out[i] = make([]bool, len(s[i]))
		copy(out[i], s[i])
	}
	return out
}

// Equal reports whether two shapes have the same dimensions and bit pattern.
func (s Shape) Equal(o Shape) bool {
	if s.Height() != o.Height() || s.Width() != o.Width() {
		return false
	}
	for i := range s {
		for j := range s[i] {
			if s[i][j] != o[i][j] {
				return false
			}
		}
	}
	return true
}

// Count returns the number of occupied cells.
func (s Shape) Count() int {
	n := 0
	for _, row := range s {
		for _, filled := range row {
			if filled {
				n++
			}
		}
	}
	return n
}

// ParseShape builds a shape from rows of '#' (occupied) and any other byte
// (empty). All rows must have the same length.
func ParseShape(rows ...string) Shape {
	s := make(Shape, len(rows))
	for i, row := range rows {
		s[i] = make([]bool, len(row))
		for j := range len(row) {
			s[i][j] = row[j] == '#'
		}
	}
	return s
}
