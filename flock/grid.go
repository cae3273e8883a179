package flock

// Grid buckets boid indices into uniform cells over the wrapped area so
// neighbor candidates can be found without scanning the whole flock.
// Cells are at least the requested size; queries wrap across edges.
type Grid struct {
	cellSize      float64
	cellW, cellH  float64
	cols, rows    int
	width, height float64
	cells         [][]int

	queryRadius float64
}

// NewGrid creates a grid covering width x height with cells no smaller than
// cellSize.
func NewGrid(width, height, cellSize float64) *Grid {
	cols := max(1, int(width/cellSize))
	rows := max(1, int(height/cellSize))

	cells := make([][]int, cols*rows)
	for i := range cells {
		cells[i] = make([]int, 0, 8)
	}

	return &Grid{
		cellSize: cellSize,
		cellW:    width / float64(cols),
		cellH:    height / float64(rows),
		cols:     cols,
		rows:     rows,
		width:    width,
		height:   height,
		cells:    cells,
	}
}

// fits reports whether the grid was built for these dimensions.
func (g *Grid) fits(width, height, cellSize float64) bool {
	return g.width == width && g.height == height && g.cellSize == cellSize
}

// CellSize returns the actual cell width and height.
func (g *Grid) CellSize() (w, h float64) {
	return g.cellW, g.cellH
}

// Clear removes all entries.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
}

// Insert adds index idx at the given position.
func (g *Grid) Insert(idx int, x, y float64) {
	cell := g.cellIndex(x, y)
	g.cells[cell] = append(g.cells[cell], idx)
}

// QueryInto appends to dst the indices stored in every cell that may hold a
// point within radius of (x, y), across the wrapped edges. Each index
// appears once; order is unspecified.
func (g *Grid) QueryInto(dst []int, x, y, radius float64) []int {
	colSpan := int(radius/g.cellW) + 1
	rowSpan := int(radius/g.cellH) + 1

	centerCol, centerRow := g.cellCoords(x, y)

	colFrom, colTo := -colSpan, colSpan
	if 2*colSpan+1 >= g.cols {
		colFrom, colTo = 0, g.cols-1
		centerCol = 0
	}
	rowFrom, rowTo := -rowSpan, rowSpan
	if 2*rowSpan+1 >= g.rows {
		rowFrom, rowTo = 0, g.rows-1
		centerRow = 0
	}

	for dc := colFrom; dc <= colTo; dc++ {
		col := ((centerCol+dc)%g.cols + g.cols) % g.cols
		for dr := rowFrom; dr <= rowTo; dr++ {
			row := ((centerRow+dr)%g.rows + g.rows) % g.rows
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	return dst
}

// cellIndex returns the flat index for a position.
func (g *Grid) cellIndex(x, y float64) int {
	col, row := g.cellCoords(x, y)
	return row*g.cols + col
}

// cellCoords returns the clamped cell column and row for a position.
func (g *Grid) cellCoords(x, y float64) (col, row int) {
	col = int(x / g.cellW)
	row = int(y / g.cellH)

	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}
	return col, row
}
