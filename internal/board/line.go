package board

// lineResult is the outcome of compacting one line.
type lineResult struct {
	cells   []Cell
	gained  int
	merged  []uint64
	created []uint64
}

// lineIndex maps position k of line i, read in move order, to a flat
// row-major index. Position 0 is always the edge the direction points to.
// Writing a line back uses the same mapping, so extraction and write-back
// are exact inverses.
func (e *Engine) lineIndex(dir Direction, i, k int) int {
	n := e.size
	switch dir {
	case Right:
		return i*n + (n - 1 - k)
	case Up:
		return k*n + i
	case Down:
		return (n-1-k)*n + i
	default:
		return i*n + k
	}
}

// extractLine reads line i of cells in move order.
func (e *Engine) extractLine(cells []Cell, dir Direction, i int) []Cell {
	line := make([]Cell, e.size)
	for k := range e.size {
		line[k] = cells[e.lineIndex(dir, i, k)]
	}
	return line
}

// writeLine stores a move-ordered line back into cells.
func (e *Engine) writeLine(cells []Cell, dir Direction, i int, line []Cell) {
	for k := range e.size {
		cells[e.lineIndex(dir, i, k)] = line[k]
	}
}

// compactLine slides and merges one line toward index 0.
//
// Movable tiles merge in a single greedy pass: a value merges with the tile
// immediately after it at most once, and a merged result never merges again
// in the same step ([2,2,2,2] -> [4,4]). The layout is compacted values,
// then empty padding, then the locked cells verbatim, cut or padded to the
// line length.
func (e *Engine) compactLine(line []Cell) lineResult {
	n := len(line)

	var movable, locked []Cell
	for _, c := range line {
		switch {
		case c.Locked:
			locked = append(locked, c)
		case c.Value != 0:
			movable = append(movable, c)
		}
	}

	var res lineResult
	out := make([]Cell, 0, n+len(locked))

	for i := 0; i < len(movable); {
		cur := movable[i]
		if i+1 < len(movable) && movable[i+1].Value == cur.Value {
			doubled := cur.Value * 2
			res.gained += doubled
			res.merged = append(res.merged, cur.ID, movable[i+1].ID)
			result := Cell{ID: e.newID(), Value: doubled}
			res.created = append(res.created, result.ID)
			out = append(out, result)
			i += 2
			continue
		}
		out = append(out, cur)
		i++
	}

	for len(out) < n-len(locked) {
		out = append(out, e.emptyCell())
	}
	out = append(out, locked...)
	if len(out) > n {
		out = out[:n]
	}
	for len(out) < n {
		out = append(out, e.emptyCell())
	}

	res.cells = out
	return res
}
