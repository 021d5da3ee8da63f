package board

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/mindgrid/internal/core"
)

// Size limits for the grid side length.
const (
	MinSize     = 2
	MaxSize     = 8
	DefaultSize = 4
)

// DefaultSpawnFourChance is the probability that a spawned tile is a 4.
const DefaultSpawnFourChance = 0.15

// Engine owns an N×N board, its score and move counters, and the report of
// the last step.
type Engine struct {
	size   int
	cells  []Cell
	score  int
	moves  int
	report StepReport

	rng       *rand.Rand
	spawnFour float64
	blocks    []Block
	nextID    uint64
}

// Option customizes an Engine.
type Option func(*Engine)

// WithRand injects the random source used for spawning.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

// WithSeed seeds a fresh random source.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

// WithSpawnFourChance sets the probability of spawning a 4 instead of a 2.
func WithSpawnFourChance(p float64) Option {
	return func(e *Engine) {
		e.spawnFour = core.ClampF(p, 0, 1)
	}
}

// WithBlocks places locked cells on every reset. Blocks outside the grid or
// with a value that is not a power of two >= 2 are ignored.
func WithBlocks(blocks ...Block) Option {
	return func(e *Engine) {
		e.blocks = append(e.blocks[:0], blocks...)
	}
}

// New creates an engine with the given side length and resets it.
func New(size int, opts ...Option) *Engine {
	e := &Engine{
		spawnFour: DefaultSpawnFourChance,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	e.Configure(size)
	return e
}

// Configure clamps size into [MinSize, MaxSize], discards the board and
// resets.
func (e *Engine) Configure(size int) {
	e.size = core.Clamp(size, MinSize, MaxSize)
	e.Reset()
}

// Reset clears the counters and the step report, empties the grid, places
// configured blocks and spawns two tiles.
func (e *Engine) Reset() {
	e.score = 0
	e.moves = 0
	e.report = StepReport{}

	e.cells = make([]Cell, e.size*e.size)
	for i := range e.cells {
		e.cells[i] = e.emptyCell()
	}
	for _, b := range e.blocks {
		if b.Index < 0 || b.Index >= len(e.cells) {
			continue
		}
		if !isTileValue(b.Value) {
			continue
		}
		e.cells[b.Index] = Cell{ID: e.newID(), Value: b.Value, Locked: true}
	}

	e.report.Spawned = e.spawn(2)
}

// Step moves every tile toward dir, merges equal neighbours and, if any
// value changed, spawns one tile and counts the move. The board is fully
// settled when Step returns; the returned report is also kept as
// LastReport.
func (e *Engine) Step(dir Direction) StepReport {
	before := e.Values()

	work := make([]Cell, len(e.cells))
	copy(work, e.cells)

	report := StepReport{Direction: dir, Stepped: true}
	for i := range e.size {
		res := e.compactLine(e.extractLine(work, dir, i))
		e.writeLine(work, dir, i, res.cells)
		report.Gained += res.gained
		report.Merged = append(report.Merged, res.merged...)
		report.Created = append(report.Created, res.created...)
	}

	for i, c := range work {
		if c.Value != before[i] {
			report.Changed = true
			break
		}
	}

	if report.Changed {
		e.cells = work
		e.score += report.Gained
		e.moves++
		report.Spawned = e.spawn(1)
	} else {
		report.Gained = 0
		report.Merged = nil
		report.Created = nil
	}

	e.report = report
	return report
}

// CanMove reports whether the board is not in a terminal state: some cell
// is empty, or two orthogonally adjacent cells hold equal values. Locked
// cells take part in the adjacency check even though they never merge.
func (e *Engine) CanMove() bool {
	for _, c := range e.cells {
		if c.Value == 0 {
			return true
		}
	}
	n := e.size
	for r := range n {
		for c := range n {
			v := e.cells[r*n+c].Value
			if c+1 < n && v == e.cells[r*n+c+1].Value {
				return true
			}
			if r+1 < n && v == e.cells[(r+1)*n+c].Value {
				return true
			}
		}
	}
	return false
}

// MaxValue returns the largest value on the board, 0 when empty.
func (e *Engine) MaxValue() int {
	maxVal := 0
	for _, c := range e.cells {
		if c.Value > maxVal {
			maxVal = c.Value
		}
	}
	return maxVal
}

// Sum returns the total of all cell values.
func (e *Engine) Sum() int {
	total := 0
	for _, c := range e.cells {
		total += c.Value
	}
	return total
}

// Size returns the grid side length.
func (e *Engine) Size() int {
	return e.size
}

// Score returns the sum of merge outputs since the last reset.
func (e *Engine) Score() int {
	return e.score
}

// Moves returns the number of changing steps since the last reset.
func (e *Engine) Moves() int {
	return e.moves
}

// Cells returns a copy of the grid in row-major order.
func (e *Engine) Cells() []Cell {
	out := make([]Cell, len(e.cells))
	copy(out, e.cells)
	return out
}

// Values returns the cell values in row-major order.
func (e *Engine) Values() []int {
	out := make([]int, len(e.cells))
	for i, c := range e.cells {
		out[i] = c.Value
	}
	return out
}

// Cell returns the cell at row r, column c.
func (e *Engine) Cell(r, c int) Cell {
	return e.cells[r*e.size+c]
}

// LastReport returns the report of the most recent step or reset.
func (e *Engine) LastReport() StepReport {
	r := e.report
	r.Spawned = append([]uint64(nil), r.Spawned...)
	r.Merged = append([]uint64(nil), r.Merged...)
	r.Created = append([]uint64(nil), r.Created...)
	return r
}

// State returns a restorable copy of the board and counters.
func (e *Engine) State() State {
	return State{
		Size:  e.size,
		Cells: e.Cells(),
		Score: e.score,
		Moves: e.moves,
	}
}

// Restore replaces the board with a previously captured state. Cell
// identities are reissued so they stay unique within this engine.
func (e *Engine) Restore(s State) error {
	if s.Size < MinSize || s.Size > MaxSize {
		return fmt.Errorf("board: size %d out of range [%d, %d]", s.Size, MinSize, MaxSize)
	}
	if len(s.Cells) != s.Size*s.Size {
		return fmt.Errorf("board: %d cells do not fill a %dx%d grid", len(s.Cells), s.Size, s.Size)
	}
	if s.Score < 0 || s.Moves < 0 {
		return fmt.Errorf("board: negative counters (score %d, moves %d)", s.Score, s.Moves)
	}

	cells := make([]Cell, len(s.Cells))
	for i, c := range s.Cells {
		if c.Value != 0 && !isTileValue(c.Value) {
			return fmt.Errorf("board: cell %d holds %d, not a power of two", i, c.Value)
		}
		if c.Locked && c.Value == 0 {
			return fmt.Errorf("board: cell %d is locked but empty", i)
		}
		cells[i] = Cell{ID: e.newID(), Value: c.Value, Locked: c.Locked}
	}

	e.size = s.Size
	e.cells = cells
	e.score = s.Score
	e.moves = s.Moves
	e.report = StepReport{}
	return nil
}

// spawn places up to count tiles on random empty, unlocked cells and
// returns their identities. A full board stops spawning silently.
func (e *Engine) spawn(count int) []uint64 {
	var spawned []uint64
	for range count {
		var empties []int
		for i, c := range e.cells {
			if c.Value == 0 && !c.Locked {
				empties = append(empties, i)
			}
		}
		if len(empties) == 0 {
			break
		}

		idx := empties[e.rng.Intn(len(empties))]
		value := 2
		if e.rng.Float64() < e.spawnFour {
			value = 4
		}

		id := e.newID()
		e.cells[idx] = Cell{ID: id, Value: value}
		spawned = append(spawned, id)
	}
	return spawned
}

func (e *Engine) newID() uint64 {
	e.nextID++
	return e.nextID
}

func (e *Engine) emptyCell() Cell {
	return Cell{ID: e.newID()}
}
