package board

// Cell is a single grid position.
type Cell struct {
	ID     uint64 `json:"id"`               // Unique within the engine, stable for the tile's lifetime
	Value  int    `json:"value"`            // 0 = empty, otherwise a power of two >= 2
	Locked bool   `json:"locked,omitempty"` // Excluded from moving, merging and spawning
}

// Empty reports whether the cell holds no tile.
func (c Cell) Empty() bool {
	return c.Value == 0
}

// Block places a locked cell at a flat row-major index on every reset.
// Value must be a power of two >= 2.
type Block struct {
	Index int `yaml:"index" json:"index"`
	Value int `yaml:"value" json:"value"`
}

// StepReport describes what the most recent step did. It is rebuilt from
// scratch on every call and exists to drive animation and feedback.
type StepReport struct {
	Direction Direction `json:"direction"`
	Stepped   bool      `json:"stepped"` // False until the first step after a reset
	Changed   bool      `json:"changed"`
	Gained    int       `json:"gained"`
	Spawned   []uint64  `json:"spawned,omitempty"`
	Merged    []uint64  `json:"merged,omitempty"`  // Identities consumed by merges
	Created   []uint64  `json:"created,omitempty"` // Identities of the merge results
}

// DidMerge reports whether any pair merged during the step.
func (r StepReport) DidMerge() bool {
	return len(r.Merged) > 0
}

// State is a restorable copy of the board and its session counters.
type State struct {
	Size  int    `json:"size"`
	Cells []Cell `json:"cells"`
	Score int    `json:"score"`
	Moves int    `json:"moves"`
}

func isTileValue(v int) bool {
	return v >= 2 && v&(v-1) == 0
}
