// Package feedback turns move outcomes into fire-and-forget cues for
// whatever output the platform offers (logs, terminal bell).
package feedback

import "github.com/vovakirdan/mindgrid/internal/board"

// Cue is a single feedback event.
type Cue int

const (
	// Tap means the board changed.
	Tap Cue = iota
	// Merge means at least one merge happened.
	Merge
	// Blocked means a direction was applied but nothing moved.
	Blocked
	// GameOver means no move is left.
	GameOver
	// Target means the target tile was reached on this step.
	Target
)

var cueNames = [...]string{
	Tap:      "tap",
	Merge:    "merge",
	Blocked:  "blocked",
	GameOver: "game_over",
	Target:   "target",
}

func (c Cue) String() string {
	if c < 0 || int(c) >= len(cueNames) {
		return "unknown"
	}
	return cueNames[c]
}

// CuesFor derives the cues for one step. A report that never applied a
// direction yields nothing.
func CuesFor(report board.StepReport, canMove, targetHit bool) []Cue {
	if !report.Stepped {
		return nil
	}
	if !report.Changed {
		return []Cue{Blocked}
	}

	cues := []Cue{Tap}
	if report.DidMerge() {
		cues = append(cues, Merge)
	}
	if targetHit {
		cues = append(cues, Target)
	}
	if !canMove {
		cues = append(cues, GameOver)
	}
	return cues
}
