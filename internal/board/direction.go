// Package board implements the tile-merging board engine: an N×N grid of
// identified cells that slides, merges and spawns tiles in response to
// directional steps.
//
// The engine is pure and synchronous. It has a single owner and does no
// locking; callers sharing an Engine across goroutines must guard it.
package board

// Direction is the edge a step moves tiles toward.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in a stable order.
var Directions = [...]Direction{Left, Right, Up, Down}

// String returns a human-readable name for the direction.
func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// ParseDirection maps a name produced by String back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	for _, d := range Directions {
		if d.String() == s {
			return d, true
		}
	}
	return Left, false
}
