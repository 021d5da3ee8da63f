package mindgrid

import (
	"fmt"
	"strconv"

	"github.com/vovakirdan/mindgrid/internal/board"
	"github.com/vovakirdan/mindgrid/internal/core"
)

const (
	cellWidth  = 7 // Width of each cell (including left border)
	cellHeight = 2 // Height of each cell (including top border)
	hudHeight  = 3
)

// boardDims returns the drawn grid width and height for a side length.
func boardDims(size int) (w, h int) {
	return size*cellWidth + 1, size*cellHeight + 1
}

// tileColors cycles by exponent: 2, 4, 8, ...
var tileColors = []core.Color{
	core.ColorWhite,
	core.ColorYellow,
	core.ColorOrange,
	core.ColorRed,
	core.ColorMagenta,
	core.ColorBlue,
	core.ColorCyan,
	core.ColorGreen,
	core.ColorBrightYellow,
	core.ColorBrightRed,
	core.ColorBrightMagenta,
}

// TileColor returns the display color for a tile value.
func TileColor(v int) core.Color {
	if v < 2 {
		return core.ColorDefault
	}
	exp := 0
	for v > 2 {
		v >>= 1
		exp++
	}
	return tileColors[exp%len(tileColors)]
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.engine == nil {
		return
	}

	boardW, boardH := boardDims(g.cfg.Size)
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 1

	g.renderHUD(dst, boardX, boardW)
	g.renderGrid(dst, boardX, boardY)
	g.renderTiles(dst, boardX, boardY)
	g.renderOverlays(dst, boardX, boardY, boardW, boardH)
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

// renderHUD draws title, score, best, moves and max tile.
func (g *Game) renderHUD(dst *core.Screen, boardX, boardW int) {
	title := g.variant.Title
	dst.DrawTextColored(boardX+(boardW-len(title))/2, 0, title, core.ColorBrightWhite)

	scoreStr := fmt.Sprintf("Score: %d", g.engine.Score())
	dst.DrawText(boardX, 1, scoreStr)

	if g.tracker != nil {
		bestStr := fmt.Sprintf("Best: %d", g.tracker.Best())
		dst.DrawText(boardX+boardW-len(bestStr), 1, bestStr)
	}

	info := fmt.Sprintf("Moves: %d  Max: %d", g.engine.Moves(), g.engine.MaxValue())
	if g.cfg.Target > 0 {
		info += fmt.Sprintf("  Target: %d", g.cfg.Target)
	}
	infoX := max(boardX, boardX+(boardW-len(info))/2)
	color := core.ColorGray
	if g.targetHit {
		color = core.ColorBrightGreen
	}
	dst.DrawTextColored(infoX, 2, info, color)
}

// renderGrid draws the cell borders.
func (g *Game) renderGrid(dst *core.Screen, boardX, boardY int) {
	n := g.cfg.Size
	for y := range n + 1 {
		for x := range n + 1 {
			px := boardX + x*cellWidth
			py := boardY + y*cellHeight

			var corner rune
			switch {
			case y == 0 && x == 0:
				corner = '┌'
			case y == 0 && x == n:
				corner = '┐'
			case y == n && x == 0:
				corner = '└'
			case y == n && x == n:
				corner = '┘'
			case y == 0:
				corner = '┬'
			case y == n:
				corner = '┴'
			case x == 0:
				corner = '├'
			case x == n:
				corner = '┤'
			default:
				corner = '┼'
			}
			dst.Set(px, py, corner)

			if x < n {
				for i := 1; i < cellWidth; i++ {
					dst.Set(px+i, py, '─')
				}
			}
			if y < n {
				for i := 1; i < cellHeight; i++ {
					dst.Set(px, py+i, '│')
				}
			}
		}
	}
}

// renderTiles draws values. Tiles merged or spawned by the last move are
// marked so the change is visible without animation.
func (g *Game) renderTiles(dst *core.Screen, boardX, boardY int) {
	report := g.engine.LastReport()
	merged := idSet(report.Created)
	spawned := idSet(report.Spawned)

	n := g.cfg.Size
	for r := range n {
		for c := range n {
			cell := g.engine.Cell(r, c)
			cellX := boardX + c*cellWidth + 1
			cellY := boardY + r*cellHeight + 1

			if cell.Locked {
				g.renderLocked(dst, cellX, cellY, cell)
				continue
			}
			if cell.Value == 0 {
				continue
			}

			text := strconv.Itoa(cell.Value)
			color := TileColor(cell.Value)
			switch {
			case merged[cell.ID]:
				text = "*" + text
			case spawned[cell.ID]:
				color = core.ColorGray
			}
			padLeft := max(0, (cellWidth-1-len(text))/2)
			dst.DrawTextColored(cellX+padLeft, cellY, text, color)
		}
	}
}

func (g *Game) renderLocked(dst *core.Screen, x, y int, cell board.Cell) {
	for i := range cellWidth - 1 {
		dst.SetColored(x+i, y, '░', core.ColorGray)
	}
	if cell.Value == 0 {
		return
	}
	text := strconv.Itoa(cell.Value)
	padLeft := max(0, (cellWidth-1-len(text))/2)
	dst.DrawTextColored(x+padLeft, y, text, core.ColorGray)
}

func idSet(ids []uint64) map[uint64]bool {
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// renderOverlays draws game state overlays.
func (g *Game) renderOverlays(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	centerX := boardX + boardW/2
	centerY := boardY + boardH/2

	switch {
	case g.paused:
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
	case g.gameOver:
		maxStr := fmt.Sprintf("Max tile: %d", g.engine.MaxValue())
		g.drawOverlay(dst, centerX, centerY, "GAME OVER", maxStr, "Press R to restart")
	case g.targetHit:
		msg := fmt.Sprintf("Target %d reached! Keep going", g.cfg.Target)
		dst.DrawTextColored(centerX-len(msg)/2, boardY+boardH, msg, core.ColorBrightGreen)
	}
}

// drawOverlay draws a centered text overlay.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, len(line))
	}

	box := core.Rect{W: maxLen + 4, H: len(lines) + 2}
	box.X = centerX - box.W/2
	box.Y = centerY - box.H/2

	// Clear area behind overlay
	dst.DrawRect(box, ' ')
	dst.DrawBox(box)

	for i, line := range lines {
		dst.DrawTextColored(centerX-len(line)/2, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
