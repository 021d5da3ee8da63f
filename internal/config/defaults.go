package config

import (
	_ "embed"

	"github.com/vovakirdan/mindgrid/internal/board"
)

//go:embed defaults/board.yaml
var defaultBoardYAML []byte

// DefaultBoardConfig returns the hard-coded board configuration.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{
		Size:            board.DefaultSize,
		SpawnFourChance: board.DefaultSpawnFourChance,
		Target:          2048,
		TickRate:        30,
	}
}
