// Package config provides YAML-based board configuration loading.
package config

import (
	"github.com/vovakirdan/mindgrid/internal/board"
	"github.com/vovakirdan/mindgrid/internal/core"
)

// BoardConfig contains all configuration for a board run.
type BoardConfig struct {
	Size            int           `yaml:"size"`
	SpawnFourChance float64       `yaml:"spawn_four_chance"` // 0.0-1.0
	Target          int           `yaml:"target"`            // Tile shown as the goal; 0 disables
	TickRate        int           `yaml:"tick_rate"`         // UI ticks per second
	Blocks          []board.Block `yaml:"blocks"`
}

// Normalize clamps every field into its valid range in place.
func (c *BoardConfig) Normalize() {
	c.Size = core.Clamp(c.Size, board.MinSize, board.MaxSize)
	c.SpawnFourChance = core.ClampF(c.SpawnFourChance, 0, 1)
	if c.Target < 0 {
		c.Target = 0
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultBoardConfig().TickRate
	}
	c.TickRate = core.Clamp(c.TickRate, 1, 120)
}

// EngineOptions converts the config into board engine options.
func (c BoardConfig) EngineOptions() []board.Option {
	opts := []board.Option{board.WithSpawnFourChance(c.SpawnFourChance)}
	if len(c.Blocks) > 0 {
		opts = append(opts, board.WithBlocks(c.Blocks...))
	}
	return opts
}
