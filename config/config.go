// Copyright (C) 2025 Brigham Skarda

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config loads the settings a chessrepl session runs with: where
// to find the engine binary, how long it gets to think, and how the
// board should be rendered.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// EngineConfig describes the UCI engine subprocess to drive.
type EngineConfig struct {
	// Path is the engine binary to execute.
	Path string `toml:"path"`
	// MoveTimeMS is the per-move search budget passed as "go movetime".
	MoveTimeMS int `toml:"move_time_ms"`
	// Args are extra arguments passed to the engine's argv.
	Args []string `toml:"args"`
}

// BoardConfig holds the [board] rendering preferences; none of it affects
// rules-engine behavior. The replcli renderer does not read these fields:
// it always prints ASCII letters from White's perspective.
type BoardConfig struct {
	// Unicode requests Unicode chess glyphs over ASCII letters.
	Unicode bool `toml:"unicode"`
	// FlipForBlack requests rendering from black's perspective when it
	// is black to move.
	FlipForBlack bool `toml:"flip_for_black"`
}

// Config is the full configuration for a chessrepl session.
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Board  BoardConfig  `toml:"board"`
}

// Default returns the configuration used when no config file is present.
func Default() Config {
	return Config{
		Engine: EngineConfig{MoveTimeMS: 1000},
	}
}

// Load reads a TOML config file at path and applies the
// CHESS_ENGINE_PATH/CHESS_ENGINE_MOVETIME_MS environment overrides on
// top. If path is empty, only the defaults and environment are applied.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("could not load config %q: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)

	if cfg.Engine.Path == "" {
		return Config{}, fmt.Errorf("config: engine.path is required (set it in the config file or CHESS_ENGINE_PATH)")
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if p := os.Getenv("CHESS_ENGINE_PATH"); p != "" {
		cfg.Engine.Path = p
	}
	if m := os.Getenv("CHESS_ENGINE_MOVETIME_MS"); m != "" {
		if v, err := strconv.Atoi(m); err == nil && v > 0 {
			cfg.Engine.MoveTimeMS = v
		}
	}
}
