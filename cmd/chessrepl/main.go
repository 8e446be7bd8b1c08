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

// Command chessrepl drives a UCI engine subprocess from a terminal: it
// loads a config file naming the engine binary, starts the engine, and
// hands control to the package replcli command loop.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/corvidchess/chess"
	"github.com/corvidchess/chess/config"
	"github.com/corvidchess/chess/replcli"
	"github.com/corvidchess/chess/uci"
)

var (
	configPath = flag.String("config", "", "path to a TOML config file")
	debug      = flag.Bool("debug", false, "enable debug logging of the raw UCI protocol trace")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("chessrepl: %v", err)
	}

	zapCfg := zap.NewProductionConfig()
	if *debug {
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	zapLogger, err := zapCfg.Build()
	if err != nil {
		log.Fatalf("chessrepl: could not build logger: %v", err)
	}
	defer zapLogger.Sync()

	boardLogger := uci.NewZapLogger(zapLogger)

	driver, err := uci.NewDriver(cfg.Engine.Path, uci.Settings{
		Args:   cfg.Engine.Args,
		Logger: uci.NewLogWriter(zapLogger),
	})
	if err != nil {
		log.Fatalf("chessrepl: could not start engine %q: %v", cfg.Engine.Path, err)
	}
	defer func() {
		if err := driver.Quit(2*time.Second, 2*time.Second); err != nil {
			zapLogger.Sugar().Warnf("engine shutdown: %v", err)
		}
	}()

	if _, err := driver.Uci(5 * time.Second); err != nil {
		log.Fatalf("chessrepl: uci handshake failed: %v", err)
	}
	if err := driver.NewGame(5 * time.Second); err != nil {
		log.Fatalf("chessrepl: ucinewgame failed: %v", err)
	}
	if err := driver.IsReady(5 * time.Second); err != nil {
		log.Fatalf("chessrepl: engine not ready: %v", err)
	}

	board := chess.NewBoard()
	board.SetLogger(boardLogger)

	opts := replcli.Options{
		MoveTime: time.Duration(cfg.Engine.MoveTimeMS) * time.Millisecond,
	}

	if err := replcli.Run(board, driver, os.Stdin, os.Stdout, boardLogger, opts); err != nil {
		log.Fatalf("chessrepl: %v", err)
	}
}
