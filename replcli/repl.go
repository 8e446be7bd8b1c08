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

// Package replcli implements the terminal command loop: it reads move and
// housekeeping commands, applies legal moves to a [chess.Board], and asks
// a [uci.Driver] for the engine's reply after every player move.
package replcli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/corvidchess/chess"
	"github.com/corvidchess/chess/uci"
)

// Logger is the structured-logging collaborator the REPL accepts. It is
// the same shape as [chess.Logger] so one implementation (e.g. a
// zap-backed adapter) can be shared across Board, Driver, and REPL.
type Logger = chess.Logger

const commandTimeout = 5 * time.Second

// Options configures a REPL session beyond the Board/Driver pair it
// drives.
type Options struct {
	// MoveTime is the engine's per-move search budget, passed as "go
	// movetime" on every reply.
	MoveTime time.Duration
}

type replState struct {
	board    *chess.Board
	driver   *uci.Driver
	in       *bufio.Scanner
	out      io.Writer
	log      Logger
	opts     Options
	gameOver bool
}

// Run drives the interactive command loop described by the REPL surface
// of the specification: "<from> <to>" moves (space, "-", ",", or no
// separator between the squares), "undo"/"u", "fen", "reset"/"r",
// "help"/"?", and "quit"/"q". It returns when the input stream is
// exhausted or the user quits. Driver errors do not end the session:
// errors while getting the engine's reply are reported to out, and errors
// from the ucinewgame/isready exchange on reset are logged. logger may be
// nil.
func Run(board *chess.Board, driver *uci.Driver, in io.Reader, out io.Writer, logger Logger, opts Options) error {
	if logger == nil {
		logger = noopLogger{}
	}
	s := &replState{
		board:  board,
		driver: driver,
		in:     bufio.NewScanner(in),
		out:    out,
		log:    logger,
		opts:   opts,
	}
	board.SetPromotionChooser(s.promptPromotion)

	fmt.Fprintln(out, "Chess REPL. Type 'help' for commands.")
	s.printBoard()

	for {
		fmt.Fprint(out, "\n> ")
		if !s.in.Scan() {
			return s.in.Err()
		}
		line := strings.TrimSpace(s.in.Text())
		if line == "" {
			continue
		}

		kind, from, to, promo := parseLine(line)
		switch kind {
		case cmdQuit:
			return nil
		case cmdHelp:
			s.printHelp()
		case cmdFEN:
			fmt.Fprintln(out, s.board.FEN())
		case cmdReset:
			s.doReset()
		case cmdUndo:
			s.doUndo()
		case cmdMove:
			s.doMove(from, to, promo)
		default:
			fmt.Fprintln(out, "unrecognized command, type 'help' for the command list")
		}
	}
}

func (s *replState) printHelp() {
	fmt.Fprintln(s.out, `commands:
  <from> <to>   apply a move, e.g. "e2 e4", "e2-e4", or "e2e4"
  undo, u       undo the last move
  fen           print the current position's FEN
  reset, r      reset to the starting position
  help, ?       show this message
  quit, q       exit`)
}

func (s *replState) printBoard() {
	fmt.Fprintln(s.out, s.board.String())
}

func (s *replState) doReset() {
	if err := s.board.UnmarshalText([]byte(chess.DefaultFEN)); err != nil {
		fmt.Fprintf(s.out, "could not reset: %v\n", err)
		return
	}
	s.gameOver = false
	if s.driver != nil {
		if err := s.driver.NewGame(commandTimeout); err != nil {
			s.log.Warnf("ucinewgame failed: %v", err)
		}
		if err := s.driver.IsReady(commandTimeout); err != nil {
			s.log.Warnf("isready failed: %v", err)
		}
	}
	s.printBoard()
}

func (s *replState) doUndo() {
	rec, ok := s.board.Undo()
	if !ok {
		fmt.Fprintln(s.out, "nothing to undo")
		return
	}
	s.gameOver = false
	fmt.Fprintf(s.out, "undid %s\n", rec.UCI())
	s.printBoard()
}

func (s *replState) doMove(fromStr, toStr, promo string) {
	if s.gameOver {
		fmt.Fprintln(s.out, "the game is over; reset to play again")
		return
	}
	from := chess.ParseSquare(fromStr)
	to := chess.ParseSquare(toStr)
	if from == chess.NoSquare || to == chess.NoSquare {
		fmt.Fprintln(s.out, "could not parse squares")
		return
	}

	var applied bool
	if promo != "" {
		applied = s.board.ApplyUCIMove(from.String() + to.String() + promo)
	} else {
		applied = s.board.ApplyMove(from, to)
	}
	if !applied {
		fmt.Fprintln(s.out, "illegal move")
		return
	}
	s.printBoard()
	if s.announceIfOver() {
		return
	}
	s.engineReply()
}

// announceIfOver reports and latches game-over state. Returns true if the
// game has ended.
func (s *replState) announceIfOver() bool {
	if s.board.IsCheckmate() {
		winner := chess.White
		if s.board.SideToMove() == chess.White {
			winner = chess.Black
		}
		fmt.Fprintf(s.out, "checkmate: %s wins\n", winner)
		s.gameOver = true
		return true
	}
	if s.board.IsStalemate() {
		fmt.Fprintln(s.out, "stalemate")
		s.gameOver = true
		return true
	}
	if s.board.IsCheck() {
		fmt.Fprintln(s.out, "check")
	}
	return false
}

func (s *replState) engineReply() {
	if s.driver == nil {
		return
	}
	moves := make([]chess.Move, 0, len(s.board.MoveRecords()))
	for _, uciStr := range s.board.UCIMoveList() {
		m, err := chess.ParseUCIMove(uciStr)
		if err != nil {
			s.log.Errorf("could not re-parse own move history %q: %v", uciStr, err)
			return
		}
		moves = append(moves, m)
	}
	if err := s.driver.Position("", moves, commandTimeout); err != nil {
		fmt.Fprintf(s.out, "could not set engine position: %v\n", err)
		return
	}

	timeout := s.opts.MoveTime + commandTimeout
	result, err := s.driver.BestMove(s.opts.MoveTime, timeout)
	if err != nil {
		fmt.Fprintf(s.out, "engine did not reply: %v\n", err)
		return
	}
	if result == nil {
		fmt.Fprintln(s.out, "engine returned no move")
		return
	}
	fmt.Fprintf(s.out, "engine plays %s\n", result.Best.String())
	if !s.board.ApplyUCIMove(result.Best.String()) {
		fmt.Fprintf(s.out, "engine proposed an illegal move %q\n", result.Best.String())
		return
	}
	s.printBoard()
	s.announceIfOver()
}

// promptPromotion is installed as the Board's promotion chooser: it asks
// the operator which piece to promote to, defaulting to a queen for
// blank or unrecognized input (Board itself also defaults an invalid
// chooser result to queen, so this is belt-and-suspenders).
func (s *replState) promptPromotion(_, _ chess.Square) chess.PieceType {
	fmt.Fprint(s.out, "promote to (q/r/b/n) [q]: ")
	if !s.in.Scan() {
		return chess.Queen
	}
	switch strings.ToLower(strings.TrimSpace(s.in.Text())) {
	case "r":
		return chess.Rook
	case "b":
		return chess.Bishop
	case "n":
		return chess.Knight
	default:
		return chess.Queen
	}
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}
