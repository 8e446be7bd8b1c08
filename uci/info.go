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

package uci

import (
	"strings"

	"github.com/corvidchess/chess"
)

// Score is the search score reported inside an [Info], from the engine's
// point of view.
type Score struct {
	// Cp is the score in centipawns.
	Cp *int
	// Mate is mate in y moves, not plies. Negative if the engine is
	// getting mated.
	Mate *int
	// Lowerbound is true if the score is only a lower bound.
	Lowerbound bool
	// Upperbound is true if the score is only an upper bound.
	Upperbound bool
}

// Currline is the line currently being evaluated by a given cpu, reported
// inside an [Info] when UCI_ShowCurrLine is enabled.
type Currline struct {
	Cpunr *uint
	Moves []chess.Move
}

// Info is one "info" line's worth of search progress reported by the
// engine. Fields the engine did not send are nil.
type Info struct {
	Depth          *uint
	Seldepth       *uint
	Time           *uint
	Nodes          *uint
	Pv             []chess.Move
	Multipv        *uint
	Score          *Score
	Currmove       *chess.Move
	Currmovenumber *uint
	Hashfull       *uint
	Nps            *uint
	Tbhits         *uint
	CpuLoad        *uint
	String         *string
	Refutation     []chess.Move
	Currline       *Currline
}

func (i *Info) commandType() commandType {
	return infoCmd
}

// parseInfoCommand parses one "info ..." line from the engine. Each
// recognized keyword consumes however many fields it needs from the
// cursor; an unrecognized field is simply skipped, since the protocol
// allows an engine to send fields this driver doesn't know about.
func parseInfoCommand(line []byte) *Info {
	info := &Info{}

	cur := newFieldCursor(line)
	if !cur.seek("info") {
		return info
	}

	for !cur.done() {
		switch strings.ToLower(string(cur.next())) {
		case "depth":
			info.Depth = takeUintField(cur)
		case "seldepth":
			info.Seldepth = takeUintField(cur)
		case "time":
			info.Time = takeUintField(cur)
		case "nodes":
			info.Nodes = takeUintField(cur)
		case "pv":
			info.Pv = parsePvMoves(cur)
		case "multipv":
			info.Multipv = takeUintField(cur)
		case "score":
			info.Score = parseScoreValue(cur)
		case "currmove":
			info.Currmove = takeMoveField(cur)
		case "currmovenumber":
			info.Currmovenumber = takeUintField(cur)
		case "hashfull":
			info.Hashfull = takeUintField(cur)
		case "nps":
			info.Nps = takeUintField(cur)
		case "tbhits":
			info.Tbhits = takeUintField(cur)
		case "cpuload":
			info.CpuLoad = takeUintField(cur)
		case "refutation":
			info.Refutation = parsePvMoves(cur)
		case "currline":
			info.Currline = parseCurrLineValue(cur)
		case "string":
			s := cur.rest()
			info.String = &s
			return info
		}
	}

	return info
}

// takeUintField consumes the cursor's current field and returns it as a
// uint, or leaves the cursor untouched and returns nil if it isn't one.
func takeUintField(cur *fieldCursor) *uint {
	v, ok := parseUintField(cur.peek())
	if !ok {
		return nil
	}
	cur.next()
	return &v
}

// takeMoveField consumes the cursor's current field and returns it as a
// parsed UCI move, or leaves the cursor untouched and returns nil if it
// isn't one.
func takeMoveField(cur *fieldCursor) *chess.Move {
	f := cur.peek()
	if f == nil {
		return nil
	}
	m, err := chess.ParseUCIMove(string(f))
	if err != nil {
		return nil
	}
	cur.next()
	return &m
}

// parsePvMoves consumes the longest run of valid UCI moves starting at
// the cursor, stopping (without consuming) at the first field that isn't
// one. Used for both "pv" and "refutation", which share this grammar.
func parsePvMoves(cur *fieldCursor) []chess.Move {
	var moves []chess.Move
	for {
		m := takeMoveField(cur)
		if m == nil {
			return moves
		}
		moves = append(moves, *m)
	}
}

// parseScoreValue parses the value following a "score" keyword: a
// mandatory leading "cp <n>" or "mate <n>", then any number of
// cp/mate/lowerbound/upperbound qualifiers, in any order, until a field
// that isn't one of those.
func parseScoreValue(cur *fieldCursor) *Score {
	score := &Score{}

	switch strings.ToLower(string(cur.peek())) {
	case "cp":
		cur.next()
		v, ok := parseIntField(cur.next())
		if !ok {
			return nil
		}
		score.Cp = &v
	case "mate":
		cur.next()
		v, ok := parseIntField(cur.next())
		if !ok {
			return nil
		}
		score.Mate = &v
	default:
		return nil
	}

	for {
		switch strings.ToLower(string(cur.peek())) {
		case "cp":
			cur.next()
			if v, ok := parseIntField(cur.next()); ok {
				score.Cp = &v
			}
		case "mate":
			cur.next()
			if v, ok := parseIntField(cur.next()); ok {
				score.Mate = &v
			}
		case "lowerbound":
			cur.next()
			score.Lowerbound = true
		case "upperbound":
			cur.next()
			score.Upperbound = true
		default:
			return score
		}
	}
}

// parseCurrLineValue parses the value following a "currline" keyword: a
// cpu number followed by a move line. Returns nil if either is missing.
func parseCurrLineValue(cur *fieldCursor) *Currline {
	cpunr, ok := parseUintField(cur.next())
	if !ok {
		return nil
	}
	moves := parsePvMoves(cur)
	if len(moves) == 0 {
		return nil
	}
	return &Currline{Cpunr: &cpunr, Moves: moves}
}
