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
	"bytes"
	"strings"

	"github.com/corvidchess/chess"
)

// command represents a single line of output received from the engine.
// Type assert to a specific command type when more than commandType() is
// needed; this should be avoided where possible.
type command interface {
	commandType() commandType
}

type commandType uint8

const (
	unknownCommandType commandType = iota
	idCmd
	uciokCmd
	readyokCmd
	bestmoveCmd
	copyprotectionCmd
	registrationCmd
	infoCmd
	optionCmd
)

type basicCommand struct {
	cmdType commandType
}

func (bc basicCommand) commandType() commandType {
	return bc.cmdType
}

type idType uint8

const (
	_ idType = iota
	idName
	idAuthor
)

type idCommand struct {
	idt   idType
	value string
}

func (i idCommand) commandType() commandType {
	return idCmd
}

// parseIdCommand parses an "id name ..." or "id author ..." line.
// Whichever of "name"/"author" is seen first wins; everything after it is
// the reported value.
func parseIdCommand(line []byte) *idCommand {
	cur := newFieldCursor(line)
	for !cur.done() {
		switch strings.ToLower(string(cur.peek())) {
		case "name":
			cur.next()
			return &idCommand{idt: idName, value: cur.rest()}
		case "author":
			cur.next()
			return &idCommand{idt: idAuthor, value: cur.rest()}
		default:
			cur.next()
		}
	}
	return nil
}

type bestMove struct {
	best   chess.Move
	ponder *chess.Move
}

func (bm bestMove) commandType() commandType {
	return bestmoveCmd
}

// parseBestMoveCommand parses a "bestmove <move> [ponder <move>]" line.
// The line is rejected outright if the literal "ponder" turns up before
// any move has been recognized, since that can only mean the engine sent
// a ponder suggestion without ever naming its actual best move.
func parseBestMoveCommand(line []byte) *bestMove {
	cur := newFieldCursor(line)

	var best *chess.Move
	for !cur.done() {
		f := cur.peek()
		if bytes.EqualFold(f, []byte("ponder")) {
			return nil
		}
		if m, err := chess.ParseUCIMove(string(f)); err == nil {
			best = &m
			cur.next()
			break
		}
		cur.next()
	}
	if best == nil {
		return nil
	}

	bm := &bestMove{best: *best}
	if cur.seek("ponder") {
		if m, err := chess.ParseUCIMove(string(cur.peek())); err == nil {
			bm.ponder = &m
		}
	}
	return bm
}

type copyProtection uint8

const (
	_ copyProtection = iota
	cpChecking
	cpOK
	cpError
)

func (cp copyProtection) commandType() commandType {
	return copyprotectionCmd
}

// triStateWord scans line for the first occurrence of the shared
// "checking"/"ok"/"error" vocabulary that both copyprotection and
// registration lines report their status with.
func triStateWord(line []byte) (string, bool) {
	cur := newFieldCursor(line)
	for !cur.done() {
		switch strings.ToLower(string(cur.peek())) {
		case "checking", "ok", "error":
			return strings.ToLower(string(cur.next())), true
		default:
			cur.next()
		}
	}
	return "", false
}

func parseCopyProtection(line []byte) *copyProtection {
	word, ok := triStateWord(line)
	if !ok {
		return nil
	}
	var cp copyProtection
	switch word {
	case "checking":
		cp = cpChecking
	case "ok":
		cp = cpOK
	case "error":
		cp = cpError
	}
	return &cp
}

type registration uint8

const (
	_ registration = iota
	regChecking
	regOK
	regError
)

func (r registration) commandType() commandType {
	return registrationCmd
}

func parseRegistration(line []byte) *registration {
	word, ok := triStateWord(line)
	if !ok {
		return nil
	}
	var r registration
	switch word {
	case "checking":
		r = regChecking
	case "ok":
		r = regOK
	case "error":
		r = regError
	}
	return &r
}

// commandParsers dispatches a line to its parser by its first field,
// lowercased. Each entry turns a nil/invalid parse into a true nil
// command rather than leaking a typed nil pointer into the command
// interface.
var commandParsers = map[string]func([]byte) command{
	"uciok":   func([]byte) command { return basicCommand{cmdType: uciokCmd} },
	"readyok": func([]byte) command { return basicCommand{cmdType: readyokCmd} },
	"info":    func(line []byte) command { return parseInfoCommand(line) },
	"id": func(line []byte) command {
		c := parseIdCommand(line)
		if c == nil {
			return nil
		}
		return *c
	},
	"bestmove": func(line []byte) command {
		c := parseBestMoveCommand(line)
		if c == nil {
			return nil
		}
		return *c
	},
	"copyprotection": func(line []byte) command {
		c := parseCopyProtection(line)
		if c == nil {
			return nil
		}
		return *c
	},
	"registration": func(line []byte) command {
		c := parseRegistration(line)
		if c == nil {
			return nil
		}
		return *c
	},
	"option": func(line []byte) command {
		o := parseOptionCommand(line)
		if o == nil {
			return nil
		}
		return o
	},
}

// parseCommand classifies and parses a single line received from the
// engine's stdout.
func parseCommand(line []byte) command {
	fields := bytes.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	parse, ok := commandParsers[strings.ToLower(string(fields[0]))]
	if !ok {
		return nil
	}
	return parse(line)
}
