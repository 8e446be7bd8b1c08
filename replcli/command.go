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

package replcli

import "strings"

type commandKind int

const (
	cmdInvalid commandKind = iota
	cmdMove
	cmdUndo
	cmdFEN
	cmdReset
	cmdHelp
	cmdQuit
)

// parseLine classifies one line of operator input. Move commands accept
// the two squares separated by whitespace, "-", ",", or concatenated
// with no separator at all ("e2e4"), with an optional trailing
// promotion letter ("e7e8q", "e7 e8 q", "e7-e8-q").
func parseLine(line string) (kind commandKind, from, to, promo string) {
	lower := strings.ToLower(strings.TrimSpace(line))
	switch lower {
	case "undo", "u":
		return cmdUndo, "", "", ""
	case "fen":
		return cmdFEN, "", "", ""
	case "reset", "r":
		return cmdReset, "", "", ""
	case "help", "?":
		return cmdHelp, "", "", ""
	case "quit", "q":
		return cmdQuit, "", "", ""
	}

	normalized := strings.NewReplacer("-", " ", ",", " ").Replace(lower)
	fields := strings.Fields(normalized)
	switch len(fields) {
	case 1:
		switch len(fields[0]) {
		case 4:
			return cmdMove, fields[0][:2], fields[0][2:4], ""
		case 5:
			return cmdMove, fields[0][:2], fields[0][2:4], fields[0][4:5]
		}
	case 2:
		if len(fields[0]) == 2 && len(fields[1]) == 2 {
			return cmdMove, fields[0], fields[1], ""
		}
		if len(fields[0]) == 2 && len(fields[1]) == 3 {
			return cmdMove, fields[0], fields[1][:2], fields[1][2:3]
		}
	case 3:
		if len(fields[0]) == 2 && len(fields[1]) == 2 && len(fields[2]) == 1 {
			return cmdMove, fields[0], fields[1], fields[2]
		}
	}
	return cmdInvalid, "", "", ""
}
