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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdCommandName(t *testing.T) {
	id := parseIdCommand([]byte("id name Stockfish 16\n"))
	require.NotNil(t, id)
	assert.Equal(t, idName, id.idt)
	assert.Equal(t, "Stockfish 16", id.value)
}

func TestParseIdCommandAuthor(t *testing.T) {
	id := parseIdCommand([]byte("id author the Stockfish developers\n"))
	require.NotNil(t, id)
	assert.Equal(t, idAuthor, id.idt)
	assert.Equal(t, "the Stockfish developers", id.value)
}

func TestParseBestMoveCommand(t *testing.T) {
	bm := parseBestMoveCommand([]byte("bestmove e2e4\n"))
	require.NotNil(t, bm)
	assert.Equal(t, "e2e4", bm.best.String())
	assert.Nil(t, bm.ponder)
}

func TestParseBestMoveCommandWithPonder(t *testing.T) {
	bm := parseBestMoveCommand([]byte("bestmove e2e4 ponder e7e5\n"))
	require.NotNil(t, bm)
	assert.Equal(t, "e2e4", bm.best.String())
	require.NotNil(t, bm.ponder)
	assert.Equal(t, "e7e5", bm.ponder.String())
}

func TestParseBestMoveCommandInvalid(t *testing.T) {
	bm := parseBestMoveCommand([]byte("bestmove notasquare\n"))
	assert.Nil(t, bm)
}

func TestParseCopyProtection(t *testing.T) {
	cp := parseCopyProtection([]byte("copyprotection checking\n"))
	require.NotNil(t, cp)
	assert.Equal(t, cpChecking, *cp)

	cp = parseCopyProtection([]byte("copyprotection ok\n"))
	require.NotNil(t, cp)
	assert.Equal(t, cpOK, *cp)

	cp = parseCopyProtection([]byte("copyprotection error\n"))
	require.NotNil(t, cp)
	assert.Equal(t, cpError, *cp)
}

func TestParseCommandDispatch(t *testing.T) {
	assert.Equal(t, uciokCmd, parseCommand([]byte("uciok\n")).commandType())
	assert.Equal(t, readyokCmd, parseCommand([]byte("readyok\n")).commandType())
	assert.Equal(t, idCmd, parseCommand([]byte("id name Foo\n")).commandType())
	assert.Equal(t, bestmoveCmd, parseCommand([]byte("bestmove e2e4\n")).commandType())
	assert.Equal(t, infoCmd, parseCommand([]byte("info depth 1\n")).commandType())
	assert.Equal(t, optionCmd, parseCommand([]byte("option name Hash type spin\n")).commandType())
	assert.Nil(t, parseCommand([]byte("")))
	assert.Nil(t, parseCommand([]byte("garbage line\n")))
}
