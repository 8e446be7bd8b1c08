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

func TestParseInfoCommandBasicFields(t *testing.T) {
	i := parseInfoCommand([]byte("info depth 5 seldepth 7 time 120 nodes 5000 nps 41666\n"))
	require.NotNil(t, i.Depth)
	assert.EqualValues(t, 5, *i.Depth)
	require.NotNil(t, i.Seldepth)
	assert.EqualValues(t, 7, *i.Seldepth)
	require.NotNil(t, i.Time)
	assert.EqualValues(t, 120, *i.Time)
	require.NotNil(t, i.Nodes)
	assert.EqualValues(t, 5000, *i.Nodes)
	require.NotNil(t, i.Nps)
	assert.EqualValues(t, 41666, *i.Nps)
}

func TestParseInfoCommandPv(t *testing.T) {
	i := parseInfoCommand([]byte("info depth 1 pv e2e4 e7e5 g1f3\n"))
	require.Len(t, i.Pv, 3)
	assert.Equal(t, "e2e4", i.Pv[0].String())
	assert.Equal(t, "e7e5", i.Pv[1].String())
	assert.Equal(t, "g1f3", i.Pv[2].String())
}

func TestParseInfoCommandScoreCp(t *testing.T) {
	i := parseInfoCommand([]byte("info score cp 34\n"))
	require.NotNil(t, i.Score)
	require.NotNil(t, i.Score.Cp)
	assert.Equal(t, 34, *i.Score.Cp)
	assert.False(t, i.Score.Lowerbound)
	assert.False(t, i.Score.Upperbound)
}

func TestParseInfoCommandScoreMateWithBound(t *testing.T) {
	i := parseInfoCommand([]byte("info score mate -3 upperbound\n"))
	require.NotNil(t, i.Score)
	require.NotNil(t, i.Score.Mate)
	assert.Equal(t, -3, *i.Score.Mate)
	assert.True(t, i.Score.Upperbound)
}

func TestParseInfoCommandCurrmove(t *testing.T) {
	i := parseInfoCommand([]byte("info currmove e2e4 currmovenumber 1\n"))
	require.NotNil(t, i.Currmove)
	assert.Equal(t, "e2e4", i.Currmove.String())
	require.NotNil(t, i.Currmovenumber)
	assert.EqualValues(t, 1, *i.Currmovenumber)
}

func TestParseInfoCommandString(t *testing.T) {
	i := parseInfoCommand([]byte("info string mate in 3 found\n"))
	require.NotNil(t, i.String)
	assert.Equal(t, "mate in 3 found", *i.String)
}

func TestParseInfoCommandCurrline(t *testing.T) {
	i := parseInfoCommand([]byte("info currline 1 e2e4 e7e5\n"))
	require.NotNil(t, i.Currline)
	require.NotNil(t, i.Currline.Cpunr)
	assert.EqualValues(t, 1, *i.Currline.Cpunr)
	require.Len(t, i.Currline.Moves, 2)
}

func TestParseInfoCommandUnknownTokensIgnored(t *testing.T) {
	i := parseInfoCommand([]byte("info banana depth 4\n"))
	require.NotNil(t, i.Depth)
	assert.EqualValues(t, 4, *i.Depth)
}
