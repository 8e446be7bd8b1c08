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

func TestParseOptionCommandCheckType(t *testing.T) {
	o := parseOptionCommand([]byte("option name Nullmove type check default true\n"))
	require.NotNil(t, o)
	assert.Equal(t, "Nullmove", o.Name)
	assert.Equal(t, Check, o.OType)
	require.NotNil(t, o.Default)
	assert.Equal(t, "true", *o.Default)
}

func TestParseOptionCommandSpinType(t *testing.T) {
	o := parseOptionCommand([]byte("option name SkillLevel type spin min -1 max 99 default 0\n"))
	require.NotNil(t, o)
	assert.Equal(t, "SkillLevel", o.Name)
	assert.Equal(t, Spin, o.OType)
	require.NotNil(t, o.Min)
	assert.Equal(t, -1, *o.Min)
	require.NotNil(t, o.Max)
	assert.Equal(t, 99, *o.Max)
	require.NotNil(t, o.Default)
	assert.Equal(t, "0", *o.Default)
}

func TestParseOptionCommandComboType(t *testing.T) {
	o := parseOptionCommand([]byte("option name Style type combo var Opt1 var Opt2 default Opt1\n"))
	require.NotNil(t, o)
	assert.Equal(t, "Style", o.Name)
	assert.Equal(t, Combo, o.OType)
	require.NotNil(t, o.Default)
	assert.Equal(t, "Opt1", *o.Default)
	assert.Equal(t, []string{"Opt1", "Opt2"}, o.Var)
}

func TestParseOptionCommandButtonType(t *testing.T) {
	o := parseOptionCommand([]byte("option name ClearHash type button \n"))
	require.NotNil(t, o)
	assert.Equal(t, "ClearHash", o.Name)
	assert.Equal(t, Button, o.OType)
	assert.Nil(t, o.Default)
}

func TestParseOptionCommandStringWithSpaces(t *testing.T) {
	o := parseOptionCommand([]byte("option name BookPath type string default My Favorite Book\n"))
	require.NotNil(t, o)
	assert.Equal(t, "BookPath", o.Name)
	assert.Equal(t, String, o.OType)
	require.NotNil(t, o.Default)
	assert.Equal(t, "My Favorite Book", *o.Default)
}

func TestParseOptionCommandRejectsUCIPrefix(t *testing.T) {
	o := parseOptionCommand([]byte("option name UCI_SomethingMadeUp type check\n"))
	assert.Nil(t, o)
}

func TestParseOptionCommandValidatesPredefinedTypes(t *testing.T) {
	o := parseOptionCommand([]byte("option name Hash type combo\n"))
	assert.Nil(t, o, "Hash is predefined as a spin option, combo should be rejected")

	o = parseOptionCommand([]byte("option name Hash type spin\n"))
	assert.NotNil(t, o)
}

func TestParseOptionCommandMissingNameOrType(t *testing.T) {
	assert.Nil(t, parseOptionCommand([]byte("option type check\n")))
	assert.Nil(t, parseOptionCommand([]byte("option name OnlyName\n")))
}

func TestParseOptionCommandSeedsCurrentFromDefault(t *testing.T) {
	o := parseOptionCommand([]byte("option name Nullmove type check default true\n"))
	require.NotNil(t, o)
	require.NotNil(t, o.Current)
	assert.Equal(t, "true", *o.Current)
}

func TestParseOptionCommandSeedsCurrentFromFirstVarWhenNoDefault(t *testing.T) {
	o := parseOptionCommand([]byte("option name Style type combo var Opt1 var Opt2\n"))
	require.NotNil(t, o)
	require.NotNil(t, o.Current)
	assert.Equal(t, "Opt1", *o.Current)
}

func TestParseOptionCommandButtonHasNoCurrent(t *testing.T) {
	o := parseOptionCommand([]byte("option name ClearHash type button \n"))
	require.NotNil(t, o)
	assert.Nil(t, o.Current)
}
