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
)

// OptionType identifies which kind of tunable option the engine declared.
type OptionType uint8

const (
	_ OptionType = iota
	Check
	Spin
	Combo
	Button
	String
)

func parseOptionType(field []byte) OptionType {
	switch strings.ToLower(string(field)) {
	case "check":
		return Check
	case "spin":
		return Spin
	case "combo":
		return Combo
	case "button":
		return Button
	case "string":
		return String
	default:
		return 0
	}
}

// Option describes one configurable engine option, as declared by an
// "option name ... type ..." line during startup. See the UCI protocol for
// the meaning of each field; Default, Min, Max, and Var are nil when the
// engine did not provide them.
//
//   - Check - Default, if present, is "true" or "false".
//   - Spin - Default, Min, and Max are numeric.
//   - Combo - at least one Var is present; Default may reference one of them.
//   - String - only Default is meaningful.
//   - Button - has no attributes.
//
// Options with the "UCI_" prefix that are not part of the standard set are
// dropped, per the protocol.
type Option struct {
	Name    string
	OType   OptionType
	Default *string
	Min     *int
	Max     *int
	Var     []string

	// Current holds the option's present value: the parsed Default at
	// first, then whatever was last sent through SetOption. For a combo
	// with no declared default it seeds to the first Var, per the UCI
	// convention that the first listed variant is the implicit default.
	Current *string
}

func (o *Option) commandType() commandType {
	return optionCmd
}

// optionValueKeywords are the field names that can follow an option's
// name, default, or var value; a multi-word value runs until one of
// these is seen.
var optionValueKeywords = newKeywordSet("type", "default", "min", "max", "var")

// predefinedOptionTypes lists the option names the UCI protocol reserves
// a meaning for, and the OptionType each one must be declared with. An
// engine line naming one of these with a different type is rejected.
var predefinedOptionTypes = map[string]OptionType{
	"Hash":                  Spin,
	"NalimovCache":          Spin,
	"MultiPV":               Spin,
	"UCI_Elo":               Spin,
	"NalimovPath":           String,
	"UCI_Opponent":          String,
	"UCI_EngineAbout":       String,
	"UCI_ShredderbasesPath": String,
	"UCI_SetPositionValue":  String,
	"Ponder":                Check,
	"OwnBook":               Check,
	"UCI_ShowCurrLine":      Check,
	"UCI_ShowRefutations":   Check,
	"UCI_LimitStrength":     Check,
	"UCI_AnalyseMode":       Check,
}

// parseOptionCommand parses one "option ..." line from the engine. It
// walks the line's fields with a cursor rather than a token index: each
// recognized keyword pulls however many fields it needs off the cursor,
// so the loop never has to track how far to skip ahead by hand.
func parseOptionCommand(line []byte) *Option {
	cur := newFieldCursor(line)
	if !cur.seek("option") {
		return nil
	}

	opt := &Option{}
	for !cur.done() {
		switch strings.ToLower(string(cur.next())) {
		case "name":
			opt.Name = cur.takeUntilKeyword(optionValueKeywords)
		case "type":
			opt.OType = parseOptionType(cur.next())
		case "default":
			opt.Default = parseOptionDefault(cur, opt.OType)
		case "min":
			if v, ok := parseIntField(cur.next()); ok {
				opt.Min = &v
			}
		case "max":
			if v, ok := parseIntField(cur.next()); ok {
				opt.Max = &v
			}
		case "var":
			opt.Var = append(opt.Var, cur.takeUntilKeyword(optionValueKeywords))
		}
	}

	if opt.Name == "" || opt.OType == 0 {
		return nil
	}

	if reqType, ok := predefinedOptionTypes[opt.Name]; ok {
		if opt.OType != reqType {
			return nil
		}
		seedCurrent(opt)
		return opt
	}

	if strings.HasPrefix(opt.Name, "UCI_") {
		return nil
	}

	seedCurrent(opt)
	return opt
}

// parseOptionDefault reads the value following "default". A string-typed
// option's default runs to the end of the line unconditionally, since a
// book path or similar free-text value may itself contain a word that
// would otherwise look like a keyword; every other type's default runs
// only until the next keyword.
func parseOptionDefault(cur *fieldCursor, ot OptionType) *string {
	var v string
	if ot == String {
		v = cur.rest()
	} else {
		v = cur.takeUntilKeyword(optionValueKeywords)
	}
	return &v
}

// seedCurrent initializes Current to Default, or for a combo with no
// declared default, to the first Var.
func seedCurrent(o *Option) {
	if o.Default != nil {
		v := *o.Default
		o.Current = &v
		return
	}
	if o.OType == Combo && len(o.Var) > 0 {
		v := o.Var[0]
		o.Current = &v
	}
}
