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

package chess

import (
	"errors"
	"fmt"
	"strings"
)

// Move represents a UCI chess move: a source square, a destination
// square, and an optional promotion piece type.
type Move struct {
	FromSquare Square
	ToSquare   Square
	Promotion  PieceType
}

// String provides a UCI compatible string of the move in the form
// <FromSquare><ToSquare><OptionalPromotion>.
func (m Move) String() string {
	promotion := m.Promotion.String()
	if promotion == "-" {
		promotion = ""
	}
	return m.FromSquare.String() + m.ToSquare.String() + promotion
}

// ParseUCIMove parses a long-algebraic UCI move string such as "e2e4" or
// "e7e8q". It returns an error if the string is not 4 or 5 characters, if
// either square is malformed, or if the promotion letter is unrecognized.
func ParseUCIMove(uci string) (Move, error) {
	uci = strings.ToLower(uci)
	if len(uci) < 4 || len(uci) > 5 {
		return Move{}, errors.New("uci move string not 4 or 5 characters long")
	}
	fromSquare := ParseSquare(uci[0:2])
	toSquare := ParseSquare(uci[2:4])
	if fromSquare == NoSquare || toSquare == NoSquare {
		return Move{}, fmt.Errorf("could not parse move square, %q", uci)
	}
	promotion := NoPieceType
	if len(uci) == 5 {
		promotion = parsePieceType(uci[4:5])
		if promotion == NoPieceType {
			return Move{}, fmt.Errorf("could not parse move promotion, %q", uci)
		}
	}
	return Move{FromSquare: fromSquare, ToSquare: toSquare, Promotion: promotion}, nil
}

// MoveRecord describes one applied move in enough detail to explain it to
// a user and to drive move-list rendering. It is not itself sufficient to
// undo a move; [Board.Undo] restores from a full position snapshot
// instead.
type MoveRecord struct {
	Piece           Piece
	FromSquare      Square
	ToSquare        Square
	Capture         bool
	EnPassant       bool
	CastleKingSide  bool
	CastleQueenSide bool
	Promotion       bool
	CapturedPiece   Piece
	PromotedPiece   Piece
	Check           bool
	Checkmate       bool
}

// UCI returns the long-algebraic UCI representation of the move this
// record describes.
func (r MoveRecord) UCI() string {
	m := Move{FromSquare: r.FromSquare, ToSquare: r.ToSquare}
	if r.Promotion {
		m.Promotion = r.PromotedPiece.Type
	}
	return m.String()
}
