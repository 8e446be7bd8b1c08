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

import "testing"

func TestIsSquareAttackedByPawn(t *testing.T) {
	b := mustLoad(t, "8/8/8/3p4/8/8/8/8 w - - 0 1")
	if !b.IsSquareAttacked(ParseSquare("c4"), Black) {
		t.Error("c4 should be attacked by the black pawn on d5")
	}
	if !b.IsSquareAttacked(ParseSquare("e4"), Black) {
		t.Error("e4 should be attacked by the black pawn on d5")
	}
	if b.IsSquareAttacked(ParseSquare("d4"), Black) {
		t.Error("d4 (straight ahead) should not be attacked by a pawn")
	}
}

func TestIsSquareAttackedByKnight(t *testing.T) {
	b := mustLoad(t, "8/8/8/4N3/8/8/8/8 w - - 0 1")
	if !b.IsSquareAttacked(ParseSquare("f7"), White) {
		t.Error("f7 should be attacked by knight on e5")
	}
	if b.IsSquareAttacked(ParseSquare("e6"), White) {
		t.Error("e6 is not an L-shape from e5")
	}
}

func TestIsSquareAttackedByRookBlockedPath(t *testing.T) {
	b := mustLoad(t, "8/8/8/8/8/8/8/R3K3 w - - 0 1")
	if !b.IsSquareAttacked(ParseSquare("d1"), White) {
		t.Error("d1 should be attacked by the rook on a1")
	}
	if b.IsSquareAttacked(ParseSquare("g1"), White) {
		t.Error("g1 is beyond the blocking king on e1 and not adjacent to it, should not be attacked")
	}
}

func TestIsSquareAttackedByBishop(t *testing.T) {
	b := mustLoad(t, "8/8/8/8/4B3/8/8/8 w - - 0 1")
	if !b.IsSquareAttacked(ParseSquare("h7"), White) {
		t.Error("h7 should be attacked diagonally by the bishop on e4")
	}
}

func TestIsSquareAttackedByKing(t *testing.T) {
	b := mustLoad(t, "8/8/8/4k3/8/8/8/8 w - - 0 1")
	if !b.IsSquareAttacked(ParseSquare("e4"), Black) {
		t.Error("e4 should be attacked by the adjacent king")
	}
	if b.IsSquareAttacked(ParseSquare("e3"), Black) {
		t.Error("e3 is two ranks away, should not be attacked by the king")
	}
}

func TestAttackIgnoresEnPassantState(t *testing.T) {
	// Attack detection is pure diagonal geometry: whether the en-passant
	// field happens to be set or cleared must not change which squares a
	// pawn is considered to attack.
	withEP := mustLoad(t, "8/8/8/3pP3/8/8/8/8 b - d6 0 1")
	withoutEP := mustLoad(t, "8/8/8/3pP3/8/8/8/8 b - - 0 1")
	if got, want := withEP.IsSquareAttacked(ParseSquare("d6"), White), withoutEP.IsSquareAttacked(ParseSquare("d6"), White); got != want {
		t.Errorf("attack on d6 depends on en-passant state: with-ep=%v without-ep=%v", got, want)
	}
}

func TestAttackIgnoresCastlingRights(t *testing.T) {
	// Castling legality involves attack checks on the king's path, but
	// attack detection itself must not special-case castling rights: a
	// square's attacked-ness is the same whether or not rights remain.
	withRights := mustLoad(t, "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	withoutRights := mustLoad(t, "r3k2r/8/8/8/8/8/8/R3K2R w - - 0 1")
	for _, sq := range []string{"e1", "f1", "g1", "c1", "d1"} {
		got := withRights.IsSquareAttacked(ParseSquare(sq), Black)
		want := withoutRights.IsSquareAttacked(ParseSquare(sq), Black)
		if got != want {
			t.Errorf("attack on %s depends on castling rights: with=%v without=%v", sq, got, want)
		}
	}
}

// Every square attacked by a color is reachable by a pseudo-legal
// non-castle move of that color, except a square holding one of the
// attacker's own pieces: it counts as attacked (defended), but no
// generator places a move onto a friendly piece, so such squares are
// skipped. In these positions every empty square a pawn attacks is also
// reachable by a pawn push.
func TestAttackedSquareIsPseudoLegallyReachable(t *testing.T) {
	positions := []string{
		DefaultFEN,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"4r3/8/8/8/8/8/4N3/4K3 w - - 0 1",
		"8/8/8/8/4B3/8/8/8 w - - 0 1",
	}
	for _, fen := range positions {
		b := mustLoad(t, fen)
		for _, attacker := range []Color{White, Black} {
			saved := b.sideToMove
			b.sideToMove = attacker
			pseudo := b.pseudoLegalMoves()
			b.sideToMove = saved

			reachable := map[Square]bool{}
			for _, m := range pseudo {
				mover := b.grid[m.FromSquare]
				if mover.Type == King && abs(m.ToSquare.Col()-m.FromSquare.Col()) == 2 {
					continue // castling, excluded by the property
				}
				reachable[m.ToSquare] = true
			}
			for _, sq := range AllSquares {
				p := b.grid[sq]
				if p.Color == attacker {
					continue
				}
				if b.IsSquareAttacked(sq, attacker) && !reachable[sq] {
					t.Errorf("fen=%q: %v attacked by %v but not pseudo-legally reachable", fen, sq, attacker)
				}
			}
		}
	}
}

// A pawn capture of an actual enemy piece is both an attack and a
// pseudo-legal move.
func TestPawnAttackOnOccupiedSquareIsReachable(t *testing.T) {
	b := mustLoad(t, "8/8/8/3p4/4P3/8/8/8 w - - 0 1")
	if !b.IsSquareAttacked(ParseSquare("d5"), White) {
		t.Fatal("white pawn on e4 should attack d5")
	}
	found := false
	for _, m := range b.pseudoLegalMoves() {
		if m.FromSquare == ParseSquare("e4") && m.ToSquare == ParseSquare("d5") {
			found = true
		}
	}
	if !found {
		t.Error("pawn capture of the piece on d5 should be a pseudo-legal move")
	}
}
