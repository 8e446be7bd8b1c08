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

func TestPieceStringCase(t *testing.T) {
	if WhiteQueen.String() != "Q" {
		t.Errorf("WhiteQueen.String() = %q, want %q", WhiteQueen.String(), "Q")
	}
	if BlackQueen.String() != "q" {
		t.Errorf("BlackQueen.String() = %q, want %q", BlackQueen.String(), "q")
	}
	if NoPiece.String() != "-" {
		t.Errorf("NoPiece.String() = %q, want %q", NoPiece.String(), "-")
	}
}

func TestColorString(t *testing.T) {
	if White.String() != "White" || Black.String() != "Black" {
		t.Errorf("unexpected color strings: %q %q", White.String(), Black.String())
	}
}

func TestParsePieceTypeRoundTrip(t *testing.T) {
	for _, pt := range []PieceType{Pawn, Rook, Knight, Bishop, Queen, King} {
		if got := parsePieceType(pt.String()); got != pt {
			t.Errorf("parsePieceType(%q) = %v, want %v", pt.String(), got, pt)
		}
	}
}
