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

// Directional steppers used by the ray-casting attack scan. Each returns
// NoSquare once it walks off the edge of the board.

func squareToLeft(s Square) Square {
	if s == NoSquare || s.Col() == 0 {
		return NoSquare
	}
	return NewSquare(s.Row(), s.Col()-1)
}

func squareToRight(s Square) Square {
	if s == NoSquare || s.Col() == 7 {
		return NoSquare
	}
	return NewSquare(s.Row(), s.Col()+1)
}

func squareAbove(s Square) Square {
	if s == NoSquare || s.Row() == 0 {
		return NoSquare
	}
	return NewSquare(s.Row()-1, s.Col())
}

func squareBelow(s Square) Square {
	if s == NoSquare || s.Row() == 7 {
		return NoSquare
	}
	return NewSquare(s.Row()+1, s.Col())
}

// IsSquareAttacked reports whether any piece of color by can reach sq in
// one pseudo-legal move, ignoring whether making that move would leave
// its own king in check. It scans outward from sq in every ray direction
// and tests the fixed knight/king offsets, per-piece, stopping each ray
// at the first occupied square.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	if sq == NoSquare {
		return false
	}
	return b.isAttackedByPawn(sq, by) ||
		b.isAttackedByRookOrQueen(sq, by) ||
		b.isAttackedByBishopOrQueen(sq, by) ||
		b.isAttackedByKnight(sq, by) ||
		b.isAttackedByKing(sq, by)
}

func (b *Board) isAttackedByPawn(sq Square, by Color) bool {
	// A pawn of color `by` attacks diagonally toward the opposite rank
	// it advances toward, so to find attackers of sq we look one rank
	// behind sq from the attacker's perspective.
	var attackerRankDelta int
	if by == White {
		attackerRankDelta = 1 // white pawns attack upward (toward row 0); attacker sits one row below (higher row index)
	} else {
		attackerRankDelta = -1
	}
	row := sq.Row() + attackerRankDelta
	for _, col := range [2]int{sq.Col() - 1, sq.Col() + 1} {
		candidate := NewSquare(row, col)
		if candidate == NoSquare {
			continue
		}
		p := b.Piece(candidate)
		if p.Type == Pawn && p.Color == by {
			return true
		}
	}
	return false
}

func (b *Board) isAttackedByRookOrQueen(sq Square, by Color) bool {
	steppers := [4]func(Square) Square{squareToLeft, squareToRight, squareAbove, squareBelow}
	for _, step := range steppers {
		for t := step(sq); t != NoSquare; t = step(t) {
			p := b.Piece(t)
			if p.Type == NoPieceType {
				continue
			}
			if (p.Type == Rook || p.Type == Queen) && p.Color == by {
				return true
			}
			break
		}
	}
	return false
}

func (b *Board) isAttackedByBishopOrQueen(sq Square, by Color) bool {
	diagonals := [4]func(Square) Square{
		func(s Square) Square { return squareAbove(squareToLeft(s)) },
		func(s Square) Square { return squareAbove(squareToRight(s)) },
		func(s Square) Square { return squareBelow(squareToLeft(s)) },
		func(s Square) Square { return squareBelow(squareToRight(s)) },
	}
	for _, step := range diagonals {
		for t := step(sq); t != NoSquare; t = step(t) {
			p := b.Piece(t)
			if p.Type == NoPieceType {
				continue
			}
			if (p.Type == Bishop || p.Type == Queen) && p.Color == by {
				return true
			}
			break
		}
	}
	return false
}

var knightOffsets = [8][2]int{
	{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
	{1, -2}, {1, 2}, {2, -1}, {2, 1},
}

func (b *Board) isAttackedByKnight(sq Square, by Color) bool {
	for _, off := range knightOffsets {
		t := NewSquare(sq.Row()+off[0], sq.Col()+off[1])
		if t == NoSquare {
			continue
		}
		p := b.Piece(t)
		if p.Type == Knight && p.Color == by {
			return true
		}
	}
	return false
}

var kingOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

func (b *Board) isAttackedByKing(sq Square, by Color) bool {
	for _, off := range kingOffsets {
		t := NewSquare(sq.Row()+off[0], sq.Col()+off[1])
		if t == NoSquare {
			continue
		}
		p := b.Piece(t)
		if p.Type == King && p.Color == by {
			return true
		}
	}
	return false
}

func (b *Board) kingSquare(c Color) Square {
	for _, sq := range AllSquares {
		p := b.Piece(sq)
		if p.Type == King && p.Color == c {
			return sq
		}
	}
	return NoSquare
}
