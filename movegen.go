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

// pseudoLegalMoves generates every move available to the side to move
// without checking whether making it leaves that side's own king in
// check. Returns nil if the side to move is not set.
func (b *Board) pseudoLegalMoves() []Move {
	if b.sideToMove != White && b.sideToMove != Black {
		return nil
	}
	moves := make([]Move, 0, 40)
	moves = append(moves, b.pawnMoves()...)
	moves = append(moves, b.knightMoves()...)
	moves = append(moves, b.slidingMoves(Rook, rookDirections[:])...)
	moves = append(moves, b.slidingMoves(Bishop, bishopDirections[:])...)
	moves = append(moves, b.slidingMoves(Queen, queenDirections[:])...)
	moves = append(moves, b.kingMoves()...)
	moves = append(moves, b.castleMoves()...)
	return moves
}

func (b *Board) pawnMoves() []Move {
	moves := make([]Move, 0, 16)
	forward, startRow, promoteRow := -1, 6, 0
	if b.sideToMove == Black {
		forward, startRow, promoteRow = 1, 1, 7
	}
	for _, sq := range AllSquares {
		p := b.grid[sq]
		if p.Type != Pawn || p.Color != b.sideToMove {
			continue
		}
		row, col := sq.Row(), sq.Col()

		one := NewSquare(row+forward, col)
		if one != NoSquare && b.grid[one] == NoPiece {
			appendPawnMove(&moves, sq, one, promoteRow)
			if row == startRow {
				two := NewSquare(row+2*forward, col)
				if two != NoSquare && b.grid[two] == NoPiece {
					moves = append(moves, Move{FromSquare: sq, ToSquare: two})
				}
			}
		}

		for _, dc := range [2]int{-1, 1} {
			target := NewSquare(row+forward, col+dc)
			if target == NoSquare {
				continue
			}
			victim := b.grid[target]
			if victim != NoPiece && victim.Color != b.sideToMove {
				appendPawnMove(&moves, sq, target, promoteRow)
			} else if target == b.enPassant {
				moves = append(moves, Move{FromSquare: sq, ToSquare: target})
			}
		}
	}
	return moves
}

func appendPawnMove(moves *[]Move, from, to Square, promoteRow int) {
	if to.Row() == promoteRow {
		for _, pt := range [4]PieceType{Queen, Rook, Bishop, Knight} {
			*moves = append(*moves, Move{FromSquare: from, ToSquare: to, Promotion: pt})
		}
		return
	}
	*moves = append(*moves, Move{FromSquare: from, ToSquare: to})
}

func (b *Board) knightMoves() []Move {
	moves := make([]Move, 0, 8)
	for _, sq := range AllSquares {
		p := b.grid[sq]
		if p.Type != Knight || p.Color != b.sideToMove {
			continue
		}
		for _, off := range knightOffsets {
			target := NewSquare(sq.Row()+off[0], sq.Col()+off[1])
			if target == NoSquare {
				continue
			}
			victim := b.grid[target]
			if victim == NoPiece || victim.Color != b.sideToMove {
				moves = append(moves, Move{FromSquare: sq, ToSquare: target})
			}
		}
	}
	return moves
}

func (b *Board) kingMoves() []Move {
	moves := make([]Move, 0, 8)
	for _, sq := range AllSquares {
		p := b.grid[sq]
		if p.Type != King || p.Color != b.sideToMove {
			continue
		}
		for _, off := range kingOffsets {
			target := NewSquare(sq.Row()+off[0], sq.Col()+off[1])
			if target == NoSquare {
				continue
			}
			victim := b.grid[target]
			if victim == NoPiece || victim.Color != b.sideToMove {
				moves = append(moves, Move{FromSquare: sq, ToSquare: target})
			}
		}
	}
	return moves
}

var rookDirections = [4]func(Square) Square{squareToLeft, squareToRight, squareAbove, squareBelow}

var bishopDirections = [4]func(Square) Square{
	func(s Square) Square { return squareAbove(squareToLeft(s)) },
	func(s Square) Square { return squareAbove(squareToRight(s)) },
	func(s Square) Square { return squareBelow(squareToLeft(s)) },
	func(s Square) Square { return squareBelow(squareToRight(s)) },
}

var queenDirections = func() [8]func(Square) Square {
	var all [8]func(Square) Square
	copy(all[0:4], rookDirections[:])
	copy(all[4:8], bishopDirections[:])
	return all
}()

func (b *Board) slidingMoves(pt PieceType, directions []func(Square) Square) []Move {
	moves := make([]Move, 0, 14)
	for _, sq := range AllSquares {
		p := b.grid[sq]
		if p.Type != pt || p.Color != b.sideToMove {
			continue
		}
		for _, step := range directions {
			for t := step(sq); t != NoSquare; t = step(t) {
				victim := b.grid[t]
				if victim == NoPiece {
					moves = append(moves, Move{FromSquare: sq, ToSquare: t})
					continue
				}
				if victim.Color != b.sideToMove {
					moves = append(moves, Move{FromSquare: sq, ToSquare: t})
				}
				break
			}
		}
	}
	return moves
}

func (b *Board) castleMoves() []Move {
	moves := make([]Move, 0, 2)
	if b.sideToMove == White {
		opponent := Black
		if b.castleRights&WhiteKingSide != 0 &&
			b.grid[e1] == WhiteKing && b.grid[h1] == WhiteRook &&
			b.grid[f1] == NoPiece && b.grid[g1] == NoPiece &&
			!b.IsSquareAttacked(e1, opponent) && !b.IsSquareAttacked(f1, opponent) && !b.IsSquareAttacked(g1, opponent) {
			moves = append(moves, Move{FromSquare: e1, ToSquare: g1})
		}
		if b.castleRights&WhiteQueenSide != 0 &&
			b.grid[e1] == WhiteKing && b.grid[a1] == WhiteRook &&
			b.grid[b1] == NoPiece && b.grid[c1] == NoPiece && b.grid[d1] == NoPiece &&
			!b.IsSquareAttacked(e1, opponent) && !b.IsSquareAttacked(d1, opponent) && !b.IsSquareAttacked(c1, opponent) {
			moves = append(moves, Move{FromSquare: e1, ToSquare: c1})
		}
	} else if b.sideToMove == Black {
		opponent := White
		if b.castleRights&BlackKingSide != 0 &&
			b.grid[e8] == BlackKing && b.grid[h8] == BlackRook &&
			b.grid[f8] == NoPiece && b.grid[g8] == NoPiece &&
			!b.IsSquareAttacked(e8, opponent) && !b.IsSquareAttacked(f8, opponent) && !b.IsSquareAttacked(g8, opponent) {
			moves = append(moves, Move{FromSquare: e8, ToSquare: g8})
		}
		if b.castleRights&BlackQueenSide != 0 &&
			b.grid[e8] == BlackKing && b.grid[a8] == BlackRook &&
			b.grid[b8] == NoPiece && b.grid[c8] == NoPiece && b.grid[d8] == NoPiece &&
			!b.IsSquareAttacked(e8, opponent) && !b.IsSquareAttacked(d8, opponent) && !b.IsSquareAttacked(c8, opponent) {
			moves = append(moves, Move{FromSquare: e8, ToSquare: c8})
		}
	}
	return moves
}

// LegalMoves returns every fully legal move for the side to move: each
// pseudo-legal candidate is tentatively applied to a scratch copy of the
// board and discarded unless it leaves the moving side's own king safe.
// Returns nil if the side to move is not set, else a (possibly empty)
// slice.
func (b *Board) LegalMoves() []Move {
	pseudo := b.pseudoLegalMoves()
	if pseudo == nil {
		return nil
	}
	mover := b.sideToMove
	legal := make([]Move, 0, len(pseudo))
	for _, m := range pseudo {
		scratch := b.clone()
		scratch.applyMoveUnchecked(m)
		if !scratch.IsSquareAttacked(scratch.kingSquare(mover), scratch.sideToMove) {
			legal = append(legal, m)
		}
	}
	return legal
}
