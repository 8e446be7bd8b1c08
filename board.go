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
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// DefaultFEN is the FEN of the standard chess starting position.
const DefaultFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// CastleRights is a 4-bit set of the castling rights still available to
// either side.
type CastleRights uint8

const (
	WhiteKingSide CastleRights = 1 << iota
	WhiteQueenSide
	BlackKingSide
	BlackQueenSide
)

var (
	a1 = NewSquare(7, 0)
	b1 = NewSquare(7, 1)
	c1 = NewSquare(7, 2)
	d1 = NewSquare(7, 3)
	e1 = NewSquare(7, 4)
	f1 = NewSquare(7, 5)
	g1 = NewSquare(7, 6)
	h1 = NewSquare(7, 7)

	a8 = NewSquare(0, 0)
	b8 = NewSquare(0, 1)
	c8 = NewSquare(0, 2)
	d8 = NewSquare(0, 3)
	e8 = NewSquare(0, 4)
	f8 = NewSquare(0, 5)
	g8 = NewSquare(0, 6)
	h8 = NewSquare(0, 7)
)

// PromotionChooser selects the piece type a pawn reaching its last rank
// promotes to. It is invoked with the move's from- and to-squares; its
// return value should be one of Queen, Rook, Bishop, or Knight; any other
// value is replaced by Queen when the move is applied. The Board
// holds exactly one current chooser, defaulting to one that always
// chooses Queen.
type PromotionChooser func(from, to Square) PieceType

func defaultPromotionChooser(_, _ Square) PieceType { return Queen }

// Logger is the minimal structured-logging collaborator the Board (and,
// via the uci package, the engine driver) accepts. A nil Logger is valid
// and turns every call into a no-op; callers never need to nil-check
// before logging.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Infof(string, ...any)  {}
func (noopLogger) Warnf(string, ...any)  {}
func (noopLogger) Errorf(string, ...any) {}

// boardState is the full snapshot of mutable position state, pushed to
// history on every applied move and restored wholesale on Undo. Reversible
// history is implemented as stacked snapshots rather than delta
// make/unmake.
type boardState struct {
	grid           [64]Piece
	sideToMove     Color
	castleRights   CastleRights
	enPassant      Square
	halfMoveClock  int
	fullMoveNumber int
}

// Board is the authoritative, mutable chess position: piece placement,
// side to move, castling rights, en-passant target, move clocks, and
// reversible history. The zero value is not ready for play; use [NewBoard]
// or [Board.UnmarshalText] to initialize one.
type Board struct {
	boardState

	history          []boardState
	records          []MoveRecord
	promotionChooser PromotionChooser
	logger           Logger
}

// NewBoard returns a Board set to the standard chess starting position.
func NewBoard() *Board {
	b := &Board{}
	// DefaultFEN is well-formed; this cannot fail.
	_ = b.UnmarshalText([]byte(DefaultFEN))
	return b
}

// SetLogger installs a structured logger used for diagnostic messages.
// Passing nil restores the no-op default.
func (b *Board) SetLogger(l Logger) {
	if l == nil {
		l = noopLogger{}
	}
	b.logger = l
}

func (b *Board) log() Logger {
	if b.logger == nil {
		return noopLogger{}
	}
	return b.logger
}

// SetPromotionChooser installs the function invoked whenever a move
// applied through [Board.ApplyMove] promotes a pawn. Passing nil restores
// the default, which always chooses a queen.
func (b *Board) SetPromotionChooser(chooser PromotionChooser) {
	if chooser == nil {
		chooser = defaultPromotionChooser
	}
	b.promotionChooser = chooser
}

func (b *Board) chooser() PromotionChooser {
	if b.promotionChooser == nil {
		return defaultPromotionChooser
	}
	return b.promotionChooser
}

// Piece returns the piece on s, or [NoPiece] if s is empty or invalid.
func (b *Board) Piece(s Square) Piece {
	if !s.Valid() {
		return NoPiece
	}
	return b.grid[s]
}

// ReadSquare is a read-only accessor for rendering: it returns the FEN
// piece letter for the square at the given zero-based row (0 = rank 8)
// and column (0 = file a), or '.' if the square is empty or out of range.
func (b *Board) ReadSquare(row, col int) byte {
	sq := NewSquare(row, col)
	if sq == NoSquare {
		return '.'
	}
	p := b.grid[sq]
	if p == NoPiece {
		return '.'
	}
	return p.String()[0]
}

// SideToMove returns the color to move next.
func (b *Board) SideToMove() Color { return b.sideToMove }

// CastleRightsSet returns the current castling-rights set.
func (b *Board) CastleRightsSet() CastleRights { return b.castleRights }

// EnPassantSquare returns the current en-passant target square, or
// [NoSquare] if none is set.
func (b *Board) EnPassantSquare() Square { return b.enPassant }

// HalfMoveClock returns the number of half-moves since the last capture
// or pawn move.
func (b *Board) HalfMoveClock() int { return b.halfMoveClock }

// FullMoveNumber returns the current full-move counter.
func (b *Board) FullMoveNumber() int { return b.fullMoveNumber }

// clone returns a deep copy of the Board's position state. History,
// records and the promotion chooser are intentionally not copied: clone
// is used to tentatively try a move and throw the result away, not to
// fork play.
func (b *Board) clone() *Board {
	return &Board{boardState: b.boardState}
}

// UnmarshalText implements [encoding.TextUnmarshaler]. It parses six
// FEN fields and, on success, replaces the Board's entire state and
// clears history. On failure the Board is left unchanged.
func (b *Board) UnmarshalText(fen []byte) error {
	fields := strings.Fields(string(fen))
	if len(fields) != 6 {
		return invalidFen("expected 6 space-separated fields, got %d", len(fields))
	}
	var s boardState
	if err := parseBoardBody(fields[0], &s.grid); err != nil {
		return err
	}
	color := parseColor(fields[1])
	if color == NoColor {
		return invalidFen("invalid side to move %q", fields[1])
	}
	s.sideToMove = color
	rights, err := parseCastleRights(fields[2])
	if err != nil {
		return err
	}
	s.castleRights = rights
	ep, err := parseEnPassantField(fields[3])
	if err != nil {
		return err
	}
	s.enPassant = ep
	half, err := strconv.Atoi(fields[4])
	if err != nil {
		return invalidFen("invalid halfmove clock %q", fields[4])
	}
	s.halfMoveClock = half
	full, err := strconv.Atoi(fields[5])
	if err != nil {
		return invalidFen("invalid fullmove number %q", fields[5])
	}
	s.fullMoveNumber = full

	b.boardState = s
	b.history = nil
	b.records = nil
	return nil
}

func parseBoardBody(body string, grid *[64]Piece) error {
	row, col := 0, 0
	for _, r := range body {
		switch {
		case r == '/':
			if col != 8 {
				return invalidFen("rank ended with %d files, expected 8", col)
			}
			row++
			col = 0
		case unicode.IsDigit(r):
			n := int(r - '0')
			if n < 1 || n > 8 || col+n > 8 {
				return invalidFen("invalid empty-square run %q", r)
			}
			col += n
		default:
			p, err := parsePieceLetter(r)
			if err != nil {
				return err
			}
			if col >= 8 || row >= 8 {
				return invalidFen("piece placement overflows the board")
			}
			grid[NewSquare(row, col)] = p
			col++
		}
	}
	if row != 7 || col != 8 {
		return invalidFen("piece placement does not describe exactly 8 ranks of 8 files")
	}
	return nil
}

func parsePieceLetter(r rune) (Piece, error) {
	pt := parsePieceType(strings.ToLower(string(r)))
	if pt == NoPieceType {
		return NoPiece, invalidFen("unrecognized piece letter %q", r)
	}
	color := White
	if unicode.IsLower(r) {
		color = Black
	}
	return Piece{Type: pt, Color: color}, nil
}

func parseCastleRights(field string) (CastleRights, error) {
	if field == "-" {
		return 0, nil
	}
	var rights CastleRights
	for _, r := range field {
		switch r {
		case 'K':
			rights |= WhiteKingSide
		case 'Q':
			rights |= WhiteQueenSide
		case 'k':
			rights |= BlackKingSide
		case 'q':
			rights |= BlackQueenSide
		default:
			return 0, invalidFen("invalid castling rights character %q", r)
		}
	}
	return rights, nil
}

func parseEnPassantField(field string) (Square, error) {
	if field == "-" {
		return NoSquare, nil
	}
	sq := ParseSquare(field)
	if sq == NoSquare {
		return NoSquare, invalidFen("invalid en passant square %q", field)
	}
	return sq, nil
}

// MarshalText implements [encoding.TextMarshaler]. It produces the
// inverse of [Board.UnmarshalText]: a six-field FEN string with
// empty-square runs merged and an empty castling-rights field rendered
// as "-".
func (b *Board) MarshalText() ([]byte, error) {
	var sb strings.Builder
	sb.WriteString(b.boardBodyString())
	sb.WriteByte(' ')
	switch b.sideToMove {
	case White:
		sb.WriteString("w")
	case Black:
		sb.WriteString("b")
	default:
		return nil, fmt.Errorf("could not marshal board: side to move not set")
	}
	sb.WriteByte(' ')
	sb.WriteString(b.castleRightsString())
	sb.WriteByte(' ')
	sb.WriteString(b.enPassant.String())
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.halfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(b.fullMoveNumber))
	return []byte(sb.String()), nil
}

func (b *Board) boardBodyString() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			p := b.grid[NewSquare(row, col)]
			if p == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(p.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row != 7 {
			sb.WriteByte('/')
		}
	}
	return sb.String()
}

func (b *Board) castleRightsString() string {
	var sb strings.Builder
	if b.castleRights&WhiteKingSide != 0 {
		sb.WriteByte('K')
	}
	if b.castleRights&WhiteQueenSide != 0 {
		sb.WriteByte('Q')
	}
	if b.castleRights&BlackKingSide != 0 {
		sb.WriteByte('k')
	}
	if b.castleRights&BlackQueenSide != 0 {
		sb.WriteByte('q')
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// FEN returns the board's FEN representation. It cannot fail once
// sideToMove has been set by UnmarshalText or NewBoard.
func (b *Board) FEN() string {
	text, err := b.MarshalText()
	if err != nil {
		return ""
	}
	return string(text)
}

// String renders the board as an 8x8 grid from White's perspective with
// rank/file labels, matching the teacher's pretty-printer convention.
func (b *Board) String() string {
	var sb strings.Builder
	for row := 0; row < 8; row++ {
		sb.WriteString(Rank(8 - row).String())
		for col := 0; col < 8; col++ {
			sb.WriteByte(b.ReadSquare(row, col))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(" abcdefgh")
	return sb.String()
}

// ApplyMove attempts the move from "from" to "to". It returns true iff
// the move is fully legal, in which case the position is updated, a
// snapshot is pushed to history for [Board.Undo], and a [MoveRecord] is
// appended. On false the Board is left exactly as it was.
func (b *Board) ApplyMove(from, to Square) bool {
	if from == to || !from.Valid() || !to.Valid() {
		return false
	}
	mover := b.grid[from]
	if mover == NoPiece || mover.Color != b.sideToMove {
		return false
	}

	var chosen Move
	found := false
	for _, m := range b.LegalMoves() {
		if m.FromSquare == from && m.ToSquare == to {
			chosen = m
			found = true
			break
		}
	}
	if !found {
		return false
	}
	if chosen.Promotion != NoPieceType {
		chosen.Promotion = b.chooser()(from, to)
		switch chosen.Promotion {
		case Queen, Rook, Bishop, Knight:
		default:
			chosen.Promotion = Queen
		}
	}
	b.commitMove(chosen)
	return true
}

// ApplyUCIMove parses and applies a long-algebraic UCI move such as
// "e2e4" or "e7e8q". It returns true iff the move was legal.
func (b *Board) ApplyUCIMove(uci string) bool {
	m, err := ParseUCIMove(uci)
	if err != nil {
		b.log().Warnf("could not parse uci move %q: %v", uci, err)
		return false
	}
	for _, legal := range b.LegalMoves() {
		if legal.FromSquare != m.FromSquare || legal.ToSquare != m.ToSquare {
			continue
		}
		if legal.Promotion != NoPieceType {
			want := m.Promotion
			if want == NoPieceType {
				want = Queen
			}
			if legal.Promotion != want {
				continue
			}
		}
		b.commitMove(legal)
		return true
	}
	return false
}

// commitMove pushes a history snapshot, applies the move unconditionally
// (it is assumed already legality-checked), updates clocks/rights/en
// passant, and records a MoveRecord describing what happened.
func (b *Board) commitMove(m Move) {
	b.history = append(b.history, b.boardState)

	rec := MoveRecord{
		Piece:      b.grid[m.FromSquare],
		FromSquare: m.FromSquare,
		ToSquare:   m.ToSquare,
	}
	if target := b.grid[m.ToSquare]; target != NoPiece {
		rec.Capture = true
		rec.CapturedPiece = target
	}
	if rec.Piece.Type == Pawn && m.ToSquare == b.enPassant && !rec.Capture {
		rec.EnPassant = true
		rec.Capture = true
	}
	if rec.Piece.Type == King {
		switch {
		case m.FromSquare == e1 && m.ToSquare == g1,
			m.FromSquare == e8 && m.ToSquare == g8:
			rec.CastleKingSide = true
		case m.FromSquare == e1 && m.ToSquare == c1,
			m.FromSquare == e8 && m.ToSquare == c8:
			rec.CastleQueenSide = true
		}
	}
	if m.Promotion != NoPieceType {
		rec.Promotion = true
		rec.PromotedPiece = Piece{Type: m.Promotion, Color: rec.Piece.Color}
	}

	wasPawnOrCapture := rec.Piece.Type == Pawn || rec.Capture

	b.applyMoveUnchecked(m)

	if wasPawnOrCapture {
		b.halfMoveClock = 0
	} else {
		b.halfMoveClock++
	}
	if b.sideToMove == White {
		b.fullMoveNumber++
	}

	rec.Check = b.IsCheck()
	rec.Checkmate = rec.Check && len(b.LegalMoves()) == 0

	b.records = append(b.records, rec)
}

// applyMoveUnchecked mutates the grid and position-state fields for m
// without any legality check, updating castling rights, the en-passant
// target, and side to move. Used both by commitMove and by LegalMoves's
// tentative-apply/rollback scan.
func (b *Board) applyMoveUnchecked(m Move) {
	mover := b.grid[m.FromSquare]

	if mover.Type == Pawn && m.ToSquare == b.enPassant && b.grid[m.ToSquare] == NoPiece {
		capturedRow := m.FromSquare.Row()
		b.grid[NewSquare(capturedRow, m.ToSquare.Col())] = NoPiece
	}

	b.grid[m.ToSquare] = mover
	b.grid[m.FromSquare] = NoPiece

	if mover.Type == King {
		switch {
		case m.FromSquare == e1 && m.ToSquare == g1:
			b.grid[f1] = b.grid[h1]
			b.grid[h1] = NoPiece
		case m.FromSquare == e1 && m.ToSquare == c1:
			b.grid[d1] = b.grid[a1]
			b.grid[a1] = NoPiece
		case m.FromSquare == e8 && m.ToSquare == g8:
			b.grid[f8] = b.grid[h8]
			b.grid[h8] = NoPiece
		case m.FromSquare == e8 && m.ToSquare == c8:
			b.grid[d8] = b.grid[a8]
			b.grid[a8] = NoPiece
		}
	}

	if m.Promotion != NoPieceType {
		b.grid[m.ToSquare] = Piece{Type: m.Promotion, Color: mover.Color}
	}

	b.updateCastleRights(m)

	if mover.Type == Pawn && abs(m.ToSquare.Row()-m.FromSquare.Row()) == 2 {
		skipped := NewSquare((m.FromSquare.Row()+m.ToSquare.Row())/2, m.FromSquare.Col())
		b.enPassant = skipped
	} else {
		b.enPassant = NoSquare
	}

	b.sideToMove = b.sideToMove.opposite()
}

func (b *Board) updateCastleRights(m Move) {
	clearFor := func(sq Square) {
		switch sq {
		case e1:
			b.castleRights &^= WhiteKingSide | WhiteQueenSide
		case e8:
			b.castleRights &^= BlackKingSide | BlackQueenSide
		case a1:
			b.castleRights &^= WhiteQueenSide
		case h1:
			b.castleRights &^= WhiteKingSide
		case a8:
			b.castleRights &^= BlackQueenSide
		case h8:
			b.castleRights &^= BlackKingSide
		}
	}
	clearFor(m.FromSquare)
	clearFor(m.ToSquare)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Undo reverts the most recent applied move, restoring the Board to the
// snapshot taken just before it, and returns the record of the move that
// was undone. The second return value is false (and the Board untouched)
// if there is no history to undo.
func (b *Board) Undo() (MoveRecord, bool) {
	if len(b.history) == 0 {
		return MoveRecord{}, false
	}
	last := len(b.history) - 1
	b.boardState = b.history[last]
	b.history = b.history[:last]
	rec := b.records[len(b.records)-1]
	b.records = b.records[:len(b.records)-1]
	return rec, true
}

// MoveRecords returns the sequence of applied moves, oldest first. The
// returned slice must not be mutated.
func (b *Board) MoveRecords() []MoveRecord {
	return b.records
}

// UCIMoveList returns the moves applied so far, oldest first, rendered
// as long-algebraic UCI strings — the form a "position startpos moves
// ..." command expects.
func (b *Board) UCIMoveList() []string {
	list := make([]string, len(b.records))
	for i, r := range b.records {
		list[i] = r.UCI()
	}
	return list
}

// IsCheck reports whether the side to move is currently in check.
func (b *Board) IsCheck() bool {
	king := b.kingSquare(b.sideToMove)
	if king == NoSquare {
		return false
	}
	return b.IsSquareAttacked(king, b.sideToMove.opposite())
}

// IsCheckmate reports whether the side to move is in check with no legal
// reply.
func (b *Board) IsCheckmate() bool {
	return b.IsCheck() && len(b.LegalMoves()) == 0
}

// IsStalemate reports whether the side to move is not in check but has
// no legal move. It does not consider the fifty-move rule or repetition.
func (b *Board) IsStalemate() bool {
	return !b.IsCheck() && len(b.LegalMoves()) == 0
}

func (c Color) opposite() Color {
	switch c {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoColor
	}
}
