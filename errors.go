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

import "fmt"

// InvalidFenError reports why a FEN string was rejected by [Board.UnmarshalText].
type InvalidFenError struct {
	Reason string
}

func (e *InvalidFenError) Error() string {
	return fmt.Sprintf("invalid fen: %s", e.Reason)
}

func invalidFen(format string, args ...any) error {
	return &InvalidFenError{Reason: fmt.Sprintf(format, args...)}
}
