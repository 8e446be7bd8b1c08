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

import "errors"

// Sentinel errors callers can match with errors.Is instead of parsing
// wrapped error strings.
var (
	// ErrEngineUnavailable is returned when the engine subprocess could
	// not be started at all.
	ErrEngineUnavailable = errors.New("uci: engine unavailable")
	// ErrEngineTimeout is returned when a request's deadline elapses
	// before the engine produces the expected sentinel line.
	ErrEngineTimeout = errors.New("uci: engine response timed out")
	// ErrEngineExited is returned when the engine subprocess exits (or
	// its pipes close) while a request is waiting on a response.
	ErrEngineExited = errors.New("uci: engine exited unexpectedly")
)
