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

import "go.uber.org/zap"

// ZapLogger adapts a [zap.SugaredLogger] to the chess.Logger interface, so
// the same logger configured for the rest of a program can be handed to
// [chess.Board.SetLogger].
type ZapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger wraps z for use as a chess.Logger.
func NewZapLogger(z *zap.Logger) ZapLogger {
	return ZapLogger{sugar: z.Sugar()}
}

func (l ZapLogger) Debugf(format string, args ...any) { l.sugar.Debugf(format, args...) }
func (l ZapLogger) Infof(format string, args ...any)  { l.sugar.Infof(format, args...) }
func (l ZapLogger) Warnf(format string, args ...any)  { l.sugar.Warnf(format, args...) }
func (l ZapLogger) Errorf(format string, args ...any) { l.sugar.Errorf(format, args...) }

// logWriter adapts a [zap.SugaredLogger] to an io.Writer so it can be used
// as a [Settings.Logger], capturing the raw protocol trace at debug level.
type logWriter struct {
	sugar *zap.SugaredLogger
}

// NewLogWriter returns an io.Writer that forwards each write to z at debug
// level, trimming the trailing newline each protocol line ends with.
func NewLogWriter(z *zap.Logger) logWriter {
	return logWriter{sugar: z.Sugar()}
}

func (w logWriter) Write(p []byte) (int, error) {
	msg := string(p)
	for len(msg) > 0 && (msg[len(msg)-1] == '\n' || msg[len(msg)-1] == '\r') {
		msg = msg[:len(msg)-1]
	}
	w.sugar.Debug(msg)
	return len(p), nil
}
