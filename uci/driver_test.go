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
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngineProcess struct {
	stdinR, stdinW   *io.PipeReader
	stdoutR, stdoutW *io.PipeWriter
	stderrR, stderrW *io.PipeWriter
}

func newFakeEngineProcess() *fakeEngineProcess {
	stdinR, stdinW := io.Pipe()
	stdoutR, stdoutW := io.Pipe()
	stderrR, stderrW := io.Pipe()
	return &fakeEngineProcess{
		stdinR: stdinR, stdinW: stdinW,
		stdoutR: stdoutR, stdoutW: stdoutW,
		stderrR: stderrR, stderrW: stderrW,
	}
}

func (p *fakeEngineProcess) Terminate() error { return nil }
func (p *fakeEngineProcess) Kill() error {
	p.stdinR.Close()
	p.stdinW.Close()
	p.stdoutR.Close()
	p.stdoutW.Close()
	p.stderrR.Close()
	p.stderrW.Close()
	return nil
}
func (p *fakeEngineProcess) Wait() error                   { return nil }
func (p *fakeEngineProcess) Write(b []byte) (int, error)   { return p.stdinW.Write(b) }
func (p *fakeEngineProcess) Read(b []byte) (int, error)    { return p.stdoutR.Read(b) }
func (p *fakeEngineProcess) ReadErr(b []byte) (int, error) { return p.stderrR.Read(b) }
func (p *fakeEngineProcess) CloseStdin() error             { return p.stdinW.Close() }

func newTestDriver(t *testing.T, logger io.Writer) (*Driver, *fakeEngineProcess) {
	t.Helper()
	proc := newFakeEngineProcess()
	d, err := newDriverFromProcess(proc, Settings{Logger: logger})
	require.NoError(t, err)
	return d, proc
}

func TestDriverStdoutToLogger(t *testing.T) {
	var log strings.Builder
	_, proc := newTestDriver(t, &log)
	defer proc.Kill()

	proc.stdoutW.Write([]byte("line1\n"))
	proc.stdoutW.Write([]byte("line2"))
	proc.stdoutW.Write([]byte("line3\n"))

	require.Eventually(t, func() bool {
		return log.String() == "<<< line1\n<<< line2line3\n"
	}, time.Second, time.Millisecond)
}

func TestDriverStderrToLogger(t *testing.T) {
	var log strings.Builder
	_, proc := newTestDriver(t, &log)
	defer proc.Kill()

	proc.stderrW.Write([]byte("boom\n"))

	require.Eventually(t, func() bool {
		return log.String() == "!<! boom\n"
	}, time.Second, time.Millisecond)
}

func TestDriverUciSendsUci(t *testing.T) {
	d, proc := newTestDriver(t, nil)
	defer proc.Kill()

	go d.Uci(time.Second)

	buf := make([]byte, 20)
	n, err := proc.stdinR.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "uci\n", string(buf[:n]))
}

func TestDriverUciCollectsOptionsAndId(t *testing.T) {
	d, proc := newTestDriver(t, nil)
	defer proc.Kill()

	go func() {
		proc.stdinR.Read(make([]byte, 10))
		proc.stdoutW.Write([]byte("id name dummy engine\n"))
		proc.stdoutW.Write([]byte("id author test author\n"))
		proc.stdoutW.Write([]byte("option name Nullmove type check default true\n"))
		proc.stdoutW.Write([]byte("option name Selectivity type spin default 2 min 0 max 4\n"))
		proc.stdoutW.Write([]byte("uciok\n"))
	}()

	options, err := d.Uci(time.Second)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Nullmove", options[0].Name)
	assert.Equal(t, "Selectivity", options[1].Name)
	assert.Equal(t, "dummy engine", d.Name())
	assert.Equal(t, "test author", d.Author())
}

func TestDriverUciTimeout(t *testing.T) {
	d, proc := newTestDriver(t, nil)
	defer proc.Kill()

	go func() {
		proc.stdinR.Read(make([]byte, 10))
	}()

	_, err := d.Uci(50 * time.Millisecond)
	assert.Error(t, err)
}

func TestDriverIsReady(t *testing.T) {
	d, proc := newTestDriver(t, nil)
	defer proc.Kill()

	go func() {
		buf := make([]byte, 20)
		n, _ := proc.stdinR.Read(buf)
		if string(buf[:n]) == "isready\n" {
			proc.stdoutW.Write([]byte("readyok\n"))
		}
	}()

	assert.NoError(t, d.IsReady(time.Second))
}

func TestDriverIsReadyIgnoresUnrelatedLines(t *testing.T) {
	d, proc := newTestDriver(t, nil)
	defer proc.Kill()

	go func() {
		proc.stdinR.Read(make([]byte, 20))
		proc.stdoutW.Write([]byte("info depth 1\n"))
		proc.stdoutW.Write([]byte("readyok\n"))
	}()

	assert.NoError(t, d.IsReady(time.Second))
}

func TestDriverBestMoveReturnsResult(t *testing.T) {
	d, proc := newTestDriver(t, nil)
	defer proc.Kill()

	go func() {
		buf := make([]byte, 64)
		n, _ := proc.stdinR.Read(buf)
		assert.Contains(t, string(buf[:n]), "go movetime")
		proc.stdoutW.Write([]byte("info depth 1 score cp 10\n"))
		proc.stdoutW.Write([]byte("bestmove e2e4 ponder e7e5\n"))
	}()

	result, err := d.BestMove(10*time.Millisecond, time.Second)
	require.NoError(t, err)
	assert.Equal(t, "e2e4", result.Best.String())
	require.NotNil(t, result.Ponder)
	assert.Equal(t, "e7e5", result.Ponder.String())
	require.NotNil(t, result.Score)
	require.NotNil(t, result.Score.Cp)
	assert.Equal(t, 10, *result.Score.Cp)
}

func TestDriverReadInfo(t *testing.T) {
	d, proc := newTestDriver(t, nil)
	defer proc.Kill()

	proc.stdoutW.Write([]byte("info depth 3 nodes 1000 score cp 25\n"))

	info := d.ReadInfo()
	require.NotNil(t, info.Depth)
	assert.EqualValues(t, 3, *info.Depth)
	require.NotNil(t, info.Score)
	require.NotNil(t, info.Score.Cp)
	assert.EqualValues(t, 25, *info.Score.Cp)
}

func TestDriverSetOptionRecordsCurrentValue(t *testing.T) {
	d, proc := newTestDriver(t, nil)
	defer proc.Kill()

	go func() {
		proc.stdinR.Read(make([]byte, 10))
		proc.stdoutW.Write([]byte("option name Nullmove type check default true\n"))
		proc.stdoutW.Write([]byte("uciok\n"))
	}()
	_, err := d.Uci(time.Second)
	require.NoError(t, err)
	require.Len(t, d.Options(), 1)
	require.NotNil(t, d.Options()[0].Current)
	assert.Equal(t, "true", *d.Options()[0].Current)

	go func() {
		buf := make([]byte, 64)
		n, _ := proc.stdinR.Read(buf)
		assert.Equal(t, "setoption name Nullmove value false\n", string(buf[:n]))
	}()
	require.NoError(t, d.SetOption("Nullmove", "false", time.Second))

	require.NotNil(t, d.Options()[0].Current)
	assert.Equal(t, "false", *d.Options()[0].Current)
}

func TestDriverQuitSendsQuit(t *testing.T) {
	d, proc := newTestDriver(t, nil)

	buf := make([]byte, 20)
	var n int
	go func() {
		n, _ = proc.stdinR.Read(buf)
	}()

	err := d.Quit(100*time.Millisecond, 100*time.Millisecond)
	assert.NoError(t, err)
	assert.Equal(t, "quit\n", string(buf[:n]))
}

func TestDriverQuitEscalatesToKill(t *testing.T) {
	proc := &hangingProcess{unblock: make(chan struct{})}
	d, err := newDriverFromProcess(proc, Settings{})
	require.NoError(t, err)

	err = d.Quit(30*time.Millisecond, 30*time.Millisecond)
	assert.NoError(t, err)
	assert.True(t, proc.terminateCalled)
	assert.True(t, proc.killCalled)
}

type hangingProcess struct {
	unblock         chan struct{}
	terminateCalled bool
	killCalled      bool
}

func (p *hangingProcess) Terminate() error {
	p.terminateCalled = true
	return nil
}
func (p *hangingProcess) Kill() error {
	p.killCalled = true
	close(p.unblock)
	return nil
}
func (p *hangingProcess) Wait() error {
	<-p.unblock
	return nil
}
func (p *hangingProcess) Write(b []byte) (int, error)   { return len(b), nil }
func (p *hangingProcess) Read(b []byte) (int, error)    { <-p.unblock; return 0, io.EOF }
func (p *hangingProcess) ReadErr(b []byte) (int, error) { <-p.unblock; return 0, io.EOF }
func (p *hangingProcess) CloseStdin() error             { return nil }
