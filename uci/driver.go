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

// Package uci drives a UCI-compatible chess engine subprocess: it spawns
// the engine, performs the handshake, and exposes a single-flight request
// protocol for the command/response exchanges defined by the protocol
// (isready/readyok, position+go/bestmove, and so on).
package uci

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/corvidchess/chess"
)

// CopyStatus is the engine's reported copy-protection state.
type CopyStatus uint32

const (
	CpUnknown CopyStatus = iota
	CpChecking
	CpOk
	CpError
)

// RegStatus is the engine's reported registration state.
type RegStatus uint32

const (
	RegUnknown RegStatus = iota
	RegChecking
	RegOk
	RegError
)

type concurrentWriter struct {
	m sync.Mutex
	w io.Writer
}

func (cw *concurrentWriter) Write(p []byte) (int, error) {
	cw.m.Lock()
	defer cw.m.Unlock()
	return cw.w.Write(p)
}

// pendingRequest represents the single in-flight request a [Driver] is
// waiting on. Only one may exist at a time: the send lock is held across
// send-and-wait, so there is never contention for this slot in practice,
// but the generation counter guards against a late, already-timed-out
// completion being delivered to a request that has since been retired.
type pendingRequest struct {
	generation uint64
	sentinel   commandType
	collected  []command
	done       chan command
}

// Driver is the GUI side of the UCI protocol: it manages the engine
// subprocess, performs the startup handshake, and exposes each
// request/response exchange as a blocking call. Methods that send a
// command to the engine acquire an internal send lock, so at most one
// request is ever in flight; [Driver.ReadInfo] and the status accessors
// may still be called concurrently with an in-flight request.
type Driver struct {
	proc    engineProcess
	logger  *concurrentWriter
	infoBuf *concurrentCircBuf[*Info]

	sendMu sync.Mutex

	mu         sync.Mutex
	pending    *pendingRequest
	generation uint64
	options    []*Option

	cpStatus     atomic.Uint32
	regStatus    atomic.Uint32
	engineName   atomic.Pointer[string]
	engineAuthor atomic.Pointer[string]
	lastScore    atomic.Pointer[Score]

	ctx    context.Context
	cancel context.CancelFunc
}

// NewDriver starts program, a path to a UCI-compatible chess engine, and
// returns a [Driver] for it. Callers must call [Driver.Quit] once done to
// release the subprocess and background goroutines.
func NewDriver(program string, settings Settings) (*Driver, error) {
	proc, err := newEngineProcess(program, settings)
	if err != nil {
		return nil, fmt.Errorf("could not start driver: %w: %w", ErrEngineUnavailable, err)
	}
	return newDriverFromProcess(proc, settings)
}

func newDriverFromProcess(proc engineProcess, settings Settings) (*Driver, error) {
	d := &Driver{
		proc:    proc,
		infoBuf: newCircBuf[*Info](128),
	}
	d.ctx, d.cancel = context.WithCancel(context.Background())

	w := settings.Logger
	if w == nil {
		w = io.Discard
	}
	d.logger = &concurrentWriter{w: w}

	go d.stdoutReadLoop()
	go d.stderrReadLoop()

	return d, nil
}

func (d *Driver) stderrReadLoop() {
	scnr := bufio.NewScanner(errReader{proc: d.proc})
	prefix := []byte("!<! ")
	base := len(prefix)
	for scnr.Scan() {
		prefix = append(prefix, scnr.Bytes()...)
		prefix = append(prefix, '\n')
		d.logger.Write(prefix)
		prefix = prefix[:base]
	}
}

type errReader struct{ proc engineProcess }

func (r errReader) Read(p []byte) (int, error) {
	return r.proc.ReadErr(p)
}

func (d *Driver) stdoutReadLoop() {
	scnr := bufio.NewScanner(d.proc)
	prefix := []byte("<<< ")
	base := len(prefix)
	for scnr.Scan() {
		line := scnr.Bytes()

		prefix = append(prefix, line...)
		prefix = append(prefix, '\n')
		d.logger.Write(prefix)
		prefix = prefix[:base]

		d.handleCommand(bytes.Clone(line))
	}
	d.abortPending()
}

// abortPending fails any request waiting on the engine once its stdout
// pipe closes, so callers don't block out to their full timeout after
// the engine has already died.
func (d *Driver) abortPending() {
	d.mu.Lock()
	p := d.pending
	d.pending = nil
	d.mu.Unlock()
	if p != nil {
		close(p.done)
	}
}

func (d *Driver) handleCommand(line []byte) {
	cmd := parseCommand(line)
	if cmd == nil {
		return
	}

	switch cmd.commandType() {
	case infoCmd:
		i := cmd.(*Info)
		d.infoBuf.Push(i)
		if i.Score != nil {
			d.lastScore.Store(i.Score)
		}
		return
	case copyprotectionCmd:
		d.cpStatus.Store(uint32(cmd.(copyProtection)))
		return
	case registrationCmd:
		switch cmd.(registration) {
		case regChecking:
			d.regStatus.Store(uint32(RegChecking))
		case regOK:
			d.regStatus.Store(uint32(RegOk))
		case regError:
			d.regStatus.Store(uint32(RegError))
		}
		return
	case idCmd:
		d.setID(cmd.(idCommand))
	}

	d.mu.Lock()
	p := d.pending
	if p == nil {
		d.mu.Unlock()
		return
	}
	if cmd.commandType() == p.sentinel {
		d.pending = nil
		d.mu.Unlock()
		p.done <- cmd
		return
	}
	p.collected = append(p.collected, cmd)
	d.mu.Unlock()
}

func (d *Driver) setID(id idCommand) {
	switch id.idt {
	case idName:
		v := id.value
		d.engineName.Store(&v)
	case idAuthor:
		v := id.value
		d.engineAuthor.Store(&v)
	}
}

// awaitSentinel registers interest in the next command of type sentinel
// and returns the channel it will be delivered on, along with the
// generation stamped on this request.
func (d *Driver) awaitSentinel(sentinel commandType) (uint64, <-chan command) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.generation++
	gen := d.generation
	p := &pendingRequest{generation: gen, sentinel: sentinel, done: make(chan command, 1)}
	d.pending = p
	return gen, p.done
}

// retire clears the pending slot if it still belongs to generation gen.
// Called on timeout/cancellation so a later, unrelated reply from the
// engine is not mistaken for this request's answer.
func (d *Driver) retire(gen uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil && d.pending.generation == gen {
		d.pending = nil
	}
}

func (d *Driver) collectedFor(gen uint64) []command {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.pending != nil && d.pending.generation == gen {
		return d.pending.collected
	}
	return nil
}

func (d *Driver) send(ctx context.Context, p []byte) error {
	result := make(chan error, 1)
	go func() {
		n, err := d.proc.Write(p)
		prefix := []byte(">>> ")
		prefix = append(prefix, p[:n]...)
		d.logger.Write(prefix)
		result <- err
	}()

	select {
	case err := <-result:
		if err != nil {
			return fmt.Errorf("could not send command to engine: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("could not send command to engine, context done: %w", ctx.Err())
	}
}

// request sends line, waits for the next command of type sentinel, and
// returns it. Send and wait happen under the send lock: only one request
// is ever in flight, which is what lets a single pending-request slot
// stand in for what would otherwise need per-caller dispatch.
func (d *Driver) request(ctx context.Context, line []byte, sentinel commandType) (command, []command, error) {
	d.sendMu.Lock()
	defer d.sendMu.Unlock()

	gen, done := d.awaitSentinel(sentinel)

	if err := d.send(ctx, line); err != nil {
		d.retire(gen)
		return nil, nil, err
	}

	select {
	case cmd, ok := <-done:
		if !ok {
			return nil, nil, ErrEngineExited
		}
		return cmd, d.collectedFor(gen), nil
	case <-ctx.Done():
		d.retire(gen)
		return nil, nil, fmt.Errorf("%w: %w", ErrEngineTimeout, ctx.Err())
	}
}

// Uci performs the opening UCI handshake. On success [Driver.Name] and
// [Driver.Author] are populated and the engine's declared options are
// returned.
func (d *Driver) Uci(timeout time.Duration) ([]*Option, error) {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()

	_, collected, err := d.request(ctx, []byte("uci\n"), uciokCmd)
	if err != nil {
		return nil, fmt.Errorf("could not initialize uci mode: %w", err)
	}

	options := make([]*Option, 0, len(collected))
	for _, c := range collected {
		if o, ok := c.(*Option); ok {
			options = append(options, o)
		}
		if id, ok := c.(idCommand); ok {
			d.setID(id)
		}
	}
	d.mu.Lock()
	d.options = options
	d.mu.Unlock()
	return options, nil
}

// Options returns the option descriptors harvested during the last
// [Driver.Uci] handshake, in the order the engine declared them.
func (d *Driver) Options() []*Option {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.options
}

// IsReady blocks until the engine responds readyok.
func (d *Driver) IsReady(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()

	_, _, err := d.request(ctx, []byte("isready\n"), readyokCmd)
	if err != nil {
		return fmt.Errorf("engine did not respond ready: %w", err)
	}
	return nil
}

// NewGame sends ucinewgame, telling the engine the next position is
// unrelated to anything searched before. Should be followed by
// [Driver.IsReady] to synchronize.
func (d *Driver) NewGame(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()
	d.sendMu.Lock()
	defer d.sendMu.Unlock()
	return d.send(ctx, []byte("ucinewgame\n"))
}

// SetOption sends setoption for name with the given value. Pass an empty
// value for button-type options, which take none.
func (d *Driver) SetOption(name, value string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()
	d.sendMu.Lock()
	defer d.sendMu.Unlock()

	line := fmt.Sprintf("setoption name %s", name)
	if value != "" {
		line += " value " + value
	}
	if err := d.send(ctx, []byte(line+"\n")); err != nil {
		return err
	}
	d.recordCurrent(name, value)
	return nil
}

// recordCurrent updates the Current field of the matching harvested option
// descriptor, if one exists, so [Driver.Options] reflects the value just
// sent.
func (d *Driver) recordCurrent(name, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, o := range d.options {
		if o.Name == name {
			v := value
			o.Current = &v
			return
		}
	}
}

// Position sends the position command: fen (or "startpos") followed by
// the UCI moves already played from it.
func (d *Driver) Position(fen string, moves []chess.Move, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()
	d.sendMu.Lock()
	defer d.sendMu.Unlock()

	var b strings.Builder
	b.WriteString("position ")
	if fen == "" || fen == "startpos" {
		b.WriteString("startpos")
	} else {
		b.WriteString("fen ")
		b.WriteString(fen)
	}
	if len(moves) > 0 {
		b.WriteString(" moves")
		for _, m := range moves {
			b.WriteByte(' ')
			b.WriteString(m.String())
		}
	}
	b.WriteByte('\n')
	return d.send(ctx, []byte(b.String()))
}

// BestMoveResult is the outcome of a [Driver.BestMove] search: the move
// the engine chose, the move it would like to ponder on (if any), and the
// most recent score reported in a buffered "info" line while the search
// ran.
type BestMoveResult struct {
	Best   chess.Move
	Ponder *chess.Move
	Score  *Score
}

// BestMove starts a fixed-time search (go movetime) and blocks until the
// engine reports bestmove. timeout must exceed movetime to leave room for
// process and IO overhead; a timeout at or below movetime will
// spuriously fail. On timeout or cancellation it returns a nil result and
// an error wrapping [ErrEngineTimeout]; if the engine's output closes
// first, the error wraps [ErrEngineExited].
func (d *Driver) BestMove(movetime time.Duration, timeout time.Duration) (*BestMoveResult, error) {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()

	d.lastScore.Store(nil)

	line := fmt.Sprintf("go movetime %d\n", movetime.Milliseconds())
	cmd, _, err := d.request(ctx, []byte(line), bestmoveCmd)
	if err != nil {
		return nil, fmt.Errorf("could not complete search: %w", err)
	}
	bm := cmd.(bestMove)
	return &BestMoveResult{Best: bm.best, Ponder: bm.ponder, Score: d.lastScore.Load()}, nil
}

// Debug toggles the engine's debug mode.
func (d *Driver) Debug(enabled bool, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(d.ctx, timeout)
	defer cancel()
	d.sendMu.Lock()
	defer d.sendMu.Unlock()

	msg := "debug off\n"
	if enabled {
		msg = "debug on\n"
	}
	return d.send(ctx, []byte(msg))
}

// ReadInfo returns the next buffered [Info] sent by the engine, blocking
// if none are available. Only the most recent 128 are retained; older
// ones are dropped once the buffer fills. Safe to call concurrently with
// any other Driver method.
func (d *Driver) ReadInfo() *Info {
	return d.infoBuf.Next()
}

// Name is the engine's self-reported name, set after [Driver.Uci]. Empty
// if not yet received.
func (d *Driver) Name() string {
	if v := d.engineName.Load(); v != nil {
		return *v
	}
	return ""
}

// Author is the engine's self-reported author, set after [Driver.Uci].
func (d *Driver) Author() string {
	if v := d.engineAuthor.Load(); v != nil {
		return *v
	}
	return ""
}

// CopyProtectionStatus returns the engine's most recently reported
// copy-protection state.
func (d *Driver) CopyProtectionStatus() CopyStatus {
	return CopyStatus(d.cpStatus.Load())
}

// RegistrationStatus returns the engine's most recently reported
// registration state.
func (d *Driver) RegistrationStatus() RegStatus {
	return RegStatus(d.regStatus.Load())
}

// Quit sends quit and waits up to graceful for the engine to exit on its
// own. If it hasn't, Terminate is sent and forceful is given before Kill
// is used as a last resort. After Quit returns, the Driver must not be
// used again.
func (d *Driver) Quit(graceful, forceful time.Duration) error {
	defer d.cancel()

	timer1, cancel1 := context.WithTimeout(context.Background(), graceful)
	defer cancel1()

	done := make(chan error, 1)
	go func() {
		d.sendMu.Lock()
		err := d.send(timer1, []byte("quit\n"))
		d.sendMu.Unlock()
		time.Sleep(graceful / 5)
		err = errors.Join(err, d.proc.CloseStdin())
		done <- errors.Join(err, d.proc.Wait())
	}()

	select {
	case err := <-done:
		return err
	case <-timer1.Done():
	}

	var errs error
	errs = errors.Join(errs, d.proc.Terminate())

	timer2, cancel2 := context.WithTimeout(context.Background(), forceful)
	defer cancel2()
	select {
	case err := <-done:
		return errors.Join(errs, err)
	case <-timer2.Done():
		errs = errors.Join(errs, d.proc.Kill())
	}

	return errors.Join(errs, <-done)
}
