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

//go:build unix

package uci

import (
	"fmt"
	"io"
	"os/exec"
	"syscall"
)

type unixEngineProcess struct {
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
	cmd    *exec.Cmd
}

// newEngineProcess starts program, a path to a UCI-compatible engine. The
// process is placed in its own process group so Terminate/Kill can reach
// every child it spawns rather than just the immediate process.
func newEngineProcess(program string, settings Settings) (engineProcess, error) {
	cmd := exec.Command(program, settings.Args...)
	cmd.Env = settings.Env
	cmd.Dir = settings.WorkDir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	ep := unixEngineProcess{cmd: cmd}
	var err error
	ep.stdout, err = cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	ep.stdin, err = cmd.StdinPipe()
	if err != nil {
		ep.stdout.Close()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	ep.stderr, err = cmd.StderrPipe()
	if err != nil {
		ep.stdout.Close()
		ep.stdin.Close()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	if err := cmd.Start(); err != nil {
		ep.stdin.Close()
		ep.stdout.Close()
		ep.stderr.Close()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	return &ep, nil
}

func (ep *unixEngineProcess) Terminate() error {
	return syscall.Kill(-ep.cmd.Process.Pid, syscall.SIGTERM)
}

func (ep *unixEngineProcess) Kill() error {
	return syscall.Kill(-ep.cmd.Process.Pid, syscall.SIGKILL)
}

func (ep *unixEngineProcess) Wait() error {
	return ep.cmd.Wait()
}

func (ep *unixEngineProcess) Read(p []byte) (int, error) {
	return ep.stdout.Read(p)
}

func (ep *unixEngineProcess) Write(p []byte) (int, error) {
	return ep.stdin.Write(p)
}

func (ep *unixEngineProcess) ReadErr(p []byte) (int, error) {
	return ep.stderr.Read(p)
}

func (ep *unixEngineProcess) CloseStdin() error {
	return ep.stdin.Close()
}
