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

//go:build windows

package uci

import (
	"errors"
	"fmt"
	"io"
	"os/exec"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsEngineProcess struct {
	stdin  io.WriteCloser
	stdout io.ReadCloser
	stderr io.ReadCloser
	cmd    *exec.Cmd
	job    windows.Handle
}

// newEngineProcess starts program, a path to a UCI-compatible engine, inside
// a job object so Kill reliably tears down any children it spawns.
func newEngineProcess(program string, settings Settings) (engineProcess, error) {
	cmd := exec.Command(program, settings.Args...)
	cmd.Env = settings.Env
	cmd.Dir = settings.WorkDir

	ep := windowsEngineProcess{cmd: cmd}
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

	cmd.SysProcAttr = &windows.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_SUSPENDED | windows.CREATE_NEW_PROCESS_GROUP,
	}
	if err := cmd.Start(); err != nil {
		ep.stdin.Close()
		ep.stdout.Close()
		ep.stderr.Close()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}

	if err := ep.addToJobObject(); err != nil {
		cmd.Process.Kill()
		ep.stdin.Close()
		cmd.Wait()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}
	if err := ep.resumeThreads(); err != nil {
		cmd.Process.Kill()
		ep.stdin.Close()
		cmd.Wait()
		return nil, fmt.Errorf("could not start engine: %w", err)
	}

	return &ep, nil
}

func (ep *windowsEngineProcess) addToJobObject() error {
	job, err := windows.CreateJobObject(nil, nil)
	if err != nil {
		return fmt.Errorf("could not create job object: %w", err)
	}

	info := windows.JOBOBJECT_EXTENDED_LIMIT_INFORMATION{
		BasicLimitInformation: windows.JOBOBJECT_BASIC_LIMIT_INFORMATION{
			LimitFlags: windows.JOB_OBJECT_LIMIT_KILL_ON_JOB_CLOSE,
		},
	}
	_, err = windows.SetInformationJobObject(job,
		windows.JobObjectExtendedLimitInformation,
		uintptr(unsafe.Pointer(&info)),
		uint32(unsafe.Sizeof(info)))
	if err != nil {
		return fmt.Errorf("could not set job object limits: %w", err)
	}

	procHandle, err := windows.OpenProcess(windows.PROCESS_SET_QUOTA|windows.PROCESS_TERMINATE, false, uint32(ep.cmd.Process.Pid))
	if err != nil {
		return fmt.Errorf("could not open process: %w", err)
	}
	defer windows.CloseHandle(procHandle)

	if err := windows.AssignProcessToJobObject(job, procHandle); err != nil {
		return fmt.Errorf("could not assign process to job object: %w", err)
	}

	ep.job = job
	return nil
}

func (ep *windowsEngineProcess) resumeThreads() error {
	snapshotHandle, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPTHREAD, 0)
	if err != nil {
		return fmt.Errorf("could not resume threads: %w", err)
	}
	defer windows.CloseHandle(snapshotHandle)

	var entry windows.ThreadEntry32
	entry.Size = uint32(unsafe.Sizeof(entry))

	var resumedCount int
	for {
		if entry.OwnerProcessID == uint32(ep.cmd.Process.Pid) {
			threadHandle, err := windows.OpenThread(windows.THREAD_SUSPEND_RESUME, false, entry.ThreadID)
			if err == nil {
				if _, resumeErr := windows.ResumeThread(threadHandle); resumeErr == nil {
					resumedCount++
				}
				windows.CloseHandle(threadHandle)
			}
		}
		if err := windows.Thread32Next(snapshotHandle, &entry); err != nil {
			break
		}
	}

	if resumedCount == 0 {
		return fmt.Errorf("could not resume any threads for process %d", ep.cmd.Process.Pid)
	}
	return nil
}

// Terminate sends a CTRL_BREAK_EVENT to the process group. Attaching a
// console may be required if called from a GUI process.
func (ep *windowsEngineProcess) Terminate() error {
	if err := windows.GenerateConsoleCtrlEvent(windows.CTRL_BREAK_EVENT, uint32(ep.cmd.Process.Pid)); err != nil {
		return fmt.Errorf("could not terminate engine: %w", err)
	}
	return nil
}

func (ep *windowsEngineProcess) Kill() error {
	return windows.TerminateJobObject(ep.job, 1)
}

func (ep *windowsEngineProcess) Wait() error {
	err1 := ep.cmd.Wait()
	err2 := windows.CloseHandle(ep.job)
	return errors.Join(err1, err2)
}

func (ep *windowsEngineProcess) Read(p []byte) (int, error) {
	return ep.stdout.Read(p)
}

func (ep *windowsEngineProcess) Write(p []byte) (int, error) {
	return ep.stdin.Write(p)
}

func (ep *windowsEngineProcess) ReadErr(p []byte) (int, error) {
	return ep.stderr.Read(p)
}

func (ep *windowsEngineProcess) CloseStdin() error {
	return ep.stdin.Close()
}
