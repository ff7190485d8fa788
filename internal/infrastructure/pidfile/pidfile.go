package pidfile

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"syscall"
)

// ErrAlreadyRunning is returned when a live process holds the PID file
type ErrAlreadyRunning struct {
	PID  int
	Path string
}

func (e *ErrAlreadyRunning) Error() string {
	return fmt.Sprintf("gridstock is already running (PID %d, %s)", e.PID, e.Path)
}

// PIDFile keeps a single engine per PID file path
type PIDFile struct {
	path string
}

// New creates a new PIDFile manager
func New(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the file location.
func (p *PIDFile) Path() string { return p.path }

// Acquire writes the current PID. A stale or unparsable file is replaced;
// a file naming a live process yields ErrAlreadyRunning.
func (p *PIDFile) Acquire() error {
	if pid, ok := p.Running(); ok {
		return &ErrAlreadyRunning{PID: pid, Path: p.path}
	}
	_ = os.Remove(p.path)

	pidData := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(p.path, []byte(pidData), 0o644); err != nil {
		return fmt.Errorf("failed to write PID file: %w", err)
	}
	return nil
}

// Running returns the PID of another live process holding the file.
func (p *PIDFile) Running() (int, bool) {
	pid, ok := p.read()
	if !ok || pid == os.Getpid() || !isProcessRunning(pid) {
		return 0, false
	}
	return pid, true
}

// Release removes the PID file
func (p *PIDFile) Release() error {
	if err := os.Remove(p.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove PID file: %w", err)
	}
	return nil
}

func (p *PIDFile) read() (int, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return 0, false
	}
	return pid, true
}

// isProcessRunning signals pid with 0
func isProcessRunning(pid int) bool {
	process, err := os.FindProcess(pid)
	if err != nil {
		return false
	}

	err = process.Signal(syscall.Signal(0))
	switch {
	case err == nil:
		return true
	case errors.Is(err, syscall.EPERM):
		// exists, owned by someone else
		return true
	default:
		return false
	}
}
