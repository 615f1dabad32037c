// Package lockfile provides directory-based locking to prevent multiple
// CogniScreen instances from sharing one state directory (and therefore one
// feedback file).
//
// The lock uses a syscall-level flock that is released automatically when
// the process exits, gracefully or not.
package lockfile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"syscall"
)

// LockFileName is the name of the lock file created in the state directory.
const LockFileName = "cogniscreen.lock"

// Lock represents an active state-directory lock.
type Lock struct {
	file     *os.File
	path     string
	acquired bool
}

// LockError reports a lock held by another process.
type LockError struct {
	LockPath     string
	ExistingInfo string
	Cause        error
}

func (e *LockError) Error() string {
	msg := fmt.Sprintf("another CogniScreen instance is already using this state directory (lock file: %s)", e.LockPath)
	if e.ExistingInfo != "" {
		msg += fmt.Sprintf("; existing process: %s", e.ExistingInfo)
	}
	msg += ". Remove the lock file only if you are certain no other instance is running."
	return msg
}

func (e *LockError) Unwrap() error {
	return e.Cause
}

// AcquireLock attempts to take an exclusive lock on the state directory.
func AcquireLock(stateDir string) (*Lock, error) {
	lockPath := filepath.Join(stateDir, LockFileName)
	slog.Debug("lockfile.AcquireLock: attempting to acquire lock", "lock_path", lockPath)

	if err := os.MkdirAll(stateDir, 0755); err != nil {
		slog.Error("lockfile.AcquireLock: failed to create state directory", "error", err, "state_dir", stateDir)
		return nil, fmt.Errorf("failed to create state directory %s: %w", stateDir, err)
	}

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		slog.Error("lockfile.AcquireLock: failed to open lock file", "error", err, "lock_path", lockPath)
		return nil, fmt.Errorf("failed to open lock file %s: %w", lockPath, err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		file.Close()
		info := readExistingLockInfo(lockPath)
		slog.Error("lockfile.AcquireLock: lock already held", "error", err, "lock_path", lockPath, "existing", info)
		return nil, &LockError{LockPath: lockPath, ExistingInfo: info, Cause: err}
	}

	if _, err := fmt.Fprintf(file, "pid=%d\n", os.Getpid()); err != nil {
		syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
		file.Close()
		slog.Error("lockfile.AcquireLock: failed to write lock info", "error", err, "lock_path", lockPath)
		return nil, fmt.Errorf("failed to write lock information to %s: %w", lockPath, err)
	}

	slog.Info("lockfile.AcquireLock: state directory lock acquired", "lock_path", lockPath, "pid", os.Getpid())
	return &Lock{file: file, path: lockPath, acquired: true}, nil
}

// Release releases the lock and removes the lock file. Safe to call more
// than once.
func (l *Lock) Release() error {
	if !l.acquired || l.file == nil {
		return nil
	}
	if err := syscall.Flock(int(l.file.Fd()), syscall.LOCK_UN); err != nil {
		slog.Error("lockfile.Release: failed to release flock", "error", err, "lock_path", l.path)
	}
	if err := l.file.Close(); err != nil {
		slog.Error("lockfile.Release: failed to close lock file", "error", err, "lock_path", l.path)
	}
	if err := os.Remove(l.path); err != nil {
		slog.Error("lockfile.Release: failed to remove lock file", "error", err, "lock_path", l.path)
	}
	l.acquired = false
	l.file = nil
	slog.Debug("lockfile.Release: state directory lock released", "lock_path", l.path)
	return nil
}

// readExistingLockInfo reads whatever process information the current lock
// holder wrote, for error messages. Best effort.
func readExistingLockInfo(lockPath string) string {
	data, err := os.ReadFile(lockPath)
	if err != nil || len(data) == 0 {
		return ""
	}
	return string(data)
}
