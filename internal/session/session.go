// Package session keeps a single interactive habitual process alive at a
// time. The dashboard and the HTTP server hold a lockfile of the form
// "pid|port|executable" in the config directory.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/habitual/internal/constants"
	"github.com/julianstephens/habitual/internal/logger"
)

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

var (
	// ErrLocked is returned when another live session holds the lock
	ErrLocked = errors.New("another habitual session is running")
	// ErrMalformed is returned for lockfiles that cannot be parsed
	ErrMalformed = errors.New("session lockfile is malformed")
)

// Holder describes the process recorded in a lockfile.
type Holder struct {
	PID        int
	Port       int
	Executable string
}

func (h Holder) String() string {
	return fmt.Sprintf("%d|%d|%s", h.PID, h.Port, h.Executable)
}

// Lock is a held session lock.
type Lock struct {
	path   string
	holder Holder
}

// Path returns the lockfile path for the config directory dir.
func Path(dir string) string {
	return filepath.Join(dir, constants.SessionLockfileName)
}

// Acquire takes the session lock in dir. port is 0 for sessions without a
// listener. A lock left behind by a dead process is replaced.
func Acquire(dir string, port int) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	self := Holder{PID: getpidFunc(), Port: port, Executable: selfExecutable()}
	path := Path(dir)

	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			_, werr := f.WriteString(self.String())
			cerr := f.Close()
			if werr != nil || cerr != nil {
				_ = os.Remove(path)
				return nil, fmt.Errorf("failed to write session lockfile: %w", errors.Join(werr, cerr))
			}
			logger.Debug("Acquired session lock", "path", path, "pid", self.PID)
			return &Lock{path: path, holder: self}, nil
		}
		if !os.IsExist(err) {
			return nil, fmt.Errorf("failed to create session lockfile: %w", err)
		}

		holder, live, err := Inspect(dir)
		if err != nil && !errors.Is(err, ErrMalformed) {
			return nil, err
		}
		if live && holder.PID != self.PID {
			return nil, fmt.Errorf("%w (pid %d)", ErrLocked, holder.PID)
		}

		logger.Warn("Replacing stale session lock", "path", path, "holder", holder.String())
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove stale session lockfile: %w", err)
		}
		time.Sleep(constants.SessionRetryDelay)
	}

	return nil, ErrLocked
}

// Inspect reads the lockfile in dir. live reports whether the recorded
// process is still running the same executable. A missing lockfile returns
// a zero Holder, false and no error.
func Inspect(dir string) (Holder, bool, error) {
	content, err := os.ReadFile(Path(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return Holder{}, false, nil
		}
		return Holder{}, false, fmt.Errorf("failed to read session lockfile: %w", err)
	}

	holder, err := parse(string(content))
	if err != nil {
		return Holder{}, false, err
	}

	process, err := findProcessFunc(holder.PID)
	if err != nil || process == nil {
		return holder, false, nil
	}
	return holder, process.Executable() == holder.Executable, nil
}

func parse(content string) (Holder, error) {
	parts := strings.Split(strings.TrimSpace(content), "|")
	if len(parts) != 3 {
		return Holder{}, ErrMalformed
	}

	pid, err := strconv.Atoi(parts[0])
	if err != nil || pid <= 0 {
		return Holder{}, fmt.Errorf("%w: invalid process ID %q", ErrMalformed, parts[0])
	}
	port, err := strconv.Atoi(parts[1])
	if err != nil || port < 0 || port > 65535 {
		return Holder{}, fmt.Errorf("%w: invalid port %q", ErrMalformed, parts[1])
	}
	if strings.TrimSpace(parts[2]) == "" {
		return Holder{}, fmt.Errorf("%w: executable is empty", ErrMalformed)
	}
	return Holder{PID: pid, Port: port, Executable: parts[2]}, nil
}

// selfExecutable returns this process's name as the process table reports
// it, so a later Inspect compares like with like.
func selfExecutable() string {
	if p, err := findProcessFunc(getpidFunc()); err == nil && p != nil && p.Executable() != "" {
		return p.Executable()
	}
	return filepath.Base(os.Args[0])
}

// Holder returns the process recorded by this lock.
func (l *Lock) Holder() Holder {
	return l.holder
}

// Release removes the lockfile if it still belongs to this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	content, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read session lockfile: %w", err)
	}
	if holder, err := parse(string(content)); err == nil && holder.PID != l.holder.PID {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session lockfile: %w", err)
	}
	logger.Debug("Released session lock", "path", l.path)
	return nil
}
