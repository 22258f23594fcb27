package unrealpak

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
)

// Sentinel errors for the tool-driving layer. Callers match with errors.Is.
var (
	// ErrToolNotFound means the UnrealPak executable (or its wine wrapper)
	// could not be launched at all.
	ErrToolNotFound = errors.New("could not find UnrealPak executable")

	// ErrProtocolMismatch means a tool output line cannot be interpreted in
	// the current state: a file entry before any mount point, or an
	// extraction confirmation for a file the listing never mentioned.
	ErrProtocolMismatch = errors.New("unexpected UnrealPak output")

	// ErrCountMismatch means the tool confirmed a different number of
	// extracted files than the listing promised.
	ErrCountMismatch = errors.New("extracted file count mismatch")
)

// Logger is the minimal progress-reporting interface this package needs.
// Defined here (rather than importing the logging package) so the tool
// driver stays dependency-light and tests can pass a no-op.
type Logger interface {
	Info(format string, args ...interface{})
	Debug(format string, args ...interface{})
}

// Runner starts one tool invocation and exposes its output as a line
// stream. The default ExecRunner forks the real executable; tests
// substitute a scripted runner.
type Runner interface {
	Start(ctx context.Context, args ...string) (LineStream, error)
}

// LineStream yields tool output one line at a time. Next blocks until a
// line is available, returning false once the stream ends; Err reports any
// read failure after that. Close waits for the process to exit and is safe
// to call more than once.
type LineStream interface {
	Next() (string, bool)
	Err() error
	Close() error
}

// Options describe how to launch the external tool.
type Options struct {
	Executable string // path or name of the UnrealPak binary
	Wine       string // optional wrapper command, e.g. "wine64"
	WinePrefix string // optional WINEPREFIX exported for the wrapper
}

// ExecRunner launches the configured executable with os/exec. A launch
// failure because the binary is missing is translated to ErrToolNotFound,
// since the raw exec error tends to bury the actual problem.
type ExecRunner struct {
	Opts Options
}

// Start runs the tool with the given arguments. Stdout is exposed as the
// line stream; stderr is drained and discarded, matching the legacy
// driver's behavior.
func (r *ExecRunner) Start(ctx context.Context, args ...string) (LineStream, error) {
	name := r.Opts.Executable
	argv := args
	if r.Opts.Wine != "" {
		argv = append([]string{name}, args...)
		name = r.Opts.Wine
	}

	cmd := exec.CommandContext(ctx, name, argv...)
	cmd.Stderr = io.Discard
	if r.Opts.WinePrefix != "" {
		cmd.Env = append(os.Environ(), "WINEPREFIX="+r.Opts.WinePrefix)
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %q (%v)", ErrToolNotFound, name, err)
		}
		return nil, fmt.Errorf("launching %q: %w", name, err)
	}

	sc := bufio.NewScanner(stdout)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &procStream{cmd: cmd, sc: sc}, nil
}

type procStream struct {
	cmd     *exec.Cmd
	sc      *bufio.Scanner
	readErr error

	closeOnce sync.Once
	closeErr  error
}

func (s *procStream) Next() (string, bool) {
	if s.sc.Scan() {
		return s.sc.Text(), true
	}
	s.readErr = s.sc.Err()
	return "", false
}

func (s *procStream) Err() error {
	return s.readErr
}

func (s *procStream) Close() error {
	s.closeOnce.Do(func() {
		// Drain any remaining output so the child can't block on a full
		// pipe before Wait reaps it.
		for s.sc.Scan() {
		}
		s.closeErr = s.cmd.Wait()
	})
	return s.closeErr
}
