package shell

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/kballard/go-shellquote"

	"jobsh/internal/jobs"
)

// Execute evaluates one command line: builtins run synchronously and
// never block on a child; anything else is spawned and tracked as a
// job. The returned error is always recoverable.
func (s *Shell) Execute(line string) error {
	argv, err := shellquote.Split(line)
	if err != nil {
		return fmt.Errorf("error parsing command: %v", err)
	}
	argv, background := splitBackground(argv)
	if len(argv) == 0 {
		return nil
	}

	if ok, err := s.executeBuiltin(argv); ok {
		return err
	}
	return s.spawn(argv, background, line)
}

// splitBackground strips a trailing & marker from the argument vector
// and reports whether the job should run in the background. The marker
// stays in the stored command line for display.
func splitBackground(argv []string) ([]string, bool) {
	if len(argv) == 0 {
		return argv, false
	}
	last := argv[len(argv)-1]
	if last == "&" {
		return argv[:len(argv)-1], true
	}
	if strings.HasSuffix(last, "&") {
		argv[len(argv)-1] = strings.TrimSuffix(last, "&")
		return argv, true
	}
	return argv, false
}

func (s *Shell) spawn(argv []string, background bool, line string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stdout
	cmd.Env = os.Environ()
	// Each job runs in its own process group so keyboard-generated
	// SIGINT/SIGTSTP reach only the shell, which forwards them to the
	// foreground group.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	state := jobs.Foreground
	if background {
		state = jobs.Background
	}

	// Start, insert and announce under one lock: the reaper can
	// observe the child's exit at any point after Start, but it cannot
	// touch the table until the insert has committed.
	s.mu.Lock()
	if err := cmd.Start(); err != nil {
		s.mu.Unlock()
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%s: Command not found", argv[0])
		}
		return fmt.Errorf("%s: %v", argv[0], err)
	}
	pid := cmd.Process.Pid
	if !s.table.Add(pid, state, line) {
		s.mu.Unlock()
		// The untracked child runs on and is reaped silently later.
		return errors.New("Tried to create too many jobs")
	}
	if background {
		fmt.Printf("[%d] (%d) %s\n", s.table.JobID(pid), pid, line)
	}
	s.mu.Unlock()

	if !background {
		s.waitForeground(pid)
	}
	return nil
}

// waitForeground blocks until pid is no longer the foreground job:
// gone from the table (terminated) or in another state (stopped, or
// handed to the background). The dispatcher goroutine broadcasts after
// every table mutation and the predicate is re-checked under the lock
// on each wake, so a status change can never slip between the check
// and the suspend. No polling.
func (s *Shell) waitForeground(pid int) {
	s.mu.Lock()
	for s.table.JobID(pid) != 0 && s.table.ForegroundPID() == pid {
		s.cond.Wait()
	}
	s.mu.Unlock()
}
