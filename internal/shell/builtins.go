package shell

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"

	"jobsh/internal/jobs"
)

func (s *Shell) executeBuiltin(argv []string) (bool, error) {
	switch argv[0] {
	case "quit", "exit":
		s.saveHistory()
		os.Exit(0)
		return true, nil
	case "jobs":
		s.listJobs()
		return true, nil
	case "fg":
		return true, s.resumeJob(argv, jobs.Foreground)
	case "bg":
		return true, s.resumeJob(argv, jobs.Background)
	case "cd":
		return true, s.changeDirectory(argv[1:])
	case "history":
		s.showHistory()
		return true, nil
	}
	return false, nil
}

func (s *Shell) listJobs() {
	s.mu.Lock()
	list := s.table.List()
	s.mu.Unlock()

	for _, job := range list {
		fmt.Printf("[%d] (%d) %s %s\n", job.ID, job.PID, job.State, job.Cmdline)
	}
}

// parseJobSpec accepts %N or bare N; anything else is a recoverable
// user error.
func parseJobSpec(name, arg string) (int, error) {
	jid, err := strconv.Atoi(strings.TrimPrefix(arg, "%"))
	if err != nil || jid < 1 {
		return 0, fmt.Errorf("%s: argument must be a %%jobid", name)
	}
	return jid, nil
}

// resumeJob implements fg and bg: continue the job's process group and
// move it to the requested state. fg then blocks in the evaluator's
// foreground wait; bg announces the resumed job and returns.
func (s *Shell) resumeJob(argv []string, state jobs.State) error {
	if len(argv) < 2 {
		return fmt.Errorf("%s command requires %%jobid argument", argv[0])
	}
	jid, err := parseJobSpec(argv[0], argv[1])
	if err != nil {
		return err
	}

	s.mu.Lock()
	job := s.table.FindByJID(jid)
	if job == nil {
		s.mu.Unlock()
		return fmt.Errorf("%%%d: No such job", jid)
	}
	pid := job.PID
	if err := unix.Kill(-pid, unix.SIGCONT); err != nil && err != unix.ESRCH {
		fatal("error sending continue signal", err)
	}
	job.State = state
	if state == jobs.Background {
		fmt.Printf("[%d] (%d) %s\n", job.ID, pid, job.Cmdline)
	}
	s.cond.Broadcast()
	s.mu.Unlock()

	if state == jobs.Foreground {
		s.waitForeground(pid)
	}
	return nil
}

func (s *Shell) changeDirectory(args []string) error {
	var dir string
	if len(args) == 0 {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cd: %w", err)
		}
		dir = home
	} else {
		dir = args[0]
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("cd: %w", err)
	}
	return nil
}

func (s *Shell) showHistory() {
	for i, cmd := range s.history.Items() {
		fmt.Printf("%d: %s\n", i+1, cmd)
	}
}
