package shell

import (
	"fmt"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"

	"jobsh/internal/jobs"
)

func (s *Shell) setupSignalHandling() {
	signal.Notify(s.signalChan, unix.SIGINT, unix.SIGTSTP, unix.SIGCHLD, unix.SIGQUIT)
	go s.handleSignals()
}

func (s *Shell) handleSignals() {
	for sig := range s.signalChan {
		switch sig {
		case unix.SIGCHLD:
			s.reapChildren()
		case unix.SIGINT:
			s.interruptForeground()
		case unix.SIGTSTP:
			s.stopForeground()
		case unix.SIGQUIT:
			// Lets a test harness stop the shell deterministically.
			fmt.Println("Terminating after receipt of SIGQUIT signal")
			os.Exit(1)
		}
	}
}

// reapChildren collects every child status change currently available.
// Deliveries coalesce, so one SIGCHLD may stand for several children;
// WNOHANG leaves running children alone and WUNTRACED reports stops.
func (s *Shell) reapChildren() {
	for {
		var status unix.WaitStatus
		pid, err := unix.Wait4(-1, &status, unix.WNOHANG|unix.WUNTRACED, nil)
		if err == unix.EINTR {
			continue
		}
		if pid <= 0 || err != nil {
			return
		}

		s.mu.Lock()
		jid := s.table.JobID(pid)
		switch {
		case status.Signaled():
			fmt.Printf("Job [%d] (%d) terminated by signal %d\n", jid, pid, int(status.Signal()))
			s.table.Delete(pid)
		case status.Stopped():
			fmt.Printf("Job [%d] (%d) stopped by signal %d\n", jid, pid, int(status.StopSignal()))
			if job := s.table.FindByPID(pid); job != nil {
				job.State = jobs.Stopped
			}
		case status.Exited():
			s.table.Delete(pid)
		}
		s.cond.Broadcast()
		s.mu.Unlock()
	}
}

// interruptForeground forwards a keyboard interrupt to the foreground
// job's process group, never to the shell's own. ESRCH means the job
// raced away; anything else is a broken shell.
func (s *Shell) interruptForeground() {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := s.table.ForegroundPID()
	if pid == 0 {
		return
	}
	s.log.Debug().Int("pid", pid).Msg("forwarding SIGINT to foreground group")
	if err := unix.Kill(-pid, unix.SIGINT); err != nil && err != unix.ESRCH {
		fatal("error forwarding interrupt", err)
	}
}

// stopForeground forwards a stop to the foreground group and marks the
// job Stopped at once: the foreground wait has to observe the change
// without depending on the child-status reap arriving first.
func (s *Shell) stopForeground() {
	s.mu.Lock()
	defer s.mu.Unlock()

	pid := s.table.ForegroundPID()
	if pid == 0 {
		return
	}
	s.log.Debug().Int("pid", pid).Msg("forwarding SIGTSTP to foreground group")
	if err := unix.Kill(-pid, unix.SIGTSTP); err != nil && err != unix.ESRCH {
		fatal("error forwarding stop signal", err)
	}
	if job := s.table.FindByPID(pid); job != nil {
		job.State = jobs.Stopped
	}
	s.cond.Broadcast()
}
