package jobs

import (
	"github.com/rs/zerolog"
)

// DefaultCapacity bounds the number of concurrently tracked jobs.
const DefaultCapacity = 16

// MaxCmdline bounds the stored command line.
const MaxCmdline = 1024

type State int

const (
	Undefined State = iota
	Foreground
	Background
	Stopped
)

// String returns the display label used by the jobs listing.
func (s State) String() string {
	switch s {
	case Foreground:
		return "Foreground"
	case Background:
		return "Running"
	case Stopped:
		return "Stopped"
	default:
		return "Undefined"
	}
}

// Job is one tracked child process. A zero PID marks a free slot.
type Job struct {
	PID     int
	ID      int
	State   State
	Cmdline string
}

// Table is a fixed-capacity registry of jobs. It is a plain data
// structure: callers serialize access (the shell holds one mutex around
// every multi-step sequence reachable from more than one goroutine).
type Table struct {
	slots  []Job
	nextID int
	log    zerolog.Logger
}

func NewTable(capacity int, log zerolog.Logger) *Table {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Table{
		slots:  make([]Job, capacity),
		nextID: 1,
		log:    log,
	}
}

func (t *Table) Capacity() int {
	return len(t.slots)
}

// Add claims the first free slot for pid. It returns false if pid is
// invalid or the table is full; existing entries are never disturbed.
func (t *Table) Add(pid int, state State, cmdline string) bool {
	if pid < 1 {
		return false
	}
	if len(cmdline) > MaxCmdline {
		cmdline = cmdline[:MaxCmdline]
	}
	for i := range t.slots {
		if t.slots[i].PID != 0 {
			continue
		}
		t.slots[i] = Job{
			PID:     pid,
			ID:      t.nextID,
			State:   state,
			Cmdline: cmdline,
		}
		if t.nextID++; t.nextID > len(t.slots) {
			t.nextID = 1
		}
		t.log.Debug().
			Int("jid", t.slots[i].ID).
			Int("pid", pid).
			Str("cmdline", cmdline).
			Msg("added job")
		return true
	}
	return false
}

// Delete frees the slot holding pid and resets the id counter to one
// past the largest id still in use, so ids recycle once jobs drain.
func (t *Table) Delete(pid int) bool {
	if pid < 1 {
		return false
	}
	for i := range t.slots {
		if t.slots[i].PID == pid {
			jid := t.slots[i].ID
			t.slots[i] = Job{}
			t.nextID = t.maxID() + 1
			t.log.Debug().Int("jid", jid).Int("pid", pid).Msg("deleted job")
			return true
		}
	}
	return false
}

func (t *Table) maxID() int {
	max := 0
	for i := range t.slots {
		if t.slots[i].ID > max {
			max = t.slots[i].ID
		}
	}
	return max
}

// FindByPID returns the job with the given process id, or nil.
func (t *Table) FindByPID(pid int) *Job {
	if pid < 1 {
		return nil
	}
	for i := range t.slots {
		if t.slots[i].PID == pid {
			return &t.slots[i]
		}
	}
	return nil
}

// FindByJID returns the job with the given job id, or nil.
func (t *Table) FindByJID(jid int) *Job {
	if jid < 1 {
		return nil
	}
	for i := range t.slots {
		if t.slots[i].ID == jid {
			return &t.slots[i]
		}
	}
	return nil
}

// ForegroundPID returns the pid of the foreground job, or 0 if none.
// At most one job is ever in the Foreground state.
func (t *Table) ForegroundPID() int {
	for i := range t.slots {
		if t.slots[i].State == Foreground {
			return t.slots[i].PID
		}
	}
	return 0
}

// JobID maps a pid to its job id, or 0 if untracked.
func (t *Table) JobID(pid int) int {
	if job := t.FindByPID(pid); job != nil {
		return job.ID
	}
	return 0
}

// List returns copies of the live jobs in slot order.
func (t *Table) List() []Job {
	out := make([]Job, 0, len(t.slots))
	for i := range t.slots {
		if t.slots[i].PID != 0 {
			out = append(out, t.slots[i])
		}
	}
	return out
}
