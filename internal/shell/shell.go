package shell

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"jobsh/internal/config"
	"jobsh/internal/history"
	"jobsh/internal/jobs"
)

// Shell owns the read-eval loop, the job table, and the signal
// dispatcher. The table is shared between the main loop and the
// dispatcher goroutine; mu is the critical section taken around every
// multi-step table access, and cond wakes the foreground wait whenever
// the dispatcher mutates the table.
type Shell struct {
	config  *config.Config
	history *history.History
	table   *jobs.Table

	mu   sync.Mutex
	cond *sync.Cond

	signalChan chan os.Signal
	reader     *readline.Instance
	log        zerolog.Logger
}

func New(cfg *config.Config) (*Shell, error) {
	logger := zerolog.Nop()
	if cfg.Verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, NoColor: true})
	}

	hist, err := history.New(cfg.HistoryFile)
	if err != nil {
		return nil, fmt.Errorf("error initializing history: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:      cfg.Prompt,
		HistoryFile: cfg.HistoryFile,
	})
	if err != nil {
		return nil, fmt.Errorf("error initializing readline: %w", err)
	}

	s := &Shell{
		config:     cfg,
		history:    hist,
		table:      jobs.NewTable(cfg.MaxJobs, logger),
		signalChan: make(chan os.Signal, 16),
		reader:     rl,
		log:        logger,
	}
	s.cond = sync.NewCond(&s.mu)
	return s, nil
}

// Run reads command lines until EOF. Recoverable errors are reported
// on stdout and the loop continues.
func (s *Shell) Run() {
	s.setupSignalHandling()
	defer signal.Stop(s.signalChan)
	defer s.reader.Close()

	for {
		line, err := s.reader.Readline()
		if err == readline.ErrInterrupt {
			continue
		} else if err == io.EOF {
			break
		} else if err != nil {
			fatal("read error", err)
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		s.history.Add(line)

		if err := s.Execute(line); err != nil {
			fmt.Println(err)
		}
	}

	s.saveHistory()
}

func (s *Shell) saveHistory() {
	if err := s.history.Save(); err != nil {
		fmt.Printf("error saving history: %v\n", err)
	}
}

// fatal is the unix-style error path: the shell's own control logic
// failed, so report the OS error and give up.
func fatal(msg string, err error) {
	fmt.Printf("%s: %v\n", msg, err)
	os.Exit(1)
}
