package history

import (
	"bufio"
	"fmt"
	"os"
)

const defaultMaxItems = 1000

// History is the bounded, file-backed command history behind the
// history builtin. Readline keeps its own copy for prompt recall.
type History struct {
	items    []string
	file     string
	maxItems int
}

func New(file string) (*History, error) {
	h := &History{
		file:     file,
		maxItems: defaultMaxItems,
	}
	if err := h.load(); err != nil {
		return nil, fmt.Errorf("error loading history: %w", err)
	}
	return h, nil
}

func (h *History) Add(item string) {
	h.items = append(h.items, item)
	if len(h.items) > h.maxItems {
		h.items = h.items[len(h.items)-h.maxItems:]
	}
}

func (h *History) Items() []string {
	return append([]string{}, h.items...)
}

func (h *History) load() error {
	file, err := os.Open(h.file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		h.items = append(h.items, scanner.Text())
	}
	if len(h.items) > h.maxItems {
		h.items = h.items[len(h.items)-h.maxItems:]
	}
	return scanner.Err()
}

// Save rewrites the history file with the current items.
func (h *History) Save() error {
	file, err := os.Create(h.file)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	for _, item := range h.items {
		if _, err := writer.WriteString(item + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}
