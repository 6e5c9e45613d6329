package history

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithMissingFile(t *testing.T) {
	h, err := New(filepath.Join(t.TempDir(), "hist"))
	require.NoError(t, err)
	require.Empty(t, h.Items())
}

func TestAddAndItems(t *testing.T) {
	h, err := New(filepath.Join(t.TempDir(), "hist"))
	require.NoError(t, err)

	h.Add("jobs")
	h.Add("sleep 5 &")
	require.Equal(t, []string{"jobs", "sleep 5 &"}, h.Items())
}

func TestSaveAndReload(t *testing.T) {
	file := filepath.Join(t.TempDir(), "hist")

	h, err := New(file)
	require.NoError(t, err)
	h.Add("fg %1")
	h.Add("quit")
	require.NoError(t, h.Save())

	h2, err := New(file)
	require.NoError(t, err)
	require.Equal(t, []string{"fg %1", "quit"}, h2.Items())
}

func TestBounded(t *testing.T) {
	h, err := New(filepath.Join(t.TempDir(), "hist"))
	require.NoError(t, err)

	for i := 0; i < defaultMaxItems+50; i++ {
		h.Add(fmt.Sprintf("echo %d", i))
	}
	items := h.Items()
	require.Len(t, items, defaultMaxItems)
	require.Equal(t, "echo 50", items[0])
}
