package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	b := NewBuffer()
	require.ErrorIs(t, b.WriteLine("PUSH #1"), ErrNotOpen)

	require.NoError(t, b.Open("demo"))
	require.ErrorIs(t, b.Open("demo"), ErrAlreadyOpen)
	require.NoError(t, b.WriteLine("PUSH #1"))
	require.NoError(t, b.WriteLine("HLT"))
	require.NoError(t, b.Close())
	require.NoError(t, b.Close(), "closing twice is harmless")

	assert.Equal(t, "demo", b.Name())
	assert.True(t, b.Closed())
	assert.Equal(t, []string{"PUSH #1", "HLT"}, b.Lines())
	assert.Equal(t, "PUSH #1\nHLT\n", b.String())
	assert.ErrorIs(t, b.WriteLine("late"), ErrNotOpen)
}

func TestFileWritesProgram(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	fs := NewFile(dir)

	require.NoError(t, fs.Open("demo"))
	require.NoError(t, fs.WriteLine("MOV SP D0"))
	require.NoError(t, fs.WriteLine("HLT"))
	require.NoError(t, fs.Close())

	assert.Equal(t, filepath.Join(dir, "demo"+Suffix), fs.Path())
	data, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	assert.Equal(t, "MOV SP D0\nHLT\n", string(data))
	assert.NoError(t, fs.Close())
}

func TestFileHoldsLockWhileOpen(t *testing.T) {
	fs := NewFile(t.TempDir())
	require.NoError(t, fs.Open("locked"))

	other := flock.New(fs.Path() + ".lock")
	ok, err := other.TryLock()
	require.NoError(t, err)
	assert.False(t, ok, "lock must be held between Open and Close")

	require.NoError(t, fs.Close())
	ok, err = other.TryLock()
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, other.Unlock())
}

func TestFileRejectsDoubleOpen(t *testing.T) {
	fs := NewFile(t.TempDir())
	require.NoError(t, fs.Open("a"))
	defer fs.Close()
	assert.ErrorIs(t, fs.Open("b"), ErrAlreadyOpen)
	assert.ErrorIs(t, NewFile(t.TempDir()).WriteLine("x"), ErrNotOpen)
}

func TestDefaultDir(t *testing.T) {
	t.Setenv("PASGEN_OUT", "/tmp/pasgen-out")
	assert.Equal(t, "/tmp/pasgen-out", DefaultDir())

	t.Setenv("PASGEN_OUT", "")
	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, cwd, DefaultDir())
}
