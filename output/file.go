package output

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Suffix is appended to the program name to form the output file name.
var Suffix = ".stk"

// DefaultDir returns the directory generated programs are written to:
// $PASGEN_OUT when set, the working directory otherwise.
func DefaultDir() string {
	if env := os.Getenv("PASGEN_OUT"); env != "" {
		return env
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// File writes the program to <Dir>/<name><Suffix>. A file lock next to
// the output is held from Open to Close so concurrent compiler processes
// never interleave lines in one file.
type File struct {
	Dir  string
	path string
	lock *flock.Flock
	f    *os.File
	w    *bufio.Writer
}

func NewFile(dir string) *File {
	if dir == "" {
		dir = DefaultDir()
	}
	return &File{Dir: dir}
}

// Path is the file of the most recently opened program.
func (fs *File) Path() string { return fs.path }

func (fs *File) Open(name string) error {
	if fs.f != nil {
		return ErrAlreadyOpen
	}
	if err := os.MkdirAll(fs.Dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(fs.Dir, name+Suffix)

	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		lock.Unlock()
		return fmt.Errorf("create %s: %w", path, err)
	}
	fs.path = path
	fs.lock = lock
	fs.f = f
	fs.w = bufio.NewWriter(f)
	return nil
}

func (fs *File) WriteLine(line string) error {
	if fs.f == nil {
		return ErrNotOpen
	}
	if _, err := fs.w.WriteString(line); err != nil {
		return err
	}
	return fs.w.WriteByte('\n')
}

// Close flushes the program, closes the file and releases the lock. It
// is a no-op when nothing is open.
func (fs *File) Close() (err error) {
	if fs.f == nil {
		return nil
	}
	defer func() {
		if uerr := fs.lock.Unlock(); err == nil && uerr != nil {
			err = fmt.Errorf("release output lock: %w", uerr)
		}
		fs.f, fs.w, fs.lock = nil, nil, nil
	}()

	if err = fs.w.Flush(); err != nil {
		fs.f.Close()
		return fmt.Errorf("flush %s: %w", fs.path, err)
	}
	return fs.f.Close()
}
