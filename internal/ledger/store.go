package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spendlog-dev/spendlog/internal/model"
)

// ErrOutOfRange is returned by DeleteAt for a position outside [0, count).
var ErrOutOfRange = errors.New("position out of range")

// Store reads and rewrites a single expense CSV file. Every call goes back to
// disk; nothing is cached between calls and nothing is locked, so only one
// writer may use a file at a time.
type Store struct {
	path string
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Init creates the file with only the header row if it does not exist yet.
// An existing file is left untouched.
func (s *Store) Init() error {
	_, err := os.Stat(s.path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking expense file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating expense dir: %w", err)
	}
	return s.write(nil)
}

// List returns a copy of every expense in file order.
func (s *Store) List() ([]model.Expense, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening expense file %s: %w", s.path, err)
	}
	defer f.Close()

	expenses, err := ReadExpenses(f)
	if err != nil {
		return nil, fmt.Errorf("reading expense file %s: %w", s.path, err)
	}
	return expenses, nil
}

// Len returns the number of expenses currently in the file.
func (s *Store) Len() (int, error) {
	expenses, err := s.List()
	if err != nil {
		return 0, err
	}
	return len(expenses), nil
}

// Append adds e after the last expense and rewrites the file.
func (s *Store) Append(e model.Expense) error {
	return s.AppendAll([]model.Expense{e})
}

// AppendAll adds expenses in order after the last expense with a single
// rewrite of the file.
func (s *Store) AppendAll(expenses []model.Expense) error {
	existing, err := s.List()
	if err != nil {
		return err
	}
	return s.write(append(existing, expenses...))
}

// DeleteAt removes the expense at position and shifts every later expense
// down by one. The file is not touched when position is out of range.
func (s *Store) DeleteAt(position int) error {
	expenses, err := s.List()
	if err != nil {
		return err
	}

	if position < 0 || position >= len(expenses) {
		return fmt.Errorf("deleting row %d of %d: %w", position, len(expenses), ErrOutOfRange)
	}

	kept := make([]model.Expense, 0, len(expenses)-1)
	kept = append(kept, expenses[:position]...)
	kept = append(kept, expenses[position+1:]...)
	return s.write(kept)
}

// write replaces the file contents via a temp file in the same directory and
// a rename.
func (s *Store) write(expenses []model.Expense) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp expense file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) // no-op after a successful rename

	if err := WriteExpenses(tmp, expenses); err != nil {
		tmp.Close()
		return fmt.Errorf("writing expense file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp expense file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting expense file mode: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replacing expense file %s: %w", s.path, err)
	}
	return nil
}
