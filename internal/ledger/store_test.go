package ledger

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendlog-dev/spendlog/internal/model"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := NewStore(filepath.Join(t.TempDir(), "expenses.csv"))
	require.NoError(t, s.Init())
	return s
}

var seedCategories = []string{"Food", "Rent", "Bills", "Transport", "Other"}

func seed(t *testing.T, s *Store, n int) []model.Expense {
	t.Helper()
	var added []model.Expense
	for i := 0; i < n; i++ {
		e := expense(fmt.Sprintf("2024-01-%02d", i+1), seedCategories[i%len(seedCategories)], fmt.Sprintf("%d.00", i+1))
		require.NoError(t, s.Append(e))
		added = append(added, e)
	}
	return added
}

func TestInit_CreatesHeaderOnlyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "expenses.csv")
	s := NewStore(path)
	require.NoError(t, s.Init())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, Header+"\n", string(data))

	got, err := s.List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestInit_Idempotent(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 2)

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	require.NoError(t, s.Init())
	require.NoError(t, s.Init())

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestAppend_PreservesOrder(t *testing.T) {
	s := newTestStore(t)
	added := seed(t, s, 5)

	got, err := s.List()
	require.NoError(t, err)
	require.Len(t, got, len(added))
	for i := range added {
		assert.Equal(t, added[i].Date, got[i].Date)
		assert.Equal(t, added[i].Category, got[i].Category)
		assert.True(t, added[i].Amount.Equal(got[i].Amount))
	}

	n, err := s.Len()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestAppend_KeepsFullPrecision(t *testing.T) {
	s := newTestStore(t)
	amounts := []string{"0.004", "10.005", "1.999", "12.5"}
	for _, a := range amounts {
		require.NoError(t, s.Append(expense("2024-01-01", "Food", a)))
	}

	got, err := s.List()
	require.NoError(t, err)
	require.Len(t, got, len(amounts))
	for i, a := range amounts {
		assert.True(t, dec(a).Equal(got[i].Amount), "appended %s, listed %s", a, got[i].Amount)
	}

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.NoError(t, s.DeleteAt(len(amounts)-1))
	require.NoError(t, s.Append(got[len(got)-1]))
	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestAppend_NoValidation(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Append(expense("someday", "whatever", "1")))

	got, err := s.List()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "someday", got[0].Date)
}

func TestAppendAll(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 1)

	require.NoError(t, s.AppendAll([]model.Expense{
		expense("2024-03-01", "Bills", "20"),
		expense("2024-03-02", "Transport", "3"),
	}))

	got, err := s.List()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Bills", got[1].Category)
	assert.Equal(t, "Transport", got[2].Category)
}

func TestDeleteAt_ShiftsLaterRows(t *testing.T) {
	for pos := 0; pos < 4; pos++ {
		t.Run(fmt.Sprintf("position %d", pos), func(t *testing.T) {
			s := newTestStore(t)
			added := seed(t, s, 4)

			require.NoError(t, s.DeleteAt(pos))

			got, err := s.List()
			require.NoError(t, err)
			require.Len(t, got, len(added)-1)
			for i := range got {
				want := added[i]
				if i >= pos {
					want = added[i+1]
				}
				assert.Equal(t, want.Date, got[i].Date, "row %d", i)
			}
		})
	}
}

func TestDeleteAt_OutOfRange(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 3)

	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	for _, pos := range []int{-1, 3, 10} {
		err := s.DeleteAt(pos)
		require.Error(t, err, "position %d", pos)
		assert.ErrorIs(t, err, ErrOutOfRange)
	}

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestDeleteAt_EmptyTable(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.DeleteAt(0), ErrOutOfRange)
}

func TestList_MissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.csv"))
	_, err := s.List()
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAppend_MissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.csv"))
	err := s.Append(expense("2024-01-01", "Food", "1"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWrite_LeavesNoTempFiles(t *testing.T) {
	s := newTestStore(t)
	seed(t, s, 3)
	require.NoError(t, s.DeleteAt(1))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "expenses.csv", entries[0].Name())
}

func TestReappendReproducesFile(t *testing.T) {
	src := newTestStore(t)
	require.NoError(t, src.Append(expense("2024-01-01", "Food", "10")))
	require.NoError(t, src.Append(expense("2024/01/05", "Eating, out", "5.25")))
	require.NoError(t, src.Append(expense("2024-02-01", "Rent", "100")))

	listed, err := src.List()
	require.NoError(t, err)

	dst := newTestStore(t)
	for _, e := range listed {
		require.NoError(t, dst.Append(e))
	}

	want, err := os.ReadFile(src.Path())
	require.NoError(t, err)
	got, err := os.ReadFile(dst.Path())
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}
