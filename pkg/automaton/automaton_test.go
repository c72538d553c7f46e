package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileEmptyPatternSetErrors(t *testing.T) {
	_, err := Compile("test", nil)
	require.Error(t, err)
	var compileErr *CompileError
	assert.ErrorAs(t, err, &compileErr)
}

func TestCompileSkipsUncompilablePatternAndKeepsTheRest(t *testing.T) {
	db, err := Compile("test", []Pattern{
		{ID: 1, Source: "Firefox/[0-9]+", CaseInsensitive: true},
		{ID: 2, Source: "(unterminated", CaseInsensitive: true},
	})
	require.NoError(t, err, "one bad pattern must not fail the whole batch")
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)

	var hits []uint16
	err = db.Scan([]byte("Firefox/100.0"), scratch, func(id uint16) { hits = append(hits, id) })
	require.NoError(t, err)
	assert.Equal(t, []uint16{1}, hits)
}

func TestScanReportsEachDistinctIDOnce(t *testing.T) {
	db, err := Compile("test", []Pattern{
		{ID: 1, Source: "Mozilla", CaseInsensitive: true},
		{ID: 2, Source: "Chrome", CaseInsensitive: true},
	})
	require.NoError(t, err)
	defer db.Close()

	scratch, err := NewScratch(db)
	require.NoError(t, err)

	var hits []uint16
	err = db.Scan([]byte("Mozilla/5.0 Chrome/91.0"), scratch, func(id uint16) { hits = append(hits, id) })
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint16{1, 2}, hits)
}

func TestCaptureReturnsFirstGroupRange(t *testing.T) {
	db, err := Compile("test", []Pattern{
		{ID: 1, Source: `Chrome/([0-9.]+)`, CaseInsensitive: true, WithCapture: true},
	})
	require.NoError(t, err)
	defer db.Close()

	subject := []byte("Mozilla/5.0 Chrome/91.0.4472")
	start, end, ok := db.Capture(1, subject)
	require.True(t, ok)
	assert.Equal(t, "91.0.4472", string(subject[start:end]))
}

func TestCaptureFalseWhenPatternDidNotRequestIt(t *testing.T) {
	db, err := Compile("test", []Pattern{
		{ID: 1, Source: `Chrome/([0-9.]+)`, CaseInsensitive: true, WithCapture: false},
	})
	require.NoError(t, err)
	defer db.Close()

	_, _, ok := db.Capture(1, []byte("Chrome/91.0"))
	assert.False(t, ok)
}
