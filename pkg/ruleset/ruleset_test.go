package ruleset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripDelimiters(t *testing.T) {
	assert.Equal(t, "firefox", StripDelimiters("/firefox/si"))
	assert.Equal(t, "firefox", StripDelimiters("/firefox/si \t"))
	assert.Equal(t, "no-delimiters", StripDelimiters("no-delimiters"))
}

func TestLookupReturnsLowestSequenceQualifyingRule(t *testing.T) {
	list, err := Build("client", []Rule{
		{Rowid: 1, ID: 101, Regex: "Chrome/", Sequence: 5, RequiredWords: []uint16{1}},
		{Rowid: 2, ID: 102, Regex: "Chrome", Sequence: 1, RequiredWords: []uint16{1}},
	})
	require.NoError(t, err)
	defer list.Close()

	scratch, err := list.NewScratch()
	require.NoError(t, err)

	best, ok, err := list.Lookup([]byte("Mozilla/5.0 Chrome/91.0"), scratch, map[uint16]bool{1: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint16(102), best.ID)
	assert.Equal(t, uint16(2), best.Rowid)
}

func TestLookupReturnsNotFoundWhenNoCandidateWords(t *testing.T) {
	list, err := Build("client", []Rule{
		{Rowid: 1, ID: 101, Regex: "Chrome", Sequence: 1, RequiredWords: []uint16{1}},
	})
	require.NoError(t, err)
	defer list.Close()

	scratch, err := list.NewScratch()
	require.NoError(t, err)

	_, ok, err := list.Lookup([]byte("Mozilla/5.0 Chrome/91.0"), scratch, nil)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLookupRequiresAllWordsToQualify(t *testing.T) {
	list, err := Build("client", []Rule{
		{Rowid: 1, ID: 101, Regex: "Chrome", Sequence: 1, RequiredWords: []uint16{1, 2}},
	})
	require.NoError(t, err)
	defer list.Close()

	scratch, err := list.NewScratch()
	require.NoError(t, err)

	_, ok, err := list.Lookup([]byte("Mozilla/5.0 Chrome/91.0"), scratch, map[uint16]bool{1: true})
	require.NoError(t, err)
	assert.False(t, ok, "only one of two required words present")

	best, ok, err := list.Lookup([]byte("Mozilla/5.0 Chrome/91.0"), scratch, map[uint16]bool{1: true, 2: true})
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, uint16(101), best.ID)
}

func TestLookupWithCaptureReturnsRange(t *testing.T) {
	list, err := Build("client", []Rule{
		{Rowid: 1, ID: 101, Regex: `Chrome/([0-9.]+)`, Sequence: 1, RequiredWords: []uint16{1}, WithCapture: true},
	})
	require.NoError(t, err)
	defer list.Close()

	scratch, err := list.NewScratch()
	require.NoError(t, err)

	subject := []byte("Mozilla/5.0 Chrome/91.0.4472")
	best, ok, err := list.Lookup(subject, scratch, map[uint16]bool{1: true})
	require.NoError(t, err)
	require.True(t, ok)
	require.True(t, best.HasCapture)
	assert.Equal(t, "91.0.4472", string(subject[best.CapStart:best.CapEnd]))
}

func TestDeviceNameRequiredWordZeroMeansUnconstrained(t *testing.T) {
	list, err := Build("device-name", []Rule{
		{Rowid: 1, ID: 201, Regex: `iPhone(\d+,\d+)`, Sequence: 1, RequiredWords: []uint16{0, 0}, WithCapture: true},
	})
	require.NoError(t, err)
	defer list.Close()

	scratch, err := list.NewScratch()
	require.NoError(t, err)

	subject := []byte("iPhone14,2")
	best, ok, err := list.Lookup(subject, scratch, map[uint16]bool{99: true})
	require.NoError(t, err)
	require.True(t, ok, "a rule with only zero-valued required words always qualifies")
	assert.Equal(t, "14,2", string(subject[best.CapStart:best.CapEnd]))
}
