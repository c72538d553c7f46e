package keyword

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmptyIndexMatchesNothing(t *testing.T) {
	idx := Build(nil)
	require.NotNil(t, idx)
	assert.Empty(t, idx.Match([]byte("Mozilla/5.0 (Windows NT 10.0)")))
}

func TestMatchSortedByDescendingCount(t *testing.T) {
	idx := Build([]Entry{
		{ID: 1, Pattern: "Mozilla", Count: 10},
		{ID: 2, Pattern: "Chrome", Count: 500},
		{ID: 3, Pattern: "Safari", Count: 50},
	})

	ids := idx.Match([]byte("Mozilla/5.0 Chrome/91.0 Safari/537.36"))
	require.Len(t, ids, 3)
	assert.Equal(t, []uint16{2, 3, 1}, ids)
}

func TestMatchDropsUnknownIDsSilently(t *testing.T) {
	// A matcher built over the right pattern set never reports an id without
	// a count entry, but Match must not panic if it somehow did.
	idx := Build([]Entry{{ID: 1, Pattern: "Firefox", Count: 5}})
	delete(idx.counts, 1)

	assert.NotPanics(t, func() {
		ids := idx.Match([]byte("Firefox/100.0"))
		assert.Empty(t, ids)
	})
}

func TestSetBuildsLookupTable(t *testing.T) {
	set := Set([]uint16{1, 2, 2, 3})
	assert.True(t, set[1])
	assert.True(t, set[2])
	assert.True(t, set[3])
	assert.False(t, set[4])
}
