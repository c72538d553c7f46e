// Package keyword implements KeywordIndex: a MultiPatternDB specialised for
// literal/short patterns ("words"), each carrying a catalogue-wide
// popularity count, returning matched word-ids sorted by descending count.
package keyword

import (
	"sort"

	"github.com/cloudflare/ahocorasick"
)

// Entry is one KeywordIndex entry: { id, pattern, count }.
type Entry struct {
	ID      uint16
	Pattern string
	Count   int
}

// Index is a compiled KeywordIndex: an Aho-Corasick literal-keyword scanner
// that emits (word-id, count) pairs for every pattern found in a subject.
type Index struct {
	matcher *ahocorasick.Matcher
	wordIDs []uint16 // parallel to the slice handed to ahocorasick.NewStringMatcher
	counts  map[uint16]int
}

// Build compiles entries into an Index. A KeywordIndex with no entries is a
// legal (if useless) catalogue category, so this never errors; see
// catalogue.Load for the fatal "no patterns" case handled one level up.
func Build(entries []Entry) *Index {
	idx := &Index{
		counts: make(map[uint16]int, len(entries)),
	}
	if len(entries) == 0 {
		return idx
	}
	patterns := make([]string, len(entries))
	idx.wordIDs = make([]uint16, len(entries))
	for i, e := range entries {
		patterns[i] = e.Pattern
		idx.wordIDs[i] = e.ID
		idx.counts[e.ID] = e.Count
	}
	idx.matcher = ahocorasick.NewStringMatcher(patterns)
	return idx
}

// Match scans subject and returns the matched word-ids sorted by descending
// count (ties broken by the order Aho-Corasick reported them in, via a
// stable sort). Word-ids with no entry in the count table are dropped
// silently rather than treated as an error.
func (idx *Index) Match(subject []byte) []uint16 {
	if idx.matcher == nil {
		return nil
	}
	hits := idx.matcher.Match(subject)

	type found struct {
		id    uint16
		count int
	}
	results := make([]found, 0, len(hits))
	for _, h := range hits {
		if h < 0 || h >= len(idx.wordIDs) {
			continue
		}
		id := idx.wordIDs[h]
		count, ok := idx.counts[id]
		if !ok {
			continue
		}
		results = append(results, found{id: id, count: count})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].count > results[j].count
	})

	ids := make([]uint16, len(results))
	for i, f := range results {
		ids[i] = f.id
	}
	return ids
}

// Set builds a lookup set from a Match result, used by OrderedRegexList's
// "required words are a subset of the candidate set" check.
func Set(ids []uint16) map[uint16]bool {
	set := make(map[uint16]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
