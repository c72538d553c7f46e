//go:build cgo && hyperscan

package automaton

import (
	"fmt"

	"github.com/dlclark/regexp2"
	"github.com/flier/gohs/hyperscan"
)

// DB is a compiled MultiPatternDB backed by Hyperscan. Offsets from
// Hyperscan are used only to know *which* rowids matched; for patterns that
// asked for capture, a second-stage github.com/dlclark/regexp2 pass over the
// whole subject recovers the first capture group's byte range.
type DB struct {
	hs           hyperscan.BlockDatabase
	captureRegex map[uint16]*regexp2.Regexp
}

// Scratch is per-thread Hyperscan scan state; never share across goroutines.
type Scratch struct {
	hs *hyperscan.Scratch
}

// Compile builds a Hyperscan block database from patterns, tolerating
// individual pattern compile failures by skipping and warning instead of
// failing the batch.
func Compile(category string, patterns []Pattern) (*DB, error) {
	if len(patterns) == 0 {
		return nil, &CompileError{Category: category, Err: fmt.Errorf("no patterns")}
	}

	hsPatterns := make([]*hyperscan.Pattern, len(patterns))
	for i, p := range patterns {
		flags := hyperscan.DotAll
		if p.CaseInsensitive {
			flags |= hyperscan.Caseless
		}
		hp := hyperscan.NewPattern(p.Source, flags)
		hp.Id = int(p.ID)
		hsPatterns[i] = hp
	}

	good := hsPatterns
	if db, err := hyperscan.NewBlockDatabase(hsPatterns...); err == nil {
		return finishCompile(db, patterns)
	}

	bad := findBadIndices(hsPatterns)
	if len(bad) == len(hsPatterns) {
		return nil, &CompileError{Category: category, Err: fmt.Errorf("no pattern in this set compiles")}
	}
	badSet := make(map[int]bool, len(bad))
	for _, idx := range bad {
		badSet[idx] = true
		skipPattern(category, patterns[idx], fmt.Errorf("rejected by hyperscan"))
	}
	good = good[:0]
	keptPatterns := make([]Pattern, 0, len(patterns)-len(bad))
	for i, hp := range hsPatterns {
		if badSet[i] {
			continue
		}
		good = append(good, hp)
		keptPatterns = append(keptPatterns, patterns[i])
	}

	db, err := hyperscan.NewBlockDatabase(good...)
	if err != nil {
		return nil, &CompileError{Category: category, Err: err}
	}
	return finishCompile(db, keptPatterns)
}

// findBadIndices bisects a pattern batch to find the indices that do not
// compile, without paying the cost of validating every pattern one by one
// in the common case where the whole batch compiles cleanly.
func findBadIndices(patterns []*hyperscan.Pattern) []int {
	if len(patterns) == 0 {
		return nil
	}
	if db, err := hyperscan.NewBlockDatabase(patterns...); err == nil {
		db.Close()
		return nil
	}
	if len(patterns) == 1 {
		return []int{0}
	}
	mid := len(patterns) / 2
	leftBad := findBadIndices(patterns[:mid])
	rightBad := findBadIndices(patterns[mid:])
	bad := make([]int, 0, len(leftBad)+len(rightBad))
	bad = append(bad, leftBad...)
	for _, b := range rightBad {
		bad = append(bad, mid+b)
	}
	return bad
}

func finishCompile(db hyperscan.BlockDatabase, patterns []Pattern) (*DB, error) {
	captureRegex := make(map[uint16]*regexp2.Regexp)
	for _, p := range patterns {
		if !p.WithCapture {
			continue
		}
		opts := regexp2.Singleline
		if p.CaseInsensitive {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(p.Source, opts)
		if err != nil {
			skipPattern("capture", p, err)
			continue
		}
		captureRegex[p.ID] = re
	}
	return &DB{hs: db, captureRegex: captureRegex}, nil
}

// NewScratch allocates per-thread scan state for db. Never share the result
// across goroutines.
func NewScratch(db *DB) (*Scratch, error) {
	s, err := hyperscan.NewScratch(db.hs)
	if err != nil {
		return nil, fmt.Errorf("allocating hyperscan scratch: %w", err)
	}
	return &Scratch{hs: s}, nil
}

// Scan invokes onMatch once per distinct rowid found in subject.
func (db *DB) Scan(subject []byte, scratch *Scratch, onMatch func(id uint16)) error {
	seen := make(map[uint16]bool)
	cb := func(id uint, from, to uint64, flags uint, context interface{}) error {
		uid := uint16(id)
		if !seen[uid] {
			seen[uid] = true
			onMatch(uid)
		}
		return nil
	}
	if err := db.hs.Scan(subject, scratch.hs, cb, nil); err != nil {
		return &ScanError{Err: err}
	}
	return nil
}

// Capture returns the byte range of the first capture group of the pattern
// identified by id, re-running it over the whole subject. ok is false when
// id did not request capture or the pattern did not match.
func (db *DB) Capture(id uint16, subject []byte) (start, end int, ok bool) {
	re, found := db.captureRegex[id]
	if !found {
		return 0, 0, false
	}
	m, err := re.FindStringMatch(string(subject))
	if err != nil || m == nil {
		return 0, 0, false
	}
	groups := m.Groups()
	if len(groups) < 2 {
		return 0, 0, false
	}
	g := groups[1]
	if len(g.Captures) == 0 {
		return 0, 0, false
	}
	c := g.Captures[0]
	return c.Index, c.Index + c.Length, true
}

// Close releases the Hyperscan database. Scratch is freed separately by the
// owning ParseContext since its lifetime is per-worker, not per-DB.
func (db *DB) Close() error {
	if db.hs != nil {
		return db.hs.Close()
	}
	return nil
}

// Close releases scratch. Each ParseContext owns one Scratch per automaton
// and frees it when the context is torn down.
func (s *Scratch) Close() error {
	if s.hs != nil {
		return s.hs.Free()
	}
	return nil
}
