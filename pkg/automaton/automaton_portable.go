//go:build !cgo || !hyperscan

package automaton

import (
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
)

// DB is a compiled MultiPatternDB for builds without cgo/Hyperscan
// (CGO_ENABLED=0, or the hyperscan build tag was not requested). It scans by
// running each surviving pattern's github.com/dlclark/regexp2.Regexp in turn.
type DB struct {
	ids     []uint16
	regex   map[uint16]*regexp2.Regexp
	capture map[uint16]bool
}

// Scratch carries no per-thread state in the portable build: regexp2's
// Regexp is safe for concurrent matching via its internal runner pool, but
// a ParseContext still owns one Scratch value for API symmetry with the
// Hyperscan build.
type Scratch struct{}

// Compile builds the portable database, tolerating individual pattern
// compile failures by skipping and warning instead of failing the batch.
func Compile(category string, patterns []Pattern) (*DB, error) {
	if len(patterns) == 0 {
		return nil, &CompileError{Category: category, Err: fmt.Errorf("no patterns")}
	}

	db := &DB{
		regex:   make(map[uint16]*regexp2.Regexp, len(patterns)),
		capture: make(map[uint16]bool, len(patterns)),
	}

	for _, p := range patterns {
		opts := regexp2.RE2 | regexp2.Singleline
		if p.CaseInsensitive {
			opts |= regexp2.IgnoreCase
		}
		re, err := regexp2.Compile(p.Source, opts)
		if err != nil {
			// RE2 mode rejects some constructs (e.g. backreferences) that
			// the catalogue's regexes occasionally use; retry in full mode
			// before giving up on the pattern entirely.
			re, err = regexp2.Compile(p.Source, opts&^regexp2.RE2)
		}
		if err != nil {
			skipPattern(category, p, err)
			continue
		}
		re.MatchTimeout = 2 * time.Second
		db.ids = append(db.ids, p.ID)
		db.regex[p.ID] = re
		db.capture[p.ID] = p.WithCapture
	}

	if len(db.ids) == 0 {
		return nil, &CompileError{Category: category, Err: fmt.Errorf("no pattern in this set compiles")}
	}
	return db, nil
}

// NewScratch returns the (empty) portable scratch value.
func NewScratch(db *DB) (*Scratch, error) {
	return &Scratch{}, nil
}

// Scan invokes onMatch once per distinct rowid found in subject.
func (db *DB) Scan(subject []byte, scratch *Scratch, onMatch func(id uint16)) error {
	text := string(subject)
	for _, id := range db.ids {
		re := db.regex[id]
		m, err := re.FindStringMatch(text)
		if err != nil {
			return &ScanError{Err: fmt.Errorf("pattern id %d: %w", id, err)}
		}
		if m != nil {
			onMatch(id)
		}
	}
	return nil
}

// Capture returns the byte range of the first capture group of the pattern
// identified by id. ok is false when id did not request capture or the
// pattern did not match.
func (db *DB) Capture(id uint16, subject []byte) (start, end int, ok bool) {
	if !db.capture[id] {
		return 0, 0, false
	}
	re, found := db.regex[id]
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

// Close is a no-op in the portable build; there is no native handle to
// release.
func (db *DB) Close() error { return nil }

// Close is a no-op in the portable build.
func (s *Scratch) Close() error { return nil }
