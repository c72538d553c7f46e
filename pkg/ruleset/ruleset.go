// Package ruleset implements OrderedRegexList: a MultiPatternDB over rule
// regexes augmented with per-rule sequence (priority), external id, and up
// to two required word-ids, exposing first-qualifying-by-sequence lookup
// with optional capture.
//
// The four detectors (client/os/device-class/device-brand) are all variants
// of this one capability; device-brand's "os-code-word" required slots use
// the same zero-means-unconstrained convention as the other three, so one
// List type serves all five categories (application/client/os/device-class/
// device-name).
package ruleset

import (
	"sort"
	"strings"

	"github.com/praetorian-inc/udgerua/pkg/automaton"
)

// Rule is one OrderedRegexList entry.
type Rule struct {
	Rowid         uint16
	ID            uint16
	Regex         string // raw source; StripDelimiters has NOT been applied yet
	Sequence      uint16
	RequiredWords []uint16 // up to two; zero entries mean "no requirement" and are dropped
	WithCapture   bool
}

// List is a compiled OrderedRegexList.
type List struct {
	db       *automaton.DB
	sequence map[uint16]uint16
	ruleID   map[uint16]uint16
	required map[uint16][]uint16
}

// Best is the result of a qualifying lookup.
type Best struct {
	Rowid      uint16
	ID         uint16
	HasCapture bool
	CapStart   int
	CapEnd     int
}

// StripDelimiters removes the catalogue's /…/si wrapper and trailing
// whitespace from a raw regstring column value.
func StripDelimiters(raw string) string {
	s := strings.TrimRight(raw, " \t")
	if len(s) >= 2 && s[0] == '/' {
		if idx := strings.LastIndexByte(s, '/'); idx > 0 {
			return s[1:idx]
		}
	}
	return s
}

// Build compiles rules into a List. category is used only for warning
// messages on a per-pattern compile failure.
func Build(category string, rules []Rule) (*List, error) {
	patterns := make([]automaton.Pattern, len(rules))
	l := &List{
		sequence: make(map[uint16]uint16, len(rules)),
		ruleID:   make(map[uint16]uint16, len(rules)),
		required: make(map[uint16][]uint16, len(rules)),
	}
	for i, r := range rules {
		patterns[i] = automaton.Pattern{
			ID:              r.Rowid,
			Source:          StripDelimiters(r.Regex),
			CaseInsensitive: true,
			WithCapture:     r.WithCapture,
		}
		l.sequence[r.Rowid] = r.Sequence
		l.ruleID[r.Rowid] = r.ID
		var req []uint16
		for _, w := range r.RequiredWords {
			if w != 0 {
				req = append(req, w)
			}
		}
		l.required[r.Rowid] = req
	}

	db, err := automaton.Compile(category, patterns)
	if err != nil {
		return nil, err
	}
	l.db = db
	return l, nil
}

// Close releases the underlying automaton.
func (l *List) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// NewScratch allocates per-thread scan state for l.
func (l *List) NewScratch() (*automaton.Scratch, error) {
	return automaton.NewScratch(l.db)
}

// Lookup finds the lowest-sequence rule whose required words are all
// present in candidateWords, preferring smaller sequence numbers among
// qualifying hits. candidateWords is the keyword set produced by the paired
// KeywordIndex (or, for device-brand, the os-code-word set). An empty
// candidate set short-circuits to "not found".
func (l *List) Lookup(subject []byte, scratch *automaton.Scratch, candidateWords map[uint16]bool) (Best, bool, error) {
	if len(candidateWords) == 0 {
		return Best{}, false, nil
	}

	type hit struct {
		rowid    uint16
		sequence uint16
	}
	var hits []hit
	err := l.db.Scan(subject, scratch, func(id uint16) {
		seq, ok := l.sequence[id]
		if !ok {
			return // not one of this List's rowids; invariant guard
		}
		hits = append(hits, hit{rowid: id, sequence: seq})
	})
	if err != nil {
		return Best{}, false, err
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].sequence < hits[j].sequence
	})

	for _, h := range hits {
		if !qualifies(l.required[h.rowid], candidateWords) {
			continue
		}
		best := Best{Rowid: h.rowid, ID: l.ruleID[h.rowid]}
		if start, end, ok := l.db.Capture(h.rowid, subject); ok {
			best.HasCapture = true
			best.CapStart = start
			best.CapEnd = end
		}
		return best, true, nil
	}
	return Best{}, false, nil
}

// qualifies reports whether required is a subset of candidates; an empty
// required list always qualifies.
func qualifies(required []uint16, candidates map[uint16]bool) bool {
	for _, w := range required {
		if !candidates[w] {
			return false
		}
	}
	return true
}
