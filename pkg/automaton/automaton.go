// Package automaton implements MultiPatternDB: compiling many regex sources,
// each tagged with a caller-chosen id, into a single scanner that reports
// every matching id (and, for patterns that asked for it, the byte range of
// the first capture group) in one pass over a subject.
//
// Two build variants exist, selected by build tags:
//   - automaton_hyperscan.go (cgo && hyperscan): Hyperscan block-mode scan,
//     with captures extracted by a second-stage github.com/dlclark/regexp2
//     pass over the whole subject.
//   - automaton_portable.go (!cgo || !hyperscan): a pure-Go regexp2-only
//     scan, for builds without a cgo toolchain.
package automaton

import (
	"fmt"

	"github.com/praetorian-inc/udgerua/internal/warnlog"
)

// Pattern is one regex source tagged with its caller-chosen rowid.
type Pattern struct {
	ID              uint16
	Source          string // already stripped of /…/si wrapper and trailing space
	CaseInsensitive bool
	WithCapture     bool // whether the first capture group's range is wanted
}

// CompileError means the whole rule list failed to compile into a usable
// automaton, not just one pattern. It is fatal at catalogue load time.
type CompileError struct {
	Category string
	Err      error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiling %s automaton: %v", e.Category, e.Err)
}

func (e *CompileError) Unwrap() error { return e.Err }

// ScanError is fatal for the one parse call that triggered it.
type ScanError struct {
	Err error
}

func (e *ScanError) Error() string { return fmt.Sprintf("automaton scan: %v", e.Err) }
func (e *ScanError) Unwrap() error { return e.Err }

// Match is one reported hit: the rowid of the pattern that matched and,
// when that pattern requested capture, the byte range of its first group.
type Match struct {
	ID         uint16
	HasCapture bool
	CapStart   int
	CapEnd     int
}

// skipPattern logs a per-pattern compile failure and drops it from the
// batch; one bad pattern never fails the whole set.
func skipPattern(category string, p Pattern, err error) {
	warnlog.Printf("automaton", "%s: pattern id %d failed to compile, skipping: %v", category, p.ID, err)
}
