// Package catalogue implements RuleCatalogue: the loaded, read-only bundle
// of KeywordIndexes and OrderedRegexLists for the rule categories, plus the
// os_code->word_id table used by device-brand matching (one direction only;
// there is no word_id->os_code lookup). The
// whole catalogue is read once at Load and held immutably in memory
// afterward; it is never mutated or re-read once loaded.
package catalogue

import (
	"database/sql"
	"fmt"
	"sort"

	_ "modernc.org/sqlite"

	"github.com/praetorian-inc/udgerua/pkg/keyword"
	"github.com/praetorian-inc/udgerua/pkg/ruleset"
)

// Catalogue is the immutable, shared-read rule bundle built once at init.
type Catalogue struct {
	ClientKeywords      *keyword.Index
	OsKeywords          *keyword.Index
	DeviceClassKeywords *keyword.Index
	ApplicationKeywords *keyword.Index // nil unless built with the udger_application tag

	Application *ruleset.List // nil unless built with the udger_application tag
	Client      *ruleset.List
	Os          *ruleset.List
	DeviceClass *ruleset.List
	DeviceName  *ruleset.List

	// OsCodeToWord is populated from the union of os_family_code and
	// os_code values seen in the device-name rule set. The literal code
	// "-all-" is excluded (it means "no constraint") and is represented as
	// 0 in required_words slots instead.
	OsCodeToWord map[string]uint16
}

// Load builds a Catalogue from the sqlite database at path. The database
// connection used here is transient: everything needed is read into memory
// and the connection is closed before Load returns, since RowStore (not
// Catalogue) owns the per-worker catalogue file handle used at parse time.
func Load(path string) (*Catalogue, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("opening catalogue %s: %w", path, err)}
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		return nil, &Error{Err: fmt.Errorf("opening catalogue %s: %w", path, err)}
	}

	cat := &Catalogue{}

	cat.ClientKeywords, err = loadKeywords(db, "udger_client_regex_words")
	if err != nil {
		return nil, &Error{Err: err}
	}
	cat.OsKeywords, err = loadKeywords(db, "udger_os_regex_words")
	if err != nil {
		return nil, &Error{Err: err}
	}
	cat.DeviceClassKeywords, err = loadKeywords(db, "udger_deviceclass_regex_words")
	if err != nil {
		return nil, &Error{Err: err}
	}

	cat.Client, err = loadStandardRegexList(db, "client", "udger_client_regex")
	if err != nil {
		return nil, &Error{Err: err}
	}
	cat.Os, err = loadStandardRegexList(db, "os", "udger_os_regex")
	if err != nil {
		return nil, &Error{Err: err}
	}
	cat.DeviceClass, err = loadStandardRegexList(db, "device-class", "udger_deviceclass_regex")
	if err != nil {
		return nil, &Error{Err: err}
	}

	deviceNameRules, osCodeToWord, err := loadDeviceNameRegexList(db)
	if err != nil {
		return nil, &Error{Err: err}
	}
	cat.DeviceName, err = ruleset.Build("device-name", deviceNameRules)
	if err != nil {
		return nil, &Error{Err: err}
	}
	cat.OsCodeToWord = osCodeToWord

	if err := loadApplication(db, cat); err != nil {
		return nil, &Error{Err: err}
	}

	return cat, nil
}

// Close releases every compiled automaton held by the catalogue.
func (c *Catalogue) Close() error {
	var firstErr error
	closers := []*ruleset.List{c.Application, c.Client, c.Os, c.DeviceClass, c.DeviceName}
	for _, l := range closers {
		if l == nil {
			continue
		}
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Error wraps a fatal catalogue-construction failure.
type Error struct{ Err error }

func (e *Error) Error() string { return fmt.Sprintf("catalogue: %v", e.Err) }
func (e *Error) Unwrap() error { return e.Err }

func loadKeywords(db *sql.DB, table string) (*keyword.Index, error) {
	rows, err := db.Query(fmt.Sprintf("SELECT id, word, count FROM %s", table))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()

	var entries []keyword.Entry
	for rows.Next() {
		var e keyword.Entry
		var count int64
		if err := rows.Scan(&e.ID, &e.Pattern, &count); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		e.Count = int(count)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	return keyword.Build(entries), nil
}

func loadStandardRegexList(db *sql.DB, category, table string) (*ruleset.List, error) {
	rows, err := db.Query(fmt.Sprintf(
		"SELECT rowid, id, regstring, sequence, word_id, word2_id FROM %s ORDER BY rowid", table))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	defer rows.Close()

	var rules []ruleset.Rule
	for rows.Next() {
		var r ruleset.Rule
		var wordA, wordB uint16
		if err := rows.Scan(&r.Rowid, &r.ID, &r.Regex, &r.Sequence, &wordA, &wordB); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", table, err)
		}
		r.RequiredWords = []uint16{wordA, wordB}
		r.WithCapture = category == "client"
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", table, err)
	}
	return ruleset.Build(category, rules)
}

// loadDeviceNameRegexList builds the device-name OrderedRegexList and the
// os_code_to_word table in one pass, since the latter is derived from the
// os_family_code/os_code columns of the former.
func loadDeviceNameRegexList(db *sql.DB) ([]ruleset.Rule, map[string]uint16, error) {
	rows, err := db.Query(
		"SELECT rowid, id, regstring, sequence, os_family_code, os_code FROM udger_devicename_regex ORDER BY rowid")
	if err != nil {
		return nil, nil, fmt.Errorf("reading udger_devicename_regex: %w", err)
	}
	defer rows.Close()

	type raw struct {
		rowid, id, sequence uint16
		regex               string
		familyCode, code     string
	}
	var rawRules []raw
	codeSet := make(map[string]bool)
	for rows.Next() {
		var r raw
		if err := rows.Scan(&r.rowid, &r.id, &r.regex, &r.sequence, &r.familyCode, &r.code); err != nil {
			return nil, nil, fmt.Errorf("scanning udger_devicename_regex: %w", err)
		}
		rawRules = append(rawRules, r)
		if r.familyCode != "" && r.familyCode != "-all-" {
			codeSet[r.familyCode] = true
		}
		if r.code != "" && r.code != "-all-" {
			codeSet[r.code] = true
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading udger_devicename_regex: %w", err)
	}

	codes := make([]string, 0, len(codeSet))
	for c := range codeSet {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	osCodeToWord := make(map[string]uint16, len(codes))
	for i, c := range codes {
		osCodeToWord[c] = uint16(i + 1) // dense ids starting at 1; 0 is the sentinel
	}

	rules := make([]ruleset.Rule, len(rawRules))
	for i, r := range rawRules {
		rules[i] = ruleset.Rule{
			Rowid:    r.rowid,
			ID:       r.id,
			Regex:    r.regex,
			Sequence: r.sequence,
			RequiredWords: []uint16{
				osCodeToWord[r.familyCode], // 0 if "-all-" or absent
				osCodeToWord[r.code],
			},
			WithCapture: true,
		}
	}
	return rules, osCodeToWord, nil
}
