//go:build udger_application

package catalogue

import "database/sql"

// loadApplication wires the optional application detector's keyword index
// and regex list. No UaInfo fields are populated from this category yet; it
// exists so the pipeline shape is in place for a future schema that adds
// udger_application_list.
func loadApplication(db *sql.DB, cat *Catalogue) error {
	words, err := loadKeywords(db, "udger_application_regex_words")
	if err != nil {
		return err
	}
	cat.ApplicationKeywords = words

	list, err := loadStandardRegexList(db, "application", "udger_application_regex")
	if err != nil {
		return err
	}
	cat.Application = list
	return nil
}
