//go:build !udger_application

package catalogue

import "database/sql"

// loadApplication is a no-op when the application feature group is
// compiled out: cat.Application and cat.ApplicationKeywords stay nil, and
// detect_application is skipped entirely (see pkg/uaparser).
func loadApplication(db *sql.DB, cat *Catalogue) error {
	return nil
}
