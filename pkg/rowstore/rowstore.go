// Package rowstore implements RowStore: random-access queries against the
// Udger v3 catalogue database, keyed by rowid or class_id, used to fetch the
// human-readable attributes of a winning rule.
package rowstore

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store is a read-only handle to one catalogue database file. One Store is
// opened per ParseContext rather than shared, since the underlying sqlite
// handle is not assumed multi-thread-safe.
type Store struct {
	db *sql.DB
}

// Open opens the catalogue at path read-only. The catalogue is never
// written by this engine.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("opening catalogue %s: %w", path, err)}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &Error{Err: fmt.Errorf("opening catalogue %s: %w", path, err)}
	}
	return &Store{db: db}, nil
}

// Close releases the catalogue handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Error wraps a database error other than "no row".
type Error struct{ Err error }

func (e *Error) Error() string { return fmt.Sprintf("rowstore: %v", e.Err) }
func (e *Error) Unwrap() error { return e.Err }

const osColumns = `family, family_code, name, name_code, homepage, icon, icon_big,
	vendor, vendor_code, vendor_homepage,
	'https://udger.com/resources/ua-list/os-detail?os=' || replace(name, ' ', '%20')`

const deviceColumns = `name, name_code, icon, icon_big,
	'https://udger.com/resources/ua-list/device-detail?device=' || replace(name, ' ', '%20')`

const sqlCrawler = `SELECT
	NULL, NULL,
	'Crawler', 'crawler',
	udger_crawler_list.name, NULL, udger_crawler_list.ver, udger_crawler_list.ver_major,
	udger_crawler_list.last_seen, udger_crawler_list.respect_robotstxt,
	udger_crawler_class.crawler_classification, udger_crawler_class.crawler_classification_code,
	NULL,
	udger_crawler_list.family, udger_crawler_list.family_code,
	udger_crawler_list.family_homepage, udger_crawler_list.family_icon, NULL,
	udger_crawler_list.vendor, udger_crawler_list.vendor_code, udger_crawler_list.vendor_homepage,
	'https://udger.com/resources/ua-list/bot-detail?bot=' || replace(udger_crawler_list.family, ' ', '%20') || '#id' || udger_crawler_list.id
	FROM udger_crawler_list
	LEFT JOIN udger_crawler_class ON udger_crawler_class.id = udger_crawler_list.class_id
	WHERE udger_crawler_list.ua_string = ?`

const sqlClient = `SELECT
	client_id, class_id,
	client_classification, client_classification_code,
	name, engine, NULL, NULL, NULL, NULL, NULL, NULL,
	uptodate_current_version,
	name, name_code, homepage, icon, icon_big,
	vendor, vendor_code, vendor_homepage,
	'https://udger.com/resources/ua-list/browser-detail?browser=' || replace(name, ' ', '%20')
	FROM udger_client_regex ur
	JOIN udger_client_list ON udger_client_list.id = ur.client_id
	JOIN udger_client_class ON udger_client_class.id = udger_client_list.class_id
	WHERE ur.rowid = ?`

const sqlOS = `SELECT ` + osColumns + `
	FROM udger_os_regex ur
	JOIN udger_os_list ON udger_os_list.id = ur.os_id
	WHERE ur.rowid = ?`

const sqlDevice = `SELECT ` + deviceColumns + `
	FROM udger_deviceclass_regex ur
	JOIN udger_deviceclass_list ON udger_deviceclass_list.id = ur.deviceclass_id
	WHERE ur.rowid = ?`

const sqlClientClass = `SELECT ` + deviceColumns + `
	FROM udger_deviceclass_list
	JOIN udger_client_class ON udger_client_class.deviceclass_id = udger_deviceclass_list.id
	WHERE udger_client_class.id = ?`

const sqlDeviceNameList = `SELECT
	udger_devicename_list.marketname, udger_devicename_brand.brand_code, udger_devicename_brand.brand,
	udger_devicename_brand.brand_url, udger_devicename_brand.icon, udger_devicename_brand.icon_big
	FROM udger_devicename_list
	JOIN udger_devicename_brand ON udger_devicename_brand.id = udger_devicename_list.brand_id
	WHERE udger_devicename_list.regex_id = ? AND udger_devicename_list.code = ?`

func ns(v sql.NullString) string {
	if v.Valid {
		return v.String
	}
	return ""
}

func wrapErr(err error) error {
	if err == sql.ErrNoRows {
		return nil
	}
	return &Error{Err: err}
}
