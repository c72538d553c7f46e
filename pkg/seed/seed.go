// Package seed builds a throwaway, Udger-v3-shaped sqlite catalogue from a
// small YAML fixture, for use in tests that need a real (if tiny) on-disk
// catalogue to exercise pkg/catalogue and pkg/rowstore against.
package seed

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
	"gopkg.in/yaml.v3"
)

// Fixture is the intermediate YAML shape for a tiny Udger-like catalogue.
type Fixture struct {
	Crawlers      []CrawlerFixture     `yaml:"crawlers"`
	ClientClasses []ClientClassFixture `yaml:"client_classes"`
	Clients       []ClientFixture      `yaml:"clients"`
	OSes          []OSFixture          `yaml:"oses"`
	DeviceClasses []DeviceClassFixture `yaml:"device_classes"`
	DeviceNames   []DeviceNameFixture  `yaml:"device_names"`
}

// ClientClassFixture is one udger_client_class row: the browser-vs-other
// classification a client_id belongs to, plus the device class it implies
// when no device regex matches directly.
type ClientClassFixture struct {
	ID                 uint16 `yaml:"id"`
	Classification     string `yaml:"classification"`
	ClassificationCode string `yaml:"classification_code"`
	DeviceClassID      uint16 `yaml:"device_class_id"`
}

type CrawlerFixture struct {
	UaString               string `yaml:"ua_string"`
	Name                   string `yaml:"name"`
	Ver                    string `yaml:"ver"`
	VerMajor               string `yaml:"ver_major"`
	LastSeen               string `yaml:"last_seen"`
	RespectRobotstxt       string `yaml:"respect_robotstxt"`
	Family                 string `yaml:"family"`
	FamilyCode             string `yaml:"family_code"`
	FamilyHomepage         string `yaml:"family_homepage"`
	FamilyIcon             string `yaml:"family_icon"`
	Vendor                 string `yaml:"vendor"`
	VendorCode             string `yaml:"vendor_code"`
	VendorHomepage         string `yaml:"vendor_homepage"`
	ClassificationName     string `yaml:"classification"`
	ClassificationCode     string `yaml:"classification_code"`
}

type ClientFixture struct {
	ID                uint16   `yaml:"id"`
	ClassID           uint16   `yaml:"class_id"`
	Name              string   `yaml:"name"`
	Engine            string   `yaml:"engine"`
	UptodateVersion   string   `yaml:"uptodate_current_version"`
	Homepage          string   `yaml:"homepage"`
	Icon              string   `yaml:"icon"`
	Vendor            string   `yaml:"vendor"`
	VendorCode        string   `yaml:"vendor_code"`
	VendorHomepage    string   `yaml:"vendor_homepage"`
	Regexes           []RegexFixture `yaml:"regexes"`
}

type OSFixture struct {
	ID             uint16 `yaml:"id"`
	Name           string `yaml:"name"`
	NameCode       string `yaml:"name_code"`
	Family         string `yaml:"family"`
	FamilyCode     string `yaml:"family_code"`
	Homepage       string `yaml:"homepage"`
	Icon           string `yaml:"icon"`
	Vendor         string `yaml:"vendor"`
	VendorCode     string `yaml:"vendor_code"`
	VendorHomepage string `yaml:"vendor_homepage"`
	Regexes        []RegexFixture `yaml:"regexes"`
	ClientIDs      []uint16 `yaml:"client_ids"` // udger_client_os_relation rows
}

type DeviceClassFixture struct {
	ID       uint16 `yaml:"id"`
	Name     string `yaml:"name"`
	NameCode string `yaml:"name_code"`
	Icon     string `yaml:"icon"`
	Regexes  []RegexFixture `yaml:"regexes"`
}

type DeviceNameFixture struct {
	RegexID      uint16 `yaml:"regex_id"`
	RegexString  string `yaml:"regex"`
	Sequence     uint16 `yaml:"sequence"`
	OsFamilyCode string `yaml:"os_family_code"`
	OsCode       string `yaml:"os_code"`
	Code         string `yaml:"code"`
	Marketname   string `yaml:"marketname"`
	BrandCode    string `yaml:"brand_code"`
	Brand        string `yaml:"brand"`
	BrandURL     string `yaml:"brand_url"`
	BrandIcon    string `yaml:"brand_icon"`
}

// RegexFixture is one udger_*_regex row plus its backing regex_words
// entries (each word is inserted as its own row with a count of 1).
type RegexFixture struct {
	ID       uint16   `yaml:"id"`
	Regex    string   `yaml:"regex"`
	Sequence uint16   `yaml:"sequence"`
	Words    []string `yaml:"words"`
}

// Parse unmarshals a YAML fixture document.
func Parse(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

// Build creates a fresh Udger-v3-shaped sqlite database at path (pass
// ":memory:" for a purely in-process catalogue, though callers needing a
// *path* usable by catalogue.Load/rowstore.Open should use a temp file
// instead, since :memory: databases are not sharable across connections)
// and populates it from f.
func Build(path string, f *Fixture) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	if err := createSchema(db); err != nil {
		return err
	}
	if err := insertFixture(db, f); err != nil {
		return err
	}
	return nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE udger_crawler_class (id INTEGER PRIMARY KEY, crawler_classification TEXT, crawler_classification_code TEXT)`,
		`CREATE TABLE udger_crawler_list (id INTEGER PRIMARY KEY, class_id INTEGER, ua_string TEXT, name TEXT, ver TEXT, ver_major TEXT,
			last_seen TEXT, respect_robotstxt TEXT, family TEXT, family_code TEXT, family_homepage TEXT, family_icon TEXT,
			vendor TEXT, vendor_code TEXT, vendor_homepage TEXT)`,

		`CREATE TABLE udger_client_class (id INTEGER PRIMARY KEY, client_classification TEXT, client_classification_code TEXT, deviceclass_id INTEGER)`,
		`CREATE TABLE udger_client_list (id INTEGER PRIMARY KEY, class_id INTEGER, name TEXT, engine TEXT, uptodate_current_version TEXT,
			homepage TEXT, icon TEXT, icon_big TEXT, vendor TEXT, vendor_code TEXT, vendor_homepage TEXT)`,
		`CREATE TABLE udger_client_regex (id INTEGER, client_id INTEGER, regstring TEXT, sequence INTEGER, word_id INTEGER, word2_id INTEGER)`,
		`CREATE TABLE udger_client_regex_words (id INTEGER PRIMARY KEY, word TEXT, count INTEGER)`,
		`CREATE TABLE udger_client_os_relation (client_id INTEGER, os_id INTEGER)`,

		`CREATE TABLE udger_os_list (id INTEGER PRIMARY KEY, name TEXT, name_code TEXT, family TEXT, family_code TEXT,
			homepage TEXT, icon TEXT, icon_big TEXT, vendor TEXT, vendor_code TEXT, vendor_homepage TEXT)`,
		`CREATE TABLE udger_os_regex (id INTEGER, os_id INTEGER, regstring TEXT, sequence INTEGER, word_id INTEGER, word2_id INTEGER)`,
		`CREATE TABLE udger_os_regex_words (id INTEGER PRIMARY KEY, word TEXT, count INTEGER)`,

		`CREATE TABLE udger_deviceclass_list (id INTEGER PRIMARY KEY, name TEXT, name_code TEXT, icon TEXT, icon_big TEXT)`,
		`CREATE TABLE udger_deviceclass_regex (id INTEGER, deviceclass_id INTEGER, regstring TEXT, sequence INTEGER, word_id INTEGER, word2_id INTEGER)`,
		`CREATE TABLE udger_deviceclass_regex_words (id INTEGER PRIMARY KEY, word TEXT, count INTEGER)`,

		`CREATE TABLE udger_devicename_regex (id INTEGER, regstring TEXT, sequence INTEGER, os_family_code TEXT, os_code TEXT)`,
		`CREATE TABLE udger_devicename_list (regex_id INTEGER, code TEXT, marketname TEXT, brand_id INTEGER)`,
		`CREATE TABLE udger_devicename_brand (id INTEGER PRIMARY KEY, brand_code TEXT, brand TEXT, brand_url TEXT, icon TEXT, icon_big TEXT)`,

		`CREATE TABLE udger_application_regex (id INTEGER, application_id INTEGER, regstring TEXT, sequence INTEGER, word_id INTEGER, word2_id INTEGER)`,
		`CREATE TABLE udger_application_regex_words (id INTEGER PRIMARY KEY, word TEXT, count INTEGER)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

func insertFixture(db *sql.DB, f *Fixture) error {
	for _, c := range f.Crawlers {
		if _, err := db.Exec(`INSERT INTO udger_crawler_class (id, crawler_classification, crawler_classification_code) VALUES (1, ?, ?)`,
			c.ClassificationName, c.ClassificationCode); err != nil {
			return err
		}
		if _, err := db.Exec(`INSERT INTO udger_crawler_list
			(class_id, ua_string, name, ver, ver_major, last_seen, respect_robotstxt, family, family_code,
			 family_homepage, family_icon, vendor, vendor_code, vendor_homepage)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.UaString, c.Name, c.Ver, c.VerMajor, c.LastSeen, c.RespectRobotstxt, c.Family, c.FamilyCode,
			c.FamilyHomepage, c.FamilyIcon, c.Vendor, c.VendorCode, c.VendorHomepage); err != nil {
			return err
		}
	}

	for _, cc := range f.ClientClasses {
		if _, err := db.Exec(`INSERT INTO udger_client_class (id, client_classification, client_classification_code, deviceclass_id) VALUES (?, ?, ?, ?)`,
			cc.ID, cc.Classification, cc.ClassificationCode, cc.DeviceClassID); err != nil {
			return err
		}
	}

	for _, c := range f.Clients {
		if _, err := db.Exec(`INSERT INTO udger_client_list
			(id, class_id, name, engine, uptodate_current_version, homepage, icon, icon_big, vendor, vendor_code, vendor_homepage)
			VALUES (?, ?, ?, ?, ?, ?, ?, '', ?, ?, ?)`,
			c.ID, c.ClassID, c.Name, c.Engine, c.UptodateVersion, c.Homepage, c.Icon, c.Vendor, c.VendorCode, c.VendorHomepage); err != nil {
			return err
		}
		if err := insertRegexes(db, "udger_client_regex", "client_id", "udger_client_regex_words", c.ID, c.Regexes); err != nil {
			return err
		}
	}

	for _, o := range f.OSes {
		if _, err := db.Exec(`INSERT INTO udger_os_list
			(id, name, name_code, family, family_code, homepage, icon, icon_big, vendor, vendor_code, vendor_homepage)
			VALUES (?, ?, ?, ?, ?, ?, ?, '', ?, ?, ?)`,
			o.ID, o.Name, o.NameCode, o.Family, o.FamilyCode, o.Homepage, o.Icon, o.Vendor, o.VendorCode, o.VendorHomepage); err != nil {
			return err
		}
		if err := insertRegexes(db, "udger_os_regex", "os_id", "udger_os_regex_words", o.ID, o.Regexes); err != nil {
			return err
		}
		for _, clientID := range o.ClientIDs {
			if _, err := db.Exec(`INSERT INTO udger_client_os_relation (client_id, os_id) VALUES (?, ?)`, clientID, o.ID); err != nil {
				return err
			}
		}
	}

	for _, d := range f.DeviceClasses {
		if _, err := db.Exec(`INSERT INTO udger_deviceclass_list (id, name, name_code, icon, icon_big) VALUES (?, ?, ?, ?, '')`,
			d.ID, d.Name, d.NameCode, d.Icon); err != nil {
			return err
		}
		if err := insertRegexes(db, "udger_deviceclass_regex", "deviceclass_id", "udger_deviceclass_regex_words", d.ID, d.Regexes); err != nil {
			return err
		}
	}

	for _, dn := range f.DeviceNames {
		if _, err := db.Exec(`INSERT INTO udger_devicename_regex (id, regstring, sequence, os_family_code, os_code) VALUES (?, ?, ?, ?, ?)`,
			dn.RegexID, dn.RegexString, dn.Sequence, dn.OsFamilyCode, dn.OsCode); err != nil {
			return err
		}
		brandRes, err := db.Exec(`INSERT INTO udger_devicename_brand (brand_code, brand, brand_url, icon, icon_big) VALUES (?, ?, ?, ?, '')`,
			dn.BrandCode, dn.Brand, dn.BrandURL, dn.BrandIcon)
		if err != nil {
			return err
		}
		brandID, err := brandRes.LastInsertId()
		if err != nil {
			return err
		}
		if _, err := db.Exec(`INSERT INTO udger_devicename_list (regex_id, code, marketname, brand_id) VALUES (?, ?, ?, ?)`,
			dn.RegexID, dn.Code, dn.Marketname, brandID); err != nil {
			return err
		}
	}

	return nil
}

func insertRegexes(db *sql.DB, regexTable, fkColumn, wordsTable string, fkID uint16, regexes []RegexFixture) error {
	for _, r := range regexes {
		wordA, wordB := uint16(0), uint16(0)
		if len(r.Words) > 0 {
			id, err := insertWord(db, wordsTable, r.Words[0])
			if err != nil {
				return err
			}
			wordA = id
		}
		if len(r.Words) > 1 {
			id, err := insertWord(db, wordsTable, r.Words[1])
			if err != nil {
				return err
			}
			wordB = id
		}
		q := fmt.Sprintf(`INSERT INTO %s (id, %s, regstring, sequence, word_id, word2_id) VALUES (?, ?, ?, ?, ?, ?)`, regexTable, fkColumn)
		if _, err := db.Exec(q, r.ID, fkID, r.Regex, r.Sequence, wordA, wordB); err != nil {
			return err
		}
	}
	return nil
}

func insertWord(db *sql.DB, table, word string) (uint16, error) {
	res, err := db.Exec(fmt.Sprintf(`INSERT INTO %s (word, count) VALUES (?, 1)`, table), word)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint16(id), nil
}
