package rowstore

import (
	"database/sql"
	"strings"

	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

// CrawlerRow is the result of the crawler fast-path lookup.
type CrawlerRow struct {
	UaClass, UaClassCode                                          sql.NullString
	Ua, UaEngine                                                   sql.NullString
	UaVersion, UaVersionMajor                                      sql.NullString
	CrawlerLastSeen, CrawlerRespectRobotstxt                       sql.NullString
	CrawlerCategory, CrawlerCategoryCode                           sql.NullString
	UaUptodateCurrentVersion                                       sql.NullString
	UaFamily, UaFamilyCode                                         sql.NullString
	UaFamilyHomepage, UaFamilyIcon, UaFamilyIconBig                sql.NullString
	UaFamilyVendor, UaFamilyVendorCode, UaFamilyVendorHomepage     sql.NullString
	UaFamilyInfoURL                                                sql.NullString
}

// Crawler runs the exact-match crawler lookup.
func (s *Store) Crawler(uaString string) (*CrawlerRow, bool, error) {
	var r CrawlerRow
	var discardClientID, discardClassID sql.NullString
	err := s.db.QueryRow(sqlCrawler, uaString).Scan(
		&discardClientID, &discardClassID,
		&r.UaClass, &r.UaClassCode,
		&r.Ua, &r.UaEngine, &r.UaVersion, &r.UaVersionMajor,
		&r.CrawlerLastSeen, &r.CrawlerRespectRobotstxt,
		&r.CrawlerCategory, &r.CrawlerCategoryCode,
		&r.UaUptodateCurrentVersion,
		&r.UaFamily, &r.UaFamilyCode,
		&r.UaFamilyHomepage, &r.UaFamilyIcon, &r.UaFamilyIconBig,
		&r.UaFamilyVendor, &r.UaFamilyVendorCode, &r.UaFamilyVendorHomepage,
		&r.UaFamilyInfoURL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, wrapErr(err)
	}
	return &r, true, nil
}

// ApplyTo stamps crawler fields onto info. class_id is fixed at 99 (the
// Udger sentinel for crawlers) and client_id stays absent.
func (r *CrawlerRow) ApplyTo(info *uainfo.Info) {
	info.SetClassID(99)
	info.UaClass = ns(r.UaClass)
	info.UaClassCode = ns(r.UaClassCode)
	info.Ua = ns(r.Ua)
	info.UaVersion = ns(r.UaVersion)
	info.UaVersionMajor = ns(r.UaVersionMajor)
	info.CrawlerLastSeen = ns(r.CrawlerLastSeen)
	info.CrawlerRespectRobotstxt = ns(r.CrawlerRespectRobotstxt)
	info.CrawlerCategory = ns(r.CrawlerCategory)
	info.CrawlerCategoryCode = ns(r.CrawlerCategoryCode)
	info.UaFamily = ns(r.UaFamily)
	info.UaFamilyCode = ns(r.UaFamilyCode)
	info.UaFamilyVendor = ns(r.UaFamilyVendor)
	info.UaFamilyVendorCode = ns(r.UaFamilyVendorCode)
	applyClientHomepage(info, r.UaFamilyHomepage, r.UaFamilyVendorHomepage)
	applyClientIcon(info, r.UaFamilyIcon, r.UaFamilyIconBig)
	applyClientURL(info, r.UaFamilyInfoURL)
}

// ClientRow is the result of a client_regex rowid lookup.
type ClientRow struct {
	ClientID, ClassID                                             sql.NullInt64
	UaClass, UaClassCode                                          sql.NullString
	Ua, UaEngine                                                  sql.NullString
	UaUptodateCurrentVersion                                      sql.NullString
	UaFamily, UaFamilyCode                                        sql.NullString
	UaFamilyHomepage, UaFamilyIcon, UaFamilyIconBig               sql.NullString
	UaFamilyVendor, UaFamilyVendorCode, UaFamilyVendorHomepage    sql.NullString
	UaFamilyInfoURL                                               sql.NullString
}

// Client resolves the human-readable attributes of a winning client rule.
func (s *Store) Client(rowid uint16) (*ClientRow, bool, error) {
	var r ClientRow
	var discard1, discard2, discard3, discard4, discard5, discard6 sql.NullString
	err := s.db.QueryRow(sqlClient, rowid).Scan(
		&r.ClientID, &r.ClassID,
		&r.UaClass, &r.UaClassCode,
		&r.Ua, &r.UaEngine,
		&discard1, &discard2, &discard3, &discard4, &discard5, &discard6,
		&r.UaUptodateCurrentVersion,
		&r.UaFamily, &r.UaFamilyCode,
		&r.UaFamilyHomepage, &r.UaFamilyIcon, &r.UaFamilyIconBig,
		&r.UaFamilyVendor, &r.UaFamilyVendorCode, &r.UaFamilyVendorHomepage,
		&r.UaFamilyInfoURL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, wrapErr(err)
	}
	return &r, true, nil
}

// ApplyTo stamps client fields onto info. It returns the resolved class_id
// (0 when absent) for the caller to remember for the device-class-fallback
// path.
func (r *ClientRow) ApplyTo(info *uainfo.Info) (classID uint16, hasClassID bool) {
	if r.ClientID.Valid {
		info.SetClientID(uint16(r.ClientID.Int64))
	}
	if r.ClassID.Valid {
		info.SetClassID(uint16(r.ClassID.Int64))
		classID, hasClassID = uint16(r.ClassID.Int64), true
	}
	info.UaClass = ns(r.UaClass)
	info.UaClassCode = ns(r.UaClassCode)
	info.Ua = ns(r.Ua)
	info.UaEngine = ns(r.UaEngine)
	info.UaUptodateCurrentVersion = ns(r.UaUptodateCurrentVersion)
	info.UaFamily = ns(r.UaFamily)
	info.UaFamilyCode = ns(r.UaFamilyCode)
	info.UaFamilyVendor = ns(r.UaFamilyVendor)
	info.UaFamilyVendorCode = ns(r.UaFamilyVendorCode)
	applyClientHomepage(info, r.UaFamilyHomepage, r.UaFamilyVendorHomepage)
	applyClientIcon(info, r.UaFamilyIcon, r.UaFamilyIconBig)
	applyClientURL(info, r.UaFamilyInfoURL)
	return classID, hasClassID
}

// OSRow is the result of an os_regex rowid lookup.
type OSRow struct {
	OsFamily, OsFamilyCode                       sql.NullString
	Os, OsCode                                    sql.NullString
	OsHomePage, OsIcon, OsIconBig                 sql.NullString
	OsFamilyVendor, OsFamilyVendorCode            sql.NullString
	OsFamilyVendorHomepage                        sql.NullString
	OsInfoURL                                     sql.NullString
}

func scanOSRow(row *sql.Row) (*OSRow, bool, error) {
	var r OSRow
	err := row.Scan(
		&r.OsFamily, &r.OsFamilyCode, &r.Os, &r.OsCode,
		&r.OsHomePage, &r.OsIcon, &r.OsIconBig,
		&r.OsFamilyVendor, &r.OsFamilyVendorCode, &r.OsFamilyVendorHomepage,
		&r.OsInfoURL,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, wrapErr(err)
	}
	return &r, true, nil
}

// OS resolves the human-readable attributes of a winning os rule.
func (s *Store) OS(rowid uint16) (*OSRow, bool, error) {
	return scanOSRow(s.db.QueryRow(sqlOS, rowid))
}

// ApplyTo stamps os_* fields onto info.
func (r *OSRow) ApplyTo(info *uainfo.Info) {
	info.OsFamily = ns(r.OsFamily)
	info.OsFamilyCode = ns(r.OsFamilyCode)
	info.Os = ns(r.Os)
	info.OsCode = ns(r.OsCode)
	info.OsFamilyVendor = ns(r.OsFamilyVendor)
	info.OsFamilyVendorCode = ns(r.OsFamilyVendorCode)
	applyOsHomepage(info, r.OsHomePage, r.OsFamilyVendorHomepage)
	applyOsIcon(info, r.OsIcon, r.OsIconBig)
	applyOsURL(info, r.OsInfoURL)
}

// DeviceRow is the result of a deviceclass_regex rowid lookup, and also the
// shape of the client_class fallback query.
type DeviceRow struct {
	DeviceClass, DeviceClassCode     sql.NullString
	DeviceClassIcon, DeviceClassIconBig sql.NullString
	DeviceClassInfoURL               sql.NullString
}

func scanDeviceRow(row *sql.Row) (*DeviceRow, bool, error) {
	var r DeviceRow
	err := row.Scan(&r.DeviceClass, &r.DeviceClassCode, &r.DeviceClassIcon, &r.DeviceClassIconBig, &r.DeviceClassInfoURL)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, wrapErr(err)
	}
	return &r, true, nil
}

// Device resolves device-class attributes for a winning deviceclass rule.
func (s *Store) Device(rowid uint16) (*DeviceRow, bool, error) {
	return scanDeviceRow(s.db.QueryRow(sqlDevice, rowid))
}

// ClientClass resolves a device class from a client's class_id when no
// device regex matched directly.
func (s *Store) ClientClass(classID uint16) (*DeviceRow, bool, error) {
	return scanDeviceRow(s.db.QueryRow(sqlClientClass, classID))
}

// ApplyTo stamps device_class_* fields onto info.
func (r *DeviceRow) ApplyTo(info *uainfo.Info) {
	info.DeviceClass = ns(r.DeviceClass)
	info.DeviceClassCode = ns(r.DeviceClassCode)
	applyDeviceClassIcon(info, r.DeviceClassIcon, r.DeviceClassIconBig)
	applyDeviceClassURL(info, r.DeviceClassInfoURL)
}

// DeviceNameRow is the result of a device-brand (regex_id, code) lookup.
type DeviceNameRow struct {
	Marketname                     sql.NullString
	BrandCode, Brand               sql.NullString
	BrandURL, Icon, IconBig        sql.NullString
}

// DeviceNameList resolves device brand & marketname for a winning
// device-name rule, keyed by the rule's external id and the captured code.
func (s *Store) DeviceNameList(regexID uint16, code string) (*DeviceNameRow, bool, error) {
	var r DeviceNameRow
	err := s.db.QueryRow(sqlDeviceNameList, regexID, code).Scan(
		&r.Marketname, &r.BrandCode, &r.Brand, &r.BrandURL, &r.Icon, &r.IconBig,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, wrapErr(err)
	}
	return &r, true, nil
}

// ApplyTo stamps device_brand_* and device_marketname fields onto info.
// device_brand_info_url has no catalogue column (brand_url is the homepage
// instead); it is synthesized the same way the catalogue's other
// *_info_url columns are.
func (r *DeviceNameRow) ApplyTo(info *uainfo.Info) {
	info.DeviceMarketname = ns(r.Marketname)
	info.DeviceBrand = ns(r.Brand)
	info.DeviceBrandCode = ns(r.BrandCode)
	applyDeviceBrandHomepage(info, r.BrandURL)
	applyDeviceBrandIcon(info, r.Icon, r.IconBig)
	if r.Brand.Valid && r.Brand.String != "" {
		url := "https://udger.com/resources/ua-list/device-brand-detail?brand=" + strings.ReplaceAll(r.Brand.String, " ", "%20")
		applyDeviceBrandURL(info, sql.NullString{String: url, Valid: true})
	}
}
