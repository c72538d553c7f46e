// Package uainfo defines the output record produced by a UA parse: a flat
// set of classification fields plus a handful of build-tag-gated optional
// groups (application, icon, homepage, url).
package uainfo

// Info is the classification record for one parsed User-Agent string.
//
// Values are built up field-by-field over the course of one parse and then
// handed out as a plain pointer. Go's garbage collector already gives cheap,
// reference-counted-style sharing for a pointer like this one, so the LRU
// cache in pkg/parsectx hands out the same *Info to every cache hit without
// copying the string payload; callers must treat a returned *Info as
// read-only.
type Info struct {
	// ClassID and ClientID are the only optional numeric fields; both are
	// absent (nil) until a detector establishes them, and both are excluded
	// from JSON output per the C ABI / JSON contract.
	ClassID  *uint16 `json:"-"`
	ClientID *uint16 `json:"-"`

	UaClass    string `json:"ua_class"`
	UaClassCode string `json:"ua_class_code"`
	Ua         string `json:"ua"`
	UaEngine   string `json:"ua_engine"`

	UaVersion      string `json:"ua_version"`
	UaVersionMajor string `json:"ua_version_major"`
	UaVersionMinor string `json:"ua_version_minor"`

	CrawlerLastSeen          string `json:"crawler_last_seen"`
	CrawlerRespectRobotstxt  string `json:"crawler_respect_robotstxt"`
	CrawlerCategory          string `json:"crawler_category"`
	CrawlerCategoryCode      string `json:"crawler_category_code"`

	UaUptodateCurrentVersion string `json:"ua_uptodate_current_version"`

	UaFamily           string `json:"ua_family"`
	UaFamilyCode       string `json:"ua_family_code"`
	UaFamilyVendor     string `json:"ua_family_vendor"`
	UaFamilyVendorCode string `json:"ua_family_vendor_code"`

	UaString string `json:"ua_string"`

	OsFamily           string `json:"os_family"`
	OsFamilyCode       string `json:"os_family_code"`
	Os                 string `json:"os"`
	OsCode             string `json:"os_code"`
	OsFamilyVendor     string `json:"os_family_vendor"`
	OsFamilyVendorCode string `json:"os_family_vendor_code"`

	DeviceClass      string `json:"device_class"`
	DeviceClassCode  string `json:"device_class_code"`
	DeviceMarketname string `json:"device_marketname"`
	DeviceBrand      string `json:"device_brand"`
	DeviceBrandCode  string `json:"device_brand_code"`

	applicationFields
	iconFields
	homepageFields
	urlFields
}

// New returns an Info with UaString populated and every other field at its
// zero value, ready for a detector pipeline to fill in.
func New(ua string) *Info {
	return &Info{UaString: ua}
}

// SetClassID stamps the optional class_id field.
func (i *Info) SetClassID(id uint16) {
	v := id
	i.ClassID = &v
}

// SetClientID stamps the optional client_id field.
func (i *Info) SetClientID(id uint16) {
	v := id
	i.ClientID = &v
}
