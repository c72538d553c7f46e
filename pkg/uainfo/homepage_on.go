//go:build udger_homepage

package uainfo

// homepageFields carries the five *_homepage columns.
type homepageFields struct {
	UaFamilyHomepage       string `json:"ua_family_homepage"`
	UaFamilyVendorHomepage string `json:"ua_family_vendor_homepage"`
	OsHomePage             string `json:"os_home_page"`
	OsFamilyVendorHomepage string `json:"os_family_vendor_homepage"`
	DeviceBrandHomepage    string `json:"device_brand_homepage"`
}
