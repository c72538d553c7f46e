//go:build udger_homepage

package rowstore

import (
	"database/sql"

	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

func applyClientHomepage(info *uainfo.Info, homepage, vendorHomepage sql.NullString) {
	info.UaFamilyHomepage = ns(homepage)
	info.UaFamilyVendorHomepage = ns(vendorHomepage)
}

func applyOsHomepage(info *uainfo.Info, homepage, vendorHomepage sql.NullString) {
	info.OsHomePage = ns(homepage)
	info.OsFamilyVendorHomepage = ns(vendorHomepage)
}

func applyDeviceBrandHomepage(info *uainfo.Info, brandURL sql.NullString) {
	info.DeviceBrandHomepage = ns(brandURL)
}
