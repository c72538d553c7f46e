//go:build !udger_homepage

package rowstore

import (
	"database/sql"

	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

func applyClientHomepage(info *uainfo.Info, homepage, vendorHomepage sql.NullString) {}

func applyOsHomepage(info *uainfo.Info, homepage, vendorHomepage sql.NullString) {}

func applyDeviceBrandHomepage(info *uainfo.Info, brandURL sql.NullString) {}
