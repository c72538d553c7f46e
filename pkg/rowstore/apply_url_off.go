//go:build !udger_url

package rowstore

import (
	"database/sql"

	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

func applyClientURL(info *uainfo.Info, url sql.NullString) {}

func applyOsURL(info *uainfo.Info, url sql.NullString) {}

func applyDeviceClassURL(info *uainfo.Info, url sql.NullString) {}

func applyDeviceBrandURL(info *uainfo.Info, url sql.NullString) {}
