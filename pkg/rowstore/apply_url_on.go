//go:build udger_url

package rowstore

import (
	"database/sql"

	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

func applyClientURL(info *uainfo.Info, url sql.NullString) { info.UaFamilyInfoUrl = ns(url) }

func applyOsURL(info *uainfo.Info, url sql.NullString) { info.OsInfoUrl = ns(url) }

func applyDeviceClassURL(info *uainfo.Info, url sql.NullString) { info.DeviceClassInfoUrl = ns(url) }

func applyDeviceBrandURL(info *uainfo.Info, url sql.NullString) { info.DeviceBrandInfoUrl = ns(url) }
