//go:build udger_icon

package rowstore

import (
	"database/sql"

	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

func applyClientIcon(info *uainfo.Info, icon, iconBig sql.NullString) {
	info.UaFamilyIcon = ns(icon)
	info.UaFamilyIconBig = ns(iconBig)
}

func applyOsIcon(info *uainfo.Info, icon, iconBig sql.NullString) {
	info.OsIcon = ns(icon)
	info.OsIconBig = ns(iconBig)
}

func applyDeviceClassIcon(info *uainfo.Info, icon, iconBig sql.NullString) {
	info.DeviceClassIcon = ns(icon)
	info.DeviceClassIconBig = ns(iconBig)
}

func applyDeviceBrandIcon(info *uainfo.Info, icon, iconBig sql.NullString) {
	info.DeviceBrandIcon = ns(icon)
	info.DeviceBrandIconBig = ns(iconBig)
}
