//go:build !udger_icon

package rowstore

import (
	"database/sql"

	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

func applyClientIcon(info *uainfo.Info, icon, iconBig sql.NullString) {}

func applyOsIcon(info *uainfo.Info, icon, iconBig sql.NullString) {}

func applyDeviceClassIcon(info *uainfo.Info, icon, iconBig sql.NullString) {}

func applyDeviceBrandIcon(info *uainfo.Info, icon, iconBig sql.NullString) {}
