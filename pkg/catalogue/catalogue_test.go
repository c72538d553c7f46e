package catalogue

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/udgerua/pkg/seed"
)

const fixture = `
clients:
  - id: 1
    class_id: 1
    name: "Firefox"
    regexes:
      - id: 501
        regex: "Firefox/([0-9.]+)"
        sequence: 1
        words: ["Firefox"]

oses:
  - id: 1
    name: "Windows 10"
    name_code: "windows_10"
    family: "Windows"
    family_code: "windows"
    regexes:
      - id: 601
        regex: "Windows NT 10\\.0"
        sequence: 1
        words: ["Windows"]

device_classes:
  - id: 1
    name: "Desktop"
    name_code: "desktop"

device_names:
  - regex_id: 801
    regex: "iPad(\\d*,?\\d*)"
    sequence: 1
    os_family_code: "ios"
    os_code: "ios"
    code: ""
    marketname: "iPad"
    brand_code: "apple"
    brand: "Apple"
`

func TestLoadBuildsCatalogueFromFixture(t *testing.T) {
	f, err := seed.Parse([]byte(fixture))
	require.NoError(t, err)

	path := t.TempDir() + "/catalogue.db"
	require.NoError(t, seed.Build(path, f))

	cat, err := Load(path)
	require.NoError(t, err)
	defer cat.Close()

	require.NotNil(t, cat.Client)
	require.NotNil(t, cat.Os)
	require.NotNil(t, cat.DeviceClass)
	require.NotNil(t, cat.DeviceName)
	require.Nil(t, cat.Application, "application feature group is compiled out by default")

	require.Contains(t, cat.OsCodeToWord, "ios")
	require.NotContains(t, cat.OsCodeToWord, "-all-", "the -all- sentinel is never a real word id")
}
