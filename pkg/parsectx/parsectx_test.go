package parsectx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/udgerua/pkg/catalogue"
	"github.com/praetorian-inc/udgerua/pkg/seed"
	"github.com/praetorian-inc/udgerua/pkg/uainfo"
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
`

func buildTestCatalogue(t *testing.T) (*catalogue.Catalogue, string) {
	t.Helper()
	f, err := seed.Parse([]byte(fixture))
	require.NoError(t, err)

	path := t.TempDir() + "/catalogue.db"
	require.NoError(t, seed.Build(path, f))

	cat, err := catalogue.Load(path)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })
	return cat, path
}

func TestNewAllocatesScratchPerCategory(t *testing.T) {
	cat, path := buildTestCatalogue(t)

	ctx, err := New(cat, path, 8)
	require.NoError(t, err)
	defer ctx.Close()

	require.NotNil(t, ctx.ClientScratch())
	require.NotNil(t, ctx.OsScratch())
	require.NotNil(t, ctx.DeviceClassScratch())
	require.NotNil(t, ctx.DeviceNameScratch())
	require.Nil(t, ctx.ApplicationScratch(), "application feature group is compiled out by default")
}

func TestNewRejectsNonPositiveCacheCapacity(t *testing.T) {
	cat, path := buildTestCatalogue(t)

	_, err := New(cat, path, 0)
	require.Error(t, err, "lru capacity <= 0 must be a fatal construction error")

	_, err = New(cat, path, -1)
	require.Error(t, err)
}

func TestCacheRoundTrips(t *testing.T) {
	cat, path := buildTestCatalogue(t)

	ctx, err := New(cat, path, 8)
	require.NoError(t, err)
	defer ctx.Close()

	info := uainfo.New("some-ua")
	ctx.CachePut("some-ua", info)

	cached, ok := ctx.CacheGet("some-ua")
	require.True(t, ok)
	require.Same(t, info, cached)
}
