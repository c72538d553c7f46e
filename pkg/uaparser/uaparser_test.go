package uaparser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/udgerua/pkg/catalogue"
	"github.com/praetorian-inc/udgerua/pkg/parsectx"
	"github.com/praetorian-inc/udgerua/pkg/seed"
)

// fixture reproduces the three worked examples from the specification's
// end-to-end scenarios: a Firefox-on-Windows-10 browser, a Googlebot
// crawler, and an iPad/Safari device with device-brand resolution.
const fixture = `
crawlers:
  - ua_string: "Googlebot/2.1 (+http://www.google.com/bot.html)"
    name: "Googlebot"
    ver: "2.1"
    ver_major: "2"
    family: "Googlebot"
    family_code: "googlebot"
    respect_robotstxt: "yes"
    classification: "Search engine bot"
    classification_code: "search_engine_bot"

client_classes:
  - id: 1
    classification: "Browser"
    classification_code: "browser"
    device_class_id: 1
  - id: 2
    classification: "Browser"
    classification_code: "browser"
    device_class_id: 2

clients:
  - id: 1
    class_id: 1
    name: "Firefox"
    engine: "Gecko"
    vendor: "Mozilla Foundation"
    regexes:
      - id: 501
        regex: "Firefox/([0-9.]+)"
        sequence: 1
        words: ["Firefox"]
  - id: 2
    class_id: 2
    name: "Safari"
    engine: "WebKit"
    vendor: "Apple Inc."
    regexes:
      - id: 502
        regex: "Version/([0-9.]+) Mobile.*Safari"
        sequence: 1
        words: ["Safari"]

oses:
  - id: 1
    name: "Windows 10"
    name_code: "windows_10"
    family: "Windows"
    family_code: "windows"
    vendor: "Microsoft Corporation."
    regexes:
      - id: 601
        regex: "Windows NT 10\\.0"
        sequence: 1
        words: ["Windows"]
  - id: 2
    name: "iOS"
    name_code: "ios"
    family: "iOS"
    family_code: "ios"
    vendor: "Apple Inc."
    regexes:
      - id: 602
        regex: "CPU OS [0-9_]+ like Mac OS X"
        sequence: 1
        words: ["iPad"]

device_classes:
  - id: 1
    name: "Desktop"
    name_code: "desktop"
  - id: 2
    name: "Tablet"
    name_code: "tablet"
    regexes:
      - id: 701
        regex: "iPad"
        sequence: 1
        words: ["iPad"]

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
    brand_url: "https://www.apple.com"
`

func newTestEngine(t *testing.T) (*catalogue.Catalogue, *parsectx.Context) {
	t.Helper()
	f, err := seed.Parse([]byte(fixture))
	require.NoError(t, err)

	path := t.TempDir() + "/catalogue.db"
	require.NoError(t, seed.Build(path, f))

	cat, err := catalogue.Load(path)
	require.NoError(t, err)
	t.Cleanup(func() { cat.Close() })

	ctx, err := parsectx.New(cat, path, 16)
	require.NoError(t, err)
	t.Cleanup(func() { ctx.Close() })

	return cat, ctx
}

func TestParseFirefoxOnWindows10(t *testing.T) {
	cat, ctx := newTestEngine(t)
	p := New(cat)

	info, err := p.Parse("Mozilla/5.0 (Windows NT 10.0; WOW64; rv:40.0) Gecko/20100101 Firefox/40.0", ctx)
	require.NoError(t, err)

	require.Equal(t, "40.0", info.UaVersion)
	require.Equal(t, "40", info.UaVersionMajor)
	require.Equal(t, "Firefox 40.0", info.Ua)
	require.Equal(t, "Gecko", info.UaEngine)
	require.Equal(t, "Windows 10", info.Os)
	require.Equal(t, "windows_10", info.OsCode)
	require.Equal(t, "Windows", info.OsFamily)
	require.Equal(t, "Browser", info.UaClass)
	require.Equal(t, "Desktop", info.DeviceClass, "falls back to the client's class_id since no device regex matches")
}

func TestParseGooglebotCrawlerFastPath(t *testing.T) {
	cat, ctx := newTestEngine(t)
	p := New(cat)

	info, err := p.Parse("Googlebot/2.1 (+http://www.google.com/bot.html)", ctx)
	require.NoError(t, err)

	require.Equal(t, "Crawler", info.UaClass)
	require.Equal(t, "crawler", info.UaClassCode)
	require.Equal(t, "Search engine bot", info.CrawlerCategory)
	require.Equal(t, "search_engine_bot", info.CrawlerCategoryCode)
	require.Equal(t, "yes", info.CrawlerRespectRobotstxt)
	require.Nil(t, info.ClientID)
}

func TestParseIPadResolvesDeviceBrand(t *testing.T) {
	cat, ctx := newTestEngine(t)
	p := New(cat)

	ua := "Mozilla/5.0 (iPad; CPU OS 7_0 like Mac OS X) AppleWebKit/537.51.1 (KHTML, like Gecko) Version/7.0 Mobile/11A465 Safari/9537.53"
	info, err := p.Parse(ua, ctx)
	require.NoError(t, err)

	require.Equal(t, "Tablet", info.DeviceClass)
	require.Equal(t, "tablet", info.DeviceClassCode)
	require.Equal(t, "ios", info.OsFamilyCode)
	require.Equal(t, "Apple", info.DeviceBrand)
	require.Equal(t, "apple", info.DeviceBrandCode)
}

func TestParseUnrecognizedUAStaysEmpty(t *testing.T) {
	cat, ctx := newTestEngine(t)
	p := New(cat)

	info, err := p.Parse("totally-unknown-agent-string", ctx)
	require.NoError(t, err)
	require.Empty(t, info.UaFamily)
	require.Empty(t, info.Os)
}

func TestParseCacheReturnsIdenticalPointer(t *testing.T) {
	cat, ctx := newTestEngine(t)
	p := New(cat)

	ua := "Mozilla/5.0 (Windows NT 10.0; WOW64; rv:40.0) Gecko/20100101 Firefox/40.0"
	first, err := p.Parse(ua, ctx)
	require.NoError(t, err)

	second, err := p.Parse(ua, ctx)
	require.NoError(t, err)

	require.Same(t, first, second, "a cache hit must return the identical *uainfo.Info pointer")
}
