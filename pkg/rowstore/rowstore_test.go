package rowstore

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/udgerua/pkg/seed"
	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

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

clients:
  - id: 1
    class_id: 1
    name: "Firefox"
    engine: "Gecko"
    regexes:
      - id: 501
        regex: "Firefox/([0-9.]+)"
        sequence: 1
        words: ["Firefox"]

device_classes:
  - id: 1
    name: "Desktop"
    name_code: "desktop"
`

func openTestStore(t *testing.T) *Store {
	t.Helper()
	f, err := seed.Parse([]byte(fixture))
	require.NoError(t, err)

	path := t.TempDir() + "/catalogue.db"
	require.NoError(t, seed.Build(path, f))

	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestCrawlerExactMatch(t *testing.T) {
	s := openTestStore(t)

	row, found, err := s.Crawler("Googlebot/2.1 (+http://www.google.com/bot.html)")
	require.NoError(t, err)
	require.True(t, found)

	info := uainfo.New("Googlebot/2.1 (+http://www.google.com/bot.html)")
	row.ApplyTo(info)
	require.Equal(t, "Crawler", info.UaClass)
	require.Equal(t, uint16(99), *info.ClassID)
	require.Nil(t, info.ClientID)
}

func TestCrawlerNoMatchReturnsNotFound(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Crawler("some other ua string")
	require.NoError(t, err)
	require.False(t, found)
}

func TestClientAndClientClassFallback(t *testing.T) {
	s := openTestStore(t)

	row, found, err := s.Client(1)
	require.NoError(t, err)
	require.True(t, found)

	info := uainfo.New("ua")
	classID, hasClassID := row.ApplyTo(info)
	require.True(t, hasClassID)
	require.Equal(t, uint16(1), classID)
	require.Equal(t, uint16(1), *info.ClientID)

	deviceRow, found, err := s.ClientClass(classID)
	require.NoError(t, err)
	require.True(t, found)
	deviceRow.ApplyTo(info)
	require.Equal(t, "Desktop", info.DeviceClass)
}
