package udgerua

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praetorian-inc/udgerua/pkg/seed"
)

const engineFixture = `
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

client_classes:
  - id: 1
    classification: "Browser"
    classification_code: "browser"
    device_class_id: 1

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

func newTestCatalogueFile(t *testing.T) string {
	t.Helper()
	f, err := seed.Parse([]byte(engineFixture))
	require.NoError(t, err)

	path := t.TempDir() + "/catalogue.db"
	require.NoError(t, seed.Build(path, f))
	return path
}

func TestEngineParseEndToEnd(t *testing.T) {
	path := newTestCatalogueFile(t)

	engine, err := New(path, 16)
	require.NoError(t, err)
	defer engine.Close()

	ctx, err := engine.NewContext()
	require.NoError(t, err)
	defer ctx.Close()

	info, err := engine.Parse("Mozilla/5.0 (Windows NT 10.0; WOW64; rv:40.0) Gecko/20100101 Firefox/40.0", ctx)
	require.NoError(t, err)
	require.Equal(t, "40.0", info.UaVersion)
	require.Equal(t, "Firefox 40.0", info.Ua)
	require.Equal(t, "Windows 10", info.Os)
}

func TestEngineParsesOnTwoContextsThenCloses(t *testing.T) {
	path := newTestCatalogueFile(t)

	engine, err := New(path, 16)
	require.NoError(t, err)

	ctx1, err := engine.NewContext()
	require.NoError(t, err)
	defer ctx1.Close()

	ctx2, err := engine.NewContext()
	require.NoError(t, err)
	defer ctx2.Close()

	_, err = engine.Parse("Mozilla/5.0 (Windows NT 10.0; WOW64; rv:40.0) Gecko/20100101 Firefox/40.0", ctx1)
	require.NoError(t, err)
	_, err = engine.Parse("Mozilla/5.0 (Windows NT 10.0; WOW64; rv:40.0) Gecko/20100101 Firefox/40.0", ctx2)
	require.NoError(t, err)

	require.NoError(t, engine.Close())
}
