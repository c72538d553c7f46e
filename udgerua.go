// Package udgerua classifies User-Agent strings against a Udger v3
// catalogue: client (browser), OS, device class, and device brand.
//
// Engine owns the expensive, shared, immutable state (the compiled
// RuleCatalogue) and hands out cheap per-worker contexts for the actual
// hot-path calls.
package udgerua

import (
	"github.com/praetorian-inc/udgerua/pkg/catalogue"
	"github.com/praetorian-inc/udgerua/pkg/parsectx"
	"github.com/praetorian-inc/udgerua/pkg/uainfo"
	"github.com/praetorian-inc/udgerua/pkg/uaparser"
)

// Engine owns one compiled RuleCatalogue, built once and shared read-only
// across every Context produced by NewContext.
type Engine struct {
	catalogueDBPath string
	lruCapacity     int
	cat             *catalogue.Catalogue
	parser          *uaparser.Parser
}

// New loads the catalogue at catalogueDBPath and returns a ready Engine.
// lruCapacity is the per-Context result-cache size (see NewContext) and must
// be > 0.
func New(catalogueDBPath string, lruCapacity int) (*Engine, error) {
	cat, err := catalogue.Load(catalogueDBPath)
	if err != nil {
		return nil, err
	}
	return &Engine{
		catalogueDBPath: catalogueDBPath,
		lruCapacity:     lruCapacity,
		cat:             cat,
		parser:          uaparser.New(cat),
	}, nil
}

// Context is a per-worker parse context. Never share one across goroutines;
// call NewContext once per worker instead.
type Context = parsectx.Context

// NewContext allocates a fresh per-worker Context: its own RowStore handle,
// scratch automaton buffers, and LRU cache. Call Close on it when the
// worker is done.
func (e *Engine) NewContext() (*Context, error) {
	return parsectx.New(e.cat, e.catalogueDBPath, e.lruCapacity)
}

// Parse classifies ua using ctx. The returned *uainfo.Info must be treated
// as read-only; it may be the same pointer already cached inside ctx for an
// identical, previously-seen ua.
func (e *Engine) Parse(ua string, ctx *Context) (*uainfo.Info, error) {
	return e.parser.Parse(ua, ctx)
}

// Close releases the catalogue's compiled automatons. It does not close any
// Context; each Context owns its own resources and must be closed
// separately.
func (e *Engine) Close() error {
	return e.cat.Close()
}
