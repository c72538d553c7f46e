// Package parsectx implements ParseContext: a per-worker, non-thread-safe
// bundle of scratch automaton state, a RowStore handle, and a bounded LRU
// result cache. One ParseContext belongs to exactly one goroutine/thread and
// must never be shared across workers. Each rule category gets its own named
// scratch buffer rather than one shared buffer threaded through every scan
// call, so a detector can't accidentally reuse another category's state.
package parsectx

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/praetorian-inc/udgerua/pkg/automaton"
	"github.com/praetorian-inc/udgerua/pkg/catalogue"
	"github.com/praetorian-inc/udgerua/pkg/rowstore"
	"github.com/praetorian-inc/udgerua/pkg/uainfo"
)

// Context is the per-worker scratch bundle. Create one per goroutine via
// New and never share it.
type Context struct {
	Store *rowstore.Store

	clientScratch      *automaton.Scratch
	osScratch          *automaton.Scratch
	deviceClassScratch *automaton.Scratch
	deviceNameScratch  *automaton.Scratch
	applicationScratch *automaton.Scratch

	cache *lru.Cache[string, *uainfo.Info]
}

// New allocates a Context bound to cat and backed by a RowStore opened
// against catalogueDBPath. lruCapacity is the maximum number of distinct UA
// strings cached and must be > 0.
func New(cat *catalogue.Catalogue, catalogueDBPath string, lruCapacity int) (*Context, error) {
	if lruCapacity <= 0 {
		return nil, &catalogue.Error{Err: fmt.Errorf("lru capacity must be > 0, got %d", lruCapacity)}
	}

	store, err := rowstore.Open(catalogueDBPath)
	if err != nil {
		return nil, err
	}

	ctx := &Context{Store: store}

	var scratchErr error
	ctx.clientScratch, scratchErr = cat.Client.NewScratch()
	if scratchErr != nil {
		store.Close()
		return nil, scratchErr
	}
	ctx.osScratch, scratchErr = cat.Os.NewScratch()
	if scratchErr != nil {
		store.Close()
		return nil, scratchErr
	}
	ctx.deviceClassScratch, scratchErr = cat.DeviceClass.NewScratch()
	if scratchErr != nil {
		store.Close()
		return nil, scratchErr
	}
	ctx.deviceNameScratch, scratchErr = cat.DeviceName.NewScratch()
	if scratchErr != nil {
		store.Close()
		return nil, scratchErr
	}
	if cat.Application != nil {
		ctx.applicationScratch, scratchErr = cat.Application.NewScratch()
		if scratchErr != nil {
			store.Close()
			return nil, scratchErr
		}
	}

	cache, err := lru.New[string, *uainfo.Info](lruCapacity)
	if err != nil {
		store.Close()
		return nil, err
	}
	ctx.cache = cache

	return ctx, nil
}

// Close releases the RowStore handle and every scratch buffer. Scratch
// buffers owned by automaton.DB are lightweight Hyperscan/regexp2 state and
// are closed defensively even though most variants no-op on Close.
func (c *Context) Close() error {
	closeAll := []*automaton.Scratch{
		c.clientScratch, c.osScratch, c.deviceClassScratch, c.deviceNameScratch, c.applicationScratch,
	}
	for _, s := range closeAll {
		if s != nil {
			s.Close()
		}
	}
	if c.Store != nil {
		return c.Store.Close()
	}
	return nil
}

// ClientScratch returns the scratch buffer reserved for client matching.
func (c *Context) ClientScratch() *automaton.Scratch { return c.clientScratch }

// OsScratch returns the scratch buffer reserved for OS matching.
func (c *Context) OsScratch() *automaton.Scratch { return c.osScratch }

// DeviceClassScratch returns the scratch buffer reserved for device-class matching.
func (c *Context) DeviceClassScratch() *automaton.Scratch { return c.deviceClassScratch }

// DeviceNameScratch returns the scratch buffer reserved for device-name (device-brand) matching.
func (c *Context) DeviceNameScratch() *automaton.Scratch { return c.deviceNameScratch }

// ApplicationScratch returns the scratch buffer reserved for application
// matching, or nil when the udger_application feature group is disabled.
func (c *Context) ApplicationScratch() *automaton.Scratch { return c.applicationScratch }

// CacheGet returns a cached Info for ua, if present.
func (c *Context) CacheGet(ua string) (*uainfo.Info, bool) {
	return c.cache.Get(ua)
}

// CachePut stores info under ua. Info is shared via its pointer, so repeated
// lookups for the same ua return the identical *uainfo.Info value.
func (c *Context) CachePut(ua string, info *uainfo.Info) {
	c.cache.Add(ua, info)
}
