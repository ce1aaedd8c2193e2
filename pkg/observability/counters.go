package observability

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// Counters tallies pipeline, cache and HTTP events in memory. It
// implements all three hook interfaces and is safe for concurrent use.
//
//	c := observability.NewCounters()
//	c.Register()
//	defer observability.Reset()
type Counters struct {
	loads, loadErrors     atomic.Int64
	layouts, layoutErrors atomic.Int64
	renders, renderErrors atomic.Int64
	boxes                 atomic.Int64
	layoutNanos           atomic.Int64
	renderNanos           atomic.Int64
	httpErrors            atomic.Int64

	mu        sync.Mutex
	cache     map[string]CacheCounts
	responses map[string]int64
}

// CacheCounts are the cache events of one key type.
type CacheCounts struct {
	Hits     int64 `json:"hits"`
	Misses   int64 `json:"misses"`
	Sets     int64 `json:"sets"`
	SetBytes int64 `json:"set_bytes"`
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Loads        int64         `json:"loads"`
	LoadErrors   int64         `json:"load_errors"`
	Layouts      int64         `json:"layouts"`
	LayoutErrors int64         `json:"layout_errors"`
	Boxes        int64         `json:"boxes"`
	LayoutTime   time.Duration `json:"layout_time_ns"`
	Renders      int64         `json:"renders"`
	RenderErrors int64         `json:"render_errors"`
	RenderTime   time.Duration `json:"render_time_ns"`

	Cache map[string]CacheCounts `json:"cache"`

	// Responses counts HTTP responses by status class ("2xx", "4xx", ...).
	Responses  map[string]int64 `json:"responses"`
	HTTPErrors int64            `json:"http_errors"`
}

// NewCounters returns zeroed counters.
func NewCounters() *Counters {
	return &Counters{
		cache:     make(map[string]CacheCounts),
		responses: make(map[string]int64),
	}
}

// Register installs c as the pipeline, cache and HTTP hooks.
func (c *Counters) Register() {
	SetPipelineHooks(c)
	SetCacheHooks(c)
	SetHTTPHooks(c)
}

// Snapshot copies the current counts.
func (c *Counters) Snapshot() Snapshot {
	s := Snapshot{
		Loads:        c.loads.Load(),
		LoadErrors:   c.loadErrors.Load(),
		Layouts:      c.layouts.Load(),
		LayoutErrors: c.layoutErrors.Load(),
		Boxes:        c.boxes.Load(),
		LayoutTime:   time.Duration(c.layoutNanos.Load()),
		Renders:      c.renders.Load(),
		RenderErrors: c.renderErrors.Load(),
		RenderTime:   time.Duration(c.renderNanos.Load()),
		HTTPErrors:   c.httpErrors.Load(),
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	s.Cache = make(map[string]CacheCounts, len(c.cache))
	for k, v := range c.cache {
		s.Cache[k] = v
	}
	s.Responses = make(map[string]int64, len(c.responses))
	for k, v := range c.responses {
		s.Responses[k] = v
	}
	return s
}

func (c *Counters) OnLoadStart(context.Context, string) {}

func (c *Counters) OnLoadComplete(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	c.loads.Add(1)
	if err != nil {
		c.loadErrors.Add(1)
	}
}

func (c *Counters) OnLayoutStart(context.Context, string, string) {}

func (c *Counters) OnLayoutComplete(_ context.Context, _ string, boxCount int, d time.Duration, err error) {
	c.layouts.Add(1)
	c.layoutNanos.Add(int64(d))
	if err != nil {
		c.layoutErrors.Add(1)
		return
	}
	c.boxes.Add(int64(boxCount))
}

func (c *Counters) OnRenderStart(context.Context, []string) {}

func (c *Counters) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	c.renders.Add(1)
	c.renderNanos.Add(int64(d))
	if err != nil {
		c.renderErrors.Add(1)
	}
}

func (c *Counters) OnCacheHit(_ context.Context, keyType string) {
	c.updateCache(keyType, func(cc *CacheCounts) { cc.Hits++ })
}

func (c *Counters) OnCacheMiss(_ context.Context, keyType string) {
	c.updateCache(keyType, func(cc *CacheCounts) { cc.Misses++ })
}

func (c *Counters) OnCacheSet(_ context.Context, keyType string, size int) {
	c.updateCache(keyType, func(cc *CacheCounts) {
		cc.Sets++
		cc.SetBytes += int64(size)
	})
}

func (c *Counters) updateCache(keyType string, fn func(*CacheCounts)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cc := c.cache[keyType]
	fn(&cc)
	c.cache[keyType] = cc
}

func (c *Counters) OnRequest(context.Context, string, string) {}

func (c *Counters) OnResponse(_ context.Context, _, _ string, statusCode int, _ time.Duration) {
	class := fmt.Sprintf("%dxx", statusCode/100)
	c.mu.Lock()
	c.responses[class]++
	c.mu.Unlock()
}

func (c *Counters) OnError(context.Context, string, string, error) {
	c.httpErrors.Add(1)
}

var (
	_ PipelineHooks = (*Counters)(nil)
	_ CacheHooks    = (*Counters)(nil)
	_ HTTPHooks     = (*Counters)(nil)
)
