package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Page keys mirror the site paths whose rendered content depends on the
// records behind them. Mutating handlers invalidate the affected keys so the
// next read refetches from the backend.
const (
	PageHome          = "/"
	PageProjects      = "/proyectos"
	PageAdminProjects = "/admin/proyectos"
	PageAdminSettings = "/admin/configuraciones"
)

// PageCache is a small read-through cache for the public content endpoints.
type PageCache struct {
	c *gocache.Cache
}

func New(ttl time.Duration) *PageCache {
	return &PageCache{c: gocache.New(ttl, 2*ttl)}
}

func (p *PageCache) Get(key string) (interface{}, bool) {
	return p.c.Get(key)
}

func (p *PageCache) Set(key string, value interface{}) {
	p.c.SetDefault(key, value)
}

// Invalidate drops the given page keys.
func (p *PageCache) Invalidate(keys ...string) {
	for _, key := range keys {
		p.c.Delete(key)
	}
}
