package core

import (
	"bytes"
	"compress/gzip"
	"sync"
)

// CachedPage holds a rendered page and its gzip encoding.
type CachedPage struct {
	HTML []byte
	Gzip []byte
}

// PageCache holds at most one rendered page. Every Invalidate starts a new
// generation; Set only stores pages rendered in the current one.
type PageCache struct {
	mu   sync.RWMutex
	page *CachedPage
	gen  uint64
}

func NewPageCache() *PageCache {
	return &PageCache{}
}

func (c *PageCache) Get() (*CachedPage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.page, c.page != nil
}

func (c *PageCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Set encodes html and returns the page. The page is stored only if no
// Invalidate happened since gen was read.
func (c *PageCache) Set(gen uint64, html []byte) (*CachedPage, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(html); err != nil {
		return nil, err
	}
	if err := gz.Close(); err != nil {
		return nil, err
	}

	page := &CachedPage{HTML: html, Gzip: buf.Bytes()}

	c.mu.Lock()
	if gen == c.gen {
		c.page = page
	}
	c.mu.Unlock()

	return page, nil
}

func (c *PageCache) Invalidate() {
	c.mu.Lock()
	c.page = nil
	c.gen++
	c.mu.Unlock()
}
