package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Aashish23092/inscription-verification/dto"
)

// Entry is a recognized document together with the quality report of the
// read that produced it.
type Entry struct {
	Text    string
	Quality dto.DocumentQuality
}

// Cache stores recognized text so the same scan is not sent to OCR twice.
type Cache interface {
	Get(key string) (Entry, bool)
	Set(key string, entry Entry, ttl time.Duration)
	Delete(key string)
}

// DocumentKey derives a cache key from the document bytes and the recognition
// settings that produced the text.
func DocumentKey(data []byte, variant string) string {
	h := sha256.New()
	h.Write(data)
	h.Write([]byte{0})
	h.Write([]byte(variant))
	return "inscription:ocr:v1:" + hex.EncodeToString(h.Sum(nil))
}

// MemoryCache is an in-process Cache with expiring entries.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache. Entries set with ttl 0 use defaultTTL.
func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

func (c *MemoryCache) Get(key string) (Entry, bool) {
	if val, found := c.cache.Get(key); found {
		entry, ok := val.(Entry)
		return entry, ok
	}
	return Entry{}, false
}

func (c *MemoryCache) Set(key string, entry Entry, ttl time.Duration) {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, entry, ttl)
}

func (c *MemoryCache) Delete(key string) {
	c.cache.Delete(key)
}

// Len returns the number of cached entries, expired ones included until the
// next cleanup.
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}
