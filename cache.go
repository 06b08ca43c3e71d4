package pressflow

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrDraftNotFound is returned when a draft id is unknown or expired.
var ErrDraftNotFound = errors.New("draft not found or expired")

// DraftCache holds generated posts between preview and publish. Drafts live
// server-side so the publish form only carries an opaque id.
type DraftCache struct {
	mu     sync.RWMutex
	drafts map[string]Draft
	ttl    time.Duration
}

// NewDraftCache creates a DraftCache whose entries expire after ttl.
func NewDraftCache(ttl time.Duration) *DraftCache {
	return &DraftCache{
		drafts: make(map[string]Draft),
		ttl:    ttl,
	}
}

// Put stores a draft under a fresh id and returns the stored copy.
func (c *DraftCache) Put(d Draft) Draft {
	d.ID = uuid.NewString()
	d.CreatedAt = time.Now()

	c.mu.Lock()
	c.prune()
	c.drafts[d.ID] = d
	c.mu.Unlock()
	return d
}

// Get returns the draft for id, or ErrDraftNotFound when missing or expired.
func (c *DraftCache) Get(id string) (Draft, error) {
	c.mu.RLock()
	d, ok := c.drafts[id]
	c.mu.RUnlock()
	if !ok || time.Since(d.CreatedAt) > c.ttl {
		return Draft{}, ErrDraftNotFound
	}
	return d, nil
}

// Delete removes a draft, typically after a successful publish.
func (c *DraftCache) Delete(id string) {
	c.mu.Lock()
	delete(c.drafts, id)
	c.mu.Unlock()
}

// prune drops expired drafts. Caller must hold the write lock.
func (c *DraftCache) prune() {
	cutoff := time.Now().Add(-c.ttl)
	for id, d := range c.drafts {
		if d.CreatedAt.Before(cutoff) {
			delete(c.drafts, id)
		}
	}
}
