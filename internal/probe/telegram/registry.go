package telegram

import (
	"strings"
	"sync"
	"time"
)

const defaultRegistryTTL = 60 * time.Second

type pendingPing struct {
	pingAt    time.Time
	responded bool
}

// Registry tracks probes awaiting a reply, keyed by normalized handle
// (sigil stripped and lowercased, since Telegram handles are
// case-insensitive on the wire). Entries expire after the TTL and are
// dropped on read and by Sweep, so a reply to an old probe never answers
// a new one.
type Registry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[string]pendingPing
}

// NewRegistry creates a registry with the given entry TTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = defaultRegistryTTL
	}
	return &Registry{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]pendingPing),
	}
}

// Add records a pending probe for the handle, replacing any earlier entry.
func (r *Registry) Add(handle string) {
	key := normalizeHandle(handle)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending[key] = pendingPing{pingAt: r.now()}
}

// MarkResponded flags the pending probe for the handle as answered.
// Handles with no pending probe are ignored.
func (r *Registry) MarkResponded(handle string) {
	key := normalizeHandle(handle)
	if key == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.pending[key]
	if !ok {
		return
	}
	entry.responded = true
	r.pending[key] = entry
}

// Responded reports whether the pending probe for the handle was answered
// within the TTL.
func (r *Registry) Responded(handle string) bool {
	key := normalizeHandle(handle)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	entry, ok := r.pending[key]
	return ok && entry.responded
}

// Sweep drops expired entries.
func (r *Registry) Sweep() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
}

// Len returns the number of pending probes, expired entries included.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}

func (r *Registry) prune() {
	deadline := r.now().Add(-r.ttl)
	for key, entry := range r.pending {
		if entry.pingAt.Before(deadline) {
			delete(r.pending, key)
		}
	}
}

func normalizeHandle(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}
