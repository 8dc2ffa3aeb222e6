package server

import (
	"sync"
	"time"

	"github.com/promptstudio/promptstudio"
)

const (
	sessionCookie  = "studio_session"
	sessionIdleTTL = 30 * time.Minute
	reapInterval   = 5 * time.Minute
)

// sessionEntry pairs a workflow session with its journal and liveness info.
type sessionEntry struct {
	session  *promptstudio.Session
	journal  *journal // nil when journaling is disabled
	lastSeen time.Time
}

// sessionRegistry holds one workflow session per browser, keyed by the
// session cookie. Entries are created lazily and reaped after idling.
type sessionRegistry struct {
	mu       sync.Mutex
	entries  map[string]*sessionEntry
	newEntry func(id string) *sessionEntry
	idleTTL  time.Duration
	nowFn    func() time.Time // overridable in tests
}

func newSessionRegistry(newEntry func(id string) *sessionEntry) *sessionRegistry {
	r := &sessionRegistry{
		entries:  make(map[string]*sessionEntry),
		newEntry: newEntry,
		idleTTL:  sessionIdleTTL,
		nowFn:    time.Now,
	}
	go r.reapIdle()
	return r
}

// get returns the entry for id, creating it on first use, and refreshes the
// entry's last-seen time.
func (r *sessionRegistry) get(id string) *sessionEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		entry = r.newEntry(id)
		r.entries[id] = entry
	}
	entry.lastSeen = r.nowFn()
	return entry
}

// reapIdle removes sessions that have not been touched within the idle TTL.
func (r *sessionRegistry) reapIdle() {
	ticker := time.NewTicker(reapInterval)
	defer ticker.Stop()

	for range ticker.C {
		r.mu.Lock()
		now := r.nowFn()
		for id, entry := range r.entries {
			if now.Sub(entry.lastSeen) > r.idleTTL {
				delete(r.entries, id)
			}
		}
		r.mu.Unlock()
	}
}
