package service

import (
	"strings"
	"sync"
	"time"

	"alarmbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

type AfkTracker interface {
	SetAfk(userID, reason string) domain.AfkEntry
	ClearAfk(userID string) (domain.AfkEntry, bool)
	IsAfk(userID string) (domain.AfkEntry, bool)
}

// AfkRegistry keeps one AFK entry per user for the lifetime of the process.
type AfkRegistry struct {
	entries map[string]domain.AfkEntry
	mutex   *sync.RWMutex
	now     func() time.Time
}

func NewAfkRegistry() *AfkRegistry {
	return &AfkRegistry{
		entries: make(map[string]domain.AfkEntry),
		mutex:   &sync.RWMutex{},
		now:     time.Now,
	}
}

// SetAfk stores reason for the user, replacing any previous entry. A blank reason falls back to
// domain.DefaultAfkReason.
func (r *AfkRegistry) SetAfk(userID, reason string) domain.AfkEntry {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = domain.DefaultAfkReason
	}

	entry := domain.AfkEntry{Reason: reason, Since: r.now()}

	r.mutex.Lock()
	r.entries[userID] = entry
	r.mutex.Unlock()

	log.Debug().Str("userId", userID).Str("reason", reason).Msg("user is afk")

	return entry
}

// ClearAfk removes the user's entry and returns it. Clearing a user without an entry is a no-op.
func (r *AfkRegistry) ClearAfk(userID string) (domain.AfkEntry, bool) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	entry, ok := r.entries[userID]
	if !ok {
		return domain.AfkEntry{}, false
	}

	delete(r.entries, userID)
	log.Debug().Str("userId", userID).Dur("away", r.now().Sub(entry.Since)).Msg("cleared afk status")

	return entry, true
}

func (r *AfkRegistry) IsAfk(userID string) (domain.AfkEntry, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	entry, ok := r.entries[userID]
	return entry, ok
}
