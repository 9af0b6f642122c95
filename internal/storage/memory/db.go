package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avstrong/rental/internal/booking"
	"github.com/avstrong/rental/internal/logger"
)

type Config struct {
	L *logger.Logger
	// TTL expires sessions that were not touched for this long. Zero keeps
	// them for the life of the process.
	TTL time.Duration
	Now func() time.Time
}

type session struct {
	details   booking.Details
	touchedAt time.Time
}

type flowEntry struct {
	flow      booking.Flow
	touchedAt time.Time
}

type DB struct {
	mu       sync.Mutex
	l        *logger.Logger
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*session
	flows    map[string]*flowEntry
}

func New(conf Config) *DB {
	now := conf.Now
	if now == nil {
		now = time.Now
	}

	return &DB{
		l:        conf.L,
		ttl:      conf.TTL,
		now:      now,
		sessions: make(map[string]*session),
		flows:    make(map[string]*flowEntry),
	}
}

func (db *DB) CreateSession(_ context.Context, id string, details booking.Details) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.liveSession(id); ok {
		return fmt.Errorf("session %s: %w", id, ErrSessionExists)
	}

	db.sessions[id] = &session{details: copyDetails(details), touchedAt: db.now()}

	return nil
}

func (db *DB) GetSession(_ context.Context, id string) (booking.Details, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.liveSession(id)
	if !ok {
		return booking.Details{}, booking.ErrSessionNotFound
	}

	s.touchedAt = db.now()

	return copyDetails(s.details), nil
}

func (db *DB) SaveSession(_ context.Context, id string, details booking.Details) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	s, ok := db.liveSession(id)
	if !ok {
		return booking.ErrSessionNotFound
	}

	s.details = copyDetails(details)
	s.touchedAt = db.now()

	return nil
}

func (db *DB) SaveFlow(_ context.Context, sessionID string, f booking.Flow) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.flows[sessionID] = &flowEntry{flow: f, touchedAt: db.now()}

	return nil
}

func (db *DB) GetFlow(_ context.Context, sessionID string) (booking.Flow, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	f, ok := db.flows[sessionID]
	if !ok || db.expired(f.touchedAt) {
		delete(db.flows, sessionID)

		return booking.Flow{}, booking.ErrFlowNotFound
	}

	f.touchedAt = db.now()

	return f.flow, nil
}

func (db *DB) DeleteFlow(_ context.Context, sessionID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	delete(db.flows, sessionID)

	return nil
}

// Sweep drops expired sessions with their flows and reports how many went.
func (db *DB) Sweep(_ context.Context) int {
	db.mu.Lock()
	defer db.mu.Unlock()

	var removed int

	for id, s := range db.sessions {
		if db.expired(s.touchedAt) {
			delete(db.sessions, id)
			delete(db.flows, id)

			removed++
		}
	}

	// Flows of sessions kept in another store expire on their own.
	for id, f := range db.flows {
		if db.expired(f.touchedAt) {
			delete(db.flows, id)
		}
	}

	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (db *DB) RunSweeper(ctx context.Context, interval time.Duration) {
	if db.ttl <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := db.Sweep(ctx); n > 0 && db.l != nil {
				db.l.LogInfo("Expired booking sessions have been removed: %d", n)
			}
		}
	}
}

// liveSession must be called with db.mu held.
func (db *DB) liveSession(id string) (*session, bool) {
	s, ok := db.sessions[id]
	if !ok {
		return nil, false
	}

	if db.expired(s.touchedAt) {
		delete(db.sessions, id)
		delete(db.flows, id)

		return nil, false
	}

	return s, true
}

func (db *DB) expired(touchedAt time.Time) bool {
	return db.ttl > 0 && db.now().Sub(touchedAt) > db.ttl
}

func copyDetails(d booking.Details) booking.Details {
	if d.CarID != nil {
		id := *d.CarID
		d.CarID = &id
	}

	return d
}
