package booking

import "sync"

type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// sessionLocks hands out one mutex per session id. Entries are dropped once
// nobody holds or waits for them.
type sessionLocks struct {
	mu    sync.Mutex
	locks map[string]*sessionLock
}

// lock blocks until the session is free and returns its release func.
func (s *sessionLocks) lock(id string) func() {
	s.mu.Lock()

	if s.locks == nil {
		s.locks = make(map[string]*sessionLock)
	}

	l, ok := s.locks[id]
	if !ok {
		l = &sessionLock{}
		s.locks[id] = l
	}

	l.refs++
	s.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		s.mu.Lock()
		defer s.mu.Unlock()

		l.refs--
		if l.refs == 0 {
			delete(s.locks, id)
		}
	}
}

func (s *sessionLocks) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.locks)
}
