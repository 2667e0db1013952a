package memory

import (
	"context"
	"sort"
	"sync"

	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/port"
)

// SessionStore holds attack sessions for the lifetime of the process.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]domain.AttackSession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]domain.AttackSession)}
}

func (s *SessionStore) Save(ctx context.Context, session domain.AttackSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *SessionStore) Update(ctx context.Context, session domain.AttackSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[session.ID]; !ok {
		return domain.ErrSessionNotFound
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (domain.AttackSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return domain.AttackSession{}, domain.ErrSessionNotFound
	}
	return session, nil
}

// List returns matching sessions newest-first. Offset and limit apply after
// filtering; a zero limit means no cap.
func (s *SessionStore) List(ctx context.Context, filter port.SessionFilter) ([]domain.AttackSession, error) {
	s.mu.RLock()
	matched := make([]domain.AttackSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		if matchesFilter(session, filter) {
			matched = append(matched, session)
		}
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].StartTime.Equal(matched[j].StartTime) {
			return matched[i].StartTime.After(matched[j].StartTime)
		}
		return matched[i].ID < matched[j].ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return []domain.AttackSession{}, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, nil
}

func matchesFilter(session domain.AttackSession, filter port.SessionFilter) bool {
	if filter.Status != "" && session.Status != filter.Status {
		return false
	}
	if filter.HashType != "" && session.HashType != filter.HashType {
		return false
	}
	if filter.Mode != "" && session.Mode != filter.Mode {
		return false
	}
	if filter.StartDate > 0 && session.StartTime.Unix() < filter.StartDate {
		return false
	}
	if filter.EndDate > 0 && session.StartTime.Unix() > filter.EndDate {
		return false
	}
	return true
}
