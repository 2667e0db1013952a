package memory

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/port"
)

func seedSessions(t *testing.T, store *SessionStore) {
	t.Helper()
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	sessions := []domain.AttackSession{
		{ID: "s1", Status: domain.StatusCracked, Mode: domain.ModeDictionary, HashType: domain.HashMD5, StartTime: base},
		{ID: "s2", Status: domain.StatusExhausted, Mode: domain.ModeBruteForce, HashType: domain.HashSHA256, StartTime: base.Add(time.Hour)},
		{ID: "s3", Status: domain.StatusCracked, Mode: domain.ModeHybrid, HashType: domain.HashMD5, StartTime: base.Add(2 * time.Hour)},
		{ID: "s4", Status: domain.StatusRunning, Mode: domain.ModeDictionary, HashType: domain.HashBCRYPT, StartTime: base.Add(3 * time.Hour)},
		{ID: "s5", Status: domain.StatusCracked, Mode: domain.ModeAIGuided, HashType: domain.HashMD5, StartTime: base.Add(3 * time.Hour)},
	}
	for _, s := range sessions {
		if err := store.Save(context.Background(), s); err != nil {
			t.Fatalf("Save(%s): %v", s.ID, err)
		}
	}
}

func sessionIDs(sessions []domain.AttackSession) []string {
	ids := make([]string, len(sessions))
	for i, s := range sessions {
		ids[i] = s.ID
	}
	return ids
}

func TestSessionStore_SaveGet(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := domain.AttackSession{
		ID:         "abc",
		TargetHash: "21232f297a57a5a743894a0e4a801fc3",
		HashType:   domain.HashMD5,
		Mode:       domain.ModeDictionary,
		Status:     domain.StatusRunning,
		StartTime:  time.Now(),
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.TargetHash != session.TargetHash || got.Status != session.Status {
		t.Errorf("Get returned %+v, want %+v", got, session)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_Update(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	session := domain.AttackSession{ID: "abc", Status: domain.StatusRunning}
	if err := store.Update(ctx, session); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Update before Save error = %v, want ErrSessionNotFound", err)
	}

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("Save: %v", err)
	}
	session.Status = domain.StatusCracked
	session.Attempts = 17
	if err := store.Update(ctx, session); err != nil {
		t.Fatalf("Update: %v", err)
	}

	got, err := store.Get(ctx, "abc")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Status != domain.StatusCracked || got.Attempts != 17 {
		t.Errorf("Get after Update = %+v", got)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	if err := store.Save(ctx, domain.AttackSession{ID: "abc"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, "abc"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrSessionNotFound", err)
	}
	if err := store.Delete(ctx, "abc"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("second Delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_List(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		filter port.SessionFilter
		want   []string
	}{
		{"no filter newest first", port.SessionFilter{}, []string{"s4", "s5", "s3", "s2", "s1"}},
		{"by status", port.SessionFilter{Status: domain.StatusCracked}, []string{"s5", "s3", "s1"}},
		{"by hash type", port.SessionFilter{HashType: domain.HashMD5}, []string{"s5", "s3", "s1"}},
		{"by mode", port.SessionFilter{Mode: domain.ModeDictionary}, []string{"s4", "s1"}},
		{"start date cutoff", port.SessionFilter{StartDate: base.Add(90 * time.Minute).Unix()}, []string{"s4", "s5", "s3"}},
		{"end date cutoff", port.SessionFilter{EndDate: base.Add(90 * time.Minute).Unix()}, []string{"s2", "s1"}},
		{"limit", port.SessionFilter{Limit: 2}, []string{"s4", "s5"}},
		{"offset", port.SessionFilter{Offset: 2}, []string{"s3", "s2", "s1"}},
		{"offset and limit", port.SessionFilter{Offset: 2, Limit: 2}, []string{"s3", "s2"}},
		{"offset past end", port.SessionFilter{Offset: 10}, []string{}},
	}

	store := NewSessionStore()
	seedSessions(t, store)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.List(context.Background(), tt.filter)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if !reflect.DeepEqual(sessionIDs(got), tt.want) {
				t.Errorf("List order = %v, want %v", sessionIDs(got), tt.want)
			}
		})
	}
}
