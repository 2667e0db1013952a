package memory

import (
	"sync"
	"testing"

	"threatScoringBackend/internal/core/domain"
)

func TestProfileStore_CreatesOnFirstUpdate(t *testing.T) {
	store := NewProfileStore()

	if _, ok := store.Get("u1"); ok {
		t.Fatal("expected no profile before first update")
	}

	store.Update("u1", func(p *domain.UserBehaviorProfile) {
		p.PatternCounts[domain.TagSequential]++
		p.PasswordLengths = append(p.PasswordLengths, 9)
		p.ComplexityScores = append(p.ComplexityScores, 2)
	})

	profile, ok := store.Get("u1")
	if !ok {
		t.Fatal("expected profile after update")
	}
	if profile.UserID != "u1" {
		t.Errorf("user id = %q, want u1", profile.UserID)
	}
	if profile.PatternCounts[domain.TagSequential] != 1 {
		t.Errorf("sequential count = %d, want 1", profile.PatternCounts[domain.TagSequential])
	}
	if len(profile.PasswordLengths) != 1 || profile.PasswordLengths[0] != 9 {
		t.Errorf("password lengths = %v, want [9]", profile.PasswordLengths)
	}
}

func TestProfileStore_GetReturnsCopy(t *testing.T) {
	store := NewProfileStore()

	store.Update("u1", func(p *domain.UserBehaviorProfile) {
		p.PatternCounts[domain.TagDatePattern] = 3
		p.PasswordLengths = append(p.PasswordLengths, 10)
	})

	first, _ := store.Get("u1")
	first.PatternCounts[domain.TagDatePattern] = 99
	first.PasswordLengths[0] = 99

	second, _ := store.Get("u1")
	if second.PatternCounts[domain.TagDatePattern] != 3 {
		t.Errorf("stored count mutated through copy: %d", second.PatternCounts[domain.TagDatePattern])
	}
	if second.PasswordLengths[0] != 10 {
		t.Errorf("stored lengths mutated through copy: %v", second.PasswordLengths)
	}
}

func TestProfileStore_IsolatesUsers(t *testing.T) {
	store := NewProfileStore()

	store.Update("u1", func(p *domain.UserBehaviorProfile) {
		p.PatternCounts[domain.TagSequential] = 5
	})
	store.Update("u2", func(p *domain.UserBehaviorProfile) {
		p.PatternCounts[domain.TagRepetitive] = 7
	})

	p1, _ := store.Get("u1")
	if p1.PatternCounts[domain.TagRepetitive] != 0 {
		t.Errorf("u1 picked up u2's counts: %v", p1.PatternCounts)
	}
	p2, _ := store.Get("u2")
	if p2.PatternCounts[domain.TagSequential] != 0 {
		t.Errorf("u2 picked up u1's counts: %v", p2.PatternCounts)
	}
}

func TestProfileStore_ConcurrentUpdates(t *testing.T) {
	store := NewProfileStore()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update("u1", func(p *domain.UserBehaviorProfile) {
				p.PatternCounts[domain.TagSequential]++
				p.PasswordLengths = append(p.PasswordLengths, 8)
			})
		}()
	}
	wg.Wait()

	profile, ok := store.Get("u1")
	if !ok {
		t.Fatal("expected profile")
	}
	if profile.PatternCounts[domain.TagSequential] != 100 {
		t.Errorf("sequential count = %d, want 100", profile.PatternCounts[domain.TagSequential])
	}
	if len(profile.PasswordLengths) != 100 {
		t.Errorf("length history = %d entries, want 100", len(profile.PasswordLengths))
	}
}
