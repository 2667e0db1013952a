// Package learner accumulates pattern observations from cracked passwords
// and turns them into targeted guess lists. Global tag frequencies live in
// the service itself; per-user history goes through the injected profile
// store so concurrent learns for one user stay serialized.
package learner

import (
	"sort"
	"sync"

	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/core/patterns"
	"threatScoringBackend/internal/port"
)

const (
	patternBaseline  = 100
	patternDeduction = 15
	globalTagLimit   = 5
	profileTagLimit  = 3
	maxGuesses       = 50
)

type Service struct {
	mu       sync.Mutex
	global   map[domain.PatternTag]int
	profiles port.ProfileStore
}

func New(profiles port.ProfileStore) *Service {
	return &Service{
		global:   make(map[domain.PatternTag]int),
		profiles: profiles,
	}
}

// Analyze runs the structural rule table over the password without touching
// any state. Each detected tag deducts from the 100-point baseline.
func (s *Service) Analyze(password string) domain.PatternAnalysis {
	tags := patterns.Core(password)

	score := patternBaseline - patternDeduction*len(tags)
	if score < 0 {
		score = 0
	}

	return domain.PatternAnalysis{
		Tags:         tags,
		PatternScore: score,
		Length:       len(password),
		Complexity:   patterns.Complexity(password),
	}
}

// Learn records the password's patterns in the global frequency table and in
// the user's profile. Profiles are created on first reference and only ever
// grow; there is no eviction.
func (s *Service) Learn(password, userID string) domain.PatternAnalysis {
	analysis := s.Analyze(password)

	s.mu.Lock()
	for _, tag := range analysis.Tags {
		s.global[tag]++
	}
	s.mu.Unlock()

	if userID != "" {
		s.profiles.Update(userID, func(profile *domain.UserBehaviorProfile) {
			for _, tag := range analysis.Tags {
				profile.PatternCounts[tag]++
			}
			profile.PasswordLengths = append(profile.PasswordLengths, analysis.Length)
			profile.ComplexityScores = append(profile.ComplexityScores, analysis.Complexity)
		})
	}

	return analysis
}

// GlobalTagCounts returns a snapshot of the global frequency table.
func (s *Service) GlobalTagCounts() map[domain.PatternTag]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[domain.PatternTag]int, len(s.global))
	for tag, count := range s.global {
		snapshot[tag] = count
	}
	return snapshot
}

// topTags orders tags by descending frequency with a name tie-break so the
// selection is deterministic, then keeps the first n.
func topTags(counts map[domain.PatternTag]int, n int) []domain.PatternTag {
	tags := make([]domain.PatternTag, 0, len(counts))
	for tag, count := range counts {
		if count > 0 {
			tags = append(tags, tag)
		}
	}

	sort.Slice(tags, func(i, j int) bool {
		if counts[tags[i]] != counts[tags[j]] {
			return counts[tags[i]] > counts[tags[j]]
		}
		return tags[i] < tags[j]
	})

	if len(tags) > n {
		tags = tags[:n]
	}
	return tags
}
