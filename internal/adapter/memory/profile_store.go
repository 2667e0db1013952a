// Package memory provides the in-process adapters backing the core
// services: a session store for attack lifecycles and a sharded profile
// store for learned user behavior.
package memory

import (
	"hash/fnv"
	"sync"

	"threatScoringBackend/internal/core/domain"
)

const profileShards = 32

type profileShard struct {
	mu       sync.Mutex
	profiles map[string]*domain.UserBehaviorProfile
}

// ProfileStore keys profiles by user id across fixed shards so updates for
// unrelated users never contend on one lock.
type ProfileStore struct {
	shards [profileShards]*profileShard
}

func NewProfileStore() *ProfileStore {
	store := &ProfileStore{}
	for i := range store.shards {
		store.shards[i] = &profileShard{
			profiles: make(map[string]*domain.UserBehaviorProfile),
		}
	}
	return store
}

func (s *ProfileStore) shard(userID string) *profileShard {
	h := fnv.New32a()
	h.Write([]byte(userID))
	return s.shards[h.Sum32()%profileShards]
}

// Update applies the mutation under the shard lock, creating the profile on
// first reference. Updates for the same user are serialized.
func (s *ProfileStore) Update(userID string, apply func(*domain.UserBehaviorProfile)) {
	shard := s.shard(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	profile, ok := shard.profiles[userID]
	if !ok {
		profile = &domain.UserBehaviorProfile{
			UserID:        userID,
			PatternCounts: make(map[domain.PatternTag]int),
		}
		shard.profiles[userID] = profile
	}
	apply(profile)
}

// Get returns a copy so callers can read without holding the shard lock.
func (s *ProfileStore) Get(userID string) (domain.UserBehaviorProfile, bool) {
	shard := s.shard(userID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	profile, ok := shard.profiles[userID]
	if !ok {
		return domain.UserBehaviorProfile{}, false
	}
	return cloneProfile(profile), true
}

func cloneProfile(p *domain.UserBehaviorProfile) domain.UserBehaviorProfile {
	clone := domain.UserBehaviorProfile{
		UserID:           p.UserID,
		PatternCounts:    make(map[domain.PatternTag]int, len(p.PatternCounts)),
		PasswordLengths:  append([]int(nil), p.PasswordLengths...),
		ComplexityScores: append([]int(nil), p.ComplexityScores...),
	}
	for tag, count := range p.PatternCounts {
		clone.PatternCounts[tag] = count
	}
	return clone
}
