package attack

import (
	"context"
	"sort"
	"sync"
	"threatScoringBackend/internal/core/domain"
)

// AIGuided runs only the learner's guesses, shortest first, so the cheapest
// candidates are spent before the long metadata derivations. Successful
// cracks are fed back into the learner by the service layer.
type AIGuided struct {
	config   domain.AttackConfig
	guesses  GuessSource
	progress float64
	mu       sync.RWMutex
	stop     chan struct{}
	stopOnce sync.Once
}

func NewAIGuided(guesses GuessSource) *AIGuided {
	return &AIGuided{
		guesses: guesses,
		stop:    make(chan struct{}),
	}
}

func (a *AIGuided) Start(ctx context.Context) (<-chan string, <-chan error) {
	passwords := make(chan string, 100)
	errors := make(chan error, 1)

	go func() {
		defer close(passwords)
		defer close(errors)

		words := a.guesses.GenerateGuesses(a.config.Metadata, a.config.UserID)
		sort.SliceStable(words, func(i, j int) bool {
			if len(words[i]) != len(words[j]) {
				return len(words[i]) < len(words[j])
			}
			return words[i] < words[j]
		})
		total := float64(len(words))

		for i, word := range words {
			select {
			case passwords <- word:
				a.setProgress(float64(i+1) / total * 100)
			case <-ctx.Done():
				return
			case <-a.stop:
				return
			}
		}
	}()

	return passwords, errors
}

func (a *AIGuided) Stop() {
	a.stopOnce.Do(func() { close(a.stop) })
}

func (a *AIGuided) Progress() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.progress
}

func (a *AIGuided) setProgress(progress float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.progress = progress
}

func (a *AIGuided) Mode() domain.AttackMode {
	return domain.ModeAIGuided
}

func (a *AIGuided) SetConfig(config domain.AttackConfig) {
	a.config = config
}
