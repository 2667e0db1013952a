package attack

import (
	"context"
	"sync"
	"threatScoringBackend/internal/core/domain"
)

// Hybrid merges the common-password corpus with learned guesses for the
// target, then scans the merged list the same way dictionary mode does.
type Hybrid struct {
	config   domain.AttackConfig
	guesses  GuessSource
	progress float64
	mu       sync.RWMutex
	stop     chan struct{}
	stopOnce sync.Once
}

func NewHybrid(guesses GuessSource) *Hybrid {
	return &Hybrid{
		guesses: guesses,
		stop:    make(chan struct{}),
	}
}

func (h *Hybrid) Start(ctx context.Context) (<-chan string, <-chan error) {
	passwords := make(chan string, 100)
	errors := make(chan error, 1)

	go func() {
		defer close(passwords)
		defer close(errors)

		words := make([]string, 0, len(corpus)+50)
		words = append(words, corpus...)
		words = append(words, h.guesses.GenerateGuesses(h.config.Metadata, h.config.UserID)...)
		words = dedupe(words)
		total := float64(len(words))

		for i, word := range words {
			select {
			case passwords <- word:
				h.setProgress(float64(i+1) / total * 100)
			case <-ctx.Done():
				return
			case <-h.stop:
				return
			}
		}
	}()

	return passwords, errors
}

func (h *Hybrid) Stop() {
	h.stopOnce.Do(func() { close(h.stop) })
}

func (h *Hybrid) Progress() float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.progress
}

func (h *Hybrid) setProgress(progress float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.progress = progress
}

func (h *Hybrid) Mode() domain.AttackMode {
	return domain.ModeHybrid
}

func (h *Hybrid) SetConfig(config domain.AttackConfig) {
	h.config = config
}
