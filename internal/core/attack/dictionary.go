package attack

import (
	"context"
	"sync"
	"threatScoringBackend/internal/core/domain"
)

type Dictionary struct {
	config   domain.AttackConfig
	progress float64
	mu       sync.RWMutex
	stop     chan struct{}
	stopOnce sync.Once
}

func NewDictionary() *Dictionary {
	return &Dictionary{
		stop: make(chan struct{}),
	}
}

func (d *Dictionary) Start(ctx context.Context) (<-chan string, <-chan error) {
	passwords := make(chan string, 100)
	errors := make(chan error, 1)

	go func() {
		defer close(passwords)
		defer close(errors)

		words := Candidates()
		total := float64(len(words))

		for i, word := range words {
			select {
			case passwords <- word:
				d.setProgress(float64(i+1) / total * 100)
			case <-ctx.Done():
				return
			case <-d.stop:
				return
			}
		}
	}()

	return passwords, errors
}

func (d *Dictionary) Stop() {
	d.stopOnce.Do(func() { close(d.stop) })
}

func (d *Dictionary) Progress() float64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.progress
}

func (d *Dictionary) setProgress(progress float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.progress = progress
}

func (d *Dictionary) Mode() domain.AttackMode {
	return domain.ModeDictionary
}

func (d *Dictionary) SetConfig(config domain.AttackConfig) {
	d.config = config
}
