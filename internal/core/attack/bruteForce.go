package attack

import (
	"context"
	"sync"
	"threatScoringBackend/internal/core/domain"
)

const defaultMaxLength = 4

type BruteForce struct {
	config   domain.AttackConfig
	progress float64
	mu       sync.RWMutex
	stop     chan struct{}
	stopOnce sync.Once
}

func NewBruteForce() *BruteForce {
	return &BruteForce{
		stop: make(chan struct{}),
	}
}

func (b *BruteForce) Start(ctx context.Context) (<-chan string, <-chan error) {
	passwords := make(chan string, 100)
	errors := make(chan error, 1)

	go func() {
		defer close(passwords)
		defer close(errors)

		charset := []rune(domain.Charset(b.config.Charset))
		maxLength := b.config.MaxLength
		if maxLength <= 0 {
			maxLength = defaultMaxLength
		}

		total := keyspaceSize(len(charset), maxLength)
		emitted := 0.0

		for length := 1; length <= maxLength; length++ {
			if !b.emitLength(ctx, charset, length, passwords, total, &emitted) {
				return
			}
		}
	}()

	return passwords, errors
}

// emitLength walks one length of the keyspace odometer-style: the index
// slice is a base-len(charset) counter that rolls over right to left, which
// yields lexicographic order without materializing the keyspace.
func (b *BruteForce) emitLength(ctx context.Context, charset []rune, length int, passwords chan<- string, total float64, emitted *float64) bool {
	indices := make([]int, length)
	buf := make([]rune, length)

	for {
		for i, idx := range indices {
			buf[i] = charset[idx]
		}

		select {
		case passwords <- string(buf):
			*emitted++
			b.setProgress(*emitted / total * 100)
		case <-ctx.Done():
			return false
		case <-b.stop:
			return false
		}

		pos := length - 1
		for pos >= 0 {
			indices[pos]++
			if indices[pos] < len(charset) {
				break
			}
			indices[pos] = 0
			pos--
		}
		if pos < 0 {
			return true
		}
	}
}

func keyspaceSize(charsetLen, maxLength int) float64 {
	total := 0.0
	power := 1.0
	for length := 1; length <= maxLength; length++ {
		power *= float64(charsetLen)
		total += power
	}
	return total
}

func (b *BruteForce) Stop() {
	b.stopOnce.Do(func() { close(b.stop) })
}

func (b *BruteForce) Progress() float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.progress
}

func (b *BruteForce) setProgress(progress float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.progress = progress
}

func (b *BruteForce) Mode() domain.AttackMode {
	return domain.ModeBruteForce
}

func (b *BruteForce) SetConfig(config domain.AttackConfig) {
	b.config = config
}
