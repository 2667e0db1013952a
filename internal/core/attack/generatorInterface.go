package attack

import (
	"context"
	"threatScoringBackend/internal/core/domain"
)

type Generator interface {
	Start(ctx context.Context) (<-chan string, <-chan error)
	Stop()
	Progress() float64
	Mode() domain.AttackMode
	SetConfig(config domain.AttackConfig)
}

// GuessSource feeds learned candidates into the hybrid and AI-guided modes.
type GuessSource interface {
	GenerateGuesses(md domain.TargetMetadata, userID string) []string
}
