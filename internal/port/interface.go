package port

import (
	"context"

	"threatScoringBackend/internal/core/domain"
)

type ThreatService interface {
	AnalyzePassword(ctx context.Context, password string, metadata domain.TargetMetadata) (domain.StrengthAssessment, error)
	AssessPassword(ctx context.Context, password string, metadata domain.TargetMetadata) (domain.PasswordAssessment, error)
	RunAttack(ctx context.Context, targetHash string, config domain.AttackConfig) (domain.AttackSession, error)
	StartAttack(ctx context.Context, targetHash string, config domain.AttackConfig) (string, error)
	StopAttack(ctx context.Context, sessionID string) error
	GetSession(ctx context.Context, sessionID string) (domain.AttackSession, error)
	GetProgress(ctx context.Context, sessionID string) (domain.SessionProgress, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]domain.AttackSession, error)
	ClassifyPhishing(ctx context.Context, email domain.PhishingEmail) (domain.ThreatAssessment, error)
	ClassifyVishing(ctx context.Context, call domain.VishingCall) (domain.ThreatAssessment, error)
	Learn(ctx context.Context, password, userID string) (domain.PatternAnalysis, error)
	GenerateGuesses(ctx context.Context, metadata domain.TargetMetadata, userID string) ([]string, error)
	Close() error
}

type SessionStore interface {
	Save(ctx context.Context, session domain.AttackSession) error
	Update(ctx context.Context, session domain.AttackSession) error
	Delete(ctx context.Context, sessionID string) error
	Get(ctx context.Context, sessionID string) (domain.AttackSession, error)
	List(ctx context.Context, filter SessionFilter) ([]domain.AttackSession, error)
}

type ProfileStore interface {
	Update(userID string, apply func(*domain.UserBehaviorProfile))
	Get(userID string) (domain.UserBehaviorProfile, bool)
}

type HashService interface {
	Identify(hash string) domain.HashType
	Verify(password, hash string, hashType domain.HashType) (bool, error)
	Generate(password string, hashType domain.HashType) (string, error)
}

type SessionFilter struct {
	Status    domain.SessionStatus
	HashType  domain.HashType
	Mode      domain.AttackMode
	StartDate int64
	EndDate   int64
	Limit     int
	Offset    int
}
