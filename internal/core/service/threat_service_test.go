package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"threatScoringBackend/internal/adapter/memory"
	"threatScoringBackend/internal/config"
	"threatScoringBackend/internal/core/attack"
	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/core/hashes"
	"threatScoringBackend/internal/core/risk"
	"threatScoringBackend/internal/mocks"
	"threatScoringBackend/internal/port"
)

const md5OfPassword = "5f4dcc3b5aa765d61d8327deb882cf99"

func newTestService(t *testing.T, sessions port.SessionStore, profiles port.ProfileStore, hashService port.HashService) *ThreatService {
	t.Helper()

	cfg := config.New()
	cfg.MetricsLogPath = filepath.Join(t.TempDir(), "metrics.log")

	svc, err := New(cfg, sessions, profiles, hashService)
	require.NoError(t, err)
	t.Cleanup(func() { _ = svc.Close() })

	return svc.(*ThreatService)
}

func newDefaultService(t *testing.T) *ThreatService {
	t.Helper()
	return newTestService(t, memory.NewSessionStore(), memory.NewProfileStore(), hashes.NewService())
}

func TestRunAttackDictionaryCracksCommonPassword(t *testing.T) {
	svc := newDefaultService(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	session, err := svc.RunAttack(ctx, md5OfPassword, domain.AttackConfig{Mode: domain.ModeDictionary})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCracked, session.Status)
	assert.Equal(t, domain.HashMD5, session.HashType)
	assert.False(t, session.EndTime.Before(session.StartTime))

	require.NotNil(t, session.Result)
	require.NotNil(t, session.Result.Cracked)
	assert.Equal(t, "password", *session.Result.Cracked)
	assert.Equal(t, int64(1), session.Result.Attempts)

	require.NotNil(t, session.Result.PatternAnalysis)
	assert.Equal(t, 100-session.Result.PatternAnalysis.PatternScore, session.Result.RiskScore)
	assert.NotEmpty(t, session.Result.PatternAnalysis.Tags)

	require.NotNil(t, session.Result.RiskAssessment)
	assert.Equal(t, session.Result.RiskScore, session.Result.RiskAssessment.OverallRisk)
}

func TestRunAttackDictionaryCracksDefaultCredential(t *testing.T) {
	hashService := hashes.NewService()
	svc := newTestService(t, memory.NewSessionStore(), memory.NewProfileStore(), hashService)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	targetHash, err := hashService.Generate("admin", domain.HashMD5)
	require.NoError(t, err)

	session, err := svc.RunAttack(ctx, targetHash, domain.AttackConfig{Mode: domain.ModeDictionary})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCracked, session.Status)
	require.NotNil(t, session.Result)
	require.NotNil(t, session.Result.Cracked)
	assert.Equal(t, "admin", *session.Result.Cracked)

	// "admin" is the seventh corpus entry, well inside the mutated list.
	assert.Equal(t, int64(7), session.Result.Attempts)
	assert.LessOrEqual(t, session.Result.Attempts, int64(len(attack.Candidates())))
}

func TestRunAttackBruteForceFindsDigitPIN(t *testing.T) {
	hashService := hashes.NewService()
	svc := newTestService(t, memory.NewSessionStore(), memory.NewProfileStore(), hashService)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	targetHash, err := hashService.Generate("99", domain.HashMD5)
	require.NoError(t, err)

	session, err := svc.RunAttack(ctx, targetHash, domain.AttackConfig{
		Mode:      domain.ModeBruteForce,
		HashType:  domain.HashMD5,
		Charset:   domain.CharsetNameDigits,
		MaxLength: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCracked, session.Status)
	require.NotNil(t, session.Result)
	require.NotNil(t, session.Result.Cracked)
	assert.Equal(t, "99", *session.Result.Cracked)

	// Lengths 1 and 2 over ten digits: "99" is the last of 110 candidates.
	assert.Equal(t, int64(110), session.Result.Attempts)
	assert.InDelta(t, 100.0, session.Progress, 0.01)
}

func TestRunAttackExhaustsOnStrongTarget(t *testing.T) {
	hashService := hashes.NewService()
	svc := newTestService(t, memory.NewSessionStore(), memory.NewProfileStore(), hashService)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	targetHash, err := hashService.Generate("Xk9#mQ2$vL7@wZ4", domain.HashSHA256)
	require.NoError(t, err)

	session, err := svc.RunAttack(ctx, targetHash, domain.AttackConfig{
		Mode:     domain.ModeDictionary,
		HashType: domain.HashSHA256,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusExhausted, session.Status)
	require.NotNil(t, session.Result)
	assert.Nil(t, session.Result.Cracked)
	assert.Equal(t, int64(len(attack.Candidates())), session.Result.Attempts)
	assert.Zero(t, session.Result.RiskScore)

	require.NotNil(t, session.Result.RiskAssessment)
	assert.Equal(t, domain.RiskLow, session.Result.RiskAssessment.RiskLevel)
	assert.Equal(t, []string{"Password not cracked in simulation"}, session.Result.RiskAssessment.Factors)
}

func TestRunAttackAIGuidedLearnsFromCrack(t *testing.T) {
	hashService := hashes.NewService()
	profiles := memory.NewProfileStore()
	svc := newTestService(t, memory.NewSessionStore(), profiles, hashService)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	targetHash, err := hashService.Generate("alice123", domain.HashMD5)
	require.NoError(t, err)

	session, err := svc.RunAttack(ctx, targetHash, domain.AttackConfig{
		Mode:     domain.ModeAIGuided,
		HashType: domain.HashMD5,
		UserID:   "user-7",
		Metadata: domain.TargetMetadata{Name: "alice", DateOfBirth: "1990-05-17"},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCracked, session.Status)
	require.NotNil(t, session.Result)
	require.NotNil(t, session.Result.Cracked)
	assert.Equal(t, "alice123", *session.Result.Cracked)

	counts := svc.learner.GlobalTagCounts()
	assert.GreaterOrEqual(t, counts[domain.TagSequential], 1)

	profile, ok := profiles.Get("user-7")
	require.True(t, ok)
	assert.Equal(t, []int{8}, profile.PasswordLengths)
	assert.GreaterOrEqual(t, profile.PatternCounts[domain.TagSequential], 1)
}

func TestStartAttackCracksAsynchronously(t *testing.T) {
	svc := newDefaultService(t)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sessionID, err := svc.StartAttack(ctx, md5OfPassword, domain.AttackConfig{Mode: domain.ModeDictionary})
	require.NoError(t, err)
	require.NotEmpty(t, sessionID)

	require.Eventually(t, func() bool {
		session, err := svc.GetSession(ctx, sessionID)
		return err == nil && session.Status == domain.StatusCracked
	}, 3*time.Second, 10*time.Millisecond)

	session, err := svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, session.Result)
	require.NotNil(t, session.Result.Cracked)
	assert.Equal(t, "password", *session.Result.Cracked)
}

func TestStopAttackEndsRunningSession(t *testing.T) {
	hashService := hashes.NewService()
	svc := newTestService(t, memory.NewSessionStore(), memory.NewProfileStore(), hashService)
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	// Six characters never fit a four-character keyspace, so only the stop
	// request or the attempt cap can end this run.
	targetHash, err := hashService.Generate("zzzzz9", domain.HashMD5)
	require.NoError(t, err)

	sessionID, err := svc.StartAttack(ctx, targetHash, domain.AttackConfig{
		Mode:        domain.ModeBruteForce,
		HashType:    domain.HashMD5,
		Charset:     domain.CharsetNameFull,
		MaxLength:   4,
		MaxAttempts: 100_000_000,
	})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		progress, err := svc.GetProgress(ctx, sessionID)
		return err == nil && progress.Status == domain.StatusRunning && progress.Attempts > 0
	}, 3*time.Second, 10*time.Millisecond)

	require.NoError(t, svc.StopAttack(ctx, sessionID))

	require.Eventually(t, func() bool {
		session, err := svc.GetSession(ctx, sessionID)
		return err == nil && session.Status == domain.StatusExhausted
	}, 3*time.Second, 10*time.Millisecond)

	session, err := svc.GetSession(ctx, sessionID)
	require.NoError(t, err)
	require.NotNil(t, session.Result)
	assert.Nil(t, session.Result.Cracked)
}

func TestStopAttackUnknownSession(t *testing.T) {
	svc := newDefaultService(t)

	err := svc.StopAttack(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRunAttackValidation(t *testing.T) {
	tests := []struct {
		name       string
		targetHash string
		config     domain.AttackConfig
		wantErr    error
	}{
		{
			name:       "unidentifiable hash",
			targetHash: "not-a-hash",
			config:     domain.AttackConfig{Mode: domain.ModeDictionary},
			wantErr:    domain.ErrInvalidHash,
		},
		{
			name:       "unsupported hash type",
			targetHash: md5OfPassword,
			config:     domain.AttackConfig{Mode: domain.ModeDictionary, HashType: "NTLM"},
			wantErr:    domain.ErrUnsupportedAlgorithm,
		},
		{
			name:       "unsupported mode",
			targetHash: md5OfPassword,
			config:     domain.AttackConfig{Mode: "rainbow"},
			wantErr:    domain.ErrUnsupportedMode,
		},
	}

	svc := newDefaultService(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.RunAttack(context.Background(), tt.targetHash, tt.config)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRunAttackPropagatesStoreError(t *testing.T) {
	errStore := errors.New("database offline")

	sessions := mocks.NewMockSessionStore()
	sessions.On("Save", mock.Anything, mock.Anything).Return(errStore)

	svc := newTestService(t, sessions, memory.NewProfileStore(), hashes.NewService())

	_, err := svc.RunAttack(context.Background(), md5OfPassword, domain.AttackConfig{Mode: domain.ModeDictionary})
	assert.ErrorIs(t, err, errStore)
	sessions.AssertExpectations(t)
}

func TestRunAttackExhaustsWhenVerifierNeverMatches(t *testing.T) {
	targetHash := "feedfacefeedfacefeedfacefeedface"

	hashService := mocks.NewMockHashService()
	hashService.On("Verify", mock.Anything, targetHash, domain.HashMD5).Return(false, nil)

	svc := newTestService(t, memory.NewSessionStore(), memory.NewProfileStore(), hashService)

	session, err := svc.RunAttack(context.Background(), targetHash, domain.AttackConfig{
		Mode:     domain.ModeDictionary,
		HashType: domain.HashMD5,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.StatusExhausted, session.Status)
	assert.Equal(t, int64(len(attack.Candidates())), session.Attempts)
}

func TestAnalyzePassword(t *testing.T) {
	svc := newDefaultService(t)
	ctx := context.Background()

	assessment, err := svc.AnalyzePassword(ctx, "password", domain.TargetMetadata{})
	require.NoError(t, err)

	assert.Zero(t, assessment.StrengthScore)
	assert.Equal(t, 100, assessment.AttackSuccessProbability)
	assert.Equal(t, domain.RiskCritical, assessment.RiskLevel)
	assert.NotEmpty(t, assessment.Recommendations)

	cached, err := svc.AnalyzePassword(ctx, "password", domain.TargetMetadata{})
	require.NoError(t, err)
	assert.Equal(t, assessment, cached)
}

func TestAssessPassword(t *testing.T) {
	svc := newDefaultService(t)

	assessment, err := svc.AssessPassword(context.Background(), "password", domain.TargetMetadata{})
	require.NoError(t, err)

	assert.Zero(t, assessment.Strength.StrengthScore)
	require.NotNil(t, assessment.Risk)
	assert.Equal(t, 100, assessment.Risk.OverallRisk)
	assert.Equal(t, domain.RiskCritical, assessment.Risk.RiskLevel)
	assert.Contains(t, assessment.Risk.Factors, "Weak password strength")
	assert.NotEmpty(t, assessment.Risk.Recommendations)
}

func TestLearnFeedsGuessGeneration(t *testing.T) {
	svc := newDefaultService(t)
	ctx := context.Background()

	analysis, err := svc.Learn(ctx, "summer2024", "user-3")
	require.NoError(t, err)
	assert.Contains(t, analysis.Tags, domain.TagDatePattern)

	guesses, err := svc.GenerateGuesses(ctx, domain.TargetMetadata{}, "user-3")
	require.NoError(t, err)
	require.NotEmpty(t, guesses)
	assert.LessOrEqual(t, len(guesses), 50)

	// A learned date pattern pulls year exemplars into the guess list.
	assert.Contains(t, guesses, "2024")
}

func TestClassifyPhishingAttachesRiskSummary(t *testing.T) {
	svc := newDefaultService(t)

	assessment, err := svc.ClassifyPhishing(context.Background(), domain.PhishingEmail{
		Subject: "URGENT: verify your account",
		Body:    "Your account has been suspended. Click http://192.168.1.5/login and verify your password immediately.",
		Sender:  "security@paypa1.com",
	})
	require.NoError(t, err)

	assert.Greater(t, assessment.RiskScore, 0)
	require.NotNil(t, assessment.RiskSummary)
	assert.Equal(t, assessment.RiskScore, assessment.RiskSummary.OverallRisk)
	assert.Equal(t, risk.ThreatLevel(assessment.RiskScore), assessment.RiskSummary.RiskLevel)
	assert.Equal(t, assessment.Recommendations, assessment.RiskSummary.Recommendations)
}

func TestClassifyVishingAttachesRiskSummary(t *testing.T) {
	svc := newDefaultService(t)

	assessment, err := svc.ClassifyVishing(context.Background(), domain.VishingCall{
		Script: "This is the IRS. We detected fraud and your account has been suspended. " +
			"You must verify your account and social security number immediately or legal action will be taken.",
		CallerID: "unknown",
		Duration: 25,
	})
	require.NoError(t, err)

	require.NotNil(t, assessment.RiskSummary)
	assert.Equal(t, domain.RiskCritical, assessment.RiskSummary.RiskLevel)
	assert.Contains(t, assessment.RiskSummary.Factors, "High vishing likelihood detected")
	assert.Contains(t, assessment.RiskSummary.Factors, "Multiple suspicious keywords found")
}

func TestGetProgressFinishedSession(t *testing.T) {
	svc := newDefaultService(t)
	ctx := context.Background()

	session, err := svc.RunAttack(ctx, md5OfPassword, domain.AttackConfig{Mode: domain.ModeDictionary})
	require.NoError(t, err)

	progress, err := svc.GetProgress(ctx, session.ID)
	require.NoError(t, err)

	assert.Equal(t, domain.StatusCracked, progress.Status)
	assert.Greater(t, progress.Progress, 0.0)
	assert.Zero(t, progress.ActiveWorkers)
}

func TestListSessionsFilters(t *testing.T) {
	hashService := hashes.NewService()
	svc := newTestService(t, memory.NewSessionStore(), memory.NewProfileStore(), hashService)
	ctx := context.Background()

	_, err := svc.RunAttack(ctx, md5OfPassword, domain.AttackConfig{Mode: domain.ModeDictionary})
	require.NoError(t, err)

	missHash, err := hashService.Generate("zz", domain.HashMD5)
	require.NoError(t, err)
	_, err = svc.RunAttack(ctx, missHash, domain.AttackConfig{
		Mode:      domain.ModeBruteForce,
		HashType:  domain.HashMD5,
		Charset:   domain.CharsetNameDigits,
		MaxLength: 1,
	})
	require.NoError(t, err)

	all, err := svc.ListSessions(ctx, port.SessionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cracked, err := svc.ListSessions(ctx, port.SessionFilter{Status: domain.StatusCracked})
	require.NoError(t, err)
	require.Len(t, cracked, 1)
	assert.Equal(t, domain.ModeDictionary, cracked[0].Mode)

	brute, err := svc.ListSessions(ctx, port.SessionFilter{Mode: domain.ModeBruteForce})
	require.NoError(t, err)
	require.Len(t, brute, 1)
	assert.Equal(t, domain.StatusExhausted, brute[0].Status)
}

func TestClosedServiceRejectsAllOperations(t *testing.T) {
	svc := newDefaultService(t)
	ctx := context.Background()

	require.NoError(t, svc.Close())
	require.NoError(t, svc.Close())

	_, err := svc.AnalyzePassword(ctx, "x", domain.TargetMetadata{})
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.AssessPassword(ctx, "x", domain.TargetMetadata{})
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.Learn(ctx, "x", "u")
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.GenerateGuesses(ctx, domain.TargetMetadata{}, "u")
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.RunAttack(ctx, md5OfPassword, domain.AttackConfig{Mode: domain.ModeDictionary})
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.StartAttack(ctx, md5OfPassword, domain.AttackConfig{Mode: domain.ModeDictionary})
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	err = svc.StopAttack(ctx, "any")
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.GetSession(ctx, "any")
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.GetProgress(ctx, "any")
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.ListSessions(ctx, port.SessionFilter{})
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.ClassifyPhishing(ctx, domain.PhishingEmail{Body: "x"})
	assert.ErrorIs(t, err, domain.ErrServiceClosed)

	_, err = svc.ClassifyVishing(ctx, domain.VishingCall{Script: "x"})
	assert.ErrorIs(t, err, domain.ErrServiceClosed)
}
