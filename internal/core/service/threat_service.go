package service

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"threatScoringBackend/internal/config"
	"threatScoringBackend/internal/core/analyzer"
	"threatScoringBackend/internal/core/attack"
	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/core/learner"
	"threatScoringBackend/internal/core/phishing"
	"threatScoringBackend/internal/core/risk"
	"threatScoringBackend/internal/core/vishing"
	"threatScoringBackend/internal/pkg/cache"
	"threatScoringBackend/internal/pkg/concurrency"
	"threatScoringBackend/internal/pkg/debug"
	"threatScoringBackend/internal/pkg/metrics"
	"threatScoringBackend/internal/port"
	"threatScoringBackend/internal/utils/random"
	"time"
)

const (
	metricsUpdateInterval   = time.Second
	attemptsPerMetricsFlush = 256
)

// runningAttack tracks one in-flight simulation so it can be stopped and
// its progress read while the generator is still producing candidates.
type runningAttack struct {
	generator attack.Generator
	ctx       context.Context
	cancel    context.CancelFunc
}

// ThreatService wires the analyzers, the attack generators and the risk
// scorer behind the single entry point the transport layer talks to.
type ThreatService struct {
	cfg      *config.Config
	sessions port.SessionStore
	hashes   port.HashService

	analyzer *analyzer.Analyzer
	learner  *learner.Service
	phishing *phishing.Classifier
	vishing  *vishing.Classifier

	generators map[domain.AttackMode]func() attack.Generator
	running    sync.Map

	collector  *metrics.Collector
	reporter   *metrics.Reporter
	pool       *concurrency.WorkerPool
	poolCancel context.CancelFunc

	strengthCache *cache.Cache[domain.StrengthAssessment]
	threatCache   *cache.Cache[domain.ThreatAssessment]

	mu     sync.RWMutex
	closed bool
}

func New(cfg *config.Config, sessions port.SessionStore, profiles port.ProfileStore, hashes port.HashService) (port.ThreatService, error) {
	reporter, err := metrics.NewReporter(cfg.MetricsLogPath)
	if err != nil {
		return nil, fmt.Errorf("open metrics log: %w", err)
	}

	learnerService := learner.New(profiles)

	poolCtx, poolCancel := context.WithCancel(context.Background())
	pool := concurrency.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	pool.Start(poolCtx)

	s := &ThreatService{
		cfg:      cfg,
		sessions: sessions,
		hashes:   hashes,
		analyzer: analyzer.New(),
		learner:  learnerService,
		phishing: phishing.New(),
		vishing:  vishing.New(),
		generators: map[domain.AttackMode]func() attack.Generator{
			domain.ModeDictionary: func() attack.Generator { return attack.NewDictionary() },
			domain.ModeBruteForce: func() attack.Generator { return attack.NewBruteForce() },
			domain.ModeHybrid:     func() attack.Generator { return attack.NewHybrid(learnerService) },
			domain.ModeAIGuided:   func() attack.Generator { return attack.NewAIGuided(learnerService) },
		},
		collector:     metrics.NewCollector(metricsUpdateInterval),
		reporter:      reporter,
		pool:          pool,
		poolCancel:    poolCancel,
		strengthCache: cache.New[domain.StrengthAssessment](cfg.CacheSize, cfg.CacheTTL),
		threatCache:   cache.New[domain.ThreatAssessment](cfg.CacheSize, cfg.CacheTTL),
	}

	go s.drainResults()

	debug.Info("threat service ready: %d workers, queue %d", cfg.Workers, cfg.QueueSize)
	return s, nil
}

func (s *ThreatService) AnalyzePassword(ctx context.Context, password string, metadata domain.TargetMetadata) (domain.StrengthAssessment, error) {
	if err := s.ensureOpen(); err != nil {
		return domain.StrengthAssessment{}, err
	}

	key := cache.Key("password", password, metadata.Name, metadata.Username,
		metadata.Email, metadata.DateOfBirth, strings.Join(metadata.Interests, "\n"))
	if assessment, ok := s.strengthCache.Get(key); ok {
		return assessment, nil
	}

	assessment := s.analyzer.Analyze(password, metadata)
	assessment.RiskLevel = risk.Level(assessment.AttackSuccessProbability)

	s.strengthCache.Add(key, assessment)
	return assessment, nil
}

// AssessPassword runs the strength analysis and attaches the full aggregated
// risk view, the record the awareness report is built from.
func (s *ThreatService) AssessPassword(ctx context.Context, password string, metadata domain.TargetMetadata) (domain.PasswordAssessment, error) {
	assessment, err := s.AnalyzePassword(ctx, password, metadata)
	if err != nil {
		return domain.PasswordAssessment{}, err
	}

	analysis := s.learner.Analyze(password)
	return domain.PasswordAssessment{
		Strength: assessment,
		Risk:     risk.ForStrength(assessment, analysis),
	}, nil
}

func (s *ThreatService) Learn(ctx context.Context, password, userID string) (domain.PatternAnalysis, error) {
	if err := s.ensureOpen(); err != nil {
		return domain.PatternAnalysis{}, err
	}
	return s.learner.Learn(password, userID), nil
}

func (s *ThreatService) GenerateGuesses(ctx context.Context, metadata domain.TargetMetadata, userID string) ([]string, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	return s.learner.GenerateGuesses(metadata, userID), nil
}

func (s *ThreatService) ClassifyPhishing(ctx context.Context, email domain.PhishingEmail) (domain.ThreatAssessment, error) {
	if err := s.ensureOpen(); err != nil {
		return domain.ThreatAssessment{}, err
	}

	key := cache.Key("phishing", email.Subject, email.Body, email.Sender)
	if assessment, ok := s.threatCache.Get(key); ok {
		return assessment, nil
	}

	assessment := s.phishing.Analyze(email)
	assessment.RiskSummary = risk.ForPhishing(assessment)

	s.threatCache.Add(key, assessment)
	return assessment, nil
}

func (s *ThreatService) ClassifyVishing(ctx context.Context, call domain.VishingCall) (domain.ThreatAssessment, error) {
	if err := s.ensureOpen(); err != nil {
		return domain.ThreatAssessment{}, err
	}

	key := cache.Key("vishing", call.Script, call.CallerID,
		strconv.FormatFloat(call.Duration, 'f', -1, 64))
	if assessment, ok := s.threatCache.Get(key); ok {
		return assessment, nil
	}

	assessment := s.vishing.Analyze(call)
	assessment.RiskSummary = risk.ForVishing(assessment)

	s.threatCache.Add(key, assessment)
	return assessment, nil
}

// RunAttack executes a simulation synchronously and returns the finished
// session. The caller's context bounds the whole run together with the
// configured session timeout.
func (s *ThreatService) RunAttack(ctx context.Context, targetHash string, attackConfig domain.AttackConfig) (domain.AttackSession, error) {
	if err := s.ensureOpen(); err != nil {
		return domain.AttackSession{}, err
	}

	session, run, err := s.beginSession(ctx, targetHash, attackConfig)
	if err != nil {
		return domain.AttackSession{}, err
	}

	perf := metrics.CapturePerformance(func() {
		s.executeAttack(session, run)
	})
	s.reporter.Record("attack_performance", map[string]interface{}{
		"session_id":  session.ID,
		"duration_ms": perf.Duration.Milliseconds(),
		"bytes_alloc": perf.BytesAlloc,
		"gc_cycles":   perf.GCCycles,
	})

	return s.sessions.Get(ctx, session.ID)
}

// StartAttack queues a simulation on the worker pool and returns its session
// ID immediately. The run is detached from the caller's context; only the
// session timeout or StopAttack ends it early.
func (s *ThreatService) StartAttack(ctx context.Context, targetHash string, attackConfig domain.AttackConfig) (string, error) {
	// The read lock is held across Submit so Close cannot shut the pool
	// down between the closed check and the enqueue.
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", domain.ErrServiceClosed
	}

	session, run, err := s.beginSession(context.Background(), targetHash, attackConfig)
	if err != nil {
		return "", err
	}

	s.pool.Submit(concurrency.Task{
		ID:        session.ID,
		SessionID: session.ID,
		Function: func() (string, error) {
			s.executeAttack(session, run)
			final, err := s.sessions.Get(context.Background(), session.ID)
			if err != nil {
				return "", err
			}
			return string(final.Status), nil
		},
	})

	return session.ID, nil
}

func (s *ThreatService) StopAttack(ctx context.Context, sessionID string) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}

	value, ok := s.running.Load(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}
	value.(*runningAttack).cancel()

	debug.Info("stop requested for session %s", sessionID)
	return nil
}

func (s *ThreatService) GetSession(ctx context.Context, sessionID string) (domain.AttackSession, error) {
	if err := s.ensureOpen(); err != nil {
		return domain.AttackSession{}, err
	}
	return s.sessions.Get(ctx, sessionID)
}

func (s *ThreatService) GetProgress(ctx context.Context, sessionID string) (domain.SessionProgress, error) {
	if err := s.ensureOpen(); err != nil {
		return domain.SessionProgress{}, err
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return domain.SessionProgress{}, err
	}

	progress := domain.SessionProgress{
		SessionID: sessionID,
		Status:    session.Status,
		Progress:  session.Progress,
		Attempts:  session.Attempts,
		Speed:     session.ResourceMetrics.AttemptsPerSec,
	}

	if value, ok := s.running.Load(sessionID); ok {
		progress.Status = domain.StatusRunning
		progress.Progress = value.(*runningAttack).generator.Progress()
		if m, ok := s.collector.GetMetrics(sessionID); ok {
			progress.Attempts = m.TotalAttempts
			progress.Speed = m.AttemptsPerSec
			progress.ActiveWorkers = m.ActiveWorkers
		}
	}

	return progress, nil
}

func (s *ThreatService) ListSessions(ctx context.Context, filter port.SessionFilter) ([]domain.AttackSession, error) {
	if err := s.ensureOpen(); err != nil {
		return nil, err
	}
	return s.sessions.List(ctx, filter)
}

// Close cancels every running simulation, drains the worker pool and
// flushes the metrics log. Subsequent calls on the service return
// ErrServiceClosed.
func (s *ThreatService) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.running.Range(func(_, value interface{}) bool {
		value.(*runningAttack).cancel()
		return true
	})

	// Stop before poolCancel: a canceled pool context stops workers from
	// draining the queue, which would leave Submit callers blocked.
	s.pool.Stop()
	s.poolCancel()

	return s.reporter.Close()
}

// beginSession validates the target and config, persists the new session and
// registers the generator. ctx is the parent of the run context, so the
// session dies with the caller for synchronous runs and outlives it for
// queued ones.
func (s *ThreatService) beginSession(ctx context.Context, targetHash string, attackConfig domain.AttackConfig) (domain.AttackSession, *runningAttack, error) {
	hashType := attackConfig.HashType
	if hashType == "" {
		hashType = s.hashes.Identify(targetHash)
		if hashType == "" {
			return domain.AttackSession{}, nil, domain.ErrInvalidHash
		}
	} else if !supportedHashType(hashType) {
		return domain.AttackSession{}, nil, domain.ErrUnsupportedAlgorithm
	}

	factory, ok := s.generators[attackConfig.Mode]
	if !ok {
		return domain.AttackSession{}, nil, domain.ErrUnsupportedMode
	}

	attackConfig.HashType = hashType
	s.applyDefaults(&attackConfig)

	generator := factory()
	generator.SetConfig(attackConfig)

	session := domain.AttackSession{
		ID:         random.GenerateUUID(),
		TargetHash: targetHash,
		HashType:   hashType,
		Mode:       attackConfig.Mode,
		Status:     domain.StatusRunning,
		StartTime:  time.Now(),
		Config:     attackConfig,
	}

	if err := s.sessions.Save(ctx, session); err != nil {
		return domain.AttackSession{}, nil, fmt.Errorf("failed to save session: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, attackConfig.Timeout)
	run := &runningAttack{generator: generator, ctx: runCtx, cancel: cancel}
	s.running.Store(session.ID, run)
	s.collector.StartCollection(session.ID)

	debug.Info("session %s started: mode=%s hash_type=%s max_attempts=%d",
		session.ID, session.Mode, session.HashType, attackConfig.MaxAttempts)
	return session, run, nil
}

// executeAttack drains the generator until a candidate matches, the attempt
// cap is hit, or the run context expires, then finalizes the session.
func (s *ThreatService) executeAttack(session domain.AttackSession, run *runningAttack) {
	defer run.cancel()

	words, errs := run.generator.Start(run.ctx)
	startTime := time.Now()

	var attempts int64
	var cracked *string
	maxAttempts := session.Config.MaxAttempts

drain:
	for {
		select {
		case word, ok := <-words:
			if !ok {
				break drain
			}
			attempts++
			if attempts%attemptsPerMetricsFlush == 0 {
				s.collector.UpdateAttempts(session.ID, attempts, 1)
			}

			match, err := s.hashes.Verify(word, session.TargetHash, session.HashType)
			if err != nil {
				debug.Error("verify failed in session %s: %v", session.ID, err)
				break drain
			}
			if match {
				candidate := word
				cracked = &candidate
				break drain
			}
			if attempts >= maxAttempts {
				debug.Info("session %s reached attempt cap %d", session.ID, maxAttempts)
				break drain
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			debug.Warning("generator error in session %s: %v", session.ID, err)
		case <-run.ctx.Done():
			break drain
		}
	}

	run.generator.Stop()
	s.finalizeSession(session, run, cracked, attempts, startTime)
}

func (s *ThreatService) finalizeSession(session domain.AttackSession, run *runningAttack, cracked *string, attempts int64, startTime time.Time) {
	endTime := time.Now()

	result := domain.AttackResult{
		Cracked:          cracked,
		Mode:             session.Mode,
		Attempts:         attempts,
		TimeTakenSeconds: roundHundredths(endTime.Sub(startTime).Seconds()),
	}

	if cracked != nil {
		var analysis domain.PatternAnalysis
		if session.Mode == domain.ModeAIGuided {
			analysis = s.learner.Learn(*cracked, session.Config.UserID)
		} else {
			analysis = s.learner.Analyze(*cracked)
		}
		result.PatternAnalysis = &analysis
		result.RiskScore = 100 - analysis.PatternScore
		session.Status = domain.StatusCracked
	} else {
		session.Status = domain.StatusExhausted
	}
	result.RiskAssessment = risk.ForAttack(result)

	session.EndTime = endTime
	session.Attempts = attempts
	session.Progress = run.generator.Progress()
	session.Result = &result

	s.collector.UpdateAttempts(session.ID, attempts, 0)
	if m, ok := s.collector.GetMetrics(session.ID); ok {
		session.ResourceMetrics = m
	}

	// The stored record must reflect the outcome even when the run context
	// has already expired.
	if err := s.sessions.Update(context.Background(), session); err != nil {
		debug.Error("failed to update session %s: %v", session.ID, err)
	}

	s.reporter.Record("attack", map[string]interface{}{
		"session_id": session.ID,
		"mode":       session.Mode,
		"status":     session.Status,
		"attempts":   attempts,
		"cracked":    cracked != nil,
		"risk_score": result.RiskScore,
	})

	s.collector.StopCollection(session.ID)
	s.running.Delete(session.ID)

	debug.Info("session %s finished: status=%s attempts=%d time=%.2fs",
		session.ID, session.Status, attempts, result.TimeTakenSeconds)
}

func (s *ThreatService) drainResults() {
	for result := range s.pool.Results() {
		if result.Error != nil {
			debug.Warning("queued session %s ended with error: %v", result.SessionID, result.Error)
			continue
		}
		debug.Debug("queued session %s done: status=%s duration=%s",
			result.SessionID, result.Value, result.Duration)
	}
}

func (s *ThreatService) applyDefaults(attackConfig *domain.AttackConfig) {
	if attackConfig.MaxAttempts <= 0 {
		attackConfig.MaxAttempts = s.cfg.DefaultMaxAttempts
	}
	if attackConfig.MaxAttempts > s.cfg.AttemptCeiling {
		attackConfig.MaxAttempts = s.cfg.AttemptCeiling
	}
	if attackConfig.MaxLength <= 0 {
		attackConfig.MaxLength = s.cfg.BruteForceMaxLength
	}
	if attackConfig.Timeout <= 0 {
		attackConfig.Timeout = s.cfg.SessionTimeout
	}
}

func (s *ThreatService) ensureOpen() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return domain.ErrServiceClosed
	}
	return nil
}

func supportedHashType(hashType domain.HashType) bool {
	switch hashType {
	case domain.HashMD5, domain.HashSHA1, domain.HashSHA256, domain.HashSHA512, domain.HashBCRYPT:
		return true
	}
	return false
}

func roundHundredths(v float64) float64 {
	return math.Round(v*100) / 100
}

var _ port.ThreatService = (*ThreatService)(nil)
