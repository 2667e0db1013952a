package domain

import "time"

// TargetMetadata carries the optional personal context an attacker is assumed
// to know about the target. Inputs only, never persisted by this core.
type TargetMetadata struct {
	Name        string   `json:"name,omitempty"`
	Username    string   `json:"username,omitempty"`
	Email       string   `json:"email,omitempty"`
	DateOfBirth string   `json:"dob,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

func (m TargetMetadata) IsZero() bool {
	return m.Name == "" && m.Username == "" && m.Email == "" &&
		m.DateOfBirth == "" && len(m.Interests) == 0
}

type StrengthAssessment struct {
	StrengthScore            int          `json:"strength_score"`
	EntropyBits              float64      `json:"entropy_score"`
	CrackTimeSeconds         float64      `json:"crack_time_seconds"`
	CrackTimeDisplay         string       `json:"crack_time_readable"`
	AttackSuccessProbability int          `json:"attack_success_probability"`
	BehavioralRiskScore      int          `json:"behavioral_risk_score"`
	PatternsDetected         []PatternTag `json:"patterns_detected"`
	VulnerabilityFactors     []string     `json:"vulnerability_factors"`
	Recommendations          []string     `json:"recommendations"`
	RiskLevel                RiskLevel    `json:"risk_level"`
}

// PasswordAssessment pairs a strength assessment with the aggregated risk
// view derived from it.
type PasswordAssessment struct {
	Strength StrengthAssessment `json:"analysis"`
	Risk     *RiskSummary       `json:"overall_risk"`
}

// PatternAnalysis is the learner's view of a single password: which structural
// weaknesses it carries and how it scores on the 100-minus-15-per-tag scale.
type PatternAnalysis struct {
	Tags         []PatternTag `json:"patterns_found"`
	PatternScore int          `json:"pattern_score"`
	Length       int          `json:"length"`
	Complexity   int          `json:"complexity"`
}

type AttackConfig struct {
	Mode        AttackMode     `json:"attack_mode"`
	HashType    HashType       `json:"hash_type"`
	Metadata    TargetMetadata `json:"metadata,omitempty"`
	UserID      string         `json:"user_id,omitempty"`
	MaxAttempts int64          `json:"max_attempts,omitempty"`
	MaxLength   int            `json:"max_length,omitempty"`
	Charset     CharsetName    `json:"charset,omitempty"`
	Timeout     time.Duration  `json:"-"`
}

type AttackSession struct {
	ID              string          `json:"session_id"`
	TargetHash      string          `json:"target_hash"`
	HashType        HashType        `json:"hash_type"`
	Mode            AttackMode      `json:"attack_mode"`
	Status          SessionStatus   `json:"status"`
	StartTime       time.Time       `json:"start_time"`
	EndTime         time.Time       `json:"end_time,omitempty"`
	Attempts        int64           `json:"attempts"`
	Progress        float64         `json:"progress"`
	Config          AttackConfig    `json:"config"`
	ResourceMetrics ResourceMetrics `json:"resource_metrics,omitempty"`
	Result          *AttackResult   `json:"result,omitempty"`
}

type AttackResult struct {
	Cracked          *string          `json:"cracked"`
	Mode             AttackMode       `json:"attack_type"`
	Attempts         int64            `json:"attempts"`
	TimeTakenSeconds float64          `json:"time_taken"`
	RiskScore        int              `json:"risk_score"`
	PatternAnalysis  *PatternAnalysis `json:"pattern_analysis,omitempty"`
	RiskAssessment   *RiskSummary     `json:"risk_assessment,omitempty"`
}

// UserBehaviorProfile accumulates what the learner has observed about one
// user's passwords. Append-only for the lifetime of the process.
type UserBehaviorProfile struct {
	UserID           string             `json:"user_id"`
	PatternCounts    map[PatternTag]int `json:"pattern_counts"`
	PasswordLengths  []int              `json:"password_lengths"`
	ComplexityScores []int              `json:"complexity_scores"`
}

func (p *UserBehaviorProfile) AverageLength() float64 {
	if len(p.PasswordLengths) == 0 {
		return 8
	}
	sum := 0
	for _, l := range p.PasswordLengths {
		sum += l
	}
	return float64(sum) / float64(len(p.PasswordLengths))
}

type PhishingEmail struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
	Sender  string `json:"sender_email,omitempty"`
}

func (e PhishingEmail) Text() string {
	if e.Subject == "" {
		return e.Body
	}
	return e.Subject + " " + e.Body
}

type VishingCall struct {
	Script   string  `json:"call_script"`
	CallerID string  `json:"caller_id,omitempty"`
	Duration float64 `json:"call_duration"`
}

type CallerAnalysis struct {
	CallerID         string  `json:"caller_id"`
	CallDuration     float64 `json:"call_duration"`
	SuspiciousCaller bool    `json:"suspicious_caller"`
}

// ThreatAssessment is the shared result record for the phishing and vishing
// classifiers. CallerAnalysis and RiskFactors are populated for vishing only;
// SpoofedDomain is meaningful for phishing only.
type ThreatAssessment struct {
	RiskScore            int             `json:"risk_score"`
	UrgencyScore         int             `json:"urgency_score"`
	EmotionalScore       int             `json:"emotional_manipulation_score"`
	Tactics              []string        `json:"social_engineering_tactics"`
	SuspiciousIndicators []string        `json:"suspicious_indicators"`
	SpoofedDomain        bool            `json:"spoofed_domain_detected,omitempty"`
	CallerAnalysis       *CallerAnalysis `json:"caller_analysis,omitempty"`
	SuccessRate          float64         `json:"victim_success_rate"`
	RiskFactors          []string        `json:"risk_factors,omitempty"`
	Recommendations      []string        `json:"recommendations"`
	Assessment           string          `json:"overall_assessment"`
	RiskSummary          *RiskSummary    `json:"risk_assessment,omitempty"`
}

type RiskSummary struct {
	OverallRisk     int       `json:"overall_risk"`
	RiskLevel       RiskLevel `json:"risk_level"`
	Factors         []string  `json:"factors"`
	Recommendations []string  `json:"recommendations,omitempty"`
}

type ResourceMetrics struct {
	CPUUsage       float64   `json:"cpu_usage"`
	MemoryUsageMB  int64     `json:"memory_usage_mb"`
	AttemptsPerSec int64     `json:"attempts_per_sec"`
	TotalAttempts  int64     `json:"total_attempts"`
	ActiveWorkers  int       `json:"active_workers"`
	LastUpdated    time.Time `json:"last_updated"`
}

type SessionProgress struct {
	SessionID     string        `json:"sessionId"`
	Status        SessionStatus `json:"status"`
	Progress      float64       `json:"progress"`
	Attempts      int64         `json:"attempts"`
	Speed         int64         `json:"speed"`
	ActiveWorkers int           `json:"activeWorkers"`
}
