// Package vishing scores voice-call scripts the way phishing scores email,
// with two extra signals only calls have: the caller id presented and how
// long the call lasted.
package vishing

import (
	"math"
	"regexp"
	"strings"

	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/pkg/recommend"
)

const (
	authorityCap = 30
	urgencyCap   = 25
	threatCap    = 25
	dataCap      = 20

	tollFreeDelta = 20
	unknownDelta  = 15
	maskedDelta   = 10

	shortCallDelta = 10
	longCallDelta  = 5

	shortCallSeconds = 30
	longCallSeconds  = 600
)

var (
	authorityKeywords = []string{"irs", "fbi", "bank", "microsoft", "apple", "officer", "agent", "representative"}
	urgencyTerms      = []string{"urgent", "immediately", "asap", "now"}
	threatTerms       = []string{"suspended", "locked", "fraud", "legal action"}
	dataTerms         = []string{"verify", "confirm", "provide", "account number", "social security", "password"}

	urgencyPhrases = []string{
		"act immediately", "must verify", "verify now", "confirm immediately",
		"take action", "right now", "without delay",
	}

	fearTerms     = []string{"danger", "risk", "problem", "issue", "fraud", "attack"}
	authorityTone = []string{"official", "authorized", "legal", "government"}

	verificationIndicatorRe = regexp.MustCompile(`(?i)verify.*account|confirm.*identity|authenticate`)
	sensitiveIndicatorRe    = regexp.MustCompile(`(?i)account.*number|password|pin|social.*security|bank.*account`)
	pressureIndicatorRe     = regexp.MustCompile(`(?i)act.*now|immediate|urgency|right.*now`)
	threatIndicatorRe       = regexp.MustCompile(`(?i)legal.*action|law.*enforcement|fraud.*charge|suspension`)

	tollFreeRe = regexp.MustCompile(`^\+?1?800|^1-800`)
	unknownRe  = regexp.MustCompile(`(?i)unknown|blocked|private|anonymous`)
)

// Classifier is stateless and safe for concurrent use.
type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Analyze scores one call. The aggregate risk summary is attached by the
// service layer on the way out.
func (c *Classifier) Analyze(call domain.VishingCall) domain.ThreatAssessment {
	lower := strings.ToLower(call.Script)

	callerDelta, callerIndicators, suspicious := callerFindings(call.CallerID)
	durationDelta, durationIndicators := durationFindings(call.Duration)

	risk := capAt(scriptRisk(lower)+callerDelta+durationDelta, 100)
	tactics := detectTactics(lower)

	found := indicators(call.Script)
	found = append(found, callerIndicators...)
	found = append(found, durationIndicators...)

	callerID := call.CallerID
	if callerID == "" {
		callerID = "Not provided"
	}

	return domain.ThreatAssessment{
		RiskScore:            risk,
		UrgencyScore:         urgencyScore(lower),
		EmotionalScore:       emotionalScore(lower),
		Tactics:              tactics,
		SuspiciousIndicators: found,
		CallerAnalysis: &domain.CallerAnalysis{
			CallerID:         callerID,
			CallDuration:     call.Duration,
			SuspiciousCaller: suspicious,
		},
		SuccessRate:     successRate(risk, len(tactics)),
		RiskFactors:     riskFactors(tactics, suspicious),
		Recommendations: recommendations(),
		Assessment:      assessment(risk),
	}
}

func scriptRisk(lower string) int {
	score := 0
	score += capAt(countHits(lower, authorityKeywords)*12, authorityCap)
	score += capAt(countHits(lower, urgencyTerms)*10, urgencyCap)
	score += capAt(countHits(lower, threatTerms)*12, threatCap)
	score += capAt(countHits(lower, dataTerms)*8, dataCap)
	return score
}

// callerFindings maps caller-id shapes to score deltas: toll-free prefixes,
// withheld numbers, and masked or repeated-digit patterns. Any hit marks the
// caller suspicious.
func callerFindings(callerID string) (int, []string, bool) {
	if callerID == "" {
		return 0, nil, false
	}

	delta := 0
	var found []string

	if tollFreeRe.MatchString(callerID) {
		delta += tollFreeDelta
		found = append(found, "Toll-free or spoofed number pattern")
	}
	if unknownRe.MatchString(callerID) {
		delta += unknownDelta
		found = append(found, "Unknown or blocked caller ID")
	}
	if strings.Contains(callerID, "***") || containsAny(callerID, "000", "111", "222") {
		delta += maskedDelta
		found = append(found, "Masked or suspicious number pattern")
	}

	return delta, found, len(found) > 0
}

func durationFindings(duration float64) (int, []string) {
	if duration <= 0 {
		return 0, nil
	}
	if duration < shortCallSeconds {
		return shortCallDelta, []string{"Unusually short call duration"}
	}
	if duration > longCallSeconds {
		return longCallDelta, []string{"Unusually long call duration"}
	}
	return 0, nil
}

func urgencyScore(lower string) int {
	score := 0
	for _, phrase := range urgencyPhrases {
		score += strings.Count(lower, phrase) * 15
	}
	return capAt(score, 100)
}

func emotionalScore(lower string) int {
	score := countHits(lower, fearTerms)*10 + countHits(lower, authorityTone)*8
	return capAt(score, 100)
}

func detectTactics(lower string) []string {
	var tactics []string

	if containsAny(lower, "verify", "confirm", "authenticate") {
		tactics = append(tactics, "verification_request")
	}
	if containsAny(lower, "account number", "password", "pin", "social security") {
		tactics = append(tactics, "sensitive_data_harvesting")
	}
	if containsAny(lower, "irs", "fbi", "bank", "microsoft", "apple") {
		tactics = append(tactics, "authority_impersonation")
	}
	if containsAny(lower, "suspended", "locked", "fraud", "legal action") {
		tactics = append(tactics, "fear_tactics")
	}
	if containsAny(lower, "urgent", "immediately", "now", "asap") {
		tactics = append(tactics, "urgency_creation")
	}

	return tactics
}

func indicators(script string) []string {
	var out []string

	if verificationIndicatorRe.MatchString(script) {
		out = append(out, "Verification of account or identity requested")
	}
	if sensitiveIndicatorRe.MatchString(script) {
		out = append(out, "Request for sensitive financial information")
	}
	if pressureIndicatorRe.MatchString(script) {
		out = append(out, "High-pressure tactics used")
	}
	if threatIndicatorRe.MatchString(script) {
		out = append(out, "Threat of legal consequences")
	}

	return out
}

// successRate models the odds the call works: 80% of the risk score,
// amplified 15% when three or more tactics stack.
func successRate(risk, tacticCount int) float64 {
	rate := float64(risk) * 0.8
	if tacticCount >= 3 {
		rate *= 1.15
	}
	if rate > 100 {
		rate = 100
	}
	return math.Round(rate*100) / 100
}

func riskFactors(tactics []string, suspiciousCaller bool) []string {
	var factors []string

	if len(tactics) >= 3 {
		factors = append(factors, "Multiple social engineering tactics detected")
	}
	if hasTactic(tactics, "authority_impersonation") {
		factors = append(factors, "Impersonation of trusted authority figure")
	}
	if hasTactic(tactics, "fear_tactics") {
		factors = append(factors, "Fear-based manipulation tactics")
	}
	if hasTactic(tactics, "sensitive_data_harvesting") {
		factors = append(factors, "Attempts to harvest sensitive information")
	}
	if suspiciousCaller {
		factors = append(factors, "Suspicious or spoofed caller ID")
	}

	return factors
}

func recommendations() []string {
	recs := recommend.NewList()
	recs.Fill(
		"Verify caller identity through official channels before providing information",
		"Financial institutions never request passwords or PINs via phone",
		"Hang up and call back official phone numbers from verified sources",
		"Never provide passwords, PINs, or sensitive data over the phone",
		"Enable call filtering and authentication services on your phone",
		"Train employees on vishing tactics and reporting procedures",
	)
	return recs.Items()
}

func assessment(risk int) string {
	switch {
	case risk >= 80:
		return "CRITICAL - High probability of vishing attack"
	case risk >= 60:
		return "HIGH - Likely voice phishing attempt"
	case risk >= 40:
		return "MEDIUM - Possible social engineering"
	case risk >= 20:
		return "LOW - Minor concerns"
	default:
		return "MINIMAL - Appears legitimate"
	}
}

func capAt(score, limit int) int {
	if score > limit {
		return limit
	}
	return score
}

func countHits(lower string, words []string) int {
	count := 0
	for _, word := range words {
		if strings.Contains(lower, word) {
			count++
		}
	}
	return count
}

func containsAny(s string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

func hasTactic(tactics []string, want string) bool {
	for _, tactic := range tactics {
		if tactic == want {
			return true
		}
	}
	return false
}
