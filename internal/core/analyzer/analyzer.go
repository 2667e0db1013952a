// Package analyzer scores candidate passwords for an awareness report:
// additive strength score, Shannon-style entropy estimate, expected crack
// time, behavioral reuse risk, and remediation advice.
package analyzer

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/core/patterns"
	"threatScoringBackend/internal/pkg/recommend"
)

const (
	longLengthBonus   = 20
	mediumLengthBonus = 10
	shortLengthBonus  = 5
	classBonus        = 15
	classBonusCap     = 60

	commonPasswordPenalty = 40
	sequentialPenalty     = 15
	repetitivePenalty     = 10
	userInfoPenalty       = 20
	dateTokenPenalty      = 15

	reuseIndicatorRisk = 20
	identityRisk       = 25
	dateTokenRisk      = 15
	commonPasswordRisk = 40

	// Crack-time model: an attacker covering half the keyspace at a
	// billion guesses per second, floored so callers never divide by zero.
	guessesPerSecond = 1e9
	minCrackSeconds  = 0.1
)

var commonPasswords = []string{
	"password", "123456", "123456789", "qwerty", "password123",
	"12345678", "111111", "1234567", "123123", "1234567890",
	"000000", "555555", "666666", "123321", "654321",
	"superman", "letmein", "welcome", "monkey", "dragon",
	"admin", "master", "iloveyou", "login", "passw0rd",
}

var reuseIndicators = []string{"password", "pass", "123", "qwerty"}

// Analyzer is a stateless scorer. One instance is safe for concurrent use.
type Analyzer struct {
	common map[string]struct{}
}

func New() *Analyzer {
	common := make(map[string]struct{}, len(commonPasswords))
	for _, entry := range commonPasswords {
		common[entry] = struct{}{}
	}
	return &Analyzer{common: common}
}

// Analyze produces a full strength assessment for the password. Metadata is
// optional; an empty TargetMetadata disables the identity checks. The
// aggregate risk level is assigned by the service layer on the way out.
func (a *Analyzer) Analyze(password string, md domain.TargetMetadata) domain.StrengthAssessment {
	tags := patterns.Detect(password, md)
	strength := a.strengthScore(password, md)
	entropy := entropyBits(password)
	crack := crackSeconds(entropy)

	return domain.StrengthAssessment{
		StrengthScore:            strength,
		EntropyBits:              entropy,
		CrackTimeSeconds:         crack,
		CrackTimeDisplay:         formatCrackTime(crack),
		AttackSuccessProbability: 100 - strength,
		BehavioralRiskScore:      a.behavioralRisk(password, md),
		PatternsDetected:         tags,
		VulnerabilityFactors:     vulnerabilities(password, tags),
		Recommendations:          recommendations(strength, password, tags),
	}
}

// IsCommon reports whether the lower-cased password exactly matches an entry
// in the common-password set.
func (a *Analyzer) IsCommon(password string) bool {
	_, ok := a.common[strings.ToLower(password)]
	return ok
}

func (a *Analyzer) strengthScore(password string, md domain.TargetMetadata) int {
	length := utf8.RuneCountInString(password)

	score := shortLengthBonus
	switch {
	case length >= 8:
		score = longLengthBonus
	case length >= 6:
		score = mediumLengthBonus
	}

	bonus := patterns.Complexity(password) * classBonus
	if bonus > classBonusCap {
		bonus = classBonusCap
	}
	score += bonus

	if a.IsCommon(password) {
		score -= commonPasswordPenalty
	}
	if patterns.HasSequentialRun(password) {
		score -= sequentialPenalty
	}
	if patterns.HasRepeatRun(password) {
		score -= repetitivePenalty
	}
	if patterns.ContainsUserInfo(password, md) {
		score -= userInfoPenalty
	}
	if patterns.ContainsDateToken(password, md.DateOfBirth) {
		score -= dateTokenPenalty
	}

	return clampScore(score)
}

// behavioralRisk estimates how likely the password is to be reused or
// guessed from public facts about the user.
func (a *Analyzer) behavioralRisk(password string, md domain.TargetMetadata) int {
	risk := 0
	lower := strings.ToLower(password)

	if a.IsCommon(password) {
		risk += commonPasswordRisk
	}
	for _, indicator := range reuseIndicators {
		if strings.Contains(lower, indicator) {
			risk += reuseIndicatorRisk
			break
		}
	}
	if patterns.ContainsUserInfo(password, md) {
		risk += identityRisk
	}
	if patterns.ContainsDateToken(password, md.DateOfBirth) {
		risk += dateTokenRisk
	}

	return clampScore(risk)
}

func entropyBits(password string) float64 {
	lower, upper, digit, special := patterns.ClassPresence(password)

	size := 0
	if lower {
		size += 26
	}
	if upper {
		size += 26
	}
	if digit {
		size += 10
	}
	if special {
		size += 32
	}
	if size == 0 {
		return 0
	}

	bits := float64(utf8.RuneCountInString(password)) * math.Log2(float64(size))
	return math.Round(bits*100) / 100
}

func crackSeconds(entropy float64) float64 {
	seconds := math.Pow(2, entropy) / 2 / guessesPerSecond
	if seconds < minCrackSeconds {
		seconds = minCrackSeconds
	}
	return math.Round(seconds*100) / 100
}

func formatCrackTime(seconds float64) string {
	switch {
	case seconds < 1:
		return "< 1 second"
	case seconds < 60:
		return fmt.Sprintf("%.0f seconds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%.0f minutes", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%.0f hours", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%.0f days", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%.0f months", seconds/2592000)
	default:
		return fmt.Sprintf("%.0f years", seconds/31536000)
	}
}

func vulnerabilities(password string, tags []domain.PatternTag) []string {
	var factors []string
	_, upper, digit, special := patterns.ClassPresence(password)

	if utf8.RuneCountInString(password) < 8 {
		factors = append(factors, "Password is too short (< 8 characters)")
	}
	if !upper {
		factors = append(factors, "Missing uppercase letters")
	}
	if !digit {
		factors = append(factors, "Missing numeric characters")
	}
	if !special {
		factors = append(factors, "Missing special characters")
	}
	if hasTag(tags, domain.TagSequential) {
		factors = append(factors, "Contains sequential characters (abc, 123)")
	}
	if hasTag(tags, domain.TagRepetitive) {
		factors = append(factors, "Contains repetitive characters (aaa, 111)")
	}
	if hasTag(tags, domain.TagKeyboardWalk) {
		factors = append(factors, "Contains keyboard patterns (qwerty, asdf)")
	}
	if hasTag(tags, domain.TagDictionaryWord) {
		factors = append(factors, "Contains common dictionary words")
	}

	return factors
}

func recommendations(strength int, password string, tags []domain.PatternTag) []string {
	recs := recommend.NewList()

	recs.Add(strength < 40, "Create a strong password: at least 12 characters with mixed case, numbers, and symbols")
	recs.Add(strength >= 40 && strength < 70, "Strengthen password: add more character variety")
	recs.Add(hasTag(tags, domain.TagSequential) || hasTag(tags, domain.TagKeyboardWalk), "Avoid patterns like 'abc123' or 'qwerty'")
	recs.Add(hasTag(tags, domain.TagDictionaryWord), "Use uncommon words or create a passphrase")
	recs.Add(patterns.Complexity(password) < 4, "Use a mix of: Uppercase, lowercase, numbers, and symbols")
	recs.Fill(
		"Never reuse passwords across different accounts",
		"Use a password manager to generate and store complex passwords",
		"Enable multi-factor authentication (MFA) wherever possible",
	)

	return recs.Items()
}

func hasTag(tags []domain.PatternTag, want domain.PatternTag) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
