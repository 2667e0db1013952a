// Package phishing scores email text for the social-engineering signals an
// awareness program teaches people to spot: urgency language, threats,
// sensitive-data requests, link density, and sender spoofing.
package phishing

import (
	"math"
	"regexp"
	"strings"

	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/pkg/recommend"
)

const (
	urgencyCap   = 30
	threatCap    = 20
	linkCap      = 15
	sensitiveCap = 20

	grammarBonus = 10
	spoofBonus   = 15

	capsWordCap    = 20
	exclamationCap = 15
)

var (
	urgencyKeywords = []string{"urgent", "immediately", "asap", "act now", "verify now", "confirm identity"}
	threatWords     = []string{"suspended", "locked", "compromised", "unauthorized", "fraud", "attack"}
	sensitiveTerms  = []string{"password", "credit card", "social security", "bank account", "pin", "cvv"}

	urgencyPhrases = []string{
		"verify immediately", "confirm now", "act now", "urgent action required",
		"verify your account", "confirm your identity", "immediate action",
	}

	fearWords      = []string{"danger", "risk", "threat", "loss", "leak", "steal", "fraud", "attacked"}
	rewardWords    = []string{"bonus", "gift", "prize", "claim", "reward", "free"}
	authorityWords = []string{"bank", "paypal", "apple", "microsoft", "official", "administrator"}

	linkRe     = regexp.MustCompile(`https?://\S+`)
	capsWordRe = regexp.MustCompile(`\b[A-Z]{3,}\b`)
	grammarRe  = regexp.MustCompile(`(?i)\b(?:teh|recieve|occured|seperate|definately)\b`)

	verificationIndicatorRe = regexp.MustCompile(`(?i)verify.*account|confirm.*identity`)
	sensitiveIndicatorRe    = regexp.MustCompile(`(?i)password|credit card|bank account|social security`)
	pressureIndicatorRe     = regexp.MustCompile(`(?i)click.*here|verify.*now|act.*now`)

	spoofPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)@.*paypal.*\.com`),
		regexp.MustCompile(`(?i)@.*apple.*\.com`),
		regexp.MustCompile(`(?i)@.*amazon.*\.com`),
		regexp.MustCompile(`(?i)@.*bank.*\.com`),
		regexp.MustCompile(`(?i)support@.*\.tk`),
		regexp.MustCompile(`(?i)noreply@.*\.info`),
	}
)

// Classifier is stateless and safe for concurrent use.
type Classifier struct{}

func New() *Classifier {
	return &Classifier{}
}

// Analyze scores one email. The aggregate risk summary is attached by the
// service layer on the way out.
func (c *Classifier) Analyze(email domain.PhishingEmail) domain.ThreatAssessment {
	text := email.Text()
	lower := strings.ToLower(text)

	tactics := detectTactics(lower)
	risk := riskScore(text, lower, email.Sender)

	return domain.ThreatAssessment{
		RiskScore:            risk,
		UrgencyScore:         urgencyScore(text, lower),
		EmotionalScore:       emotionalScore(lower),
		Tactics:              tactics,
		SuspiciousIndicators: indicators(text),
		SpoofedDomain:        spoofedSender(email.Sender),
		SuccessRate:          successRate(risk, len(tactics)),
		Recommendations:      recommendations(tactics),
		Assessment:           assessment(risk),
	}
}

func riskScore(text, lower, sender string) int {
	score := 0

	score += capAt(countHits(lower, urgencyKeywords)*10, urgencyCap)
	score += capAt(countHits(lower, threatWords)*8, threatCap)
	score += capAt(len(linkRe.FindAllString(text, -1))*5, linkCap)
	score += capAt(countHits(lower, sensitiveTerms)*10, sensitiveCap)

	if grammarRe.MatchString(text) {
		score += grammarBonus
	}
	if sender != "" && spoofedSender(sender) {
		score += spoofBonus
	}

	return capAt(score, 100)
}

// urgencyScore counts repeated pressure phrases, shouted words, and
// exclamation marks. Unlike the keyword buckets, phrases score once per
// occurrence.
func urgencyScore(text, lower string) int {
	score := 0
	for _, phrase := range urgencyPhrases {
		score += strings.Count(lower, phrase) * 10
	}

	score += capAt(len(capsWordRe.FindAllString(text, -1))*3, capsWordCap)
	score += capAt(strings.Count(text, "!")*2, exclamationCap)

	return capAt(score, 100)
}

func emotionalScore(lower string) int {
	score := countHits(lower, fearWords)*8 +
		countHits(lower, rewardWords)*6 +
		countHits(lower, authorityWords)*7
	return capAt(score, 100)
}

func detectTactics(lower string) []string {
	var tactics []string

	if anyContains(lower, "verify", "confirm", "authenticate") {
		tactics = append(tactics, "verification_request")
	}
	if anyContains(lower, "password", "credit card", "ssn") {
		tactics = append(tactics, "data_harvesting")
	}
	if anyContains(lower, "bank", "paypal", "apple", "microsoft") {
		tactics = append(tactics, "authority_impersonation")
	}
	if anyContains(lower, "urgent", "immediately", "asap") {
		tactics = append(tactics, "urgency_tactics")
	}

	return tactics
}

func indicators(text string) []string {
	var out []string

	if verificationIndicatorRe.MatchString(text) {
		out = append(out, "Requests account verification or identity confirmation")
	}
	if sensitiveIndicatorRe.MatchString(text) {
		out = append(out, "Requests sensitive financial or personal information")
	}
	if pressureIndicatorRe.MatchString(text) {
		out = append(out, "Pressing tone with immediate action requested")
	}
	if grammarRe.MatchString(text) {
		out = append(out, "Contains spelling or grammatical errors")
	}

	return out
}

func spoofedSender(sender string) bool {
	if sender == "" {
		return false
	}
	for _, pattern := range spoofPatterns {
		if pattern.MatchString(sender) {
			return true
		}
	}
	return false
}

// successRate models how likely a recipient is to fall for the email: the
// risk score amplified 5% per detected tactic.
func successRate(risk, tacticCount int) float64 {
	rate := float64(risk) * (1 + 0.05*float64(tacticCount))
	if rate > 100 {
		rate = 100
	}
	return math.Round(rate*100) / 100
}

func recommendations(tactics []string) []string {
	recs := recommend.NewList()

	recs.Add(hasTactic(tactics, "urgency_tactics"), "Be wary of messages demanding immediate action")
	recs.Add(hasTactic(tactics, "authority_impersonation"), "Verify requests from official sources through known channels")
	recs.Add(hasTactic(tactics, "data_harvesting"), "Never provide sensitive information via email or links")
	recs.Fill(
		"Hover over links before clicking to verify the URL",
		"Check sender email address carefully for spoofing attempts",
		"Enable multi-factor authentication on email accounts",
		"Report suspicious emails to your IT security team",
	)

	return recs.Items()
}

func assessment(risk int) string {
	switch {
	case risk >= 80:
		return "CRITICAL - Highly likely to be phishing"
	case risk >= 60:
		return "HIGH - Probable phishing attempt"
	case risk >= 40:
		return "MEDIUM - Suspicious indicators present"
	case risk >= 20:
		return "LOW - Minor concerns detected"
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

func anyContains(lower string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(lower, word) {
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
