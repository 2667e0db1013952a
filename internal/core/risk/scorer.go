// Package risk is the last stage every assessment passes through before it
// leaves the core: a raw 0-100 score becomes a banded risk level plus the
// factor and recommendation lists that travel with it.
package risk

import (
	"threatScoringBackend/internal/core/domain"
	"threatScoringBackend/internal/pkg/recommend"
)

// Level bands a password-scale score into five levels.
func Level(score int) domain.RiskLevel {
	switch {
	case score >= 80:
		return domain.RiskCritical
	case score >= 60:
		return domain.RiskHigh
	case score >= 40:
		return domain.RiskMedium
	case score >= 20:
		return domain.RiskLow
	default:
		return domain.RiskVeryLow
	}
}

// ThreatLevel bands a phishing or vishing score. This scale has no Very Low
// band; anything under 40 is Low.
func ThreatLevel(score int) domain.RiskLevel {
	switch {
	case score >= 80:
		return domain.RiskCritical
	case score >= 60:
		return domain.RiskHigh
	case score >= 40:
		return domain.RiskMedium
	default:
		return domain.RiskLow
	}
}

// ForAttack summarizes a finished attack run. An uncracked password reports
// Low rather than Very Low.
func ForAttack(result domain.AttackResult) *domain.RiskSummary {
	if result.Cracked == nil {
		return &domain.RiskSummary{
			OverallRisk: 0,
			RiskLevel:   domain.RiskLow,
			Factors:     []string{"Password not cracked in simulation"},
		}
	}

	analysis := result.PatternAnalysis

	var factors []string
	if analysis != nil {
		if analysis.PatternScore < 50 {
			factors = append(factors, "Weak password strength")
		}
		if len(analysis.Tags) > 2 {
			factors = append(factors, "Multiple weak patterns detected")
		}
		if analysis.Length < 8 {
			factors = append(factors, "Password too short")
		}
		if analysis.Complexity < 3 {
			factors = append(factors, "Insufficient character variety")
		}
	}
	if result.Attempts < 100 {
		factors = append(factors, "Cracked with minimal attempts")
	}

	return &domain.RiskSummary{
		OverallRisk:     result.RiskScore,
		RiskLevel:       Level(result.RiskScore),
		Factors:         factors,
		Recommendations: attackRecommendations(result.RiskScore, analysis),
	}
}

// ForStrength summarizes a strength assessment. The pattern analysis supplies
// the structural facts the assessment itself does not carry.
func ForStrength(strength domain.StrengthAssessment, analysis domain.PatternAnalysis) *domain.RiskSummary {
	var factors []string
	if strength.StrengthScore < 50 {
		factors = append(factors, "Weak password strength")
	}
	if len(analysis.Tags) > 2 {
		factors = append(factors, "Multiple weak patterns detected")
	}
	if analysis.Length < 8 {
		factors = append(factors, "Password too short")
	}
	if analysis.Complexity < 3 {
		factors = append(factors, "Insufficient character variety")
	}

	overall := strength.AttackSuccessProbability
	return &domain.RiskSummary{
		OverallRisk:     overall,
		RiskLevel:       Level(overall),
		Factors:         factors,
		Recommendations: attackRecommendations(overall, &analysis),
	}
}

// ForPhishing summarizes a phishing assessment, reusing the classifier's own
// recommendations.
func ForPhishing(a domain.ThreatAssessment) *domain.RiskSummary {
	return threatSummary(a, "High phishing likelihood detected")
}

// ForVishing summarizes a vishing assessment.
func ForVishing(a domain.ThreatAssessment) *domain.RiskSummary {
	return threatSummary(a, "High vishing likelihood detected")
}

func threatSummary(a domain.ThreatAssessment, likelihoodFactor string) *domain.RiskSummary {
	var factors []string
	if a.RiskScore > 70 {
		factors = append(factors, likelihoodFactor)
	}
	if a.UrgencyScore > 50 {
		factors = append(factors, "High urgency indicators")
	}
	if a.EmotionalScore > 50 {
		factors = append(factors, "Emotional manipulation tactics identified")
	}
	if len(a.SuspiciousIndicators) > 5 {
		factors = append(factors, "Multiple suspicious keywords found")
	}

	return &domain.RiskSummary{
		OverallRisk:     a.RiskScore,
		RiskLevel:       ThreatLevel(a.RiskScore),
		Factors:         factors,
		Recommendations: a.Recommendations,
	}
}

func attackRecommendations(riskScore int, analysis *domain.PatternAnalysis) []string {
	recs := recommend.NewList()
	recs.Add(riskScore > 70, "CRITICAL: Change password immediately")
	recs.Add(riskScore > 70, "Use a password manager to generate strong passwords")
	if analysis != nil {
		recs.Add(analysis.Length < 12, "Use passwords with at least 12 characters")
		recs.Add(analysis.Complexity < 4, "Include uppercase, lowercase, numbers, and special characters")
		recs.Add(len(analysis.Tags) > 0, "Avoid common patterns like sequential numbers or keyboard walks")
	}
	if recs.Len() == 0 {
		recs.Add(true, "Password appears strong, maintain current practices")
	}
	return recs.Items()
}
