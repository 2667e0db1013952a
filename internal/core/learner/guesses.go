package learner

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"threatScoringBackend/internal/core/domain"
)

// guessSeeds primes every guess list before any learned signal is applied.
var guessSeeds = []string{
	"password", "123456", "12345678", "qwerty", "abc123",
	"password123", "admin", "welcome", "letmein", "monkey",
}

// Exemplar tokens per tag. Global exemplars favor recent years and common
// first names; profile exemplars favor the short fragments users actually
// recycle.
var globalExemplars = map[domain.PatternTag][]string{
	domain.TagDatePattern:    {"2024", "2023", "2022", "2021", "2020"},
	domain.TagDictionaryWord: {"John", "Mary", "David", "Sarah", "Michael"},
}

var profileExemplars = map[domain.PatternTag][]string{
	domain.TagSequential:  {"123", "1234", "12345", "abc", "qwerty"},
	domain.TagDatePattern: {"1990", "2000", "1985", "1995"},
}

// GenerateGuesses builds an ordered candidate list from four layers: fixed
// seeds, exemplars for the top global tags, exemplars for the user's top
// tags biased toward their average password length, and deterministic
// metadata derivations. The result is deduplicated in first-seen order and
// capped at 50 entries.
func (s *Service) GenerateGuesses(md domain.TargetMetadata, userID string) []string {
	candidates := make([]string, 0, maxGuesses)
	candidates = append(candidates, guessSeeds...)

	for _, tag := range topTags(s.GlobalTagCounts(), globalTagLimit) {
		candidates = append(candidates, globalExemplars[tag]...)
	}

	if userID != "" {
		if profile, ok := s.profiles.Get(userID); ok {
			candidates = append(candidates, profileTokens(profile)...)
		}
	}

	candidates = append(candidates, metadataTokens(md)...)

	return dedupe(candidates, maxGuesses)
}

func profileTokens(profile domain.UserBehaviorProfile) []string {
	var tokens []string
	for _, tag := range topTags(profile.PatternCounts, profileTagLimit) {
		tokens = append(tokens, profileExemplars[tag]...)
	}

	average := profile.AverageLength()
	sort.SliceStable(tokens, func(i, j int) bool {
		return math.Abs(float64(len(tokens[i]))-average) < math.Abs(float64(len(tokens[j]))-average)
	})
	return tokens
}

func metadataTokens(md domain.TargetMetadata) []string {
	var tokens []string

	if md.Name != "" {
		lower := strings.ToLower(md.Name)
		tokens = append(tokens,
			lower,
			lower+"123",
			lower+"1234",
			capitalize(md.Name)+"1",
			lower+"!",
			lower+"@123",
		)
	}

	if md.DateOfBirth != "" {
		tokens = append(tokens, dateTokens(md.DateOfBirth, strings.ToLower(md.Name))...)
	}

	return tokens
}

// dateTokens derives guessable fragments from a YYYY-MM-DD date of birth;
// other formats contribute the leading four characters as a year.
func dateTokens(dob, nameLower string) []string {
	var year, month, day string
	if parts := strings.Split(dob, "-"); len(parts) == 3 {
		year, month, day = parts[0], parts[1], parts[2]
	} else if len(dob) >= 4 {
		year = dob[:4]
	}
	if year == "" {
		return nil
	}

	tokens := []string{year}
	if month != "" {
		tokens = append(tokens, month+year)
		if day != "" {
			tokens = append(tokens, day+month+year)
		}
	}
	tokens = append(tokens, "password"+year)
	if nameLower != "" {
		tokens = append(tokens, nameLower+year)
	}
	return tokens
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(strings.ToLower(s))
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func dedupe(candidates []string, limit int) []string {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]string, 0, limit)

	for _, candidate := range candidates {
		if candidate == "" {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		out = append(out, candidate)
		if len(out) == limit {
			break
		}
	}
	return out
}
