// Package patterns holds the structural weakness rules shared by the strength
// analyzer and the pattern learner. Every rule is a pure predicate over the
// candidate text; metadata containment is the only rule that needs context.
package patterns

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"threatScoringBackend/internal/core/domain"
)

var (
	keyboardWalks   = []string{"qwerty", "asdfgh", "zxcvbn", "12345", "qazwsx", "qweasd"}
	dictionaryWords = []string{"password", "admin", "user", "login", "welcome"}

	// Leet-speak substitution pairs in either direction (0/o, l/1, i/!, s/$, a/@).
	substitutionRe = regexp.MustCompile(`(?i)[0o][0o]|l1|i!|\$s|@a`)

	// Four-digit years, separator-delimited day/month pairs, or long digit runs
	// that look like compacted dates.
	dateRe = regexp.MustCompile(`(19|20)\d{2}|\d{1,2}[/.-]\d{1,2}|\d{6,}`)
)

// Core runs the six metadata-free rules in fixed order. The order is part of
// the contract: dependent scorers report tags exactly as produced here.
func Core(password string) []domain.PatternTag {
	var tags []domain.PatternTag

	if HasSequentialRun(password) {
		tags = append(tags, domain.TagSequential)
	}
	if HasKeyboardWalk(password) {
		tags = append(tags, domain.TagKeyboardWalk)
	}
	if HasRepeatRun(password) {
		tags = append(tags, domain.TagRepetitive)
	}
	if HasDictionaryWord(password) {
		tags = append(tags, domain.TagDictionaryWord)
	}
	if HasSubstitution(password) {
		tags = append(tags, domain.TagCommonSubstitution)
	}
	if HasDatePattern(password) {
		tags = append(tags, domain.TagDatePattern)
	}

	return tags
}

// Detect runs the full rule table, appending the metadata containment tags
// after the core six.
func Detect(password string, md domain.TargetMetadata) []domain.PatternTag {
	tags := Core(password)

	lower := strings.ToLower(password)
	if md.Username != "" && strings.Contains(lower, strings.ToLower(md.Username)) {
		tags = append(tags, domain.TagContainsUsername)
	}
	if md.Name != "" && strings.Contains(lower, strings.ToLower(md.Name)) {
		tags = append(tags, domain.TagContainsName)
	}

	return tags
}

// HasSequentialRun reports a run of three characters ascending by codepoint.
func HasSequentialRun(s string) bool {
	runes := []rune(s)
	for i := 0; i+2 < len(runes); i++ {
		if runes[i+1] == runes[i]+1 && runes[i+2] == runes[i+1]+1 {
			return true
		}
	}
	return false
}

// HasRepeatRun reports a run of three or more identical characters.
func HasRepeatRun(s string) bool {
	runes := []rune(s)
	for i := 0; i+2 < len(runes); i++ {
		if runes[i] == runes[i+1] && runes[i+1] == runes[i+2] {
			return true
		}
	}
	return false
}

func HasKeyboardWalk(s string) bool {
	lower := strings.ToLower(s)
	for _, walk := range keyboardWalks {
		if strings.Contains(lower, walk) {
			return true
		}
	}
	return false
}

func HasDictionaryWord(s string) bool {
	lower := strings.ToLower(s)
	for _, word := range dictionaryWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}

func HasSubstitution(s string) bool {
	return substitutionRe.MatchString(s)
}

func HasDatePattern(s string) bool {
	return dateRe.MatchString(s)
}

// ContainsUserInfo reports whether the password embeds any known identity
// field, case-insensitively. Empty fields never match.
func ContainsUserInfo(password string, md domain.TargetMetadata) bool {
	lower := strings.ToLower(password)
	for _, info := range []string{md.Username, md.Name, md.Email} {
		if info != "" && strings.Contains(lower, strings.ToLower(info)) {
			return true
		}
	}
	return false
}

// ContainsDateToken reports whether the password embeds the compacted
// date-of-birth or any four-digit year between 1950 and the current year.
func ContainsDateToken(password, dob string) bool {
	if dob != "" {
		compacted := []string{
			strings.ReplaceAll(dob, "-", ""),
			strings.ReplaceAll(dob, "/", ""),
		}
		for _, part := range compacted {
			if part != "" && strings.Contains(password, part) {
				return true
			}
		}
	}

	currentYear := time.Now().Year()
	for year := 1950; year <= currentYear; year++ {
		if strings.Contains(password, strconv.Itoa(year)) {
			return true
		}
	}
	return false
}

// ClassPresence reports which of the four character classes appear.
func ClassPresence(s string) (lower, upper, digit, special bool) {
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
			lower = true
		case c >= 'A' && c <= 'Z':
			upper = true
		case c >= '0' && c <= '9':
			digit = true
		case strings.ContainsRune(domain.CharsetSpecial, c):
			special = true
		}
	}
	return
}

// Complexity counts the character classes present, 0 through 4.
func Complexity(s string) int {
	lower, upper, digit, special := ClassPresence(s)
	count := 0
	for _, present := range []bool{lower, upper, digit, special} {
		if present {
			count++
		}
	}
	return count
}
