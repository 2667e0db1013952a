package attack

import (
	"strings"
	"unicode"
)

// corpus lists the passwords seen most often in public breach dumps. Order
// matters: earlier entries are tried first in every list-driven mode.
var corpus = []string{
	"password", "123456", "12345678", "qwerty", "abc123",
	"password123", "admin", "welcome", "letmein", "monkey",
	"123456789", "1234567890", "1234", "12345", "1234567",
	"dragon", "baseball", "football", "master", "hello",
	"shadow", "superman", "qwertyuiop", "123qwe", "trustno1",
}

// mutationSource caps how many corpus entries get rule mutations.
const mutationSource = 50

// Candidates expands the corpus with rule mutations of its leading entries,
// deduplicated preserving first-seen order.
func Candidates() []string {
	limit := len(corpus)
	if limit > mutationSource {
		limit = mutationSource
	}

	out := make([]string, 0, len(corpus)*12)
	out = append(out, corpus...)
	for _, word := range corpus[:limit] {
		out = append(out, mutations(word)...)
	}
	return dedupe(out)
}

// mutations applies the append, case, and prefix rules to one word.
func mutations(word string) []string {
	return []string{
		word + "1",
		word + "12",
		word + "123",
		word + "!",
		word + "@",
		word + "#",
		capitalize(word),
		strings.ToUpper(word),
		"1" + word,
		"123" + word,
		"!" + word,
	}
}

func capitalize(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))

	for _, word := range words {
		if word == "" {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	return out
}
