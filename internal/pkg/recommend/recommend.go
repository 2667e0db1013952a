// Package recommend builds the bounded advice lists returned by every scorer.
// Each scorer declares its triggered rules in priority order and tops the list
// up with generic filler; the cap and first-seen deduplication live here so
// the behavior stays identical across domains.
package recommend

// Cap is the maximum number of recommendations any assessment carries.
const Cap = 5

type List struct {
	items []string
	seen  map[string]struct{}
}

func NewList() *List {
	return &List{seen: make(map[string]struct{})}
}

// Add appends text when cond holds. Duplicates and entries past the cap are
// dropped silently.
func (l *List) Add(cond bool, text string) {
	if !cond || len(l.items) >= Cap {
		return
	}
	if _, dup := l.seen[text]; dup {
		return
	}
	l.seen[text] = struct{}{}
	l.items = append(l.items, text)
}

// Fill appends generic advice until the cap is reached.
func (l *List) Fill(texts ...string) {
	for _, t := range texts {
		l.Add(true, t)
	}
}

func (l *List) Len() int {
	return len(l.items)
}

// Items returns the accumulated recommendations, at most Cap entries.
func (l *List) Items() []string {
	return l.items
}
