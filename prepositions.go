package inflexion

import (
	"sort"
	"strings"
)

// Prepositions is the set of words accepted in the (PREP) slot of a
// compound noun rule. It is read-only once loaded.
type Prepositions struct {
	words map[string]struct{}
}

// NewPrepositions returns a set holding the given words, lowercased.
func NewPrepositions(words ...string) *Prepositions {
	p := &Prepositions{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		p.add(w)
	}
	return p
}

func (p *Prepositions) add(word string) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word != "" {
		p.words[word] = struct{}{}
	}
}

// Contains reports whether word is a known preposition.
func (p *Prepositions) Contains(word string) bool {
	if p == nil {
		return false
	}
	_, ok := p.words[strings.ToLower(word)]
	return ok
}

// Len returns the number of prepositions.
func (p *Prepositions) Len() int {
	if p == nil {
		return 0
	}
	return len(p.words)
}

// Words returns the prepositions in sorted order.
func (p *Prepositions) Words() []string {
	out := make([]string, 0, p.Len())
	if p == nil {
		return out
	}
	for w := range p.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
