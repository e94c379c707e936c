package inflexion

import "strings"

// Noun is a word bound to the rule that matched it at lookup time.
// Forms are computed on each call.
type Noun struct {
	word string
	rule *Rule
}

// Inflection lists every form of a noun at once.
type Inflection struct {
	Word      string `json:"word" yaml:"word"`
	Rule      string `json:"rule" yaml:"rule"`
	Singular  string `json:"singular" yaml:"singular"`
	Plural    string `json:"plural" yaml:"plural"`
	Modern    string `json:"modern" yaml:"modern"`
	Classical string `json:"classical" yaml:"classical"`
}

// Word returns the text the noun was looked up with.
func (n Noun) Word() string { return n.word }

// Rule returns the rule bound to the noun.
func (n Noun) Rule() *Rule {
	if n.rule == nil {
		return defaultRule
	}
	return n.rule
}

// IsSingular reports whether the word is already singular.
func (n Noun) IsSingular() bool {
	ok, err := n.Rule().IsSingular(n.word)
	return err == nil && ok
}

// IsPlural reports whether the word is already plural.
func (n Noun) IsPlural() bool {
	ok, err := n.Rule().IsPlural(n.word)
	return err == nil && ok
}

// Singular returns the singular form.
func (n Noun) Singular() string {
	return n.form(n.Rule().Singularize)
}

// Plural returns the preferred plural form. A word with no rule of its
// own that already ends in "s" is taken to be plural and returned as
// is, so an unlisted singular such as "lens" is not pluralized.
func (n Noun) Plural() string {
	return n.plural(n.Rule().Pluralize)
}

// ModernPlural returns the modern plural form.
func (n Noun) ModernPlural() string {
	return n.plural(n.Rule().PluralizeModern)
}

// ClassicalPlural returns the classical plural form, falling back to
// the modern one.
func (n Noun) ClassicalPlural() string {
	return n.plural(n.Rule().PluralizeClassical)
}

// Forms returns all forms of the noun.
func (n Noun) Forms() Inflection {
	return Inflection{
		Word:      n.word,
		Rule:      n.Rule().Kind().String(),
		Singular:  n.Singular(),
		Plural:    n.Plural(),
		Modern:    n.ModernPlural(),
		Classical: n.ClassicalPlural(),
	}
}

func (n Noun) String() string { return n.word }

// plural keeps a default-rule word that already ends in "s": without
// data for it, "results" is read as the plural of "result".
func (n Noun) plural(f func(string) (string, error)) string {
	if n.Rule().Kind() == RuleDefault && strings.HasSuffix(n.word, "s") {
		return n.word
	}
	return n.form(f)
}

func (n Noun) form(f func(string) (string, error)) string {
	out, err := f(n.word)
	if err != nil {
		return n.word
	}
	return out
}
