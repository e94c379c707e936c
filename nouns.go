package inflexion

import (
	"go.uber.org/zap"
)

// Nouns is the tiered rule database. Lookups walk the tiers in order:
// user irregulars, user rules, predefined irregulars, predefined rules,
// then the default rule.
//
// A Nouns is safe for concurrent lookups. Registration methods
// (Load, LoadUser, AddUserIrregular, AddUserRule) must complete before
// lookups start on other goroutines.
type Nouns struct {
	preps *Prepositions
	log   *zap.Logger

	userIrregulars map[string]*Rule
	userRules      []*Rule
	irregulars     map[string]*Rule
	rules          []*Rule
}

// Stats counts the entries of each tier.
type Stats struct {
	UserIrregulars int `json:"user_irregulars" yaml:"user_irregulars"`
	UserRules      int `json:"user_rules" yaml:"user_rules"`
	Irregulars     int `json:"irregulars" yaml:"irregulars"`
	Rules          int `json:"rules" yaml:"rules"`
	Prepositions   int `json:"prepositions" yaml:"prepositions"`
}

type tier int

const (
	tierPredefined tier = iota
	tierUser
)

func (t tier) String() string {
	if t == tierUser {
		return "user"
	}
	return "predefined"
}

// NewNouns returns an empty database. preps may be nil, in which case
// no compound rule with a preposition slot ever matches.
func NewNouns(preps *Prepositions, log *zap.Logger) *Nouns {
	if log == nil {
		log = zap.NewNop()
	}
	return &Nouns{
		preps:          preps,
		log:            log,
		userIrregulars: make(map[string]*Rule),
		irregulars:     make(map[string]*Rule),
	}
}

// Noun looks word up and binds it to the first matching rule.
func (db *Nouns) Noun(word string) Noun {
	return db.lookup(word, true)
}

// RuleFor returns the rule that word resolves to.
func (db *Nouns) RuleFor(word string) *Rule {
	return db.lookup(word, true).Rule()
}

func (db *Nouns) lookup(word string, compounds bool) Noun {
	if r, ok := db.userIrregulars[word]; ok {
		return Noun{word: word, rule: r}
	}
	if r := firstMatch(db.userRules, word, compounds); r != nil {
		return Noun{word: word, rule: r}
	}
	if r, ok := db.irregulars[word]; ok {
		return Noun{word: word, rule: r}
	}
	if r := firstMatch(db.rules, word, compounds); r != nil {
		return Noun{word: word, rule: r}
	}
	return Noun{word: word, rule: defaultRule}
}

func firstMatch(rules []*Rule, word string, compounds bool) *Rule {
	for _, r := range rules {
		if !compounds && r.kind == RuleCompound {
			continue
		}
		if r.Matches(word) {
			return r
		}
	}
	return nil
}

func (db *Nouns) prepositions() *Prepositions {
	return db.preps
}

// Prepositions returns the preposition set used by compound rules.
func (db *Nouns) Prepositions() *Prepositions {
	return db.preps
}

// AddUserIrregular registers an irregular noun ahead of every
// predefined rule. With preferClassical the classical plural becomes
// the preferred one. A later registration of the same form replaces
// the earlier one.
func (db *Nouns) AddUserIrregular(singular, modern, classical string, preferClassical bool) error {
	r, err := NewIrregularRule(singular, modern, classical, preferClassical)
	if err != nil {
		return err
	}
	for _, form := range []string{singular, modern, classical} {
		if form != "" {
			db.userIrregulars[form] = r
		}
	}
	db.log.Debug("user irregular registered",
		zap.String("singular", singular),
		zap.String("modern", modern),
		zap.String("classical", classical))
	return nil
}

// AddUserRule parses one line of the noun database grammar into the
// user tiers.
func (db *Nouns) AddUserRule(line string) error {
	return db.define(line, tierUser)
}

// addIrregular registers r under each of its forms. In the predefined
// tier the first registration of a form wins.
func (db *Nouns) addIrregular(r *Rule, t tier) {
	table := db.irregulars
	if t == tierUser {
		table = db.userIrregulars
	}
	f := r.irregular
	for _, form := range []string{f.singular, f.modern, f.classical} {
		if form == "" {
			continue
		}
		if _, taken := table[form]; taken && t == tierPredefined {
			continue
		}
		table[form] = r
	}
}

func (db *Nouns) addRules(t tier, rules ...*Rule) {
	if t == tierUser {
		db.userRules = append(db.userRules, rules...)
		return
	}
	db.rules = append(db.rules, rules...)
}

// Stats reports the size of each tier. Irregulars are counted by
// registered form.
func (db *Nouns) Stats() Stats {
	return Stats{
		UserIrregulars: len(db.userIrregulars),
		UserRules:      len(db.userRules),
		Irregulars:     len(db.irregulars),
		Rules:          len(db.rules),
		Prepositions:   db.preps.Len(),
	}
}
