package inflexion

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	commentPrefix = "#"
	ruleArrow     = "=>"
)

// Load reads predefined rules in the noun database grammar:
//
//	child => children
//	formula => formulas|formulae
//	-trix => -trices|-trixes
//	*fish => *fish
//	(SING)-in-law => (PL)-in-law
//
// A leading "*" or "-" marks a categorical rule with a complete or
// incomplete affix, "(SING)" a compound rule, anything else an
// irregular noun.
func (db *Nouns) Load(r io.Reader) error {
	return db.load(r, tierPredefined)
}

// LoadUser reads rules in the same grammar into the user tiers.
func (db *Nouns) LoadUser(r io.Reader) error {
	return db.load(r, tierUser)
}

func (db *Nouns) load(r io.Reader, t tier) error {
	before := db.Stats()
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		if err := db.define(line, t); err != nil {
			return errors.Wrapf(err, "line %d", lineNo)
		}
	}
	if err := sc.Err(); err != nil {
		return errors.Wrap(err, "read noun rules")
	}
	after := db.Stats()
	db.log.Info("noun rules loaded",
		zap.Stringer("tier", t),
		zap.Int("lines", lineNo),
		zap.Int("irregulars", after.Irregulars+after.UserIrregulars-before.Irregulars-before.UserIrregulars),
		zap.Int("rules", after.Rules+after.UserRules-before.Rules-before.UserRules))
	return nil
}

// definition is one parsed database line.
type definition struct {
	singular  string
	modern    string
	classical string
}

func parseDefinition(line string) (definition, error) {
	parts := strings.Split(line, ruleArrow)
	if len(parts) != 2 {
		return definition{}, errors.Newf("expected exactly one %q in %q", ruleArrow, line)
	}
	d := definition{singular: strings.TrimSpace(parts[0])}
	if d.singular == "" {
		return definition{}, errors.Newf("missing singular in %q", line)
	}
	plurals := strings.Split(parts[1], "|")
	if len(plurals) > 2 {
		return definition{}, errors.Newf("more than two plurals in %q", line)
	}
	d.modern = strings.TrimSpace(plurals[0])
	if len(plurals) == 2 {
		d.classical = strings.TrimSpace(plurals[1])
	}
	if d.modern == "" && d.classical == "" {
		return definition{}, errors.Newf("no plural in %q", line)
	}
	return d, nil
}

// spaced returns d with inner hyphens turned into spaces, and whether
// anything changed. A leading category marker is not an inner hyphen.
func (d definition) spaced() (definition, bool) {
	out := definition{
		singular:  spaceHyphens(d.singular),
		modern:    spaceHyphens(d.modern),
		classical: spaceHyphens(d.classical),
	}
	return out, out != d
}

func spaceHyphens(pattern string) string {
	if pattern == "" {
		return pattern
	}
	head, rest := pattern[:1], pattern[1:]
	if head != "-" && head != "*" {
		head = strings.ReplaceAll(head, "-", " ")
	}
	return head + strings.ReplaceAll(rest, "-", " ")
}

func (db *Nouns) define(line string, t tier) error {
	d, err := parseDefinition(line)
	if err != nil {
		return err
	}
	if err := db.register(d, t); err != nil {
		return err
	}
	if sp, ok := d.spaced(); ok {
		return db.register(sp, t)
	}
	return nil
}

func (db *Nouns) register(d definition, t tier) error {
	switch {
	case strings.Contains(d.singular, "(SING)"):
		return db.registerCompound(d, t)
	case strings.HasPrefix(d.singular, "*"):
		return db.registerCategorical(d, t, CompleteAffix)
	case strings.HasPrefix(d.singular, "-"):
		return db.registerCategorical(d, t, IncompleteAffix)
	default:
		r, err := NewIrregularRule(d.singular, d.modern, d.classical, false)
		if err != nil {
			return err
		}
		db.addIrregular(r, t)
		return nil
	}
}

func (db *Nouns) registerCategorical(d definition, t tier, mk func(string) (*Affix, error)) error {
	affix := func(pattern string) (*Affix, error) {
		if pattern == "" {
			return nil, nil
		}
		return mk(strings.TrimLeft(pattern, "*-"))
	}
	sing, err := affix(d.singular)
	if err != nil {
		return err
	}
	modern, err := affix(d.modern)
	if err != nil {
		return err
	}
	classical, err := affix(d.classical)
	if err != nil {
		return err
	}
	r, err := NewCategoricalRule(sing, modern, classical)
	if err != nil {
		return err
	}
	db.addRules(t, r)
	return nil
}

func (db *Nouns) registerCompound(d definition, t tier) error {
	shapeOf := func(pattern string) (shape, error) {
		if pattern == "" {
			return nil, nil
		}
		return parseShape(pattern)
	}
	sing, err := shapeOf(d.singular)
	if err != nil {
		return err
	}
	modern, err := shapeOf(d.modern)
	if err != nil {
		return err
	}
	classical, err := shapeOf(d.classical)
	if err != nil {
		return err
	}
	rules, err := newCompoundRules(db, sing, modern, classical)
	if err != nil {
		return err
	}
	db.addRules(t, rules...)
	return nil
}

// LoadPrepositions reads one preposition per line. Blank lines and
// lines starting with "#" are skipped.
func LoadPrepositions(r io.Reader) (*Prepositions, error) {
	p := NewPrepositions()
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}
		p.add(line)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "read prepositions")
	}
	return p, nil
}
