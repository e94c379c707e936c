package inflexion

import (
	"fmt"
	"regexp"
	"strings"
)

// RuleKind tells which of the four inflection strategies a Rule uses.
type RuleKind int

const (
	RuleDefault RuleKind = iota
	RuleIrregular
	RuleCategorical
	RuleCompound
)

func (k RuleKind) String() string {
	switch k {
	case RuleDefault:
		return "default"
	case RuleIrregular:
		return "irregular"
	case RuleCategorical:
		return "categorical"
	case RuleCompound:
		return "compound"
	default:
		return fmt.Sprintf("RuleKind(%d)", int(k))
	}
}

// Rule is a noun inflection rule. Exactly one of the variant payloads is
// set, chosen by kind; every operation dispatches on kind. Rules are
// never modified after construction.
type Rule struct {
	kind        RuleKind
	irregular   *irregularForms
	categorical *affixSet
	compound    *compoundRule
}

// irregularForms lists the fixed forms of one word. Empty plural means
// the form does not exist.
type irregularForms struct {
	singular        string
	modern          string
	classical       string
	preferClassical bool
}

type affixSet struct {
	singular  *Affix
	modern    *Affix
	classical *Affix
}

var defaultRule = &Rule{kind: RuleDefault}

// DefaultRule returns the fallback rule matching every noun.
func DefaultRule() *Rule {
	return defaultRule
}

// NewIrregularRule builds an exact-match rule. At least one plural must
// be given.
func NewIrregularRule(singular, modern, classical string, preferClassical bool) (*Rule, error) {
	if singular == "" {
		return nil, wrapf(ErrInvalidRule, "irregular rule needs a singular form")
	}
	if modern == "" && classical == "" {
		return nil, wrapf(ErrInvalidRule, "irregular rule for %q has neither modern nor classical plural", singular)
	}
	return &Rule{
		kind: RuleIrregular,
		irregular: &irregularForms{
			singular:        singular,
			modern:          modern,
			classical:       classical,
			preferClassical: preferClassical,
		},
	}, nil
}

// NewCategoricalRule builds an affix rule. modern or classical may be
// nil, but not both.
func NewCategoricalRule(singular, modern, classical *Affix) (*Rule, error) {
	if singular == nil {
		return nil, wrapf(ErrInvalidRule, "categorical rule needs a singular affix")
	}
	if modern == nil && classical == nil {
		return nil, wrapf(ErrInvalidRule, "categorical rule %s has neither modern nor classical plural", singular)
	}
	return &Rule{
		kind:        RuleCategorical,
		categorical: &affixSet{singular: singular, modern: modern, classical: classical},
	}, nil
}

// Kind returns the rule variant.
func (r *Rule) Kind() RuleKind {
	return r.kind
}

func (r *Rule) String() string {
	switch r.kind {
	case RuleIrregular:
		f := r.irregular
		return fmt.Sprintf("irregular %s => %s|%s", f.singular, f.modern, f.classical)
	case RuleCategorical:
		a := r.categorical
		return fmt.Sprintf("categorical %s => %s|%s", a.singular, a.modern, a.classical)
	case RuleCompound:
		return "compound " + r.compound.matcher.String()
	default:
		return "default"
	}
}

// Matches reports whether noun belongs to this rule.
func (r *Rule) Matches(noun string) bool {
	switch r.kind {
	case RuleIrregular:
		return r.irregular.isSingular(noun) || r.irregular.isPlural(noun)
	case RuleCategorical:
		return r.categorical.singular.Has(noun) || r.categorical.hasPlural(noun)
	case RuleCompound:
		return r.compound.matches(noun)
	default:
		return true
	}
}

// IsSingular reports whether noun is in singular form under this rule.
func (r *Rule) IsSingular(noun string) (bool, error) {
	switch r.kind {
	case RuleIrregular:
		switch {
		case r.irregular.isSingular(noun):
			return true, nil
		case r.irregular.isPlural(noun):
			return false, nil
		}
	case RuleCategorical:
		switch {
		case r.categorical.singular.Has(noun):
			return true, nil
		case r.categorical.hasPlural(noun):
			return false, nil
		}
	case RuleCompound:
		head, ok := r.compound.head(noun)
		if ok {
			return head.IsSingular(), nil
		}
	default:
		return !strings.HasSuffix(noun, "s"), nil
	}
	return false, r.foreign(noun)
}

// IsPlural reports whether noun is in plural form under this rule.
func (r *Rule) IsPlural(noun string) (bool, error) {
	if r.kind == RuleDefault {
		return strings.HasSuffix(noun, "s"), nil
	}
	singular, err := r.IsSingular(noun)
	if err != nil {
		return false, err
	}
	return !singular, nil
}

// Singularize returns the singular form of noun.
func (r *Rule) Singularize(noun string) (string, error) {
	switch r.kind {
	case RuleIrregular:
		if r.irregular.isSingular(noun) || r.irregular.isPlural(noun) {
			return r.irregular.singular, nil
		}
	case RuleCategorical:
		a := r.categorical
		switch {
		case a.singular.Has(noun):
			return noun, nil
		case a.modern != nil && a.modern.Has(noun):
			return a.singular.Attach(a.modern.Strip(noun)), nil
		case a.classical != nil && a.classical.Has(noun):
			return a.singular.Attach(a.classical.Strip(noun)), nil
		}
	case RuleCompound:
		if out, ok := r.compound.render(noun, r.compound.singular, Noun.Singular); ok {
			return out, nil
		}
	default:
		switch {
		case strings.HasSuffix(noun, "ses"):
			return noun[:len(noun)-3], nil
		case strings.HasSuffix(noun, "s"):
			return noun[:len(noun)-1], nil
		}
		return noun, nil
	}
	return "", r.foreign(noun)
}

// Pluralize returns the preferred plural form of noun: modern first,
// classical when no modern form exists.
func (r *Rule) Pluralize(noun string) (string, error) {
	switch r.kind {
	case RuleIrregular:
		if r.irregular.isSingular(noun) || r.irregular.isPlural(noun) {
			return r.irregular.plural(), nil
		}
	case RuleCategorical:
		a := r.categorical
		switch {
		case a.singular.Has(noun):
			stem := a.singular.Strip(noun)
			if a.modern == nil {
				return a.classical.Attach(stem), nil
			}
			return a.modern.Attach(stem), nil
		case a.hasPlural(noun):
			return noun, nil
		}
	case RuleCompound:
		c := r.compound
		tmpl := c.modern
		if tmpl == nil {
			tmpl = c.classical
		}
		if out, ok := c.render(noun, tmpl, Noun.Plural); ok {
			return out, nil
		}
	default:
		if strings.HasSuffix(noun, "s") {
			return noun + "es", nil
		}
		return noun + "s", nil
	}
	return "", r.foreign(noun)
}

// PluralizeModern returns the modern plural, or the classical one when
// the rule has no modern form.
func (r *Rule) PluralizeModern(noun string) (string, error) {
	switch r.kind {
	case RuleIrregular:
		if !r.Matches(noun) {
			break
		}
		if r.irregular.modern == "" {
			return r.irregular.classical, nil
		}
		return r.irregular.modern, nil
	case RuleCategorical:
		a := r.categorical
		if a.modern == nil {
			return r.PluralizeClassical(noun)
		}
		return a.reattach(noun, a.modern)
	case RuleCompound:
		c := r.compound
		if c.modern == nil {
			return r.PluralizeClassical(noun)
		}
		if out, ok := c.render(noun, c.modern, Noun.ModernPlural); ok {
			return out, nil
		}
	default:
		return r.Pluralize(noun)
	}
	return "", r.foreign(noun)
}

// PluralizeClassical returns the classical plural, or the modern one
// when the rule has no classical form.
func (r *Rule) PluralizeClassical(noun string) (string, error) {
	switch r.kind {
	case RuleIrregular:
		if !r.Matches(noun) {
			break
		}
		if r.irregular.classical == "" {
			return r.irregular.modern, nil
		}
		return r.irregular.classical, nil
	case RuleCategorical:
		a := r.categorical
		if a.classical == nil {
			return a.reattach(noun, a.modern)
		}
		return a.reattach(noun, a.classical)
	case RuleCompound:
		c := r.compound
		if c.classical == nil {
			if out, ok := c.render(noun, c.modern, Noun.ModernPlural); ok {
				return out, nil
			}
			break
		}
		if out, ok := c.render(noun, c.classical, Noun.ClassicalPlural); ok {
			return out, nil
		}
	default:
		return r.Pluralize(noun)
	}
	return "", r.foreign(noun)
}

func (r *Rule) foreign(noun string) error {
	return wrapf(ErrForeignNoun, "noun %q under %s", noun, r)
}

func (f *irregularForms) isSingular(noun string) bool {
	return strings.EqualFold(noun, f.singular)
}

func (f *irregularForms) isPlural(noun string) bool {
	return (f.modern != "" && strings.EqualFold(noun, f.modern)) ||
		(f.classical != "" && strings.EqualFold(noun, f.classical))
}

func (f *irregularForms) plural() string {
	if f.preferClassical && f.classical != "" {
		return f.classical
	}
	if f.modern == "" {
		return f.classical
	}
	return f.modern
}

func (a *affixSet) hasPlural(noun string) bool {
	return (a.modern != nil && a.modern.Has(noun)) ||
		(a.classical != nil && a.classical.Has(noun))
}

// reattach brings noun back to its singular stem and applies target.
func (a *affixSet) reattach(noun string, target *Affix) (string, error) {
	switch {
	case a.singular.Has(noun):
		return target.Attach(a.singular.Strip(noun)), nil
	case a.modern != nil && a.modern.Has(noun):
		return target.Attach(a.modern.Strip(noun)), nil
	case a.classical != nil && a.classical.Has(noun):
		return target.Attach(a.classical.Strip(noun)), nil
	}
	return "", wrapf(ErrForeignNoun, "noun %q under categorical %s", noun, a.singular)
}

// slotKind identifies what fills one piece of a compound template.
type slotKind int

const (
	slotText slotKind = iota
	slotNoun
	slotPreposition
	slotScratch
)

type segment struct {
	kind slotKind
	text string
}

// shape is a compound noun layout, e.g. "(SING)-in-law".
type shape []segment

var shapeTokens = regexp.MustCompile(`\(SING\)|\(PL\)|\(PREP\)|\*`)

// parseShape splits a compound form into literal text and slots.
func parseShape(pattern string) (shape, error) {
	var out shape
	seen := map[slotKind]bool{}
	last := 0
	for _, loc := range shapeTokens.FindAllStringIndex(pattern, -1) {
		if loc[0] > last {
			out = append(out, segment{kind: slotText, text: pattern[last:loc[0]]})
		}
		var k slotKind
		switch pattern[loc[0]:loc[1]] {
		case "(SING)", "(PL)":
			k = slotNoun
		case "(PREP)":
			k = slotPreposition
		default:
			k = slotScratch
		}
		if seen[k] {
			return nil, wrapf(ErrInvalidRule, "compound form %q repeats a slot", pattern)
		}
		seen[k] = true
		out = append(out, segment{kind: k})
		last = loc[1]
	}
	if last < len(pattern) {
		out = append(out, segment{kind: slotText, text: pattern[last:]})
	}
	if !seen[slotNoun] {
		return nil, wrapf(ErrInvalidRule, "compound form %q has no noun slot", pattern)
	}
	return out, nil
}

func (s shape) has(k slotKind) bool {
	for _, seg := range s {
		if seg.kind == k {
			return true
		}
	}
	return false
}

// pattern turns the shape into an anchored matcher with named groups.
func (s shape) pattern() (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteByte('^')
	for _, seg := range s {
		switch seg.kind {
		case slotNoun:
			sb.WriteString(`(?P<noun>\w+)`)
		case slotPreposition:
			sb.WriteString(`(?P<preposition>\w+)`)
		case slotScratch:
			sb.WriteString(`(?P<scratch>\w+)`)
		default:
			sb.WriteString(regexp.QuoteMeta(seg.text))
		}
	}
	sb.WriteByte('$')
	return regexp.Compile(sb.String())
}

func (s shape) fill(head, preposition, scratch string) string {
	var sb strings.Builder
	for _, seg := range s {
		switch seg.kind {
		case slotNoun:
			sb.WriteString(head)
		case slotPreposition:
			sb.WriteString(preposition)
		case slotScratch:
			sb.WriteString(scratch)
		default:
			sb.WriteString(seg.text)
		}
	}
	return sb.String()
}

// compoundRule recognizes one written form of a compound noun and
// rebuilds any other form around the inflected head.
type compoundRule struct {
	nouns          *Nouns
	matcher        *regexp.Regexp
	singular       shape
	modern         shape
	classical      shape
	hasPreposition bool
}

// newCompoundRules builds one rule per written form (singular, modern,
// classical) so that any of them is recognized.
func newCompoundRules(nouns *Nouns, singular, modern, classical shape) ([]*Rule, error) {
	hasPrep := singular.has(slotPreposition)
	var rules []*Rule
	for _, s := range []shape{singular, modern, classical} {
		if s == nil {
			continue
		}
		re, err := s.pattern()
		if err != nil {
			return nil, wrapf(err, "compile compound pattern")
		}
		rules = append(rules, &Rule{
			kind: RuleCompound,
			compound: &compoundRule{
				nouns:          nouns,
				matcher:        re,
				singular:       singular,
				modern:         modern,
				classical:      classical,
				hasPreposition: hasPrep,
			},
		})
	}
	return rules, nil
}

func (c *compoundRule) groups(noun string) (map[string]string, bool) {
	m := c.matcher.FindStringSubmatch(noun)
	if m == nil {
		return nil, false
	}
	out := make(map[string]string, 3)
	for i, name := range c.matcher.SubexpNames() {
		if name != "" {
			out[name] = m[i]
		}
	}
	return out, true
}

func (c *compoundRule) matches(noun string) bool {
	g, ok := c.groups(noun)
	if !ok {
		return false
	}
	if c.hasPreposition {
		return c.nouns.prepositions().Contains(g["preposition"])
	}
	return true
}

// head resolves the head noun. Compound rules are skipped for the head,
// so decomposition goes one level deep.
func (c *compoundRule) head(noun string) (Noun, bool) {
	g, ok := c.groups(noun)
	if !ok {
		return Noun{}, false
	}
	return c.nouns.lookup(g["noun"], false), true
}

func (c *compoundRule) render(noun string, tmpl shape, form func(Noun) string) (string, bool) {
	if tmpl == nil {
		return "", false
	}
	g, ok := c.groups(noun)
	if !ok {
		return "", false
	}
	head := c.nouns.lookup(g["noun"], false)
	return tmpl.fill(form(head), g["preposition"], g["scratch"]), true
}
