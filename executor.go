package inflexion

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// piece is one unit of executor output: either text, or the article
// slot a numeric directive reserved (slot >= 0).
type piece struct {
	text string
	slot int
}

// execution is the state of one Execute call.
type execution struct {
	nouns    *Nouns
	bindings map[string]any

	singular bool
	pending  int      // slot awaiting its noun, -1 when none
	articles []string // article per slot, "" until its noun is seen
	out      []piece
}

// Execute runs the template against bindings. Numeric directives need
// a Go integer that fits in an int, noun directives a string.
func (t *Template) Execute(bindings map[string]any) (string, error) {
	ex := &execution{
		nouns:    t.env.Nouns(),
		bindings: bindings,
		pending:  -1,
	}
	if err := ex.run(t.directives); err != nil {
		return "", err
	}
	return ex.render()
}

// run walks the directives with an explicit stack; a sequence pushes
// its children, which finish before the rest of the enclosing list.
func (ex *execution) run(directives []Directive) error {
	stack := [][]Directive{directives}
	for len(stack) > 0 {
		top := len(stack) - 1
		if len(stack[top]) == 0 {
			stack = stack[:top]
			continue
		}
		d := stack[top][0]
		stack[top] = stack[top][1:]

		switch d.kind {
		case DirectiveLiteral:
			ex.emit(d.text)
		case DirectiveVariable:
			v, err := ex.lookup(d.text)
			if err != nil {
				return err
			}
			ex.emit(fmt.Sprint(v))
		case DirectiveNumeric:
			n, err := ex.resolveCount(d)
			if err != nil {
				return err
			}
			if err := ex.numeric(n, d.numeric); err != nil {
				return err
			}
		case DirectiveNoun:
			word, err := ex.word(d)
			if err != nil {
				return err
			}
			ex.noun(word, d.noun)
		case DirectiveSequence:
			stack = append(stack, d.children)
		default:
			return errors.Wrapf(ErrUnsupportedDirective, "%s", d.kind)
		}
	}
	return nil
}

func (ex *execution) lookup(name string) (any, error) {
	v, ok := ex.bindings[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnboundVariable, "$%s", name)
	}
	return v, nil
}

func (ex *execution) resolveCount(d Directive) (int, error) {
	if !d.ref {
		return d.value, nil
	}
	v, err := ex.lookup(d.text)
	if err != nil {
		return 0, err
	}
	n, ok := asInt(v)
	if !ok {
		return 0, errors.Wrapf(ErrTypeMismatch, "$%s is %T, numeric directive needs an integer", d.text, v)
	}
	return n, nil
}

func (ex *execution) word(d Directive) (string, error) {
	if !d.ref {
		return d.text, nil
	}
	v, err := ex.lookup(d.text)
	if err != nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", errors.Wrapf(ErrTypeMismatch, "$%s is %T, noun directive needs a string", d.text, v)
	}
	return s, nil
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), n <= math.MaxInt
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), n <= math.MaxInt
	default:
		return 0, false
	}
}

func (ex *execution) emit(text string) {
	ex.out = append(ex.out, piece{text: text, slot: -1})
}

func (ex *execution) numeric(n int, o NumericOptions) error {
	if o.Increment {
		n += o.IncrementAmount
	}
	ex.singular = n == 1 || (n == 0 && o.SingularZero)

	rep := strconv.Itoa(n)
	eligible := true
	if o.ZeroAsNo && n == 0 {
		rep = "no"
		eligible = false
	}
	slot := -1
	if o.UseArticle && n == 1 {
		slot = len(ex.articles)
		ex.articles = append(ex.articles, "")
		ex.pending = slot
		eligible = false
	}
	if o.SuppressOutput {
		return nil
	}

	var err error
	if eligible && o.CardinalForm {
		if rep, err = CardinalBelow(n, o.CardinalThreshold); err != nil {
			return err
		}
	}
	if eligible && o.OrdinalForm {
		long := o.CardinalForm && n < o.CardinalThreshold
		if rep, err = OrdinalBelow(n, o.OrdinalThreshold, long); err != nil {
			return err
		}
		if n < o.OrdinalThreshold {
			n, ex.singular = 1, true
		}
	}
	if eligible && o.SummarizeForm {
		rep = Summarize(n, o.SummarizeAtEnd)
	}

	if slot >= 0 {
		ex.out = append(ex.out, piece{slot: slot})
		return nil
	}
	ex.emit(rep)
	return nil
}

func (ex *execution) noun(word string, o NounOptions) {
	n := ex.nouns.Noun(word)
	plural := o.ForcePlural || (!ex.singular && !o.ForceSingular)

	var form string
	switch {
	case !plural:
		form = n.Singular()
	case o.Classical:
		form = n.ClassicalPlural()
	default:
		form = n.Plural()
	}
	ex.emit(form)

	if ex.pending >= 0 {
		ex.articles[ex.pending] = PickIndefinite(form)
		ex.pending = -1
	}
}

// render joins the output, filling each article slot.
func (ex *execution) render() (string, error) {
	var sb strings.Builder
	for _, p := range ex.out {
		if p.slot < 0 {
			sb.WriteString(p.text)
			continue
		}
		article := ex.articles[p.slot]
		if article == "" {
			return "", errors.Wrapf(ErrDanglingArticle, "article %d", p.slot)
		}
		sb.WriteString(article)
	}
	return sb.String(), nil
}
