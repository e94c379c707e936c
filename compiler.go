package inflexion

import (
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Template is a compiled template. It is immutable and may be executed
// concurrently with different bindings.
type Template struct {
	env        *Environment
	source     string
	directives []Directive
}

// NewTemplate builds a template from directives directly. It is the
// only way to use Sequence directives.
func NewTemplate(env *Environment, directives ...Directive) *Template {
	return &Template{env: env, directives: directives}
}

// Source returns the template text, empty for templates built with
// NewTemplate.
func (t *Template) Source() string { return t.source }

// Directives returns a copy of the compiled directive list.
func (t *Template) Directives() []Directive {
	return append([]Directive(nil), t.directives...)
}

// Compile turns template into a directive list. Tokenizing errors
// abort at once with a *TokenizeError. Every other problem is
// collected and returned together in a *FormatError.
func (e *Environment) Compile(template string) (*Template, error) {
	var (
		out      []Directive
		problems []Problem
	)
	for tok, err := range Tokens(template) {
		if err != nil {
			e.log.Debug("template does not tokenize", zap.String("template", template), zap.Error(err))
			return nil, err
		}
		switch {
		case strings.HasPrefix(tok.Text, "<"):
			d, probs := e.compileDirective(tok)
			problems = append(problems, probs...)
			if len(probs) == 0 {
				out = append(out, d)
			}
		case len(tok.Text) > 1 && tok.Text[0] == '$':
			out = append(out, Variable(tok.Text[1:]))
		default:
			out = append(out, Literal(unescape(tok.Text)))
		}
	}
	if len(problems) > 0 {
		e.log.Debug("template has problems", zap.String("template", template), zap.Int("problems", len(problems)))
		return nil, &FormatError{Template: template, Problems: problems}
	}
	return &Template{env: e, source: template, directives: out}, nil
}

// compileDirective parses "<K opts:body>".
func (e *Environment) compileDirective(tok Token) (Directive, []Problem) {
	inner := tok.Text[1 : len(tok.Text)-1]
	if inner == "" {
		return Directive{}, []Problem{{Pos: tok.Pos, Part: tok.Text, Message: "Empty directive"}}
	}
	kind := inner[0]
	colon := strings.IndexByte(inner, ':')
	if colon < 0 {
		return Directive{}, []Problem{{
			Pos:     tok.Pos,
			Part:    tok.Text,
			Message: "Missing body for " + string(kind) + " directive",
		}}
	}
	scan := &optionScan{
		opts: inner[1:colon],
		base: tok.Pos + 2,
		part: tok.Text,
		log:  e.log,
	}
	body := inner[colon+1:]
	bodyPos := tok.Pos + 1 + colon + 1

	switch kind {
	case '#':
		opts := parseNumericOptions(scan)
		if name, ok := refName(body); ok {
			return NumericRef(name, opts), scan.problems
		}
		n, err := strconv.Atoi(strings.TrimSpace(body))
		if err != nil {
			scan.problems = append(scan.problems, Problem{
				Pos:     bodyPos,
				Part:    tok.Text,
				Message: "Non-integer parameter '" + body + "' to # directive",
			})
		}
		return NumericValue(n, opts), scan.problems
	case 'n', 'N':
		opts := parseNounOptions(scan)
		if name, ok := refName(body); ok {
			return NounRef(name, opts), scan.problems
		}
		return NounText(unescape(body), opts), scan.problems
	default:
		return Directive{}, []Problem{{
			Pos:     tok.Pos,
			Part:    tok.Text,
			Message: "Unhandled directive type " + string(kind),
		}}
	}
}

func refName(body string) (string, bool) {
	body = strings.TrimSpace(body)
	if len(body) > 1 && body[0] == '$' {
		return body[1:], true
	}
	return "", false
}

// unescape drops each backslash and keeps the character after it.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		sb.WriteByte(s[i])
	}
	return sb.String()
}
