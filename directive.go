package inflexion

import (
	"fmt"
	"strconv"
	"strings"
)

// DirectiveKind tells what a Directive does when executed.
type DirectiveKind int

const (
	DirectiveLiteral DirectiveKind = iota
	DirectiveVariable
	DirectiveNumeric
	DirectiveNoun
	DirectiveSequence
)

func (k DirectiveKind) String() string {
	switch k {
	case DirectiveLiteral:
		return "literal"
	case DirectiveVariable:
		return "variable"
	case DirectiveNumeric:
		return "numeric"
	case DirectiveNoun:
		return "noun"
	case DirectiveSequence:
		return "sequence"
	default:
		return fmt.Sprintf("DirectiveKind(%d)", int(k))
	}
}

// Directive is one compiled step of a template. Build directives with
// the constructors below; only numeric and noun directives carry
// options, and only of their own type.
type Directive struct {
	kind DirectiveKind

	// text is the literal text, the variable name, the noun word, or
	// the name a numeric or noun directive reads its value from.
	text  string
	value int
	ref   bool

	numeric  NumericOptions
	noun     NounOptions
	children []Directive
}

// Literal emits text verbatim.
func Literal(text string) Directive {
	return Directive{kind: DirectiveLiteral, text: text}
}

// Variable emits the value bound to name.
func Variable(name string) Directive {
	return Directive{kind: DirectiveVariable, text: name}
}

// NumericValue sets the count to n.
func NumericValue(n int, opts NumericOptions) Directive {
	return Directive{kind: DirectiveNumeric, value: n, numeric: opts}
}

// NumericRef sets the count to the integer bound to name.
func NumericRef(name string, opts NumericOptions) Directive {
	return Directive{kind: DirectiveNumeric, text: name, ref: true, numeric: opts}
}

// NounText emits word inflected for the current count.
func NounText(word string, opts NounOptions) Directive {
	return Directive{kind: DirectiveNoun, text: word, noun: opts}
}

// NounRef emits the string bound to name inflected for the current
// count.
func NounRef(name string, opts NounOptions) Directive {
	return Directive{kind: DirectiveNoun, text: name, ref: true, noun: opts}
}

// Sequence runs children in order, sharing the count and article
// state of the enclosing template.
func Sequence(children ...Directive) Directive {
	return Directive{kind: DirectiveSequence, children: children}
}

// Kind returns the directive kind.
func (d Directive) Kind() DirectiveKind { return d.kind }

// Text returns the literal text, variable name or noun word.
func (d Directive) Text() string { return d.text }

// IsRef reports whether a numeric or noun directive reads its value
// from a binding.
func (d Directive) IsRef() bool { return d.ref }

// Value returns the literal count of a numeric directive.
func (d Directive) Value() int { return d.value }

// NumericOptions returns the options of a numeric directive.
func (d Directive) NumericOptions() (NumericOptions, bool) {
	return d.numeric, d.kind == DirectiveNumeric
}

// NounOptions returns the options of a noun directive.
func (d Directive) NounOptions() (NounOptions, bool) {
	return d.noun, d.kind == DirectiveNoun
}

// Children returns the directives of a sequence.
func (d Directive) Children() []Directive {
	return append([]Directive(nil), d.children...)
}

func (d Directive) String() string {
	body := d.text
	if d.ref {
		body = "$" + d.text
	}
	switch d.kind {
	case DirectiveLiteral:
		return strconv.Quote(d.text)
	case DirectiveVariable:
		return "$" + d.text
	case DirectiveNumeric:
		if !d.ref {
			body = strconv.Itoa(d.value)
		}
		return "<#:" + body + ">"
	case DirectiveNoun:
		return "<n:" + body + ">"
	case DirectiveSequence:
		parts := make([]string, len(d.children))
		for i, c := range d.children {
			parts[i] = c.String()
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return d.kind.String()
	}
}
