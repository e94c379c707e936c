package inflexion

import (
	"fmt"
	"math"
	"strconv"
	"unicode/utf8"

	"go.uber.org/zap"
)

// NumericOptions controls how a numeric directive sets the count and
// what it prints.
type NumericOptions struct {
	Increment      bool
	SingularZero   bool
	ZeroAsNo       bool
	UseArticle     bool
	SuppressOutput bool
	CardinalForm   bool
	OrdinalForm    bool
	SummarizeForm  bool

	IncrementAmount   int
	CardinalThreshold int
	OrdinalThreshold  int
	SummarizeAtEnd    bool
}

// DefaultNumericOptions returns the options of a bare "<#:n>".
func DefaultNumericOptions() NumericOptions {
	return NumericOptions{
		IncrementAmount:   1,
		CardinalThreshold: 11,
		OrdinalThreshold:  math.MaxInt,
	}
}

// NounOptions controls which form a noun directive prints.
type NounOptions struct {
	Classical     bool
	ForcePlural   bool
	ForceSingular bool
}

// optionScan holds what one option string parse needs to report
// problems against the template.
type optionScan struct {
	opts    string
	base    int // template offset of opts
	part    string
	log     *zap.Logger
	numeric bool

	problems []Problem
}

func (s *optionScan) problem(at int, format string, args ...any) {
	s.problems = append(s.problems, Problem{
		Pos:     s.base + at,
		Part:    s.part,
		Message: fmt.Sprintf(format, args...),
	})
}

// walk feeds each option letter to letter and each digit run to param
// together with the letter it follows (0 when none). Once an uppercase
// letter has been seen, letters are folded to lowercase and later
// lowercase letters are dropped along with their parameters.
func (s *optionScan) walk(letter func(c byte, at int), param func(prev byte, value string, at int)) {
	var prev byte
	folding, dropped := false, false
	digits := -1

	flush := func(end int) {
		if digits < 0 {
			return
		}
		if !dropped {
			param(prev, s.opts[digits:end], digits)
		}
		digits = -1
	}

	for i := 0; i < len(s.opts); i++ {
		c := s.opts[i]
		if isDigit(c) || (s.numeric && (c == '-' || c == '+')) {
			if digits < 0 {
				digits = i
			}
			continue
		}
		flush(i)
		if c == ' ' {
			continue
		}
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s.opts[i:])
			s.problem(i, "Unhandled option %c", r)
			i += size - 1
			dropped = true
			continue
		}
		switch {
		case 'A' <= c && c <= 'Z':
			folding = true
			c += 'a' - 'A'
		case folding && 'a' <= c && c <= 'z':
			s.log.Debug("option ignored after uppercase option",
				zap.String("part", s.part), zap.String("option", string(c)))
			dropped = true
			continue
		}
		dropped = false
		letter(c, i)
		prev = c
	}
	flush(len(s.opts))
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseNumericOptions parses the option letters of a "#" directive.
func parseNumericOptions(s *optionScan) NumericOptions {
	s.numeric = true
	o := DefaultNumericOptions()
	s.walk(func(c byte, at int) {
		switch c {
		case 'n':
			o.ZeroAsNo = true
		case 's':
			o.SingularZero = true
		case 'a':
			o.UseArticle = true
		case 'w':
			o.CardinalForm = true
		case 'o':
			o.OrdinalForm = true
		case 'f':
			o.SummarizeForm = true
		case 'e':
			o.UseArticle = true
			o.SingularZero = true
			o.ZeroAsNo = true
			o.CardinalForm = true
		case 'i':
			o.Increment = true
		case 'd':
			o.SuppressOutput = true
		default:
			s.problem(at, "Unhandled option %c", c)
		}
	}, func(prev byte, value string, at int) {
		n, err := strconv.Atoi(value)
		if err != nil {
			s.problem(at, "Improperly formatted numeric parameter")
			return
		}
		switch prev {
		case 'w':
			o.CardinalThreshold = n
		case 'o':
			o.OrdinalThreshold = n
		case 'f':
			if n != 0 && n != 1 {
				s.problem(at, "'f' parameter only takes parameters of zero or one")
				return
			}
			o.SummarizeAtEnd = n == 1
		case 'i':
			o.IncrementAmount = n
		case 0:
			s.problem(at, "Numeric parameter %s has no option to attach to", value)
		default:
			s.problem(at, "Option '%c' does not take a numeric parameter", prev)
		}
	})
	return o
}

// parseNounOptions parses the option letters of an "n" directive.
func parseNounOptions(s *optionScan) NounOptions {
	var o NounOptions
	s.walk(func(c byte, at int) {
		switch c {
		case 'c':
			o.Classical = true
		case 'p':
			o.ForcePlural = true
		case 's':
			o.ForceSingular = true
		default:
			s.problem(at, "Unhandled option %c", c)
		}
	}, func(prev byte, value string, at int) {
		if prev == 0 {
			s.problem(at, "Numeric parameter %s has no option to attach to", value)
			return
		}
		s.problem(at, "Option '%c' does not take a numeric parameter", prev)
	})
	return o
}
