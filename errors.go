package inflexion

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Execution errors. They are wrapped with the offending name or value,
// so callers should match them with errors.Is.
var (
	ErrUnboundVariable      = errors.New("unbound variable")
	ErrTypeMismatch         = errors.New("wrong value type for directive")
	ErrUnsupportedDirective = errors.New("unsupported directive")
	ErrDanglingArticle      = errors.New("article placeholder without a following noun")
	ErrNumberTooLarge       = errors.New("numbers of one trillion or more cannot be spelled out")
)

// ErrForeignNoun is returned by a Rule asked about a word it does not
// match.
var ErrForeignNoun = errors.New("noun does not belong to this inflection")

// ErrInvalidRule reports a rule that cannot be built from its forms.
var ErrInvalidRule = errors.New("invalid inflection rule")

func wrapf(err error, format string, args ...any) error {
	return errors.Wrapf(err, format, args...)
}

// TokenizeError aborts tokenization: past an unmatched '>' or an
// unclosed directive no further token boundary can be trusted.
type TokenizeError struct {
	Template string
	Pos      int
	Message  string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("%s at position %d in %q", e.Message, e.Pos, e.Template)
}

// Problem is one compile-time diagnostic.
type Problem struct {
	// Pos is the byte offset in the template where the problem was found.
	Pos int `json:"pos"`
	// Part is the directive text the problem belongs to.
	Part    string `json:"part"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	if p.Part == "" {
		return fmt.Sprintf("%s (at position %d)", p.Message, p.Pos)
	}
	return fmt.Sprintf("%s (at position %d inside %s)", p.Message, p.Pos, p.Part)
}

// FormatError bundles every problem found while compiling a template.
type FormatError struct {
	Template string
	Problems []Problem
}

func (e *FormatError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d problem(s) in template %q", len(e.Problems), e.Template)
	for _, p := range e.Problems {
		sb.WriteString("\n\t")
		sb.WriteString(p.String())
	}
	return sb.String()
}
