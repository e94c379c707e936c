package inflexion

import (
	"regexp"
	"strings"
)

// Affix is a suffix that can be recognized on, stripped from, and
// attached to a stem. The matcher captures the stem in a group named
// "stem"; the suffix text is what gets re-attached.
type Affix struct {
	suffix  string
	matcher *regexp.Regexp
}

// CompleteAffix returns an affix whose suffix may stand alone as a whole
// word ("ox" matches both "ox" and "box").
func CompleteAffix(suffix string) (*Affix, error) {
	return newAffix(suffix, `^(?P<stem>\w*)`)
}

// IncompleteAffix returns an affix that needs at least one stem
// character in front of the suffix.
func IncompleteAffix(suffix string) (*Affix, error) {
	return newAffix(suffix, `^(?P<stem>\w+)`)
}

func newAffix(suffix, stemPattern string) (*Affix, error) {
	re, err := regexp.Compile(stemPattern + "(?:" + suffix + ")$")
	if err != nil {
		return nil, wrapf(err, "bad affix %q", suffix)
	}
	return &Affix{suffix: suffix, matcher: re}, nil
}

// Has reports whether word ends with this affix.
func (a *Affix) Has(word string) bool {
	return a.matcher.MatchString(word)
}

// Strip removes the affix and returns the stem. Words that do not carry
// the affix are returned unchanged.
func (a *Affix) Strip(word string) string {
	m := a.matcher.FindStringSubmatch(word)
	if m == nil {
		return word
	}
	return m[a.matcher.SubexpIndex("stem")]
}

// Attach appends the affix to stem.
func (a *Affix) Attach(stem string) string {
	return stem + a.suffix
}

// Suffix returns the raw suffix text.
func (a *Affix) Suffix() string {
	return a.suffix
}

func (a *Affix) String() string {
	if a == nil {
		return "<none>"
	}
	return "-" + strings.TrimSpace(a.suffix)
}
