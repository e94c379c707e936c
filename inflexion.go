// Package inflexion inflects English nouns, numbers and indefinite
// articles, and renders templates written in a small markup language:
//
//	env, _ := inflexion.New("")
//	out, _ := env.Inflect("<#a:$1> <N:$2>", 1, "outcomes") // "an outcome"
//
// A template mixes literal text with "$name" variables and directives.
// "<#opts:n>" sets the current count, "<N opts:word>" prints word
// inflected for that count.
package inflexion

import (
	"embed"
	"io/fs"
	"os"
	"strconv"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

const (
	nounsFile        = "nouns.txt"
	prepositionsFile = "prepositions.txt"
)

//go:embed data/nouns.txt data/prepositions.txt
var embedded embed.FS

// Environment bundles the noun database and the logger shared by every
// template compiled from it. It is read-only once built and safe for
// concurrent use.
type Environment struct {
	nouns *Nouns
	log   *zap.Logger
}

// Option configures New.
type Option func(*settings)

type settings struct {
	log       *zap.Logger
	userNouns []string
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(s *settings) {
		if log != nil {
			s.log = log
		}
	}
}

// WithUserNouns loads user rules from path after the predefined data.
// It may be given several times.
func WithUserNouns(path string) Option {
	return func(s *settings) {
		if path != "" {
			s.userNouns = append(s.userNouns, path)
		}
	}
}

// New loads nouns.txt and prepositions.txt from dataDir and returns a
// ready Environment. An empty dataDir uses the built-in data.
func New(dataDir string, opts ...Option) (*Environment, error) {
	s := settings{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}

	var fsys fs.FS
	if dataDir == "" {
		sub, err := fs.Sub(embedded, "data")
		if err != nil {
			return nil, errors.Wrap(err, "built-in data")
		}
		fsys = sub
	} else {
		fsys = os.DirFS(dataDir)
	}

	preps, err := loadPrepositionsFS(fsys)
	if err != nil {
		return nil, err
	}
	nouns := NewNouns(preps, s.log)
	if err := loadNounsFS(fsys, nouns); err != nil {
		return nil, err
	}
	for _, path := range s.userNouns {
		if err := loadUserNouns(path, nouns); err != nil {
			return nil, err
		}
	}

	st := nouns.Stats()
	s.log.Info("inflection data loaded",
		zap.String("dir", dataDir),
		zap.Int("irregulars", st.Irregulars),
		zap.Int("rules", st.Rules),
		zap.Int("user_irregulars", st.UserIrregulars),
		zap.Int("user_rules", st.UserRules),
		zap.Int("prepositions", st.Prepositions))
	return NewEnvironment(nouns, WithLogger(s.log)), nil
}

// NewEnvironment wraps an already built database. Only WithLogger is
// honored.
func NewEnvironment(nouns *Nouns, opts ...Option) *Environment {
	s := settings{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&s)
	}
	return &Environment{nouns: nouns, log: s.log}
}

func loadPrepositionsFS(fsys fs.FS) (*Prepositions, error) {
	f, err := fsys.Open(prepositionsFile)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", prepositionsFile)
	}
	defer f.Close()
	preps, err := LoadPrepositions(f)
	if err != nil {
		return nil, errors.Wrap(err, prepositionsFile)
	}
	return preps, nil
}

func loadNounsFS(fsys fs.FS, nouns *Nouns) error {
	f, err := fsys.Open(nounsFile)
	if err != nil {
		return errors.Wrapf(err, "open %s", nounsFile)
	}
	defer f.Close()
	if err := nouns.Load(f); err != nil {
		return errors.Wrap(err, nounsFile)
	}
	return nil
}

func loadUserNouns(path string, nouns *Nouns) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open user nouns")
	}
	defer f.Close()
	if err := nouns.LoadUser(f); err != nil {
		return errors.Wrap(err, path)
	}
	return nil
}

// Nouns returns the noun database.
func (e *Environment) Nouns() *Nouns { return e.nouns }

// Logger returns the environment's logger.
func (e *Environment) Logger() *zap.Logger { return e.log }

// Noun looks word up in the noun database.
func (e *Environment) Noun(word string) Noun {
	return e.nouns.Noun(word)
}

// Inflect compiles template and executes it once, binding args to
// "$1", "$2" and so on.
func (e *Environment) Inflect(template string, args ...any) (string, error) {
	t, err := e.Compile(template)
	if err != nil {
		return "", err
	}
	bindings := make(map[string]any, len(args))
	for i, a := range args {
		bindings[strconv.Itoa(i+1)] = a
	}
	return t.Execute(bindings)
}
