package inflexion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestEnv(t *testing.T) *Environment {
	t.Helper()
	env, err := New("", WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	return env
}

func TestNewBuiltinData(t *testing.T) {
	env := newTestEnv(t)

	st := env.Nouns().Stats()
	assert.Positive(t, st.Irregulars)
	assert.Positive(t, st.Rules)
	assert.Zero(t, st.UserIrregulars)
	assert.Zero(t, st.UserRules)
	assert.True(t, env.Nouns().Prepositions().Contains("of"))
	t.Logf("loaded %d irregular forms, %d rules, %d prepositions", st.Irregulars, st.Rules, st.Prepositions)
}

func TestNewFromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, nounsFile), []byte("goose => geese\n-ch => -ches\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, prepositionsFile), []byte("# none\nof\n"), 0o644))
	user := filepath.Join(dir, "user.txt")
	require.NoError(t, os.WriteFile(user, []byte("moose => meese\n"), 0o644))

	env, err := New(dir, WithLogger(zaptest.NewLogger(t)), WithUserNouns(user))
	require.NoError(t, err)

	assert.Equal(t, "geese", env.Noun("goose").Plural())
	assert.Equal(t, "churches", env.Noun("church").Plural())
	assert.Equal(t, "meese", env.Noun("moose").Plural())
	assert.Equal(t, 1, env.Nouns().Prepositions().Len())
}

func TestNewMissingData(t *testing.T) {
	_, err := New(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), prepositionsFile)
}

func TestNewBadUserNouns(t *testing.T) {
	dir := t.TempDir()
	user := filepath.Join(dir, "user.txt")
	require.NoError(t, os.WriteFile(user, []byte("# ok\nnot a rule\n"), 0o644))

	_, err := New("", WithUserNouns(user))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestInflectScenarios(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		template string
		want     string
	}{
		{"<#n:0> <N:results>", "no results"},
		{"<#n:7> <N:results>", "7 results"},
		{"<#a:1> <N:results>", "a result"},
		{"<#a:1> <N:outcomes>", "an outcome"},
		{"<#o:6> <N:results>", "6th result"},
		{"<#ow:6> <N:results>", "sixth result"},
		{"<#d:1><N:Match> found", "Match found"},
		{"<#:7> <Nc:formula>", "7 formulae"},
	}
	for _, tt := range tests {
		t.Run(tt.template, func(t *testing.T) {
			got, err := env.Inflect(tt.template)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInflectPositional(t *testing.T) {
	env := newTestEnv(t)

	got, err := env.Inflect("<#e:$1> <N:$2> for $3", 1, "outcomes", "you")
	require.NoError(t, err)
	assert.Equal(t, "an outcome for you", got)

	got, err = env.Inflect("<#e:$1> <N:$2>", 3, "child")
	require.NoError(t, err)
	assert.Equal(t, "three children", got)
}
