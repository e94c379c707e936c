package inflexion

import (
	"fmt"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestExecute(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		template string
		bindings map[string]any
		want     string
	}{
		{"noun before count", "<N:apple>", nil, "apples"},
		{"article", "<#a:1> <N:apple> and <#a:1> <N:pear>", nil, "an apple and a pear"},
		{"article not needed", "<#a:2> <N:apple>", nil, "2 apples"},
		{"suppressed article", "<#ad:1><N:apple>", nil, "apple"},
		{"e zero", "<#e:0> <N:result>", nil, "no result"},
		{"e one", "<#e:1> <N:hour>", nil, "an hour"},
		{"e small", "<#e:3> <N:child>", nil, "three children"},
		{"e large", "<#e:12> <N:child>", nil, "12 children"},
		{"cardinal threshold", "<#w100:42> <N:box>", nil, "forty-two boxes"},
		{"summary", "<#f:3> <N:result>", nil, "a few results"},
		{"summary at end", "found <#f1:0>", nil, "found none"},
		{"increment", "<#i:0> <N:result>", nil, "1 result"},
		{"increment amount", "<#i2:$n> <N:result>", map[string]any{"n": 3}, "5 results"},
		{"ordinal above threshold", "<#o3:5> <N:result>", nil, "5 results"},
		{"ordinal below threshold", "<#o10:2> <N:try>", nil, "2nd try"},
		{"ordinal then summary", "<#of:5> <N:result>", nil, "one result"},
		{"force singular", "<#:3> <Ns:apple>", nil, "3 apple"},
		{"force plural", "<#:1> <Np:apple>", nil, "1 apples"},
		{"singular zero", "<#s:0> <N:apple>", nil, "0 apple"},
		{"classical", "<#:2> <Nc:cactus>", nil, "2 cacti"},
		{"bindings", "$who found <#:$n> <N:$what>", map[string]any{"who": "Ann", "n": int64(2), "what": "mouse"}, "Ann found 2 mice"},
		{"uint binding", "<#:$n> <N:city>", map[string]any{"n": uint8(1)}, "1 city"},
		{"compound", "<#:2> <N:mother-in-law>", nil, "2 mothers-in-law"},
		{"variable value", "$x", map[string]any{"x": 3.5}, "3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := env.Compile(tt.template)
			require.NoError(t, err)
			got, err := tmpl.Execute(tt.bindings)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExecuteErrors(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name     string
		template string
		bindings map[string]any
		want     error
	}{
		{"unbound variable", "value: $unbound", nil, ErrUnboundVariable},
		{"unbound count", "<#:$n> <N:dog>", nil, ErrUnboundVariable},
		{"unbound noun", "<#:1> <N:$what>", map[string]any{}, ErrUnboundVariable},
		{"string count", "<#:$n> <N:dog>", map[string]any{"n": "7"}, ErrTypeMismatch},
		{"float count", "<#:$n> <N:dog>", map[string]any{"n": 7.0}, ErrTypeMismatch},
		{"uint64 overflow", "<#:$n> <N:dog>", map[string]any{"n": uint64(1<<63 + 5)}, ErrTypeMismatch},
		{"uint overflow", "<#:$n> <N:dog>", map[string]any{"n": ^uint(0)}, ErrTypeMismatch},
		{"numeric noun", "<#:1> <N:$what>", map[string]any{"what": 5}, ErrTypeMismatch},
		{"dangling article", "<#a:1> thing", nil, ErrDanglingArticle},
		{"too large", "<#w3000000000000:$n>", map[string]any{"n": 2_000_000_000_000}, ErrNumberTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := env.Compile(tt.template)
			require.NoError(t, err)
			got, err := tmpl.Execute(tt.bindings)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Empty(t, got)
		})
	}
}

func TestExecuteSequence(t *testing.T) {
	env := newTestEnv(t)

	tmpl := NewTemplate(env,
		NumericValue(2, DefaultNumericOptions()),
		Literal(" "),
		Sequence(
			NounText("child", NounOptions{}),
			Sequence(Literal("!")),
		),
		Literal(" and "),
		NumericValue(1, NumericOptions{UseArticle: true, IncrementAmount: 1, CardinalThreshold: 11}),
		Literal(" "),
		Sequence(NounRef("thing", NounOptions{})),
	)
	got, err := tmpl.Execute(map[string]any{"thing": "owls"})
	require.NoError(t, err)
	assert.Equal(t, "2 children! and an owl", got)
	assert.Empty(t, tmpl.Source())
}

func TestExecuteUnsupportedDirective(t *testing.T) {
	env := newTestEnv(t)
	tmpl := NewTemplate(env, Literal("x"), Directive{kind: DirectiveKind(42)})
	_, err := tmpl.Execute(nil)
	assert.True(t, errors.Is(err, ErrUnsupportedDirective))
}

func TestExecuteConcurrent(t *testing.T) {
	env := newTestEnv(t)
	tmpl, err := env.Compile("<#e:$n> <N:$what>")
	require.NoError(t, err)

	words := []string{"child", "box", "city", "formula", "result"}
	var g errgroup.Group
	results := make([]string, 50)
	for i := range results {
		g.Go(func() error {
			out, err := tmpl.Execute(map[string]any{"n": i % 3, "what": words[i%len(words)]})
			results[i] = out
			return err
		})
	}
	require.NoError(t, g.Wait())

	for i, got := range results {
		want, err := env.Inflect("<#e:$1> <N:$2>", i%3, words[i%len(words)])
		require.NoError(t, err)
		assert.Equal(t, want, got, fmt.Sprint(i))
	}
}

func TestDirectiveAccessors(t *testing.T) {
	d := NumericRef("n", DefaultNumericOptions())
	assert.Equal(t, DirectiveNumeric, d.Kind())
	assert.True(t, d.IsRef())
	_, ok := d.NounOptions()
	assert.False(t, ok)
	o, ok := d.NumericOptions()
	assert.True(t, ok)
	assert.Equal(t, 11, o.CardinalThreshold)
	assert.Equal(t, "<#:$n>", d.String())

	s := Sequence(Literal("a"), NounText("dog", NounOptions{}))
	assert.Len(t, s.Children(), 2)
	assert.Equal(t, `["a" <n:dog>]`, s.String())
	assert.Equal(t, "noun", DirectiveNoun.String())
}
