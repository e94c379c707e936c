package inflexion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func scanFor(t *testing.T, opts string) *optionScan {
	return &optionScan{opts: opts, part: "<" + opts + ":x>", log: zaptest.NewLogger(t)}
}

func TestDefaultNumericOptions(t *testing.T) {
	o := DefaultNumericOptions()
	assert.Equal(t, 1, o.IncrementAmount)
	assert.Equal(t, 11, o.CardinalThreshold)
	assert.Equal(t, math.MaxInt, o.OrdinalThreshold)
	assert.False(t, o.SummarizeAtEnd)
}

func TestParseNumericOptions(t *testing.T) {
	with := func(f func(*NumericOptions)) NumericOptions {
		o := DefaultNumericOptions()
		f(&o)
		return o
	}
	tests := []struct {
		opts string
		want NumericOptions
	}{
		{"", DefaultNumericOptions()},
		{"n", with(func(o *NumericOptions) { o.ZeroAsNo = true })},
		{"e", with(func(o *NumericOptions) {
			o.UseArticle, o.SingularZero, o.ZeroAsNo, o.CardinalForm = true, true, true, true
		})},
		{"w5", with(func(o *NumericOptions) { o.CardinalForm, o.CardinalThreshold = true, 5 })},
		{"o3w", with(func(o *NumericOptions) { o.OrdinalForm, o.OrdinalThreshold, o.CardinalForm = true, 3, true })},
		{"f1", with(func(o *NumericOptions) { o.SummarizeForm, o.SummarizeAtEnd = true, true })},
		{"f0", with(func(o *NumericOptions) { o.SummarizeForm = true })},
		{"i-2", with(func(o *NumericOptions) { o.Increment, o.IncrementAmount = true, -2 })},
		{"ad", with(func(o *NumericOptions) { o.UseArticle, o.SuppressOutput = true, true })},
		{"Wn", with(func(o *NumericOptions) { o.CardinalForm = true })},
		{"nW", with(func(o *NumericOptions) { o.ZeroAsNo, o.CardinalForm = true, true })},
		{"Wn5", with(func(o *NumericOptions) { o.CardinalForm = true })},
		{"WO", with(func(o *NumericOptions) { o.CardinalForm, o.OrdinalForm = true, true })},
	}
	for _, tt := range tests {
		t.Run(tt.opts, func(t *testing.T) {
			scan := scanFor(t, tt.opts)
			got := parseNumericOptions(scan)
			assert.Empty(t, scan.problems)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNumericOptionProblems(t *testing.T) {
	tests := []struct {
		opts    string
		pos     int
		message string
	}{
		{"q", 0, "Unhandled option q"},
		{"f2", 1, "'f' parameter only takes parameters of zero or one"},
		{"n3", 1, "Option 'n' does not take a numeric parameter"},
		{"5", 0, "Numeric parameter 5 has no option to attach to"},
		{"w1-", 1, "Improperly formatted numeric parameter"},
	}
	for _, tt := range tests {
		t.Run(tt.opts, func(t *testing.T) {
			scan := scanFor(t, tt.opts)
			parseNumericOptions(scan)
			if assert.Len(t, scan.problems, 1) {
				assert.Equal(t, tt.pos, scan.problems[0].Pos)
				assert.Equal(t, tt.message, scan.problems[0].Message)
				assert.Equal(t, "<"+tt.opts+":x>", scan.problems[0].Part)
			}
		})
	}
}

func TestParseNumericOptionsCollectsAll(t *testing.T) {
	scan := scanFor(t, "qn3z")
	parseNumericOptions(scan)
	assert.Len(t, scan.problems, 3)
}

func TestParseNounOptions(t *testing.T) {
	tests := []struct {
		opts string
		want NounOptions
	}{
		{"", NounOptions{}},
		{"c", NounOptions{Classical: true}},
		{"p", NounOptions{ForcePlural: true}},
		{"s", NounOptions{ForceSingular: true}},
		{"cp", NounOptions{Classical: true, ForcePlural: true}},
		{"Pc", NounOptions{ForcePlural: true}},
	}
	for _, tt := range tests {
		t.Run(tt.opts, func(t *testing.T) {
			scan := scanFor(t, tt.opts)
			assert.Equal(t, tt.want, parseNounOptions(scan))
			assert.Empty(t, scan.problems)
		})
	}
}

func TestParseNounOptionProblems(t *testing.T) {
	for opts, message := range map[string]string{
		"x":  "Unhandled option x",
		"c2": "Option 'c' does not take a numeric parameter",
		"-":  "Unhandled option -",
		"é":  "Unhandled option é",
		"ãc": "Unhandled option ã",
	} {
		scan := scanFor(t, opts)
		parseNounOptions(scan)
		if assert.Len(t, scan.problems, 1, opts) {
			assert.Equal(t, message, scan.problems[0].Message)
		}
	}
}
