package inflexion

import (
	"regexp"
	"strconv"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardinal(t *testing.T) {
	tests := map[int]string{
		0:       "zero",
		7:       "seven",
		19:      "nineteen",
		20:      "twenty",
		21:      "twenty-one",
		99:      "ninety-nine",
		100:     "one hundred and zero",
		101:     "one hundred and one",
		342:     "three hundred and forty-two",
		1000:    "one thousand, zero",
		1234567: "one million, two hundred and thirty-four thousand, five hundred and sixty-seven",
		-5:      "negative five",
	}
	for n, want := range tests {
		got, err := Cardinal(n)
		require.NoError(t, err)
		assert.Equal(t, want, got, n)
	}

	_, err := Cardinal(trillion)
	assert.True(t, errors.Is(err, ErrNumberTooLarge))
	got, err := Cardinal(trillion - 1)
	require.NoError(t, err)
	assert.Contains(t, got, "nine hundred and ninety-nine billion")
}

func TestCardinalBelow(t *testing.T) {
	got, err := CardinalBelow(10, 11)
	require.NoError(t, err)
	assert.Equal(t, "ten", got)
	got, err = CardinalBelow(11, 11)
	require.NoError(t, err)
	assert.Equal(t, "11", got)
}

func TestOrdinal(t *testing.T) {
	short := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th", 11: "11th", 12: "12th",
		13: "13th", 21: "21st", 22: "22nd", 101: "101st", 111: "111th",
		112: "112th", 1003: "1003rd", -1: "minus 1st",
	}
	for n, want := range short {
		got, err := Ordinal(n, false)
		require.NoError(t, err)
		assert.Equal(t, want, got, n)
	}

	long := map[int]string{
		0: "zeroth", 6: "sixth", 12: "twelfth", 20: "twentieth",
		21: "twenty-first", 99: "ninety-ninth", 100: "100th",
	}
	for n, want := range long {
		got, err := Ordinal(n, true)
		require.NoError(t, err)
		assert.Equal(t, want, got, n)
	}
}

func TestOrdinalSuffixProperty(t *testing.T) {
	re := regexp.MustCompile(`^\d+(st|nd|rd|th)$`)
	for n := 0; n < 2000; n++ {
		got, err := Ordinal(n, false)
		require.NoError(t, err)
		require.Regexp(t, re, got)

		want := "th"
		if r := n % 100; r < 11 || r > 13 {
			switch n % 10 {
			case 1:
				want = "st"
			case 2:
				want = "nd"
			case 3:
				want = "rd"
			}
		}
		require.Equal(t, strconv.Itoa(n)+want, got)
	}
}

func TestOrdinalBelow(t *testing.T) {
	got, err := OrdinalBelow(6, 10, true)
	require.NoError(t, err)
	assert.Equal(t, "sixth", got)
	got, err = OrdinalBelow(16, 10, true)
	require.NoError(t, err)
	assert.Equal(t, "16", got)
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "no", Summarize(0, false))
	assert.Equal(t, "one", Summarize(1, false))
	assert.Equal(t, "a couple of", Summarize(2, false))
	assert.Equal(t, "a few", Summarize(4, false))
	assert.Equal(t, "several", Summarize(8, false))
	assert.Equal(t, "many", Summarize(11, false))
	assert.Equal(t, "none", Summarize(0, true))
	assert.Equal(t, "a couple", Summarize(2, true))
	assert.Equal(t, "many", Summarize(-3, true))
}

func TestRoman(t *testing.T) {
	tests := []struct {
		n       int
		classic bool
		want    string
	}{
		{0, false, "N"},
		{4, false, "IV"},
		{9, false, "IX"},
		{14, false, "XIV"},
		{1994, false, "MCMXCIV"},
		{2024, false, "MMXXIV"},
		{4, true, "IIII"},
		{9, true, "VIIII"},
		{1994, true, "MDCCCCLXXXXIIII"},
		{-4, false, "-IV"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Roman(tt.n, tt.classic), "%d classic=%v", tt.n, tt.classic)
	}
}

func TestCommas(t *testing.T) {
	assert.Equal(t, "999", Commas(999))
	assert.Equal(t, "1,234,567", Commas(1234567))
	assert.Equal(t, "-1,234", Commas(-1234))
}

func TestGrouped(t *testing.T) {
	tests := []struct {
		name string
		n    int
		g    Grouping
		want string
	}{
		{"decimal", 1234567, Grouping{Interval: 3}, "1,234,567"},
		{"hex", 255, Grouping{Radix: 16}, "FF"},
		{"binary nibbles", 255, Grouping{Radix: 2, Interval: 4, Separator: '_'}, "1111_1111"},
		{"negative", -10, Grouping{Radix: 2}, "-1010"},
		{"padded", 5, Grouping{MinWidth: 4, Pad: '0'}, "0005"},
		{"signed", 5, Grouping{Signed: true}, "+5"},
		{"zero", 0, Grouping{}, "0"},
		{"radix 62", 61, Grouping{Radix: 62}, "z"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Grouped(tt.n, tt.g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Grouped(1, Grouping{Radix: 63})
	assert.Error(t, err)
}
