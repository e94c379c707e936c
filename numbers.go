package inflexion

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var cardinals = [...]string{
	"zero", "one", "two", "three", "four", "five", "six", "seven", "eight",
	"nine", "ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen",
	"sixteen", "seventeen", "eighteen", "nineteen",
}

var tens = [...]string{
	2: "twenty", 3: "thirty", 4: "forty", 5: "fifty",
	6: "sixty", 7: "seventy", 8: "eighty", 9: "ninety",
}

var ordinals = [...]string{
	"zeroth", "first", "second", "third", "fourth", "fifth", "sixth",
	"seventh", "eighth", "ninth", "tenth", "eleventh", "twelfth",
	"thirteenth", "fourteenth", "fifteenth", "sixteenth", "seventeenth",
	"eighteenth", "nineteenth",
}

var tenths = [...]string{
	2: "twentieth", 3: "thirtieth", 4: "fortieth", 5: "fiftieth",
	6: "sixtieth", 7: "seventieth", 8: "eightieth", 9: "ninetieth",
}

const (
	thousand = 1_000
	million  = 1_000_000
	billion  = 1_000_000_000
	trillion = 1_000_000_000_000
)

var scales = []struct {
	size int
	name string
}{
	{billion, " billion, "},
	{million, " million, "},
	{thousand, " thousand, "},
}

// Cardinal spells n out in words. Every group is spelled, zeros
// included: 100 is "one hundred and zero", 1000 "one thousand, zero".
// Numbers of one trillion or more return ErrNumberTooLarge.
func Cardinal(n int) (string, error) {
	if n < 0 {
		if n <= -trillion {
			return "", errors.Wrapf(ErrNumberTooLarge, "%d", n)
		}
		s, err := Cardinal(-n)
		return "negative " + s, err
	}
	if n >= trillion {
		return "", errors.Wrapf(ErrNumberTooLarge, "%d", n)
	}
	return cardinal(n), nil
}

func cardinal(n int) string {
	switch {
	case n < 20:
		return cardinals[n]
	case n < 100:
		if n%10 == 0 {
			return tens[n/10]
		}
		return tens[n/10] + "-" + cardinals[n%10]
	case n < thousand:
		return cardinals[n/100] + " hundred and " + cardinal(n%100)
	}
	for _, sc := range scales {
		if n >= sc.size {
			return cardinal(n/sc.size) + sc.name + cardinal(n%sc.size)
		}
	}
	return strconv.Itoa(n)
}

// CardinalBelow spells n out when it is below threshold and prints its
// digits otherwise.
func CardinalBelow(n, threshold int) (string, error) {
	if n < threshold {
		return Cardinal(n)
	}
	return strconv.Itoa(n), nil
}

// Ordinal returns n as an ordinal. The long form spells numbers below
// one hundred ("twenty-first"); otherwise a suffix is added ("21st").
func Ordinal(n int, long bool) (string, error) {
	if n < 0 {
		s, err := Ordinal(-n, long)
		return "minus " + s, err
	}
	if long && n < 100 {
		switch {
		case n < 20:
			return ordinals[n], nil
		case n%10 == 0:
			return tenths[n/10], nil
		default:
			return tens[n/10] + "-" + ordinals[n%10], nil
		}
	}
	return strconv.Itoa(n) + ordinalSuffix(n), nil
}

func ordinalSuffix(n int) string {
	if (n%100)/10 == 1 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

// OrdinalBelow returns the ordinal of n when it is below threshold and
// its digits otherwise.
func OrdinalBelow(n, threshold int, long bool) (string, error) {
	if n < threshold {
		return Ordinal(n, long)
	}
	return strconv.Itoa(n), nil
}

var (
	summaries      = [...]string{"no", "one", "a couple of", "a few", "several"}
	summariesAtEnd = [...]string{"none", "one", "a couple", "a few", "several"}
	summaryBucket  = [...]int{0, 1, 2, 3, 3, 3, 4, 4, 4, 4}
)

// Summarize buckets n into a vague quantity. atEnd selects the forms
// that can close a sentence ("none" rather than "no").
func Summarize(n int, atEnd bool) string {
	if n < 0 || n >= len(summaryBucket) {
		return "many"
	}
	if atEnd {
		return summariesAtEnd[summaryBucket[n]]
	}
	return summaries[summaryBucket[n]]
}

var romanNumerals = []struct {
	value   int
	numeral string
	// subtractive pairs are skipped in the classic additive style
	subtractive bool
}{
	{1000, "M", false},
	{900, "CM", true},
	{500, "D", false},
	{400, "CD", true},
	{100, "C", false},
	{90, "XC", true},
	{50, "L", false},
	{40, "XL", true},
	{10, "X", false},
	{9, "IX", true},
	{5, "V", false},
	{4, "IV", true},
	{1, "I", false},
}

// Roman returns n in roman numerals; zero is "N". With classic the
// additive style is used (IIII rather than IV).
func Roman(n int, classic bool) string {
	if n == 0 {
		return "N"
	}
	var sb strings.Builder
	if n < 0 {
		sb.WriteByte('-')
		n = -n
	}
	for _, r := range romanNumerals {
		if classic && r.subtractive {
			continue
		}
		for n >= r.value {
			sb.WriteString(r.numeral)
			n -= r.value
		}
	}
	return sb.String()
}

var englishPrinter = message.NewPrinter(language.English)

// Commas prints n with English digit grouping ("1,234,567").
func Commas(n int) string {
	return englishPrinter.Sprintf("%d", n)
}

const radixDigits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// Grouping configures Grouped.
type Grouping struct {
	// MinWidth pads the result on the left with Pad up to this width.
	MinWidth int
	Pad      byte
	// Interval is the number of digits per group; 0 disables grouping.
	Interval  int
	Separator byte
	// Signed prints "+" in front of non-negative numbers.
	Signed bool
	// Radix is between 2 and 62; 0 means 10.
	Radix int
}

// Grouped prints n in the given radix with a separator between digit
// groups.
func Grouped(n int, g Grouping) (string, error) {
	radix := g.Radix
	if radix == 0 {
		radix = 10
	}
	if radix < 2 || radix > len(radixDigits) {
		return "", errors.Newf("radix %d outside 2..%d", radix, len(radixDigits))
	}
	pad := g.Pad
	if pad == 0 {
		pad = ' '
	}
	sep := g.Separator
	if sep == 0 {
		sep = ','
	}

	neg := n < 0
	v := uint64(n)
	if neg {
		v = uint64(-(n + 1)) + 1
	}

	// built least significant digit first
	var buf []byte
	if v == 0 {
		buf = append(buf, radixDigits[0])
	}
	for count := 1; v != 0; count++ {
		buf = append(buf, radixDigits[v%uint64(radix)])
		v /= uint64(radix)
		if g.Interval > 0 && count%g.Interval == 0 && v != 0 {
			buf = append(buf, sep)
		}
	}
	switch {
	case neg:
		buf = append(buf, '-')
	case g.Signed:
		buf = append(buf, '+')
	}
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	if len(buf) < g.MinWidth {
		return strings.Repeat(string(pad), g.MinWidth-len(buf)) + string(buf), nil
	}
	return string(buf), nil
}
