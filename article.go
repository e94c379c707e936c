package inflexion

import (
	"regexp"
	"strings"
)

var (
	leadingWord = regexp.MustCompile(`^\s*(\w+)`)

	// words whose vowel is sounded like a consonant
	consonantVowel = []*regexp.Regexp{
		regexp.MustCompile(`^e[uw]`),
		regexp.MustCompile(`^onc?e\b`),
		regexp.MustCompile(`^uni([^nmd]|mo)`),
		regexp.MustCompile(`^u[bcfhjkqrst][aeiou]`),
	}
	ukUN        = regexp.MustCompile(`^U[NK][AIEO]`)
	vowelY      = regexp.MustCompile(`^y(b[lor]|cl[ea]|fere|gg|p[ios]|rou|tt)`)
	silentH     = []string{"euler", "heir", "honest", "hono"}
	vowelLetter = "aefhilmnorsx"
)

// PickIndefinite returns "a" or "an" for phrase, judged by its first
// word. Phrases with no leading word get "a".
func PickIndefinite(phrase string) string {
	m := leadingWord.FindStringSubmatch(phrase)
	if m == nil {
		return "a"
	}
	word := m[1]
	lower := strings.ToLower(word)

	for _, prefix := range silentH {
		if strings.HasPrefix(lower, prefix) {
			return "an"
		}
	}
	if strings.HasPrefix(lower, "hour") && !strings.HasPrefix(lower, "houri") {
		return "an"
	}

	// single letters are read by name: "an f", "a b"
	if len(lower) == 1 {
		return byLetterName(lower)
	}
	if spelledAbbreviation(word) {
		return "an"
	}

	for _, re := range consonantVowel {
		if re.MatchString(lower) {
			return "a"
		}
	}
	if ukUN.MatchString(word) {
		return "a"
	}
	if word == strings.ToUpper(word) && hasLetter(word) {
		return byLetterName(lower[:1])
	}
	if strings.ContainsAny(lower[:1], "aeiou") {
		return "an"
	}
	if vowelY.MatchString(lower) {
		return "an"
	}
	return "a"
}

func byLetterName(letter string) string {
	if strings.Contains(vowelLetter, letter) {
		return "an"
	}
	return "a"
}

// spelledAbbreviation reports a two-capital word read letter by letter
// whose first letter name starts with a vowel sound, such as "MP" or
// "SQ". A vowel in second place makes it a pronounced word instead.
func spelledAbbreviation(word string) bool {
	if len(word) != 2 {
		return false
	}
	first, second := word[0], word[1]
	if !strings.ContainsRune("FHLMNRSX", rune(first)) {
		return false
	}
	if second < 'A' || second > 'Z' {
		return false
	}
	return !strings.ContainsRune("AEIOU", rune(second))
}

func hasLetter(s string) bool {
	return strings.ToLower(s) != s
}
