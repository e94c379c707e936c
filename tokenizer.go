package inflexion

import "iter"

// Token is one raw piece of a template: a literal run, a "$name"
// variable reference or a whole "<...>" directive.
type Token struct {
	Text string
	// Pos is the byte offset of Text in the template.
	Pos int
}

// Tokens scans template left to right. Each call to the returned
// sequence starts a fresh scan. A malformed template yields a single
// *TokenizeError and ends the sequence.
func Tokens(template string) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		start, level := 0, 0
		inVar := false

		emit := func(end int) bool {
			if end <= start {
				return true
			}
			tok := Token{Text: template[start:end], Pos: start}
			start = end
			return yield(tok, nil)
		}
		fail := func(pos int, msg string) {
			yield(Token{}, &TokenizeError{Template: template, Pos: pos, Message: msg})
		}

		for i := 0; i < len(template); i++ {
			switch template[i] {
			case '\\':
				i++
			case '<':
				if level == 0 {
					if !emit(i) {
						return
					}
					inVar = false
				}
				level++
			case '>':
				if level == 0 {
					fail(i, "unmatched close")
					return
				}
				level--
				if level == 0 && !emit(i+1) {
					return
				}
			case '$':
				if level == 0 {
					if !emit(i) {
						return
					}
					inVar = true
				}
			case ' ':
				if inVar && level == 0 {
					if !emit(i) {
						return
					}
					inVar = false
				}
			}
		}
		if level > 0 {
			fail(start, "unclosed directive")
			return
		}
		emit(len(template))
	}
}
