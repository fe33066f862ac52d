package condition

import "unicode"

type tokenKind int

const (
	tokenFlag tokenKind = iota
	tokenAnd
	tokenOr
	tokenLParen
	tokenRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset into the condition text
}

// lex splits condition text into tokens. Parentheses are standalone
// tokens; everything else is whitespace-delimited. There are no
// invalid characters, so lexing cannot fail.
func lex(input string) []token {
	var tokens []token
	start := -1

	flush := func(end int) {
		if start < 0 {
			return
		}
		text := input[start:end]
		kind := tokenFlag
		switch text {
		case "and":
			kind = tokenAnd
		case "or":
			kind = tokenOr
		}
		tokens = append(tokens, token{kind: kind, text: text, pos: start})
		start = -1
	}

	for i, r := range input {
		switch {
		case unicode.IsSpace(r):
			flush(i)
		case r == '(':
			flush(i)
			tokens = append(tokens, token{kind: tokenLParen, text: "(", pos: i})
		case r == ')':
			flush(i)
			tokens = append(tokens, token{kind: tokenRParen, text: ")", pos: i})
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(input))

	return tokens
}
