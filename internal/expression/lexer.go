package expression

import (
	"errors"
	"strconv"
)

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// lex splits src into tokens, always ending with tokenEOF.
func lex(src string) ([]token, error) {
	tokens := []token{}
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case isSpace(c):
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			tok, next, err := lexNumber(src, i)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			i = next
		case isIdentStart(c):
			start := i
			for i < len(src) && isIdentPart(src[i]) {
				i++
			}
			tokens = append(tokens, token{kind: tokenIdent, text: src[start:i], pos: start})
		default:
			kind, ok := punctuation[c]
			if !ok {
				return nil, newParseError(i, "unexpected character '%c'", c)
			}
			tokens = append(tokens, token{kind: kind, text: string(c), pos: i})
			i++
		}
	}
	tokens = append(tokens, token{kind: tokenEOF, pos: len(src)})
	return tokens, nil
}

var punctuation = map[byte]tokenKind{
	'+': tokenPlus,
	'-': tokenMinus,
	'*': tokenStar,
	'/': tokenSlash,
	'(': tokenLParen,
	')': tokenRParen,
	',': tokenComma,
}

// lexNumber reads digits [. digits] [(e|E) [+|-] digits] starting at pos.
func lexNumber(src string, pos int) (token, int, error) {
	i := pos
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j >= len(src) || !isDigit(src[j]) {
			return token{}, 0, newParseError(pos, "malformed number '%s'", src[pos:j])
		}
		for j < len(src) && isDigit(src[j]) {
			j++
		}
		i = j
	}
	if i < len(src) && (isIdentPart(src[i]) || src[i] == '.') {
		end := i
		for end < len(src) && (isIdentPart(src[end]) || src[end] == '.') {
			end++
		}
		return token{}, 0, newParseError(pos, "malformed number '%s'", src[pos:end])
	}

	text := src[pos:i]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return token{}, 0, newParseError(pos, "number '%s' is out of range", text)
		}
		return token{}, 0, newParseError(pos, "malformed number '%s'", text)
	}
	return token{kind: tokenNumber, text: text, value: v, pos: pos}, i, nil
}
