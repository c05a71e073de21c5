package pdf

import (
	"strconv"
	"strings"
	"unicode"
)

// tjWordGap is the TJ adjustment, in thousandths of an em, past which a
// negative kern is read as a space between words.
const tjWordGap = -200

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokString
	tokNumber
	tokName
	tokArrayOpen
	tokArrayClose
	tokDictOpen
	tokDictClose
)

type token struct {
	kind tokenKind
	text string // operator name, decoded string, number or name
}

// operand is a value on the operand stack. Arrays hold their elements.
type operand struct {
	tok   token
	array []token
}

// lexer splits a content stream into tokens. PDF whitespace and delimiters
// separate tokens, so line layout does not matter.
type lexer struct {
	data []byte
	pos  int
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isPDFDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) next() (token, bool) {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isPDFSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			return token{kind: tokString, text: l.literal()}, true
		case c == '<':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
				l.pos += 2
				return token{kind: tokDictOpen}, true
			}
			return token{kind: tokString, text: l.hex()}, true
		case c == '>':
			l.pos++
			if l.pos < len(l.data) && l.data[l.pos] == '>' {
				l.pos++
				return token{kind: tokDictClose}, true
			}
		case c == '[':
			l.pos++
			return token{kind: tokArrayOpen}, true
		case c == ']':
			l.pos++
			return token{kind: tokArrayClose}, true
		case c == '/':
			l.pos++
			return token{kind: tokName, text: l.regular()}, true
		case c == '{' || c == '}' || c == ')':
			l.pos++
		default:
			word := l.regular()
			if isNumber(word) {
				return token{kind: tokNumber, text: word}, true
			}
			return token{kind: tokOperator, text: word}, true
		}
	}
	return token{}, false
}

// regular reads a run of regular characters
func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && !isPDFSpace(l.data[l.pos]) && !isPDFDelimiter(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// literal reads a parenthesised string, honouring nesting and escapes
func (l *lexer) literal() string {
	l.pos++ // (
	start := l.pos
	depth := 1
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				raw := l.data[start:l.pos]
				l.pos++
				return decodeLiteral(raw)
			}
		}
		l.pos++
	}
	return decodeLiteral(l.data[start:])
}

// hex reads a <...> string. An odd final digit is padded with zero.
func (l *lexer) hex() string {
	l.pos++ // <
	var out []byte
	hi, half := byte(0), false
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		v, ok := hexValue(c)
		if !ok {
			continue
		}
		if !half {
			hi, half = v, true
			continue
		}
		out = append(out, hi<<4|v)
		half = false
	}
	if half {
		out = append(out, hi<<4)
	}
	return string(out)
}

// skipInlineImage moves past the binary data of an inline image, which runs
// from the byte after ID up to a whitespace-delimited EI.
func (l *lexer) skipInlineImage() {
	if l.pos < len(l.data) && isPDFSpace(l.data[l.pos]) {
		l.pos++
	}
	for l.pos+1 < len(l.data) {
		if l.data[l.pos] == 'E' && l.data[l.pos+1] == 'I' &&
			(l.pos == 0 || isPDFSpace(l.data[l.pos-1])) &&
			(l.pos+2 == len(l.data) || isPDFSpace(l.data[l.pos+2])) {
			l.pos += 2
			return
		}
		l.pos++
	}
	l.pos = len(l.data)
}

func hexValue(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

func isNumber(word string) bool {
	if word == "" {
		return false
	}
	digits := 0
	for i := 0; i < len(word); i++ {
		c := word[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
		case (c == '-' || c == '+') && i == 0:
		default:
			return false
		}
	}
	return digits > 0
}

// textFromContentStream runs the text-showing operators of a content stream
// against an operand stack. Tj, TJ, ' and " show text; ', " and T* start a
// new line; Td, TD and Tm separate runs; ET ends a block.
func textFromContentStream(data []byte) string {
	var sb strings.Builder
	var stack []operand
	arrayDepth := 0
	dictDepth := 0

	lex := &lexer{data: data}
	for {
		tok, ok := lex.next()
		if !ok {
			break
		}

		switch tok.kind {
		case tokDictOpen:
			dictDepth++
			continue
		case tokDictClose:
			if dictDepth > 0 {
				dictDepth--
			}
			continue
		}
		if dictDepth > 0 {
			continue
		}

		switch tok.kind {
		case tokArrayOpen:
			if arrayDepth == 0 {
				stack = append(stack, operand{tok: tok})
			}
			arrayDepth++
			continue
		case tokArrayClose:
			if arrayDepth > 0 {
				arrayDepth--
			}
			continue
		}
		if arrayDepth > 0 {
			if n := len(stack); n > 0 && stack[n-1].tok.kind == tokArrayOpen {
				stack[n-1].array = append(stack[n-1].array, tok)
			}
			continue
		}

		if tok.kind != tokOperator {
			stack = append(stack, operand{tok: tok})
			continue
		}

		switch tok.text {
		case "Tj":
			writeString(&sb, stack)
		case "TJ":
			writeArray(&sb, stack)
		case "'", `"`:
			sb.WriteByte('\n')
			writeString(&sb, stack)
		case "Td", "TD", "Tm":
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		case "T*":
			sb.WriteByte('\n')
		case "ET":
			sb.WriteByte('\n')
		case "ID":
			lex.skipInlineImage()
		}
		stack = stack[:0]
	}

	return cleanLines(sb.String())
}

// writeString writes the topmost string operand
func writeString(sb *strings.Builder, stack []operand) {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].tok.kind == tokString {
			sb.WriteString(stack[i].tok.text)
			return
		}
	}
}

// writeArray writes the strings of the topmost array operand. Wide negative
// kerning between strings becomes a space.
func writeArray(sb *strings.Builder, stack []operand) {
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].tok.kind != tokArrayOpen {
			continue
		}
		for _, el := range stack[i].array {
			switch el.kind {
			case tokString:
				sb.WriteString(el.text)
			case tokNumber:
				if kern, err := strconv.ParseFloat(el.text, 64); err == nil && kern < tjWordGap {
					sb.WriteByte(' ')
				}
			}
		}
		return
	}
}

// decodeLiteral resolves backslash escapes, including up to three octal digits
// and escaped line breaks, which continue the string.
func decodeLiteral(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 == len(raw) {
			sb.WriteByte(raw[i])
			continue
		}

		i++
		switch c := raw[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b', 'f':
			// backspace and form feed carry no text
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		case '\n':
		default:
			if c < '0' || c > '7' {
				sb.WriteByte(c)
				continue
			}
			val := int(c - '0')
			for n := 1; n < 3 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			sb.WriteByte(byte(val))
		}
	}
	return sb.String()
}

// cleanLines drops non-printable runes and collapses blanks inside each line
func cleanLines(text string) string {
	lines := strings.Split(text, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.FieldsFunc(line, func(r rune) bool {
			return unicode.IsSpace(r) || !unicode.IsPrint(r)
		}), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
