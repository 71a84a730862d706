package nbt

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Text Parser
// ============================================================
//
// ParseText reads the canonical text form written by Text, plus the usual
// leniencies of hand-written input:
//
//	{name:"x",'quoted key':1b,data:[I;1,2],list:[1.5d,2d]}
//
// Numeric suffixes are case-insensitive. Unsuffixed integers that fit in
// 32 bits are ints, unsuffixed decimals are doubles and any other bare
// token is a string. true and false are bytes.

// ParseText parses a single tag from s. Trailing input other than
// whitespace is an error.
func ParseText(s string, opts ...Option) (Tag, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return nil, err
	}
	p := &textParser{input: s}
	p.skipWhitespace()
	t, err := p.parseValue(o.MaxDepth)
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	if p.pos < len(p.input) {
		return nil, p.errorf(nil, "unexpected %q after value", p.input[p.pos])
	}
	return t, nil
}

type textParser struct {
	input string
	pos   int
}

func (p *textParser) errorf(cause error, format string, args ...any) error {
	return &ParseError{Message: fmt.Sprintf(format, args...), Offset: p.pos, Err: cause}
}

func (p *textParser) parseValue(budget int) (Tag, error) {
	p.skipWhitespace()
	switch c := p.peek(); {
	case p.pos >= len(p.input):
		return nil, p.errorf(nil, "unexpected end of input")
	case c == '{':
		return p.parseCompound(budget)
	case c == '[':
		if p.arrayPrefix() != 0 {
			return p.parseArray()
		}
		return p.parseList(budget)
	case c == '"' || c == '\'':
		s, err := p.parseQuoted()
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	default:
		tok := p.bareToken()
		if tok == "" {
			return nil, p.errorf(nil, "unexpected %q", c)
		}
		return scalarFromToken(tok), nil
	}
}

func (p *textParser) parseCompound(budget int) (*CompoundTag, error) {
	p.pos++ // {
	c := NewCompound()
	p.skipWhitespace()
	if p.peek() == '}' {
		p.pos++
		return c, nil
	}
	next, err := descend(budget)
	if err != nil {
		return nil, p.errorf(err, "compound nested too deeply")
	}
	for {
		p.skipWhitespace()
		key, err := p.parseKey()
		if err != nil {
			return nil, err
		}
		if !p.expect(':') {
			return nil, p.errorf(nil, "expected ':' after key %q", key)
		}
		v, err := p.parseValue(next)
		if err != nil {
			return nil, err
		}
		c.put(key, v)

		p.skipWhitespace()
		switch p.peek() {
		case ',':
			p.pos++
		case '}':
			p.pos++
			return c, nil
		default:
			return nil, p.errorf(nil, "expected ',' or '}' in compound")
		}
	}
}

func (p *textParser) parseKey() (string, error) {
	if c := p.peek(); c == '"' || c == '\'' {
		return p.parseQuoted()
	}
	key := p.bareToken()
	if key == "" {
		return "", p.errorf(nil, "expected compound key")
	}
	return key, nil
}

func (p *textParser) parseList(budget int) (*ListTag, error) {
	p.pos++ // [
	l := NewList()
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
		return l, nil
	}
	next, err := descend(budget)
	if err != nil {
		return nil, p.errorf(err, "list nested too deeply")
	}
	for {
		start := p.pos
		v, err := p.parseValue(next)
		if err != nil {
			return nil, err
		}
		if err := l.Add(v); err != nil {
			p.pos = start
			return nil, p.errorf(ErrTypeMismatch, "%s element in list of %s", v.Kind(), l.ElementKind())
		}

		p.skipWhitespace()
		switch p.peek() {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return l, nil
		default:
			return nil, p.errorf(nil, "expected ',' or ']' in list")
		}
	}
}

// arrayPrefix returns B, I or L when the input continues with an array
// header such as "[I;".
func (p *textParser) arrayPrefix() byte {
	rest := p.input[p.pos:]
	if len(rest) < 3 || rest[2] != ';' {
		return 0
	}
	switch rest[1] {
	case 'B', 'I', 'L':
		return rest[1]
	}
	return 0
}

func (p *textParser) parseArray() (Tag, error) {
	prefix := p.arrayPrefix()
	p.pos += 3

	var lo, hi int64
	switch prefix {
	case 'B':
		lo, hi = math.MinInt8, math.MaxInt8
	case 'I':
		lo, hi = math.MinInt32, math.MaxInt32
	default:
		lo, hi = math.MinInt64, math.MaxInt64
	}

	var values []int64
	p.skipWhitespace()
	if p.peek() == ']' {
		p.pos++
	} else {
		for {
			p.skipWhitespace()
			start := p.pos
			tok := p.bareToken()
			n, ok := scalarFromToken(tok).(Number)
			if tok == "" || !ok || isFloating(n.Kind()) {
				p.pos = start
				return nil, p.errorf(ErrTypeMismatch, "expected integer element in [%c; array", prefix)
			}
			v := n.AsLong()
			if v < lo || v > hi {
				p.pos = start
				return nil, p.errorf(ErrInvalidArgument, "element %s out of range for [%c; array", tok, prefix)
			}
			values = append(values, v)

			p.skipWhitespace()
			if p.peek() == ',' {
				p.pos++
				continue
			}
			if p.peek() == ']' {
				p.pos++
				break
			}
			return nil, p.errorf(nil, "expected ',' or ']' in array")
		}
	}

	switch prefix {
	case 'B':
		out := make([]byte, len(values))
		for i, v := range values {
			out[i] = byte(int8(v))
		}
		return NewByteArray(out), nil
	case 'I':
		out := make([]int32, len(values))
		for i, v := range values {
			out[i] = int32(v)
		}
		return NewIntArray(out), nil
	default:
		return NewLongArray(values), nil
	}
}

func (p *textParser) parseQuoted() (string, error) {
	quote := p.input[p.pos]
	start := p.pos
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case c == quote:
			p.pos++
			return sb.String(), nil
		case c == '\\':
			if p.pos+1 >= len(p.input) {
				break
			}
			p.pos++
			switch e := p.input[p.pos]; e {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '"', '\'':
				sb.WriteByte(e)
			default:
				return "", p.errorf(nil, "invalid escape \\%c", e)
			}
		default:
			sb.WriteByte(c)
		}
		p.pos++
	}
	p.pos = start
	return "", p.errorf(nil, "unterminated string")
}

func (p *textParser) bareToken() string {
	start := p.pos
	for p.pos < len(p.input) && isBareChar(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

func (p *textParser) skipWhitespace() {
	for p.pos < len(p.input) {
		switch p.input[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *textParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *textParser) expect(c byte) bool {
	p.skipWhitespace()
	if p.peek() == c {
		p.pos++
		return true
	}
	return false
}

// ============================================================
// Scalar tokens
// ============================================================

var decimalPattern = regexp.MustCompile(`^[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?$`)

// isFloatBody reports whether s is a decimal number or one of the special
// values written for NaN and the infinities.
func isFloatBody(s string) bool {
	switch strings.ToLower(s) {
	case "nan", "inf", "+inf", "-inf":
		return true
	}
	return decimalPattern.MatchString(s)
}

// scalarFromToken types a bare token by its suffix and shape.
func scalarFromToken(tok string) Tag {
	lower := strings.ToLower(tok)
	switch lower {
	case "true":
		return NewBoolean(true)
	case "false":
		return NewBoolean(false)
	}

	if len(tok) > 1 {
		body := tok[:len(tok)-1]
		switch lower[len(lower)-1] {
		case 'b':
			if v, err := strconv.ParseInt(body, 10, 8); err == nil {
				return NewByte(int8(v))
			}
		case 's':
			if v, err := strconv.ParseInt(body, 10, 16); err == nil {
				return NewShort(int16(v))
			}
		case 'l':
			if v, err := strconv.ParseInt(body, 10, 64); err == nil {
				return NewLong(v)
			}
		case 'f':
			if isFloatBody(body) {
				if v, err := strconv.ParseFloat(body, 32); err == nil {
					return NewFloat(float32(v))
				}
			}
		case 'd':
			if isFloatBody(body) {
				if v, err := strconv.ParseFloat(body, 64); err == nil {
					return NewDouble(v)
				}
			}
		}
	}

	if v, err := strconv.ParseInt(tok, 10, 32); err == nil {
		return NewInt(int32(v))
	}
	if strings.ContainsAny(tok, ".eE") && decimalPattern.MatchString(tok) {
		if v, err := strconv.ParseFloat(tok, 64); err == nil {
			return NewDouble(v)
		}
	}
	return NewString(tok)
}
