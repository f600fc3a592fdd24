package pdf

import (
	"bytes"
	"fmt"
	"strconv"
)

// lengthResolver resolves an indirect reference to the integer it points
// at. Stream Length entries are allowed to be indirect, so the parser
// needs a way back into the cross-reference table while it is still
// being consumed.
type lengthResolver func(ref IndirectRef) (int, error)

// parser reads PDF objects from a byte buffer. It tracks a position
// rather than wrapping the buffer in a reader so callers can jump to
// byte offsets taken from the cross-reference table.
type parser struct {
	data    []byte
	pos     int
	resolve lengthResolver
}

func newParser(data []byte) *parser {
	return &parser{data: data}
}

// seek positions the parser at an absolute byte offset.
func (p *parser) seek(offset int64) error {
	if offset < 0 || offset > int64(len(p.data)) {
		return fmt.Errorf("offset %d outside document (size %d)", offset, len(p.data))
	}
	p.pos = int(offset)
	return nil
}

func (p *parser) atEnd() bool { return p.pos >= len(p.data) }

func (p *parser) peek() byte {
	if p.atEnd() {
		return 0
	}
	return p.data[p.pos]
}

// skipWhitespace advances past whitespace and comments. PDF comments
// run from % to end of line.
func (p *parser) skipWhitespace() {
	for !p.atEnd() {
		c := p.data[p.pos]
		if isPDFWhitespace(c) {
			p.pos++
			continue
		}
		if c == '%' {
			for !p.atEnd() && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
			continue
		}
		break
	}
}

// parseObject parses the next object at the current position.
func (p *parser) parseObject() (Object, error) {
	p.skipWhitespace()
	if p.atEnd() {
		return nil, fmt.Errorf("unexpected end of data at offset %d", p.pos)
	}

	switch c := p.data[p.pos]; {
	case c == '<':
		if p.pos+1 < len(p.data) && p.data[p.pos+1] == '<' {
			return p.parseDictOrStream()
		}
		return p.parseHexString()
	case c == '(':
		return p.parseLiteralString()
	case c == '/':
		return p.parseName()
	case c == '[':
		return p.parseArray()
	case c == 't' || c == 'f':
		return p.parseBool()
	case c == 'n':
		return p.parseNull()
	case isDigit(c) || c == '+' || c == '-' || c == '.':
		return p.parseNumberOrRef()
	default:
		return nil, fmt.Errorf("unexpected character %q at offset %d", c, p.pos)
	}
}

// parseIndirectObject parses "N G obj ... endobj" at the current
// position and returns the contained object with its reference.
func (p *parser) parseIndirectObject() (*IndirectObject, error) {
	p.skipWhitespace()
	num, err := p.parseInteger()
	if err != nil {
		return nil, fmt.Errorf("object number: %w", err)
	}
	p.skipWhitespace()
	gen, err := p.parseInteger()
	if err != nil {
		return nil, fmt.Errorf("generation number: %w", err)
	}
	p.skipWhitespace()
	if !p.expectKeyword("obj") {
		return nil, fmt.Errorf("expected obj keyword at offset %d", p.pos)
	}

	obj, err := p.parseObject()
	if err != nil {
		return nil, fmt.Errorf("object %d %d: %w", num, gen, err)
	}

	p.skipWhitespace()
	// A missing endobj is tolerated; some writers omit it after streams.
	p.expectKeyword("endobj")

	return &IndirectObject{
		Ref:    IndirectRef{Number: num, Generation: gen},
		Object: obj,
	}, nil
}

// parseNumberOrRef parses a number, looking ahead for the "N G R" form
// that marks an indirect reference.
func (p *parser) parseNumberOrRef() (Object, error) {
	start := p.pos
	first, isInt, err := p.parseNumber()
	if err != nil {
		return nil, err
	}
	if !isInt {
		return first, nil
	}

	// Try "G R" after the integer. Roll back unless both appear.
	save := p.pos
	p.skipWhitespace()
	if !p.atEnd() && isDigit(p.peek()) {
		gen, genErr := p.parseInteger()
		if genErr == nil {
			p.skipWhitespace()
			if p.expectKeyword("R") {
				num := int(first.(Int))
				if num <= 0 || gen < 0 {
					return nil, fmt.Errorf("invalid reference %d %d R at offset %d", num, gen, start)
				}
				return IndirectRef{Number: num, Generation: gen}, nil
			}
		}
	}
	p.pos = save
	return first, nil
}

// parseNumber parses an integer or real and reports which it was.
func (p *parser) parseNumber() (Object, bool, error) {
	start := p.pos
	if p.peek() == '+' || p.peek() == '-' {
		p.pos++
	}
	hasDigits := false
	isReal := false
	for !p.atEnd() {
		c := p.data[p.pos]
		if isDigit(c) {
			hasDigits = true
			p.pos++
		} else if c == '.' && !isReal {
			isReal = true
			p.pos++
		} else {
			break
		}
	}
	if !hasDigits {
		return nil, false, fmt.Errorf("malformed number at offset %d", start)
	}
	text := string(p.data[start:p.pos])
	if isReal {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, false, fmt.Errorf("malformed real %q at offset %d", text, start)
		}
		return Real(v), false, nil
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, false, fmt.Errorf("malformed integer %q at offset %d", text, start)
	}
	return Int(v), true, nil
}

func (p *parser) parseInteger() (int, error) {
	p.skipWhitespace()
	obj, isInt, err := p.parseNumber()
	if err != nil {
		return 0, err
	}
	if !isInt {
		return 0, fmt.Errorf("expected integer at offset %d", p.pos)
	}
	return int(obj.(Int)), nil
}

func (p *parser) parseBool() (Object, error) {
	if p.expectKeyword("true") {
		return Bool(true), nil
	}
	if p.expectKeyword("false") {
		return Bool(false), nil
	}
	return nil, fmt.Errorf("malformed boolean at offset %d", p.pos)
}

func (p *parser) parseNull() (Object, error) {
	if p.expectKeyword("null") {
		return Null{}, nil
	}
	return nil, fmt.Errorf("malformed null at offset %d", p.pos)
}

// parseName parses /Name. Two-digit hex escapes introduced by # are
// decoded into the stored value.
func (p *parser) parseName() (Object, error) {
	p.pos++ // consume /
	var buf bytes.Buffer
	for !p.atEnd() {
		c := p.data[p.pos]
		if isPDFWhitespace(c) || isDelimiter(c) {
			break
		}
		if c == '#' && p.pos+2 < len(p.data) {
			hi, ok1 := hexNibble(p.data[p.pos+1])
			lo, ok2 := hexNibble(p.data[p.pos+2])
			if ok1 && ok2 {
				buf.WriteByte(hi<<4 | lo)
				p.pos += 3
				continue
			}
		}
		buf.WriteByte(c)
		p.pos++
	}
	return Name(buf.String()), nil
}

// parseLiteralString parses (string) with balanced-parenthesis tracking
// and backslash escapes.
func (p *parser) parseLiteralString() (Object, error) {
	p.pos++ // consume (
	var buf bytes.Buffer
	depth := 1
	for !p.atEnd() {
		c := p.data[p.pos]
		p.pos++
		switch c {
		case '\\':
			if p.atEnd() {
				return nil, fmt.Errorf("unterminated string escape at offset %d", p.pos)
			}
			e := p.data[p.pos]
			p.pos++
			switch e {
			case 'n':
				buf.WriteByte('\n')
			case 'r':
				buf.WriteByte('\r')
			case 't':
				buf.WriteByte('\t')
			case 'b':
				buf.WriteByte('\b')
			case 'f':
				buf.WriteByte('\f')
			case '(', ')', '\\':
				buf.WriteByte(e)
			case '\r':
				// Line continuation; swallow a following LF too.
				if !p.atEnd() && p.data[p.pos] == '\n' {
					p.pos++
				}
			case '\n':
				// Line continuation.
			default:
				if e >= '0' && e <= '7' {
					val := int(e - '0')
					for n := 0; n < 2 && !p.atEnd(); n++ {
						d := p.data[p.pos]
						if d < '0' || d > '7' {
							break
						}
						val = val*8 + int(d-'0')
						p.pos++
					}
					buf.WriteByte(byte(val))
				} else {
					buf.WriteByte(e)
				}
			}
		case '(':
			depth++
			buf.WriteByte(c)
		case ')':
			depth--
			if depth == 0 {
				return String(buf.String()), nil
			}
			buf.WriteByte(c)
		default:
			buf.WriteByte(c)
		}
	}
	return nil, fmt.Errorf("unterminated literal string")
}

// parseHexString parses <hexdigits>. An odd final digit is padded with
// zero, and whitespace between digits is ignored.
func (p *parser) parseHexString() (Object, error) {
	p.pos++ // consume <
	var buf bytes.Buffer
	var pending byte
	havePending := false
	for !p.atEnd() {
		c := p.data[p.pos]
		p.pos++
		if c == '>' {
			if havePending {
				buf.WriteByte(pending << 4)
			}
			return String(buf.String()), nil
		}
		if isPDFWhitespace(c) {
			continue
		}
		v, ok := hexNibble(c)
		if !ok {
			return nil, fmt.Errorf("invalid hex digit %q at offset %d", c, p.pos-1)
		}
		if havePending {
			buf.WriteByte(pending<<4 | v)
			havePending = false
		} else {
			pending = v
			havePending = true
		}
	}
	return nil, fmt.Errorf("unterminated hex string")
}

func (p *parser) parseArray() (Object, error) {
	p.pos++ // consume [
	arr := Array{}
	for {
		p.skipWhitespace()
		if p.atEnd() {
			return nil, fmt.Errorf("unterminated array")
		}
		if p.peek() == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.parseObject()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

// parseDictOrStream parses a dictionary and, when the stream keyword
// follows it, the stream body as well.
func (p *parser) parseDictOrStream() (Object, error) {
	p.pos += 2 // consume <<
	dict := Dict{}
	for {
		p.skipWhitespace()
		if p.atEnd() {
			return nil, fmt.Errorf("unterminated dictionary")
		}
		if p.peek() == '>' {
			if p.pos+1 < len(p.data) && p.data[p.pos+1] == '>' {
				p.pos += 2
				break
			}
			return nil, fmt.Errorf("stray > in dictionary at offset %d", p.pos)
		}
		if p.peek() != '/' {
			return nil, fmt.Errorf("expected name key at offset %d", p.pos)
		}
		key, err := p.parseName()
		if err != nil {
			return nil, err
		}
		val, err := p.parseObject()
		if err != nil {
			return nil, fmt.Errorf("value for /%s: %w", key.(Name), err)
		}
		dict[string(key.(Name))] = val
	}

	save := p.pos
	p.skipWhitespace()
	if p.expectKeyword("stream") {
		return p.parseStreamBody(dict)
	}
	p.pos = save
	return dict, nil
}

// parseStreamBody reads the raw bytes between stream and endstream.
// The stream keyword must be followed by LF or CRLF before the data.
func (p *parser) parseStreamBody(dict Dict) (Object, error) {
	if !p.atEnd() && p.data[p.pos] == '\r' {
		p.pos++
	}
	if !p.atEnd() && p.data[p.pos] == '\n' {
		p.pos++
	}
	start := p.pos

	length, ok := p.streamLength(dict)
	if ok && start+length <= len(p.data) {
		end := start + length
		// Verify endstream actually follows; fall back to scanning when
		// the recorded Length is wrong.
		probe := p.data[end:]
		trimmed := 0
		for trimmed < len(probe) && isPDFWhitespace(probe[trimmed]) {
			trimmed++
		}
		if bytes.HasPrefix(probe[trimmed:], []byte("endstream")) {
			p.pos = end + trimmed + len("endstream")
			return &Stream{Dict: dict, Data: p.data[start:end]}, nil
		}
	}

	idx := bytes.Index(p.data[start:], []byte("endstream"))
	if idx < 0 {
		return nil, fmt.Errorf("stream at offset %d has no endstream", start)
	}
	end := start + idx
	// Strip the EOL the writer put before endstream.
	if end > start && p.data[end-1] == '\n' {
		end--
	}
	if end > start && p.data[end-1] == '\r' {
		end--
	}
	p.pos = start + idx + len("endstream")
	return &Stream{Dict: dict, Data: p.data[start:end]}, nil
}

// streamLength resolves the Length entry, following one level of
// indirection when a resolver is available.
func (p *parser) streamLength(dict Dict) (int, bool) {
	switch v := dict.Get("Length").(type) {
	case Int:
		if v >= 0 {
			return int(v), true
		}
	case IndirectRef:
		if p.resolve != nil {
			if n, err := p.resolve(v); err == nil && n >= 0 {
				return n, true
			}
		}
	}
	return 0, false
}

// expectKeyword consumes the keyword when it appears at the current
// position with a proper boundary after it.
func (p *parser) expectKeyword(kw string) bool {
	if !bytes.HasPrefix(p.data[p.pos:], []byte(kw)) {
		return false
	}
	end := p.pos + len(kw)
	if end < len(p.data) {
		c := p.data[end]
		if !isPDFWhitespace(c) && !isDelimiter(c) {
			return false
		}
	}
	p.pos = end
	return true
}

func isPDFWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func hexNibble(c byte) (byte, bool) {
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
