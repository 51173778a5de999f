package engine

// Tokenizer is a strict, allocation-free JSON lexer over a caller-provided
// token slice. The zero value is ready to use; Reset rewinds it for another
// pass over the same or a different input.
type Tokenizer struct {
	pos   int // offset in the input
	next  int // next token to allocate
	super int // index of the enclosing token, -1 at top level
	init  bool
}

// Reset rewinds the tokenizer to the start of the input.
func (p *Tokenizer) Reset() {
	p.pos = 0
	p.next = 0
	p.super = -1
	p.init = true
}

// Tokenize lexes js into tokens and returns the number of tokens the input
// needs. With an empty tokens slice it only counts; otherwise it fills tokens
// and fails with ErrTokenBudgetExceeded when the slice is too small. A NUL byte
// ends the input.
func (p *Tokenizer) Tokenize(js []byte, tokens []Token) (int, error) {
	if !p.init {
		p.Reset()
	}
	counting := len(tokens) == 0
	count := p.next

	for ; p.pos < len(js) && js[p.pos] != 0; p.pos++ {
		c := js[p.pos]
		switch c {
		case '{', '[':
			count++
			if counting {
				break
			}
			tok := p.alloc(tokens)
			if tok == nil {
				return 0, p.fail(ErrTokenBudgetExceeded)
			}
			if p.super != -1 {
				parent := &tokens[p.super]
				// an object or array can't become a key
				if parent.Kind == KindObject {
					return 0, p.fail(ErrInvalidCharacter)
				}
				parent.Size++
			}
			if c == '{' {
				tok.Kind = KindObject
			} else {
				tok.Kind = KindArray
			}
			tok.Start = p.pos
			p.super = p.next - 1
		case '}', ']':
			if counting {
				break
			}
			kind := KindArray
			if c == '}' {
				kind = KindObject
			}
			i := p.next - 1
			for ; i >= 0; i-- {
				tok := &tokens[i]
				if tok.Start != -1 && tok.End == -1 {
					if tok.Kind != kind {
						return 0, p.fail(ErrInvalidCharacter)
					}
					p.super = -1
					tok.End = p.pos + 1
					break
				}
			}
			if i == -1 {
				return 0, p.fail(ErrInvalidCharacter)
			}
			for ; i >= 0; i-- {
				tok := &tokens[i]
				if tok.Start != -1 && tok.End == -1 {
					p.super = i
					break
				}
			}
		case '"':
			if err := p.parseString(js, tokens); err != nil {
				return 0, err
			}
			count++
			if p.super != -1 && !counting {
				tokens[p.super].Size++
			}
		case '\t', '\r', '\n', ' ':
		case ':':
			p.super = p.next - 1
		case ',':
			if !counting && p.super != -1 &&
				tokens[p.super].Kind != KindArray &&
				tokens[p.super].Kind != KindObject {
				for i := p.next - 1; i >= 0; i-- {
					if tokens[i].Kind == KindArray || tokens[i].Kind == KindObject {
						if tokens[i].Start != -1 && tokens[i].End == -1 {
							p.super = i
							break
						}
					}
				}
			}
		case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 't', 'f', 'n':
			// primitives can't be keys, and a key takes a single value
			if !counting && p.super != -1 {
				parent := &tokens[p.super]
				if parent.Kind == KindObject || (parent.Kind == KindString && parent.Size != 0) {
					return 0, p.fail(ErrInvalidCharacter)
				}
			}
			if err := p.parsePrimitive(js, tokens); err != nil {
				return 0, err
			}
			count++
			if p.super != -1 && !counting {
				tokens[p.super].Size++
			}
		default:
			return 0, p.fail(ErrInvalidCharacter)
		}
	}

	if !counting {
		for i := p.next - 1; i >= 0; i-- {
			if tokens[i].Start != -1 && tokens[i].End == -1 {
				return 0, p.fail(ErrUnexpectedEnd)
			}
		}
	}
	return count, nil
}

func (p *Tokenizer) alloc(tokens []Token) *Token {
	if p.next >= len(tokens) {
		return nil
	}
	tok := &tokens[p.next]
	p.next++
	*tok = Token{Start: -1, End: -1}
	return tok
}

func (p *Tokenizer) fail(err error) error {
	return &SyntaxError{Err: err, Offset: p.pos}
}

func (p *Tokenizer) parsePrimitive(js []byte, tokens []Token) error {
	start := p.pos
	found := false
scan:
	for ; p.pos < len(js) && js[p.pos] != 0; p.pos++ {
		switch js[p.pos] {
		case '\t', '\r', '\n', ' ', ',', ':', ']', '}':
			found = true
			break scan
		}
		if js[p.pos] < 32 || js[p.pos] >= 127 {
			err := p.fail(ErrInvalidCharacter)
			p.pos = start
			return err
		}
	}
	if !found {
		// a primitive must be followed by a delimiter
		err := p.fail(ErrUnexpectedEnd)
		p.pos = start
		return err
	}
	if len(tokens) == 0 {
		p.pos--
		return nil
	}
	tok := p.alloc(tokens)
	if tok == nil {
		p.pos = start
		return p.fail(ErrTokenBudgetExceeded)
	}
	*tok = Token{Kind: KindPrimitive, Start: start, End: p.pos}
	p.pos--
	return nil
}

func (p *Tokenizer) parseString(js []byte, tokens []Token) error {
	start := p.pos
	p.pos++ // opening quote

	for ; p.pos < len(js) && js[p.pos] != 0; p.pos++ {
		c := js[p.pos]
		if c == '"' {
			if len(tokens) == 0 {
				return nil
			}
			tok := p.alloc(tokens)
			if tok == nil {
				p.pos = start
				return p.fail(ErrTokenBudgetExceeded)
			}
			*tok = Token{Kind: KindString, Start: start + 1, End: p.pos}
			return nil
		}
		if c < 0x20 {
			err := p.fail(ErrInvalidCharacter)
			p.pos = start
			return err
		}
		if c == '\\' && p.pos+1 < len(js) {
			p.pos++
			switch js[p.pos] {
			case '"', '/', '\\', 'b', 'f', 'r', 'n', 't':
			case 'u':
				p.pos++
				for i := 0; i < 4 && p.pos < len(js) && js[p.pos] != 0; i++ {
					if !isHex(js[p.pos]) {
						err := p.fail(ErrInvalidCharacter)
						p.pos = start
						return err
					}
					p.pos++
				}
				p.pos--
			default:
				err := p.fail(ErrInvalidCharacter)
				p.pos = start
				return err
			}
		}
	}
	p.pos = start
	return p.fail(ErrUnexpectedEnd)
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'F') || (c >= 'a' && c <= 'f')
}
