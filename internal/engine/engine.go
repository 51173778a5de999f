package engine

import (
	"errors"
	"fmt"
)

// Kind represents token kinds produced by the tokenizer.
type Kind int

const (
	KindUndefined Kind = iota
	KindObject
	KindArray
	KindString
	KindPrimitive
)

func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	case KindString:
		return "string"
	case KindPrimitive:
		return "primitive"
	default:
		return "undefined"
	}
}

// Token is a typed byte span of the input. Start and End delimit [Start, End);
// string spans exclude the quotes. Size counts immediate children: keys for an
// object, the value for a key string, elements for an array.
type Token struct {
	Kind  Kind
	Start int
	End   int
	Size  int
}

var (
	// ErrTokenBudgetExceeded reports that the token slice is too small.
	ErrTokenBudgetExceeded = errors.New("engine: token budget exceeded")
	// ErrInvalidCharacter reports a byte that is not allowed at its position.
	ErrInvalidCharacter = errors.New("engine: invalid character")
	// ErrUnexpectedEnd reports an unterminated string, object or array.
	ErrUnexpectedEnd = errors.New("engine: unexpected end of input")
)

// SyntaxError carries one of the tokenizer sentinels and the byte offset where
// tokenizing stopped.
type SyntaxError struct {
	Err    error
	Offset int
}

func (e *SyntaxError) Error() string { return fmt.Sprintf("%v at offset %d", e.Err, e.Offset) }

func (e *SyntaxError) Unwrap() error { return e.Err }

// Tokenize runs the two-pass protocol: a counting pass, an allocation of
// exactly the counted size, and a fill pass. The returned slice is owned by the
// caller and is meant to be dropped once the tokens are consumed.
func Tokenize(js []byte) ([]Token, error) { return TokenizeMax(js, 0) }

// TokenizeMax is Tokenize with a cap on the token count; maxTokens <= 0 means
// no cap. A count above the cap fails with ErrTokenBudgetExceeded before the
// token slice is allocated.
func TokenizeMax(js []byte, maxTokens int) ([]Token, error) {
	var p Tokenizer
	n, err := p.Tokenize(js, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if maxTokens > 0 && n > maxTokens {
		return nil, &SyntaxError{Err: ErrTokenBudgetExceeded, Offset: 0}
	}
	toks := make([]Token, n)
	p.Reset()
	n, err = p.Tokenize(js, toks)
	if err != nil {
		return nil, err
	}
	return toks[:n], nil
}
