package stream

import (
	eng "github.com/michal-dobrogost/csp-json/internal/engine"
)

// Cursor walks a pre-order token array produced by the engine tokenizer. It
// never builds a tree: subtrees are skipped by following the per-token child
// counts.
type Cursor struct {
	js   []byte
	toks []eng.Token
	pos  int
}

// NewCursor constructs a cursor positioned on the first token of toks.
func NewCursor(js []byte, toks []eng.Token) *Cursor {
	return &Cursor{js: js, toks: toks}
}

// Done reports whether all tokens were consumed.
func (c *Cursor) Done() bool { return c.pos >= len(c.toks) }

// Pos returns the index of the current token.
func (c *Cursor) Pos() int { return c.pos }

// Peek returns the current token without consuming it. Once the cursor is
// exhausted it returns the zero Token, whose Kind is KindUndefined.
func (c *Cursor) Peek() eng.Token {
	if c.Done() {
		return eng.Token{}
	}
	return c.toks[c.pos]
}

// Kind is shorthand for Peek().Kind.
func (c *Cursor) Kind() eng.Kind { return c.Peek().Kind }

// Size is shorthand for Peek().Size.
func (c *Cursor) Size() int { return c.Peek().Size }

// Next consumes the current token and returns it.
func (c *Cursor) Next() eng.Token {
	tok := c.Peek()
	if !c.Done() {
		c.pos++
	}
	return tok
}

// Skip consumes the current token together with its whole subtree and
// returns the subtree root.
func (c *Cursor) Skip() eng.Token {
	root := c.Peek()
	remaining := 1
	for remaining > 0 && !c.Done() {
		remaining += c.toks[c.pos].Size - 1
		c.pos++
	}
	return root
}

// Text returns the bytes spanned by tok as a string (without the quotes of a
// string token).
func (c *Cursor) Text(tok eng.Token) string {
	if tok.Kind == eng.KindUndefined || tok.End < tok.Start {
		return ""
	}
	return string(c.js[tok.Start:tok.End])
}

// Raw returns the verbatim input of tok, quotes included for strings.
func (c *Cursor) Raw(tok eng.Token) string {
	if tok.Kind == eng.KindString {
		return string(c.js[tok.Start-1 : tok.End+1])
	}
	return c.Text(tok)
}

// Is reports whether tok is a string token equal to s.
func (c *Cursor) Is(tok eng.Token, s string) bool {
	return tok.Kind == eng.KindString && tok.End-tok.Start == len(s) && string(c.js[tok.Start:tok.End]) == s
}
