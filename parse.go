package cspjson

import (
	"errors"
	"strconv"

	eng "github.com/michal-dobrogost/csp-json/internal/engine"
	"github.com/michal-dobrogost/csp-json/internal/stream"
)

// Parse decodes a CSP-JSON document into csp. csp is freed first.
//
// On failure csp may be partially populated (see the ownership notes on Csp);
// call csp.Free either way.
func Parse(data []byte, csp *Csp, opts ...ParseOpt) error {
	if csp == nil {
		return newIssue(CodeNullOrInvalidArgument, "", -1)
	}
	csp.Free()
	p, err := newParser(data, lastParseOpt(opts))
	if err != nil {
		return err
	}
	return p.top(csp)
}

// ParseTuples decodes a JSON array of integers or of equal-length integer
// arrays. An empty array yields a store of defaultArity, which must be Flat
// or greater.
func ParseTuples(defaultArity int, data []byte, opts ...ParseOpt) (Tuples, error) {
	if defaultArity < Flat {
		return Tuples{}, newIssue(CodeNullOrInvalidArgument, "", -1)
	}
	p, err := newParser(data, lastParseOpt(opts))
	if err != nil {
		return Tuples{}, err
	}
	return p.tuples(defaultArity, PathRef{}, genericTuples)
}

// ParseConstraintDef decodes a single constraint definition object such as
// {"noGoods": [[0, 0], [1, 1]]}.
func ParseConstraintDef(data []byte, opts ...ParseOpt) (ConstraintDef, error) {
	p, err := newParser(data, lastParseOpt(opts))
	if err != nil {
		return nil, err
	}
	return p.constraintDef(PathRef{})
}

// parser walks the transient token array of one document. The tokens are
// dropped with the parser once the call returns.
type parser struct {
	js  []byte
	cur *stream.Cursor
}

func newParser(data []byte, opt ParseOpt) (*parser, error) {
	toks, err := eng.TokenizeMax(data, opt.MaxTokens)
	if err != nil {
		return nil, engineIssue(err)
	}
	if len(toks) == 0 {
		return nil, newIssue(CodeNullOrInvalidArgument, "", -1)
	}
	eopt := eng.EnforceOptions{MaxDepth: opt.MaxDepth}
	switch opt.OnDuplicateKey {
	case Warn:
		eopt.OnDuplicate = eng.DupWarn
	case Error:
		eopt.OnDuplicate = eng.DupError
	}
	if opt.OnWarning != nil {
		eopt.IssueSink = func(si eng.SimpleIssue) {
			opt.OnWarning(*newIssue(Code(si.Code), si.Path, int64(si.Offset)))
		}
	}
	if err := eng.Enforce(data, toks, eopt); err != nil {
		return nil, engineIssue(err)
	}
	return &parser{js: data, cur: stream.NewCursor(data, toks)}, nil
}

// engineIssue maps tokenizer and enforcement failures to Issues.
func engineIssue(err error) error {
	var se *eng.SyntaxError
	if errors.As(err, &se) {
		code := CodeInvalidCharacter
		switch {
		case errors.Is(se.Err, eng.ErrTokenBudgetExceeded):
			code = CodeTokenBudgetExceeded
		case errors.Is(se.Err, eng.ErrUnexpectedEnd):
			code = CodeUnexpectedEnd
		}
		is := newIssue(code, "", int64(se.Offset))
		is.Cause = err
		return is
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		is := newIssue(Code(ie.Code), ie.Path, int64(ie.Offset))
		is.Cause = err
		return is
	}
	return &Issue{Code: CodeNullOrInvalidArgument, Message: err.Error(), Offset: -1, Cause: err}
}

func (p *parser) offset(tok eng.Token) int64 {
	switch tok.Kind {
	case eng.KindUndefined:
		return int64(len(p.js))
	case eng.KindString:
		return int64(tok.Start - 1)
	}
	return int64(tok.Start)
}

func (p *parser) fail(code Code, path PathRef, tok eng.Token) error {
	return path.Issue(code, p.offset(tok))
}

// key consumes an object member key. A member must be a string key holding
// exactly one value.
func (p *parser) key(code Code, path PathRef) (string, eng.Token, error) {
	tok := p.cur.Next()
	if tok.Kind != eng.KindString || tok.Size != 1 {
		return "", tok, p.fail(code, path, tok)
	}
	return p.cur.Text(tok), tok, nil
}

// int reads an integer primitive: an optional '-' and one or more digits
// that fit in an int.
func (p *parser) int(tok eng.Token) (int, bool) {
	if tok.Kind != eng.KindPrimitive {
		return 0, false
	}
	return parseInt(p.js[tok.Start:tok.End])
}

func parseInt(b []byte) (int, bool) {
	digits := b
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return 0, false
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(string(b))
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p *parser) top(csp *Csp) error {
	root := PathRef{}
	tok := p.cur.Peek()
	if tok.Kind != eng.KindObject {
		return p.fail(CodeTopNotObject, root, tok)
	}
	if tok.Size != 5 {
		return p.fail(CodeTopBadFieldCount, root, tok)
	}
	p.cur.Next()
	for i := 0; i < tok.Size; i++ {
		name, ktok, err := p.key(CodeTopNotObject, root)
		if err != nil {
			return err
		}
		path := root.Field(name)
		switch name {
		case "meta":
			err = p.meta(&csp.Meta, path)
		case "domains":
			err = p.domains(&csp.Domains, path)
		case "vars":
			err = p.vars(&csp.Vars, path)
		case "constraintDefs":
			err = p.constraintDefs(&csp.ConstraintDefs, path)
		case "constraints":
			err = p.constraints(&csp.Constraints, path)
		default:
			err = p.fail(CodeTopUnknownField, path, ktok)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (p *parser) meta(m *Meta, path PathRef) error {
	tok := p.cur.Peek()
	if tok.Kind != eng.KindObject || tok.Size != 3 {
		return p.fail(CodeMetaNotObject, path, tok)
	}
	p.cur.Next()
	for i := 0; i < tok.Size; i++ {
		name, ktok, err := p.key(CodeMetaNotObject, path)
		if err != nil {
			return err
		}
		switch name {
		case "id":
			if p.cur.Kind() != eng.KindString {
				return p.fail(CodeMetaIdNotString, path.Field(name), p.cur.Peek())
			}
			m.ID = p.cur.Text(p.cur.Next())
		case "algo":
			if p.cur.Kind() != eng.KindString {
				return p.fail(CodeMetaAlgoNotString, path.Field(name), p.cur.Peek())
			}
			m.Algo = p.cur.Text(p.cur.Next())
		case "params":
			m.ParamsJSON = p.cur.Raw(p.cur.Skip())
		default:
			return p.fail(CodeMetaUnknownField, path.Field(name), ktok)
		}
	}
	return nil
}

func (p *parser) domains(dst *[]Domain, path PathRef) error {
	tok := p.cur.Peek()
	if tok.Kind != eng.KindArray {
		return p.fail(CodeDomainsNotArray, path, tok)
	}
	p.cur.Next()
	freeDomains(dst)
	if tok.Size == 0 {
		return nil
	}
	*dst = make([]Domain, tok.Size)
	for i := range *dst {
		d, err := p.domain(path.Index(i))
		if err != nil {
			freeDomains(dst)
			return err
		}
		(*dst)[i] = d
	}
	return nil
}

func (p *parser) domain(path PathRef) (Domain, error) {
	tok := p.cur.Peek()
	if tok.Kind != eng.KindObject || tok.Size != 1 {
		return nil, p.fail(CodeDomainNotObject, path, tok)
	}
	p.cur.Next()
	name, ktok, err := p.key(CodeDomainNotObject, path)
	if err != nil {
		return nil, err
	}
	if name != "values" {
		return nil, p.fail(CodeDomainUnknownField, path.Field(name), ktok)
	}
	vals, err := p.tuples(Flat, path.Field(name), domainValueTuples)
	if err != nil {
		return nil, err
	}
	return &ValuesDomain{Values: vals}, nil
}

func (p *parser) vars(dst *Tuples, path PathRef) error {
	dst.Free()
	vars, err := p.tuples(Flat, path, varTuples)
	if err != nil {
		return err
	}
	*dst = vars
	return nil
}

func (p *parser) constraintDefs(dst *[]ConstraintDef, path PathRef) error {
	tok := p.cur.Peek()
	if tok.Kind != eng.KindArray {
		return p.fail(CodeConstraintDefsNotArray, path, tok)
	}
	p.cur.Next()
	freeConstraintDefs(dst)
	if tok.Size == 0 {
		return nil
	}
	*dst = make([]ConstraintDef, tok.Size)
	for i := range *dst {
		d, err := p.constraintDef(path.Index(i))
		if err != nil {
			freeConstraintDefs(dst)
			return err
		}
		(*dst)[i] = d
	}
	return nil
}

// constraintDef reads an object whose single member names the definition
// type. noGoods is the only type.
func (p *parser) constraintDef(path PathRef) (ConstraintDef, error) {
	tok := p.cur.Peek()
	if tok.Kind != eng.KindObject {
		return nil, p.fail(CodeConstraintDefNotObject, path, tok)
	}
	if tok.Size == 0 {
		return nil, p.fail(CodeConstraintDefUnknownType, path, tok)
	}
	p.cur.Next()
	var def *NoGoodsDef
	for i := 0; i < tok.Size; i++ {
		name, ktok, err := p.key(CodeConstraintDefNotObject, path)
		if err == nil && (i > 0 || name != "noGoods") {
			err = p.fail(CodeConstraintDefUnknownType, path.Field(name), ktok)
		}
		if err != nil {
			def.Free()
			return nil, err
		}
		ng, err := p.tuples(0, path.Field(name), noGoodTuples)
		if err != nil {
			return nil, err
		}
		def = &NoGoodsDef{NoGoods: ng}
	}
	return def, nil
}

func (p *parser) constraints(dst *[]Constraint, path PathRef) error {
	tok := p.cur.Peek()
	if tok.Kind != eng.KindArray {
		return p.fail(CodeConstraintsNotArray, path, tok)
	}
	p.cur.Next()
	freeConstraints(dst)
	if tok.Size == 0 {
		return nil
	}
	*dst = make([]Constraint, tok.Size)
	for i := range *dst {
		if err := p.constraint(&(*dst)[i], path.Index(i)); err != nil {
			freeConstraints(dst)
			return err
		}
	}
	return nil
}

// constraint reads {"id": <int>, "vars": [<int>, ...]} in any member order.
// Both members are required.
func (p *parser) constraint(c *Constraint, path PathRef) error {
	tok := p.cur.Peek()
	if tok.Kind != eng.KindObject {
		return p.fail(CodeConstraintNotObject, path, tok)
	}
	p.cur.Next()
	var hasID, hasVars bool
	for i := 0; i < tok.Size; i++ {
		name, ktok, err := p.key(CodeConstraintNotObject, path)
		if err != nil {
			return err
		}
		switch name {
		case "id":
			v, ok := p.int(p.cur.Peek())
			if !ok {
				return p.fail(CodeConstraintIdNotInt, path.Field(name), p.cur.Peek())
			}
			p.cur.Next()
			c.ID = v
			hasID = true
		case "vars":
			c.Vars.Free()
			vars, err := p.tuples(Flat, path.Field(name), constraintVarTuples)
			if err != nil {
				return err
			}
			c.Vars = vars
			hasVars = true
		default:
			return p.fail(CodeConstraintUnknownField, path.Field(name), ktok)
		}
	}
	if !hasID {
		return p.fail(CodeConstraintIdNotInt, path.Field("id"), tok)
	}
	if !hasVars {
		return p.fail(CodeConstraintVarsNotArray, path.Field("vars"), tok)
	}
	return nil
}
