package cspjson

import (
	eng "github.com/michal-dobrogost/csp-json/internal/engine"
)

type tupleShape int

const (
	shapeAny  tupleShape = iota // flat or rows, decided by the first element
	shapeFlat                   // integers only
	shapeRows                   // arrays only
)

// tupleCodes names the failure codes of one tuple field.
type tupleCodes struct {
	notArray Code // the field is not an array
	item     Code // an element does not fit the established shape
	arity    Code // a row length differs from the first row
	value    Code // a row component is not an integer
	shape    tupleShape
}

var (
	genericTuples = tupleCodes{
		notArray: CodeNotAnArray,
		item:     CodeTupleItemTypeMismatch,
		arity:    CodeTupleItemTypeMismatch,
		value:    CodeTupleItemTypeMismatch,
	}
	domainValueTuples = tupleCodes{
		notArray: CodeDomainValuesNotArray,
		item:     CodeDomainValueNotInt,
		arity:    CodeDomainValueNotInt,
		value:    CodeDomainValueNotInt,
		shape:    shapeFlat,
	}
	varTuples = tupleCodes{
		notArray: CodeVarsNotArray,
		item:     CodeVarNotInt,
		arity:    CodeVarNotInt,
		value:    CodeVarNotInt,
	}
	noGoodTuples = tupleCodes{
		notArray: CodeNoGoodsNotArray,
		item:     CodeNoGoodsNotTuple,
		arity:    CodeNoGoodsInconsistentArity,
		value:    CodeNoGoodsValueNotInt,
		shape:    shapeRows,
	}
	constraintVarTuples = tupleCodes{
		notArray: CodeConstraintVarsNotArray,
		item:     CodeConstraintVarNotInt,
		arity:    CodeConstraintVarNotInt,
		value:    CodeConstraintVarNotInt,
	}
)

// tuples reads an array into a Tuples. An empty array takes defaultArity; a
// first element that is an array fixes the row arity; a first element that
// is an integer makes the store flat.
func (p *parser) tuples(defaultArity int, path PathRef, codes tupleCodes) (Tuples, error) {
	tok := p.cur.Peek()
	if tok.Kind != eng.KindArray {
		return Tuples{}, p.fail(codes.notArray, path, tok)
	}
	p.cur.Next()
	if tok.Size == 0 {
		return Tuples{arity: defaultArity}, nil
	}
	first := p.cur.Peek()
	if first.Kind == eng.KindArray && codes.shape != shapeFlat {
		return p.rows(tok.Size, first.Size, path, codes)
	}
	if _, ok := p.int(first); ok && codes.shape != shapeRows {
		return p.flat(tok.Size, path, codes)
	}
	return Tuples{}, p.fail(codes.item, path.Index(0), first)
}

func (p *parser) flat(n int, path PathRef, codes tupleCodes) (Tuples, error) {
	ts, err := NewTuples(n, Flat)
	if err != nil {
		return Tuples{}, err
	}
	for i := 0; i < n; i++ {
		tok := p.cur.Next()
		v, ok := p.int(tok)
		if !ok {
			ts.Free()
			return Tuples{}, p.fail(codes.item, path.Index(i), tok)
		}
		ts.data[i] = v
	}
	return ts, nil
}

func (p *parser) rows(n, arity int, path PathRef, codes tupleCodes) (Tuples, error) {
	ts, err := NewTuples(n, arity)
	if err != nil {
		return Tuples{}, err
	}
	for i := 0; i < n; i++ {
		row := p.cur.Next()
		if row.Kind != eng.KindArray {
			ts.Free()
			return Tuples{}, p.fail(codes.item, path.Index(i), row)
		}
		if row.Size != arity {
			ts.Free()
			return Tuples{}, p.fail(codes.arity, path.Index(i), row)
		}
		for j := 0; j < arity; j++ {
			tok := p.cur.Next()
			v, ok := p.int(tok)
			if !ok {
				ts.Free()
				return Tuples{}, p.fail(codes.value, path.Index(i).Index(j), tok)
			}
			ts.data[i*arity+j] = v
		}
	}
	return ts, nil
}
