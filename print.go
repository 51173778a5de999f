package cspjson

import (
	"io"
	"strconv"

	json "github.com/goccy/go-json"
)

// Print writes csp as CSP-JSON text to w. Nothing is written unless the
// whole document renders.
func Print(w io.Writer, csp *Csp, opts ...PrintOpt) error {
	b, err := Marshal(csp, opts...)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// Marshal renders csp in the fixed layout: fields in the order meta,
// domains, vars, constraintDefs, constraints, two-space indentation, one
// domain, definition or constraint per line, and inline integer lists.
func Marshal(csp *Csp, opts ...PrintOpt) ([]byte, error) {
	if csp == nil {
		return nil, newIssue(CodeNullOrInvalidArgument, "", -1)
	}
	pr := printer{opt: lastPrintOpt(opts)}
	if err := pr.csp(csp); err != nil {
		return nil, err
	}
	return pr.buf, nil
}

// PrintTuples writes t as a JSON array: [1, 2] when flat, [[1, 2], [3, 4]]
// otherwise.
func PrintTuples(w io.Writer, t Tuples) error {
	_, err := w.Write(AppendTuples(nil, t))
	return err
}

// AppendTuples appends the JSON rendering of t to dst.
func AppendTuples(dst []byte, t Tuples) []byte {
	dst = append(dst, '[')
	w := width(t.arity)
	for i := 0; i < t.size; i++ {
		if i > 0 {
			dst = append(dst, ", "...)
		}
		if t.arity != Flat {
			dst = append(dst, '[')
		}
		for j := 0; j < w; j++ {
			if j > 0 {
				dst = append(dst, ", "...)
			}
			dst = strconv.AppendInt(dst, int64(t.data[i*w+j]), 10)
		}
		if t.arity != Flat {
			dst = append(dst, ']')
		}
	}
	return append(dst, ']')
}

// PrintConstraintDef writes d on a single line, for example
// {"noGoods": [[0, 0], [1, 1]]}.
func PrintConstraintDef(w io.Writer, d ConstraintDef) error {
	var pr printer
	if err := pr.constraintDef(d, PathRef{}); err != nil {
		return err
	}
	_, err := w.Write(pr.buf)
	return err
}

type printer struct {
	opt PrintOpt
	buf []byte
}

func (pr *printer) str(s string) error {
	if !pr.opt.EscapeStrings {
		pr.buf = append(pr.buf, '"')
		pr.buf = append(pr.buf, s...)
		pr.buf = append(pr.buf, '"')
		return nil
	}
	q, err := json.MarshalNoEscape(s)
	if err != nil {
		return err
	}
	pr.buf = append(pr.buf, q...)
	return nil
}

func (pr *printer) csp(csp *Csp) error {
	root := PathRef{}
	pr.buf = append(pr.buf, "{\n  \"meta\": {\n    \"id\": "...)
	if err := pr.str(csp.Meta.ID); err != nil {
		return err
	}
	pr.buf = append(pr.buf, ",\n    \"algo\": "...)
	if err := pr.str(csp.Meta.Algo); err != nil {
		return err
	}
	pr.buf = append(pr.buf, ",\n    \"params\": "...)
	if csp.Meta.ParamsJSON == "" {
		pr.buf = append(pr.buf, "null"...)
	} else {
		pr.buf = append(pr.buf, csp.Meta.ParamsJSON...)
	}
	pr.buf = append(pr.buf, "\n  },\n"...)

	pr.buf = append(pr.buf, "  \"domains\": ["...)
	for i, d := range csp.Domains {
		pr.item(i)
		if err := pr.domain(d, root.Field("domains").Index(i)); err != nil {
			return err
		}
	}
	pr.close(len(csp.Domains), ",\n")

	pr.buf = append(pr.buf, "  \"vars\": "...)
	pr.buf = AppendTuples(pr.buf, csp.Vars)
	pr.buf = append(pr.buf, ",\n"...)

	pr.buf = append(pr.buf, "  \"constraintDefs\": ["...)
	for i, d := range csp.ConstraintDefs {
		pr.item(i)
		if err := pr.constraintDef(d, root.Field("constraintDefs").Index(i)); err != nil {
			return err
		}
	}
	pr.close(len(csp.ConstraintDefs), ",\n")

	pr.buf = append(pr.buf, "  \"constraints\": ["...)
	for i := range csp.Constraints {
		c := &csp.Constraints[i]
		pr.item(i)
		pr.buf = append(pr.buf, "{\"id\": "...)
		pr.buf = strconv.AppendInt(pr.buf, int64(c.ID), 10)
		pr.buf = append(pr.buf, ", \"vars\": "...)
		pr.buf = AppendTuples(pr.buf, c.Vars)
		pr.buf = append(pr.buf, '}')
	}
	pr.close(len(csp.Constraints), "\n")

	pr.buf = append(pr.buf, "}\n"...)
	return nil
}

// item starts the i-th line of an array field.
func (pr *printer) item(i int) {
	if i > 0 {
		pr.buf = append(pr.buf, ',')
	}
	pr.buf = append(pr.buf, "\n    "...)
}

// close ends an array field of n items; empty arrays stay on one line.
func (pr *printer) close(n int, tail string) {
	if n > 0 {
		pr.buf = append(pr.buf, "\n  "...)
	}
	pr.buf = append(pr.buf, ']')
	pr.buf = append(pr.buf, tail...)
}

func (pr *printer) domain(d Domain, path PathRef) error {
	if d == nil || d.Accept(pr) != nil {
		return path.Issue(CodeDomainUnknownField, -1)
	}
	return nil
}

func (pr *printer) constraintDef(d ConstraintDef, path PathRef) error {
	if d == nil || d.Accept(pr) != nil {
		return path.Issue(CodeConstraintDefUnknownType, -1)
	}
	return nil
}

func (pr *printer) VisitValues(d *ValuesDomain) error {
	pr.buf = append(pr.buf, "{\"values\": "...)
	pr.buf = AppendTuples(pr.buf, d.Values)
	pr.buf = append(pr.buf, '}')
	return nil
}

func (pr *printer) VisitNoGoods(d *NoGoodsDef) error {
	pr.buf = append(pr.buf, "{\"noGoods\": "...)
	pr.buf = AppendTuples(pr.buf, d.NoGoods)
	pr.buf = append(pr.buf, '}')
	return nil
}
