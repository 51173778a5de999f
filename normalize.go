package cspjson

import (
	"slices"
	"sort"
)

// Normalize puts csp in canonical form: domain values ascending and binary
// no-goods in lexicographic order. It requires every domain to be a values
// domain and every definition to be a no-goods list of arity 2; all of this
// is checked before anything is modified. Normalize is idempotent.
func Normalize(csp *Csp) error {
	if csp == nil {
		return newIssue(CodeNullOrInvalidArgument, "", -1)
	}
	var n normalizer
	root := PathRef{}
	for i, d := range csp.Domains {
		if d == nil || d.Accept(&n) != nil {
			return root.Field("domains").Index(i).Issue(CodeDomainsTypeInvalid, -1)
		}
	}
	for i, d := range csp.ConstraintDefs {
		path := root.Field("constraintDefs").Index(i)
		if d == nil || d.Accept(&n) != nil {
			return path.Issue(CodeConstraintDefTypeInvalid, -1)
		}
		if d.Arity() != 2 {
			return path.Issue(CodeNoGoodsInconsistentArity, -1)
		}
	}

	for _, vals := range n.values {
		slices.Sort(vals.Data())
	}
	for _, ng := range n.noGoods {
		sort.Sort(pairs(ng.Data()))
	}
	return nil
}

// normalizer collects the stores to sort while checking variants.
type normalizer struct {
	values  []*Tuples
	noGoods []*Tuples
}

func (n *normalizer) VisitValues(d *ValuesDomain) error {
	n.values = append(n.values, &d.Values)
	return nil
}

func (n *normalizer) VisitNoGoods(d *NoGoodsDef) error {
	n.noGoods = append(n.noGoods, &d.NoGoods)
	return nil
}

// pairs sorts a row-major list of 2-tuples in place.
type pairs []int

func (p pairs) Len() int { return len(p) / 2 }

func (p pairs) Less(i, j int) bool {
	if p[2*i] != p[2*j] {
		return p[2*i] < p[2*j]
	}
	return p[2*i+1] < p[2*j+1]
}

func (p pairs) Swap(i, j int) {
	p[2*i], p[2*j] = p[2*j], p[2*i]
	p[2*i+1], p[2*j+1] = p[2*j+1], p[2*i+1]
}
