package cspjson

// IsSolved reports whether solution satisfies csp. solution is flat with one
// value per variable.
//
// Errors and the verdict travel separately: a structural problem with csp
// (the error of Validate, unchanged) or with solution is returned as an
// error, while an assignment that leaves a domain or hits a no-good is a
// plain false.
func IsSolved(csp *Csp, solution Tuples) (bool, error) {
	if err := Validate(csp); err != nil {
		return false, err
	}
	root := PathRef{}
	if !solution.IsFlat() {
		return false, root.Issue(CodeSolutionArityInvalid, -1)
	}
	if solution.Len() != csp.Vars.Len() {
		return false, root.Issue(CodeSolutionSizeMismatch, -1)
	}

	for i, dom := range csp.Vars.Data() {
		in := inDomain{value: solution.At(i)}
		if err := csp.Domains[dom].Accept(&in); err != nil {
			return false, err
		}
		if !in.ok {
			return false, nil
		}
	}

	for i := range csp.Constraints {
		c := &csp.Constraints[i]
		v := violates{vars: c.Vars.Data(), solution: solution.Data()}
		if err := csp.ConstraintDefs[c.ID].Accept(&v); err != nil {
			return false, err
		}
		if v.hit {
			return false, nil
		}
	}
	return true, nil
}

type inDomain struct {
	value int
	ok    bool
}

func (d *inDomain) VisitValues(vd *ValuesDomain) error {
	d.ok = vd.Values.Contains(d.value)
	return nil
}

// violates projects the solution onto one constraint's variables and looks
// for an equal no-good.
type violates struct {
	vars     []int
	solution []int
	hit      bool
}

func (v *violates) VisitNoGoods(d *NoGoodsDef) error {
	if d.NoGoods.Arity() != len(v.vars) {
		return nil
	}
	for i := 0; i < d.NoGoods.Len(); i++ {
		if v.matches(d.NoGoods.Tuple(i)) {
			v.hit = true
			return nil
		}
	}
	return nil
}

func (v *violates) matches(ng []int) bool {
	for k, x := range v.vars {
		if v.solution[x] != ng[k] {
			return false
		}
	}
	return true
}
