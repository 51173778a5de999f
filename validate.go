package cspjson

// Validate checks the referential invariants of csp and returns the first
// violation. It never mutates csp. Checks run in this order:
//
//  1. every domain is a known variant;
//  2. vars is flat and every entry indexes Domains;
//  3. every constraint definition is a known variant;
//  4. for each constraint: ID indexes ConstraintDefs, Vars is flat, every
//     entry indexes csp.Vars, and len(Vars) equals the definition arity.
func Validate(csp *Csp) error {
	if csp == nil {
		return newIssue(CodeNullOrInvalidArgument, "", -1)
	}
	v := validator{csp: csp, failFast: true}
	v.run()
	if len(v.iss) > 0 {
		return &v.iss[0]
	}
	return nil
}

// ValidateAll runs the same checks as Validate, in the same order, and
// reports every violation. It returns nil for a valid csp.
func ValidateAll(csp *Csp) Issues {
	if csp == nil {
		return Issues{*newIssue(CodeNullOrInvalidArgument, "", -1)}
	}
	v := validator{csp: csp}
	v.run()
	return v.iss
}

type validator struct {
	csp      *Csp
	failFast bool
	iss      Issues
}

// report records an issue and tells the caller whether to stop.
func (v *validator) report(code Code, path PathRef) bool {
	v.iss = AppendIssues(v.iss, *path.Issue(code, -1))
	return v.failFast
}

// knownVariant accepts every Domain and ConstraintDef variant.
type knownVariant struct{}

func (knownVariant) VisitValues(*ValuesDomain) error { return nil }
func (knownVariant) VisitNoGoods(*NoGoodsDef) error  { return nil }

func (v *validator) run() {
	csp := v.csp
	root := PathRef{}

	domains := root.Field("domains")
	for i, d := range csp.Domains {
		if d == nil || d.Accept(knownVariant{}) != nil {
			if v.report(CodeDomainsTypeInvalid, domains.Index(i)) {
				return
			}
		}
	}

	vars := root.Field("vars")
	if !csp.Vars.IsFlat() {
		if v.report(CodeVarsArityInvalid, vars) {
			return
		}
	} else {
		for i, d := range csp.Vars.Data() {
			if d < 0 || d >= len(csp.Domains) {
				if v.report(CodeVarRangeInvalid, vars.Index(i)) {
					return
				}
			}
		}
	}

	defs := root.Field("constraintDefs")
	for i, d := range csp.ConstraintDefs {
		if d == nil || d.Accept(knownVariant{}) != nil {
			if v.report(CodeConstraintDefTypeInvalid, defs.Index(i)) {
				return
			}
		}
	}

	cons := root.Field("constraints")
	for i := range csp.Constraints {
		if v.constraint(&csp.Constraints[i], cons.Index(i)) {
			return
		}
	}
}

func (v *validator) constraint(c *Constraint, path PathRef) bool {
	csp := v.csp
	var def ConstraintDef
	if c.ID < 0 || c.ID >= len(csp.ConstraintDefs) {
		if v.report(CodeConstraintIdRangeInvalid, path.Field("id")) {
			return true
		}
	} else {
		def = csp.ConstraintDefs[c.ID]
	}

	vars := path.Field("vars")
	if !c.Vars.IsFlat() {
		return v.report(CodeConstraintVarsArityInvalid, vars)
	}
	for j, x := range c.Vars.Data() {
		if x < 0 || x >= csp.Vars.Len() {
			if v.report(CodeConstraintVarRangeInvalid, vars.Index(j)) {
				return true
			}
		}
	}
	if def != nil && def.Accept(knownVariant{}) == nil && c.Vars.Len() != def.Arity() {
		return v.report(CodeConstraintVarsSizeInvalid, vars)
	}
	return false
}
