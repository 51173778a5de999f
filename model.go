package cspjson

// Ownership
//
// A Csp exclusively owns everything reachable from it; nothing is shared
// between two live owners and there are no back-references. Every entity has
// a valid empty zero value, and every Free method
//
//   - is a no-op on a nil receiver, a zero value, or an already freed value;
//   - resets its receiver to the zero value.
//
// Allocators (NewTuples, NewValuesDomain, NewNoGoodsDef, NewConstraint)
// either succeed completely or return the zero value and an error.
//
// A failed Parse may leave the target Csp partially populated: each array
// field (domains, constraintDefs, constraints) frees its own partial elements
// on failure, but fields completed earlier stay in place. Callers must still
// call Csp.Free after a failed Parse; doing so is always safe.

// Meta describes where an instance came from. ParamsJSON holds the verbatim
// JSON text of the params field and is never reparsed by this package.
type Meta struct {
	ID         string
	Algo       string
	ParamsJSON string
}

// Free resets m.
func (m *Meta) Free() {
	if m == nil {
		return
	}
	*m = Meta{}
}

// Domain is the set of legal values of a variable. The set of variants is
// closed; consumers dispatch through Accept so that a new variant adds a
// DomainVisitor method and every consumer must handle it.
type Domain interface {
	Accept(v DomainVisitor) error
	Free()
	isDomain()
}

// DomainVisitor handles every Domain variant.
type DomainVisitor interface {
	VisitValues(d *ValuesDomain) error
}

// ValuesDomain lists the legal values explicitly. Values is flat.
type ValuesDomain struct {
	Values Tuples
}

// NewValuesDomain allocates a values domain of n zeroed values.
func NewValuesDomain(n int) (*ValuesDomain, error) {
	vals, err := NewTuples(n, Flat)
	if err != nil {
		return nil, err
	}
	return &ValuesDomain{Values: vals}, nil
}

// Accept calls v.VisitValues. A nil receiver reports CodeDomainsTypeInvalid.
func (d *ValuesDomain) Accept(v DomainVisitor) error {
	if d == nil {
		return newIssue(CodeDomainsTypeInvalid, "", -1)
	}
	return v.VisitValues(d)
}

func (d *ValuesDomain) Free() {
	if d == nil {
		return
	}
	d.Values.Free()
}

func (*ValuesDomain) isDomain() {}

// ConstraintDef is a reusable constraint definition. Like Domain, the set of
// variants is closed and consumers dispatch through Accept.
type ConstraintDef interface {
	Accept(v ConstraintDefVisitor) error
	// Arity is the number of variables a constraint bound to this
	// definition must name.
	Arity() int
	Free()
	isConstraintDef()
}

// ConstraintDefVisitor handles every ConstraintDef variant.
type ConstraintDefVisitor interface {
	VisitNoGoods(d *NoGoodsDef) error
}

// NoGoodsDef forbids each listed tuple of values.
type NoGoodsDef struct {
	NoGoods Tuples
}

// NewNoGoodsDef allocates n zeroed no-goods of the given arity (>= 0).
func NewNoGoodsDef(n, arity int) (*NoGoodsDef, error) {
	if arity < 0 {
		return nil, newIssue(CodeNullOrInvalidArgument, "", -1)
	}
	ng, err := NewTuples(n, arity)
	if err != nil {
		return nil, err
	}
	return &NoGoodsDef{NoGoods: ng}, nil
}

// Accept calls v.VisitNoGoods. A nil receiver reports
// CodeConstraintDefTypeInvalid.
func (d *NoGoodsDef) Accept(v ConstraintDefVisitor) error {
	if d == nil {
		return newIssue(CodeConstraintDefTypeInvalid, "", -1)
	}
	return v.VisitNoGoods(d)
}

func (d *NoGoodsDef) Arity() int {
	if d == nil {
		return 0
	}
	return d.NoGoods.Arity()
}

func (d *NoGoodsDef) Free() {
	if d == nil {
		return
	}
	d.NoGoods.Free()
}

func (*NoGoodsDef) isConstraintDef() {}

// Constraint binds variables to a definition. ID indexes Csp.ConstraintDefs;
// Vars is flat and indexes Csp.Vars.
type Constraint struct {
	ID   int
	Vars Tuples
}

// NewConstraint allocates a constraint on definition id with n zeroed vars.
func NewConstraint(id, n int) (Constraint, error) {
	vars, err := NewTuples(n, Flat)
	if err != nil {
		return Constraint{}, err
	}
	return Constraint{ID: id, Vars: vars}, nil
}

func (c *Constraint) Free() {
	if c == nil {
		return
	}
	c.Vars.Free()
	c.ID = 0
}

// Csp is a finite-domain constraint satisfaction problem. Vars is flat and
// each entry indexes Domains.
//
// The zero Csp is safe to Free, Parse into and Print, but it does not
// Validate: its Vars has arity 0 rather than Flat, which Validate reports as
// CodeVarsArityInvalid. Set Vars to FlatOf() for an empty valid instance.
type Csp struct {
	Meta           Meta
	Domains        []Domain
	Vars           Tuples
	ConstraintDefs []ConstraintDef
	Constraints    []Constraint
}

// Free releases everything c owns and resets it to the zero value.
func (c *Csp) Free() {
	if c == nil {
		return
	}
	c.Meta.Free()
	freeDomains(&c.Domains)
	c.Vars.Free()
	freeConstraintDefs(&c.ConstraintDefs)
	freeConstraints(&c.Constraints)
}

func freeDomains(ds *[]Domain) {
	for _, d := range *ds {
		if d != nil {
			d.Free()
		}
	}
	*ds = nil
}

func freeConstraintDefs(ds *[]ConstraintDef) {
	for _, d := range *ds {
		if d != nil {
			d.Free()
		}
	}
	*ds = nil
}

func freeConstraints(cs *[]Constraint) {
	for i := range *cs {
		(*cs)[i].Free()
	}
	*cs = nil
}
