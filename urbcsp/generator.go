package urbcsp

import (
	"io"

	cspjson "github.com/michal-dobrogost/csp-json"
)

// Generator produces a sequence of instances from one random stream. The
// instance counter restarts whenever the stream does, so the metadata of
// each instance records its position in the sequence.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	rng      *Rand
	instance int
}

// NewGenerator starts a new sequence for seed. Positive seeds are negated
// so that the first draw always reinitialises the stream.
func NewGenerator(seed int32) *Generator {
	if seed > 0 {
		seed = -seed
	}
	return &Generator{rng: NewRand(seed)}
}

// Instance returns the number of the most recent instance.
func (g *Generator) Instance() int { return g.instance }

// Next generates the next instance of the sequence, normalized. The caller
// owns the result and should Free it.
func (g *Generator) Next(p Params) (*cspjson.Csp, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if g.rng.Seed() < 0 {
		g.instance = 0
	} else {
		g.instance++
	}

	csp, err := start(p, g.instance)
	if err != nil {
		csp.Free()
		return nil, wrapf(methodNext, err)
	}
	g.fill(csp, p)
	if err := cspjson.Normalize(csp); err != nil {
		csp.Free()
		return nil, wrapf(methodNext, err)
	}
	return csp, nil
}

// Run generates instances 0..p.I and prints the last one to w.
func (g *Generator) Run(w io.Writer, p Params) error {
	for i := 0; i <= p.I; i++ {
		csp, err := g.Next(p)
		if err != nil {
			return err
		}
		if i == p.I {
			err = cspjson.Print(w, csp)
		}
		csp.Free()
		if err != nil {
			return wrapf(methodRun, err)
		}
	}
	return nil
}

// start allocates an instance with one domain 0..D-1 shared by every
// variable, K zeroed definitions of T pairs and C constraints bound
// round-robin to the definitions.
func start(p Params, instance int) (*cspjson.Csp, error) {
	k := p.defs()
	csp := &cspjson.Csp{Meta: p.Meta(instance)}

	dom, err := cspjson.NewValuesDomain(p.D)
	if err != nil {
		return csp, err
	}
	for i := 0; i < p.D; i++ {
		dom.Values.Set(i, i)
	}
	csp.Domains = []cspjson.Domain{dom}

	if csp.Vars, err = cspjson.NewTuples(p.N, cspjson.Flat); err != nil {
		return csp, err
	}

	csp.ConstraintDefs = make([]cspjson.ConstraintDef, 0, k)
	for i := 0; i < k; i++ {
		def, err := cspjson.NewNoGoodsDef(p.T, 2)
		if err != nil {
			return csp, err
		}
		csp.ConstraintDefs = append(csp.ConstraintDefs, def)
	}

	csp.Constraints = make([]cspjson.Constraint, 0, p.C)
	for i := 0; i < p.C; i++ {
		c, err := cspjson.NewConstraint(i%k, 2)
		if err != nil {
			return csp, err
		}
		csp.Constraints = append(csp.Constraints, c)
	}
	return csp, nil
}

// fill picks C distinct variable pairs and, for each, T distinct value
// pairs written into the constraint's definition. Both picks are partial
// Fisher-Yates shuffles; a definition shared by several constraints keeps
// the pairs of the last one.
func (g *Generator) fill(csp *cspjson.Csp, p Params) {
	possibleCTs := p.N * (p.N - 1) / 2
	possibleNGs := p.D * p.D

	cts := make([]uint32, 0, possibleCTs)
	for v1 := 0; v1 < p.N-1; v1++ {
		for v2 := v1 + 1; v2 < p.N; v2++ {
			cts = append(cts, uint32(v1)<<16|uint32(v2))
		}
	}
	ngs := make([]int, possibleNGs)

	for c := 0; c < p.C; c++ {
		r := g.rng.Between(c, possibleCTs)
		cts[c], cts[r] = cts[r], cts[c]
		con := &csp.Constraints[c]
		con.Vars.Set(0, int(cts[c]>>16))
		con.Vars.Set(1, int(cts[c]&0xFFFF))

		for i := range ngs {
			ngs[i] = i
		}
		def := csp.ConstraintDefs[con.ID].(*cspjson.NoGoodsDef)
		for t := 0; t < p.T; t++ {
			r := g.rng.Between(t, possibleNGs)
			ngs[t], ngs[r] = ngs[r], ngs[t]
			def.NoGoods.SetTuple(t, ngs[t]/p.D, ngs[t]%p.D)
		}
	}
}
