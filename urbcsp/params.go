package urbcsp

import (
	"fmt"
	"strings"

	cspjson "github.com/michal-dobrogost/csp-json"
)

// Algo is the meta.algo value of every generated instance.
const Algo = "urbcsp"

// Params are the generator inputs.
type Params struct {
	N int   // variables
	D int   // domain size
	C int   // constraints
	T int   // no-goods per definition
	S int32 // seed as given by the user
	I int   // instances to skip before the one that is kept
	K int   // constraint definitions; 0 means C
}

// defs returns K with the zero value standing for C.
func (p Params) defs() int {
	if p.K == 0 {
		return p.C
	}
	return p.K
}

// Validate checks the ranges in the order urbcsp always has: N, D, K, C, T.
func (p Params) Validate() error {
	k := p.defs()
	possibleCTs := p.N * (p.N - 1) / 2
	switch {
	case p.N < 2:
		return fmt.Errorf("%s: N=%d (N >= 2): %w", methodValidate, p.N, ErrTooFewVariables)
	case p.D < 2:
		return fmt.Errorf("%s: D=%d (D >= 2): %w", methodValidate, p.D, ErrTooFewValues)
	case k < 1:
		return fmt.Errorf("%s: K=%d (K >= 1): %w", methodValidate, k, ErrConstraintDefs)
	case k > p.C:
		return fmt.Errorf("%s: K=%d (K <= C=%d): %w", methodValidate, k, p.C, ErrConstraintDefs)
	case p.C < 1:
		return fmt.Errorf("%s: C=%d (C >= 1): %w", methodValidate, p.C, ErrConstraints)
	case p.C > possibleCTs:
		return fmt.Errorf("%s: C=%d (C <= N*(N-1)/2 = %d): %w", methodValidate, p.C, possibleCTs, ErrConstraints)
	case p.T < 1:
		return fmt.Errorf("%s: T=%d (T >= 1): %w", methodValidate, p.T, ErrNoGoods)
	case p.T >= p.D*p.D:
		return fmt.Errorf("%s: T=%d (T < D*D = %d): %w", methodValidate, p.T, p.D*p.D, ErrNoGoods)
	case p.I < 0:
		return fmt.Errorf("%s: I=%d (I >= 0): %w", methodValidate, p.I, ErrInstances)
	}
	return nil
}

// ID is the meta.id of the given instance.
func (p Params) ID(instance int) string {
	return fmt.Sprintf("urbcsp/n%dd%dc%dt%ds%di%dk%d", p.N, p.D, p.C, p.T, p.S, instance, p.defs())
}

// ParamsJSON is the meta.params text of the given instance.
func (p Params) ParamsJSON(instance int) string {
	return fmt.Sprintf(`{"n": %d, "d": %d, "c": %d, "t": %d, "s": %d, "i": %d, "k": %d}`,
		p.N, p.D, p.C, p.T, p.S, instance, p.defs())
}

// Meta builds the metadata of the given instance.
func (p Params) Meta(instance int) cspjson.Meta {
	return cspjson.Meta{ID: p.ID(instance), Algo: Algo, ParamsJSON: p.ParamsJSON(instance)}
}

type metaParams struct {
	N *int   `json:"n"`
	D *int   `json:"d"`
	C *int   `json:"c"`
	T *int   `json:"t"`
	S *int32 `json:"s"`
	I *int   `json:"i"`
	K *int   `json:"k"`
}

// ParamsFromMeta recovers the parameters and instance number of a generated
// instance. The returned Params has I set to the instance number; for a
// nonzero seed, running a fresh Generator with it reproduces the instance.
func ParamsFromMeta(m cspjson.Meta) (Params, int, error) {
	if m.Algo != Algo || !strings.HasPrefix(m.ID, Algo+"/") {
		return Params{}, 0, fmt.Errorf("%s: algo %q: %w", methodParamsFromMeta, m.Algo, ErrNotGenerated)
	}
	var mp metaParams
	if err := m.DecodeParams(&mp); err != nil {
		return Params{}, 0, fmt.Errorf("%s: %w: %w", methodParamsFromMeta, ErrNotGenerated, err)
	}
	if mp.N == nil || mp.D == nil || mp.C == nil || mp.T == nil || mp.S == nil || mp.I == nil || mp.K == nil {
		return Params{}, 0, fmt.Errorf("%s: missing field in params: %w", methodParamsFromMeta, ErrNotGenerated)
	}
	p := Params{N: *mp.N, D: *mp.D, C: *mp.C, T: *mp.T, S: *mp.S, I: *mp.I, K: *mp.K}
	return p, *mp.I, nil
}
