package urbcsp

import (
	"errors"
	"fmt"
)

// Sentinel errors. Callers branch with errors.Is; messages carry the
// offending value through %w wrapping.
var (
	// ErrTooFewVariables reports N < 2.
	ErrTooFewVariables = errors.New("urbcsp: too few variables")

	// ErrTooFewValues reports D < 2.
	ErrTooFewValues = errors.New("urbcsp: too few values")

	// ErrConstraintDefs reports K outside [1, C].
	ErrConstraintDefs = errors.New("urbcsp: invalid number of constraint definitions")

	// ErrConstraints reports C outside [1, N(N-1)/2].
	ErrConstraints = errors.New("urbcsp: invalid number of constraints")

	// ErrNoGoods reports T outside [1, D*D).
	ErrNoGoods = errors.New("urbcsp: invalid number of no-goods")

	// ErrInstances reports a negative instance count.
	ErrInstances = errors.New("urbcsp: invalid number of instances")

	// ErrNotGenerated reports params metadata that does not describe a
	// generated instance.
	ErrNotGenerated = errors.New("urbcsp: not a generated instance")
)

const (
	methodValidate       = "Params.Validate"
	methodNext           = "Generator.Next"
	methodRun            = "Generator.Run"
	methodParamsFromMeta = "ParamsFromMeta"
	methodLoadConfig     = "LoadConfig"
	methodParseConfig    = "ParseConfig"
)

func wrapf(method string, err error) error {
	return fmt.Errorf("%s: %w", method, err)
}
