package cspjson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/michal-dobrogost/csp-json/i18n"
)

// Code identifies one kind of failure. Codes are comparable with errors.Is:
//
//	if errors.Is(err, cspjson.CodeVarRangeInvalid) { ... }
type Code string

func (c Code) Error() string { return string(c) }

// Tokenizer and argument errors.
const (
	CodeTokenBudgetExceeded   Code = "token_budget_exceeded"
	CodeInvalidCharacter      Code = "invalid_character"
	CodeUnexpectedEnd         Code = "unexpected_end"
	CodeNullOrInvalidArgument Code = "null_or_invalid_argument"
	CodeOutOfMemory           Code = "out_of_memory"
	CodeMaxDepthExceeded      Code = "max_depth_exceeded"
	CodeDuplicateKey          Code = "duplicate_key"
)

// Shape errors, scoped per field.
const (
	CodeMetaNotObject     Code = "meta_not_object"
	CodeMetaIdNotString   Code = "meta_id_not_string"
	CodeMetaAlgoNotString Code = "meta_algo_not_string"
	CodeMetaUnknownField  Code = "meta_unknown_field"

	CodeDomainsNotArray      Code = "domains_not_array"
	CodeDomainNotObject      Code = "domain_not_object"
	CodeDomainUnknownField   Code = "domain_unknown_field"
	CodeDomainValuesNotArray Code = "domain_values_not_array"
	CodeDomainValueNotInt    Code = "domain_value_not_int"

	CodeVarsNotArray Code = "vars_not_array"
	CodeVarNotInt    Code = "var_not_int"

	CodeConstraintDefsNotArray   Code = "constraint_defs_not_array"
	CodeConstraintDefNotObject   Code = "constraint_def_not_object"
	CodeConstraintDefUnknownType Code = "constraint_def_unknown_type"
	CodeNoGoodsNotArray          Code = "no_goods_not_array"
	CodeNoGoodsNotTuple          Code = "no_goods_not_tuple"
	CodeNoGoodsInconsistentArity Code = "no_goods_inconsistent_arity"
	CodeNoGoodsValueNotInt       Code = "no_goods_value_not_int"

	CodeConstraintsNotArray    Code = "constraints_not_array"
	CodeConstraintNotObject    Code = "constraint_not_object"
	CodeConstraintIdNotInt     Code = "constraint_id_not_int"
	CodeConstraintVarsNotArray Code = "constraint_vars_not_array"
	CodeConstraintVarNotInt    Code = "constraint_var_not_int"
	CodeConstraintUnknownField Code = "constraint_unknown_field"

	CodeTopNotObject     Code = "top_not_object"
	CodeTopBadFieldCount Code = "top_bad_field_count"
	CodeTopUnknownField  Code = "top_unknown_field"

	CodeTupleItemTypeMismatch Code = "tuple_item_type_mismatch"
	CodeNotAnArray            Code = "not_an_array"
)

// Semantic errors reported by Validate and IsSolved.
const (
	CodeDomainsSizeInvalid         Code = "domains_size_invalid"
	CodeDomainsTypeInvalid         Code = "domains_type_invalid"
	CodeVarsArityInvalid           Code = "vars_arity_invalid"
	CodeVarsSizeInvalid            Code = "vars_size_invalid"
	CodeVarRangeInvalid            Code = "var_range_invalid"
	CodeConstraintDefsSizeInvalid  Code = "constraint_defs_size_invalid"
	CodeConstraintDefTypeInvalid   Code = "constraint_def_type_invalid"
	CodeConstraintsSizeInvalid     Code = "constraints_size_invalid"
	CodeConstraintIdRangeInvalid   Code = "constraint_id_range_invalid"
	CodeConstraintVarsArityInvalid Code = "constraint_vars_arity_invalid"
	CodeConstraintVarsSizeInvalid  Code = "constraint_vars_size_invalid"
	CodeConstraintVarRangeInvalid  Code = "constraint_var_range_invalid"
	CodeSolutionArityInvalid       Code = "solution_arity_invalid"
	CodeSolutionSizeMismatch       Code = "solution_size_mismatch"
)

// allCodes fixes the ordinal of every code. Append only.
var allCodes = []Code{
	CodeTokenBudgetExceeded, CodeInvalidCharacter, CodeUnexpectedEnd,
	CodeNullOrInvalidArgument, CodeOutOfMemory,
	CodeMetaNotObject, CodeMetaIdNotString, CodeMetaAlgoNotString, CodeMetaUnknownField,
	CodeDomainsNotArray, CodeDomainNotObject, CodeDomainUnknownField, CodeDomainValuesNotArray, CodeDomainValueNotInt,
	CodeVarsNotArray, CodeVarNotInt,
	CodeConstraintDefsNotArray, CodeConstraintDefNotObject, CodeConstraintDefUnknownType,
	CodeNoGoodsNotArray, CodeNoGoodsNotTuple, CodeNoGoodsInconsistentArity, CodeNoGoodsValueNotInt,
	CodeConstraintsNotArray, CodeConstraintNotObject, CodeConstraintIdNotInt,
	CodeConstraintVarsNotArray, CodeConstraintVarNotInt, CodeConstraintUnknownField,
	CodeTopNotObject, CodeTopBadFieldCount, CodeTopUnknownField,
	CodeTupleItemTypeMismatch, CodeNotAnArray,
	CodeDomainsSizeInvalid, CodeDomainsTypeInvalid,
	CodeVarsArityInvalid, CodeVarsSizeInvalid, CodeVarRangeInvalid,
	CodeConstraintDefsSizeInvalid, CodeConstraintDefTypeInvalid,
	CodeConstraintsSizeInvalid, CodeConstraintIdRangeInvalid,
	CodeConstraintVarsArityInvalid, CodeConstraintVarsSizeInvalid, CodeConstraintVarRangeInvalid,
	CodeSolutionArityInvalid, CodeSolutionSizeMismatch,
	CodeMaxDepthExceeded, CodeDuplicateKey,
}

// Codes returns every known code in ordinal order.
func Codes() []Code {
	out := make([]Code, len(allCodes))
	copy(out, allCodes)
	return out
}

// Ordinal returns the stable position of c in Codes, or -1 for an unknown code.
func (c Code) Ordinal() int {
	for i, k := range allCodes {
		if k == c {
			return i
		}
	}
	return -1
}

// Issue is the error returned by every fallible operation of this package.
type Issue struct {
	Code    Code
	Path    string // JSON Pointer of the failing node, for example /constraints/2/vars/1.
	Message string
	Offset  int64 // Byte offset in the input (-1 when unknown).
	Cause   error // Optional: underlying error.
}

func (e *Issue) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s at %s: %s", e.Code, e.Path, e.Message)
}

// Is matches a Code target.
func (e *Issue) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
}

func (e *Issue) Unwrap() error { return e.Cause }

func newIssue(code Code, path string, offset int64) *Issue {
	return &Issue{Code: code, Path: path, Offset: offset, Message: i18n.T(string(code), nil)}
}

// Issues is a collection of issues that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, pathOrRoot(iss[i].Path))
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// Is matches a Code target against any contained issue.
func (iss Issues) Is(target error) bool {
	c, ok := target.(Code)
	if !ok {
		return false
	}
	for i := range iss {
		if iss[i].Code == c {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssue extracts the first *Issue from an error chain.
func AsIssue(err error) (*Issue, bool) {
	if err == nil {
		return nil, false
	}
	var is *Issue
	if errors.As(err, &is) {
		return is, true
	}
	var iss Issues
	if errors.As(err, &iss) && len(iss) > 0 {
		return &iss[0], true
	}
	return nil, false
}

// AsIssues extracts Issues from an error using errors.As internally. A single
// *Issue is returned as a one-element list.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	var is *Issue
	if errors.As(err, &is) {
		return Issues{*is}, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or "" when err carries none.
func CodeOf(err error) Code {
	if is, ok := AsIssue(err); ok {
		return is.Code
	}
	var c Code
	if errors.As(err, &c) {
		return c
	}
	return ""
}

func pathOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
