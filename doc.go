// Package cspjson reads, checks and writes CSP-JSON, a JSON encoding of
// finite-domain constraint satisfaction problems.
//
// It provides:
//
// - A strongly typed model (Csp, Domain, ConstraintDef, Constraint, Tuples) with explicit allocation and Free
// - Parse, which maps the flat token array of a document onto the model without building a JSON tree
// - Validate/ValidateAll for referential checks, Normalize for canonical ordering, IsSolved for assignments
// - Print/Marshal for the fixed output layout
// - A stable error model via Issue/Issues (code, JSON Pointer, byte offset)
//
// Design policy:
// - Keep only public APIs in the root package; put the tokenizer and cursor under internal/.
// - Place the random instance generator under urbcsp/ and the CLIs under cmd/.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	var csp cspjson.Csp
//	defer csp.Free()
//	if err := cspjson.Parse(data, &csp); err != nil { ... }
//	if err := cspjson.Validate(&csp); err != nil { ... }
//	solved, err := cspjson.IsSolved(&csp, cspjson.FlatOf(0, 1))
//
// Document layout:
//
//	{
//	  "meta": {"id": <string>, "algo": <string>, "params": <any JSON>},
//	  "domains": [{"values": [<int>, ...]}, ...],
//	  "vars": [<domain index>, ...],
//	  "constraintDefs": [{"noGoods": [[<int>, ...], ...]}, ...],
//	  "constraints": [{"id": <def index>, "vars": [<var index>, ...]}, ...]
//	}
package cspjson
