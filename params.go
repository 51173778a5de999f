package cspjson

import (
	json "github.com/goccy/go-json"
)

// DecodeParams unmarshals the verbatim params JSON into v. Empty params
// leave v untouched.
func (m Meta) DecodeParams(v any) error {
	if m.ParamsJSON == "" {
		return nil
	}
	if err := json.Unmarshal([]byte(m.ParamsJSON), v); err != nil {
		is := newIssue(CodeNullOrInvalidArgument, "/meta/params", -1)
		is.Cause = err
		return is
	}
	return nil
}
