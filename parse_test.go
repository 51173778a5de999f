package cspjson_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cspjson "github.com/michal-dobrogost/csp-json"
)

func TestParse_Fixture(t *testing.T) {
	csp := parseFixture(t, "ne2.json")

	assert.Equal(t, "ne2", csp.Meta.ID)
	assert.Equal(t, "hand", csp.Meta.Algo)
	assert.Equal(t, `{"note": "not-equal"}`, csp.Meta.ParamsJSON)

	require.Len(t, csp.Domains, 1)
	assert.True(t, values(t, csp.Domains[0]).Equal(cspjson.FlatOf(1, 0)))
	assert.True(t, csp.Vars.Equal(cspjson.FlatOf(0, 0)))

	require.Len(t, csp.ConstraintDefs, 1)
	ng := noGoods(t, csp.ConstraintDefs[0])
	assert.Equal(t, 2, ng.Arity())
	assert.Equal(t, []int{1, 1, 0, 0}, ng.Data())

	require.Len(t, csp.Constraints, 1)
	assert.Equal(t, 0, csp.Constraints[0].ID)
	assert.True(t, csp.Constraints[0].Vars.Equal(cspjson.FlatOf(0, 1)))
}

func TestParse_FieldOrderAndParams(t *testing.T) {
	csp := parseFixture(t, "coloring.json")

	assert.Equal(t, "triangle-plus-one", csp.Meta.ID)
	assert.Equal(t, `[3, "colors", {"nested": [true, false, null]}]`, csp.Meta.ParamsJSON)
	require.Len(t, csp.Domains, 2)
	require.Len(t, csp.ConstraintDefs, 2)
	require.Len(t, csp.Constraints, 4)
	assert.Equal(t, 1, csp.Constraints[3].ID)
	assert.Equal(t, 4, csp.Vars.Len())
}

func TestParse_Empty(t *testing.T) {
	csp := parseFixture(t, "empty.json")

	assert.Equal(t, "null", csp.Meta.ParamsJSON)
	assert.Nil(t, csp.Domains)
	assert.Nil(t, csp.ConstraintDefs)
	assert.Nil(t, csp.Constraints)
	assert.True(t, csp.Vars.IsFlat())
	assert.Equal(t, 0, csp.Vars.Len())
}

func TestParse_StringParamsKeepQuotes(t *testing.T) {
	var csp cspjson.Csp
	defer csp.Free()
	require.NoError(t, cspjson.Parse([]byte(docWith("meta", `{"params": "p", "algo": "a\"b", "id": "i"}`)), &csp))
	assert.Equal(t, `"p"`, csp.Meta.ParamsJSON)
	assert.Equal(t, `a\"b`, csp.Meta.Algo)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code cspjson.Code
		path string
	}{
		{"empty input", "", cspjson.CodeNullOrInvalidArgument, ""},
		{"unterminated object", `{"a": 1`, cspjson.CodeUnexpectedEnd, ""},
		{"non-string key", `{1:2}`, cspjson.CodeInvalidCharacter, ""},
		{"top not object", `[]`, cspjson.CodeTopNotObject, "/"},
		{"top bad field count", `{"meta": 1}`, cspjson.CodeTopBadFieldCount, "/"},
		{"top unknown field", `{"meta": {"id": "x", "algo": "y", "params": 0}, "domains": [], "vars": [], "constraintDefs": [], "extra": []}`, cspjson.CodeTopUnknownField, "/extra"},

		{"meta not object", docWith("meta", `1`), cspjson.CodeMetaNotObject, "/meta"},
		{"meta missing field", docWith("meta", `{"id": "x", "algo": "y"}`), cspjson.CodeMetaNotObject, "/meta"},
		{"meta id not string", docWith("meta", `{"id": 1, "algo": "y", "params": 0}`), cspjson.CodeMetaIdNotString, "/meta/id"},
		{"meta algo not string", docWith("meta", `{"id": "x", "algo": null, "params": 0}`), cspjson.CodeMetaAlgoNotString, "/meta/algo"},
		{"meta unknown field", docWith("meta", `{"id": "x", "algo": "y", "other": 0}`), cspjson.CodeMetaUnknownField, "/meta/other"},

		{"domains not array", docWith("domains", `{}`), cspjson.CodeDomainsNotArray, "/domains"},
		{"domain not object", docWith("domains", `[[0]]`), cspjson.CodeDomainNotObject, "/domains/0"},
		{"domain two fields", docWith("domains", `[{"values": [0], "x": 1}]`), cspjson.CodeDomainNotObject, "/domains/0"},
		{"domain unknown field", docWith("domains", `[{"range": [0, 1]}]`), cspjson.CodeDomainUnknownField, "/domains/0/range"},
		{"domain values not array", docWith("domains", `[{"values": 3}]`), cspjson.CodeDomainValuesNotArray, "/domains/0/values"},
		{"domain value string", docWith("domains", `[{"values": [0]}, {"values": [0, "a"]}]`), cspjson.CodeDomainValueNotInt, "/domains/1/values/1"},
		{"domain values 2D", docWith("domains", `[{"values": [[0, 1]]}]`), cspjson.CodeDomainValueNotInt, "/domains/0/values/0"},
		{"domain value float", docWith("domains", `[{"values": [1.5]}]`), cspjson.CodeDomainValueNotInt, "/domains/0/values/0"},

		{"vars not array", docWith("vars", `{}`), cspjson.CodeVarsNotArray, "/vars"},
		{"var not int", docWith("vars", `[0, true]`), cspjson.CodeVarNotInt, "/vars/1"},
		{"var string", docWith("vars", `["0"]`), cspjson.CodeVarNotInt, "/vars/0"},
		{"var overflow", docWith("vars", `[99999999999999999999999]`), cspjson.CodeVarNotInt, "/vars/0"},
		{"var lone minus", docWith("vars", `[-]`), cspjson.CodeVarNotInt, "/vars/0"},

		{"constraintDefs not array", docWith("constraintDefs", `0`), cspjson.CodeConstraintDefsNotArray, "/constraintDefs"},
		{"constraintDef not object", docWith("constraintDefs", `[[]]`), cspjson.CodeConstraintDefNotObject, "/constraintDefs/0"},
		{"constraintDef unknown type", docWith("constraintDefs", `[{"allowed": []}]`), cspjson.CodeConstraintDefUnknownType, "/constraintDefs/0/allowed"},
		{"constraintDef empty", docWith("constraintDefs", `[{}]`), cspjson.CodeConstraintDefUnknownType, "/constraintDefs/0"},
		{"constraintDef extra field", docWith("constraintDefs", `[{"noGoods": [], "x": 1}]`), cspjson.CodeConstraintDefUnknownType, "/constraintDefs/0/x"},
		{"noGoods not array", docWith("constraintDefs", `[{"noGoods": {}}]`), cspjson.CodeNoGoodsNotArray, "/constraintDefs/0/noGoods"},
		{"noGoods flat", docWith("constraintDefs", `[{"noGoods": [1, 2]}]`), cspjson.CodeNoGoodsNotTuple, "/constraintDefs/0/noGoods/0"},
		{"noGoods inconsistent arity", docWith("constraintDefs", `[{"noGoods": [[1, 2], [3]]}]`), cspjson.CodeNoGoodsInconsistentArity, "/constraintDefs/0/noGoods/1"},
		{"noGoods mixed", docWith("constraintDefs", `[{"noGoods": [[1, 2], 3]}]`), cspjson.CodeNoGoodsNotTuple, "/constraintDefs/0/noGoods/1"},
		{"noGoods value not int", docWith("constraintDefs", `[{"noGoods": [[1, null]]}]`), cspjson.CodeNoGoodsValueNotInt, "/constraintDefs/0/noGoods/0/1"},

		{"constraints not array", docWith("constraints", `{}`), cspjson.CodeConstraintsNotArray, "/constraints"},
		{"constraint not object", docWith("constraints", `[0]`), cspjson.CodeConstraintNotObject, "/constraints/0"},
		{"constraint id not int", docWith("constraints", `[{"id": "0", "vars": []}]`), cspjson.CodeConstraintIdNotInt, "/constraints/0/id"},
		{"constraint vars not array", docWith("constraints", `[{"id": 0, "vars": 1}]`), cspjson.CodeConstraintVarsNotArray, "/constraints/0/vars"},
		{"constraint var not int", docWith("constraints", `[{"id": 0, "vars": [0, false]}]`), cspjson.CodeConstraintVarNotInt, "/constraints/0/vars/1"},
		{"constraint unknown field", docWith("constraints", `[{"id": 0, "vars": [0], "w": 1}]`), cspjson.CodeConstraintUnknownField, "/constraints/0/w"},
		{"constraint missing id", docWith("constraints", `[{"vars": [0]}]`), cspjson.CodeConstraintIdNotInt, "/constraints/0/id"},
		{"constraint missing vars", docWith("constraints", `[{"id": 0}]`), cspjson.CodeConstraintVarsNotArray, "/constraints/0/vars"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var csp cspjson.Csp
			defer csp.Free()
			err := cspjson.Parse([]byte(tt.in), &csp)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v", err)
			is, ok := cspjson.AsIssue(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, is.Code)
			assert.Equal(t, tt.path, is.Path)
		})
	}
}

func TestParse_ErrorOffset(t *testing.T) {
	in := docWith("vars", `[0, true]`)
	var csp cspjson.Csp
	defer csp.Free()
	is, ok := cspjson.AsIssue(cspjson.Parse([]byte(in), &csp))
	require.True(t, ok)
	assert.Equal(t, "true", in[is.Offset:is.Offset+4])
}

func TestParse_TokenizerErrorCause(t *testing.T) {
	var csp cspjson.Csp
	err := cspjson.Parse([]byte(`{"a": [1, 2}`), &csp)
	is, ok := cspjson.AsIssue(err)
	require.True(t, ok)
	assert.Equal(t, cspjson.CodeInvalidCharacter, is.Code)
	assert.NotNil(t, errors.Unwrap(err))
	assert.Equal(t, int64(11), is.Offset)
}

// A failing array field frees its own elements; earlier fields stay.
func TestParse_PartialAggregate(t *testing.T) {
	in := docWith("constraintDefs", `[{"noGoods": [[0, 0]]}, {"noGoods": [1]}]`)
	var csp cspjson.Csp
	err := cspjson.Parse([]byte(in), &csp)
	require.ErrorIs(t, err, cspjson.CodeNoGoodsNotTuple)

	assert.Equal(t, "x", csp.Meta.ID)
	assert.Len(t, csp.Domains, 1)
	assert.Equal(t, 2, csp.Vars.Len())
	assert.Nil(t, csp.ConstraintDefs)
	assert.Nil(t, csp.Constraints)

	csp.Free()
	assert.Equal(t, cspjson.Csp{}, csp)
	csp.Free()
}

func TestParse_ResetsTarget(t *testing.T) {
	csp := parseFixture(t, "coloring.json")
	require.NoError(t, cspjson.Parse(readFixture(t, "ne2.json"), csp))
	assert.Len(t, csp.Domains, 1)
	assert.Len(t, csp.Constraints, 1)
}

func TestParse_NilTarget(t *testing.T) {
	require.ErrorIs(t, cspjson.Parse([]byte(`{}`), nil), cspjson.CodeNullOrInvalidArgument)
}

func TestParse_DuplicateKeys(t *testing.T) {
	in := []byte(`{"meta": {"id": "x", "algo": "y", "params": null}, "domains": [{"values": [0]}], "vars": [0], "vars": [0, 0], "constraints": []}`)

	var csp cspjson.Csp
	defer csp.Free()
	require.NoError(t, cspjson.Parse(in, &csp))
	assert.Equal(t, 2, csp.Vars.Len(), "last occurrence wins")

	var warned []cspjson.Issue
	require.NoError(t, cspjson.Parse(in, &csp, cspjson.ParseOpt{
		OnDuplicateKey: cspjson.Warn,
		OnWarning:      func(is cspjson.Issue) { warned = append(warned, is) },
	}))
	require.Len(t, warned, 1)
	assert.Equal(t, cspjson.CodeDuplicateKey, warned[0].Code)
	assert.Equal(t, "/vars", warned[0].Path)

	err := cspjson.Parse(in, &csp, cspjson.ParseOpt{OnDuplicateKey: cspjson.Error})
	is, ok := cspjson.AsIssue(err)
	require.True(t, ok)
	assert.Equal(t, cspjson.CodeDuplicateKey, is.Code)
	assert.Equal(t, "/vars", is.Path)
}

func TestParse_Limits(t *testing.T) {
	in := []byte(docWith("", ""))

	var csp cspjson.Csp
	defer csp.Free()
	require.NoError(t, cspjson.Parse(in, &csp, cspjson.ParseOpt{MaxDepth: 5, MaxTokens: 100}))

	err := cspjson.Parse(in, &csp, cspjson.ParseOpt{MaxDepth: 4})
	is, ok := cspjson.AsIssue(err)
	require.True(t, ok)
	assert.Equal(t, cspjson.CodeMaxDepthExceeded, is.Code)
	assert.Equal(t, "/constraintDefs/0/noGoods/0", is.Path)

	err = cspjson.Parse(in, &csp, cspjson.ParseOpt{MaxTokens: 5})
	require.ErrorIs(t, err, cspjson.CodeTokenBudgetExceeded)
}

func TestParseTuples(t *testing.T) {
	ts, err := cspjson.ParseTuples(0, []byte(`[]`))
	require.NoError(t, err)
	assert.Equal(t, 0, ts.Arity())
	assert.Equal(t, 0, ts.Len())

	ts, err = cspjson.ParseTuples(0, []byte(`[3, -1, 2]`))
	require.NoError(t, err)
	assert.True(t, ts.Equal(cspjson.FlatOf(3, -1, 2)))

	ts, err = cspjson.ParseTuples(cspjson.Flat, []byte(`[[1, 2], [3, 4]]`))
	require.NoError(t, err)
	assert.True(t, ts.Equal(cspjson.TuplesOf(2, []int{1, 2}, []int{3, 4})))

	tests := []struct {
		name  string
		arity int
		in    string
		code  cspjson.Code
	}{
		{"objects", 0, `[{"a": 1}]`, cspjson.CodeTupleItemTypeMismatch},
		{"ragged", 0, `[[1], [2, 3]]`, cspjson.CodeTupleItemTypeMismatch},
		{"mixed", 0, `[1, [2]]`, cspjson.CodeTupleItemTypeMismatch},
		{"not an array", 0, `{"a": 1}`, cspjson.CodeNotAnArray},
		{"bad default arity", -2, `[]`, cspjson.CodeNullOrInvalidArgument},
		{"blank", 0, ` `, cspjson.CodeNullOrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := cspjson.ParseTuples(tt.arity, []byte(tt.in))
			assert.Equal(t, tt.code, cspjson.CodeOf(err))
		})
	}
}

func TestParseConstraintDef(t *testing.T) {
	def, err := cspjson.ParseConstraintDef([]byte(`{"noGoods": [[0, 1], [1, 0]]}`))
	require.NoError(t, err)
	defer def.Free()
	assert.Equal(t, 2, def.Arity())
	assert.True(t, noGoods(t, def).Equal(cspjson.TuplesOf(2, []int{0, 1}, []int{1, 0})))

	def, err = cspjson.ParseConstraintDef([]byte(`{"noGoods": []}`))
	require.NoError(t, err)
	assert.Equal(t, 0, def.Arity())

	_, err = cspjson.ParseConstraintDef([]byte(`{"noGoods": [[1, 2], [3]]}`))
	require.ErrorIs(t, err, cspjson.CodeNoGoodsInconsistentArity)
}
