package cspjson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cspjson "github.com/michal-dobrogost/csp-json"
)

func TestNormalize_Sorts(t *testing.T) {
	csp := parseFixture(t, "coloring.json")
	require.NoError(t, cspjson.Normalize(csp))

	assert.Equal(t, []int{0, 1, 2}, values(t, csp.Domains[0]).Data())
	assert.Equal(t, []int{0, 1}, values(t, csp.Domains[1]).Data())
	assert.Equal(t, []int{0, 0, 1, 1, 2, 2}, noGoods(t, csp.ConstraintDefs[0]).Data())
	assert.Equal(t, []int{0, 1, 1, 0}, noGoods(t, csp.ConstraintDefs[1]).Data())
}

func TestNormalize_TieBreakOnSecond(t *testing.T) {
	csp := notEqual()
	csp.ConstraintDefs[0] = &cspjson.NoGoodsDef{NoGoods: cspjson.TuplesOf(2,
		[]int{1, 3}, []int{0, 9}, []int{1, -2}, []int{0, 2},
	)}
	require.NoError(t, cspjson.Normalize(csp))
	assert.Equal(t, []int{0, 2, 0, 9, 1, -2, 1, 3}, noGoods(t, csp.ConstraintDefs[0]).Data())
}

func TestNormalize_Idempotent(t *testing.T) {
	once := parseFixture(t, "coloring.json")
	require.NoError(t, cspjson.Normalize(once))
	first, err := cspjson.Marshal(once)
	require.NoError(t, err)

	require.NoError(t, cspjson.Normalize(once))
	second, err := cspjson.Marshal(once)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestNormalize_ChecksBeforeMutating(t *testing.T) {
	csp := parseFixture(t, "ne2.json")
	csp.ConstraintDefs = append(csp.ConstraintDefs, &cspjson.NoGoodsDef{NoGoods: cspjson.TuplesOf(3, []int{0, 0, 0})})

	err := cspjson.Normalize(csp)
	is, ok := cspjson.AsIssue(err)
	require.True(t, ok)
	assert.Equal(t, cspjson.CodeNoGoodsInconsistentArity, is.Code)
	assert.Equal(t, "/constraintDefs/1", is.Path)
	assert.Equal(t, []int{1, 0}, values(t, csp.Domains[0]).Data())
	assert.Equal(t, []int{1, 1, 0, 0}, noGoods(t, csp.ConstraintDefs[0]).Data())
}

func TestNormalize_UnknownVariants(t *testing.T) {
	csp := notEqual()
	csp.Domains = append(csp.Domains, nil)
	require.ErrorIs(t, cspjson.Normalize(csp), cspjson.CodeDomainsTypeInvalid)

	csp = notEqual()
	csp.ConstraintDefs[0] = nil
	require.ErrorIs(t, cspjson.Normalize(csp), cspjson.CodeConstraintDefTypeInvalid)

	require.ErrorIs(t, cspjson.Normalize(nil), cspjson.CodeNullOrInvalidArgument)
}
