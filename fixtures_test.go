package cspjson_test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	cspjson "github.com/michal-dobrogost/csp-json"
)

// baseFields is a small valid document, field by field.
var baseFields = [][2]string{
	{"meta", `{"id": "x", "algo": "y", "params": null}`},
	{"domains", `[{"values": [0, 1]}]`},
	{"vars", `[0, 0]`},
	{"constraintDefs", `[{"noGoods": [[0, 0], [1, 1]]}]`},
	{"constraints", `[{"id": 0, "vars": [0, 1]}]`},
}

// docWith renders baseFields with the value of field name replaced.
func docWith(name, value string) string {
	var b strings.Builder
	b.WriteString("{")
	for i, f := range baseFields {
		if i > 0 {
			b.WriteString(", ")
		}
		v := f[1]
		if f[0] == name {
			v = value
		}
		fmt.Fprintf(&b, "%q: %s", f[0], v)
	}
	b.WriteString("}")
	return b.String()
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func parseFixture(t *testing.T, name string) *cspjson.Csp {
	t.Helper()
	csp := &cspjson.Csp{}
	t.Cleanup(csp.Free)
	require.NoError(t, cspjson.Parse(readFixture(t, name), csp))
	return csp
}

// notEqual builds the two-variable "must differ" instance over {0, 1}.
func notEqual() *cspjson.Csp {
	return &cspjson.Csp{
		Meta:    cspjson.Meta{ID: "ne2", Algo: "hand", ParamsJSON: "{}"},
		Domains: []cspjson.Domain{&cspjson.ValuesDomain{Values: cspjson.FlatOf(0, 1)}},
		Vars:    cspjson.FlatOf(0, 0),
		ConstraintDefs: []cspjson.ConstraintDef{
			&cspjson.NoGoodsDef{NoGoods: cspjson.TuplesOf(2, []int{0, 0}, []int{1, 1})},
		},
		Constraints: []cspjson.Constraint{{ID: 0, Vars: cspjson.FlatOf(0, 1)}},
	}
}

func values(t *testing.T, d cspjson.Domain) cspjson.Tuples {
	t.Helper()
	vd, ok := d.(*cspjson.ValuesDomain)
	require.True(t, ok, "domain %T", d)
	return vd.Values
}

func noGoods(t *testing.T, d cspjson.ConstraintDef) cspjson.Tuples {
	t.Helper()
	ng, ok := d.(*cspjson.NoGoodsDef)
	require.True(t, ok, "constraint def %T", d)
	return ng.NoGoods
}
