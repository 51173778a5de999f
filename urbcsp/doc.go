// Package urbcsp generates uniform random binary constraint satisfaction
// problems as cspjson.Csp values.
//
// Each instance has N variables sharing the domain 0..D-1, C distinct
// binary constraints and K no-goods definitions of T value pairs each.
// Constraint c is bound to definition c%K. The random stream is ran2 from
// Numerical Recipes, so a given seed reproduces the classic urbcsp output
// bit for bit.
//
//	g := urbcsp.NewGenerator(p.S)
//	csp, err := g.Next(p)
//	if err != nil { ... }
//	defer csp.Free()
package urbcsp
