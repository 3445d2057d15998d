// Package hcl implements the HCL program loader: it parses .hcl program
// files, decodes them against the schema, and translates them into the
// format-agnostic config model. It also adapts `derive` blocks to the
// module contract, evaluating their formulas over registry state with
// the cty expression engine.
package hcl
