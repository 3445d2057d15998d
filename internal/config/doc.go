// Package config defines the unified, format-agnostic model of a theory
// program: seed parameters, derive formulas, the module selection, and
// export settings. Format-specific loaders (see internal/hcl) translate
// their own schemas into this model so the rest of the engine never
// touches a parser.
package config
