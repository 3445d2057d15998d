// Package parampath parses and validates the dot-namespaced paths that
// identify parameters, e.g. "topology.b3" or "cosmology.h0_geometric".
// The first segment names the logical domain a parameter belongs to.
package parampath

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single path segment: an identifier-like name.
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Path is the structured representation of a parameter path, broken into
// its dot-separated segments. Segments are ordered root-first.
type Path struct {
	Segments []string
}

// Parse creates a Path by parsing its canonical dotted string form. A valid
// path has at least two segments (domain plus name) so that formulas can
// reference it as a traversal.
func Parse(raw string) (Path, error) {
	if raw == "" {
		return Path{}, fmt.Errorf("parameter path cannot be empty")
	}

	segments := strings.Split(raw, ".")
	if len(segments) < 2 {
		return Path{}, fmt.Errorf("parameter path %q must have at least a domain and a name", raw)
	}

	for _, segment := range segments {
		if segment == "" {
			return Path{}, fmt.Errorf("parameter path %q contains an empty segment", raw)
		}
		if !segmentRegex.MatchString(segment) {
			return Path{}, fmt.Errorf("invalid path segment %q in %q", segment, raw)
		}
	}

	return Path{Segments: segments}, nil
}

// MustParse is Parse for programmer-controlled literals; it panics on error.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical dotted form of the path.
func (p Path) String() string {
	return strings.Join(p.Segments, ".")
}

// Domain returns the first segment, the logical domain of the parameter.
func (p Path) Domain() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[0]
}

// Leaf returns the final segment, the parameter's own name.
func (p Path) Leaf() string {
	if len(p.Segments) == 0 {
		return ""
	}
	return p.Segments[len(p.Segments)-1]
}

// Valid reports whether raw parses as a parameter path.
func Valid(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}
