package pipeline

import (
	"fmt"
	"strings"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/dag"
)

// edge identifies a directed producer-to-consumer link for cycle
// reporting.
type edge struct {
	from, to string
}

// buildGraph derives the dependency graph from the modules' declared
// inputs and outputs: for every path produced by module A and required
// by module B there is an edge A -> B. Inputs with no producer are
// expected to be seeds; they create no edge and are caught at run time
// by input validation instead.
//
// The returned map records one linking parameter per edge so cycle
// errors can name the path that closes the loop.
func (p *Pipeline) buildGraph() (*dag.Graph, map[edge]string, error) {
	var errs []string

	producers := make(map[string]string)
	for _, m := range p.modules {
		for _, path := range m.OutputParams() {
			if other, taken := producers[path]; taken {
				errs = append(errs, fmt.Sprintf("modules '%s' and '%s' both declare output %q", other, m.Name(), path))
				continue
			}
			producers[path] = m.Name()
		}
	}

	graph := dag.New()
	for _, m := range p.modules {
		graph.AddNode(m.Name())
	}

	links := make(map[edge]string)
	for _, m := range p.modules {
		for _, path := range m.RequiredInputs() {
			producer, ok := producers[path]
			if !ok || producer == m.Name() {
				// A seed, or the module's own output read back.
				continue
			}
			if err := graph.AddEdge(producer, m.Name()); err != nil {
				errs = append(errs, err.Error())
				continue
			}
			key := edge{from: producer, to: m.Name()}
			if _, seen := links[key]; !seen {
				links[key] = path
			}
		}
	}

	if len(errs) > 0 {
		return nil, nil, fmt.Errorf("dependency graph construction failed:\n- %s", strings.Join(errs, "\n- "))
	}

	return graph, links, nil
}
