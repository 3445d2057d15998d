package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/ctxlog"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fake is a scriptable Module for driver tests.
type fake struct {
	name    string
	inputs  []string
	outputs []string
	status  string
	calls   int
	run     func(ctx context.Context, r module.Reader) (map[string]any, error)
}

func (f *fake) Name() string             { return f.name }
func (f *fake) Description() string      { return "fake module" }
func (f *fake) RequiredInputs() []string { return f.inputs }
func (f *fake) OutputParams() []string   { return f.outputs }
func (f *fake) StatusTag() string        { return f.status }

func (f *fake) Run(ctx context.Context, r module.Reader) (map[string]any, error) {
	f.calls++
	return f.run(ctx, r)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunChainsModulesThroughRegistry(t *testing.T) {
	reg := registry.New()
	reg.Set("a.x", 2, "seed", "ESTABLISHED")
	reg.Set("a.y", 3, "seed", "ESTABLISHED")

	m1 := &fake{
		name:    "m1",
		inputs:  []string{"a.x", "a.y"},
		outputs: []string{"a.z"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			x, err := r.Int("a.x")
			if err != nil {
				return nil, err
			}
			y, err := r.Int("a.y")
			if err != nil {
				return nil, err
			}
			return map[string]any{"a.z": x + y}, nil
		},
	}
	m2 := &fake{
		name:    "m2",
		inputs:  []string{"a.z"},
		outputs: []string{"a.w"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			z, err := r.Int("a.z")
			if err != nil {
				return nil, err
			}
			return map[string]any{"a.w": z * 2}, nil
		},
	}

	p := New(reg, []module.Module{m2, m1}, Options{})
	report, err := p.Run(testCtx(t))
	require.NoError(t, err)
	require.True(t, report.OK())
	require.NotEmpty(t, report.RunID)

	// m1 must have run first even though it was passed second.
	assert.Equal(t, "m1", report.Results[0].Module)
	assert.Equal(t, "m2", report.Results[1].Module)

	w, err := reg.Get("a.w")
	require.NoError(t, err)
	assert.Equal(t, 10, w)
}

func TestRunWritesProvenance(t *testing.T) {
	reg := registry.New()
	reg.Set("topology.b3", 24, "seed", "ESTABLISHED")

	m := &fake{
		name:    "topology",
		inputs:  []string{"topology.b3"},
		outputs: []string{"particle.n_generations"},
		status:  "GEOMETRIC",
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			b3, err := r.Int("topology.b3")
			if err != nil {
				return nil, err
			}
			return map[string]any{"particle.n_generations": b3 / 8}, nil
		},
	}

	p := New(reg, []module.Module{m}, Options{})
	report, err := p.Run(testCtx(t))
	require.NoError(t, err)
	require.True(t, report.OK())

	e, err := reg.Entry("particle.n_generations")
	require.NoError(t, err)
	assert.Equal(t, 3, e.Value)
	assert.Equal(t, "module:topology", e.Source)
	assert.Equal(t, "GEOMETRIC", e.Status)
}

func TestRunDefaultStatusTag(t *testing.T) {
	reg := registry.New()
	m := &fake{
		name:    "plain",
		outputs: []string{"out.v"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			return map[string]any{"out.v": 1}, nil
		},
	}

	p := New(reg, []module.Module{m}, Options{})
	_, err := p.Run(testCtx(t))
	require.NoError(t, err)

	e, err := reg.Entry("out.v")
	require.NoError(t, err)
	assert.Equal(t, "DERIVED", e.Status)
}

func TestRunMissingInputsSkipsInvocation(t *testing.T) {
	reg := registry.New()

	m := &fake{
		name:    "needy",
		inputs:  []string{"topology.b3"},
		outputs: []string{"out.n_gen"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			return map[string]any{"out.n_gen": 3}, nil
		},
	}

	p := New(reg, []module.Module{m}, Options{})
	report, err := p.Run(testCtx(t))
	require.NoError(t, err)
	require.False(t, report.OK())

	res, ok := report.Result("needy")
	require.True(t, ok)
	assert.Equal(t, StatusInvalid, res.Status)

	var invalid *module.InputValidationError
	require.ErrorAs(t, res.Err, &invalid)
	assert.Equal(t, []string{"topology.b3"}, invalid.Missing)

	// Run was never invoked.
	assert.Equal(t, 0, m.calls)
}

func TestRunFailureSkipsDependentsOnly(t *testing.T) {
	reg := registry.New()

	broken := &fake{
		name:    "broken",
		outputs: []string{"b.out"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			return nil, errors.New("arithmetic exploded")
		},
	}
	dependent := &fake{
		name:    "dependent",
		inputs:  []string{"b.out"},
		outputs: []string{"d.out"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			return map[string]any{"d.out": 1}, nil
		},
	}
	independent := &fake{
		name:    "independent",
		outputs: []string{"i.out"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			return map[string]any{"i.out": 2}, nil
		},
	}

	p := New(reg, []module.Module{broken, dependent, independent}, Options{})
	report, err := p.Run(testCtx(t))
	require.NoError(t, err)

	res, _ := report.Result("broken")
	assert.Equal(t, StatusFailed, res.Status)
	var comp *module.ComputationError
	require.ErrorAs(t, res.Err, &comp)
	assert.Equal(t, "broken", comp.Module)

	res, _ = report.Result("dependent")
	assert.Equal(t, StatusSkipped, res.Status)
	assert.ErrorContains(t, res.Err, "upstream failure of 'broken'")
	assert.Equal(t, 0, dependent.calls)

	res, _ = report.Result("independent")
	assert.Equal(t, StatusOK, res.Status)
	assert.True(t, reg.Has("i.out"))
	assert.False(t, reg.Has("b.out"))
	assert.False(t, reg.Has("d.out"))
}

func TestRunRecoversPanic(t *testing.T) {
	reg := registry.New()
	m := &fake{
		name:    "panicky",
		outputs: []string{"p.out"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			panic("integer divide by zero")
		},
	}

	p := New(reg, []module.Module{m}, Options{})
	report, err := p.Run(testCtx(t))
	require.NoError(t, err)

	res, _ := report.Result("panicky")
	assert.Equal(t, StatusFailed, res.Status)
	var comp *module.ComputationError
	require.ErrorAs(t, res.Err, &comp)
	assert.ErrorContains(t, res.Err, "integer divide by zero")
}

func TestRunEnforcesOutputContract(t *testing.T) {
	reg := registry.New()
	m := &fake{
		name:    "sloppy",
		outputs: []string{"s.declared"},
		run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
			return map[string]any{"s.declared": 1, "s.sneaky": 2}, nil
		},
	}

	p := New(reg, []module.Module{m}, Options{})
	report, err := p.Run(testCtx(t))
	require.NoError(t, err)

	res, _ := report.Result("sloppy")
	assert.Equal(t, StatusFailed, res.Status)
	var contract *module.OutputContractError
	require.ErrorAs(t, res.Err, &contract)
	assert.Equal(t, []string{"s.sneaky"}, contract.Undeclared)

	// Nothing is written when the contract is violated.
	assert.False(t, reg.Has("s.declared"))
}

func TestRunRejectsCircularDependencies(t *testing.T) {
	reg := registry.New()
	a := &fake{
		name:    "a",
		inputs:  []string{"b.out"},
		outputs: []string{"a.out"},
		run:     func(ctx context.Context, r module.Reader) (map[string]any, error) { return nil, nil },
	}
	b := &fake{
		name:    "b",
		inputs:  []string{"a.out"},
		outputs: []string{"b.out"},
		run:     func(ctx context.Context, r module.Reader) (map[string]any, error) { return nil, nil },
	}

	p := New(reg, []module.Module{a, b}, Options{})
	_, err := p.Run(testCtx(t))
	require.Error(t, err)
	assert.ErrorContains(t, err, "circular dependency between modules")
	assert.ErrorContains(t, err, `"a"`)
	assert.ErrorContains(t, err, `"b"`)
	assert.ErrorContains(t, err, "via parameter")
}

func TestRunRejectsDuplicateProducers(t *testing.T) {
	reg := registry.New()
	mk := func(name string) *fake {
		return &fake{
			name:    name,
			outputs: []string{"x.y"},
			run:     func(ctx context.Context, r module.Reader) (map[string]any, error) { return nil, nil },
		}
	}

	p := New(reg, []module.Module{mk("first"), mk("second")}, Options{})
	_, err := p.Run(testCtx(t))
	require.Error(t, err)
	assert.ErrorContains(t, err, "both declare output")
}

func TestRunIsDeterministic(t *testing.T) {
	run := func() (string, map[string]any) {
		reg := registry.New()
		reg.Set("topology.b3", 24, "seed", "ESTABLISHED")

		m := &fake{
			name:    "gen",
			inputs:  []string{"topology.b3"},
			outputs: []string{"out.n_gen"},
			run: func(ctx context.Context, r module.Reader) (map[string]any, error) {
				b3, err := r.Int("topology.b3")
				if err != nil {
					return nil, err
				}
				return map[string]any{"out.n_gen": b3 / 8}, nil
			},
		}
		p := New(reg, []module.Module{m}, Options{})
		report, err := p.Run(ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil))))
		if err != nil {
			panic(fmt.Sprintf("unexpected error: %v", err))
		}
		res, _ := report.Result("gen")
		return string(res.Status), res.Outputs
	}

	status1, out1 := run()
	status2, out2 := run()
	assert.Equal(t, status1, status2)
	assert.Equal(t, out1, out2)
	assert.Equal(t, map[string]any{"out.n_gen": 3}, out1)
}
