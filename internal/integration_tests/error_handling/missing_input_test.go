package integration_tests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/app"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/module"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/pipeline"
	"github.com/andrewkwatts-maker/PrincipiaMetaphysica-sub005/internal/testutil"
)

// A derive whose formula references an unseeded parameter is reported
// invalid, its body never evaluated, and the run fails without aborting
// independent modules.
func TestErrorHandling_MissingInputSkipsModule(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			derive "particle.n_generations" {
				formula = topology.b3 / 8
			}

			seed "a.x" {
				value = 1
			}

			derive "a.y" {
				formula = a.x + 1
			}
		`,
	}

	// --- Act ---
	result := testutil.RunProgramTest(t, files, &testutil.NoopModule{})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, app.ErrModulesFailed)

	report := result.App.Report()
	require.NotNil(t, report)

	row, ok := report.Result("particle.n_generations")
	require.True(t, ok)
	assert.Equal(t, pipeline.StatusInvalid, row.Status)

	var invalid *module.InputValidationError
	require.ErrorAs(t, row.Err, &invalid)
	assert.Equal(t, []string{"topology.b3"}, invalid.Missing)

	// The module never ran, so its output never appeared.
	assert.False(t, result.App.Registry().Has("particle.n_generations"))

	// The independent derive still completed.
	independent, ok := report.Result("a.y")
	require.True(t, ok)
	assert.Equal(t, pipeline.StatusOK, independent.Status)
}

// A failure upstream skips dependents but not independents.
func TestErrorHandling_FailureSkipsDependentsOnly(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			derive "b.broken" {
				formula = b.absent * 2
			}

			derive "b.dependent" {
				formula = b.broken + 1
			}

			seed "c.x" {
				value = 5
			}

			derive "c.independent" {
				formula = c.x * c.x
			}
		`,
	}

	// --- Act ---
	result := testutil.RunProgramTest(t, files, &testutil.NoopModule{})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, app.ErrModulesFailed)

	report := result.App.Report()
	require.NotNil(t, report)

	broken, ok := report.Result("b.broken")
	require.True(t, ok)
	assert.Equal(t, pipeline.StatusInvalid, broken.Status)

	dependent, ok := report.Result("b.dependent")
	require.True(t, ok)
	assert.Equal(t, pipeline.StatusSkipped, dependent.Status)
	assert.Contains(t, dependent.Err.Error(), "upstream failure of 'b.broken'")

	independent, ok := report.Result("c.independent")
	require.True(t, ok)
	assert.Equal(t, pipeline.StatusOK, independent.Status)

	val, err := result.App.Registry().Int("c.independent")
	require.NoError(t, err)
	assert.Equal(t, 25, val)
}

// A formula error during evaluation surfaces as a computation failure
// tagged with the parameter path.
func TestErrorHandling_FormulaEvaluationFails(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"main.hcl": `
			seed "d.x" {
				value = 1
			}

			derive "d.bad" {
				formula = d.x + "not-a-number"
			}
		`,
	}

	// --- Act ---
	result := testutil.RunProgramTest(t, files, &testutil.NoopModule{})

	// --- Assert ---
	require.Error(t, result.Err)
	assert.ErrorIs(t, result.Err, app.ErrModulesFailed)

	row, ok := result.App.Report().Result("d.bad")
	require.True(t, ok)
	assert.Equal(t, pipeline.StatusFailed, row.Status)

	var comp *module.ComputationError
	require.ErrorAs(t, row.Err, &comp)
	assert.Equal(t, "d.bad", comp.Path)
}
