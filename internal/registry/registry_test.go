package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	r := New()
	require.NotNil(t, r)
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Paths())
}

func TestSetThenGet(t *testing.T) {
	r := New()
	r.Set("topology.b3", 24, "ESTABLISHED:TCS #187", "ESTABLISHED")

	v, err := r.Get("topology.b3")
	require.NoError(t, err)
	assert.Equal(t, 24, v)
	assert.True(t, r.Has("topology.b3"))
}

func TestMissingPath(t *testing.T) {
	r := New()

	assert.False(t, r.Has("never.set"))

	_, err := r.Get("never.set")
	require.Error(t, err)
	var missing *MissingParameterError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "never.set", missing.Path)
	assert.Contains(t, err.Error(), "never.set")

	assert.Equal(t, 42.0, r.GetOr("never.set", 42.0))
	assert.Nil(t, r.GetOr("never.set", nil))
}

func TestOverwriteLastWriteWins(t *testing.T) {
	r := New()
	r.Set("gauge.alpha_inv", 137.0, "DERIVED:gauge", "DERIVED")
	r.Set("gauge.alpha_inv", 137.036, "EXPERIMENTAL:CODATA", "EXPERIMENTAL")

	v, err := r.Get("gauge.alpha_inv")
	require.NoError(t, err)
	assert.Equal(t, 137.036, v)

	e, err := r.Entry("gauge.alpha_inv")
	require.NoError(t, err)
	assert.Equal(t, "EXPERIMENTAL:CODATA", e.Source)
	assert.Equal(t, "EXPERIMENTAL", e.Status)
	assert.Equal(t, 1, r.Len())
}

func TestSetIdempotence(t *testing.T) {
	r := New()
	r.Set("topology.b3", 24, "seed", "ESTABLISHED")
	before, err := r.Entry("topology.b3")
	require.NoError(t, err)

	r.Set("topology.b3", 24, "seed", "ESTABLISHED")
	after, err := r.Entry("topology.b3")
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.Equal(t, 1, r.Len())
}

func TestSetEmptyPathPanics(t *testing.T) {
	r := New()
	assert.Panics(t, func() {
		r.Set("", 1, "", "")
	})
}

func TestEntryReturnsFullProvenance(t *testing.T) {
	r := New()
	r.SetEntry(Entry{
		Path:     "cosmology.h0_geometric",
		Value:    67.4,
		Source:   "PREDICTED:cosmology",
		Status:   "PREDICTED",
		Metadata: map[string]any{"units": "km/s/Mpc"},
	})

	e, err := r.Entry("cosmology.h0_geometric")
	require.NoError(t, err)
	assert.Equal(t, 67.4, e.Value)
	assert.Equal(t, "PREDICTED", e.Status)
	assert.Equal(t, "km/s/Mpc", e.Metadata["units"])

	// The returned metadata is a copy; mutating it must not leak back.
	e.Metadata["units"] = "tampered"
	again, err := r.Entry("cosmology.h0_geometric")
	require.NoError(t, err)
	assert.Equal(t, "km/s/Mpc", again.Metadata["units"])

	_, err = r.Entry("absent.path")
	var missing *MissingParameterError
	assert.ErrorAs(t, err, &missing)
}

func TestAllAndPaths(t *testing.T) {
	r := New()
	r.Set("b.second", 2, "", "DERIVED")
	r.Set("a.first", 1, "", "DERIVED")
	r.Set("c.third", 3, "", "DERIVED")

	assert.Equal(t, []string{"a.first", "b.second", "c.third"}, r.Paths())

	all := r.All()
	require.Len(t, all, 3)
	assert.Equal(t, 1, all["a.first"].Value)

	// A copy, not a view.
	delete(all, "a.first")
	assert.True(t, r.Has("a.first"))
}

func TestFloat64(t *testing.T) {
	r := New()
	r.Set("topology.b3", 24, "", "ESTABLISHED")
	r.Set("topology.chi_eff", 144.0, "", "ESTABLISHED")
	r.Set("meta.label", "tcs", "", "ESTABLISHED")

	f, err := r.Float64("topology.b3")
	require.NoError(t, err)
	assert.Equal(t, 24.0, f)

	f, err = r.Float64("topology.chi_eff")
	require.NoError(t, err)
	assert.Equal(t, 144.0, f)

	_, err = r.Float64("meta.label")
	var wrong *WrongTypeError
	require.ErrorAs(t, err, &wrong)
	assert.Equal(t, "meta.label", wrong.Path)

	_, err = r.Float64("absent.path")
	var missing *MissingParameterError
	assert.ErrorAs(t, err, &missing)
}

func TestInt(t *testing.T) {
	r := New()
	r.Set("topology.b3", 24, "", "ESTABLISHED")
	r.Set("topology.ratio", 1.5, "", "DERIVED")

	n, err := r.Int("topology.b3")
	require.NoError(t, err)
	assert.Equal(t, 24, n)

	// Floats are never truncated silently.
	_, err = r.Int("topology.ratio")
	var wrong *WrongTypeError
	assert.ErrorAs(t, err, &wrong)
}

func TestSharedReturnsSameInstance(t *testing.T) {
	a := Shared()
	b := Shared()
	assert.Same(t, a, b)
}
