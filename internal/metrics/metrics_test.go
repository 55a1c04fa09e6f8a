package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, vec *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	c, err := vec.GetMetricWithLabelValues(labels...)
	require.NoError(t, err)
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	require.NotNil(t, r)
	assert.NotNil(t, r.FetchesTotal)
	assert.NotNil(t, r.FetchDuration)
	assert.NotNil(t, r.RowsTotal)
	assert.NotNil(t, r.NuclidesTotal)
	assert.NotNil(t, r.ArtifactsTotal)
	assert.NotNil(t, r.GetPrometheusRegistry())
}

func TestRecordFetch(t *testing.T) {
	r := NewRegistry()
	r.RecordFetch("bundle", OutcomeOK, 2*time.Millisecond)
	r.RecordFetch("bundle", OutcomeOK, 3*time.Millisecond)
	r.RecordFetch("iaea", OutcomeError, time.Second)

	assert.Equal(t, 2.0, counterValue(t, r.FetchesTotal, "bundle", OutcomeOK))
	assert.Equal(t, 1.0, counterValue(t, r.FetchesTotal, "iaea", OutcomeError))
}

func TestRecordRowsAndNuclides(t *testing.T) {
	r := NewRegistry()
	r.RecordRows(5, 2)
	r.RecordRows(1, 0)
	r.RecordNuclide(StatusInvalid)

	assert.Equal(t, 6.0, counterValue(t, r.RowsTotal, "kept"))
	assert.Equal(t, 2.0, counterValue(t, r.RowsTotal, "dropped"))
	assert.Equal(t, 1.0, counterValue(t, r.NuclidesTotal, StatusInvalid))
}

func TestWriteTextfile(t *testing.T) {
	r := NewRegistry()
	r.RecordArtifact("mcnp")
	path := filepath.Join(t.TempDir(), "ddata.prom")

	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `ddata_artifacts_written_total{format="mcnp"} 1`))
}
