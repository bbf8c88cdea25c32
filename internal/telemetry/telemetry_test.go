package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	i18n "github.com/goliatone/go-i18n-icu"
)

func TestWriteTextfile(t *testing.T) {
	ConfigureTelemetry()

	Observer{}.ObserveUnit("views", 3, 1, 20*time.Millisecond)
	RecordStats(map[string]i18n.CatalogStats{
		"cs": {All: 4, Missing: 2, Obsolete: 1},
	})
	RecordRun("run-1", time.Unix(1700000000, 0))

	path := filepath.Join(t.TempDir(), "i18n.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, `i18n_extract_messages_total{outcome="skipped"}`)
	assert.Contains(t, out, `i18n_catalog_messages{locale="cs",state="missing"} 2`)
	assert.Contains(t, out, `i18n_extract_last_run_timestamp_seconds{run_id="run-1"} 1.7e+09`)
	assert.Contains(t, out, "i18n_extract_unit_duration_seconds_count")
}

func TestConfigureTelemetryCustomCollectors(t *testing.T) {
	custom := prometheus.NewCounter(prometheus.CounterOpts{Name: "custom_total", Help: "custom"})
	ConfigureTelemetry(custom)
	custom.Inc()

	families, err := Registry().Gather()
	require.NoError(t, err)
	require.Len(t, families, 1)
	assert.Equal(t, "custom_total", families[0].GetName())

	registry = nil
	assert.NotNil(t, Registry())
}
