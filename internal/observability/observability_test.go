package observability

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("info", "json", &buf)

	logger.Info("run finished", "rows", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "run finished", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.InDelta(t, 3, entry["rows"], 0)
}

func TestNewLogger_TextIsDefault(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("info", "", &buf).Info("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewLogger_Level(t *testing.T) {
	tests := []struct {
		level     string
		debugSeen bool
		infoSeen  bool
		warnSeen  bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"", false, true, true},
		{"WARN", false, false, true},
		{"warning", false, false, true},
		{"error", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(tt.level, "text", &buf)
			logger.Debug("d")
			logger.Info("i")
			logger.Warn("w")

			out := buf.String()
			assert.Equal(t, tt.debugSeen, strings.Contains(out, "msg=d"))
			assert.Equal(t, tt.infoSeen, strings.Contains(out, "msg=i"))
			assert.Equal(t, tt.warnSeen, strings.Contains(out, "msg=w"))
		})
	}
}

func TestNewMetrics_IndependentRegistries(t *testing.T) {
	a := NewMetrics()
	b := NewMetrics()

	a.RecordsRead.Add(5)
	assert.InDelta(t, 5, testutil.ToFloat64(a.RecordsRead), 0)
	assert.InDelta(t, 0, testutil.ToFloat64(b.RecordsRead), 0)
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := NewMetrics()
	m.RecordsRead.Add(10)
	m.RecordsKept.Add(4)
	m.RecordsSkipped.Add(6)
	m.RowsWritten.Add(4)
	m.ProvinceRecords.WithLabelValues("041000000", "Batangas").Set(4)
	m.RunDuration.Set(1.5)
	m.LastSuccessTimestamp.Set(1_700_000_000)

	path := filepath.Join(t.TempDir(), "centroids.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "barangay_centroids_records_read_total 10")
	assert.Contains(t, out, "barangay_centroids_records_kept_total 4")
	assert.Contains(t, out, "barangay_centroids_records_skipped_total 6")
	assert.Contains(t, out, "barangay_centroids_rows_written_total 4")
	assert.Contains(t, out, `barangay_centroids_province_records{name="Batangas",province="041000000"} 4`)
	assert.Contains(t, out, "barangay_centroids_run_duration_seconds 1.5")
	assert.Contains(t, out, "barangay_centroids_last_success_timestamp_seconds 1.7e+09")
}

func TestMetrics_WriteTextfile_BadDirectory(t *testing.T) {
	err := NewMetrics().WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metrics textfile")
}

func TestMetrics_GathererListsAllFamilies(t *testing.T) {
	m := NewMetrics()
	m.ProvinceRecords.WithLabelValues("041000000", "Batangas").Set(1)

	families, err := m.Gatherer().Gather()
	require.NoError(t, err)
	assert.Len(t, families, 7)
}
