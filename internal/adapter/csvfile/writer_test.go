package csvfile

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/couchcryptid/barangay-centroids/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func row(province, city, barangay, name string) domain.Row {
	return domain.Row{
		RegionPSGC:   "040000000",
		ProvincePSGC: province,
		CityMuniPSGC: city,
		BarangayPSGC: barangay,
		BarangayName: name,
		Latitude:     "14.000000",
		Longitude:    "121.000000",
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return records
}

func TestWriter_Write_SortedWithHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewWriter(path, discardLogger())

	rows := []domain.Row{
		row("045800000", "045801000", "045801001", "Rizal One"),
		row("041000000", "041002000", "041002001", "Batangas Two"),
		row("041000000", "041001000", "041001002", "Batangas B"),
		row("041000000", "041001000", "041001001", "Batangas A"),
	}
	n, err := w.Write(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	got := readCSV(t, path)
	want := [][]string{
		domain.Header,
		row("041000000", "041001000", "041001001", "Batangas A").Fields(),
		row("041000000", "041001000", "041001002", "Batangas B").Fields(),
		row("041000000", "041002000", "041002001", "Batangas Two").Fields(),
		row("045800000", "045801000", "045801001", "Rizal One").Fields(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("csv mismatch (-want +got):\n%s", diff)
	}
}

func TestWriter_Write_CRLFAndQuoting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w := NewWriter(path, discardLogger())

	_, err := w.Write(context.Background(), []domain.Row{
		row("041000000", "041001000", "041001001", `Barangay 1, "Poblacion"`),
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(string(data), "\r\n")
	require.Len(t, lines, 3)
	assert.Equal(t, strings.Join(domain.Header, ","), lines[0])
	assert.Equal(t, `040000000,041000000,041001000,041001001,"Barangay 1, ""Poblacion""",14.000000,121.000000`, lines[1])
	assert.Empty(t, lines[2])
}

func TestWriter_Write_EmptyWritesHeaderOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	n, err := NewWriter(path, discardLogger()).Write(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, strings.Join(domain.Header, ",")+"\r\n", string(data))
}

func TestWriter_Write_CreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "out.csv")
	_, err := NewWriter(path, discardLogger()).Write(context.Background(), nil)
	require.NoError(t, err)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestWriter_Write_OverwritesDeterministically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale contents that are longer than the new file\n"), 0o644))
	w := NewWriter(path, discardLogger())

	rows := func() []domain.Row {
		return []domain.Row{
			row("041000000", "041001000", "041001002", "B"),
			row("041000000", "041001000", "041001001", "A"),
		}
	}
	_, err := w.Write(context.Background(), rows())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = w.Write(context.Background(), rows())
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NotContains(t, string(second), "stale")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriter_Write_CancelledContextKeepsPreviousOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("previous\r\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewWriter(path, discardLogger()).Write(ctx, []domain.Row{row("041000000", "041001000", "041001001", "A")})
	require.ErrorIs(t, err, context.Canceled)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous\r\n", string(data))
}

func TestWriter_Path(t *testing.T) {
	assert.Equal(t, "data/out.csv", NewWriter("data/out.csv", discardLogger()).Path())
}
