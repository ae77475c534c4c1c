package exporters

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVExporter_WritesHeaderAndRows(t *testing.T) {
	exporter := NewCSVExporter(t.TempDir())

	path, err := exporter.Export("Attendance_C1",
		[]string{"Course Code", "Date", "Enrollment Number", "Status"},
		[][]string{
			{"C1", "2025-01-01", "E1", "P"},
			{"C1", "2025-01-01", "E2", "A"},
		})
	require.NoError(t, err)

	assert.True(t, filepath.IsAbs(path))
	assert.True(t, strings.HasSuffix(path, filepath.Join("AttendanceExports", "Attendance_C1.csv")))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"Course Code,Date,Enrollment Number,Status\n"+
			"C1,2025-01-01,E1,P\n"+
			"C1,2025-01-01,E2,A\n",
		string(content))
}

func TestCSVExporter_QuotesDelimiterBearingValues(t *testing.T) {
	exporter := NewCSVExporter(t.TempDir())

	path, err := exporter.Export("roster",
		[]string{"Enrollment Number", "Name"},
		[][]string{
			{"E1", "Smith, John"},
			{"E2", "Line\nBreak"},
		})
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(string(content), "\n")
	// A quoted comma must not split the field
	assert.Equal(t, `E1,"Smith, John"`, lines[1])
	// A quoted newline must not produce an extra record
	assert.Contains(t, string(content), "\"Line\nBreak\"")
}

func TestCSVExporter_CreatesExportDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "documents")
	exporter := NewCSVExporter(dir)

	_, err := exporter.Export("Attendance_C1", []string{"h"}, [][]string{{"v"}})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, ExportSubdir, "Attendance_C1.csv"))
	assert.NoError(t, err)
}

func TestCSVExporter_UnwritableDestination(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("destination permissions are not enforced for root")
	}

	dir := t.TempDir()
	require.NoError(t, os.Chmod(dir, 0500))
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	exporter := NewCSVExporter(dir)
	_, err := exporter.Export("Attendance_C1", []string{"h"}, [][]string{{"v"}})
	assert.Error(t, err)
}
