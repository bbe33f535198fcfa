package report_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"uploadbroker/internal/report"
	"uploadbroker/internal/uploader"
)

func sampleOutcomes() []uploader.Outcome {
	return []uploader.Outcome{
		{Filename: "a.txt", Key: "a.txt"},
		{Filename: "b.txt", Error: "uploading failed (403): AccessDenied"},
		{Filename: "=SUM(A1)", Key: "=SUM(A1)"},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, sampleOutcomes()))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, report.BOM))

	rows, err := csv.NewReader(bytes.NewReader(data[len(report.BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Filename", "Key", "Status", "Error"}, rows[0])
	assert.Equal(t, []string{"a.txt", "a.txt", "uploaded", ""}, rows[1])
	assert.Equal(t, []string{"b.txt", "", "failed", "uploading failed (403): AccessDenied"}, rows[2])
	assert.Equal(t, []string{"'=SUM(A1)", "'=SUM(A1)", "uploaded", ""}, rows[3])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteXLSX(&buf, sampleOutcomes()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Outcomes")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Filename", "Key", "Status", "Error"}, rows[0])
	require.GreaterOrEqual(t, len(rows[1]), 3)
	assert.Equal(t, []string{"a.txt", "a.txt", "uploaded"}, rows[1][:3])
	assert.Equal(t, []string{"b.txt", "", "failed", "uploading failed (403): AccessDenied"}, rows[2])
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "out.csv")
	require.NoError(t, report.WriteFile(csvPath, sampleOutcomes()))
	info, err := os.Stat(csvPath)
	require.NoError(t, err)
	assert.Positive(t, info.Size())

	xlsxPath := filepath.Join(dir, "out.XLSX")
	require.NoError(t, report.WriteFile(xlsxPath, sampleOutcomes()))
	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)
	_ = f.Close()

	err = report.WriteFile(filepath.Join(dir, "out.json"), sampleOutcomes())
	assert.ErrorContains(t, err, "unsupported report format")
	_, statErr := os.Stat(filepath.Join(dir, "out.json"))
	assert.True(t, os.IsNotExist(statErr))
}
