package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	writer := NewCSVWriter()
	path := filepath.Join(t.TempDir(), "out", "table.csv")

	err := writer.WriteCSV(path, WriteOptions{
		Headers:   []string{"a", "b"},
		Records:   [][]string{{"1", "x"}, {"2", "y"}},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}), "file should start with UTF-8 BOM")

	reader := csv.NewReader(bytes.NewReader(data[3:]))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "x"}, {"2", "y"}}, rows)
}

func TestWriteCSV_NoBOM(t *testing.T) {
	writer := NewCSVWriter()
	path := filepath.Join(t.TempDir(), "table.csv")

	err := writer.WriteCSV(path, WriteOptions{
		Headers: []string{"a"},
		Records: [][]string{{"1"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSV_EmptyRecords(t *testing.T) {
	writer := NewCSVWriter()
	path := filepath.Join(t.TempDir(), "empty.csv")

	require.NoError(t, writer.WriteSimpleCSV(path, []string{"a", "b"}, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	// Header only
	assert.Equal(t, "a,b\n", string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})))
}
