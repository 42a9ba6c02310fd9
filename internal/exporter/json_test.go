package exporter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crimescope/pkg/contracts/domain"
)

func TestWriteOverview(t *testing.T) {
	writer := NewJSONWriter()
	path := filepath.Join(t.TempDir(), "overview.json")

	table := &domain.AggregatedTable{
		Categories: []domain.Category{domain.CategoryHomicide},
		Rows: []domain.AggregatedRow{
			{HoodID: 1, AreaName: "Alpha", Totals: map[domain.Category]int{domain.CategoryHomicide: 5}},
		},
	}
	require.NoError(t, writer.WriteOverview(path, table))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var envelope OverviewEnvelope
	require.NoError(t, json.Unmarshal(data, &envelope))

	assert.Equal(t, "crime_overview_v1", envelope.Format)
	assert.Equal(t, 1, envelope.Count)
	assert.NotEmpty(t, envelope.GeneratedAt)
	require.Len(t, envelope.Rows, 1)
	assert.Equal(t, "Alpha", envelope.Rows[0].AreaName)
	assert.Equal(t, 5, envelope.Rows[0].Totals[domain.CategoryHomicide])
}

func TestWriteRankingsJSON(t *testing.T) {
	writer := NewJSONWriter()
	path := filepath.Join(t.TempDir(), "top_homicide.json")

	entries := []domain.RankedEntry{
		{HoodID: 3, AreaName: "Gamma", Total: 10, Rank: 1},
	}
	require.NoError(t, writer.WriteRankings(path, domain.CategoryHomicide, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var envelope RankingEnvelope
	require.NoError(t, json.Unmarshal(data, &envelope))

	assert.Equal(t, "crime_ranking_v1", envelope.Format)
	assert.Equal(t, domain.CategoryHomicide, envelope.Category)
	assert.Equal(t, 1, envelope.Count)
	require.Len(t, envelope.Entries, 1)
	assert.Equal(t, 1, envelope.Entries[0].Rank)
}

func TestWriteJSON_CreatesDirectory(t *testing.T) {
	writer := NewJSONWriter()
	path := filepath.Join(t.TempDir(), "nested", "dir", "overview.json")

	table := &domain.AggregatedTable{Categories: []domain.Category{domain.CategoryHomicide}}
	require.NoError(t, writer.WriteOverview(path, table))
	assert.FileExists(t, path)
}
