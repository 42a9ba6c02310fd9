package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

func TestAggregate_DecadeTotals(t *testing.T) {
	snapshot := &domain.Snapshot{
		Categories: []domain.Category{domain.CategoryHomicide, domain.CategoryRobbery},
		Records: []domain.NeighborhoodRecord{
			{
				HoodID:   1,
				AreaName: "Alpha",
				Counts: map[domain.Category][]int{
					domain.CategoryHomicide: {1, 0, 2, 0, 0, 0, 1, 0, 0, 1},
					domain.CategoryRobbery:  {10, 10, 10, 10, 10, 10, 10, 10, 10, 10},
				},
			},
			{
				HoodID:   2,
				AreaName: "Beta",
				Counts: map[domain.Category][]int{
					domain.CategoryHomicide: {0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
					domain.CategoryRobbery:  {0, 1, 0, 2, 0, 3, 0, 4, 0, 5},
				},
			},
		},
	}

	table, err := Aggregate(snapshot, snapshot.Categories)
	require.NoError(t, err)

	require.Len(t, table.Rows, 2)
	assert.Equal(t, 5, table.Rows[0].Totals[domain.CategoryHomicide])
	assert.Equal(t, 100, table.Rows[0].Totals[domain.CategoryRobbery])
	assert.Equal(t, 0, table.Rows[1].Totals[domain.CategoryHomicide])
	assert.Equal(t, 15, table.Rows[1].Totals[domain.CategoryRobbery])

	// Identity columns and order survive the fold
	assert.Equal(t, 1, table.Rows[0].HoodID)
	assert.Equal(t, "Beta", table.Rows[1].AreaName)
}

func TestAggregate_CategorySubset(t *testing.T) {
	snapshot := &domain.Snapshot{
		Categories: []domain.Category{domain.CategoryHomicide, domain.CategoryRobbery},
		Records: []domain.NeighborhoodRecord{
			{
				HoodID:   1,
				AreaName: "Alpha",
				Counts: map[domain.Category][]int{
					domain.CategoryHomicide: {1, 1, 1, 1, 1, 1, 1, 1, 1, 1},
					domain.CategoryRobbery:  {2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
				},
			},
		},
	}

	table, err := Aggregate(snapshot, []domain.Category{domain.CategoryRobbery})
	require.NoError(t, err)

	assert.Equal(t, []domain.Category{domain.CategoryRobbery}, table.Categories)
	assert.Equal(t, 20, table.Rows[0].Totals[domain.CategoryRobbery])
	_, present := table.Rows[0].Totals[domain.CategoryHomicide]
	assert.False(t, present, "only requested categories are folded")
}

func TestAggregate_UnknownCategory(t *testing.T) {
	snapshot := &domain.Snapshot{
		Categories: []domain.Category{domain.CategoryHomicide},
		Records:    []domain.NeighborhoodRecord{{HoodID: 1, AreaName: "Alpha"}},
	}

	_, err := Aggregate(snapshot, []domain.Category{domain.CategoryShooting})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeUnknownCategory))
	assert.Contains(t, err.Error(), "shooting")
}

func TestAggregate_EmptySnapshot(t *testing.T) {
	snapshot := &domain.Snapshot{Categories: []domain.Category{domain.CategoryHomicide}}

	table, err := Aggregate(snapshot, []domain.Category{domain.CategoryHomicide})
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}
