package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

func TestExtractTimeSeries(t *testing.T) {
	snapshot := &domain.Snapshot{
		Categories: []domain.Category{domain.CategoryBikeTheft},
		Records: []domain.NeighborhoodRecord{
			{
				HoodID:   7,
				AreaName: "Alpha",
				Counts: map[domain.Category][]int{
					domain.CategoryBikeTheft: {4, 0, 0, 2, 0, 0, 0, 9, 0, 1},
				},
			},
		},
	}

	points, err := ExtractTimeSeries(snapshot, 7, domain.CategoryBikeTheft)
	require.NoError(t, err)

	// Always exactly one point per year of the decade, ascending
	require.Len(t, points, domain.NumYears)
	assert.Equal(t, domain.YearStart, points[0].Year)
	assert.Equal(t, domain.YearEnd, points[len(points)-1].Year)
	for i := 1; i < len(points); i++ {
		assert.Equal(t, points[i-1].Year+1, points[i].Year)
	}

	assert.Equal(t, 4, points[0].Count)
	assert.Equal(t, 2, points[3].Count)
	assert.Equal(t, 0, points[4].Count, "zero-count years appear explicitly")
	assert.Equal(t, 9, points[7].Count)
	assert.Equal(t, 1, points[9].Count)
}

func TestExtractTimeSeries_UnknownHood(t *testing.T) {
	snapshot := &domain.Snapshot{
		Categories: []domain.Category{domain.CategoryBikeTheft},
		Records:    []domain.NeighborhoodRecord{{HoodID: 7, AreaName: "Alpha"}},
	}

	_, err := ExtractTimeSeries(snapshot, 99, domain.CategoryBikeTheft)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.Contains(t, err.Error(), "neighborhood 99")
}

func TestExtractTimeSeries_UnknownCategory(t *testing.T) {
	snapshot := &domain.Snapshot{
		Categories: []domain.Category{domain.CategoryBikeTheft},
		Records:    []domain.NeighborhoodRecord{{HoodID: 7, AreaName: "Alpha"}},
	}

	_, err := ExtractTimeSeries(snapshot, 7, domain.CategoryHomicide)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeUnknownCategory))
}
