package dataprocessing

import (
	"fmt"

	apperrors "crimescope/internal/errors"
	"crimescope/pkg/contracts/domain"
)

// ExtractTimeSeries reshapes one neighborhood's yearly counts for one
// category into an ordered (year, count) sequence covering every year of
// the decade with no gaps; zero-count years appear explicitly. The result
// is a plain finite slice the renderer may traverse any number of times.
//
// It fails with a not-found error when the hood id is not in the snapshot
// and with an unknown-category error when the category was not normalized.
func ExtractTimeSeries(snapshot *domain.Snapshot, hoodID int, category domain.Category) ([]domain.TimeSeriesPoint, error) {
	if !snapshot.HasCategory(category) {
		return nil, apperrors.NewUnknownCategoryError(category.String()).WithStage("timeseries")
	}

	record, _, ok := snapshot.FindRecord(hoodID)
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("neighborhood %d", hoodID)).
			WithStage("timeseries").WithContext("hood_id", hoodID)
	}

	points := make([]domain.TimeSeriesPoint, 0, domain.NumYears)
	for _, year := range domain.Years() {
		points = append(points, domain.TimeSeriesPoint{
			Year:  year,
			Count: record.Count(category, year),
		})
	}

	return points, nil
}
