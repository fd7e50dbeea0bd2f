package report

import (
	"fmt"
	"sort"

	"talent-engine/internal/common/errors"
	"talent-engine/internal/models"
)

// Trend directions.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// CompareReports computes inter-report deltas and trend direction over
// a user's report history. Input order does not matter; reports are
// sorted ascending by creation time before computation.
//
// Dimensions are paired by label, not by index: a catalog change
// between two reports surfaces as a DIMENSION_MISMATCH error instead of
// a silently wrong pairing.
func CompareReports(reports []models.Report) (*models.Comparison, error) {
	if len(reports) == 0 {
		return nil, errors.NewNoReportsError()
	}

	sorted := make([]models.Report, len(reports))
	copy(sorted, reports)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	entries := make([]models.ComparisonEntry, 0, len(sorted))
	for _, r := range sorted {
		entries = append(entries, models.ComparisonEntry{
			ID:              r.ID,
			Date:            r.CreatedAt,
			TotalScore:      r.TotalScore,
			TalentType:      r.TalentType,
			DimensionScores: r.DimensionScores,
		})
	}

	trend, err := calculateTrend(sorted)
	if err != nil {
		return nil, err
	}

	return &models.Comparison{
		Reports: entries,
		Trend:   trend,
	}, nil
}

// calculateTrend compares the earliest and latest reports. With fewer
// than two reports there is nothing to compare and the trend is nil.
func calculateTrend(sorted []models.Report) (*models.Trend, error) {
	if len(sorted) < 2 {
		return nil, nil
	}

	first := sorted[0]
	last := sorted[len(sorted)-1]

	firstByLabel := make(map[string]int, len(first.DimensionScores))
	for _, dim := range first.DimensionScores {
		firstByLabel[dim.Dimension] = dim.Score
	}

	if len(last.DimensionScores) != len(firstByLabel) {
		return nil, errors.NewDimensionMismatchError(fmt.Sprintf(
			"first report has %d dimensions, last has %d",
			len(firstByLabel), len(last.DimensionScores),
		))
	}

	changes := make([]models.DimensionChange, 0, len(last.DimensionScores))
	for _, dim := range last.DimensionScores {
		firstScore, ok := firstByLabel[dim.Dimension]
		if !ok {
			return nil, errors.NewDimensionMismatchError(fmt.Sprintf(
				"dimension %q present in last report but not in first", dim.Dimension,
			))
		}
		changes = append(changes, models.DimensionChange{
			Dimension: dim.Dimension,
			Change:    dim.Score - firstScore,
		})
	}

	totalChange := last.TotalScore - first.TotalScore
	direction := TrendStable
	switch {
	case totalChange > 0:
		direction = TrendUp
	case totalChange < 0:
		direction = TrendDown
	}

	return &models.Trend{
		TotalScoreChange: totalChange,
		DimensionChanges: changes,
		Direction:        direction,
	}, nil
}
