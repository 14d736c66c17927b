package sentiment

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/tradewatch/stockpulse/pkg/models"
)

// Summarize folds per-source scored collections into one SentimentSummary.
// Upstream advisories in errs are carried through verbatim; aggregation
// proceeds with whatever collections succeeded. Counting is insensitive to
// item order within a collection.
func Summarize(ticker string, days int, collections map[string]models.ScoredCollection, errs []models.SourceError) models.SentimentSummary {
	summary := models.SentimentSummary{
		Ticker:      ticker,
		Days:        days,
		Sources:     make(map[string]models.SourceStats, len(collections)),
		Errors:      errs,
		GeneratedAt: time.Now().UTC(),
	}

	var labels []models.SentimentLabel
	var compounds []float64

	for name, coll := range collections {
		summary.Sources[name] = sourceStats(coll)
		for _, item := range coll.Items {
			labels = append(labels, item.Score.Label)
			compounds = append(compounds, item.Score.Compound)
		}
	}

	summary.Combined = combinedStats(labels, compounds)
	return summary
}

func sourceStats(coll models.ScoredCollection) models.SourceStats {
	counts := make(map[models.SentimentLabel]int)
	compounds := make([]float64, 0, len(coll.Items))
	subjectivities := make([]float64, 0, len(coll.Items))

	for _, item := range coll.Items {
		counts[item.Score.Label]++
		compounds = append(compounds, item.Score.Compound)
		subjectivities = append(subjectivities, item.Score.Subjectivity)
	}

	stats := models.SourceStats{
		Total:   len(coll.Items),
		Counts:  counts,
		Primary: majority(counts),
	}
	if len(compounds) > 0 {
		stats.AvgCompound = stat.Mean(compounds, nil)
		stats.AvgSubjectivity = stat.Mean(subjectivities, nil)
	}
	return stats
}

func combinedStats(labels []models.SentimentLabel, compounds []float64) models.CombinedStats {
	counts := make(map[models.SentimentLabel]int)
	for _, l := range labels {
		counts[l]++
	}

	stats := models.CombinedStats{
		Total:  len(labels),
		Counts: counts,
		Percentages: map[models.SentimentLabel]float64{
			models.LabelPositive: 0,
			models.LabelNegative: 0,
			models.LabelNeutral:  0,
		},
		Primary: models.LabelNeutral,
	}
	if stats.Total == 0 {
		return stats
	}

	for label := range stats.Percentages {
		stats.Percentages[label] = 100 * float64(counts[label]) / float64(stats.Total)
	}
	stats.Primary = majority(counts)
	stats.AvgCompound = stat.Mean(compounds, nil)
	return stats
}

// majority is the strict-majority vote: a label wins only by beating both
// others outright; any tie resolves to neutral.
func majority(counts map[models.SentimentLabel]int) models.SentimentLabel {
	pos := counts[models.LabelPositive]
	neg := counts[models.LabelNegative]
	neu := counts[models.LabelNeutral]

	switch {
	case pos > neg && pos > neu:
		return models.LabelPositive
	case neg > pos && neg > neu:
		return models.LabelNegative
	default:
		return models.LabelNeutral
	}
}
