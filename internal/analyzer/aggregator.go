package analyzer

import (
	"math"
	"slices"

	"github.com/nglogan/nglogan/internal/models"
)

// urlAccumulator holds the running per-URL state while records are
// consumed. The individual samples are kept because the median needs them.
type urlAccumulator struct {
	count   int
	timeSum float64
	samples []float64
}

// CalculateStatistics aggregates parsed records into finalized per-URL
// report entries. The returned map carries no ordering; the renderer sorts
// and truncates it.
func CalculateStatistics(records []models.LogRecord) map[string]*models.ReportEntry {
	accumulators := make(map[string]*urlAccumulator)
	totalCount := 0
	totalTime := 0.0

	for _, record := range records {
		acc, exists := accumulators[record.URL]
		if !exists {
			acc = &urlAccumulator{}
			accumulators[record.URL] = acc
		}

		acc.count++
		acc.timeSum += record.RequestTime
		acc.samples = append(acc.samples, record.RequestTime)

		totalCount++
		totalTime += record.RequestTime
	}

	result := make(map[string]*models.ReportEntry, len(accumulators))
	for url, acc := range accumulators {
		entry := &models.ReportEntry{
			URL:     url,
			Count:   acc.count,
			TimeSum: round3(acc.timeSum),
		}

		if totalCount > 0 {
			entry.CountPerc = round2(float64(acc.count) / float64(totalCount) * 100)
		}
		if totalTime > 0 {
			entry.TimePerc = round2(acc.timeSum / totalTime * 100)
		}
		if acc.count > 0 {
			entry.TimeAvg = round3(acc.timeSum / float64(acc.count))
		}
		if len(acc.samples) > 0 {
			entry.TimeMax = round3(slices.Max(acc.samples))
			entry.TimeMed = round3(median(acc.samples))
		}

		result[url] = entry
	}

	return result
}

// median returns the statistical median of samples. The input slice is not
// modified. Callers guarantee samples is non-empty.
func median(samples []float64) float64 {
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
