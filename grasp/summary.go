package grasp

import (
	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
)

// Summary describes a generated candidate list for reporting.
type Summary struct {
	Count         int
	Best          *Candidate
	MeanQuality   float64
	MedianQuality float64
	MinQuality    float64
}

// Summarize reports count and quality statistics. The best candidate is the first one with
// the highest quality.
func Summarize(candidates []Candidate) Summary {
	if len(candidates) == 0 {
		return Summary{}
	}
	qualities := lo.Map(candidates, func(c Candidate, _ int) float64 { return c.Quality })
	// stats only fails on empty input
	mean, _ := stats.Mean(qualities)
	median, _ := stats.Median(qualities)
	lowest, _ := stats.Min(qualities)

	best := lo.MaxBy(candidates, func(a, b Candidate) bool { return a.Quality > b.Quality })
	return Summary{
		Count:         len(candidates),
		Best:          &best,
		MeanQuality:   mean,
		MedianQuality: median,
		MinQuality:    lowest,
	}
}
