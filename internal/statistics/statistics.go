package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/golfforbots/internal/course"
)

// HoleResult represents the outcome of a single simulated hole
type HoleResult struct {
	Seed      int64 // RNG seed for this hole (for replay)
	Par       int
	Score     int  // Strokes charged, penalties included
	Shots     int  // Swings taken
	Penalties int  // Penalty strokes charged
	Holed     bool // Reached the green
	Truncated bool // Stopped at the score cap short of the green

	// Landing terrain of every shot
	Landings []course.Terrain
}

// ToPar returns the score relative to par.
func (r HoleResult) ToPar() int { return r.Score - r.Par }

// Statistics tracks scoring statistics over many holes
type Statistics struct {
	Holes     int
	SumScore  float64
	SumScore2 float64   // Sum of squares for variance calculation
	Values    []float64 // Store all scores for median/percentile calculation

	Holed     int
	Truncated int
	Shots     int
	Penalties int
	SumToPar  int

	// Score distribution relative to par, e.g. -1 for birdies
	ToParCounts map[int]int

	// Landing terrain counts over all shots
	Landings map[course.Terrain]int
}

// Mean returns the arithmetic mean score per hole
func (s *Statistics) Mean() float64 {
	if s.Holes == 0 {
		return 0
	}
	return s.SumScore / float64(s.Holes)
}

// MeanToPar returns the mean score relative to par
func (s *Statistics) MeanToPar() float64 {
	if s.Holes == 0 {
		return 0
	}
	return float64(s.SumToPar) / float64(s.Holes)
}

// Variance returns the sample variance of all scores
func (s *Statistics) Variance() float64 {
	if s.Holes < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumScore2 - float64(s.Holes)*mean*mean) / float64(s.Holes-1)
}

// StdDev returns the sample standard deviation of all scores
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(max(0, s.Variance()))
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Holes == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Holes))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// HoledRate returns the fraction of holes that reached the green
func (s *Statistics) HoledRate() float64 {
	if s.Holes == 0 {
		return 0
	}
	return float64(s.Holed) / float64(s.Holes)
}

// Add incorporates a new hole result into the statistics
func (s *Statistics) Add(result HoleResult) {
	score := float64(result.Score)
	s.Holes++
	s.SumScore += score
	s.SumScore2 += score * score
	s.Values = append(s.Values, score)

	if result.Holed {
		s.Holed++
	}
	if result.Truncated {
		s.Truncated++
	}
	s.Shots += result.Shots
	s.Penalties += result.Penalties
	s.SumToPar += result.ToPar()

	if s.ToParCounts == nil {
		s.ToParCounts = make(map[int]int)
	}
	s.ToParCounts[result.ToPar()]++

	if s.Landings == nil {
		s.Landings = make(map[course.Terrain]int)
	}
	for _, t := range result.Landings {
		s.Landings[t]++
	}
}

// Merge folds other into s.
func (s *Statistics) Merge(other *Statistics) {
	s.Holes += other.Holes
	s.SumScore += other.SumScore
	s.SumScore2 += other.SumScore2
	s.Values = append(s.Values, other.Values...)
	s.Holed += other.Holed
	s.Truncated += other.Truncated
	s.Shots += other.Shots
	s.Penalties += other.Penalties
	s.SumToPar += other.SumToPar

	if s.ToParCounts == nil {
		s.ToParCounts = make(map[int]int)
	}
	for k, v := range other.ToParCounts {
		s.ToParCounts[k] += v
	}
	if s.Landings == nil {
		s.Landings = make(map[course.Terrain]int)
	}
	for k, v := range other.Landings {
		s.Landings[k] += v
	}
}

// Median returns the median score
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the score at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Validate checks the counters are consistent with each other
func (s *Statistics) Validate() error {
	if s.Holes <= 0 {
		return fmt.Errorf("invalid holes count: %d", s.Holes)
	}

	if len(s.Values) != s.Holes {
		return fmt.Errorf("values array length (%d) does not match holes count (%d)",
			len(s.Values), s.Holes)
	}

	if s.Holed+s.Truncated > s.Holes {
		return fmt.Errorf("holed (%d) plus truncated (%d) exceeds total holes (%d)",
			s.Holed, s.Truncated, s.Holes)
	}

	landings := 0
	for _, n := range s.Landings {
		landings += n
	}
	if landings != s.Shots {
		return fmt.Errorf("landing total (%d) does not match shots (%d)", landings, s.Shots)
	}

	if s.Shots+s.Penalties < int(s.SumScore) {
		return fmt.Errorf("scores (%v) exceed shots plus penalties (%d)", s.SumScore, s.Shots+s.Penalties)
	}

	return nil
}
