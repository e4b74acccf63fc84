package statistics

import (
	"math"
	"strings"
	"testing"

	"github.com/lox/golfforbots/internal/course"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.Percentile(0.5) != 0 {
		t.Errorf("Expected percentile of 0 for empty stats, got %f", stats.Percentile(0.5))
	}
	if stats.HoledRate() != 0 {
		t.Errorf("Expected holed rate of 0 for empty stats, got %f", stats.HoledRate())
	}
}

func TestStatistics_SingleValue(t *testing.T) {
	stats := &Statistics{}
	stats.Add(HoleResult{
		Seed:      12345,
		Par:       4,
		Score:     6,
		Shots:     5,
		Penalties: 2,
		Holed:     true,
		Landings:  []course.Terrain{course.Fairway, course.WaterHazard, course.Rough, course.Fairway, course.Green},
	})

	if stats.Holes != 1 {
		t.Errorf("Expected 1 hole, got %d", stats.Holes)
	}
	if stats.Mean() != 6 {
		t.Errorf("Expected mean of 6, got %f", stats.Mean())
	}
	if stats.MeanToPar() != 2 {
		t.Errorf("Expected mean to par of 2, got %f", stats.MeanToPar())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for single value, got %f", stats.Variance())
	}
	if stats.ToParCounts[2] != 1 {
		t.Errorf("Expected one double bogey, got %v", stats.ToParCounts)
	}
	if stats.Landings[course.Fairway] != 2 {
		t.Errorf("Expected 2 fairway landings, got %d", stats.Landings[course.Fairway])
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_MultipleValues(t *testing.T) {
	stats := &Statistics{}

	results := []HoleResult{
		{Par: 4, Score: 4, Shots: 4, Holed: true},
		{Par: 4, Score: 3, Shots: 3, Holed: true},
		{Par: 4, Score: 7, Shots: 6, Penalties: 2, Holed: true},
		{Par: 4, Score: 21, Shots: 15, Penalties: 12, Truncated: true},
		{Par: 4, Score: 5, Shots: 5, Holed: true},
	}
	for _, r := range results {
		r.Landings = make([]course.Terrain, r.Shots)
		stats.Add(r)
	}

	expectedMean := (4.0 + 3 + 7 + 21 + 5) / 5
	if math.Abs(stats.Mean()-expectedMean) > 1e-9 {
		t.Errorf("Expected mean of %f, got %f", expectedMean, stats.Mean())
	}

	// sorted scores: 3, 4, 5, 7, 21
	if stats.Median() != 5 {
		t.Errorf("Expected median of 5, got %f", stats.Median())
	}
	if stats.Holed != 4 || stats.Truncated != 1 {
		t.Errorf("Expected 4 holed and 1 truncated, got %d and %d", stats.Holed, stats.Truncated)
	}
	if math.Abs(stats.HoledRate()-0.8) > 1e-9 {
		t.Errorf("Expected holed rate of 0.8, got %f", stats.HoledRate())
	}
	if stats.Penalties != 14 {
		t.Errorf("Expected 14 penalty strokes, got %d", stats.Penalties)
	}
	if stats.ToParCounts[-1] != 1 || stats.ToParCounts[0] != 1 {
		t.Errorf("Unexpected to-par distribution %v", stats.ToParCounts)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Expected valid stats, got %v", err)
	}
}

func TestStatistics_Percentiles(t *testing.T) {
	stats := &Statistics{}
	for i := 1; i <= 5; i++ {
		stats.Add(HoleResult{Score: i, Par: 3})
	}

	tests := []struct {
		percentile float64
		expected   float64
	}{
		{0.0, 1.0},
		{0.25, 2.0},
		{0.5, 3.0},
		{0.75, 4.0},
		{0.9, 4.6},
		{1.0, 5.0},
	}

	for _, test := range tests {
		result := stats.Percentile(test.percentile)
		if math.Abs(result-test.expected) > 1e-9 {
			t.Errorf("Percentile %.2f: expected %f, got %f", test.percentile, test.expected, result)
		}
	}
}

func TestStatistics_ConfidenceInterval(t *testing.T) {
	stats := &Statistics{}
	for _, v := range []int{3, 4, 5, 6, 7} {
		stats.Add(HoleResult{Score: v, Par: 4})
	}

	low, high := stats.ConfidenceInterval95()
	mean := stats.Mean()

	if math.Abs((low+high)/2-mean) > 1e-9 {
		t.Errorf("Confidence interval not symmetric around mean. Low: %f, High: %f, Mean: %f", low, high, mean)
	}
	if high-low <= 0 {
		t.Errorf("Confidence interval should be positive width, got %f", high-low)
	}
}

func TestStatistics_Variance(t *testing.T) {
	stats := &Statistics{}

	// [3, 5, 7] has sample variance 4
	for _, v := range []int{3, 5, 7} {
		stats.Add(HoleResult{Score: v})
	}

	if math.Abs(stats.Variance()-4) > 1e-9 {
		t.Errorf("Expected variance of 4, got %f", stats.Variance())
	}
	if math.Abs(stats.StdDev()-2) > 1e-9 {
		t.Errorf("Expected stddev of 2, got %f", stats.StdDev())
	}
}

func TestStatistics_Merge(t *testing.T) {
	a, b, all := &Statistics{}, &Statistics{}, &Statistics{}
	results := []HoleResult{
		{Par: 4, Score: 4, Shots: 4, Holed: true, Landings: []course.Terrain{course.Fairway, course.Fairway, course.Rough, course.Green}},
		{Par: 3, Score: 5, Shots: 4, Penalties: 2, Holed: true, Landings: []course.Terrain{course.OutOfBounds, course.Rough, course.Bunker, course.Green}},
		{Par: 5, Score: 5, Shots: 5, Holed: true, Landings: []course.Terrain{course.Fairway, course.Fairway, course.Fairway, course.Rough, course.Green}},
	}
	for i, r := range results {
		all.Add(r)
		if i%2 == 0 {
			a.Add(r)
		} else {
			b.Add(r)
		}
	}
	a.Merge(b)

	if a.Holes != all.Holes || a.Shots != all.Shots || a.Penalties != all.Penalties || a.SumToPar != all.SumToPar {
		t.Errorf("Merged counters differ: %+v vs %+v", a, all)
	}
	if math.Abs(a.Variance()-all.Variance()) > 1e-9 {
		t.Errorf("Merged variance %f, want %f", a.Variance(), all.Variance())
	}
	if a.Median() != all.Median() {
		t.Errorf("Merged median %f, want %f", a.Median(), all.Median())
	}
	if a.Landings[course.Fairway] != 5 {
		t.Errorf("Expected 5 fairway landings, got %d", a.Landings[course.Fairway])
	}
	if err := a.Validate(); err != nil {
		t.Errorf("Expected merged stats to validate, got %v", err)
	}
}

func TestStatistics_Validate(t *testing.T) {
	tests := []struct {
		name  string
		stats Statistics
		want  string
	}{
		{
			name:  "no holes",
			stats: Statistics{},
			want:  "invalid holes count",
		},
		{
			name:  "values mismatch",
			stats: Statistics{Holes: 2, Values: []float64{4}},
			want:  "values array length",
		},
		{
			name:  "too many outcomes",
			stats: Statistics{Holes: 1, Values: []float64{4}, Holed: 1, Truncated: 1},
			want:  "exceeds total holes",
		},
		{
			name:  "landing mismatch",
			stats: Statistics{Holes: 1, Values: []float64{4}, SumScore: 4, Shots: 4, Landings: map[course.Terrain]int{course.Green: 1}},
			want:  "landing total",
		},
		{
			name:  "score too high",
			stats: Statistics{Holes: 1, Values: []float64{9}, SumScore: 9, Shots: 1, Landings: map[course.Terrain]int{course.Green: 1}},
			want:  "exceed shots plus penalties",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.stats.Validate()
			if err == nil {
				t.Fatalf("Expected validation to fail with %q", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected %q error, got: %v", tt.want, err)
			}
		})
	}
}
