package analytics

import (
	"fmt"
	"slices"
	"time"
)

// DescriptiveStats summarises a non-empty sample.
type DescriptiveStats[T any] struct {
	Minimum T `json:"minimum"`
	Average T `json:"average"`
	Maximum T `json:"maximum"`
}

func (s DescriptiveStats[T]) String() string {
	return fmt.Sprintf("Min: %v, Avg: %v, Max: %v", s.Minimum, s.Average, s.Maximum)
}

// DurationStats reports the minimum, arithmetic mean and maximum of sample.
// The mean is the total divided by the sample size, taken in whole
// nanoseconds; this equals averaging total seconds and converting back, to
// within a nanosecond, and never leaves [min, max].
func DurationStats(sample []time.Duration) (DescriptiveStats[time.Duration], error) {
	if len(sample) == 0 {
		return DescriptiveStats[time.Duration]{}, fmt.Errorf("%w: empty duration sample", ErrInsufficientData)
	}
	var total time.Duration
	for _, d := range sample {
		total += d
	}
	return DescriptiveStats[time.Duration]{
		Minimum: slices.Min(sample),
		Average: total / time.Duration(len(sample)),
		Maximum: slices.Max(sample),
	}, nil
}

func FloatStats(sample []float64) (DescriptiveStats[float64], error) {
	if len(sample) == 0 {
		return DescriptiveStats[float64]{}, fmt.Errorf("%w: empty sample", ErrInsufficientData)
	}
	var total float64
	for _, v := range sample {
		total += v
	}
	least, most := slices.Min(sample), slices.Max(sample)
	// float rounding can push the mean a hair past the bounds
	avg := min(max(total/float64(len(sample)), least), most)
	return DescriptiveStats[float64]{Minimum: least, Average: avg, Maximum: most}, nil
}
