package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDurationStats(t *testing.T) {
	stats, err := DurationStats([]time.Duration{3 * time.Second, time.Second, 2 * time.Second})
	require.NoError(t, err)
	require.Equal(t, time.Second, stats.Minimum)
	require.Equal(t, 2*time.Second, stats.Average)
	require.Equal(t, 3*time.Second, stats.Maximum)
	require.Equal(t, "Min: 1s, Avg: 2s, Max: 3s", stats.String())

	_, err = DurationStats(nil)
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestDurationStats_MeanMatchesSecondsAverage(t *testing.T) {
	sample := []time.Duration{time.Second, 2 * time.Second, 2 * time.Second}
	stats, err := DurationStats(sample)
	require.NoError(t, err)

	var seconds float64
	for _, d := range sample {
		seconds += d.Seconds()
	}
	want := time.Duration(seconds / float64(len(sample)) * float64(time.Second))
	require.InDelta(t, float64(want), float64(stats.Average), 1)
}

func TestFloatStats_Bounds(t *testing.T) {
	stats, err := FloatStats([]float64{0.1, 0.1, 0.1})
	require.NoError(t, err)
	require.LessOrEqual(t, stats.Minimum, stats.Average)
	require.LessOrEqual(t, stats.Average, stats.Maximum)

	_, err = FloatStats([]float64{})
	require.ErrorIs(t, err, ErrInsufficientData)
}

func TestDateRange(t *testing.T) {
	r, err := NewDateRange(at(0), at(60))
	require.NoError(t, err)
	require.Equal(t, time.Hour, r.Duration())
	require.True(t, r.Contains(at(0)))
	require.True(t, r.Contains(at(60)))
	require.False(t, r.Contains(at(61)))

	other, err := NewDateRange(at(60), at(120))
	require.NoError(t, err)
	require.True(t, r.Overlaps(other))

	later, err := NewDateRange(at(61), at(120))
	require.NoError(t, err)
	require.False(t, r.Overlaps(later))
	require.False(t, later.Overlaps(r))

	_, err = NewDateRange(at(1), at(0))
	require.ErrorIs(t, err, ErrInvalidRange)
}
