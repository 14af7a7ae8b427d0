package bench

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	s, err := Aggregate([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	require.NoError(t, err)
	require.InDelta(t, 5.0, s.Average, 1e-12)
	require.InDelta(t, 2.0, s.Stddev, 1e-12)
	require.Equal(t, 2.0, s.Smallest)
	require.Equal(t, 9.0, s.Largest)
}

func TestAggregateSingleSample(t *testing.T) {
	s, err := Aggregate([]int64{42})
	require.NoError(t, err)
	require.Equal(t, int64(42), s.Average)
	require.Equal(t, int64(0), s.Stddev)
	require.Equal(t, int64(42), s.Smallest)
	require.Equal(t, int64(42), s.Largest)
}

func TestAggregateEmpty(t *testing.T) {
	_, err := Aggregate([]float64{})
	require.Error(t, err)
	_, err = AggregateDurations(nil)
	require.Error(t, err)
}

func TestAggregateOrderingInvariants(t *testing.T) {
	sequences := [][]int64{
		{1},
		{1, 1, 1, 1},
		{5, 3, 8, 1, 9, 2},
		{-3, 0, 3},
		{1 << 40, 1 << 41, 1 << 42},
	}
	for _, samples := range sequences {
		s, err := Aggregate(samples)
		require.NoError(t, err)
		require.LessOrEqual(t, float64(s.Smallest), float64(s.Average), "samples %v", samples)
		require.LessOrEqual(t, float64(s.Average), float64(s.Largest), "samples %v", samples)
		require.GreaterOrEqual(t, s.Stddev, int64(0), "samples %v", samples)
	}
}

// Stddev is zero exactly when all samples are equal.
func TestAggregateStddevZero(t *testing.T) {
	s, err := Aggregate([]float64{3.5, 3.5, 3.5})
	require.NoError(t, err)
	require.Zero(t, s.Stddev)

	s, err = Aggregate([]float64{3.5, 3.5, 3.6})
	require.NoError(t, err)
	require.Greater(t, s.Stddev, 0.0)
}

func TestAggregateDurations(t *testing.T) {
	samples := []time.Duration{
		100 * time.Microsecond,
		200 * time.Microsecond,
		300 * time.Microsecond,
	}
	s, err := AggregateDurations(samples)
	require.NoError(t, err)
	require.Equal(t, 200*time.Microsecond, s.Average)
	require.Equal(t, 100*time.Microsecond, s.Fastest)
	require.Equal(t, 300*time.Microsecond, s.Slowest)
	// Population stddev of {1,2,3}e5 ns is sqrt(2/3)e5 ns.
	require.InDelta(t, 81649.6, float64(s.Stddev), 1.0)
}
