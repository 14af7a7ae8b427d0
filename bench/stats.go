// Package bench is the benchmark core: the statistics engine, the
// performance-level governor and the executor driving the cache-flush/
// warmup/measure protocol around caller-supplied workloads.
package bench

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
)

// Stats aggregates a non-empty sequence of samples. Stddev is the population
// standard deviation (divide by N).
type Stats[T constraints.Integer | constraints.Float] struct {
	Average  T
	Stddev   T
	Smallest T
	Largest  T
}

// Aggregate computes Stats over samples. It fails on an empty sequence;
// callers must guarantee at least one sample.
func Aggregate[T constraints.Integer | constraints.Float](samples []T) (Stats[T], error) {
	if len(samples) == 0 {
		return Stats[T]{}, errors.New("no samples to aggregate")
	}

	smallest, largest := samples[0], samples[0]
	sum := 0.0
	for _, x := range samples {
		sum += float64(x)
		smallest = min(smallest, x)
		largest = max(largest, x)
	}
	avg := sum / float64(len(samples))

	sumSq := 0.0
	for _, x := range samples {
		diff := float64(x) - avg
		sumSq += diff * diff
	}

	return Stats[T]{
		Average:  T(avg),
		Stddev:   T(math.Sqrt(sumSq / float64(len(samples)))),
		Smallest: smallest,
		Largest:  largest,
	}, nil
}

// DurationStats aggregates duration samples. The variance arithmetic runs on
// the underlying nanosecond counts so the duration wrapper cannot overflow.
type DurationStats struct {
	Average time.Duration
	Stddev  time.Duration
	Fastest time.Duration
	Slowest time.Duration
}

// AggregateDurations computes DurationStats over samples. It fails on an
// empty sequence.
func AggregateDurations(samples []time.Duration) (DurationStats, error) {
	counts := make([]int64, len(samples))
	for i, d := range samples {
		counts[i] = d.Nanoseconds()
	}
	s, err := Aggregate(counts)
	if err != nil {
		return DurationStats{}, err
	}
	return DurationStats{
		Average: time.Duration(s.Average),
		Stddev:  time.Duration(s.Stddev),
		Fastest: time.Duration(s.Smallest),
		Slowest: time.Duration(s.Largest),
	}, nil
}

func (s DurationStats) String() string {
	return fmt.Sprintf("%v ± %v (fastest %v, slowest %v)", s.Average, s.Stddev, s.Fastest, s.Slowest)
}
