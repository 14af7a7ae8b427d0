package bench

import "time"

// Size is an item count, used for throughput math in reports.
type Size struct {
	Count uint64
}

// SizeOf returns a Size of count items.
func SizeOf(count uint64) Size {
	return Size{Count: count}
}

// ToBytes scales the item count by the per-item byte size.
func (z Size) ToBytes(itemBytes int) Size {
	return Size{Count: z.Count * uint64(itemBytes)}
}

// Giga returns the count in units of 1e9.
func (z Size) Giga() float64 {
	return float64(z.Count) / 1e9
}

// Tera returns the count in units of 1e12.
func (z Size) Tera() float64 {
	return float64(z.Count) / 1e12
}

// Throughput is a processing rate in items per second.
type Throughput struct {
	Rate float64
}

// ThroughputOf returns the rate at which z items complete in elapsed.
func ThroughputOf(z Size, elapsed time.Duration) Throughput {
	return Throughput{Rate: float64(z.Count) / elapsed.Seconds()}
}

// Giga returns the rate in units of 1e9/s.
func (t Throughput) Giga() float64 {
	return t.Rate / 1e9
}

// Tera returns the rate in units of 1e12/s.
func (t Throughput) Tera() float64 {
	return t.Rate / 1e12
}
