// Package workloads provides the memory-traffic workloads benchmarked by the
// cmd drivers. Each constructor returns an opaque gpu.Workload that only
// enqueues; the benchmark executor owns all synchronization.
package workloads

import (
	"github.com/Snektron/amd-experiments/gpu"
)

// Fill returns a workload that fills buf with the given byte value.
// One item per byte written.
func Fill(buf gpu.Buffer, value byte) gpu.Workload {
	return func(s gpu.Stream) error {
		return s.MemsetAsync(buf, value, buf.Size())
	}
}

// DeviceCopy returns a workload that copies n bytes from src to dst on the
// device. Each byte moves through memory twice (one read, one write).
func DeviceCopy(dst, src gpu.Buffer, n int) gpu.Workload {
	return func(s gpu.Stream) error {
		return s.CopyAsync(dst, src, n)
	}
}
