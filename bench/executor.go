package bench

import (
	"time"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/Snektron/amd-experiments/gpu"
	"github.com/Snektron/amd-experiments/smi"
)

// Default trial counts for Executor.Bench.
const (
	DefaultWarmups    = 10
	DefaultIterations = 50
)

// Executor owns everything needed to benchmark workloads on one device: a
// non-blocking stream, a buffer large enough to flush every on-device cache,
// and a Governor holding the device at a deterministic performance level.
//
// One goroutine drives one Executor per physical device; the Executor's
// stream, flush buffer and the device's clock state are exclusively its own.
type Executor struct {
	dev      gpu.Device
	stream   gpu.Stream
	flushBuf gpu.Buffer
	governor *Governor
}

// NewExecutor prepares a device for benchmarking. The Governor is initialized
// first (resolution failure is fatal); clock pinning problems only warn.
func NewExecutor(dev gpu.Device, backend smi.Backend) (*Executor, error) {
	props := dev.Properties()

	governor, err := NewGovernor(backend, dev.Ordinal(), props.BusAddress)
	if err != nil {
		return nil, err
	}

	e := &Executor{dev: dev, governor: governor}
	e.stream, err = dev.NewStream()
	if err != nil {
		_ = governor.Close()
		return nil, err
	}
	e.flushBuf, err = dev.AllocBytes(props.LargestCacheBytes())
	if err != nil {
		_ = e.stream.Destroy()
		_ = governor.Close()
		return nil, err
	}

	klog.V(1).Infof("benchmarking on device '%s' (%s)", props.Name, props.BusAddress)
	return e, nil
}

// Device returns the device this executor drives.
func (e *Executor) Device() gpu.Device {
	return e.dev
}

// Governor returns the executor's governor.
func (e *Executor) Governor() *Governor {
	return e.governor
}

// flush evicts residual cache state so the next trial starts cold, and waits
// for the eviction to finish so it cannot bleed into the timed window.
func (e *Executor) flush() error {
	if err := e.stream.MemsetAsync(e.flushBuf, 0x00, e.flushBuf.Size()); err != nil {
		return err
	}
	return e.dev.Synchronize()
}

// Bench runs workload through the flush/warmup/measure protocol and
// aggregates the measured trials. iterations must be at least 1. The workload
// must only enqueue onto the stream it is given, never block.
//
// Any runtime error during flush, record, enqueue or synchronize aborts the
// whole call; no partial statistics are returned.
func (e *Executor) Bench(workload gpu.Workload, warmups, iterations int) (DurationStats, error) {
	if iterations < 1 {
		return DurationStats{}, errors.Errorf("iterations must be at least 1, got %d", iterations)
	}

	// Warmup trials stabilize clocks and caches and trigger any lazy
	// driver initialization; their timings are discarded.
	for i := 0; i < warmups; i++ {
		if err := e.flush(); err != nil {
			return DurationStats{}, err
		}
		if err := workload(e.stream); err != nil {
			return DurationStats{}, err
		}
		if err := e.dev.Synchronize(); err != nil {
			return DurationStats{}, err
		}
	}

	type eventPair struct {
		start, stop gpu.Event
	}
	events := make([]eventPair, 0, iterations)
	defer func() {
		for _, pair := range events {
			_ = pair.stop.Destroy()
			_ = pair.start.Destroy()
		}
	}()
	for i := 0; i < iterations; i++ {
		start, err := e.dev.NewEvent()
		if err != nil {
			return DurationStats{}, err
		}
		stop, err := e.dev.NewEvent()
		if err != nil {
			_ = start.Destroy()
			return DurationStats{}, err
		}
		events = append(events, eventPair{start: start, stop: stop})
	}

	for _, pair := range events {
		if err := e.flush(); err != nil {
			return DurationStats{}, err
		}
		if err := e.stream.Record(pair.start); err != nil {
			return DurationStats{}, err
		}
		if err := workload(e.stream); err != nil {
			return DurationStats{}, err
		}
		if err := e.stream.Record(pair.stop); err != nil {
			return DurationStats{}, err
		}
		if err := e.dev.Synchronize(); err != nil {
			return DurationStats{}, err
		}
	}

	samples := make([]time.Duration, 0, iterations)
	for _, pair := range events {
		elapsed, err := pair.stop.ElapsedSince(pair.start)
		if err != nil {
			return DurationStats{}, err
		}
		samples = append(samples, elapsed)
	}
	return AggregateDurations(samples)
}

// Close restores the device's clock state and releases the executor's
// resources. The first error encountered is returned, but teardown always
// runs to completion.
func (e *Executor) Close() error {
	if e == nil {
		return nil
	}
	var firstErr error
	if e.flushBuf != nil {
		firstErr = e.flushBuf.Destroy()
		e.flushBuf = nil
	}
	if e.stream != nil {
		if err := e.stream.Destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
		e.stream = nil
	}
	if e.governor != nil {
		if err := e.governor.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		e.governor = nil
	}
	return firstErr
}
