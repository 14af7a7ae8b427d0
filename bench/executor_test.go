package bench

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Snektron/amd-experiments/gpu"
	"github.com/Snektron/amd-experiments/smi"
)

// fakeGPU simulates one device with a single stream. It keeps an operation
// log so tests can assert the protocol's submission order, and a fake device
// clock that advances on every enqueued operation so recorded events yield
// strictly ordered timestamps.
type fakeGPU struct {
	ops   []string
	clock time.Duration

	failSyncAt int // fail the Nth device synchronize (1-based), 0 for never
	syncs      int
}

func (d *fakeGPU) Ordinal() int { return 0 }

func (d *fakeGPU) Properties() gpu.Properties {
	return gpu.Properties{
		Name:       "Fake Instinct",
		Arch:       "gfx90a",
		BusAddress: testAddr,
	}
}

func (d *fakeGPU) Synchronize() error {
	d.syncs++
	d.ops = append(d.ops, "sync")
	if d.failSyncAt != 0 && d.syncs == d.failSyncAt {
		// Deferred async errors surface at synchronization points.
		return errors.New("fake: lazy launch failure")
	}
	return nil
}

func (d *fakeGPU) NewStream() (gpu.Stream, error) { return &fakeStream{dev: d}, nil }

func (d *fakeGPU) NewEvent() (gpu.Event, error) { return &fakeEvent{dev: d}, nil }

func (d *fakeGPU) AllocBytes(n int) (gpu.Buffer, error) {
	// The size is tracked but not backed by host memory; flush buffers
	// are hundreds of MiB and their contents never matter here.
	return &fakeBuffer{size: n}, nil
}

func (d *fakeGPU) WriteBuffer(dst gpu.Buffer, src []byte) error { return nil }

func (d *fakeGPU) ReadBuffer(dst []byte, src gpu.Buffer) error { return nil }

type fakeBuffer struct {
	size      int
	destroyed bool
}

func (b *fakeBuffer) Size() int      { return b.size }
func (b *fakeBuffer) Destroy() error { b.destroyed = true; return nil }

type fakeEvent struct {
	dev       *fakeGPU
	timestamp time.Duration
	destroyed bool
}

func (e *fakeEvent) ElapsedSince(start gpu.Event) (time.Duration, error) {
	return e.timestamp - start.(*fakeEvent).timestamp, nil
}

func (e *fakeEvent) Destroy() error { e.destroyed = true; return nil }

type fakeStream struct {
	dev       *fakeGPU
	destroyed bool
}

func (s *fakeStream) enqueue(op string) {
	s.dev.clock += time.Microsecond
	s.dev.ops = append(s.dev.ops, op)
}

func (s *fakeStream) MemsetAsync(dst gpu.Buffer, value byte, n int) error {
	s.enqueue("memset")
	return nil
}

func (s *fakeStream) CopyAsync(dst, src gpu.Buffer, n int) error {
	s.enqueue("copy")
	return nil
}

func (s *fakeStream) Record(ev gpu.Event) error {
	s.enqueue("record")
	ev.(*fakeEvent).timestamp = s.dev.clock
	return nil
}

func (s *fakeStream) Synchronize() error { return nil }
func (s *fakeStream) Destroy() error     { s.destroyed = true; return nil }

func newTestExecutor(t *testing.T, dev *fakeGPU) (*Executor, *fakeBackend) {
	t.Helper()
	backend := &fakeBackend{addr: testAddr, level: smi.Auto}
	e, err := NewExecutor(dev, backend)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close() })
	return e, backend
}

var noop gpu.Workload = func(s gpu.Stream) error { return nil }

func TestExecutorBench(t *testing.T) {
	dev := &fakeGPU{}
	e, _ := newTestExecutor(t, dev)

	stats, err := e.Bench(noop, DefaultWarmups, DefaultIterations)
	require.NoError(t, err)

	// Every trial records stop exactly one tick after start.
	require.Equal(t, time.Microsecond, stats.Average)
	require.Equal(t, time.Microsecond, stats.Fastest)
	require.Equal(t, time.Microsecond, stats.Slowest)
	require.Equal(t, time.Duration(0), stats.Stddev)
}

// Sample aggregation covers exactly the measured iterations; warmups are
// discarded and do not contribute.
func TestExecutorSampleCount(t *testing.T) {
	dev := &fakeGPU{}
	e, _ := newTestExecutor(t, dev)

	var calls int
	workload := func(s gpu.Stream) error {
		calls++
		if calls <= 10 {
			// Warmup trials run first. Make them pathologically slow;
			// if any leaked into the statistics the stddev would be huge.
			for i := 0; i < 100; i++ {
				if err := s.CopyAsync(nil, nil, 0); err != nil {
					return err
				}
			}
		}
		return nil
	}
	stats, err := e.Bench(workload, 10, 50)
	require.NoError(t, err)
	require.Equal(t, 60, calls)
	require.Equal(t, time.Duration(0), stats.Stddev)
	require.Equal(t, time.Microsecond, stats.Average)
}

func TestExecutorProtocolOrder(t *testing.T) {
	dev := &fakeGPU{}
	e, _ := newTestExecutor(t, dev)

	workload := func(s gpu.Stream) error {
		return s.CopyAsync(nil, nil, 0)
	}
	_, err := e.Bench(workload, 1, 2)
	require.NoError(t, err)

	warmup := []string{"memset", "sync", "copy", "sync"}
	measured := []string{"memset", "sync", "record", "copy", "record", "sync"}
	want := warmup
	want = append(want, measured...)
	want = append(want, measured...)
	require.Equal(t, want, dev.ops)
}

func TestExecutorElapsedNonNegative(t *testing.T) {
	dev := &fakeGPU{}
	e, _ := newTestExecutor(t, dev)

	stats, err := e.Bench(func(s gpu.Stream) error {
		return s.MemsetAsync(nil, 0xff, 0)
	}, 0, 20)
	require.NoError(t, err)
	require.GreaterOrEqual(t, stats.Fastest, time.Duration(0))
}

func TestExecutorWorkloadError(t *testing.T) {
	dev := &fakeGPU{}
	e, _ := newTestExecutor(t, dev)

	boom := errors.New("boom")
	_, err := e.Bench(func(s gpu.Stream) error { return boom }, 2, 5)
	require.ErrorIs(t, err, boom)
}

// A lazily reported runtime error at a synchronize aborts the whole call.
func TestExecutorDeferredErrorAborts(t *testing.T) {
	dev := &fakeGPU{failSyncAt: 5}
	e, _ := newTestExecutor(t, dev)

	_, err := e.Bench(noop, 1, 50)
	require.ErrorContains(t, err, "lazy launch failure")
}

func TestExecutorRejectsZeroIterations(t *testing.T) {
	dev := &fakeGPU{}
	e, _ := newTestExecutor(t, dev)

	_, err := e.Bench(noop, 10, 0)
	require.Error(t, err)
}

func TestExecutorClose(t *testing.T) {
	dev := &fakeGPU{}
	backend := &fakeBackend{addr: testAddr, level: smi.Auto}
	e, err := NewExecutor(dev, backend)
	require.NoError(t, err)

	buf := e.flushBuf.(*fakeBuffer)
	stream := e.stream.(*fakeStream)

	require.NoError(t, e.Close())
	require.True(t, buf.destroyed)
	require.True(t, stream.destroyed)
	require.Equal(t, smi.Auto, backend.level)

	// Close is idempotent and another executor may now own the device.
	require.NoError(t, e.Close())
	e2, err := NewExecutor(dev, backend)
	require.NoError(t, err)
	require.NoError(t, e2.Close())
}

// The flush buffer covers the conservative 256 MiB fallback when the runtime
// cannot report a last-level cache size.
func TestExecutorFlushBufferSize(t *testing.T) {
	dev := &fakeGPU{}
	e, _ := newTestExecutor(t, dev)
	require.Equal(t, 256*1024*1024, e.flushBuf.Size())
}
