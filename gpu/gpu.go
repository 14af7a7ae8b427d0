// Package gpu defines the contract between the benchmark core and a concrete
// accelerator runtime.
//
// The hip package provides the real implementation; the bench package's tests
// substitute synthetic devices. Implementations may assume that the Buffer,
// Event and Stream values passed to them were created by the same Device, and
// should reject foreign ones with an error.
//
// All resource types are owned exclusively by their creator and released
// exactly once via Destroy; Destroy on an already-destroyed value is a no-op.
package gpu

import (
	"time"

	"github.com/Snektron/amd-experiments/pci"
)

// Properties is the cached description of one physical device.
type Properties struct {
	// Name is the marketing name, e.g. "AMD Instinct MI300X".
	Name string

	// Arch is the architecture codename (gcnArchName), e.g. "gfx942".
	Arch string

	// BusAddress is the device's slot on the host's PCI bus.
	BusAddress pci.Address

	// TotalMemory is the device memory size in bytes.
	TotalMemory uint64

	// WarpSize is the number of lanes per wavefront.
	WarpSize int

	// ComputeUnits is the number of compute units.
	ComputeUnits int

	// L2CacheBytes is the size of the L2 cache, or 0 if unreported. The
	// runtime cannot report last-level (infinity) cache sizes at all; see
	// LargestCacheBytes.
	L2CacheBytes int

	// ClockRateKHz is the peak engine clock in kHz.
	ClockRateKHz int
}

// fallbackCacheBytes is the largest last-level cache on any current device
// (256 MiB on MI300X). The runtime has no query for infinity cache sizes, so
// this is the floor for cache-flush sizing.
const fallbackCacheBytes = 256 * 1024 * 1024

// LargestCacheBytes returns the size of the largest on-device cache that a
// flush buffer must cover. Where the runtime cannot report it, the known
// maximum across current hardware is assumed.
func (p Properties) LargestCacheBytes() int {
	if p.L2CacheBytes > fallbackCacheBytes {
		return p.L2CacheBytes
	}
	return fallbackCacheBytes
}

// Buffer is exclusively-owned device memory of fixed size.
type Buffer interface {
	// Size returns the buffer size in bytes.
	Size() int

	// Destroy releases the device memory. Safe to call more than once.
	Destroy() error
}

// Event is a marker recorded at a point in a stream's instruction order.
type Event interface {
	// ElapsedSince returns the time between start and this event. Valid
	// only after the stream has passed the point where this event was
	// recorded; the caller is responsible for synchronizing first.
	ElapsedSince(start Event) (time.Duration, error)

	// Destroy releases the event. Safe to call more than once.
	Destroy() error
}

// Stream is an ordered asynchronous operation queue bound to one device.
// Operations submitted to it run in submission order relative to each other
// and asynchronously relative to the calling goroutine.
type Stream interface {
	// MemsetAsync enqueues filling the first n bytes of dst with value.
	MemsetAsync(dst Buffer, value byte, n int) error

	// CopyAsync enqueues a device-to-device copy of n bytes.
	CopyAsync(dst, src Buffer, n int) error

	// Record enqueues recording ev at the current point of the stream.
	Record(ev Event) error

	// Synchronize blocks until all previously submitted operations have
	// completed. The runtime reports launch and memory errors lazily, so
	// an error from an earlier enqueue may only surface here.
	Synchronize() error

	// Destroy releases the stream. Safe to call more than once.
	Destroy() error
}

// Device is one physical accelerator as seen by the primary runtime.
type Device interface {
	// Ordinal is the runtime's index for this device.
	Ordinal() int

	// Properties returns the cached device description.
	Properties() Properties

	// Synchronize blocks until all work on the device has completed.
	Synchronize() error

	// NewStream creates a non-blocking stream on this device.
	NewStream() (Stream, error)

	// NewEvent creates a timing event on this device.
	NewEvent() (Event, error)

	// AllocBytes allocates n bytes of device memory.
	AllocBytes(n int) (Buffer, error)

	// WriteBuffer copies host bytes into the start of dst, synchronously.
	WriteBuffer(dst Buffer, src []byte) error

	// ReadBuffer copies bytes from the start of src to host, synchronously.
	ReadBuffer(dst []byte, src Buffer) error
}

// Workload enqueues the operations under measurement onto s. It must not
// block or synchronize; the benchmark executor owns all synchronization.
type Workload func(s Stream) error
