package hip

/*
#cgo CFLAGS: -D__HIP_PLATFORM_AMD__ -I/opt/rocm/include
#include <hip/hip_runtime_api.h>
*/
import "C"
import (
	"github.com/pkg/errors"

	"github.com/Snektron/amd-experiments/gpu"
)

// Stream is an asynchronous operation queue. Operations submitted to it run
// in submission order; the runtime reports launch and memory errors lazily,
// so an error from an enqueue may only surface at the next Synchronize.
type Stream struct {
	handle C.hipStream_t
}

var _ gpu.Stream = (*Stream)(nil)

// IsValid reports whether the stream still owns its runtime handle.
func (s *Stream) IsValid() bool {
	return s != nil && s.handle != nil
}

// Destroy releases the stream. Calling it again is a no-op.
func (s *Stream) Destroy() error {
	if !s.IsValid() {
		return nil
	}
	handle := s.handle
	s.handle = nil
	return toError(C.hipStreamDestroy(handle))
}

// MemsetAsync enqueues filling the first n bytes of dst with value.
func (s *Stream) MemsetAsync(dst gpu.Buffer, value byte, n int) error {
	b, err := toHIPBuffer(dst)
	if err != nil {
		return err
	}
	if n > b.size {
		return errors.Errorf("hip: memset of %d bytes into a %d byte buffer", n, b.size)
	}
	return toError(C.hipMemsetAsync(b.ptr, C.int(value), C.size_t(n), s.handle))
}

// CopyAsync enqueues a device-to-device copy of n bytes.
func (s *Stream) CopyAsync(dst, src gpu.Buffer, n int) error {
	db, err := toHIPBuffer(dst)
	if err != nil {
		return err
	}
	sb, err := toHIPBuffer(src)
	if err != nil {
		return err
	}
	if n > db.size || n > sb.size {
		return errors.Errorf("hip: copy of %d bytes between buffers of %d and %d bytes", n, sb.size, db.size)
	}
	return toError(C.hipMemcpyAsync(db.ptr, sb.ptr, C.size_t(n), C.hipMemcpyDeviceToDevice, s.handle))
}

// Record enqueues recording ev at the current point of the stream.
func (s *Stream) Record(ev gpu.Event) error {
	e, err := toHIPEvent(ev)
	if err != nil {
		return err
	}
	return toError(C.hipEventRecord(e.handle, s.handle))
}

// Synchronize blocks until all previously submitted operations complete.
func (s *Stream) Synchronize() error {
	return toError(C.hipStreamSynchronize(s.handle))
}
