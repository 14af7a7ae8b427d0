package hip

/*
#cgo CFLAGS: -D__HIP_PLATFORM_AMD__ -I/opt/rocm/include
#include <hip/hip_runtime_api.h>
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/Snektron/amd-experiments/gpu"
)

// Buffer is exclusively-owned device memory. The raw pointer is nil if and
// only if the buffer has been destroyed.
type Buffer struct {
	ptr  unsafe.Pointer
	size int
}

var _ gpu.Buffer = (*Buffer)(nil)

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int {
	return b.size
}

// IsValid reports whether the buffer still owns device memory.
func (b *Buffer) IsValid() bool {
	return b != nil && b.ptr != nil
}

// Destroy frees the device memory. Calling it again is a no-op.
func (b *Buffer) Destroy() error {
	if !b.IsValid() {
		return nil
	}
	ptr := b.ptr
	b.ptr = nil
	return toError(C.hipFree(ptr))
}

// toHIPBuffer checks that a gpu.Buffer came from this package and is alive.
func toHIPBuffer(b gpu.Buffer) (*Buffer, error) {
	v, ok := b.(*Buffer)
	if !ok {
		return nil, errors.Errorf("hip: buffer is a %T, not a *hip.Buffer", b)
	}
	if !v.IsValid() {
		return nil, errors.New("hip: use of destroyed buffer")
	}
	return v, nil
}
