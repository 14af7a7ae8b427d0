// Package hip implements the gpu package's primitives on the HIP runtime
// (the primary compute API for AMD GPUs).
//
// It links against the ROCm runtime library (libamdhip64). Every wrapper
// surfaces HIP failures as *Error values carrying the hipError_t status code
// and the runtime's message, with a stack trace attached (pkg/errors).
package hip

/*
#cgo CFLAGS: -D__HIP_PLATFORM_AMD__ -I/opt/rocm/include
#cgo LDFLAGS: -L/opt/rocm/lib -lamdhip64
#include <hip/hip_runtime_api.h>
*/
import "C"

// DeviceCount returns the number of devices visible to the runtime.
func DeviceCount() (int, error) {
	var count C.int
	if err := toError(C.hipGetDeviceCount(&count)); err != nil {
		return 0, err
	}
	return int(count), nil
}
