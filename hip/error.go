package hip

/*
#cgo CFLAGS: -D__HIP_PLATFORM_AMD__ -I/opt/rocm/include
#include <hip/hip_runtime_api.h>
*/
import "C"
import (
	"fmt"

	"github.com/pkg/errors"
)

// Status is a hipError_t value.
type Status int

// Error is a failed HIP runtime call. Callers can branch on it with
// errors.As; the wrapping error carries the stack trace of the failing call.
type Error struct {
	Status  Status
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("hip: %s (%d)", e.Message, int(e.Status))
}

// toError converts a hipError_t to a Go error, nil on hipSuccess.
func toError(status C.hipError_t) error {
	if status == C.hipSuccess {
		return nil
	}
	return errors.WithStack(&Error{
		Status:  Status(status),
		Message: C.GoString(C.hipGetErrorString(status)),
	})
}
