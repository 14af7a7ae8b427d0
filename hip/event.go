package hip

/*
#cgo CFLAGS: -D__HIP_PLATFORM_AMD__ -I/opt/rocm/include
#include <hip/hip_runtime_api.h>
*/
import "C"
import (
	"time"

	"github.com/pkg/errors"

	"github.com/Snektron/amd-experiments/gpu"
)

// Event is a GPU-side timestamp marker. A pair of events recorded into the
// same stream yields the device-measured time between them.
type Event struct {
	handle C.hipEvent_t
}

var _ gpu.Event = (*Event)(nil)

// IsValid reports whether the event still owns its runtime handle.
func (e *Event) IsValid() bool {
	return e != nil && e.handle != nil
}

// Destroy releases the event. Calling it again is a no-op.
func (e *Event) Destroy() error {
	if !e.IsValid() {
		return nil
	}
	handle := e.handle
	e.handle = nil
	return toError(C.hipEventDestroy(handle))
}

// ElapsedSince returns the device time between start and e. Both events must
// have been recorded into a stream that has since passed e.
func (e *Event) ElapsedSince(start gpu.Event) (time.Duration, error) {
	s, err := toHIPEvent(start)
	if err != nil {
		return 0, err
	}
	if !e.IsValid() {
		return 0, errors.New("hip: use of destroyed event")
	}
	var ms C.float
	if err := toError(C.hipEventElapsedTime(&ms, s.handle, e.handle)); err != nil {
		return 0, err
	}
	return time.Duration(float64(ms) * float64(time.Millisecond)), nil
}

// toHIPEvent checks that a gpu.Event came from this package and is alive.
func toHIPEvent(ev gpu.Event) (*Event, error) {
	v, ok := ev.(*Event)
	if !ok {
		return nil, errors.Errorf("hip: event is a %T, not a *hip.Event", ev)
	}
	if !v.IsValid() {
		return nil, errors.New("hip: use of destroyed event")
	}
	return v, nil
}
