package amdsmi

/*
#cgo CFLAGS: -I/opt/rocm/include
#include <amd_smi/amdsmi.h>
*/
import "C"
import (
	"github.com/pkg/errors"

	"github.com/Snektron/amd-experiments/smi"
)

// statusString asks the library for the human-readable form of a status.
func statusString(status C.amdsmi_status_t) string {
	var cstr *C.char
	if C.amdsmi_status_code_to_string(status, &cstr) != C.AMDSMI_STATUS_SUCCESS {
		return "(unknown)"
	}
	return C.GoString(cstr)
}

// toError converts an amdsmi_status_t to a Go error, nil on success.
func toError(status C.amdsmi_status_t) error {
	if status == C.AMDSMI_STATUS_SUCCESS {
		return nil
	}
	return errors.WithStack(&smi.Error{
		Backend: "amdsmi",
		Code:    int(status),
		Message: statusString(status),
	})
}

// fromCPerfLevel maps the library's perf level enum to smi.PerfLevel.
func fromCPerfLevel(level C.amdsmi_dev_perf_level_t) smi.PerfLevel {
	switch level {
	case C.AMDSMI_DEV_PERF_LEVEL_AUTO:
		return smi.Auto
	case C.AMDSMI_DEV_PERF_LEVEL_LOW:
		return smi.Low
	case C.AMDSMI_DEV_PERF_LEVEL_HIGH:
		return smi.High
	case C.AMDSMI_DEV_PERF_LEVEL_MANUAL:
		return smi.Manual
	case C.AMDSMI_DEV_PERF_LEVEL_STABLE_STD:
		return smi.StableStd
	case C.AMDSMI_DEV_PERF_LEVEL_STABLE_PEAK:
		return smi.StablePeak
	case C.AMDSMI_DEV_PERF_LEVEL_STABLE_MIN_MCLK:
		return smi.StableMinMclk
	case C.AMDSMI_DEV_PERF_LEVEL_STABLE_MIN_SCLK:
		return smi.StableMinSclk
	case C.AMDSMI_DEV_PERF_LEVEL_DETERMINISM:
		return smi.Determinism
	default:
		return smi.Unknown
	}
}

// toCPerfLevel maps smi.PerfLevel to the library's enum.
func toCPerfLevel(level smi.PerfLevel) (C.amdsmi_dev_perf_level_t, error) {
	switch level {
	case smi.Auto:
		return C.AMDSMI_DEV_PERF_LEVEL_AUTO, nil
	case smi.Low:
		return C.AMDSMI_DEV_PERF_LEVEL_LOW, nil
	case smi.High:
		return C.AMDSMI_DEV_PERF_LEVEL_HIGH, nil
	case smi.Manual:
		return C.AMDSMI_DEV_PERF_LEVEL_MANUAL, nil
	case smi.StableStd:
		return C.AMDSMI_DEV_PERF_LEVEL_STABLE_STD, nil
	case smi.StablePeak:
		return C.AMDSMI_DEV_PERF_LEVEL_STABLE_PEAK, nil
	case smi.StableMinMclk:
		return C.AMDSMI_DEV_PERF_LEVEL_STABLE_MIN_MCLK, nil
	case smi.StableMinSclk:
		return C.AMDSMI_DEV_PERF_LEVEL_STABLE_MIN_SCLK, nil
	case smi.Determinism:
		return C.AMDSMI_DEV_PERF_LEVEL_DETERMINISM, nil
	default:
		return 0, errors.Errorf("amdsmi: cannot set perf level %s", level)
	}
}
