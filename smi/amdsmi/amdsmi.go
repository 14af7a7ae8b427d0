// Package amdsmi is the smi.Backend on the AMD SMI library (libamd_smi),
// which reports bus addresses in structured BDF form.
package amdsmi

/*
#cgo CFLAGS: -I/opt/rocm/include
#cgo LDFLAGS: -L/opt/rocm/lib -lamd_smi
#include <amd_smi/amdsmi.h>
*/
import "C"
import (
	"sync"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/Snektron/amd-experiments/pci"
	"github.com/Snektron/amd-experiments/smi"
)

// Backend talks to AMD SMI. Init enumerates all GPU processors across all
// sockets once; device indices are positions in that enumeration.
type Backend struct {
	initialized bool
	handles     []C.amdsmi_processor_handle
}

var _ smi.Backend = (*Backend)(nil)

// New returns an uninitialized backend; call Init before use.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string {
	return "amdsmi"
}

// The library init/shutdown pair is process-wide, so it is refcounted across
// all Backend values.
var (
	initMu    sync.Mutex
	initCount int
)

// Init initializes libamd_smi (refcounted) and enumerates GPU processors.
func (b *Backend) Init() error {
	initMu.Lock()
	defer initMu.Unlock()
	if b.initialized {
		return nil
	}
	if initCount == 0 {
		if err := toError(C.amdsmi_init(C.AMDSMI_INIT_AMD_GPUS)); err != nil {
			return err
		}
	}
	initCount++

	handles, err := enumerateProcessors()
	if err != nil {
		initCount--
		if initCount == 0 {
			_ = toError(C.amdsmi_shut_down())
		}
		return err
	}
	b.initialized = true
	b.handles = handles
	return nil
}

// Shutdown releases the library once all users have shut down.
func (b *Backend) Shutdown() error {
	initMu.Lock()
	defer initMu.Unlock()
	if !b.initialized {
		return nil
	}
	b.initialized = false
	b.handles = nil
	initCount--
	if initCount == 0 {
		return toError(C.amdsmi_shut_down())
	}
	return nil
}

// enumerateProcessors flattens the socket/processor hierarchy into one list.
func enumerateProcessors() ([]C.amdsmi_processor_handle, error) {
	var socketCount C.uint32_t
	if err := toError(C.amdsmi_get_socket_handles(&socketCount, nil)); err != nil {
		return nil, errors.WithMessage(err, "counting sockets")
	}
	sockets := make([]C.amdsmi_socket_handle, socketCount)
	if socketCount > 0 {
		if err := toError(C.amdsmi_get_socket_handles(&socketCount, &sockets[0])); err != nil {
			return nil, errors.WithMessage(err, "enumerating sockets")
		}
	}

	var all []C.amdsmi_processor_handle
	for _, socket := range sockets[:socketCount] {
		var count C.uint32_t
		if err := toError(C.amdsmi_get_processor_handles(socket, &count, nil)); err != nil {
			return nil, errors.WithMessage(err, "counting processors")
		}
		if count == 0 {
			continue
		}
		procs := make([]C.amdsmi_processor_handle, count)
		if err := toError(C.amdsmi_get_processor_handles(socket, &count, &procs[0])); err != nil {
			return nil, errors.WithMessage(err, "enumerating processors")
		}
		all = append(all, procs[:count]...)
	}
	return all, nil
}

func (b *Backend) processor(idx int) (C.amdsmi_processor_handle, error) {
	if !b.initialized {
		return nil, errors.New("amdsmi: backend not initialized")
	}
	if idx < 0 || idx >= len(b.handles) {
		return nil, errors.Errorf("amdsmi: device index %d out of range [0, %d)", idx, len(b.handles))
	}
	return b.handles[idx], nil
}

// NumDevices returns the number of monitored GPU processors.
func (b *Backend) NumDevices() (int, error) {
	if !b.initialized {
		return 0, errors.New("amdsmi: backend not initialized")
	}
	return len(b.handles), nil
}

// BusAddress returns the structured BDF of device idx.
//
// amdsmi_bdf_t is a union of bitfields over one 64-bit word, which cgo cannot
// address field by field; the word is unpacked here instead. Layout, low bit
// first: function:3, device:5, bus:8, domain:48.
func (b *Backend) BusAddress(idx int) (pci.Address, error) {
	proc, err := b.processor(idx)
	if err != nil {
		return pci.Address{}, err
	}
	var bdf C.amdsmi_bdf_t
	if err := toError(C.amdsmi_get_gpu_device_bdf(proc, &bdf)); err != nil {
		return pci.Address{}, err
	}
	word := *(*uint64)(unsafe.Pointer(&bdf))
	return pci.Address{
		Function: uint8(word & 0x7),
		Device:   uint8(word >> 3 & 0x1f),
		Bus:      uint8(word >> 8 & 0xff),
		Domain:   uint16(word >> 16),
	}, nil
}

// PerfLevel returns the current performance level of device idx.
func (b *Backend) PerfLevel(idx int) (smi.PerfLevel, error) {
	proc, err := b.processor(idx)
	if err != nil {
		return smi.Unknown, err
	}
	var level C.amdsmi_dev_perf_level_t
	if err := toError(C.amdsmi_get_gpu_perf_level(proc, &level)); err != nil {
		return smi.Unknown, err
	}
	return fromCPerfLevel(level), nil
}

// SetPerfLevel sets the performance level of device idx.
func (b *Backend) SetPerfLevel(idx int, level smi.PerfLevel) error {
	proc, err := b.processor(idx)
	if err != nil {
		return err
	}
	cLevel, err := toCPerfLevel(level)
	if err != nil {
		return err
	}
	return toError(C.amdsmi_set_gpu_perf_level(proc, cLevel))
}

// CurrentSclk returns the current graphics clock of device idx in MHz.
func (b *Backend) CurrentSclk(idx int) (uint64, error) {
	proc, err := b.processor(idx)
	if err != nil {
		return 0, err
	}
	var freqs C.amdsmi_frequencies_t
	if err := toError(C.amdsmi_get_clk_freq(proc, C.AMDSMI_CLK_TYPE_GFX, &freqs)); err != nil {
		return 0, err
	}
	return uint64(freqs.frequency[freqs.current]), nil
}
