// Package rocmsmi is the smi.Backend on the older ROCm SMI library
// (librocm_smi64), which reports bus addresses in packed-integer BDF form.
package rocmsmi

/*
#cgo CFLAGS: -I/opt/rocm/include
#cgo LDFLAGS: -L/opt/rocm/lib -lrocm_smi64
#include <rocm_smi/rocm_smi.h>
*/
import "C"
import (
	"sync"

	"github.com/pkg/errors"

	"github.com/Snektron/amd-experiments/pci"
	"github.com/Snektron/amd-experiments/smi"
)

// Backend talks to ROCm SMI. Devices are addressed by the library's own
// monitor indices, so no enumeration is cached.
type Backend struct {
	initialized bool
}

var _ smi.Backend = (*Backend)(nil)

// New returns an uninitialized backend; call Init before use.
func New() *Backend {
	return &Backend{}
}

func (b *Backend) Name() string {
	return "rocm_smi"
}

// The library init/shutdown pair is process-wide, so it is refcounted across
// all Backend values.
var (
	initMu    sync.Mutex
	initCount int
)

// Init initializes librocm_smi64 (refcounted).
func (b *Backend) Init() error {
	initMu.Lock()
	defer initMu.Unlock()
	if b.initialized {
		return nil
	}
	if initCount == 0 {
		if err := toError(C.rsmi_init(0)); err != nil {
			return err
		}
	}
	initCount++
	b.initialized = true
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
	initCount--
	if initCount == 0 {
		return toError(C.rsmi_shut_down())
	}
	return nil
}

func (b *Backend) checkIndex(idx int) error {
	if !b.initialized {
		return errors.New("rocm_smi: backend not initialized")
	}
	if idx < 0 {
		return errors.Errorf("rocm_smi: negative device index %d", idx)
	}
	return nil
}

// NumDevices returns the number of monitored devices.
func (b *Backend) NumDevices() (int, error) {
	if !b.initialized {
		return 0, errors.New("rocm_smi: backend not initialized")
	}
	var count C.uint32_t
	if err := toError(C.rsmi_num_monitor_devices(&count)); err != nil {
		return 0, err
	}
	return int(count), nil
}

// BusAddress returns the bus address of device idx, decoded from the
// library's packed integer form.
func (b *Backend) BusAddress(idx int) (pci.Address, error) {
	if err := b.checkIndex(idx); err != nil {
		return pci.Address{}, err
	}
	var bdfid C.uint64_t
	if err := toError(C.rsmi_dev_pci_id_get(C.uint32_t(idx), &bdfid)); err != nil {
		return pci.Address{}, err
	}
	return pci.FromPacked(uint32(bdfid)), nil
}

// PerfLevel returns the current performance level of device idx.
func (b *Backend) PerfLevel(idx int) (smi.PerfLevel, error) {
	if err := b.checkIndex(idx); err != nil {
		return smi.Unknown, err
	}
	var level C.rsmi_dev_perf_level_t
	if err := toError(C.rsmi_dev_perf_level_get(C.uint32_t(idx), &level)); err != nil {
		return smi.Unknown, err
	}
	return fromCPerfLevel(level), nil
}

// SetPerfLevel sets the performance level of device idx.
func (b *Backend) SetPerfLevel(idx int, level smi.PerfLevel) error {
	if err := b.checkIndex(idx); err != nil {
		return err
	}
	cLevel, err := toCPerfLevel(level)
	if err != nil {
		return err
	}
	return toError(C.rsmi_dev_perf_level_set(C.int32_t(idx), cLevel))
}

// CurrentSclk returns the current graphics clock of device idx in MHz. The
// library reports frequencies in Hz.
func (b *Backend) CurrentSclk(idx int) (uint64, error) {
	if err := b.checkIndex(idx); err != nil {
		return 0, err
	}
	var freqs C.rsmi_frequencies_t
	if err := toError(C.rsmi_dev_gpu_clk_freq_get(C.uint32_t(idx), C.RSMI_CLK_TYPE_SYS, &freqs)); err != nil {
		return 0, err
	}
	return uint64(freqs.frequency[freqs.current]) / 1_000_000, nil
}
