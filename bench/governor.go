package bench

import (
	"sync"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/Snektron/amd-experiments/pci"
	"github.com/Snektron/amd-experiments/smi"
)

// Governor pins a device to a deterministic performance level for the
// duration of a benchmark run and restores the original level on Close.
//
// Failure to resolve the telemetry handle is fatal. Failures to read or set
// the clock level are not: they widen measurement variance but do not affect
// correctness, so they are logged as warnings and execution continues.
//
// Only one Governor may be live per physical device; concurrent governors
// would race on save/restore, so construction of a second one fails.
type Governor struct {
	backend smi.Backend
	handle  int
	address pci.Address

	// original is the level read once at construction; meaningless when
	// haveOriginal is false (the read failed), in which case Close does
	// not restore.
	original     smi.PerfLevel
	haveOriginal bool

	closed bool
}

// liveGovernors tracks which devices currently have a Governor.
var (
	liveMu        sync.Mutex
	liveGovernors = map[pci.Address]bool{}
)

// NewGovernor resolves the telemetry handle for the device at addr (ordinal
// is the HIP ordinal, for diagnostics), then attempts to pin StablePeak.
func NewGovernor(backend smi.Backend, ordinal int, addr pci.Address) (*Governor, error) {
	liveMu.Lock()
	if liveGovernors[addr] {
		liveMu.Unlock()
		return nil, errors.Errorf("device %s already has a live governor", addr)
	}
	liveGovernors[addr] = true
	liveMu.Unlock()

	g, err := newGovernor(backend, ordinal, addr)
	if err != nil {
		liveMu.Lock()
		delete(liveGovernors, addr)
		liveMu.Unlock()
		return nil, err
	}
	return g, nil
}

func newGovernor(backend smi.Backend, ordinal int, addr pci.Address) (*Governor, error) {
	if err := backend.Init(); err != nil {
		return nil, err
	}
	handle, err := smi.Resolve(backend, ordinal, addr)
	if err != nil {
		_ = backend.Shutdown()
		return nil, err
	}

	g := &Governor{backend: backend, handle: handle, address: addr}

	g.original, err = backend.PerfLevel(handle)
	if err != nil {
		klog.Warningf("failed to query current perf level of %s: %v", addr, err)
		g.original = smi.Unknown
	} else {
		g.haveOriginal = true
	}

	// The vendor's determinism mode doesn't always work, so pin stable
	// peak instead. Skip the call when the device is already there.
	if g.original != smi.StablePeak {
		if err := backend.SetPerfLevel(handle, smi.StablePeak); err != nil {
			klog.Warningf("could not set perf level of %s to %s: %v", addr, smi.StablePeak, err)
		}
	}
	return g, nil
}

// Handle returns the resolved telemetry device index.
func (g *Governor) Handle() int {
	return g.handle
}

// Close restores the original performance level if it was successfully read
// and has changed, then releases the telemetry library. Restore failures are
// logged, never returned.
func (g *Governor) Close() error {
	if g == nil || g.closed {
		return nil
	}
	g.closed = true

	if g.haveOriginal {
		current, err := g.backend.PerfLevel(g.handle)
		if err != nil {
			klog.Warningf("failed to re-read perf level of %s: %v", g.address, err)
		} else if current != g.original {
			if err := g.backend.SetPerfLevel(g.handle, g.original); err != nil {
				klog.Warningf("failed to restore perf level of %s to %s: %v", g.address, g.original, err)
			}
		}
	}

	err := g.backend.Shutdown()

	liveMu.Lock()
	delete(liveGovernors, g.address)
	liveMu.Unlock()
	return err
}
