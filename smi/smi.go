// Package smi defines the contract for the telemetry/management side of a
// GPU (the secondary API), and the resolver that correlates a HIP device to
// its telemetry handle via the physical bus address.
//
// Two interchangeable backends exist: smi/amdsmi (AMD SMI, structured BDF)
// and smi/rocmsmi (ROCm SMI, packed-integer BDF).
package smi

import (
	"fmt"

	"github.com/Snektron/amd-experiments/pci"
)

// PerfLevel is a vendor-defined clock/power operating point.
type PerfLevel int

//go:generate go tool enumer -type=PerfLevel smi.go

const (
	// Auto lets the driver manage clocks, including boost behavior.
	Auto PerfLevel = iota

	// Low pins the lowest clocks.
	Low

	// High pins the highest clocks.
	High

	// Manual means clocks follow explicitly configured frequency masks.
	Manual

	// StableStd is a deterministic mid-clock mode.
	StableStd

	// StablePeak is a deterministic non-boosting high-clock mode; the
	// governor pins this level for the duration of a benchmark run.
	StablePeak

	// StableMinMclk pins the minimum memory clock.
	StableMinMclk

	// StableMinSclk pins the minimum engine clock.
	StableMinSclk

	// Determinism is the vendor's dedicated determinism mode. It does not
	// work reliably on all parts, which is why the governor prefers
	// StablePeak.
	Determinism

	// Unknown means the level could not be read.
	Unknown
)

// Backend is one telemetry library. Init and Shutdown are process-wide and
// must be paired; implementations refcount them so that nested users are
// safe, but a Backend is not otherwise safe for concurrent use.
type Backend interface {
	// Name identifies the backend, e.g. "amdsmi".
	Name() string

	// Init initializes the underlying library.
	Init() error

	// Shutdown releases the underlying library.
	Shutdown() error

	// NumDevices returns the number of monitored devices.
	NumDevices() (int, error)

	// BusAddress returns the physical bus address of device idx.
	BusAddress(idx int) (pci.Address, error)

	// PerfLevel returns the current performance level of device idx.
	PerfLevel(idx int) (PerfLevel, error)

	// SetPerfLevel sets the performance level of device idx. Typically
	// requires elevated privileges.
	SetPerfLevel(idx int, level PerfLevel) error
}

// ClockReader is implemented by backends that can report the current
// graphics engine clock.
type ClockReader interface {
	// CurrentSclk returns the current graphics clock of device idx in MHz.
	CurrentSclk(idx int) (uint64, error)
}

// Error is a failed telemetry library call. The code space is backend
// specific; callers branch on the error kind, not the code.
type Error struct {
	Backend string
	Code    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (%d)", e.Backend, e.Message, e.Code)
}

// IdentityError reports that no device enumerated by the telemetry backend
// matches the bus address of a HIP device.
type IdentityError struct {
	Ordinal int
	Address pci.Address
}

func (e *IdentityError) Error() string {
	return fmt.Sprintf("no telemetry device matches device %d at %s", e.Ordinal, e.Address)
}
