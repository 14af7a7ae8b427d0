// Package pci models the physical bus address (BDF) by which a GPU's slot is
// identified across the different AMD management libraries.
package pci

import (
	"fmt"

	"github.com/pkg/errors"
)

// Address is a PCI domain/bus/device/function tuple. At any given instant it
// uniquely identifies one physical accelerator slot, which makes it the
// correlation key between the HIP runtime and the SMI telemetry libraries.
type Address struct {
	Domain   uint16
	Bus      uint8
	Device   uint8
	Function uint8
}

// ParseError reports a malformed device-reported bus-address string.
type ParseError struct {
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed PCI bus address %q", e.Input)
}

// Parse parses an address in the extended BDF notation "dddd:bb:dd.f".
// HIP may report the address without the ".f" function suffix, in which case
// the function is taken to be 0.
func Parse(s string) (Address, error) {
	var dom, bus, dev, fn uint32
	n, err := fmt.Sscanf(s, "%04x:%02x:%02x.%01x", &dom, &bus, &dev, &fn)
	if err != nil || n != 4 {
		fn = 0
		n, err = fmt.Sscanf(s, "%04x:%02x:%02x", &dom, &bus, &dev)
		if err != nil || n != 3 {
			return Address{}, errors.WithStack(&ParseError{Input: s})
		}
	}
	return Address{
		Domain:   uint16(dom),
		Bus:      uint8(bus),
		Device:   uint8(dev),
		Function: uint8(fn),
	}, nil
}

// String formats the address in extended BDF notation, e.g. "0000:03:00.0".
func (a Address) String() string {
	return fmt.Sprintf("%04x:%02x:%02x.%01x", a.Domain, a.Bus, a.Device, a.Function)
}

// Field widths of the packed integer form used by ROCm SMI: 3 bits of
// function, 5 of device, 5 of bus, the rest domain.
const (
	packedFunctionBits = 3
	packedDeviceBits   = 5
	packedBusBits      = 5

	packedDeviceShift = packedFunctionBits
	packedBusShift    = packedDeviceShift + packedDeviceBits
	packedDomainShift = packedBusShift + packedBusBits
)

// Packed returns the address in the packed integer form
// (domain<<13 | bus<<8 | device<<3 | function). Bus and device numbers wider
// than the packed fields are truncated; GPU slots in practice fit.
func (a Address) Packed() uint32 {
	return uint32(a.Domain)<<packedDomainShift |
		uint32(a.Bus&(1<<packedBusBits-1))<<packedBusShift |
		uint32(a.Device&(1<<packedDeviceBits-1))<<packedDeviceShift |
		uint32(a.Function&(1<<packedFunctionBits-1))
}

// FromPacked is the inverse of Packed.
func FromPacked(v uint32) Address {
	return Address{
		Domain:   uint16(v >> packedDomainShift),
		Bus:      uint8(v >> packedBusShift & (1<<packedBusBits - 1)),
		Device:   uint8(v >> packedDeviceShift & (1<<packedDeviceBits - 1)),
		Function: uint8(v & (1<<packedFunctionBits - 1)),
	}
}
