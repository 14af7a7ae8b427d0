package smi

import (
	"github.com/pkg/errors"

	"github.com/Snektron/amd-experiments/pci"
)

// Resolve finds the backend index of the device at the given bus address.
// ordinal is the HIP ordinal the address was read from; it is carried in the
// error for diagnostics.
//
// Bus addresses are unique, so at most one index matches; if the hardware
// lies and several do, the first wins. Resolution failure is fatal to the
// caller: there is no retry and no partial mode.
func Resolve(b Backend, ordinal int, target pci.Address) (int, error) {
	n, err := b.NumDevices()
	if err != nil {
		return -1, errors.WithMessagef(err, "enumerating %s devices", b.Name())
	}
	for i := range n {
		addr, err := b.BusAddress(i)
		if err != nil {
			return -1, errors.WithMessagef(err, "querying bus address of %s device %d", b.Name(), i)
		}
		if addr == target {
			return i, nil
		}
	}
	return -1, errors.WithStack(&IdentityError{Ordinal: ordinal, Address: target})
}
