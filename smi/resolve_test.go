package smi

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Snektron/amd-experiments/pci"
)

// enumBackend is a synthetic backend exposing a fixed device enumeration.
type enumBackend struct {
	addrs []pci.Address
	errAt int // index whose BusAddress query fails, -1 for none
}

func (b *enumBackend) Name() string     { return "synthetic" }
func (b *enumBackend) Init() error      { return nil }
func (b *enumBackend) Shutdown() error  { return nil }
func (b *enumBackend) NumDevices() (int, error) { return len(b.addrs), nil }

func (b *enumBackend) BusAddress(idx int) (pci.Address, error) {
	if idx == b.errAt {
		return pci.Address{}, errors.WithStack(&Error{Backend: "synthetic", Code: 2, Message: "not supported"})
	}
	return b.addrs[idx], nil
}

func (b *enumBackend) PerfLevel(idx int) (PerfLevel, error)        { return Auto, nil }
func (b *enumBackend) SetPerfLevel(idx int, level PerfLevel) error { return nil }

func makeAddrs(n int) []pci.Address {
	addrs := make([]pci.Address, n)
	for i := range addrs {
		addrs[i] = pci.Address{Domain: 0, Bus: uint8(3 + i), Device: 0, Function: 0}
	}
	return addrs
}

func TestResolve(t *testing.T) {
	backend := &enumBackend{addrs: makeAddrs(4), errAt: -1}
	for k, addr := range backend.addrs {
		idx, err := Resolve(backend, 0, addr)
		require.NoError(t, err)
		require.Equal(t, k, idx)
	}
}

func TestResolveUnknownAddress(t *testing.T) {
	backend := &enumBackend{addrs: makeAddrs(4), errAt: -1}
	target := pci.Address{Domain: 1, Bus: 0xc0, Device: 1, Function: 0}

	_, err := Resolve(backend, 7, target)
	require.Error(t, err)
	var identityErr *IdentityError
	require.True(t, errors.As(err, &identityErr))
	require.Equal(t, 7, identityErr.Ordinal)
	require.Equal(t, target, identityErr.Address)
}

func TestResolveBackendFailure(t *testing.T) {
	backend := &enumBackend{addrs: makeAddrs(4), errAt: 1}

	_, err := Resolve(backend, 0, backend.addrs[3])
	require.Error(t, err)
	var smiErr *Error
	require.True(t, errors.As(err, &smiErr))
	var identityErr *IdentityError
	require.False(t, errors.As(err, &identityErr))
}

func TestResolveEmptyEnumeration(t *testing.T) {
	backend := &enumBackend{errAt: -1}
	_, err := Resolve(backend, 0, pci.Address{Bus: 3})
	var identityErr *IdentityError
	require.True(t, errors.As(err, &identityErr))
}
