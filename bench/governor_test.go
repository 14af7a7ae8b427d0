package bench

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/Snektron/amd-experiments/pci"
	"github.com/Snektron/amd-experiments/smi"
)

// fakeBackend is a scriptable telemetry backend for one device.
type fakeBackend struct {
	addr  pci.Address
	level smi.PerfLevel

	failGet bool
	failSet bool

	inits     int
	shutdowns int
	getCalls  int
	setCalls  []smi.PerfLevel
}

func (b *fakeBackend) Name() string    { return "fake" }
func (b *fakeBackend) Init() error     { b.inits++; return nil }
func (b *fakeBackend) Shutdown() error { b.shutdowns++; return nil }

func (b *fakeBackend) NumDevices() (int, error) { return 1, nil }

func (b *fakeBackend) BusAddress(idx int) (pci.Address, error) { return b.addr, nil }

func (b *fakeBackend) PerfLevel(idx int) (smi.PerfLevel, error) {
	b.getCalls++
	if b.failGet {
		return smi.Unknown, errors.WithStack(&smi.Error{Backend: "fake", Code: 1, Message: "no data"})
	}
	return b.level, nil
}

func (b *fakeBackend) SetPerfLevel(idx int, level smi.PerfLevel) error {
	b.setCalls = append(b.setCalls, level)
	if b.failSet {
		return errors.WithStack(&smi.Error{Backend: "fake", Code: 10, Message: "permission denied"})
	}
	b.level = level
	return nil
}

var testAddr = pci.Address{Domain: 0, Bus: 3, Device: 0, Function: 0}

func TestGovernorPinAndRestore(t *testing.T) {
	backend := &fakeBackend{addr: testAddr, level: smi.Auto}

	g, err := NewGovernor(backend, 0, testAddr)
	require.NoError(t, err)
	require.Equal(t, 0, g.Handle())
	require.Equal(t, smi.StablePeak, backend.level)
	require.Equal(t, []smi.PerfLevel{smi.StablePeak}, backend.setCalls)

	require.NoError(t, g.Close())
	require.Equal(t, smi.Auto, backend.level)
	require.Equal(t, []smi.PerfLevel{smi.StablePeak, smi.Auto}, backend.setCalls)
	require.Equal(t, backend.inits, backend.shutdowns)
}

// A device already at the target level needs neither a set nor a restore.
func TestGovernorIdempotent(t *testing.T) {
	backend := &fakeBackend{addr: testAddr, level: smi.StablePeak}

	g, err := NewGovernor(backend, 0, testAddr)
	require.NoError(t, err)
	require.NoError(t, g.Close())
	require.Empty(t, backend.setCalls)
}

// A failed level read downgrades to a warning; restore then becomes a no-op.
func TestGovernorReadFailure(t *testing.T) {
	backend := &fakeBackend{addr: testAddr, level: smi.Auto, failGet: true}

	g, err := NewGovernor(backend, 0, testAddr)
	require.NoError(t, err)
	// Pinning is still attempted.
	require.Equal(t, []smi.PerfLevel{smi.StablePeak}, backend.setCalls)

	getCallsBeforeClose := backend.getCalls
	require.NoError(t, g.Close())
	// No re-read and no restore without a known original level.
	require.Equal(t, getCallsBeforeClose, backend.getCalls)
	require.Equal(t, []smi.PerfLevel{smi.StablePeak}, backend.setCalls)
}

// A failed pin is a warning, not an error: the run continues unpinned.
func TestGovernorSetFailure(t *testing.T) {
	backend := &fakeBackend{addr: testAddr, level: smi.Auto, failSet: true}

	g, err := NewGovernor(backend, 0, testAddr)
	require.NoError(t, err)
	// Close re-reads the level; it never changed, so no restore happens.
	require.NoError(t, g.Close())
	require.Equal(t, []smi.PerfLevel{smi.StablePeak}, backend.setCalls)
}

func TestGovernorResolutionFailure(t *testing.T) {
	backend := &fakeBackend{addr: testAddr, level: smi.Auto}
	other := pci.Address{Domain: 0, Bus: 9, Device: 0, Function: 0}

	_, err := NewGovernor(backend, 3, other)
	require.Error(t, err)
	var identityErr *smi.IdentityError
	require.True(t, errors.As(err, &identityErr))
	require.Equal(t, 3, identityErr.Ordinal)
	require.Equal(t, other, identityErr.Address)
	// The library must not be left initialized after a fatal failure.
	require.Equal(t, backend.inits, backend.shutdowns)

	// The failed construction must not leave the device marked live.
	g, err := NewGovernor(backend, 0, testAddr)
	require.NoError(t, err)
	require.NoError(t, g.Close())
}

func TestGovernorExclusivePerDevice(t *testing.T) {
	backend := &fakeBackend{addr: testAddr, level: smi.Auto}

	g, err := NewGovernor(backend, 0, testAddr)
	require.NoError(t, err)
	defer func() { require.NoError(t, g.Close()) }()

	_, err = NewGovernor(backend, 0, testAddr)
	require.ErrorContains(t, err, "already has a live governor")
}

func TestGovernorCloseTwice(t *testing.T) {
	backend := &fakeBackend{addr: testAddr, level: smi.Auto}

	g, err := NewGovernor(backend, 0, testAddr)
	require.NoError(t, err)
	require.NoError(t, g.Close())
	require.NoError(t, g.Close())
	// Only one restore despite two Closes.
	require.Equal(t, []smi.PerfLevel{smi.StablePeak, smi.Auto}, backend.setCalls)
}
