package hip

/*
#cgo CFLAGS: -D__HIP_PLATFORM_AMD__ -I/opt/rocm/include
#include <hip/hip_runtime_api.h>
*/
import "C"
import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/Snektron/amd-experiments/family"
	"github.com/Snektron/amd-experiments/gpu"
	"github.com/Snektron/amd-experiments/pci"
)

// Device is one physical GPU. Fetching the properties is relatively slow, so
// they are read once at construction and cached.
type Device struct {
	ordinal int
	props   gpu.Properties
}

var _ gpu.Device = (*Device)(nil)

// NewDevice opens the device with the given runtime ordinal and caches its
// properties, including the PCI bus address.
func NewDevice(ordinal int) (*Device, error) {
	d := &Device{ordinal: ordinal}

	var cProps C.hipDeviceProp_t
	if err := toError(C.hipGetDeviceProperties(&cProps, C.int(ordinal))); err != nil {
		return nil, errors.WithMessagef(err, "querying properties of device %d", ordinal)
	}

	addr, err := devicePCIAddress(ordinal)
	if err != nil {
		return nil, err
	}

	d.props = gpu.Properties{
		Name:         C.GoString(&cProps.name[0]),
		Arch:         C.GoString(&cProps.gcnArchName[0]),
		BusAddress:   addr,
		TotalMemory:  uint64(cProps.totalGlobalMem),
		WarpSize:     int(cProps.warpSize),
		ComputeUnits: int(cProps.multiProcessorCount),
		L2CacheBytes: int(cProps.l2CacheSize),
		ClockRateKHz: int(cProps.clockRate),
	}
	return d, nil
}

// Default opens device 0.
func Default() (*Device, error) {
	return NewDevice(0)
}

// devicePCIAddress reads the bus address the runtime reports for a device.
// HIP formats it as a string; the function suffix may be absent.
func devicePCIAddress(ordinal int) (pci.Address, error) {
	var buf [64]C.char
	if err := toError(C.hipDeviceGetPCIBusId(&buf[0], C.int(len(buf)-1), C.int(ordinal))); err != nil {
		return pci.Address{}, errors.WithMessagef(err, "querying PCI bus id of device %d", ordinal)
	}
	addr, err := pci.Parse(C.GoString(&buf[0]))
	if err != nil {
		return pci.Address{}, errors.WithMessagef(err, "device %d", ordinal)
	}
	return addr, nil
}

// Ordinal returns the runtime's index for this device.
func (d *Device) Ordinal() int {
	return d.ordinal
}

// Properties returns the cached device description.
func (d *Device) Properties() gpu.Properties {
	return d.props
}

// Family classifies the device's architecture codename.
func (d *Device) Family() family.Set {
	return family.Classify(d.props.Arch)
}

// makeActive selects this device for subsequent runtime calls on the calling
// thread.
func (d *Device) makeActive() error {
	return toError(C.hipSetDevice(C.int(d.ordinal)))
}

// Synchronize blocks until all work on the device has completed. Errors from
// earlier asynchronous operations may surface here.
func (d *Device) Synchronize() error {
	if err := d.makeActive(); err != nil {
		return err
	}
	return toError(C.hipDeviceSynchronize())
}

// NewStream creates a non-blocking stream on this device.
func (d *Device) NewStream() (gpu.Stream, error) {
	if err := d.makeActive(); err != nil {
		return nil, err
	}
	var handle C.hipStream_t
	if err := toError(C.hipStreamCreateWithFlags(&handle, C.hipStreamNonBlocking)); err != nil {
		return nil, err
	}
	return &Stream{handle: handle}, nil
}

// NewEvent creates a timing event on this device.
func (d *Device) NewEvent() (gpu.Event, error) {
	if err := d.makeActive(); err != nil {
		return nil, err
	}
	var handle C.hipEvent_t
	if err := toError(C.hipEventCreate(&handle)); err != nil {
		return nil, err
	}
	return &Event{handle: handle}, nil
}

// AllocBytes allocates n bytes of device memory.
func (d *Device) AllocBytes(n int) (gpu.Buffer, error) {
	if err := d.makeActive(); err != nil {
		return nil, err
	}
	var ptr unsafe.Pointer
	if err := toError(C.hipMalloc(&ptr, C.size_t(n))); err != nil {
		return nil, errors.WithMessagef(err, "allocating %d bytes on device %d", n, d.ordinal)
	}
	return &Buffer{ptr: ptr, size: n}, nil
}

// WriteBuffer copies host bytes into the start of dst, synchronously.
func (d *Device) WriteBuffer(dst gpu.Buffer, src []byte) error {
	b, err := toHIPBuffer(dst)
	if err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	if len(src) > b.size {
		return errors.Errorf("hip: writing %d bytes into a %d byte buffer", len(src), b.size)
	}
	if err := d.makeActive(); err != nil {
		return err
	}
	return toError(C.hipMemcpy(b.ptr, unsafe.Pointer(&src[0]), C.size_t(len(src)), C.hipMemcpyHostToDevice))
}

// ReadBuffer copies bytes from the start of src to host, synchronously.
func (d *Device) ReadBuffer(dst []byte, src gpu.Buffer) error {
	b, err := toHIPBuffer(src)
	if err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}
	if len(dst) > b.size {
		return errors.Errorf("hip: reading %d bytes from a %d byte buffer", len(dst), b.size)
	}
	if err := d.makeActive(); err != nil {
		return err
	}
	return toError(C.hipMemcpy(unsafe.Pointer(&dst[0]), b.ptr, C.size_t(len(dst)), C.hipMemcpyDeviceToHost))
}
