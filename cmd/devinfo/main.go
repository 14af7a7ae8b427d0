// devinfo prints the properties of every visible GPU, its architecture
// classification, and how each telemetry backend resolves it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"k8s.io/klog/v2"

	"github.com/Snektron/amd-experiments/hip"
	"github.com/Snektron/amd-experiments/smi"
	"github.com/Snektron/amd-experiments/smi/amdsmi"
	"github.com/Snektron/amd-experiments/smi/rocmsmi"
)

var flagBackends = flag.String("backends", "amdsmi,rocm_smi", "comma-separated telemetry backends to probe")

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer func() {
		if r := recover(); r != nil {
			if err, ok := r.(error); ok {
				fmt.Fprintf(os.Stderr, "error: %+v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "panic: %v\n", r)
			}
			os.Exit(1)
		}
	}()
	run()
}

func run() {
	count := must.M1(hip.DeviceCount())
	fmt.Printf("%d device(s)\n", count)

	var backends []smi.Backend
	for name := range strings.SplitSeq(*flagBackends, ",") {
		switch strings.TrimSpace(name) {
		case "amdsmi":
			backends = append(backends, amdsmi.New())
		case "rocm_smi", "rocmsmi":
			backends = append(backends, rocmsmi.New())
		case "":
		default:
			fmt.Fprintf(os.Stderr, "unknown telemetry backend %q\n", name)
			os.Exit(1)
		}
	}

	for ordinal := 0; ordinal < count; ordinal++ {
		dev := must.M1(hip.NewDevice(ordinal))
		props := dev.Properties()
		fmt.Printf("\ndevice %d: '%s' (%s)\n", ordinal, props.Name, props.BusAddress)
		fmt.Printf("  arch:        %s (family %s)\n", props.Arch, dev.Family())
		fmt.Printf("  memory:      %s\n", humanize.IBytes(props.TotalMemory))
		fmt.Printf("  compute:     %d CUs, wavefront %d, peak %d MHz\n",
			props.ComputeUnits, props.WarpSize, props.ClockRateKHz/1000)
		fmt.Printf("  L2 cache:    %s\n", humanize.IBytes(uint64(props.L2CacheBytes)))
		fmt.Printf("  flush size:  %s\n", humanize.IBytes(uint64(props.LargestCacheBytes())))

		for _, backend := range backends {
			probeBackend(backend, ordinal, dev)
		}
	}
}

func probeBackend(backend smi.Backend, ordinal int, dev *hip.Device) {
	if err := backend.Init(); err != nil {
		fmt.Printf("  %s:     unavailable: %v\n", backend.Name(), err)
		return
	}
	defer func() { must.M(backend.Shutdown()) }()

	handle, err := smi.Resolve(backend, ordinal, dev.Properties().BusAddress)
	if err != nil {
		fmt.Printf("  %s:     unresolved: %v\n", backend.Name(), err)
		return
	}
	line := fmt.Sprintf("handle %d", handle)
	if level, err := backend.PerfLevel(handle); err == nil {
		line += fmt.Sprintf(", perf level %s", level)
	}
	if clocks, ok := backend.(smi.ClockReader); ok {
		if sclk, err := clocks.CurrentSclk(handle); err == nil {
			line += fmt.Sprintf(", sclk %d MHz", sclk)
		}
	}
	fmt.Printf("  %s:     %s\n", backend.Name(), line)
}
