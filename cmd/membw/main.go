// membw measures device memory bandwidth: fill (memset) and device-to-device
// copy latency across a sweep of buffer sizes, under pinned clocks and with
// caches flushed between trials.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/janpfeifer/must"
	"github.com/schollz/progressbar/v3"
	"k8s.io/klog/v2"

	"github.com/Snektron/amd-experiments/bench"
	"github.com/Snektron/amd-experiments/hip"
	"github.com/Snektron/amd-experiments/smi"
	"github.com/Snektron/amd-experiments/smi/amdsmi"
	"github.com/Snektron/amd-experiments/smi/rocmsmi"
	"github.com/Snektron/amd-experiments/workloads"
)

var (
	flagDevice     = flag.Int("device", 0, "HIP ordinal of the device to benchmark")
	flagBackend    = flag.String("backend", "amdsmi", "telemetry backend: amdsmi or rocm_smi")
	flagWarmups    = flag.Int("warmups", bench.DefaultWarmups, "discarded warmup trials per configuration")
	flagIterations = flag.Int("iterations", bench.DefaultIterations, "measured trials per configuration")
	flagMinMiB     = flag.Int("min-mib", 1, "smallest buffer size in MiB")
	flagMaxMiB     = flag.Int("max-mib", 1024, "largest buffer size in MiB; the sweep doubles from min to max")
	flagVerify     = flag.Bool("verify", true, "check copied data against the fill pattern")
	flagElem       = flag.String("elem", "f32", "element type of the verification pattern: u8, f16 or f32")
)

func backendFor(name string) smi.Backend {
	switch name {
	case "amdsmi":
		return amdsmi.New()
	case "rocm_smi", "rocmsmi":
		return rocmsmi.New()
	default:
		fmt.Fprintf(os.Stderr, "unknown telemetry backend %q (want amdsmi or rocm_smi)\n", name)
		os.Exit(1)
		return nil
	}
}

type result struct {
	bytes  int
	fill   bench.DurationStats
	copied bench.DurationStats
}

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
	dev := must.M1(hip.NewDevice(*flagDevice))
	props := dev.Properties()
	fmt.Printf("benchmarking on device '%s' (%s)\n", props.Name, props.BusAddress)
	fmt.Printf("  arch %s (%s), %d CUs, wavefront %d, %s memory\n",
		props.Arch, dev.Family(), props.ComputeUnits, props.WarpSize, humanize.IBytes(props.TotalMemory))

	exec := must.M1(bench.NewExecutor(dev, backendFor(*flagBackend)))
	defer func() { must.M(exec.Close()) }()

	var sizes []int
	for mib := *flagMinMiB; mib <= *flagMaxMiB; mib *= 2 {
		sizes = append(sizes, mib<<20)
	}

	bar := progressbar.Default(int64(len(sizes)), "sweeping")
	var results []result
	for _, size := range sizes {
		results = append(results, benchSize(dev, exec, size))
		must.M(bar.Add(1))
	}
	must.M(bar.Finish())

	fmt.Printf("\n%12s  %30s  %10s  %30s  %10s\n", "size", "fill", "GB/s", "copy", "GB/s")
	for _, r := range results {
		// A fill writes every byte once; a copy reads and writes it.
		fillBytes := bench.SizeOf(uint64(r.bytes))
		copyBytes := bench.SizeOf(2 * uint64(r.bytes))
		fmt.Printf("%12s  %30s  %10.2f  %30s  %10.2f\n",
			humanize.IBytes(uint64(r.bytes)),
			r.fill, bench.ThroughputOf(fillBytes, r.fill.Average).Giga(),
			r.copied, bench.ThroughputOf(copyBytes, r.copied.Average).Giga())
	}
}

func benchSize(dev *hip.Device, exec *bench.Executor, size int) result {
	src := must.M1(dev.AllocBytes(size))
	defer func() { must.M(src.Destroy()) }()
	dst := must.M1(dev.AllocBytes(size))
	defer func() { must.M(dst.Destroy()) }()

	var want []byte
	if *flagVerify {
		want = fillPattern(*flagElem, verifyBytes(size))
		must.M(dev.WriteBuffer(src, want))
	}

	r := result{bytes: size}
	r.fill = must.M1(exec.Bench(workloads.Fill(dst, 0x00), *flagWarmups, *flagIterations))
	r.copied = must.M1(exec.Bench(workloads.DeviceCopy(dst, src, size), *flagWarmups, *flagIterations))

	if *flagVerify {
		got := make([]byte, len(want))
		must.M(dev.ReadBuffer(got, dst))
		must.M(verifyPattern(*flagElem, want, got))
	}
	return r
}

// verifyBytes limits the host round-trip to the head of the buffer.
func verifyBytes(size int) int {
	const limit = 64 << 10
	return min(size, limit)
}
