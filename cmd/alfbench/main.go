// Command alfbench benchmarks a bounded array-based lock-free MPMC queue
// across single, unbatched-multi, and bulk enqueue/dequeue access patterns.
//
// Usage:
//
//	go run ./cmd/alfbench -loops 10000000 -size 512
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/randomizedcoder/alf-queue-bench/internal/queue"
	"github.com/randomizedcoder/alf-queue-bench/internal/workload"
)

func main() {
	loops := flag.Uint64("loops", 10_000_000, "base loop count per configuration")
	size := flag.Int("size", 512, "queue ring capacity")
	backend := flag.String("backend", "mpmc", "queue backend: mpmc or channel")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Parse()

	if *loops > math.MaxUint32 {
		fmt.Fprintf(os.Stderr, "loops %d exceeds 32-bit loop count limit\n", *loops)
		os.Exit(2)
	}

	logger := newLogger(*verbose)
	defer logger.Sync() //nolint:errcheck

	cfg := workload.DefaultConfig()
	cfg.Loops = uint32(*loops)
	cfg.RingSize = *size
	switch *backend {
	case "mpmc":
		// Default backend from DefaultConfig.
	case "channel":
		cfg.NewQueue = func(capacity int) (queue.Queue, error) {
			return queue.NewChannel(capacity), nil
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown backend %q (want mpmc or channel)\n", *backend)
		os.Exit(2)
	}

	fmt.Printf("Benchmarking MPMC queue access patterns (loops=%d, size=%d, backend=%s)\n",
		cfg.Loops, cfg.RingSize, *backend)
	fmt.Printf("Architecture: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	fmt.Println("─────────────────────────────────────────────────")

	drv := workload.NewDriver(cfg, logger)
	sum, err := drv.Run()
	if err != nil {
		logger.Error("benchmark run cancelled", zap.Error(err))
		fmt.Fprintf(os.Stderr, "benchmark run cancelled: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nResults:\n")
	for _, r := range sum.Results {
		fmt.Printf("  %-12s %12d loops  %4d step  %14v  %8.3f ns/op  %8.2f M/s\n",
			r.Label, r.Loops, r.Step, r.Elapsed, r.NsPerOp(), r.MOpsPerSec())
	}

	fmt.Printf("\nNote: for_loop is the empty-loop baseline; interpret queue costs against it.\n")

	if sum.Failed > 0 {
		fmt.Printf("\n%d configuration(s) produced no usable result\n", sum.Failed)
		os.Exit(1)
	}
}

// newLogger builds the process logger. Results are printed to stdout
// either way; -v additionally streams the per-run structured log.
func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	return logger
}
