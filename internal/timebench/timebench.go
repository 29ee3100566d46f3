// Package timebench provides the timing and reporting harness for
// counted-loop benchmarks.
//
// A workload function receives a Record carrying the requested loop count
// and step parameter, brackets its measured loop with Record.Start and
// Record.Stop, and returns the number of logical operations it completed.
// The harness turns that into a labeled Result with derived ns/op and
// throughput figures.
//
// The harness itself never touches the queue; it only owns the timer and
// the result bookkeeping. Operation counts are accumulated in 64 bits.
package timebench

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/randomizedcoder/alf-queue-bench/internal/queue"
)

// Record carries the parameters of one benchmark run and captures its
// timing. The workload function reads Loops and Step, and must call Start
// immediately before its measured loop and Stop immediately after.
type Record struct {
	// Loops is the requested iteration count for the measured loop.
	Loops uint32

	// Step is the workload-specific width parameter (inner element count
	// or bulk width). Zero for workloads that do not use it.
	Step int

	start   time.Time
	elapsed time.Duration
}

// Start marks the beginning of the measured region.
func (r *Record) Start() {
	r.start = time.Now()
}

// Stop marks the end of the measured region. Elapsed time is captured
// from the monotonic clock.
func (r *Record) Stop() {
	r.elapsed = time.Since(r.start)
}

// Elapsed returns the time between Start and Stop.
func (r *Record) Elapsed() time.Duration {
	return r.elapsed
}

// WorkFunc is a benchmark workload. It runs rec.Loops iterations of its
// access pattern against q and returns the number of logical operations
// completed. A non-nil error means the run produced no usable measurement.
type WorkFunc func(rec *Record, q queue.Queue) (uint64, error)

// Result is one labeled benchmark measurement.
type Result struct {
	Label   string
	Loops   uint32
	Step    int
	Ops     uint64
	Elapsed time.Duration
}

// NsPerOp returns the measured cost per logical operation in nanoseconds.
func (r Result) NsPerOp() float64 {
	if r.Ops == 0 {
		return 0
	}
	return float64(r.Elapsed.Nanoseconds()) / float64(r.Ops)
}

// MOpsPerSec returns throughput in millions of operations per second.
func (r Result) MOpsPerSec() float64 {
	ns := r.NsPerOp()
	if ns == 0 {
		return 0
	}
	return 1000 / ns
}

// Harness runs workload functions and reports labeled results.
type Harness struct {
	log *zap.Logger
}

// NewHarness creates a Harness that logs results through log.
// A nil logger disables logging.
func NewHarness(log *zap.Logger) *Harness {
	if log == nil {
		log = zap.NewNop()
	}
	return &Harness{log: log}
}

// Loop runs fn once with the given loop count and step against q and
// returns the labeled result. On error the run yields no result; the
// error is logged and returned for the caller to count.
func (h *Harness) Loop(loops uint32, step int, label string, q queue.Queue, fn WorkFunc) (Result, error) {
	rec := &Record{Loops: loops, Step: step}

	ops, err := fn(rec, q)
	if err != nil {
		h.log.Error("benchmark run failed",
			zap.String("label", label),
			zap.Uint32("loops", loops),
			zap.Int("step", step),
			zap.Error(err),
		)
		return Result{}, errors.Wrapf(err, "timebench: %s", label)
	}

	res := Result{
		Label:   label,
		Loops:   loops,
		Step:    step,
		Ops:     ops,
		Elapsed: rec.Elapsed(),
	}
	h.log.Info("benchmark run complete",
		zap.String("label", label),
		zap.Uint32("loops", loops),
		zap.Int("step", step),
		zap.Uint64("ops", ops),
		zap.Duration("elapsed", res.Elapsed),
		zap.Float64("ns_per_op", res.NsPerOp()),
	)
	return res, nil
}
