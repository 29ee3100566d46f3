package workload

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/randomizedcoder/alf-queue-bench/internal/queue"
	"github.com/randomizedcoder/alf-queue-bench/internal/timebench"
)

// Config holds the benchmark driver configuration.
type Config struct {
	// Loops is the base loop count. The single and bulk workloads run
	// Loops iterations; the multi workload runs Loops/100 because its
	// iterations are 256 operations wide.
	Loops uint32

	// RingSize is the queue ring capacity, rounded up to a power of 2
	// by the backend.
	RingSize int

	// NewQueue allocates the queue the whole run is measured against.
	NewQueue func(capacity int) (queue.Queue, error)
}

// DefaultConfig returns the standard configuration: 10M loops against a
// 512-slot ring using the lock-free MPMC backend.
func DefaultConfig() Config {
	return Config{
		Loops:    10_000_000,
		RingSize: 512,
		NewQueue: func(capacity int) (queue.Queue, error) {
			return queue.NewMPMC(capacity)
		},
	}
}

// Summary aggregates one full benchmark run.
type Summary struct {
	// Results holds one entry per configuration that produced a usable
	// measurement, in run order.
	Results []timebench.Result

	// Failed counts configurations that were skipped or aborted.
	Failed int
}

// Driver sequences the calibration baseline and all workload
// configurations against one shared queue instance.
type Driver struct {
	cfg     Config
	log     *zap.Logger
	harness *timebench.Harness
	suite   *Suite
}

// NewDriver creates a Driver. A nil logger disables logging.
func NewDriver(cfg Config, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		cfg:     cfg,
		log:     log,
		harness: timebench.NewHarness(log),
		suite:   NewSuite(log),
	}
}

// Run allocates the queue, measures the loop-overhead baseline, runs every
// workload configuration against the same queue instance, and releases the
// queue. Failed configurations are counted and never abort their siblings;
// only queue allocation failure is fatal to the whole run.
func (d *Driver) Run() (*Summary, error) {
	q, err := d.cfg.NewQueue(d.cfg.RingSize)
	if err != nil {
		return nil, errors.Wrap(err, "workload: allocate queue")
	}
	defer func() { _ = q.Close() }()

	sum := &Summary{}

	// Timing at the nanosecond level needs the overhead introduced by
	// the for loop itself as a reference point.
	d.runOne(sum, calibrationLoops(d.cfg.Loops), 0, "for_loop", nil, d.suite.ForLoop)

	configs := []struct {
		loops uint32
		step  int
		label string
		fn    timebench.WorkFunc
	}{
		{d.cfg.Loops, 0, "ALF-simple", d.suite.SingleEnqueueDequeue},
		{d.cfg.Loops / 100, 128, "ALF-multi", d.suite.MultiEnqueueDequeue},
		{d.cfg.Loops, 2, "ALF-bulk2", d.suite.BulkEnqueueDequeue},
		{d.cfg.Loops, 4, "ALF-bulk4", d.suite.BulkEnqueueDequeue},
		{d.cfg.Loops, 6, "ALF-bulk6", d.suite.BulkEnqueueDequeue},
		{d.cfg.Loops, 8, "ALF-bulk8", d.suite.BulkEnqueueDequeue},
		{d.cfg.Loops, 16, "ALF-bulk16", d.suite.BulkEnqueueDequeue},
	}
	for _, c := range configs {
		d.runOne(sum, c.loops, c.step, c.label, q, c.fn)
	}

	return sum, nil
}

func (d *Driver) runOne(sum *Summary, loops uint32, step int, label string, q queue.Queue, fn timebench.WorkFunc) {
	res, err := d.harness.Loop(loops, step, label, q, fn)
	if err != nil {
		// Already logged by the harness with its label.
		sum.Failed++
		return
	}
	sum.Results = append(sum.Results, res)
}

// calibrationLoops scales the base loop count up for the empty-loop
// baseline, which needs far more iterations than the queue workloads to
// measure sub-nanosecond cost. Saturates at the 32-bit loop count limit
// instead of wrapping.
func calibrationLoops(loops uint32) uint32 {
	v := uint64(loops) * 1000
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}
