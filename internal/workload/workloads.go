// Package workload implements the benchmark workloads for a bounded
// array-based lock-free MPMC queue, and the driver that sequences them.
//
// Four workloads are provided, in increasing batching complexity:
//
//   - ForLoop: empty counted loop, the measurement-overhead baseline
//   - SingleEnqueueDequeue: one enqueue then one dequeue per iteration
//   - MultiEnqueueDequeue: Step single-item enqueues then Step single-item
//     dequeues per iteration (deliberately avoiding the bulk interface)
//   - BulkEnqueueDequeue: one bulk enqueue then one bulk dequeue of Step
//     items per iteration (the queue's intended fast path)
//
// Production and consumption are balanced inside every iteration, so a
// full or empty queue mid-loop means the queue broke an invariant, not
// that backoff is needed. Any such failure discards the whole run: a
// partial count would be indistinguishable from a clean measurement.
package workload

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/randomizedcoder/alf-queue-bench/internal/queue"
	"github.com/randomizedcoder/alf-queue-bench/internal/timebench"
)

// MaxBulk is the capacity of the stack-allocated bulk transfer buffers.
// Larger bulk requests are clamped to this width with a warning.
const MaxBulk = 32

var (
	// ErrNilQueue reports a workload invoked without a queue handle.
	ErrNilQueue = errors.New("workload: need queue as input")

	// ErrMeasurementAborted reports an enqueue or dequeue that failed
	// mid-loop. The run's partial count is discarded.
	ErrMeasurementAborted = errors.New("workload: queue operation failed mid-loop, measurement discarded")
)

// sink defeats dead-code elimination inside measured loops. Storing the
// counter here each iteration keeps the loop body observable to the
// compiler, the moral equivalent of a compiler barrier.
var sink uint64

// Suite holds the benchmark workloads. The logger carries the bulk-clamp
// warning; it is threaded in explicitly rather than read from any global.
type Suite struct {
	log *zap.Logger
}

// NewSuite creates a workload suite. A nil logger disables logging.
func NewSuite(log *zap.Logger) *Suite {
	if log == nil {
		log = zap.NewNop()
	}
	return &Suite{log: log}
}

// ForLoop measures the intrinsic cost of an empty counted loop, as a
// baseline reference for the queue measurements. The baseline is reported
// alongside the other results, never subtracted from them.
func (s *Suite) ForLoop(rec *timebench.Record, _ queue.Queue) (uint64, error) {
	var loopsCnt uint64

	rec.Start()
	for i := uint32(0); i < rec.Loops; i++ {
		loopsCnt++
		sink = loopsCnt // keep the loop body from being optimized away
	}
	rec.Stop()

	return loopsCnt, nil
}

// SingleEnqueueDequeue measures the cost of a single enqueue or dequeue:
// each iteration enqueues one item and dequeues it again. Every transfer
// counts as one operation, so a clean run returns 2*Loops.
func (s *Suite) SingleEnqueueDequeue(rec *timebench.Record, q queue.Queue) (uint64, error) {
	if q == nil {
		return 0, ErrNilQueue
	}
	if err := checkOps(rec.Loops, 2); err != nil {
		return 0, err
	}

	obj := [1]uintptr{123}
	var deqObj [1]uintptr
	var loopsCnt uint64

	rec.Start()
	for i := uint32(0); i < rec.Loops; i++ {
		if n, err := q.Enqueue(obj[:]); err != nil || n != 1 {
			return 0, ErrMeasurementAborted
		}
		loopsCnt++
		sink = loopsCnt
		if n, err := q.Dequeue(deqObj[:]); err != nil || n != 1 {
			return 0, ErrMeasurementAborted
		}
		loopsCnt++
	}
	rec.Stop()

	return loopsCnt, nil
}

// MultiEnqueueDequeue enqueues rec.Step items one at a time, then dequeues
// them one at a time. Strange test, as bulk is the normal solution, but it
// shows the cost of touching more of the underlying array when the bulk
// interface is not used. A clean run returns 2*Loops*Step.
func (s *Suite) MultiEnqueueDequeue(rec *timebench.Record, q queue.Queue) (uint64, error) {
	if q == nil {
		return 0, ErrNilQueue
	}
	elems := rec.Step
	if elems < 1 {
		return 0, errors.Errorf("workload: step %d must be >= 1", elems)
	}
	if err := checkOps(rec.Loops, 2*uint64(elems)); err != nil {
		return 0, err
	}

	obj := [1]uintptr{123}
	var deqObj [1]uintptr
	var loopsCnt uint64

	rec.Start()
	for i := uint32(0); i < rec.Loops; i++ {
		for n := 0; n < elems; n++ {
			if cnt, err := q.Enqueue(obj[:]); err != nil || cnt != 1 {
				return 0, ErrMeasurementAborted
			}
			loopsCnt++
		}
		sink = loopsCnt
		for n := 0; n < elems; n++ {
			if cnt, err := q.Dequeue(deqObj[:]); err != nil || cnt != 1 {
				return 0, ErrMeasurementAborted
			}
			loopsCnt++
		}
	}
	rec.Stop()

	return loopsCnt, nil
}

// BulkEnqueueDequeue transfers rec.Step items per call through the queue's
// bulk interface, one enqueue call and one dequeue call per iteration.
// Widths above MaxBulk are clamped with a warning. A clean run returns
// 2*Loops*width at the clamped width.
func (s *Suite) BulkEnqueueDequeue(rec *timebench.Record, q queue.Queue) (uint64, error) {
	if q == nil {
		return 0, ErrNilQueue
	}
	bulk := rec.Step
	if bulk < 1 {
		return 0, errors.Errorf("workload: step %d must be >= 1", bulk)
	}
	if bulk > MaxBulk {
		s.log.Warn("bulk request too big, capping",
			zap.Int("requested", bulk),
			zap.Int("max", MaxBulk),
		)
		bulk = MaxBulk
	}
	if err := checkOps(rec.Loops, 2*uint64(bulk)); err != nil {
		return 0, err
	}

	// Fake item pointers, initialized once outside the timed region.
	var objs, deqObjs [MaxBulk]uintptr
	for i := range objs {
		objs[i] = uintptr(i + 20)
	}
	var loopsCnt uint64

	rec.Start()
	for i := uint32(0); i < rec.Loops; i++ {
		if n, err := q.Enqueue(objs[:bulk]); err != nil || n != bulk {
			return 0, ErrMeasurementAborted
		}
		loopsCnt += uint64(bulk)
		sink = loopsCnt
		if n, err := q.Dequeue(deqObjs[:bulk]); err != nil || n != bulk {
			return 0, ErrMeasurementAborted
		}
		loopsCnt += uint64(bulk)
	}
	rec.Stop()

	return loopsCnt, nil
}
