package queue

import (
	"code.hybscloud.com/lfq"
	"github.com/pkg/errors"
)

// MPMC adapts the FAA-based lock-free MPMC queue from
// code.hybscloud.com/lfq to the bulk Queue contract.
//
// The underlying queue transfers one uintptr per call; this adapter loops
// over the slice and stops at the first would-block condition, reporting
// the short count. The per-call loop is intentionally thin so bulk
// measurements reflect the queue, not the adapter.
type MPMC struct {
	q *lfq.MPMCIndirect
}

// NewMPMC creates an MPMC queue with the given ring capacity.
// Capacity is rounded up to the next power of 2 by the underlying queue.
// Returns an error if the capacity is below the queue's minimum of 2.
func NewMPMC(capacity int) (*MPMC, error) {
	if capacity < 2 {
		return nil, errors.Errorf("queue: ring capacity %d below minimum 2", capacity)
	}
	return &MPMC{q: lfq.NewMPMCIndirect(capacity)}, nil
}

// Enqueue adds items until done or the queue is full.
func (m *MPMC) Enqueue(items []uintptr) (int, error) {
	for i, v := range items {
		if err := m.q.Enqueue(v); err != nil {
			if lfq.IsWouldBlock(err) {
				return i, nil
			}
			return i, errors.Wrap(err, "queue: enqueue")
		}
	}
	return len(items), nil
}

// Dequeue removes items until len(out) or the queue is empty.
func (m *MPMC) Dequeue(out []uintptr) (int, error) {
	for i := range out {
		v, err := m.q.Dequeue()
		if err != nil {
			if lfq.IsWouldBlock(err) {
				return i, nil
			}
			return i, errors.Wrap(err, "queue: dequeue")
		}
		out[i] = v
	}
	return len(out), nil
}

// Cap returns the usable capacity after power-of-2 rounding.
func (m *MPMC) Cap() int {
	return m.q.Cap()
}

// Close puts the queue into drain mode. The benchmark driver calls this
// once all configurations have finished; no producers run afterwards.
func (m *MPMC) Close() error {
	m.q.Drain()
	return nil
}
