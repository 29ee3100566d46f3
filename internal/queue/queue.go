// Package queue provides bounded MPMC queue backends for benchmarking.
//
// This package offers two implementations of the Queue interface:
//   - MPMC: lock-free array-based queue backed by code.hybscloud.com/lfq
//   - Channel: standard library approach using a buffered channel
//
// Both expose a bulk-capable contract: Enqueue and Dequeue accept a slice
// of item values and report how many were actually transferred. A single
// call with a one-element slice is the single-item case; the same entry
// point handles bulk transfers uniformly.
//
// Items are uintptr values rather than real pointers. The benchmark
// workloads only measure transfer cost, so fake handles are enough and
// keep the timed region free of allocation and GC traffic.
package queue

// Queue is a bounded multi-producer multi-consumer FIFO queue.
//
// Implementations are non-blocking: a full queue makes Enqueue transfer
// fewer items than requested, an empty queue makes Dequeue do the same.
// A short count is a capacity condition, not an error; a non-nil error
// indicates a real failure.
type Queue interface {
	// Enqueue adds items to the queue, stopping early if the queue
	// fills. Returns the number of items actually transferred.
	Enqueue(items []uintptr) (int, error)

	// Dequeue removes up to len(out) items from the queue, stopping
	// early if the queue empties. Returns the number of items actually
	// transferred.
	Dequeue(out []uintptr) (int, error)

	// Cap returns the capacity of the queue.
	Cap() int

	// Close releases the queue. After Close, behavior of Enqueue and
	// Dequeue is undefined.
	Close() error
}
