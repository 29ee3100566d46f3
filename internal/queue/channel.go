package queue

// Channel wraps a buffered channel as a Queue.
//
// This is the standard library approach, kept as the comparison baseline
// for the lock-free backend. Each item transfer performs a non-blocking
// channel operation via select with default.
type Channel struct {
	ch chan uintptr
}

// NewChannel creates a Channel queue with the specified capacity.
func NewChannel(capacity int) *Channel {
	return &Channel{
		ch: make(chan uintptr, capacity),
	}
}

// Enqueue adds items until done or the channel buffer is full.
func (q *Channel) Enqueue(items []uintptr) (int, error) {
	for i, v := range items {
		select {
		case q.ch <- v:
		default:
			return i, nil
		}
	}
	return len(items), nil
}

// Dequeue removes items until len(out) or the channel buffer is empty.
func (q *Channel) Dequeue(out []uintptr) (int, error) {
	for i := range out {
		select {
		case v := <-q.ch:
			out[i] = v
		default:
			return i, nil
		}
	}
	return len(out), nil
}

// Cap returns the capacity of the queue.
func (q *Channel) Cap() int {
	return cap(q.ch)
}

// Close is a no-op; the channel is left open for the GC to collect so a
// straggling Enqueue cannot panic on a closed channel.
func (q *Channel) Close() error {
	return nil
}
