package queue_test

import (
	"testing"

	"github.com/randomizedcoder/alf-queue-bench/internal/queue"
)

func newMPMC(t *testing.T, capacity int) *queue.MPMC {
	t.Helper()
	q, err := queue.NewMPMC(capacity)
	if err != nil {
		t.Fatalf("NewMPMC(%d): %v", capacity, err)
	}
	return q
}

func testQueue(t *testing.T, q queue.Queue, name string) {
	t.Helper()

	var out [1]uintptr

	// Empty queue transfers nothing
	if n, err := q.Dequeue(out[:]); err != nil || n != 0 {
		t.Errorf("%s: expected Dequeue() = (0, nil) on empty queue, got (%d, %v)", name, n, err)
	}

	// Single-item enqueue succeeds
	if n, err := q.Enqueue([]uintptr{42}); err != nil || n != 1 {
		t.Errorf("%s: expected Enqueue() = (1, nil), got (%d, %v)", name, n, err)
	}

	// Dequeue returns the enqueued value
	n, err := q.Dequeue(out[:])
	if err != nil || n != 1 {
		t.Errorf("%s: expected Dequeue() = (1, nil) after Enqueue(), got (%d, %v)", name, n, err)
	}
	if out[0] != 42 {
		t.Errorf("%s: expected 42, got %d", name, out[0])
	}

	// Queue is empty again
	if n, err := q.Dequeue(out[:]); err != nil || n != 0 {
		t.Errorf("%s: expected Dequeue() = (0, nil) after draining, got (%d, %v)", name, n, err)
	}
}

func TestMPMC(t *testing.T) {
	testQueue(t, newMPMC(t, 8), "MPMC")
}

func TestChannel(t *testing.T) {
	testQueue(t, queue.NewChannel(8), "Channel")
}

func TestMPMC_CapacityValidation(t *testing.T) {
	if _, err := queue.NewMPMC(0); err == nil {
		t.Error("expected NewMPMC(0) to fail")
	}
	if _, err := queue.NewMPMC(1); err == nil {
		t.Error("expected NewMPMC(1) to fail")
	}
	if _, err := queue.NewMPMC(2); err != nil {
		t.Errorf("expected NewMPMC(2) to succeed, got %v", err)
	}
}

func TestMPMC_CapPowerOfTwo(t *testing.T) {
	// Capacity 5 rounds up to 8
	q := newMPMC(t, 5)
	if q.Cap() != 8 {
		t.Errorf("expected Cap() = 8 (rounded up), got %d", q.Cap())
	}

	// Capacity 512 stays 512
	q2 := newMPMC(t, 512)
	if q2.Cap() != 512 {
		t.Errorf("expected Cap() = 512, got %d", q2.Cap())
	}
}

func TestChannel_Cap(t *testing.T) {
	q := queue.NewChannel(512)
	if q.Cap() != 512 {
		t.Errorf("expected Cap() = 512, got %d", q.Cap())
	}
}

func testFull(t *testing.T, q queue.Queue, name string) {
	t.Helper()

	capacity := q.Cap()
	items := make([]uintptr, capacity+1)
	for i := range items {
		items[i] = uintptr(i + 1)
	}

	// Over-filling transfers exactly capacity items
	n, err := q.Enqueue(items)
	if err != nil {
		t.Fatalf("%s: Enqueue: %v", name, err)
	}
	if n != capacity {
		t.Errorf("%s: expected short count %d on full queue, got %d", name, capacity, n)
	}

	// Single-item enqueue on a full queue transfers nothing
	if n, err := q.Enqueue([]uintptr{99}); err != nil || n != 0 {
		t.Errorf("%s: expected Enqueue() = (0, nil) on full queue, got (%d, %v)", name, n, err)
	}
}

func TestMPMC_Full(t *testing.T) {
	testFull(t, newMPMC(t, 8), "MPMC")
}

func TestChannel_Full(t *testing.T) {
	testFull(t, queue.NewChannel(8), "Channel")
}

func testFIFO(t *testing.T, q queue.Queue, name string) {
	t.Helper()

	for i := 0; i < 5; i++ {
		if n, err := q.Enqueue([]uintptr{uintptr(i + 20)}); err != nil || n != 1 {
			t.Fatalf("%s: expected Enqueue(%d) = (1, nil), got (%d, %v)", name, i+20, n, err)
		}
	}

	var out [1]uintptr
	for i := 0; i < 5; i++ {
		n, err := q.Dequeue(out[:])
		if err != nil || n != 1 {
			t.Fatalf("%s: expected Dequeue() = (1, nil) for item %d, got (%d, %v)", name, i, n, err)
		}
		if out[0] != uintptr(i+20) {
			t.Errorf("%s: FIFO violation: expected %d, got %d", name, i+20, out[0])
		}
	}
}

func TestMPMC_FIFO(t *testing.T) {
	testFIFO(t, newMPMC(t, 8), "MPMC")
}

func TestChannel_FIFO(t *testing.T) {
	testFIFO(t, queue.NewChannel(8), "Channel")
}

func testBulkRoundTrip(t *testing.T, q queue.Queue, name string) {
	t.Helper()

	in := []uintptr{20, 21, 22, 23, 24, 25, 26, 27}
	if n, err := q.Enqueue(in); err != nil || n != len(in) {
		t.Fatalf("%s: expected bulk Enqueue() = (%d, nil), got (%d, %v)", name, len(in), n, err)
	}

	out := make([]uintptr, len(in))
	n, err := q.Dequeue(out)
	if err != nil || n != len(in) {
		t.Fatalf("%s: expected bulk Dequeue() = (%d, nil), got (%d, %v)", name, len(in), n, err)
	}
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("%s: bulk order violation at %d: expected %d, got %d", name, i, in[i], out[i])
		}
	}
}

func TestMPMC_BulkRoundTrip(t *testing.T) {
	testBulkRoundTrip(t, newMPMC(t, 64), "MPMC")
}

func TestChannel_BulkRoundTrip(t *testing.T) {
	testBulkRoundTrip(t, queue.NewChannel(64), "Channel")
}

func TestMPMC_ShortDequeue(t *testing.T) {
	q := newMPMC(t, 8)

	if n, err := q.Enqueue([]uintptr{1, 2, 3}); err != nil || n != 3 {
		t.Fatalf("Enqueue: (%d, %v)", n, err)
	}

	// Asking for more than available transfers only what is there
	out := make([]uintptr, 8)
	n, err := q.Dequeue(out)
	if err != nil {
		t.Fatalf("Dequeue: %v", err)
	}
	if n != 3 {
		t.Errorf("expected short count 3, got %d", n)
	}
}

func TestMPMC_Close(t *testing.T) {
	q := newMPMC(t, 8)
	if _, err := q.Enqueue([]uintptr{1}); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := q.Close(); err != nil {
		t.Errorf("expected Close() = nil, got %v", err)
	}
}

// Test that both implementations satisfy the interface
func TestQueueInterface(t *testing.T) {
	testCases := []struct {
		name string
		q    queue.Queue
	}{
		{"MPMC", newMPMC(t, 8)},
		{"Channel", queue.NewChannel(8)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			testQueue(t, tc.q, tc.name)
		})
	}
}
