package numbers

// queue.go provides a fixed-capacity FIFO of float64 samples with running
// window statistics: Sum and Avg in O(1), Min and Max in amortized O(1) via
// monotonic deques. It backs the byte-rate meter's sliding window but is a
// plain data structure with no dependencies of its own.
//
// Not safe for concurrent use; one queue, one owner.

// sample pairs a value with its push sequence number so the deques can tell
// when their front element has been evicted from the window.
type sample struct {
	seq uint64
	v   float64
}

type Queue struct {
	capacity int
	count    int
	// next is the sequence number the next Push will use; the oldest live
	// sample has seq next-count.
	next uint64
	sum  float64
	ring []float64
	// minq holds samples in increasing value order: its front is the window
	// minimum. maxq mirrors it in decreasing order.
	minq []sample
	maxq []sample
}

// NewQueue creates a queue holding at most capacity samples; pushing into a
// full queue evicts the oldest sample. Non-positive capacities clamp to 1.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{
		capacity: capacity,
		ring:     make([]float64, capacity),
	}
}

// Len returns the number of live samples.
func (q *Queue) Len() int {
	return q.count
}

// Cap returns the fixed capacity.
func (q *Queue) Cap() int {
	return q.capacity
}

// Push appends a sample, evicting the oldest one first if the queue is full.
func (q *Queue) Push(v float64) {
	if q.count == q.capacity {
		q.Pop()
	}
	q.ring[int(q.next%uint64(q.capacity))] = v

	// Samples that can never be a minimum again (>= v and older) leave the
	// deque now, which is what keeps the front lookup O(1).
	for len(q.minq) > 0 && q.minq[len(q.minq)-1].v >= v {
		q.minq = q.minq[:len(q.minq)-1]
	}
	q.minq = append(q.minq, sample{q.next, v})

	for len(q.maxq) > 0 && q.maxq[len(q.maxq)-1].v <= v {
		q.maxq = q.maxq[:len(q.maxq)-1]
	}
	q.maxq = append(q.maxq, sample{q.next, v})

	q.sum += v
	q.next++
	q.count++
}

// Pop removes and returns the oldest sample. The second return is false when
// the queue is empty.
func (q *Queue) Pop() (float64, bool) {
	if q.count == 0 {
		return 0, false
	}
	oldest := q.next - uint64(q.count)
	v := q.ring[int(oldest%uint64(q.capacity))]
	q.sum -= v
	if len(q.minq) > 0 && q.minq[0].seq == oldest {
		q.minq = q.minq[1:]
	}
	if len(q.maxq) > 0 && q.maxq[0].seq == oldest {
		q.maxq = q.maxq[1:]
	}
	q.count--
	return v, true
}

// Sum returns the running sum of live samples.
func (q *Queue) Sum() float64 {
	return q.sum
}

// Avg returns the running average, 0 for an empty queue.
func (q *Queue) Avg() float64 {
	if q.count == 0 {
		return 0
	}
	return q.sum / float64(q.count)
}

// Min returns the smallest live sample, 0 for an empty queue.
func (q *Queue) Min() float64 {
	if len(q.minq) == 0 {
		return 0
	}
	return q.minq[0].v
}

// Max returns the largest live sample, 0 for an empty queue.
func (q *Queue) Max() float64 {
	if len(q.maxq) == 0 {
		return 0
	}
	return q.maxq[0].v
}

// Clear drops all samples.
func (q *Queue) Clear() {
	q.count = 0
	q.next = 0
	q.sum = 0
	q.minq = q.minq[:0]
	q.maxq = q.maxq[:0]
}
