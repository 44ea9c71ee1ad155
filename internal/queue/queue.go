// Package queue implements the pending-record FIFO.
//
// Records are kept in a singly-linked chain owned from head; tail is a cache for
// O(1) append. Count and byte totals are maintained alongside the chain under
// the same critical section, so that
//
//	head == nil  <=>  tail == nil  <=>  count == 0
//	sum(len(record)) == bytes
//
// hold whenever the section is not held. The queue supports any number of
// producers and a single consumer.
package queue

// Record is one queued line. Its payload is sized exactly to the line.
type Record struct {
	next *Record
	data []byte
}

// Bytes returns the record payload.
func (r *Record) Bytes() []byte {
	return r.data
}

// Len returns the payload length.
func (r *Record) Len() int {
	return len(r.data)
}

// Queue is the pending-record FIFO.
type Queue struct {
	guard    spinGuard
	head     *Record
	tail     *Record
	count    int
	bytes    int
	maxBytes int
}

// New returns an empty queue. maxBytes bounds the payload bytes held at once;
// zero means unbounded.
func New(maxBytes int) *Queue {
	if maxBytes < 0 {
		maxBytes = 0
	}

	return &Queue{maxBytes: maxBytes}
}

// Append copies line into a new record and links it at the tail. It returns false,
// leaving the queue untouched, when the record would exceed the byte budget.
func (q *Queue) Append(line []byte) bool {
	record := &Record{data: make([]byte, len(line))}
	copy(record.data, line)

	q.guard.enter()

	if q.maxBytes > 0 && q.bytes+len(line) > q.maxBytes {
		q.guard.exit()

		return false
	}

	if q.head == nil {
		q.head = record
	} else {
		q.tail.next = record
	}

	q.tail = record
	q.count++
	q.bytes += len(record.data)

	q.guard.exit()

	return true
}

// PopFront detaches the head record. The caller owns the returned record.
func (q *Queue) PopFront() (*Record, bool) {
	q.guard.enter()

	record := q.head
	if record == nil {
		q.guard.exit()

		return nil, false
	}

	q.head = record.next
	if q.head == nil {
		q.tail = nil
	}

	q.count--
	q.bytes -= len(record.data)

	q.guard.exit()

	record.next = nil

	return record, true
}

// Stats returns the current record count and payload bytes.
func (q *Queue) Stats() (count, bytes int) {
	q.guard.enter()
	count, bytes = q.count, q.bytes
	q.guard.exit()

	return count, bytes
}

// Len returns the number of queued records.
func (q *Queue) Len() int {
	count, _ := q.Stats()

	return count
}

// Drain pops every record, passing each to fn in FIFO order, and returns how many
// were popped. Records appended while draining are drained too.
func (q *Queue) Drain(fn func(*Record)) int {
	drained := 0

	for {
		record, ok := q.PopFront()
		if !ok {
			return drained
		}

		drained++

		if fn != nil {
			fn(record)
		}
	}
}
