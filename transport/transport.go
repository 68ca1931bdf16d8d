package transport

// transport.go defines the contracts between the binary core and whatever
// carries its bytes. No network code lives here: a WebSocket (or any other)
// transport implements MessageSink, and inbound frames are handed to a
// FrameHandler as a fresh buffer.Reader.
//
// SendQueue covers the gap before a transport exists: payloads produced
// while no sink is attached are buffered in order and flushed on Attach.

import (
	"github.com/rony4d/go-streamkit/buffer"
)

// MessageSink accepts one outbound binary message, typically a Writer's
// Data() output.
type MessageSink interface {
	Send(payload []byte) error
}

// FrameHandler consumes one inbound binary frame through a byte cursor.
type FrameHandler interface {
	HandleFrame(r *buffer.Reader)
}

// Dispatch wraps a raw inbound frame in a fresh Reader and hands it to h.
func Dispatch(h FrameHandler, frame []byte) {
	h.HandleFrame(buffer.NewReader(frame))
}

// SendQueue buffers outbound payloads until a sink is attached.
type SendQueue struct {
	sink    MessageSink
	pending [][]byte
}

// NewSendQueue creates a detached queue.
func NewSendQueue() *SendQueue {
	return &SendQueue{}
}

// Pending returns the number of buffered payloads.
func (q *SendQueue) Pending() int {
	return len(q.pending)
}

// Send forwards the payload to the attached sink, or buffers it if none is
// attached. Buffered payloads are copied: Writer.Data() aliases the writer's
// storage, which the caller is free to clear and reuse before a sink shows
// up.
func (q *SendQueue) Send(payload []byte) error {
	if q.sink != nil {
		return q.sink.Send(payload)
	}
	snapshot := make([]byte, len(payload))
	copy(snapshot, payload)
	q.pending = append(q.pending, snapshot)
	return nil
}

// Attach connects the sink and flushes buffered payloads in order. If a send
// fails, the failed payload and everything after it stay queued, the sink is
// detached again and the error is returned.
func (q *SendQueue) Attach(sink MessageSink) error {
	q.sink = sink
	for len(q.pending) > 0 {
		if err := q.sink.Send(q.pending[0]); err != nil {
			q.sink = nil
			return err
		}
		q.pending = q.pending[1:]
	}
	return nil
}

// Detach disconnects the sink; subsequent Sends buffer again.
func (q *SendQueue) Detach() {
	q.sink = nil
}
