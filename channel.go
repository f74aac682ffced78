package collide

// ReaderID is a private read cursor into an EventChannel.
type ReaderID struct {
	// cursor is the absolute index of the next unread event.
	cursor int
}

// EventChannel is an append-only event stream that any number of readers
// consume at their own pace. Every reader sees every event written after it
// registered exactly once. Events nobody can still read are dropped.
type EventChannel[E any] struct {
	events  []E
	offset  int // absolute index of events[0]
	readers []*ReaderID
}

// NewEventChannel returns an empty channel.
func NewEventChannel[E any]() *EventChannel[E] {
	return &EventChannel[E]{}
}

// Register returns a reader positioned at the end of the stream.
func (c *EventChannel[E]) Register() *ReaderID {
	r := &ReaderID{cursor: c.offset + len(c.events)}
	c.readers = append(c.readers, r)
	return r
}

// Unregister forgets r so it no longer holds events back.
func (c *EventChannel[E]) Unregister(r *ReaderID) {
	for i, reader := range c.readers {
		if reader == r {
			c.readers = append(c.readers[:i], c.readers[i+1:]...)
			break
		}
	}
	c.compact()
}

// Write appends one event.
func (c *EventChannel[E]) Write(e E) {
	if len(c.readers) == 0 {
		c.offset++
		return
	}
	c.events = append(c.events, e)
}

// WriteAll appends events in order.
func (c *EventChannel[E]) WriteAll(events []E) {
	if len(c.readers) == 0 {
		c.offset += len(events)
		return
	}
	c.events = append(c.events, events...)
}

// Read returns every event r has not seen yet and moves r past them.
// The returned slice must not be modified.
func (c *EventChannel[E]) Read(r *ReaderID) []E {
	start := max(r.cursor-c.offset, 0)
	if start >= len(c.events) {
		r.cursor = c.offset + len(c.events)
		return nil
	}
	out := make([]E, len(c.events)-start)
	copy(out, c.events[start:])
	r.cursor = c.offset + len(c.events)
	c.compact()
	return out
}

// Pending returns how many events r has not read yet.
func (c *EventChannel[E]) Pending(r *ReaderID) int {
	return c.offset + len(c.events) - max(r.cursor, c.offset)
}

// Len returns the number of buffered events.
func (c *EventChannel[E]) Len() int {
	return len(c.events)
}

func (c *EventChannel[E]) compact() {
	if len(c.readers) == 0 {
		c.offset += len(c.events)
		c.events = c.events[:0]
		return
	}
	low := c.readers[0].cursor
	for _, r := range c.readers[1:] {
		low = min(low, r.cursor)
	}
	drop := low - c.offset
	if drop <= 0 {
		return
	}
	n := copy(c.events, c.events[drop:])
	clear(c.events[n:])
	c.events = c.events[:n]
	c.offset = low
}
