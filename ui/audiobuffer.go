package ui

import (
	"io"
	"sync"
)

// AudioRingBuffer is a thread-safe ring buffer implementing io.Reader.
// The emulation goroutine writes PCM via Write() and oto's player
// pulls it back out via Read(). Read blocks when empty; Write never
// blocks and instead drops the oldest samples on overflow so a slow
// consumer cannot stall emulation.
type AudioRingBuffer struct {
	buf      []byte
	readPos  int
	writePos int
	count    int
	capacity int
	mu       sync.Mutex
	cond     *sync.Cond
	closed   bool
}

// NewAudioRingBuffer creates a ring buffer with the given capacity in bytes.
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	rb := &AudioRingBuffer{
		buf:      make([]byte, capacity),
		capacity: capacity,
	}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write adds data to the buffer without blocking. On overflow the
// oldest samples are dropped to make room.
func (rb *AudioRingBuffer) Write(p []byte) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed {
		return
	}

	n := len(p)
	if n == 0 {
		return
	}

	// Oversized writes keep only the newest capacity bytes
	if n > rb.capacity {
		p = p[n-rb.capacity:]
		n = rb.capacity
	}

	// Drop oldest data when space runs out
	overflow := rb.count + n - rb.capacity
	if overflow > 0 {
		rb.readPos = (rb.readPos + overflow) % rb.capacity
		rb.count -= overflow
	}

	// Copy in, wrapping at the end of the buffer
	firstChunk := rb.capacity - rb.writePos
	if firstChunk >= n {
		copy(rb.buf[rb.writePos:], p)
	} else {
		copy(rb.buf[rb.writePos:], p[:firstChunk])
		copy(rb.buf[0:], p[firstChunk:])
	}
	rb.writePos = (rb.writePos + n) % rb.capacity
	rb.count += n

	rb.cond.Signal()
}

// Read implements io.Reader. Blocks until data is available or the buffer
// is closed. Returns io.EOF when closed and empty.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 {
		if rb.closed {
			return 0, io.EOF
		}
		rb.cond.Wait()
	}

	n := len(p)
	if n > rb.count {
		n = rb.count
	}

	// Copy out, wrapping at the end of the buffer
	firstChunk := rb.capacity - rb.readPos
	if firstChunk >= n {
		copy(p, rb.buf[rb.readPos:rb.readPos+n])
	} else {
		copy(p, rb.buf[rb.readPos:])
		copy(p[firstChunk:], rb.buf[:n-firstChunk])
	}
	rb.readPos = (rb.readPos + n) % rb.capacity
	rb.count -= n

	return n, nil
}

// Buffered returns the number of bytes currently in the buffer.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Clear resets the buffer, discarding all data.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
}

// Close signals shutdown. Subsequent Reads return io.EOF when the buffer
// is empty. Unblocks any goroutines waiting in Read.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.closed = true
	rb.cond.Broadcast()
}
