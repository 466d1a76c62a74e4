package monitor

import "sync"

// limitedBuffer caps captured output so a flooding program cannot
// balloon judge memory before truncation.
type limitedBuffer struct {
	mu  sync.Mutex
	max int64
	buf []byte
}

func newLimitedBuffer(max int64) *limitedBuffer {
	if max <= 0 {
		max = 64 * 1024
	}
	return &limitedBuffer{max: max}
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	remaining := b.max - int64(len(b.buf))
	if remaining > 0 {
		if int64(len(p)) > remaining {
			b.buf = append(b.buf, p[:remaining]...)
		} else {
			b.buf = append(b.buf, p...)
		}
	}
	// Report full writes so the child never sees a pipe error.
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
