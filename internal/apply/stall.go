package apply

import (
	"context"
	"io"
	"sync"
	"time"
)

// stallReader wraps a download stream and cancels its context when no byte
// arrives for the stall duration, unblocking a Read stuck on a dead
// connection.
type stallReader struct {
	r     io.Reader
	stall time.Duration

	mu   sync.Mutex
	last time.Time
	done chan struct{}
	once sync.Once
}

func newStallReader(r io.Reader, stall time.Duration, cancel context.CancelFunc) *stallReader {
	reader := &stallReader{
		r:     r,
		stall: stall,
		last:  time.Now(),
		done:  make(chan struct{}),
	}
	go reader.watch(cancel)
	return reader
}

func (s *stallReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if n > 0 {
		s.mu.Lock()
		s.last = time.Now()
		s.mu.Unlock()
	}
	return n, err
}

func (s *stallReader) stop() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *stallReader) watch(cancel context.CancelFunc) {
	ticker := time.NewTicker(s.stall / 4)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			stalled := time.Since(s.last) > s.stall
			s.mu.Unlock()
			if stalled {
				cancel()
				return
			}
		}
	}
}
