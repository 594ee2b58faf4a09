package logging

import (
	"sync"
)

// ErrorSampler reduces log noise from a failing feed source.
// It lets the first failure through, then every Nth consecutive one.
type ErrorSampler struct {
	mu       sync.RWMutex
	counts   map[string]int
	interval int
}

// NewErrorSampler creates a sampler that logs the 1st, Nth, 2Nth... occurrence.
func NewErrorSampler(interval int) *ErrorSampler {
	if interval < 1 {
		interval = 10
	}
	return &ErrorSampler{
		counts:   make(map[string]int),
		interval: interval,
	}
}

// Sample records one occurrence of key and returns the running count
// together with whether this occurrence should be logged.
func (s *ErrorSampler) Sample(key string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counts[key]++
	count := s.counts[key]
	return count, count == 1 || count%s.interval == 0
}

// Count returns the consecutive occurrences recorded for key.
func (s *ErrorSampler) Count(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.counts[key]
}

// Reset clears key, typically after the source recovers.
func (s *ErrorSampler) Reset(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.counts, key)
}
