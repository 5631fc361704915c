package repository

import (
	"context"
	"sync"
	"time"
)

// MockCounter keeps counts in memory and never expires them. Err, when
// set, is returned from every call.
type MockCounter struct {
	mu     sync.Mutex
	Counts map[string]int64
	Err    error
}

func NewMockCounter() *MockCounter {
	return &MockCounter{
		Counts: make(map[string]int64),
	}
}

func (m *MockCounter) Increment(_ context.Context, key string, _ time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	m.Counts[key]++
	return m.Counts[key], nil
}
