package store

import (
	"context"
	"slices"
	"sync"
)

// Memory keeps the record in process. Training runs and tests use it.
type Memory struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return slices.Clone(m.data), nil
}

func (m *Memory) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = slices.Clone(data)
	m.saves++
	return nil
}

// Saves counts successful saves.
func (m *Memory) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
