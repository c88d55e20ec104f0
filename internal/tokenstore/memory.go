package tokenstore

import (
	"context"
	"sync"
)

// Memory хранит токены в памяти процесса. Используется в тестах
// и в режиме, когда долговременное хранение не требуется.
type Memory struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

// NewMemory создаёт пустое хранилище в памяти.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveAccess(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = token
	return nil
}

func (m *Memory) SaveRefresh(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refresh = token
	return nil
}

func (m *Memory) Load(_ context.Context) (string, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.access, m.refresh, nil
}

func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access = ""
	m.refresh = ""
	return nil
}
