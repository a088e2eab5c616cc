package api

import (
	"context"
	"sync"
)

type mockUpdater struct {
	mu       sync.Mutex
	RunFunc  func(ctx context.Context, gymName string) error
	RunCalls []string
}

func (m *mockUpdater) Run(ctx context.Context, gymName string) error {
	m.mu.Lock()
	m.RunCalls = append(m.RunCalls, gymName)
	m.mu.Unlock()
	if m.RunFunc == nil {
		return nil
	}
	return m.RunFunc(ctx, gymName)
}
