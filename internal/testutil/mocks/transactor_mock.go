package mocks

import (
	"context"

	"github.com/vytor/learnloop/internal/repository"
)

// MockTransactor runs every transaction directly against Stores.
type MockTransactor struct {
	Stores repository.Stores
	Calls  int
}

func (m *MockTransactor) WithinTx(ctx context.Context, fn func(repository.Stores) error) error {
	m.Calls++
	return fn(m.Stores)
}
