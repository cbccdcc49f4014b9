package repository

import (
	"context"

	"github.com/norrisng/FcomServer/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository is a testify mock of repository.MessageRepository.
type MockMessageRepository struct {
	mock.Mock
}

func NewMockMessageRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockMessageRepository {
	m := &MockMessageRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockMessageRepository) Insert(ctx context.Context, msg *entity.QueuedMessage) error {
	args := m.Called(ctx, msg)

	return args.Error(0)
}

func (m *MockMessageRepository) ListOrdered(ctx context.Context) ([]*entity.QueuedMessage, error) {
	args := m.Called(ctx)

	var msgs []*entity.QueuedMessage
	if args.Get(0) != nil {
		msgs = args.Get(0).([]*entity.QueuedMessage)
	}

	return msgs, args.Error(1)
}

func (m *MockMessageRepository) DeleteThrough(ctx context.Context, watermark int64) error {
	args := m.Called(ctx, watermark)

	return args.Error(0)
}
