// Package repository provides testify mocks for the persistence interfaces.
package repository

import (
	"context"
	"time"

	"github.com/norrisng/FcomServer/internal/domain/entity"

	"github.com/stretchr/testify/mock"
)

// MockBindingRepository is a testify mock of repository.BindingRepository.
type MockBindingRepository struct {
	mock.Mock
}

func NewMockBindingRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockBindingRepository {
	m := &MockBindingRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBindingRepository) Create(ctx context.Context, binding *entity.Binding) error {
	args := m.Called(ctx, binding)

	return args.Error(0)
}

func (m *MockBindingRepository) FindByToken(ctx context.Context, token string) (*entity.Binding, error) {
	args := m.Called(ctx, token)

	var binding *entity.Binding
	if args.Get(0) != nil {
		binding = args.Get(0).(*entity.Binding)
	}

	return binding, args.Error(1)
}

func (m *MockBindingRepository) FindByExternalID(ctx context.Context, externalID int64) (*entity.Binding, error) {
	args := m.Called(ctx, externalID)

	var binding *entity.Binding
	if args.Get(0) != nil {
		binding = args.Get(0).(*entity.Binding)
	}

	return binding, args.Error(1)
}

func (m *MockBindingRepository) UpdateConfirmation(ctx context.Context, token, callsign string, lastUpdated time.Time) error {
	args := m.Called(ctx, token, callsign, lastUpdated)

	return args.Error(0)
}

func (m *MockBindingRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)

	return args.Bool(0), args.Error(1)
}

func (m *MockBindingRepository) DeleteByExternalID(ctx context.Context, externalID int64) (bool, error) {
	args := m.Called(ctx, externalID)

	return args.Bool(0), args.Error(1)
}

func (m *MockBindingRepository) DeleteExpired(ctx context.Context, unverifiedBefore, verifiedBefore time.Time) (int64, error) {
	args := m.Called(ctx, unverifiedBefore, verifiedBefore)

	return args.Get(0).(int64), args.Error(1)
}
