// Package usecase provides testify mocks for the usecase interfaces.
package usecase

import (
	"context"

	"github.com/norrisng/FcomServer/internal/domain/entity"
	uc "github.com/norrisng/FcomServer/internal/usecase"

	"github.com/stretchr/testify/mock"
)

// MockRegistrationUsecase is a testify mock of usecase.RegistrationUsecase.
type MockRegistrationUsecase struct {
	mock.Mock
}

func NewMockRegistrationUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRegistrationUsecase {
	m := &MockRegistrationUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRegistrationUsecase) Register(ctx context.Context, externalID int64, displayName, channelID string) (string, error) {
	args := m.Called(ctx, externalID, displayName, channelID)

	return args.String(0), args.Error(1)
}

func (m *MockRegistrationUsecase) Confirm(ctx context.Context, token, callsign string) (*entity.Binding, error) {
	args := m.Called(ctx, token, callsign)

	var binding *entity.Binding
	if args.Get(0) != nil {
		binding = args.Get(0).(*entity.Binding)
	}

	return binding, args.Error(1)
}

func (m *MockRegistrationUsecase) LookupByToken(ctx context.Context, token string) (*entity.Binding, error) {
	args := m.Called(ctx, token)

	var binding *entity.Binding
	if args.Get(0) != nil {
		binding = args.Get(0).(*entity.Binding)
	}

	return binding, args.Error(1)
}

func (m *MockRegistrationUsecase) LookupByExternalID(ctx context.Context, externalID int64) (*entity.Binding, error) {
	args := m.Called(ctx, externalID)

	var binding *entity.Binding
	if args.Get(0) != nil {
		binding = args.Get(0).(*entity.Binding)
	}

	return binding, args.Error(1)
}

func (m *MockRegistrationUsecase) RemoveByToken(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)

	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationUsecase) RemoveByExternalID(ctx context.Context, externalID int64) (bool, error) {
	args := m.Called(ctx, externalID)

	return args.Bool(0), args.Error(1)
}

func (m *MockRegistrationUsecase) PruneExpired(ctx context.Context) (int64, error) {
	args := m.Called(ctx)

	return args.Get(0).(int64), args.Error(1)
}

// MockRelayUsecase is a testify mock of usecase.RelayUsecase.
type MockRelayUsecase struct {
	mock.Mock
}

func NewMockRelayUsecase(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockRelayUsecase {
	m := &MockRelayUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRelayUsecase) Submit(ctx context.Context, input uc.SubmitInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *MockRelayUsecase) Drain(ctx context.Context) ([]*entity.AggregatedMessage, error) {
	args := m.Called(ctx)

	var msgs []*entity.AggregatedMessage
	if args.Get(0) != nil {
		msgs = args.Get(0).([]*entity.AggregatedMessage)
	}

	return msgs, args.Error(1)
}
