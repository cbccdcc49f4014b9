// Package service provides testify mocks for the chat service interfaces.
package service

import (
	"context"

	"github.com/norrisng/FcomServer/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockChatSession is a testify mock of service.ChatSession.
type MockChatSession struct {
	mock.Mock
}

func NewMockChatSession(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChatSession {
	m := &MockChatSession{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockChatSession) Open(ctx context.Context) error {
	args := m.Called(ctx)

	return args.Error(0)
}

func (m *MockChatSession) Close() error {
	args := m.Called()

	return args.Error(0)
}

func (m *MockChatSession) CreateDirectChannel(ctx context.Context, externalID int64) (string, error) {
	args := m.Called(ctx, externalID)

	return args.String(0), args.Error(1)
}

func (m *MockChatSession) SendMessage(ctx context.Context, channelID, content string) error {
	args := m.Called(ctx, channelID, content)

	return args.Error(0)
}

func (m *MockChatSession) OnDirectMessage(handler service.DirectMessageHandler) {
	m.Called(handler)
}

func (m *MockChatSession) Disconnected() <-chan error {
	args := m.Called()

	return args.Get(0).(<-chan error)
}

// MockChannelResolver is a testify mock of service.ChannelResolver.
type MockChannelResolver struct {
	mock.Mock
}

func NewMockChannelResolver(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockChannelResolver {
	m := &MockChannelResolver{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockChannelResolver) Resolve(ctx context.Context, externalID int64) (string, error) {
	args := m.Called(ctx, externalID)

	return args.String(0), args.Error(1)
}
