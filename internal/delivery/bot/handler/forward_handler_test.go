package handler

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/norrisng/FcomServer/internal/domain/entity"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/domain/service"
	mockService "github.com/norrisng/FcomServer/internal/mocks/service"
	mockUC "github.com/norrisng/FcomServer/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newForwardFixture(t *testing.T) (*ForwardHandler, *mockUC.MockRegistrationUsecase, *mockService.MockChannelResolver, *mockService.MockChatSession) {
	t.Helper()

	registrationUC := mockUC.NewMockRegistrationUsecase(t)
	resolver := mockService.NewMockChannelResolver(t)
	session := mockService.NewMockChatSession(t)

	h := NewForwardHandler(ForwardHandlerParams{
		RegistrationUC: registrationUC,
		Resolver:       resolver,
		Session:        session,
		Logger:         newTestLogger(),
	})

	return h, registrationUC, resolver, session
}

func TestForward_SendsFormattedFrequencyMessage(t *testing.T) {
	t.Parallel()

	h, registrationUC, resolver, session := newForwardFixture(t)

	registrationUC.On("LookupByToken", mock.Anything, "T1").
		Return(&entity.Binding{Token: "T1", ExternalID: 42}, nil)
	resolver.On("Resolve", mock.Anything, int64(42)).Return("chan-42", nil)
	session.On("SendMessage", mock.Anything, "chan-42", "**N123AB (124.50 MHz):**\nhi").Return(nil)

	h.Forward(context.Background(), []*entity.AggregatedMessage{
		{Token: "T1", Sender: "N123AB", Receiver: "@12450", Message: "hi"},
	})
}

func TestForward_SendsPlainCallsignMessage(t *testing.T) {
	t.Parallel()

	h, registrationUC, resolver, session := newForwardFixture(t)

	registrationUC.On("LookupByToken", mock.Anything, "T1").
		Return(&entity.Binding{Token: "T1", ExternalID: 42}, nil)
	resolver.On("Resolve", mock.Anything, int64(42)).Return("chan-42", nil)
	session.On("SendMessage", mock.Anything, "chan-42", "**EGLL_TWR**:\ncleared to land").Return(nil)

	h.Forward(context.Background(), []*entity.AggregatedMessage{
		{Token: "T1", Sender: "EGLL_TWR", Receiver: "BAW123", Message: "cleared to land"},
	})
}

func TestForward_FailureIsIsolatedPerUnit(t *testing.T) {
	t.Parallel()

	h, registrationUC, resolver, session := newForwardFixture(t)

	// First unit's binding is gone; the second must still be delivered.
	registrationUC.On("LookupByToken", mock.Anything, "gone").
		Return(nil, repository.ErrBindingNotFound)
	registrationUC.On("LookupByToken", mock.Anything, "T2").
		Return(&entity.Binding{Token: "T2", ExternalID: 7}, nil)
	resolver.On("Resolve", mock.Anything, int64(7)).Return("chan-7", nil)
	session.On("SendMessage", mock.Anything, "chan-7", mock.Anything).Return(nil)

	h.Forward(context.Background(), []*entity.AggregatedMessage{
		{Token: "gone", Sender: "A", Receiver: "B", Message: "lost"},
		{Token: "T2", Sender: "C", Receiver: "D", Message: "kept"},
	})
}

func TestForward_PermissionDenialDropsUnit(t *testing.T) {
	t.Parallel()

	h, registrationUC, resolver, session := newForwardFixture(t)

	registrationUC.On("LookupByToken", mock.Anything, "T1").
		Return(&entity.Binding{Token: "T1", ExternalID: 42}, nil)
	resolver.On("Resolve", mock.Anything, int64(42)).Return("chan-42", nil)
	session.On("SendMessage", mock.Anything, "chan-42", mock.Anything).
		Return(service.ErrPermissionDenied)

	// Must not panic or retry; the unit is logged and dropped.
	h.Forward(context.Background(), []*entity.AggregatedMessage{
		{Token: "T1", Sender: "A", Receiver: "B", Message: "hi"},
	})

	session.AssertNumberOfCalls(t, "SendMessage", 1)
}

func TestFormatContent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		unit     *entity.AggregatedMessage
		expected string
	}{
		{
			name:     "frequency receiver",
			unit:     &entity.AggregatedMessage{Sender: "N123AB", Receiver: "@12450", Message: "hi"},
			expected: "**N123AB (124.50 MHz):**\nhi",
		},
		{
			name:     "callsign receiver",
			unit:     &entity.AggregatedMessage{Sender: "EGLL_TWR", Receiver: "BAW123", Message: "hi"},
			expected: "**EGLL_TWR**:\nhi",
		},
		{
			name:     "aggregated body keeps newlines",
			unit:     &entity.AggregatedMessage{Sender: "EGLL_TWR", Receiver: "BAW123", Message: "one\ntwo"},
			expected: "**EGLL_TWR**:\none\ntwo",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, formatContent(tc.unit))
		})
	}
}
