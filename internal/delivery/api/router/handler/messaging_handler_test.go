package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/norrisng/FcomServer/internal/delivery/api/response"
	apivalidator "github.com/norrisng/FcomServer/internal/delivery/api/validator"
	"github.com/norrisng/FcomServer/internal/domain/repository"
	"github.com/norrisng/FcomServer/internal/errors"
	mockUC "github.com/norrisng/FcomServer/internal/mocks/usecase"
	"github.com/norrisng/FcomServer/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMessagingFixture(t *testing.T) (*MessagingHandler, *mockUC.MockRelayUsecase) {
	t.Helper()

	relayUC := mockUC.NewMockRelayUsecase(t)
	h := NewMessagingHandler(MessagingHandlerParams{
		RelayUC: relayUC,
		Logger:  newTestLogger(),
	})

	return h, relayUC
}

func postJSON(h *MessagingHandler, body string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	e.Validator = apivalidator.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messaging", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return rec, h.Submit(e.NewContext(req, rec))
}

const validBody = `{"token":"T1","messages":[{"timestamp":1000,"sender":"N123AB","receiver":"@12450","message":"hi"}]}`

func TestSubmitHandler_Accepted(t *testing.T) {
	t.Parallel()

	h, relayUC := newMessagingFixture(t)

	relayUC.On("Submit", mock.Anything, usecase.SubmitInput{
		Token:     "T1",
		Timestamp: "1000",
		Sender:    "N123AB",
		Receiver:  "@12450",
		Message:   "hi",
	}).Return(nil)

	rec, err := postJSON(h, validBody)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestSubmitHandler_RejectsNonJSON(t *testing.T) {
	t.Parallel()

	h, relayUC := newMessagingFixture(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/messaging", strings.NewReader("token=T1"))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()

	require.NoError(t, h.Submit(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	relayUC.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestSubmitHandler_MissingFields(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body string
	}{
		{name: "no token", body: `{"messages":[{"timestamp":1000,"sender":"a","receiver":"b","message":"hi"}]}`},
		{name: "null token", body: `{"token":null,"messages":[{"timestamp":1000,"sender":"a","receiver":"b","message":"hi"}]}`},
		{name: "empty messages", body: `{"token":"T1","messages":[]}`},
		{name: "message without sender", body: `{"token":"T1","messages":[{"timestamp":1000,"receiver":"b","message":"hi"}]}`},
		{name: "message without timestamp", body: `{"token":"T1","messages":[{"sender":"a","receiver":"b","message":"hi"}]}`},
		{name: "not json", body: `hello`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			h, relayUC := newMessagingFixture(t)

			rec, err := postJSON(h, tc.body)
			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body response.DetailResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Contains(t, body.Detail, "Missing parameter(s)")

			relayUC.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitHandler_ValidationFailure(t *testing.T) {
	t.Parallel()

	h, relayUC := newMessagingFixture(t)

	relayUC.On("Submit", mock.Anything, mock.Anything).
		Return(&usecase.ValidationError{Field: "sender", Reason: "sender must contain only letters, digits, underscores or hyphens"})

	body := `{"token":"T1","messages":[{"timestamp":1000,"sender":"this has spaces","receiver":"b","message":"hi"}]}`
	rec, err := postJSON(h, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var detail response.DetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Contains(t, detail.Detail, "sender")
}

func TestSubmitHandler_UnknownToken(t *testing.T) {
	t.Parallel()

	h, relayUC := newMessagingFixture(t)

	relayUC.On("Submit", mock.Anything, mock.Anything).Return(repository.ErrBindingNotFound)

	rec, err := postJSON(h, validBody)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var detail response.DetailResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "Provided token is not registered to any Discord user", detail.Detail)
}

func TestSubmitHandler_FaultEchoesRequestBody(t *testing.T) {
	t.Parallel()

	h, relayUC := newMessagingFixture(t)

	relayUC.On("Submit", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	rec, err := postJSON(h, validBody)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var fault response.FaultResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fault))
	assert.Equal(t, validBody, fault.RequestBody)
}

func TestSubmitHandler_StringTimestamp(t *testing.T) {
	t.Parallel()

	h, relayUC := newMessagingFixture(t)

	// A quoted timestamp is forwarded unquoted for validation downstream.
	relayUC.On("Submit", mock.Anything, mock.MatchedBy(func(in usecase.SubmitInput) bool {
		return in.Timestamp == "1000"
	})).Return(nil)

	body := `{"token":"T1","messages":[{"timestamp":"1000","sender":"N123AB","receiver":"BAW123","message":"hi"}]}`
	rec, err := postJSON(h, body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
