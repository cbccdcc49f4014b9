package validator

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  *string  `validate:"required"`
	Items []string `validate:"required,min=1"`
}

func TestValidate_PassesCompleteStruct(t *testing.T) {
	t.Parallel()

	name := "ok"
	v := New()

	assert.NoError(t, v.Validate(&sampleRequest{Name: &name, Items: []string{"a"}}))
}

func TestValidate_ReportsMissingFieldsAsBadRequest(t *testing.T) {
	t.Parallel()

	v := New()
	err := v.Validate(&sampleRequest{Items: []string{}})

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}
