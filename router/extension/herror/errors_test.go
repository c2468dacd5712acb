package herror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stadtwache/stadtwache/repository"
)

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err  error
		code int
	}{
		{BadRequest("bad"), http.StatusBadRequest},
		{Unauthorized(), http.StatusUnauthorized},
		{Forbidden("nope"), http.StatusForbidden},
		{NotFound(), http.StatusNotFound},
		{Conflict(errors.New("dup")), http.StatusConflict},
	}
	for _, c := range cases {
		he, ok := c.err.(*echo.HTTPError)
		require.True(t, ok)
		assert.Equal(t, c.code, he.Code)
	}

	he := BadRequest("kaputt").(*echo.HTTPError)
	assert.Equal(t, "kaputt", he.Message)

	he = BadRequest(repository.ArgError("status", "invalid status")).(*echo.HTTPError)
	assert.Equal(t, "status: invalid status", he.Message)
}

func TestInternalServerError(t *testing.T) {
	t.Parallel()

	err := InternalServerError(errors.New("db down"))
	var ie *InternalError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, ie.Error(), "db down")
	assert.NotEmpty(t, ie.Stack)
	assert.NotEmpty(t, ie.Fields)
}
