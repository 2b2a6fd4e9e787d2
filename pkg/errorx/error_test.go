package errorx

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestError(t *testing.T) {
	err := New(NotFound, "Not found post %s", "p1")
	require.Equal(t, "Not found post p1", err.Error())
	require.Nil(t, err.Detail)

	withDetail := err.WithDetail(map[string]string{"id": "p1"})
	require.Equal(t, map[string]string{"id": "p1"}, withDetail.Detail)
	require.Nil(t, err.Detail)

	var errx Error
	require.True(t, errors.As(fmt.Errorf("wrapped: %w", withDetail), &errx))
	require.Equal(t, NotFound, errx.Code)
}

func TestCode_HTTPStatus(t *testing.T) {
	testCases := []struct {
		code Code
		want int
	}{
		{BadRequest, http.StatusBadRequest},
		{AlreadyExists, http.StatusBadRequest},
		{Unauthenticated, http.StatusUnauthorized},
		{PermissionDenied, http.StatusForbidden},
		{Banned, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{Unavailable, http.StatusServiceUnavailable},
		{Unknown.Code, http.StatusInternalServerError},
	}

	for _, tt := range testCases {
		require.Equal(t, tt.want, tt.code.HTTPStatus(), "code %d", tt.code)
	}
}
