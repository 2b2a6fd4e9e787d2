package authenticator_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/threadhub-lab/backend/pkg/authenticator"
)

type tokenObject struct {
	ID string `json:"id"`
}

func TestJWT(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(time.Minute, tokenObject{ID: "abc"})
	require.NoError(t, err)

	var obj tokenObject
	require.NoError(t, engine.Verify(token, &obj))
	require.Equal(t, "abc", obj.ID)
}

func TestJWTExpiration(t *testing.T) {
	engine := authenticator.NewTokenEngine("secret")
	token, err := engine.Generate(-time.Minute, tokenObject{ID: "abc"})
	require.NoError(t, err)

	var obj tokenObject
	require.Error(t, engine.Verify(token, &obj))
}

func TestJWTWrongSecret(t *testing.T) {
	token, err := authenticator.NewTokenEngine("secret").Generate(time.Minute, tokenObject{ID: "abc"})
	require.NoError(t, err)

	var obj tokenObject
	require.Error(t, authenticator.NewTokenEngine("other").Verify(token, &obj))
}
