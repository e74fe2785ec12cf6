package auth

import (
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthenticator(t *testing.T) {
	t.Parallel()

	t.Run("키가 없으면 비활성화", func(t *testing.T) {
		a := NewAuthenticator("  ")
		assert.False(t, a.Enabled())
		assert.NoError(t, a.Authenticate(""))
		assert.NoError(t, a.Authenticate("anything"))
	})

	t.Run("일치하는 키", func(t *testing.T) {
		a := NewAuthenticator("secret-key")
		assert.True(t, a.Enabled())
		assert.NoError(t, a.Authenticate("secret-key"))
	})

	for _, key := range []string{"", "wrong", "secret-key-2"} {
		t.Run("거부: "+key, func(t *testing.T) {
			a := NewAuthenticator("secret-key")

			err := a.Authenticate(key)
			require.Error(t, err)

			var he *echo.HTTPError
			require.True(t, errors.As(err, &he))
			assert.Equal(t, http.StatusUnauthorized, he.Code)
		})
	}
}
