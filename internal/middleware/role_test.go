package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/train-station-booking/internal/utils"
)

func okHandler(c echo.Context) error { return c.String(http.StatusOK, "ok") }

func TestRequireRole(t *testing.T) {
    e := echo.New()

    run := func(role interface{}, allowed ...string) int {
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        if role != nil {
            c.Set("role", role)
        }
        h := RequireRole(allowed...)(okHandler)
        require.NoError(t, h(c))
        return rec.Code
    }

    t.Run("allows listed role", func(t *testing.T) {
        assert.Equal(t, http.StatusOK, run("ADMIN", "ADMIN"))
        assert.Equal(t, http.StatusOK, run("CUSTOMER", "CUSTOMER", "ADMIN"))
    })

    t.Run("rejects other roles", func(t *testing.T) {
        assert.Equal(t, http.StatusForbidden, run("CUSTOMER", "ADMIN"))
    })

    t.Run("rejects missing or malformed role", func(t *testing.T) {
        assert.Equal(t, http.StatusForbidden, run(nil, "ADMIN"))
        assert.Equal(t, http.StatusForbidden, run(123, "ADMIN"))
    })
}

func TestJWTAuth(t *testing.T) {
    const secret = "test-secret"
    e := echo.New()

    run := func(authHeader string) (int, echo.Context) {
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        if authHeader != "" {
            req.Header.Set("Authorization", authHeader)
        }
        rec := httptest.NewRecorder()
        c := e.NewContext(req, rec)
        h := JWTAuth(secret)(okHandler)
        require.NoError(t, h(c))
        return rec.Code, c
    }

    t.Run("valid token populates context", func(t *testing.T) {
        at, err := utils.NewAccessToken(secret, 42, "CUSTOMER", 5)
        require.NoError(t, err)

        code, c := run("Bearer " + at.Token)
        assert.Equal(t, http.StatusOK, code)
        assert.EqualValues(t, 42, c.Get("user_id"))
        assert.Equal(t, "CUSTOMER", c.Get("role"))
    })

    t.Run("missing header", func(t *testing.T) {
        code, _ := run("")
        assert.Equal(t, http.StatusUnauthorized, code)
    })

    t.Run("wrong secret", func(t *testing.T) {
        at, err := utils.NewAccessToken("other-secret", 42, "CUSTOMER", 5)
        require.NoError(t, err)
        code, _ := run("Bearer " + at.Token)
        assert.Equal(t, http.StatusUnauthorized, code)
    })

    t.Run("garbage token", func(t *testing.T) {
        code, _ := run("Bearer not.a.jwt")
        assert.Equal(t, http.StatusUnauthorized, code)
    })
}
