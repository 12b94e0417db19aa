package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "golang.org/x/crypto/bcrypt"
)

func TestNewAccessToken(t *testing.T) {
    const secret = "test-secret"

    at, err := NewAccessToken(secret, 42, "CUSTOMER", 15)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().UTC().Add(15*time.Minute), at.Exp, 2*time.Second)

    tok, err := jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    require.True(t, tok.Valid)

    claims, ok := tok.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.EqualValues(t, 42, claims["sub"])
    assert.Equal(t, "CUSTOMER", claims["role"])

    // Wrong secret must fail verification.
    _, err = jwt.Parse(at.Token, func(t *jwt.Token) (interface{}, error) {
        return []byte("other-secret"), nil
    })
    assert.Error(t, err)
}

func TestNewRefreshToken(t *testing.T) {
    a, err := NewRefreshToken(30)
    require.NoError(t, err)
    b, err := NewRefreshToken(30)
    require.NoError(t, err)

    assert.Len(t, a.Raw, 96)
    assert.NotEqual(t, a.Raw, b.Raw)
    assert.WithinDuration(t, time.Now().UTC().Add(30*24*time.Hour), a.Exp, 2*time.Second)
}

func TestHashRefreshRaw(t *testing.T) {
    h1 := HashRefreshRaw("token-a")
    h2 := HashRefreshRaw("token-a")
    h3 := HashRefreshRaw("token-b")

    assert.Equal(t, h1, h2)
    assert.NotEqual(t, h1, h3)
    assert.Len(t, h1, 64)
    assert.NotContains(t, h1, "token-a")
}

func TestPasswordHashing(t *testing.T) {
    hash, err := HashPassword("s3cret", 4)
    require.NoError(t, err)
    assert.True(t, VerifyPassword(hash, "s3cret"))
    assert.False(t, VerifyPassword(hash, "wrong"))

    t.Run("out-of-range cost falls back to the bcrypt default", func(t *testing.T) {
        hash, err := HashPassword("s3cret", 99)
        require.NoError(t, err)
        cost, err := bcrypt.Cost([]byte(hash))
        require.NoError(t, err)
        assert.Equal(t, bcrypt.DefaultCost, cost)
    })

    t.Run("malformed hash never verifies", func(t *testing.T) {
        assert.False(t, VerifyPassword("not-a-bcrypt-hash", "s3cret"))
    })
}
