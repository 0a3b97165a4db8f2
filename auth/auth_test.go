package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HasanApplore/IndoSup-sub000/models"
)

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.NoError(t, CheckPassword(hash, "s3cret"))
	assert.ErrorIs(t, CheckPassword(hash, "wrong"), ErrInvalidCredentials)
}

func TestCheckPassword_PlaintextStoredValue(t *testing.T) {
	// A legacy plaintext value is never accepted as a hash.
	assert.ErrorIs(t, CheckPassword("admin123", "admin123"), ErrInvalidCredentials)
}

func TestIssuer_IssueVerify(t *testing.T) {
	iss := NewIssuer("test-secret", time.Hour)
	admin := &models.AdminUser{ID: 7, Email: "admin@indosup.com", Role: models.AdminRole}

	tok, err := iss.Issue(admin)
	require.NoError(t, err)

	claims, err := iss.Verify(tok)
	require.NoError(t, err)
	id, err := claims.AdminID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.Equal(t, "admin@indosup.com", claims.Email)
	assert.Equal(t, models.AdminRole, claims.Role)
}

func TestIssuer_RejectsExpired(t *testing.T) {
	iss := NewIssuer("test-secret", time.Minute)
	start := time.Now()
	iss.now = func() time.Time { return start }

	tok, err := iss.Issue(&models.AdminUser{ID: 1, Email: "a@b.c"})
	require.NoError(t, err)

	iss.now = func() time.Time { return start.Add(2 * time.Minute) }
	_, err = iss.Verify(tok)
	assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
}

func TestIssuer_RejectsForeignKey(t *testing.T) {
	tok, err := NewIssuer("one", time.Hour).Issue(&models.AdminUser{ID: 1})
	require.NoError(t, err)

	_, err = NewIssuer("two", time.Hour).Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssuer_RejectsGarbage(t *testing.T) {
	_, err := NewIssuer("k", time.Hour).Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
