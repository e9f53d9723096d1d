package auth

import (
	"testing"
	"time"

	"github.com/alexanderramin/rebound/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *domain.User {
	return &domain.User{ID: "u-1", Role: domain.RoleTeacher}
}

func TestManager_SessionRoundTrip(t *testing.T) {
	m := NewManager("secret", time.Hour, time.Minute)

	raw, err := m.IssueSession(testUser(), time.Now())
	require.NoError(t, err)

	claims, err := m.Parse(raw, PurposeSession)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID())
	assert.Equal(t, domain.RoleTeacher, claims.Role)
}

func TestManager_Expired(t *testing.T) {
	m := NewManager("secret", time.Hour, time.Minute)

	raw, err := m.IssueSession(testUser(), time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.Parse(raw, PurposeSession)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_WrongSecret(t *testing.T) {
	raw, err := NewManager("secret", time.Hour, time.Minute).IssueSession(testUser(), time.Now())
	require.NoError(t, err)

	_, err = NewManager("other", time.Hour, time.Minute).Parse(raw, PurposeSession)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_PurposeSeparation(t *testing.T) {
	m := NewManager("secret", time.Hour, time.Minute)

	reset, err := m.IssueReset(testUser(), time.Now())
	require.NoError(t, err)

	_, err = m.Parse(reset, PurposeSession)
	assert.ErrorIs(t, err, ErrWrongPurpose)

	claims, err := m.Parse(reset, PurposeReset)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID())
}

func TestManager_Garbage(t *testing.T) {
	m := NewManager("secret", time.Hour, time.Minute)
	_, err := m.Parse("not-a-token", PurposeSession)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
