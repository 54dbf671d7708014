package token

import (
	"testing"
	"time"

	"github.com/abhijeet1717/ecommerce-backend-go/internal/auth/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParse(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	signed, expiresAt, err := m.Generate("cust-1", domain.RoleCustomer)
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "cust-1", claims.CustomerID)
	assert.Equal(t, domain.RoleCustomer, claims.Role)
}

func TestParse_WrongSecret(t *testing.T) {
	m := NewManager("secret-a", time.Hour)
	signed, _, err := m.Generate("cust-1", domain.RoleAdmin)
	require.NoError(t, err)

	other := NewManager("secret-b", time.Hour)
	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := NewManager("test-secret", -time.Minute)
	signed, _, err := m.Generate("cust-1", domain.RoleCustomer)
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	_, err := m.Parse("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
