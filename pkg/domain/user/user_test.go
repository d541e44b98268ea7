package user_test

import (
	"testing"

	"github.com/leotinoco7/supertrunfo/pkg/domain"
	"github.com/leotinoco7/supertrunfo/pkg/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNew_HashesPassword(t *testing.T) {
	u, err := user.New("Alice", "alice@example.com", "529.982.247-25", "secret123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", u.Password)
	assert.True(t, u.CheckPassword("secret123"))
	assert.False(t, u.CheckPassword("nope"))
	assert.Equal(t, "52998224725", u.CPF)
	assert.False(t, u.IsAdmin)
	assert.True(t, u.Balance.IsZero())
}

func TestNew_LowerCasesEmail(t *testing.T) {
	u, err := user.New("Alice", "  Alice@Example.COM ", "52998224725", "secret123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", u.Email)
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "a@x.com", user.NormalizeEmail(" A@X.com\t"))
	assert.Equal(t, "", user.NormalizeEmail("   "))
}

func TestNew_Validation(t *testing.T) {
	testCases := []struct {
		desc                       string
		name, email, cpf, password string
	}{
		{"empty name", " ", "a@x.com", "111", "pw"},
		{"empty email", "A", "", "111", "pw"},
		{"empty cpf", "A", "a@x.com", "..-", "pw"},
		{"empty password", "A", "a@x.com", "111", ""},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			u, err := user.New(tc.name, tc.email, tc.cpf, tc.password, bcrypt.MinCost)
			require.ErrorIs(t, err, domain.ErrValidation)
			assert.Nil(t, u)
		})
	}
}

func TestErrIdentityInUse(t *testing.T) {
	assert.ErrorIs(t, user.ErrIdentityInUse, domain.ErrAlreadyExists)
	assert.ErrorIs(t, user.ErrInvalidCredentials, domain.ErrUnauthorized)
}
