package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	d1, err := h.Hash("Secret123")
	require.NoError(t, err)
	d2, err := h.Hash("Secret123")
	require.NoError(t, err)

	// соль случайная — digest каждый раз разный
	assert.NotEqual(t, d1, d2)
	assert.NotContains(t, d1, "Secret123")

	assert.True(t, h.Verify("Secret123", d1))
	assert.True(t, h.Verify("Secret123", d2))
	assert.False(t, h.Verify("secret123", d1))
	assert.False(t, h.Verify("", d1))
}

func TestPasswordHasher_LongPassword(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	long := strings.Repeat("Ab1", 33) // 99 байт, больше лимита bcrypt

	d, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(long, d))
	// отличие за пределами 72 байт всё равно учитывается
	assert.False(t, h.Verify(long[:98]+"X", d))
}

func TestPasswordHasher_MalformedDigest(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)
	for _, digest := range []string{"", "plain", "$2a$", "$2a$04$short", strings.Repeat("x", 60)} {
		assert.False(t, h.Verify("Secret123", digest), "digest %q", digest)
	}
	// dummy-хэш не должен открывать доступ даже к своему исходному паролю через мусорный digest
	assert.False(t, h.Verify("vault-dummy-password", "garbage"))
}

func TestPasswordHasher_CostClamp(t *testing.T) {
	h := NewPasswordHasher(1)
	d, err := h.Hash("Secret123")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(d))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}
