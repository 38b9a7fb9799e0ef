package auth

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher — односторонний хэш паролей на bcrypt с настраиваемым cost.
// Пароль предварительно сводится через SHA-256, т.к. bcrypt обрезает ввод на 72 байтах.
type PasswordHasher struct {
	cost  int
	dummy []byte // digest для выравнивания времени проверки
}

// NewPasswordHasher создаёт хэшер. Cost за пределами [MinCost, MaxCost] приводится к границе.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	h := &PasswordHasher{cost: cost}
	h.dummy, _ = bcrypt.GenerateFromPassword(prehash("vault-dummy-password"), cost)
	return h
}

// Hash возвращает digest со встроенной случайной солью: два вызова дают разные строки.
func (h *PasswordHasher) Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword(prehash(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify сравнивает пароль с digest. Некорректный digest даёт false
// после полноценного сравнения с dummy-хэшем, так что по времени он неотличим от несовпадения.
func (h *PasswordHasher) Verify(plain, digest string) bool {
	target := []byte(digest)
	wellFormed := true
	if _, err := bcrypt.Cost(target); err != nil {
		target = h.dummy
		wellFormed = false
	}
	match := bcrypt.CompareHashAndPassword(target, prehash(plain)) == nil
	return wellFormed && match
}

// Burn тратит столько же CPU, сколько Verify, без результата.
// Используется при логине несуществующего пользователя.
func (h *PasswordHasher) Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(h.dummy, prehash(plain))
}

func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
