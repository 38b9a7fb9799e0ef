package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"VaultKeeper/internal/cli/repo"
)

// ErrNoToken — токен ещё не сохранён (не выполнен login).
var ErrNoToken = errors.New("not logged in")

// AuthFSStore — файловое хранилище токена сессии для CLI.
type AuthFSStore struct{}

var _ repo.TokenStore = AuthFSStore{}

func tokenPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "VaultKeeper")
	if err := os.MkdirAll(p, 0o700); err != nil {
		return "", err
	}
	return filepath.Join(p, "auth_token"), nil
}

// Save сохраняет токен в файл, доступный только владельцу.
func (AuthFSStore) Save(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("empty token")
	}
	p, err := tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(token), 0o600)
}

// Load читает токен; отсутствующий или пустой файл — ErrNoToken.
func (AuthFSStore) Load() (string, error) {
	p, err := tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	tok := strings.TrimSpace(string(b))
	if tok == "" {
		return "", ErrNoToken
	}
	return tok, nil
}

// Clear удаляет сохранённый токен. Отсутствие файла ошибкой не считается.
func (AuthFSStore) Clear() error {
	p, err := tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
