package commands

import (
	"errors"
	"strconv"

	"VaultKeeper/internal/cli/api"
	"VaultKeeper/internal/cli/repo/fs"
	"VaultKeeper/internal/config"
)

// authedClient создаёт клиента с сохранённым токеном.
func authedClient(cfg *config.Config) (*api.Client, error) {
	tok, err := Tokens.Load()
	if errors.Is(err, fs.ErrNoToken) {
		return nil, errors.New("not logged in, run `login` first")
	}
	if err != nil {
		return nil, err
	}
	return api.NewClient(cfg.ServerURL, tok), nil
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 0 {
		return 0, ErrUsage
	}
	return id, nil
}
