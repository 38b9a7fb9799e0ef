package commands

import (
	"context"
	"fmt"

	"VaultKeeper/internal/cli/api"
	"VaultKeeper/internal/config"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Create an account and store the session token" }
func (registerCmd) Usage() string       { return "register <email> [password]" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	password, err := passwordFrom(args, 1)
	if err != nil {
		return err
	}
	sess, err := api.NewClient(cfg.ServerURL, "").Register(ctx, args[0], password)
	if err != nil {
		return err
	}
	if err := Tokens.Save(sess.Token); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintf(Out, "Registered %s (id %d)\n", sess.User.Email, sess.User.ID)
	return nil
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Login and store the session token" }
func (loginCmd) Usage() string       { return "login <email> [password]" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrUsage
	}
	password, err := passwordFrom(args, 1)
	if err != nil {
		return err
	}
	sess, err := api.NewClient(cfg.ServerURL, "").Login(ctx, args[0], password)
	if err != nil {
		return err
	}
	if err := Tokens.Save(sess.Token); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintf(Out, "Logged in as %s (%s)\n", sess.User.Email, sess.User.Role)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored session token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if c, err := authedClient(cfg); err == nil {
		// ошибка сервера не мешает забыть токен локально
		_ = c.Logout(ctx)
	}
	if err := Tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Show the current account" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := authedClient(cfg)
	if err != nil {
		return err
	}
	u, err := c.Me(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "id:    %d\nemail: %s\nrole:  %s\n", u.ID, u.Email, u.Role)
	return nil
}

func init() {
	RegisterCmd(registerCmd{})
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(whoamiCmd{})
}
