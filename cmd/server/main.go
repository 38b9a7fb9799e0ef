package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"VaultKeeper/internal/auth"
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/handlers"
	"VaultKeeper/internal/metrics"
	"VaultKeeper/internal/middleware"
	"VaultKeeper/internal/repo"
	"VaultKeeper/internal/service"
	"VaultKeeper/internal/validation"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.NewConfig()

	// создаём регистратор zap: json для production, консольный для разработки
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.LogFormat == "json" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}

	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		_ = logger.Sync()
	}()

	if err := cfg.Validate(); err != nil {
		sugar.Fatalw("invalid configuration", "error", err)
	}
	if cfg.UsesDevSecret() {
		sugar.Warnw("dev mode: tokens are signed with the public development secret, do not expose this server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	itemRepo := repo.NewItemRepository(gormDB)

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.AuthSecret, cfg.TokenTTL)

	userService := service.NewUserService(userRepo, hasher, tokens, sugar)
	itemService := service.NewItemService(itemRepo, sugar)

	if err := bootstrapAdmin(ctx, cfg, userService, sugar); err != nil {
		sugar.Fatalw("failed to create admin account", "error", err)
	}

	h := handlers.NewHandler(userService, itemService, tokens, metrics.New(), sugar, cfg)

	srv := &http.Server{
		Addr:              cfg.BaseURL,
		Handler:           h.Router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sugar.Infow("Starting server",
		"addr", cfg.BaseURL,
		"url", cfg.ServerURL,
		"https", cfg.EnableHTTPS,
		"token_ttl", cfg.TokenTTL,
		"bcrypt_cost", cfg.BcryptCost,
	)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			sugar.Errorw("graceful shutdown failed", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		sugar.Fatalw("Server failed", "error", err)
	}
	sugar.Infow("Server stopped")
}

// bootstrapAdmin создаёт администратора из ADMIN_EMAIL/ADMIN_PASSWORD, если его ещё нет.
// Пароль проходит те же правила, что и при регистрации.
func bootstrapAdmin(ctx context.Context, cfg *config.Config, users *service.UserService, logger *zap.SugaredLogger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}
	creds := validation.Registration{Email: cfg.AdminEmail, Password: cfg.AdminPassword}
	if err := validation.New().Struct(&creds); err != nil {
		return err
	}
	created, err := users.EnsureAdmin(ctx, creds.Email, creds.Password)
	if err != nil {
		return err
	}
	if created {
		logger.Infow("admin account created", "email", creds.Email)
	}
	return nil
}
