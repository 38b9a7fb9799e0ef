package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"VaultKeeper/internal/auth"
	"VaultKeeper/internal/config"
	"VaultKeeper/internal/handlers"
	"VaultKeeper/internal/metrics"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"VaultKeeper/internal/service"
)

const testSecret = "handlers-test-secret-0123456789abcdef"

// testEnv — роутер поверх настоящих репозиториев на in-memory SQLite.
type testEnv struct {
	router http.Handler
	db     *gorm.DB
	users  repo.UserRepository
	items  repo.ItemRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := repo.InitDB(fmt.Sprintf("file:h_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := zap.NewNop().Sugar()
	cfg := &config.Config{AuthSecret: testSecret, TokenTTL: time.Hour}
	users := repo.NewUserRepository(db)
	items := repo.NewItemRepository(db)
	hasher := auth.NewPasswordHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService(cfg.AuthSecret, cfg.TokenTTL)

	userSvc := service.NewUserService(users, hasher, tokens, logger)
	itemSvc := service.NewItemService(items, logger)
	h := handlers.NewHandler(userSvc, itemSvc, tokens, metrics.New(), logger, cfg)

	return &testEnv{router: h.Router, db: db, users: users, items: items, hasher: hasher, tokens: tokens}
}

// seedUser создаёт пользователя напрямую в БД и выдаёт ему токен.
func (e *testEnv) seedUser(t *testing.T, email string, role model.Role) (*model.User, string) {
	t.Helper()
	digest, err := e.hasher.Hash("Passw0rd")
	require.NoError(t, err)
	u, err := e.users.CreateUser(t.Context(), &model.User{Email: email, Password: digest, Role: role})
	require.NoError(t, err)
	tok, _, err := e.tokens.Issue(auth.Principal{ID: u.ID, Role: u.Role})
	require.NoError(t, err)
	return u, tok
}

func (e *testEnv) seedItem(t *testing.T, ownerID int64, name string) *model.Item {
	t.Helper()
	it := &model.Item{OwnerID: ownerID, Name: name, Note: "note of " + name}
	require.NoError(t, e.items.Create(t.Context(), it))
	return it
}

// do выполняет запрос; token передаётся заголовком Authorization, если не пуст.
func (e *testEnv) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

type errorBody struct {
	Error   string `json:"error"`
	Details []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"details"`
}

type itemBody struct {
	ID         int64  `json:"id"`
	OwnerID    int64  `json:"owner_id"`
	OwnerEmail string `json:"owner_email"`
	Name       string `json:"name"`
	Note       string `json:"note"`
}

type userBody struct {
	ID    int64      `json:"id"`
	Email string     `json:"email"`
	Role  model.Role `json:"role"`
}
