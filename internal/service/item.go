package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"VaultKeeper/internal/auth"
	"VaultKeeper/internal/authz"
	"VaultKeeper/internal/model"
	"VaultKeeper/internal/repo"
	"VaultKeeper/internal/sanitize"
)

// ItemService инкапсулирует бизнес-логику работы с Item.
// Чужая запись для не-admin неотличима от отсутствующей: всегда ErrNotFound.
type ItemService struct {
	repo   repo.ItemRepository
	logger *zap.SugaredLogger
}

func NewItemService(r repo.ItemRepository, logger *zap.SugaredLogger) *ItemService {
	return &ItemService{repo: r, logger: logger}
}

// ListOwn — записи самого principal (для admin тоже только свои).
func (s *ItemService) ListOwn(ctx context.Context, p auth.Principal) ([]model.Item, error) {
	items, err := s.repo.ListByOwner(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list items of %d: %w", p.ID, err)
	}
	return items, nil
}

// ListAll — все записи с владельцами. Доступ проверяется на уровне маршрута.
func (s *ItemService) ListAll(ctx context.Context) ([]model.Item, error) {
	items, err := s.repo.ListAllWithOwner(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all items: %w", err)
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, p auth.Principal, id int64) (*model.Item, error) {
	it, err := s.repo.GetByID(ctx, id, authz.OwnerScope(p))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, err)
	}
	if !authz.CanAccessItem(p, it) {
		return nil, ErrNotFound
	}
	return it, nil
}

// Create сохраняет запись; note пишется только в санитизированном виде.
func (s *ItemService) Create(ctx context.Context, p auth.Principal, name, note string) (*model.Item, error) {
	it := &model.Item{OwnerID: p.ID, Name: name, Note: sanitize.Text(note)}
	if err := s.repo.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return it, nil
}

func (s *ItemService) Update(ctx context.Context, p auth.Principal, id int64, name, note string) (*model.Item, error) {
	it, err := s.repo.Update(ctx, id, authz.OwnerScope(p), name, sanitize.Text(note))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update item %d: %w", id, err)
	}
	return it, nil
}

func (s *ItemService) Delete(ctx context.Context, p auth.Principal, id int64) error {
	ok, err := s.repo.Delete(ctx, id, authz.OwnerScope(p))
	if err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	if !ok {
		return ErrNotFound
	}
	if p.IsAdmin() {
		s.logger.Infow("item deleted by admin", "item_id", id, "admin_id", p.ID)
	}
	return nil
}

// Search ищет по своим записям. Пустой запрос — пустой результат без обращения к БД.
// Для note запрос кодируется так же, как хранимое значение.
func (s *ItemService) Search(ctx context.Context, p auth.Principal, query string) ([]model.Item, error) {
	if query == "" {
		return []model.Item{}, nil
	}
	items, err := s.repo.SearchByOwner(ctx, p.ID, query, sanitize.EncodeEntities(query))
	if err != nil {
		return nil, fmt.Errorf("search items of %d: %w", p.ID, err)
	}
	return items, nil
}
