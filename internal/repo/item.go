package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"VaultKeeper/internal/model"
)

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
// Параметр ownerID != nil добавляет фильтр владельца прямо в запрос;
// nil означает выборку без ограничения (только для admin).
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64, ownerID *int64) (*model.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error)
	// ListAllWithOwner возвращает все записи с подгруженным владельцем.
	ListAllWithOwner(ctx context.Context) ([]model.Item, error)
	// SearchByOwner ищет подстроки nameQuery в name и noteQuery в note. Поиск всегда буквальный.
	SearchByOwner(ctx context.Context, ownerID int64, nameQuery, noteQuery string) ([]model.Item, error)
	Update(ctx context.Context, id int64, ownerID *int64, name, note string) (*model.Item, error)
	Delete(ctx context.Context, id int64, ownerID *int64) (bool, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func scoped(q *gorm.DB, ownerID *int64) *gorm.DB {
	if ownerID != nil {
		return q.Where("owner_id = ?", *ownerID)
	}
	return q
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64, ownerID *int64) (*model.Item, error) {
	var it model.Item
	q := scoped(r.db.WithContext(ctx).Where("id = ?", id), ownerID)
	if err := q.First(&it).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.Item, error) {
	items := []model.Item{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) ListAllWithOwner(ctx context.Context) ([]model.Item, error) {
	items := []model.Item{}
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) SearchByOwner(ctx context.Context, ownerID int64, nameQuery, noteQuery string) ([]model.Item, error) {
	items := []model.Item{}
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Where(`(name LIKE ? ESCAPE '\' OR note LIKE ? ESCAPE '\')`, likePattern(nameQuery), likePattern(noteQuery)).
		Order("id").
		Find(&items).Error
	return items, err
}

func (r *itemRepo) Update(ctx context.Context, id int64, ownerID *int64, name, note string) (*model.Item, error) {
	var it model.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// owner_id в обновление не входит никогда
		res := scoped(tx.Model(&model.Item{}).Where("id = ?", id), ownerID).
			Updates(map[string]any{"name": name, "note": note})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.First(&it, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) Delete(ctx context.Context, id int64, ownerID *int64) (bool, error) {
	res := scoped(r.db.WithContext(ctx).Where("id = ?", id), ownerID).Delete(&model.Item{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern превращает пользовательский ввод в буквальный LIKE-шаблон "содержит".
func likePattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}
