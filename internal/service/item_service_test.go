package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"VaultKeeper/internal/auth"
	"VaultKeeper/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newItemSvc() (*ItemService, *mockItemRepo) {
	m := new(mockItemRepo)
	return NewItemService(m, zap.NewNop().Sugar()), m
}

func TestItemService_Get(t *testing.T) {
	ctx := context.Background()
	svc, m := newItemSvc()
	owner := auth.Principal{ID: 1, Role: model.RoleUser}
	other := auth.Principal{ID: 2, Role: model.RoleUser}
	admin := auth.Principal{ID: 3, Role: model.RoleAdmin}

	t.Run("owner sees item", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetByID", mock.Anything, int64(7), ownerIs(ptrInt64(1))).
			Return(&model.Item{ID: 7, OwnerID: 1, Name: "a"}, nil).Once()

		it, err := svc.Get(ctx, owner, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), it.ID)
		m.AssertExpectations(t)
	})

	t.Run("other user gets not found", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetByID", mock.Anything, int64(7), ownerIs(ptrInt64(2))).Return(nil, gorm.ErrRecordNotFound).Once()

		it, err := svc.Get(ctx, other, 7)
		assert.Nil(t, it)
		assert.ErrorIs(t, err, ErrNotFound)
		m.AssertExpectations(t)
	})

	t.Run("foreign row from storage is still hidden", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetByID", mock.Anything, int64(7), ownerIs(ptrInt64(2))).
			Return(&model.Item{ID: 7, OwnerID: 1}, nil).Once()

		_, err := svc.Get(ctx, other, 7)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("admin queries without owner filter", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetByID", mock.Anything, int64(7), ownerIs(nil)).
			Return(&model.Item{ID: 7, OwnerID: 1}, nil).Once()

		it, err := svc.Get(ctx, admin, 7)
		require.NoError(t, err)
		assert.Equal(t, int64(1), it.OwnerID)
		m.AssertExpectations(t)
	})

	t.Run("storage error is wrapped", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("GetByID", mock.Anything, int64(8), mock.Anything).Return(nil, errors.New("boom")).Once()

		_, err := svc.Get(ctx, owner, 8)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestItemService_CreateSanitizesNote(t *testing.T) {
	ctx := context.Background()
	svc, m := newItemSvc()
	p := auth.Principal{ID: 4, Role: model.RoleUser}

	m.On("Create", mock.Anything, mock.MatchedBy(func(it *model.Item) bool {
		return it.OwnerID == 4 && it.Name == "Notes" &&
			!strings.Contains(strings.ToLower(it.Note), "<script") &&
			strings.Contains(it.Note, "hello")
	})).Return(nil).Once()

	it, err := svc.Create(ctx, p, "Notes", `<script>alert("x")</script>hello`)
	require.NoError(t, err)
	assert.Equal(t, "hello", it.Note)
	m.AssertExpectations(t)
}

func TestItemService_Update(t *testing.T) {
	ctx := context.Background()
	svc, m := newItemSvc()
	p := auth.Principal{ID: 4, Role: model.RoleUser}

	m.On("Update", mock.Anything, int64(9), ownerIs(ptrInt64(4)), "n", "a &amp; b").
		Return(&model.Item{ID: 9, OwnerID: 4, Name: "n", Note: "a &amp; b"}, nil).Once()
	m.On("Update", mock.Anything, int64(10), ownerIs(ptrInt64(4)), "n", "").
		Return(nil, gorm.ErrRecordNotFound).Once()

	it, err := svc.Update(ctx, p, 9, "n", "a & b")
	require.NoError(t, err)
	assert.Equal(t, "a &amp; b", it.Note)

	_, err = svc.Update(ctx, p, 10, "n", "")
	assert.ErrorIs(t, err, ErrNotFound)
	m.AssertExpectations(t)
}

func TestItemService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, m := newItemSvc()
	user := auth.Principal{ID: 4, Role: model.RoleUser}
	admin := auth.Principal{ID: 1, Role: model.RoleAdmin}

	m.On("Delete", mock.Anything, int64(9), ownerIs(ptrInt64(4))).Return(false, nil).Once()
	m.On("Delete", mock.Anything, int64(9), ownerIs(nil)).Return(true, nil).Once()

	assert.ErrorIs(t, svc.Delete(ctx, user, 9), ErrNotFound)
	assert.NoError(t, svc.Delete(ctx, admin, 9))
	m.AssertExpectations(t)
}

func TestItemService_Search(t *testing.T) {
	ctx := context.Background()
	svc, m := newItemSvc()
	p := auth.Principal{ID: 4, Role: model.RoleUser}

	t.Run("empty query skips storage", func(t *testing.T) {
		m.ExpectedCalls = nil
		items, err := svc.Search(ctx, p, "")
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		m.AssertNotCalled(t, "SearchByOwner", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("note query is entity-encoded", func(t *testing.T) {
		m.ExpectedCalls = nil
		m.On("SearchByOwner", mock.Anything, int64(4), "a<b", "a&lt;b").
			Return([]model.Item{{ID: 1, OwnerID: 4}}, nil).Once()

		items, err := svc.Search(ctx, p, "a<b")
		require.NoError(t, err)
		assert.Len(t, items, 1)
		m.AssertExpectations(t)
	})
}

func TestItemService_Lists(t *testing.T) {
	ctx := context.Background()
	svc, m := newItemSvc()
	admin := auth.Principal{ID: 1, Role: model.RoleAdmin}

	m.On("ListByOwner", mock.Anything, int64(1)).Return([]model.Item{{ID: 1, OwnerID: 1}}, nil).Once()
	m.On("ListAllWithOwner", mock.Anything).Return([]model.Item{{ID: 1, OwnerID: 1}, {ID: 2, OwnerID: 5}}, nil).Once()

	own, err := svc.ListOwn(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, own, 1)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	m.AssertExpectations(t)
}
