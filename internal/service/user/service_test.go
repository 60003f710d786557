package user

import (
	"context"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"usersvc/internal/model"
)

// fakeStore is an in-memory Store that mirrors the repository's
// contract, including pgx.ErrNoRows on absent ids.
type fakeStore struct {
	users  map[int]model.User
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int]model.User), nextID: 1}
}

func (f *fakeStore) List(ctx context.Context) ([]model.User, error) {
	ids := make([]int, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	users := []model.User{}
	for _, id := range ids {
		users = append(users, f.users[id])
	}
	return users, nil
}

func (f *fakeStore) Create(ctx context.Context, u *model.User) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = *u
	return nil
}

func (f *fakeStore) GetByID(ctx context.Context, id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &u, nil
}

func (f *fakeStore) Update(ctx context.Context, u *model.User) error {
	f.users[u.ID] = *u
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id int) error {
	delete(f.users, id)
	return nil
}

func newTestService() *Service {
	return NewService(newFakeStore(), zap.NewNop())
}

func TestService_Create(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	u, err := svc.Create(ctx, "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	assert.Positive(t, u.ID)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "secret", u.Password)
}

func TestService_GetByID_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Update_FullReplace(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "A", "a@x.com", "p")
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, "B", "b@x.com", "p2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "B", got.Name)
	assert.Equal(t, "b@x.com", got.Email)
	assert.Equal(t, "p2", got.Password)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.Update(context.Background(), 7, "B", "b@x.com", "p2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_Delete_ReturnsLastState(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "Alice", "alice@example.com", "secret")
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, deleted)

	_, err = svc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Delete(ctx, created.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_List(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	first, err := svc.Create(ctx, "Alice", "alice@example.com", "p1")
	require.NoError(t, err)
	second, err := svc.Create(ctx, "Bob", "bob@example.com", "p2")
	require.NoError(t, err)

	users, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, *first, users[0])
	assert.Equal(t, *second, users[1])

	_, err = svc.Delete(ctx, first.ID)
	require.NoError(t, err)

	users, err = svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, *second, users[0])
}
