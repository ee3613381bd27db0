package postgres

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

// openTestStore needs a disposable database in TEST_POSTGRES_DSN.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set")
	}
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	require.NoError(t, RunMigrations(dsn, filepath.Join("..", "..", "..", "db", "migrations"), logger))

	ctx := context.Background()
	pool, err := NewPool(ctx, dsn, 4, 1, time.Minute)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `TRUNCATE tasks, users`)
	require.NoError(t, err)

	s := NewStore(pool, 5*time.Second)
	t.Cleanup(func() { _ = s.Close(ctx) })
	return s
}

func TestUserRepository_Postgres(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	users := s.Users()

	ann := &entity.User{Name: "Annabel", Email: "a@x.com", Password: "hash", Role: entity.RoleClient}
	require.NoError(t, users.Create(ctx, ann))
	require.True(t, validID(ann.ID))
	require.NoError(t, users.Create(ctx, &entity.User{Name: "a.n", Email: "dot@x.com"}))

	assert.ErrorIs(t, users.Create(ctx, &entity.User{Email: "a@x.com"}), repository.ErrDuplicateEmail)

	got, err := users.GetByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "Annabel", got.Name)
	assert.Equal(t, []string{}, got.Comments)

	_, err = users.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
	_, err = users.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	found, err := users.SearchByName(ctx, "ANN")
	require.NoError(t, err)
	require.Len(t, found, 1)
	literal, err := users.SearchByName(ctx, "a.n")
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "a.n", literal[0].Name)

	company := "Acme"
	comments := []string{"vip"}
	updated, err := users.Update(ctx, ann.ID, entity.UserPatch{Company: &company, Comments: &comments})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "hash", updated.Password)
	assert.Equal(t, []string{"vip"}, updated.Comments)

	taken := "dot@x.com"
	_, err = users.Update(ctx, ann.ID, entity.UserPatch{Email: &taken})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	deleted, err := users.Delete(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, ann.ID, deleted.ID)
	_, err = users.Delete(ctx, ann.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_Postgres(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ann := &entity.User{Name: "Ann", Email: "a@x.com"}
	require.NoError(t, s.Users().Create(ctx, ann))

	tasks := s.Tasks()
	task := &entity.Task{ClientID: ann.ID, DateStart: "2024-01-01", DateEnd: "2024-01-02", Description: "work"}
	require.NoError(t, tasks.Create(ctx, task))
	require.NoError(t, tasks.Create(ctx, &entity.Task{ClientID: uuid.NewString(), Description: "orphan"}))
	assert.ErrorIs(t, tasks.Create(ctx, &entity.Task{ClientID: "bogus"}), repository.ErrInvalidID)

	list, err := tasks.ListWithClient(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Client)
	assert.Equal(t, "Ann", list[0].Client.Name)
	assert.Nil(t, list[1].Client)

	byName, err := tasks.SearchByClientName(ctx, "Ann")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, task.ID, byName[0].ID)

	desc := "more work"
	updated, err := tasks.Update(ctx, task.ID, entity.TaskPatch{Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "more work", updated.Description)
	assert.Equal(t, "2024-01-01", updated.DateStart)

	_, err = s.Users().Delete(ctx, ann.ID)
	require.NoError(t, err)
	still, err := tasks.GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, ann.ID, still.ClientID)

	_, err = tasks.Delete(ctx, task.ID)
	require.NoError(t, err)
	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
