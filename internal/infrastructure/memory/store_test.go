package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

func strPtr(s string) *string { return &s }

func TestUserRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()

	u := &entity.User{Name: "Ann", Email: "a@x.com", Password: "hash", Role: entity.RoleClient}
	require.NoError(t, repo.Create(ctx, u))
	require.NotEmpty(t, u.ID)
	assert.Equal(t, []string{}, u.Comments)

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name)

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = repo.GetByEmail(ctx, "A@x.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	updated, err := repo.Update(ctx, u.ID, entity.UserPatch{Company: strPtr("Acme")})
	require.NoError(t, err)
	assert.Equal(t, "Acme", updated.Company)
	assert.Equal(t, "hash", updated.Password)

	deleted, err := repo.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme", deleted.Company)

	_, err = repo.GetByID(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Delete(ctx, u.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()

	a := &entity.User{Name: "Ann", Email: "a@x.com"}
	b := &entity.User{Name: "Bob", Email: "b@x.com"}
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	assert.ErrorIs(t, repo.Create(ctx, &entity.User{Email: "a@x.com"}), repository.ErrDuplicateEmail)

	_, err := repo.Update(ctx, b.ID, entity.UserPatch{Email: strPtr("a@x.com")})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	_, err = repo.Update(ctx, a.ID, entity.UserPatch{Email: strPtr("a@x.com")})
	assert.NoError(t, err, "rewriting your own email is not a conflict")

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUserRepository_InvalidAndUnknownIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()

	_, err := repo.GetByID(ctx, "nope")
	assert.ErrorIs(t, err, repository.ErrInvalidID)
	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.Update(ctx, uuid.NewString(), entity.UserPatch{Name: strPtr("x")})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUserRepository_SearchByName(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	for _, n := range []string{"Annabel", "Joanna", "Bob", "a.n"} {
		require.NoError(t, repo.Create(ctx, &entity.User{Name: n, Email: n + "@x.com"}))
	}

	found, err := repo.SearchByName(ctx, "ANN")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Annabel", found[0].Name)
	assert.Equal(t, "Joanna", found[1].Name)

	literal, err := repo.SearchByName(ctx, "a.n")
	require.NoError(t, err)
	require.Len(t, literal, 1)
	assert.Equal(t, "a.n", literal[0].Name)

	none, err := repo.SearchByName(ctx, "zed")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUserRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Users()
	u := &entity.User{Name: "Ann", Email: "a@x.com", Comments: []string{"one"}}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	got.Comments[0] = "mutated"

	again, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"one"}, again.Comments)
}

func TestTaskRepository_CRUDAndJoin(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	users, tasks := store.Users(), store.Tasks()

	ann := &entity.User{Name: "Ann", Email: "a@x.com"}
	require.NoError(t, users.Create(ctx, ann))

	task := &entity.Task{ClientID: ann.ID, DateStart: "2024-01-01", DateEnd: "2024-01-02", Description: "work"}
	require.NoError(t, tasks.Create(ctx, task))
	orphan := &entity.Task{ClientID: uuid.NewString(), Description: "orphan"}
	require.NoError(t, tasks.Create(ctx, orphan))

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

	partial, err := tasks.SearchByClientName(ctx, "An")
	require.NoError(t, err)
	assert.Empty(t, partial, "client name search is exact")

	updated, err := tasks.Update(ctx, task.ID, entity.TaskPatch{Description: strPtr("more work")})
	require.NoError(t, err)
	assert.Equal(t, "more work", updated.Description)
	assert.Equal(t, "2024-01-01", updated.DateStart)

	_, err = tasks.Delete(ctx, task.ID)
	require.NoError(t, err)
	_, err = tasks.GetByID(ctx, task.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTaskRepository_NoCascadeOnUserDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	ann := &entity.User{Name: "Ann", Email: "a@x.com"}
	require.NoError(t, store.Users().Create(ctx, ann))
	task := &entity.Task{ClientID: ann.ID}
	require.NoError(t, store.Tasks().Create(ctx, task))

	_, err := store.Users().Delete(ctx, ann.ID)
	require.NoError(t, err)

	got, err := store.Tasks().GetByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, ann.ID, got.ClientID)
}
