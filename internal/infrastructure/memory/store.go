// Package memory is an in-process Store used for local development and tests.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

// Store keeps users and tasks in insertion order behind one lock so joins
// see a consistent view.
type Store struct {
	mu        sync.RWMutex
	users     map[string]entity.User
	userOrder []string
	tasks     map[string]entity.Task
	taskOrder []string
}

func NewStore() *Store {
	return &Store{
		users: make(map[string]entity.User),
		tasks: make(map[string]entity.Task),
	}
}

func (s *Store) Users() repository.UserRepository { return &UserRepository{s: s} }
func (s *Store) Tasks() repository.TaskRepository { return &TaskRepository{s: s} }
func (s *Store) Ping(context.Context) error       { return nil }
func (s *Store) Close(context.Context) error      { return nil }

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func cloneUser(u entity.User) entity.User {
	if u.Comments == nil {
		u.Comments = []string{}
	} else {
		u.Comments = append([]string{}, u.Comments...)
	}
	return u
}

func removeID(order []string, id string) []string {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

type UserRepository struct {
	s *Store
}

func (r *UserRepository) emailTaken(email, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && u.Email == email {
			return true
		}
	}
	return false
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.emailTaken(u.Email, "") {
		return repository.ErrDuplicateEmail
	}
	u.ID = uuid.NewString()
	if u.Comments == nil {
		u.Comments = []string{}
	}
	r.s.users[u.ID] = cloneUser(*u)
	r.s.userOrder = append(r.s.userOrder, u.ID)
	return nil
}

func (r *UserRepository) List(_ context.Context) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.User, 0, len(r.s.userOrder))
	for _, id := range r.s.userOrder {
		out = append(out, cloneUser(r.s.users[id]))
	}
	return out, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := cloneUser(u)
	return &c, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range r.s.userOrder {
		if u := r.s.users[id]; u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) SearchByName(_ context.Context, pattern string) ([]entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	needle := strings.ToLower(pattern)
	out := []entity.User{}
	for _, id := range r.s.userOrder {
		if u := r.s.users[id]; strings.Contains(strings.ToLower(u.Name), needle) {
			out = append(out, cloneUser(u))
		}
	}
	return out, nil
}

func (r *UserRepository) Update(_ context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Email != nil && r.emailTaken(*patch.Email, id) {
		return nil, repository.ErrDuplicateEmail
	}
	patch.Apply(&u)
	r.s.users[id] = cloneUser(u)
	c := cloneUser(u)
	return &c, nil
}

func (r *UserRepository) Delete(_ context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.users, id)
	r.s.userOrder = removeID(r.s.userOrder, id)
	return &u, nil
}

type TaskRepository struct {
	s *Store
}

func (r *TaskRepository) ValidID(id string) bool { return validID(id) }

func (r *TaskRepository) Create(_ context.Context, t *entity.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = uuid.NewString()
	r.s.tasks[t.ID] = *t
	r.s.taskOrder = append(r.s.taskOrder, t.ID)
	return nil
}

// populate must be called with the read lock held.
func (r *TaskRepository) populate(t entity.Task) entity.PopulatedTask {
	pt := entity.PopulatedTask{Task: t}
	if u, ok := r.s.users[t.ClientID]; ok {
		c := cloneUser(u)
		pt.Client = &c
	}
	return pt
}

func (r *TaskRepository) ListWithClient(_ context.Context) ([]entity.PopulatedTask, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.PopulatedTask, 0, len(r.s.taskOrder))
	for _, id := range r.s.taskOrder {
		out = append(out, r.populate(r.s.tasks[id]))
	}
	return out, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id string) (*entity.Task, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *TaskRepository) SearchByClientName(_ context.Context, name string) ([]entity.PopulatedTask, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []entity.PopulatedTask{}
	for _, id := range r.s.taskOrder {
		pt := r.populate(r.s.tasks[id])
		if pt.Client != nil && pt.Client.Name == name {
			out = append(out, pt)
		}
	}
	return out, nil
}

func (r *TaskRepository) Update(_ context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	patch.Apply(&t)
	r.s.tasks[id] = t
	return &t, nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) (*entity.Task, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(r.s.tasks, id)
	r.s.taskOrder = removeID(r.s.taskOrder, id)
	return &t, nil
}

var (
	_ repository.Store          = (*Store)(nil)
	_ repository.UserRepository = (*UserRepository)(nil)
	_ repository.TaskRepository = (*TaskRepository)(nil)
)
