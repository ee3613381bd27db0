package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	repo "github.com/oksasatya/taskdesk-api/internal/domain/repository"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
)

const clientMessage = "client must be a valid user id"

type TaskService struct {
	Repo   repo.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(repo repo.TaskRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Repo: repo, Logger: logger}
}

// Create stores t. The client id must be well-formed but the user it names
// is not looked up.
func (s *TaskService) Create(ctx context.Context, t *entity.Task) error {
	if !s.Repo.ValidID(t.ClientID) {
		return invalidField("client", clientMessage)
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return err
	}
	helpers.LogInfo(s.Logger, "task created", logrus.Fields{"task_id": t.ID, "client_id": t.ClientID})
	return nil
}

func (s *TaskService) List(ctx context.Context) ([]entity.PopulatedTask, error) {
	return s.Repo.ListWithClient(ctx)
}

func (s *TaskService) Get(ctx context.Context, id string) (*entity.Task, error) {
	return s.Repo.GetByID(ctx, id)
}

// IsTaskID reports whether id is shaped like a task id.
func (s *TaskService) IsTaskID(id string) bool {
	return s.Repo.ValidID(id)
}

// SearchByClientName reports repo.ErrNotFound when nothing matches.
func (s *TaskService) SearchByClientName(ctx context.Context, name string) ([]entity.PopulatedTask, error) {
	tasks, err := s.Repo.SearchByClientName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, repo.ErrNotFound
	}
	return tasks, nil
}

func (s *TaskService) Update(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	if patch.ClientID != nil && !s.Repo.ValidID(*patch.ClientID) {
		return nil, invalidField("client", clientMessage)
	}
	if patch.IsEmpty() {
		return s.Repo.GetByID(ctx, id)
	}
	t, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "task updated", logrus.Fields{"task_id": t.ID})
	return t, nil
}

func (s *TaskService) Delete(ctx context.Context, id string) (*entity.Task, error) {
	t, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "task deleted", logrus.Fields{"task_id": t.ID})
	return t, nil
}
