package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

const taskColumns = `id::text, client_id::text, date_start, date_end, description`

// populatedSelect joins every task with its client. A LEFT JOIN keeps tasks
// whose client has been deleted.
const populatedSelect = `
	SELECT t.id::text, t.client_id::text, t.date_start, t.date_end, t.description,
	       u.id::text, u.name, u.email, u.company, u.role, COALESCE(u.comments, '{}')
	FROM tasks t
	LEFT JOIN users u ON u.id = t.client_id`

type TaskRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewTaskRepository(pool *pgxpool.Pool, timeout time.Duration) *TaskRepository {
	return &TaskRepository{pool: pool, timeout: timeout}
}

func (r *TaskRepository) ValidID(id string) bool { return validID(id) }

func scanTask(row pgx.Row) (*entity.Task, error) {
	t := &entity.Task{}
	if err := row.Scan(&t.ID, &t.ClientID, &t.DateStart, &t.DateEnd, &t.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if !validID(t.ClientID) {
		return repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (client_id, date_start, date_end, description)
		VALUES ($1::uuid, $2, $3, $4)
		RETURNING id::text
	`, t.ClientID, t.DateStart, t.DateEnd, t.Description)
	return row.Scan(&t.ID)
}

func (r *TaskRepository) populated(ctx context.Context, where string, args ...any) ([]entity.PopulatedTask, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, populatedSelect+where+` ORDER BY t.created_at, t.id`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.PopulatedTask{}
	for rows.Next() {
		var pt entity.PopulatedTask
		var uid, name, email, company, role *string
		var comments []string
		if err := rows.Scan(&pt.ID, &pt.ClientID, &pt.DateStart, &pt.DateEnd, &pt.Description,
			&uid, &name, &email, &company, &role, &comments); err != nil {
			return nil, err
		}
		if uid != nil {
			if comments == nil {
				comments = []string{}
			}
			pt.Client = &entity.User{
				ID:       *uid,
				Name:     deref(name),
				Email:    deref(email),
				Company:  deref(company),
				Role:     deref(role),
				Comments: comments,
			}
		}
		out = append(out, pt)
	}
	return out, rows.Err()
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func (r *TaskRepository) ListWithClient(ctx context.Context) ([]entity.PopulatedTask, error) {
	return r.populated(ctx, "")
}

func (r *TaskRepository) SearchByClientName(ctx context.Context, name string) ([]entity.PopulatedTask, error) {
	return r.populated(ctx, ` WHERE u.name = $1`, name)
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return scanTask(r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1::uuid`, id))
}

func (r *TaskRepository) Update(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	if patch.ClientID != nil && !validID(*patch.ClientID) {
		return nil, repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		UPDATE tasks SET
			client_id   = COALESCE($2::uuid, client_id),
			date_start  = COALESCE($3::text, date_start),
			date_end    = COALESCE($4::text, date_end),
			description = COALESCE($5::text, description),
			updated_at  = now()
		WHERE id = $1::uuid
		RETURNING `+taskColumns,
		id, nullable(patch.ClientID), nullable(patch.DateStart), nullable(patch.DateEnd), nullable(patch.Description))
	return scanTask(row)
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (*entity.Task, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return scanTask(r.pool.QueryRow(ctx, `DELETE FROM tasks WHERE id = $1::uuid RETURNING `+taskColumns, id))
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
