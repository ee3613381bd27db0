package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

const uniqueViolation = "23505"

const userColumns = `id::text, name, password_hash, email, company, role, comments`

type UserRepository struct {
	pool    *pgxpool.Pool
	timeout time.Duration
}

func NewUserRepository(pool *pgxpool.Pool, timeout time.Duration) *UserRepository {
	return &UserRepository{pool: pool, timeout: timeout}
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func mapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicateEmail
	}
	return err
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Password, &u.Email, &u.Company, &u.Role, &u.Comments); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	if u.Comments == nil {
		u.Comments = []string{}
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	if u.Comments == nil {
		u.Comments = []string{}
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (name, password_hash, email, company, role, comments)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text
	`, u.Name, u.Password, u.Email, u.Company, u.Role, u.Comments)

	return mapWriteErr(row.Scan(&u.ID))
}

func (r *UserRepository) query(ctx context.Context, sql string, args ...any) ([]entity.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []entity.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	return out, rows.Err()
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	return r.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at, id`)
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1::uuid`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

// SearchByName uses strpos so the pattern is matched literally.
func (r *UserRepository) SearchByName(ctx context.Context, pattern string) ([]entity.User, error) {
	return r.query(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE strpos(lower(name), lower($1)) > 0
		ORDER BY created_at, id
	`, pattern)
}

func nullable(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func (r *UserRepository) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	var comments any
	if patch.Comments != nil {
		c := *patch.Comments
		if c == nil {
			c = []string{}
		}
		comments = c
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	row := r.pool.QueryRow(ctx, `
		UPDATE users SET
			name          = COALESCE($2::text, name),
			email         = COALESCE($3::text, email),
			password_hash = COALESCE($4::text, password_hash),
			company       = COALESCE($5::text, company),
			role          = COALESCE($6::text, role),
			comments      = COALESCE($7::text[], comments),
			updated_at    = now()
		WHERE id = $1::uuid
		RETURNING `+userColumns,
		id, nullable(patch.Name), nullable(patch.Email), nullable(patch.Password),
		nullable(patch.Company), nullable(patch.Role), comments)

	u, err := scanUser(row)
	if err != nil {
		return nil, mapWriteErr(err)
	}
	return u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*entity.User, error) {
	if !validID(id) {
		return nil, repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()
	return scanUser(r.pool.QueryRow(ctx, `DELETE FROM users WHERE id = $1::uuid RETURNING `+userColumns, id))
}

var _ repository.UserRepository = (*UserRepository)(nil)
