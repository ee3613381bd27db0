package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	repo "github.com/oksasatya/taskdesk-api/internal/domain/repository"
	"github.com/oksasatya/taskdesk-api/pkg/helpers"
)

// RoleMessage is reported when a role outside the accepted set is given.
const RoleMessage = "Must be either employee or client"

type UserService struct {
	Repo   repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *UserService {
	return &UserService{Repo: repo, JWT: jwt, Logger: logger}
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Company  string
	Role     string
}

// Signup creates a user with a hashed password. The payload is expected to be
// validated already.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*entity.User, error) {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hash,
		Company:  in.Company,
		Role:     in.Role,
		Comments: []string{},
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "user created", logrus.Fields{"user_id": u.ID, "role": u.Role})
	return u, nil
}

type SigninResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func (s *UserService) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("lookup email: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrWrongPassword
	}

	token, exp, err := s.JWT.GenerateAccessToken(u.Email, u.ID, u.Role)
	if err != nil {
		helpers.LogError(s.Logger, "generate access token failed", err, logrus.Fields{"user_id": u.ID})
		return nil, err
	}
	return &SigninResult{Token: token, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) List(ctx context.Context) ([]entity.User, error) {
	return s.Repo.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*entity.User, error) {
	return s.Repo.GetByID(ctx, id)
}

// SearchByName reports repo.ErrNotFound when nothing matches.
func (s *UserService) SearchByName(ctx context.Context, pattern string) ([]entity.User, error) {
	users, err := s.Repo.SearchByName(ctx, pattern)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, repo.ErrNotFound
	}
	return users, nil
}

// Update applies a partial edit. An email equal to the current one and an
// empty password are ignored; a new password is hashed before it is stored.
func (s *UserService) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	current, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patch.Role != nil && !entity.ValidRole(*patch.Role) {
		return nil, invalidField("role", RoleMessage)
	}
	if patch.Email != nil && *patch.Email == current.Email {
		patch.Email = nil
	}
	if patch.Password != nil {
		if *patch.Password == "" {
			patch.Password = nil
		} else {
			hash, err := helpers.HashPassword(*patch.Password)
			if err != nil {
				return nil, fmt.Errorf("hash password: %w", err)
			}
			patch.Password = &hash
		}
	}
	if patch.IsEmpty() {
		return current, nil
	}

	u, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "user updated", logrus.Fields{"user_id": u.ID})
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id string) (*entity.User, error) {
	u, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	helpers.LogInfo(s.Logger, "user deleted", logrus.Fields{"user_id": u.ID})
	return u, nil
}
