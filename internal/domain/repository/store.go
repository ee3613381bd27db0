package repository

import "context"

// Store bundles the repositories of one backend together with its lifecycle.
type Store interface {
	Users() UserRepository
	Tasks() TaskRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
