package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

// Connect dials MongoDB and verifies the deployment answers a ping.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri).SetTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureIndexes creates the unique email index the duplicate-email rule
// relies on.
func EnsureIndexes(ctx context.Context, users *mongo.Collection) error {
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	return err
}

// Store is the MongoDB backed repository.Store.
type Store struct {
	client *mongo.Client
	users  *UserRepository
	tasks  *TaskRepository
}

// NewStore wires repositories over db. timeout bounds each query.
func NewStore(client *mongo.Client, db *mongo.Database, usersColl, tasksColl string, timeout time.Duration) *Store {
	users := db.Collection(usersColl)
	return &Store{
		client: client,
		users:  NewUserRepository(users, timeout),
		tasks:  NewTaskRepository(db.Collection(tasksColl), usersColl, timeout),
	}
}

func (s *Store) Users() repository.UserRepository { return s.users }
func (s *Store) Tasks() repository.TaskRepository { return s.tasks }

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// UsersCollection exposes the users collection for index management.
func (s *Store) UsersCollection() *mongo.Collection { return s.users.coll }

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

var _ repository.Store = (*Store)(nil)
