package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Client      primitive.ObjectID `bson:"client"`
	DateStart   string             `bson:"dateStart"`
	DateEnd     string             `bson:"dateEnd"`
	Description string             `bson:"description"`
}

func (d taskDocument) toEntity() entity.Task {
	return entity.Task{
		ID:          d.ID.Hex(),
		ClientID:    d.Client.Hex(),
		DateStart:   d.DateStart,
		DateEnd:     d.DateEnd,
		Description: d.Description,
	}
}

// populatedDocument is the shape produced by the $lookup stage. The task
// fields are spelled out: the bson codec skips unexported embedded structs.
type populatedDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	Client        primitive.ObjectID `bson:"client"`
	DateStart     string             `bson:"dateStart"`
	DateEnd       string             `bson:"dateEnd"`
	Description   string             `bson:"description"`
	ClientDetails []userDocument     `bson:"clientDetails"`
}

func (d populatedDocument) toEntity() entity.PopulatedTask {
	task := taskDocument{
		ID:          d.ID,
		Client:      d.Client,
		DateStart:   d.DateStart,
		DateEnd:     d.DateEnd,
		Description: d.Description,
	}
	pt := entity.PopulatedTask{Task: task.toEntity()}
	if len(d.ClientDetails) > 0 {
		u := d.ClientDetails[0].toEntity()
		pt.Client = &u
	}
	return pt
}

type TaskRepository struct {
	coll      *mongo.Collection
	usersColl string
	timeout   time.Duration
}

func NewTaskRepository(coll *mongo.Collection, usersColl string, timeout time.Duration) *TaskRepository {
	return &TaskRepository{coll: coll, usersColl: usersColl, timeout: timeout}
}

func (r *TaskRepository) ValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	client, err := primitive.ObjectIDFromHex(t.ClientID)
	if err != nil {
		return repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		Client:      client,
		DateStart:   t.DateStart,
		DateEnd:     t.DateEnd,
		Description: t.Description,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	t.ID = doc.ID.Hex()
	return nil
}

func (r *TaskRepository) lookupStage() bson.D {
	return bson.D{{Key: "$lookup", Value: bson.D{
		{Key: "from", Value: r.usersColl},
		{Key: "localField", Value: "client"},
		{Key: "foreignField", Value: "_id"},
		{Key: "as", Value: "clientDetails"},
	}}}
}

func (r *TaskRepository) aggregate(ctx context.Context, pipeline mongo.Pipeline) ([]entity.PopulatedTask, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []populatedDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.PopulatedTask, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

func (r *TaskRepository) ListWithClient(ctx context.Context) ([]entity.PopulatedTask, error) {
	return r.aggregate(ctx, mongo.Pipeline{r.lookupStage()})
}

func (r *TaskRepository) SearchByClientName(ctx context.Context, name string) ([]entity.PopulatedTask, error) {
	return r.aggregate(ctx, mongo.Pipeline{
		r.lookupStage(),
		bson.D{{Key: "$match", Value: bson.D{{Key: "clientDetails.name", Value: name}}}},
	})
}

func (r *TaskRepository) GetByID(ctx context.Context, id string) (*entity.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc taskDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	t := doc.toEntity()
	return &t, nil
}

func (r *TaskRepository) Update(ctx context.Context, id string, patch entity.TaskPatch) (*entity.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	set := bson.D{}
	if patch.ClientID != nil {
		client, err := primitive.ObjectIDFromHex(*patch.ClientID)
		if err != nil {
			return nil, repository.ErrInvalidID
		}
		set = append(set, bson.E{Key: "client", Value: client})
	}
	if patch.DateStart != nil {
		set = append(set, bson.E{Key: "dateStart", Value: *patch.DateStart})
	}
	if patch.DateEnd != nil {
		set = append(set, bson.E{Key: "dateEnd", Value: *patch.DateEnd})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc taskDocument
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	t := doc.toEntity()
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (*entity.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc taskDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	t := doc.toEntity()
	return &t, nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
