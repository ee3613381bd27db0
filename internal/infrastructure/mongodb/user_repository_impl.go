package mongodb

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oksasatya/taskdesk-api/internal/domain/entity"
	"github.com/oksasatya/taskdesk-api/internal/domain/repository"
)

type userDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Password string             `bson:"password"`
	Email    string             `bson:"email"`
	Company  string             `bson:"company,omitempty"`
	Role     string             `bson:"role"`
	Comments []string           `bson:"comments"`
}

func (d userDocument) toEntity() entity.User {
	comments := d.Comments
	if comments == nil {
		comments = []string{}
	}
	return entity.User{
		ID:       d.ID.Hex(),
		Name:     d.Name,
		Email:    d.Email,
		Password: d.Password,
		Company:  d.Company,
		Role:     d.Role,
		Comments: comments,
	}
}

type UserRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewUserRepository(coll *mongo.Collection, timeout time.Duration) *UserRepository {
	return &UserRepository{coll: coll, timeout: timeout}
}

func mapWriteErr(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	doc := userDocument{
		ID:       primitive.NewObjectID(),
		Name:     u.Name,
		Password: u.Password,
		Email:    u.Email,
		Company:  u.Company,
		Role:     u.Role,
		Comments: u.Comments,
	}
	if doc.Comments == nil {
		doc.Comments = []string{}
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapWriteErr(err)
	}
	u.ID = doc.ID.Hex()
	u.Comments = doc.Comments
	return nil
}

func (r *UserRepository) find(ctx context.Context, filter interface{}) ([]entity.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter interface{}) (*entity.User, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u := doc.toEntity()
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]entity.User, error) {
	return r.find(ctx, bson.D{})
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) SearchByName(ctx context.Context, pattern string) ([]entity.User, error) {
	re := primitive.Regex{Pattern: regexp.QuoteMeta(pattern), Options: "i"}
	return r.find(ctx, bson.M{"name": re})
}

func userSet(p entity.UserPatch) bson.D {
	set := bson.D{}
	if p.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *p.Name})
	}
	if p.Email != nil {
		set = append(set, bson.E{Key: "email", Value: *p.Email})
	}
	if p.Password != nil {
		set = append(set, bson.E{Key: "password", Value: *p.Password})
	}
	if p.Company != nil {
		set = append(set, bson.E{Key: "company", Value: *p.Company})
	}
	if p.Role != nil {
		set = append(set, bson.E{Key: "role", Value: *p.Role})
	}
	if p.Comments != nil {
		comments := *p.Comments
		if comments == nil {
			comments = []string{}
		}
		set = append(set, bson.E{Key: "comments", Value: comments})
	}
	return set
}

func (r *UserRepository) Update(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	set := userSet(patch)
	if len(set) == 0 {
		return r.findOne(ctx, bson.M{"_id": oid})
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, mapWriteErr(err)
	}
	u := doc.toEntity()
	return &u, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (*entity.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, repository.ErrInvalidID
	}
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc userDocument
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	u := doc.toEntity()
	return &u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
