package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

const (
	usersCollection  = "users"
	adminsCollection = "admins"
)

// IdentityRepository persists principals across the two identity
// collections. Email uniqueness is enforced per collection by a unique
// index, so a user and an admin may share an email.
type IdentityRepository struct {
	db *mongo.Database
}

func NewIdentityRepository(db *mongo.Database) *IdentityRepository {
	return &IdentityRepository{db: db}
}

// identityDoc mirrors the stored document. The bcrypt hash lives in the
// "password" field; it never leaves the repository unserialized.
type identityDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	FullName     string             `bson:"fullName,omitempty"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (r *IdentityRepository) collection(kind domain.PrincipalKind) *mongo.Collection {
	if kind == domain.KindAdmin {
		return r.db.Collection(adminsCollection)
	}
	return r.db.Collection(usersCollection)
}

func (r *IdentityRepository) Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error) {
	doc := identityDoc{
		Email:        p.Email,
		FullName:     p.FullName,
		PasswordHash: p.PasswordHash,
		CreatedAt:    p.CreatedAt,
	}

	res, err := r.collection(p.Kind).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrIdentityExists
		}
		return nil, fmt.Errorf("insert identity: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert identity: unexpected id type %T", res.InsertedID)
	}

	created := *p
	created.ID = oid.Hex()
	return &created, nil
}

func (r *IdentityRepository) FindByEmail(ctx context.Context, kind domain.PrincipalKind, email string) (*domain.Principal, error) {
	var doc identityDoc
	err := r.collection(kind).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity by email: %w", err)
	}
	return doc.toPrincipal(kind), nil
}

func (r *IdentityRepository) FindByID(ctx context.Context, kind domain.PrincipalKind, id string) (*domain.Principal, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrIdentityNotFound
	}

	var doc identityDoc
	err = r.collection(kind).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("find identity by id: %w", err)
	}
	return doc.toPrincipal(kind), nil
}

func (r *IdentityRepository) ListUsers(ctx context.Context) ([]*domain.Principal, error) {
	cursor, err := r.db.Collection(usersCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer cursor.Close(ctx)

	var users []*domain.Principal
	for cursor.Next(ctx) {
		var doc identityDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode user: %w", err)
		}
		users = append(users, doc.toPrincipal(domain.KindUser))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// EnsureIndexes creates the per-collection unique email indexes.
func (r *IdentityRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	emailUnique := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	for _, name := range []string{usersCollection, adminsCollection} {
		if _, err := r.db.Collection(name).Indexes().CreateOne(ctx, emailUnique); err != nil {
			return fmt.Errorf("ensure %s indexes: %w", name, err)
		}
	}
	return nil
}

func (d *identityDoc) toPrincipal(kind domain.PrincipalKind) *domain.Principal {
	return &domain.Principal{
		ID:           d.ID.Hex(),
		Kind:         kind,
		Email:        d.Email,
		FullName:     d.FullName,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}
