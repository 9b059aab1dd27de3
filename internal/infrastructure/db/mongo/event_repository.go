package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/eventsphere/eventsphere-api/internal/core/domain"
)

const eventsCollection = "events"

// EventRepository implements ports.EventRepository over MongoDB.
type EventRepository struct {
	coll *mongo.Collection
}

func NewEventRepository(db *mongo.Database) *EventRepository {
	return &EventRepository{coll: db.Collection(eventsCollection)}
}

// eventDoc mirrors the stored document. TicketPrice is stored as a string
// to keep the decimal exact.
type eventDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	Description     string             `bson:"description"`
	Image           string             `bson:"image,omitempty"`
	Date            time.Time          `bson:"date"`
	NumberOfTickets int                `bson:"numberOfTickets"`
	TicketPrice     string             `bson:"ticketPrice"`
	CreatedBy       primitive.ObjectID `bson:"createdBy"`
	CreatedAt       time.Time          `bson:"createdAt"`
}

func (r *EventRepository) Create(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	doc, err := toEventDoc(e)
	if err != nil {
		return nil, err
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert event: unexpected id type %T", res.InsertedID)
	}

	created := *e
	created.ID = oid.Hex()
	return &created, nil
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	var doc eventDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return doc.toEvent()
}

func (r *EventRepository) FindAll(ctx context.Context) ([]*domain.Event, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *EventRepository) FindByCreator(ctx context.Context, principalID string) ([]*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(principalID)
	if err != nil {
		return nil, nil
	}
	return r.findMany(ctx, bson.M{"createdBy": oid})
}

func (r *EventRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Event, error) {
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []*domain.Event
	for cursor.Next(ctx) {
		var doc eventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		event, err := doc.toEvent()
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	return events, nil
}

// Update replaces the stored document; the update semantics (full overwrite
// with image already merged) are the service's responsibility.
func (r *EventRepository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	oid, err := primitive.ObjectIDFromHex(e.ID)
	if err != nil {
		return nil, domain.ErrEventNotFound
	}

	doc, err := toEventDoc(e)
	if err != nil {
		return nil, err
	}
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return nil, fmt.Errorf("replace event: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrEventNotFound
	}
	return e, nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrEventNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrEventNotFound
	}
	return nil
}

// EnsureIndexes creates the createdBy index used by the my-events listing.
func (r *EventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdBy", Value: 1}},
	})
	return err
}

func toEventDoc(e *domain.Event) (*eventDoc, error) {
	creator, err := primitive.ObjectIDFromHex(e.CreatedBy)
	if err != nil {
		return nil, fmt.Errorf("event creator id %q: %w", e.CreatedBy, err)
	}
	return &eventDoc{
		Name:            e.Name,
		Description:     e.Description,
		Image:           e.Image,
		Date:            e.Date.UTC(),
		NumberOfTickets: e.NumberOfTickets,
		TicketPrice:     e.TicketPrice.String(),
		CreatedBy:       creator,
		CreatedAt:       e.CreatedAt.UTC(),
	}, nil
}

func (d *eventDoc) toEvent() (*domain.Event, error) {
	price, err := decimal.NewFromString(d.TicketPrice)
	if err != nil {
		return nil, fmt.Errorf("ticket price %q: %w", d.TicketPrice, err)
	}
	return &domain.Event{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		Description:     d.Description,
		Image:           d.Image,
		Date:            d.Date,
		NumberOfTickets: d.NumberOfTickets,
		TicketPrice:     price,
		CreatedBy:       d.CreatedBy.Hex(),
		CreatedAt:       d.CreatedAt,
	}, nil
}
