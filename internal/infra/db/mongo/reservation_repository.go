package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperties "stayly/internal/domain/properties"
	domainreservations "stayly/internal/domain/reservations"
	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/money"
)

type ReservationRepository struct {
	col *mongo.Collection
}

func NewReservationRepository(db *mongo.Database) *ReservationRepository {
	return &ReservationRepository{col: db.Collection("reservations")}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainreservations.ReservationID) (*domainreservations.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainreservations.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *ReservationRepository) ByGuest(ctx context.Context, guestID string) ([]*domainreservations.Reservation, error) {
	return r.find(ctx, bson.M{"guest_id": guestID})
}

func (r *ReservationRepository) ByProperty(ctx context.Context, propertyID domainproperties.PropertyID) ([]*domainreservations.Reservation, error) {
	return r.find(ctx, bson.M{"property_id": string(propertyID)})
}

func (r *ReservationRepository) Save(ctx context.Context, reservation *domainreservations.Reservation) error {
	doc := newReservationDocument(reservation)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *ReservationRepository) find(ctx context.Context, filter bson.M) ([]*domainreservations.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	out := make([]*domainreservations.Reservation, 0)
	for cursor.Next(ctx) {
		var doc reservationDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

type reservationDocument struct {
	ID         string        `bson:"_id"`
	PropertyID string        `bson:"property_id"`
	GuestID    string        `bson:"guest_id"`
	Range      rangeDocument `bson:"range"`
	Guests     int           `bson:"guests"`
	Total      money.Money   `bson:"total"`
	State      string        `bson:"state"`
	CreatedAt  int64         `bson:"created_at"`
	UpdatedAt  int64         `bson:"updated_at"`
}

type rangeDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

func newReservationDocument(res *domainreservations.Reservation) reservationDocument {
	return reservationDocument{
		ID:         string(res.ID),
		PropertyID: string(res.PropertyID),
		GuestID:    res.GuestID,
		Range:      rangeDocument{Start: res.Range.Start.UnixMilli(), End: res.Range.End.UnixMilli()},
		Guests:     res.Guests,
		Total:      res.Total,
		State:      string(res.State),
		CreatedAt:  res.CreatedAt.UnixMilli(),
		UpdatedAt:  res.UpdatedAt.UnixMilli(),
	}
}

func (d reservationDocument) toDomain() *domainreservations.Reservation {
	return &domainreservations.Reservation{
		ID:         domainreservations.ReservationID(d.ID),
		PropertyID: domainproperties.PropertyID(d.PropertyID),
		GuestID:    d.GuestID,
		Range:      daterange.DateRange{Start: timestampToTime(d.Range.Start), End: timestampToTime(d.Range.End)},
		Guests:     d.Guests,
		Total:      d.Total,
		State:      domainreservations.State(d.State),
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
	}
}

var _ domainreservations.Repository = (*ReservationRepository)(nil)
