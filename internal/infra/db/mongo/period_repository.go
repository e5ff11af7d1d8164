package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpricing "stayly/internal/domain/pricing"
	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/daterange"
	"stayly/internal/domain/shared/money"
)

// PeriodRepository persists price periods in the price_periods collection.
// Range bounds are stored as UTC-midnight UnixMilli and queried with the
// half-open rule: a stored period overlaps [a, b) iff start < b and a < end.
type PeriodRepository struct {
	col *mongo.Collection
}

func NewPeriodRepository(db *mongo.Database) *PeriodRepository {
	return &PeriodRepository{col: db.Collection("price_periods")}
}

func (r *PeriodRepository) ByID(ctx context.Context, id domainpricing.PeriodID) (*domainpricing.PricePeriod, error) {
	var doc periodDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainpricing.ErrPeriodNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PeriodRepository) ByProperty(ctx context.Context, propertyID domainproperties.PropertyID) ([]*domainpricing.PricePeriod, error) {
	return r.find(ctx, bson.M{"property_id": string(propertyID)})
}

func (r *PeriodRepository) Overlapping(ctx context.Context, propertyID domainproperties.PropertyID, dr daterange.DateRange) ([]*domainpricing.PricePeriod, error) {
	filter := bson.M{
		"property_id": string(propertyID),
		"start":       bson.M{"$lt": dr.End.UnixMilli()},
		"end":         bson.M{"$gt": dr.Start.UnixMilli()},
	}
	return r.find(ctx, filter)
}

func (r *PeriodRepository) Save(ctx context.Context, period *domainpricing.PricePeriod) error {
	doc := newPeriodDocument(period)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *PeriodRepository) Delete(ctx context.Context, id domainpricing.PeriodID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *PeriodRepository) DeleteByProperty(ctx context.Context, propertyID domainproperties.PropertyID) (int, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"property_id": string(propertyID)})
	if err != nil {
		return 0, err
	}
	return int(res.DeletedCount), nil
}

func (r *PeriodRepository) find(ctx context.Context, filter bson.M) ([]*domainpricing.PricePeriod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: 1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	out := make([]*domainpricing.PricePeriod, 0)
	for cursor.Next(ctx) {
		var doc periodDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

type periodDocument struct {
	ID         string      `bson:"_id"`
	PropertyID string      `bson:"property_id"`
	Name       string      `bson:"name,omitempty"`
	Start      int64       `bson:"start"`
	End        int64       `bson:"end"`
	Nightly    money.Money `bson:"nightly"`
	CreatedAt  int64       `bson:"created_at"`
	UpdatedAt  int64       `bson:"updated_at"`
}

func newPeriodDocument(p *domainpricing.PricePeriod) periodDocument {
	return periodDocument{
		ID:         string(p.ID),
		PropertyID: string(p.PropertyID),
		Name:       p.Name,
		Start:      p.Range.Start.UnixMilli(),
		End:        p.Range.End.UnixMilli(),
		Nightly:    p.Nightly,
		CreatedAt:  p.CreatedAt.UnixMilli(),
		UpdatedAt:  p.UpdatedAt.UnixMilli(),
	}
}

func (d periodDocument) toDomain() *domainpricing.PricePeriod {
	return &domainpricing.PricePeriod{
		ID:         domainpricing.PeriodID(d.ID),
		PropertyID: domainproperties.PropertyID(d.PropertyID),
		Name:       d.Name,
		Range:      daterange.DateRange{Start: timestampToTime(d.Start), End: timestampToTime(d.End)},
		Nightly:    d.Nightly,
		CreatedAt:  timestampToTime(d.CreatedAt),
		UpdatedAt:  timestampToTime(d.UpdatedAt),
	}
}

var _ domainpricing.Repository = (*PeriodRepository)(nil)
