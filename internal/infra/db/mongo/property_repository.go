package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainproperties "stayly/internal/domain/properties"
	"stayly/internal/domain/shared/money"
)

type PropertyRepository struct {
	col *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{col: db.Collection("properties")}
}

func (r *PropertyRepository) ByID(ctx context.Context, id domainproperties.PropertyID) (*domainproperties.Property, error) {
	var doc propertyDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domainproperties.ErrNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *PropertyRepository) ByHost(ctx context.Context, host domainproperties.HostID) ([]*domainproperties.Property, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"host": string(host)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	out := make([]*domainproperties.Property, 0)
	for cursor.Next(ctx) {
		var doc propertyDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.toDomain())
	}
	return out, cursor.Err()
}

func (r *PropertyRepository) Save(ctx context.Context, property *domainproperties.Property) error {
	doc := newPropertyDocument(property)
	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts)
	return err
}

func (r *PropertyRepository) Delete(ctx context.Context, id domainproperties.PropertyID) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": string(id)})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// BaseNightly reads only the fallback rate; the pricing engine's catalog port.
func (r *PropertyRepository) BaseNightly(ctx context.Context, id domainproperties.PropertyID) (money.Money, error) {
	var doc struct {
		BaseNightly money.Money `bson:"base_nightly"`
	}
	opts := options.FindOne().SetProjection(bson.M{"base_nightly": 1})
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return money.Money{}, domainproperties.ErrNotFound
		}
		return money.Money{}, err
	}
	return doc.BaseNightly, nil
}

type propertyDocument struct {
	ID          string          `bson:"_id"`
	Host        string          `bson:"host"`
	Title       string          `bson:"title"`
	Description string          `bson:"description,omitempty"`
	Address     addressDocument `bson:"address"`
	GuestsLimit int             `bson:"guests_limit"`
	BaseNightly money.Money     `bson:"base_nightly"`
	State       string          `bson:"state"`
	CreatedAt   int64           `bson:"created_at"`
	UpdatedAt   int64           `bson:"updated_at"`
}

type addressDocument struct {
	Line1   string `bson:"line1"`
	City    string `bson:"city"`
	Country string `bson:"country"`
}

func newPropertyDocument(p *domainproperties.Property) propertyDocument {
	return propertyDocument{
		ID:          string(p.ID),
		Host:        string(p.Host),
		Title:       p.Title,
		Description: p.Description,
		Address:     addressDocument{Line1: p.Address.Line1, City: p.Address.City, Country: p.Address.Country},
		GuestsLimit: p.GuestsLimit,
		BaseNightly: p.BaseNightly,
		State:       string(p.State),
		CreatedAt:   p.CreatedAt.UnixMilli(),
		UpdatedAt:   p.UpdatedAt.UnixMilli(),
	}
}

func (d propertyDocument) toDomain() *domainproperties.Property {
	return &domainproperties.Property{
		ID:          domainproperties.PropertyID(d.ID),
		Host:        domainproperties.HostID(d.Host),
		Title:       d.Title,
		Description: d.Description,
		Address:     domainproperties.Address{Line1: d.Address.Line1, City: d.Address.City, Country: d.Address.Country},
		GuestsLimit: d.GuestsLimit,
		BaseNightly: d.BaseNightly,
		State:       domainproperties.PropertyState(d.State),
		CreatedAt:   timestampToTime(d.CreatedAt),
		UpdatedAt:   timestampToTime(d.UpdatedAt),
	}
}

var _ domainproperties.Repository = (*PropertyRepository)(nil)
