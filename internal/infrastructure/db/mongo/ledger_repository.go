package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionLedger = "revenue_ledger"

// platformDocID is the single platform-wide accumulator document.
const platformDocID = "platform"

// LedgerRepository implements the platform revenue accumulator as a single
// document mutated only with $inc, so concurrent bookings never lose updates.
type LedgerRepository struct {
	col *mongo.Collection
}

func NewLedgerRepository(db *mongo.Database) *LedgerRepository {
	return &LedgerRepository{col: db.Collection(collectionLedger)}
}

func (r *LedgerRepository) Add(ctx context.Context, delta float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": platformDocID},
		bson.M{"$inc": bson.M{"total": delta}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *LedgerRepository) Total(ctx context.Context) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc struct {
		Total float64 `bson:"total"`
	}
	err := r.col.FindOne(ctx, bson.M{"_id": platformDocID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return doc.Total, nil
}
