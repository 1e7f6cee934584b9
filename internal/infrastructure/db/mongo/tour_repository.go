package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roamio/tour-booking/internal/core/domain"
)

const collectionTours = "tours"

type TourRepository struct {
	col *mongo.Collection
}

func NewTourRepository(db *mongo.Database) *TourRepository {
	return &TourRepository{col: db.Collection(collectionTours)}
}

func (r *TourRepository) Create(ctx context.Context, t *domain.Tour) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, t)
	return err
}

func (r *TourRepository) FindByID(ctx context.Context, id string) (*domain.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Tour
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTourNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *TourRepository) List(ctx context.Context) ([]*domain.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var tours []*domain.Tour
	if err := cur.All(ctx, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

// Search matches a case-insensitive substring against title or city.
func (r *TourRepository) Search(ctx context.Context, query string) ([]*domain.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"title": pattern},
		{"city": pattern},
	}}

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var tours []*domain.Tour
	if err := cur.All(ctx, &tours); err != nil {
		return nil, err
	}
	return tours, nil
}

// ReserveSeats performs the capacity check, seat decrement, booked_by insert,
// and tour revenue credit as one conditional update. The filter only matches
// while count >= seats and the account holds no active booking, so two
// concurrent reservations can never both pass the capacity check.
func (r *TourRepository) ReserveSeats(ctx context.Context, tourID, accountID string, seats int, employeeShare float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":       tourID,
		"count":     bson.M{"$gte": seats},
		"booked_by": bson.M{"$ne": accountID},
	}
	update := bson.M{
		"$inc":      bson.M{"count": -seats, "revenue": employeeShare},
		"$addToSet": bson.M{"booked_by": accountID},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// No match: nothing was mutated. A follow-up read tells which
	// precondition failed.
	tour, err := r.FindByID(ctx, tourID)
	if err != nil {
		return err
	}
	if tour.IsBookedBy(accountID) {
		return domain.ErrAlreadyBooked
	}
	return domain.ErrInsufficientCapacity
}

// ReleaseSeats reverses ReserveSeats for a cancelled booking.
func (r *TourRepository) ReleaseSeats(ctx context.Context, tourID, accountID string, seats int, employeeShare float64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{
		"$inc":  bson.M{"count": seats, "revenue": -employeeShare},
		"$pull": bson.M{"booked_by": accountID},
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": tourID}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrTourNotFound
	}
	return nil
}

// DeleteUnbooked removes an owned tour only while no active bookings exist.
func (r *TourRepository) DeleteUnbooked(ctx context.Context, tourID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":       tourID,
		"owner_id":  ownerID,
		"booked_by": bson.M{"$size": 0},
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount > 0 {
		return nil
	}

	tour, err := r.FindByID(ctx, tourID)
	if err != nil {
		return err
	}
	if tour.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	return domain.ErrTourHasBookings
}

// EnsureIndexes creates the indexes the catalog queries rely on.
func (r *TourRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "city", Value: 1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
