package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roamio/tour-booking/internal/core/domain"
)

const collectionAccounts = "accounts"

type AccountRepository struct {
	col *mongo.Collection
}

func NewAccountRepository(db *mongo.Database) *AccountRepository {
	return &AccountRepository{col: db.Collection(collectionAccounts)}
}

func (r *AccountRepository) Create(ctx context.Context, a *domain.Account) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := a.Validate(); err != nil {
		return nil, err
	}

	_, err := r.col.InsertOne(ctx, a)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return a, nil
}

func (r *AccountRepository) FindByID(ctx context.Context, id string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *AccountRepository) findOne(ctx context.Context, filter bson.M) (*domain.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var a domain.Account
	if err := r.col.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *AccountRepository) AddBookingRef(ctx context.Context, accountID, bookingID string) error {
	return r.updateRole(ctx, accountID, domain.RoleUser,
		bson.M{"$addToSet": bson.M{"user_profile.booking_ids": bookingID}})
}

func (r *AccountRepository) RemoveBookingRef(ctx context.Context, accountID, bookingID string) error {
	return r.updateRole(ctx, accountID, domain.RoleUser,
		bson.M{"$pull": bson.M{"user_profile.booking_ids": bookingID}})
}

func (r *AccountRepository) AddOwnedTour(ctx context.Context, accountID, tourID string) error {
	return r.updateRole(ctx, accountID, domain.RoleEmployee,
		bson.M{"$addToSet": bson.M{"employee_profile.tour_ids": tourID}})
}

func (r *AccountRepository) RemoveOwnedTour(ctx context.Context, accountID, tourID string) error {
	return r.updateRole(ctx, accountID, domain.RoleEmployee,
		bson.M{"$pull": bson.M{"employee_profile.tour_ids": tourID}})
}

// AddRevenue adjusts an employee's accrued revenue with a single $inc, never
// a read-modify-write.
func (r *AccountRepository) AddRevenue(ctx context.Context, accountID string, delta float64) error {
	return r.updateRole(ctx, accountID, domain.RoleEmployee,
		bson.M{"$inc": bson.M{"employee_profile.revenue": delta}})
}

// AddCartItem increments the quantity of an existing cart entry, or appends
// a fresh entry with quantity 1. Two updates, each individually atomic.
func (r *AccountRepository) AddCartItem(ctx context.Context, accountID, tourID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": accountID, "user_profile.cart.tour_id": tourID},
		bson.M{"$inc": bson.M{"user_profile.cart.$.quantity": 1}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	return r.updateRole(ctx, accountID, domain.RoleUser,
		bson.M{"$push": bson.M{"user_profile.cart": domain.CartItem{TourID: tourID, Quantity: 1}}})
}

func (r *AccountRepository) RemoveCartItem(ctx context.Context, accountID, tourID string) error {
	return r.updateRole(ctx, accountID, domain.RoleUser,
		bson.M{"$pull": bson.M{"user_profile.cart": bson.M{"tour_id": tourID}}})
}

// updateRole applies an update to the account only when it carries the
// expected role, so user-only and employee-only fields stay role-scoped.
func (r *AccountRepository) updateRole(ctx context.Context, accountID, role string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": accountID, "role": role}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index backing ErrEmailTaken.
func (r *AccountRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "name", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
