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

	"github.com/tourista/tourism-api/internal/core/domain"
)

// settableFields are the single-value references SetField may write.
var settableFields = map[string]bool{
	"avatar":                 true,
	domain.ReserveHotel:      true,
	domain.ReserveRestaurant: true,
	domain.FieldTour:         true,
}

// ActorRepository stores one actor type in its own collection. Documents use
// a hex ObjectID string as _id.
type ActorRepository struct {
	t       domain.ActorType
	col     *mongo.Collection
	timeout time.Duration
}

func NewActorRepository(db *mongo.Database, t domain.ActorType, timeout time.Duration) *ActorRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &ActorRepository{t: t, col: db.Collection(t.Collection()), timeout: timeout}
}

func (r *ActorRepository) Insert(ctx context.Context, actor domain.Actor) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if actor.ActorID() == "" {
		actor.SetActorID(primitive.NewObjectID().Hex())
	}
	if _, err := r.col.InsertOne(ctx, actor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return storeErr("insert", err)
	}
	return nil
}

func (r *ActorRepository) FindByID(ctx context.Context, id string) (domain.Actor, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *ActorRepository) FindByEmail(ctx context.Context, email string) (domain.Actor, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *ActorRepository) findOne(ctx context.Context, filter bson.M) (domain.Actor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	actor := domain.New(r.t)
	if err := r.col.FindOne(ctx, filter).Decode(actor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrActorNotFound
		}
		return nil, storeErr("find "+r.t.Collection(), err)
	}
	return actor, nil
}

// Replace writes every profile field of actor. Tokens and likes are only
// changed through their own atomic updates so a concurrent login or like is
// never lost.
func (r *ActorRepository) Replace(ctx context.Context, actor domain.Actor) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	raw, err := bson.Marshal(actor)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.t, err)
	}
	var set bson.M
	if err := bson.Unmarshal(raw, &set); err != nil {
		return fmt.Errorf("encode %s: %w", r.t, err)
	}
	delete(set, "_id")
	delete(set, "tokens")
	delete(set, "likes")

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": actor.ActorID()}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrEmailTaken
		}
		return storeErr("replace", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrActorNotFound
	}
	return nil
}

func (r *ActorRepository) PushToken(ctx context.Context, id, token string) error {
	return r.update(ctx, "push token", id, bson.M{"$push": bson.M{"tokens": token}})
}

// PullToken removes one occurrence of token: the first match is nulled
// through the positional operator, then nulls are pulled.
func (r *ActorRepository) PullToken(ctx context.Context, id, token string) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "tokens": token},
		bson.M{"$unset": bson.M{"tokens.$": ""}},
	)
	if err != nil {
		return storeErr("pull token", err)
	}
	if res.MatchedCount == 0 {
		// absent token is a no-op, unknown actor is not.
		n, err := r.col.CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
		if err != nil {
			return storeErr("pull token", err)
		}
		if n == 0 {
			return domain.ErrActorNotFound
		}
		return nil
	}
	return r.update(ctx, "pull token", id, bson.M{"$pull": bson.M{"tokens": nil}})
}

// ToggleLike adds postID unless it is already present, in which case it is pulled.
func (r *ActorRepository) ToggleLike(ctx context.Context, id, postID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "likes": bson.M{"$ne": postID}},
		bson.M{"$addToSet": bson.M{"likes": postID}},
	)
	if err != nil {
		return false, storeErr("like", err)
	}
	if res.ModifiedCount == 1 {
		return true, nil
	}

	res, err = r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"likes": postID}})
	if err != nil {
		return false, storeErr("unlike", err)
	}
	if res.MatchedCount == 0 {
		return false, domain.ErrActorNotFound
	}
	return false, nil
}

func (r *ActorRepository) SetField(ctx context.Context, id, field, value string) error {
	if !settableFields[field] {
		return fmt.Errorf("field %q not settable on %s", field, r.t)
	}
	if value == "" {
		return r.update(ctx, "unset "+field, id, bson.M{"$unset": bson.M{field: ""}})
	}
	return r.update(ctx, "set "+field, id, bson.M{"$set": bson.M{field: value}})
}

func (r *ActorRepository) update(ctx context.Context, op, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return storeErr(op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrActorNotFound
	}
	return nil
}

func (r *ActorRepository) List(ctx context.Context, limit int) ([]domain.Actor, error) {
	return r.find(ctx, bson.M{}, limit)
}

// ListByTour returns the users whose tour is tourID.
func (r *ActorRepository) ListByTour(ctx context.Context, tourID string, limit int) ([]domain.Actor, error) {
	if tourID == "" {
		return nil, nil
	}
	return r.find(ctx, bson.M{domain.FieldTour: tourID}, limit)
}

func (r *ActorRepository) find(ctx context.Context, filter bson.M, limit int) ([]domain.Actor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list "+r.t.Collection(), err)
	}
	defer cur.Close(ctx)

	var out []domain.Actor
	for cur.Next(ctx) {
		actor := domain.New(r.t)
		if err := cur.Decode(actor); err != nil {
			return nil, fmt.Errorf("decode %s: %w", r.t, err)
		}
		out = append(out, actor)
	}
	if err := cur.Err(); err != nil {
		return nil, storeErr("list "+r.t.Collection(), err)
	}
	return out, nil
}

func (r *ActorRepository) Delete(ctx context.Context, id string) (domain.Actor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	actor := domain.New(r.t)
	if err := r.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(actor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrActorNotFound
		}
		return nil, storeErr("delete", err)
	}
	return actor, nil
}

// EnsureIndexes creates the unique email index, plus the tour index on users. Emails are stored normalized,
// so a plain unique index gives case-insensitive uniqueness.
func (r *ActorRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	models := []mongo.IndexModel{{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}}
	if r.t == domain.ActorUser {
		models = append(models, mongo.IndexModel{
			Keys:    bson.D{{Key: domain.FieldTour, Value: 1}},
			Options: options.Index().SetSparse(true).SetName("tour"),
		})
	}
	_, err := r.col.Indexes().CreateMany(ctx, models)
	return err
}

// storeErr marks timeouts and connection failures as domain.ErrStoreUnavailable.
func storeErr(op string, err error) error {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
