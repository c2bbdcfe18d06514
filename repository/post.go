package repository

import (
	"context"
	"errors"

	"unilink/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("not found")

// PostRepository is the persistence port for posts. Likes and poll votes
// are mutated with array operators on the stored document, not by
// rewriting the whole post.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error)
	FindByCreators(ctx context.Context, creators []primitive.ObjectID, limit int64) ([]*models.Post, error)
	FindByUniversity(ctx context.Context, university string, limit int64) ([]*models.Post, error)
	AddLike(ctx context.Context, postID, userID primitive.ObjectID) error
	RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error
	UpdateCaption(ctx context.Context, postID primitive.ObjectID, caption string) error
	Delete(ctx context.Context, postID primitive.ObjectID) error
	CastVote(ctx context.Context, postID, userID primitive.ObjectID, optionName string, firstVote bool) error
}

type MongoPostRepository struct {
	posts *mongo.Collection
}

func NewMongoPostRepository(posts *mongo.Collection) *MongoPostRepository {
	return &MongoPostRepository{posts: posts}
}

func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {
	if _, err := r.posts.InsertOne(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Post, error) {
	var post models.Post
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// FindByCreators returns posts authored by any of the given users,
// newest first, with the author joined in for feed rendering.
func (r *MongoPostRepository) FindByCreators(ctx context.Context, creators []primitive.ObjectID, limit int64) ([]*models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "creator", Value: bson.D{{Key: "$in", Value: creators}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	return r.aggregatePosts(ctx, pipeline, limit, true)
}

// FindByUniversity returns posts whose creator attends the given
// university, newest first.
func (r *MongoPostRepository) FindByUniversity(ctx context.Context, university string, limit int64) ([]*models.Post, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "localField", Value: "creator"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "user"},
		}}},
		{{Key: "$unwind", Value: bson.D{{Key: "path", Value: "$user"}}}},
		{{Key: "$match", Value: bson.D{{Key: "user.university", Value: university}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}
	return r.aggregatePosts(ctx, pipeline, limit, false)
}

// aggregatePosts caps and runs the pipeline. joinUser adds the author
// join for pipelines that have not already pulled it in.
func (r *MongoPostRepository) aggregatePosts(ctx context.Context, pipeline mongo.Pipeline, limit int64, joinUser bool) ([]*models.Post, error) {
	if limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: limit}})
	}
	if joinUser {
		pipeline = append(pipeline,
			bson.D{{Key: "$lookup", Value: bson.D{
				{Key: "from", Value: "users"},
				{Key: "localField", Value: "creator"},
				{Key: "foreignField", Value: "_id"},
				{Key: "as", Value: "user"},
			}}},
			bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$user"},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			}}},
		)
	}

	cursor, err := r.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		models.Post `bson:",inline"`
		User        *models.User `bson:"user"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	posts := make([]*models.Post, len(rows))
	for i := range rows {
		p := rows[i].Post
		p.User = rows[i].User
		posts[i] = &p
	}
	return posts, nil
}

func (r *MongoPostRepository) AddLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	result, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$addToSet": bson.M{"likes": userID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) RemoveLike(ctx context.Context, postID, userID primitive.ObjectID) error {
	result, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"likes": userID}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) UpdateCaption(ctx context.Context, postID primitive.ObjectID, caption string) error {
	result, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$set": bson.M{
			"content.caption": caption,
			"isUpdated":       true,
		}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPostRepository) Delete(ctx context.Context, postID primitive.ObjectID) error {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CastVote moves the user's vote to the named option: any existing vote
// is pulled from every option before the new one is added. The two
// updates are not transactional; the service layer serializes the checks
// in front of them. totalVotes is only incremented for a first vote.
func (r *MongoPostRepository) CastVote(ctx context.Context, postID, userID primitive.ObjectID, optionName string, firstVote bool) error {
	_, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{"$pull": bson.M{"poll.options.$[].votes": userID}},
	)
	if err != nil {
		return err
	}

	update := bson.M{"$addToSet": bson.M{"poll.options.$[opt].votes": userID}}
	if firstVote {
		update["$inc"] = bson.M{"poll.totalVotes": 1}
	}

	result, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		update,
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []interface{}{bson.M{"opt.optionName": optionName}},
		}),
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
