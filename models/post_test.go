package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostIsLikedEmptyLikes(t *testing.T) {
	post := &Post{Likes: []primitive.ObjectID{}}

	assert.False(t, post.IsLiked(primitive.NewObjectID()))
	assert.False(t, post.IsLiked(primitive.NilObjectID))
	assert.Equal(t, 0, post.LikeCount())
}

func TestPostIsLiked(t *testing.T) {
	liker := primitive.NewObjectID()
	other := primitive.NewObjectID()
	post := &Post{Likes: []primitive.ObjectID{liker}}

	assert.True(t, post.IsLiked(liker))
	assert.False(t, post.IsLiked(other))
	assert.Equal(t, 1, post.LikeCount())
}

func TestPostIsAuthor(t *testing.T) {
	creator := primitive.NewObjectID()
	post := &Post{Creator: creator}

	assert.True(t, post.IsAuthor(creator))
	assert.False(t, post.IsAuthor(primitive.NewObjectID()))
}

func TestCanInteract(t *testing.T) {
	creator := &User{ID: primitive.NewObjectID(), University: "MIT"}

	friend := &User{
		ID:         primitive.NewObjectID(),
		University: "Stanford",
		Friends:    []primitive.ObjectID{creator.ID},
	}
	assert.True(t, CanInteract(friend, creator))

	classmate := &User{ID: primitive.NewObjectID(), University: "MIT"}
	assert.True(t, CanInteract(classmate, creator))

	stranger := &User{ID: primitive.NewObjectID(), University: "Stanford"}
	assert.False(t, CanInteract(stranger, creator))

	// University match is case-sensitive
	lowercase := &User{ID: primitive.NewObjectID(), University: "mit"}
	assert.False(t, CanInteract(lowercase, creator))
}
