package notifications

import (
	"testing"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSubscriptionUpsertLeavesIDAlone(t *testing.T) {
	userID := primitive.NewObjectID()
	sub := webpush.Subscription{Endpoint: "https://push.example.com/ep"}

	filter, update := subscriptionUpsert(userID, sub)
	assert.Equal(t, bson.M{"userId": userID}, filter)

	set, ok := update["$set"].(bson.M)
	require.True(t, ok)

	// A re-subscribe hits the existing document; $set on _id would be
	// rejected by the server and fail the whole write.
	assert.NotContains(t, set, "_id")
	assert.Equal(t, userID, set["userId"])
	assert.Equal(t, sub, set["sub"])
}
