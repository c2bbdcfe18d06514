package notifications

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PushSubscription stores one browser subscription per user.
type PushSubscription struct {
	ID     primitive.ObjectID   `bson:"_id,omitempty"`
	UserID primitive.ObjectID   `bson:"userId"`
	Sub    webpush.Subscription `bson:"sub"`
}

// PushNotifier sends web-push notifications. All sends are best-effort
// and run in the background; failures are logged, never returned.
type PushNotifier struct {
	subs            *mongo.Collection
	vapidPublicKey  string
	vapidPrivateKey string
}

func NewPushNotifier(subs *mongo.Collection) *PushNotifier {
	publicKey := os.Getenv("VAPID_PUBLIC_KEY")
	privateKey := os.Getenv("VAPID_PRIVATE_KEY")

	if publicKey == "" || privateKey == "" {
		var err error
		publicKey, privateKey, err = webpush.GenerateVAPIDKeys()
		if err != nil {
			log.Printf("Failed to generate VAPID keys: %v", err)
		} else {
			log.Println("⚠️  Generated new VAPID keys - for production, set these as environment variables:")
			log.Printf("   VAPID_PUBLIC_KEY: %s", publicKey)
			log.Printf("   VAPID_PRIVATE_KEY: %s", privateKey)
		}
	}

	return &PushNotifier{
		subs:            subs,
		vapidPublicKey:  publicKey,
		vapidPrivateKey: privateKey,
	}
}

func (n *PushNotifier) PublicKey() string {
	return n.vapidPublicKey
}

// SaveSubscription upserts the user's subscription.
func (n *PushNotifier) SaveSubscription(ctx context.Context, userID primitive.ObjectID, sub webpush.Subscription) error {
	filter, update := subscriptionUpsert(userID, sub)
	_, err := n.subs.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// subscriptionUpsert builds the filter and update for a subscription
// save. The update must not touch _id: a re-subscribe hits the existing
// document, and $set on the immutable _id fails the whole write. Mongo
// assigns the _id itself when the upsert inserts.
func subscriptionUpsert(userID primitive.ObjectID, sub webpush.Subscription) (bson.M, bson.M) {
	filter := bson.M{"userId": userID}
	update := bson.M{"$set": bson.M{
		"userId": userID,
		"sub":    sub,
	}}
	return filter, update
}

// SendToUser pushes a notification to the user's subscribed browser, if
// any. Expired subscriptions (410) are pruned.
func (n *PushNotifier) SendToUser(_ context.Context, userID primitive.ObjectID, title, body string) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic in push notification: %v", r)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var sub PushSubscription
		err := n.subs.FindOne(ctx, bson.M{"userId": userID}).Decode(&sub)
		if err == mongo.ErrNoDocuments {
			return // No subscription
		}
		if err != nil {
			log.Printf("Failed to find subscription for user %s: %v", userID.Hex(), err)
			return
		}

		payload, err := json.Marshal(map[string]interface{}{
			"title": title,
			"body":  body,
			"data": map[string]interface{}{
				"timestamp": time.Now().Unix(),
			},
		})
		if err != nil {
			log.Printf("Failed to marshal push payload: %v", err)
			return
		}

		resp, err := webpush.SendNotification(payload, &sub.Sub, &webpush.Options{
			Subscriber:      "mailto:admin@unilink.app",
			VAPIDPublicKey:  n.vapidPublicKey,
			VAPIDPrivateKey: n.vapidPrivateKey,
			TTL:             30,
		})
		if err != nil {
			log.Printf("Failed to send push notification to user %s: %v", userID.Hex(), err)
			if resp != nil && resp.StatusCode == 410 {
				if _, delErr := n.subs.DeleteOne(ctx, bson.M{"userId": userID}); delErr != nil {
					log.Printf("Failed to delete expired subscription: %v", delErr)
				}
			}
			return
		}
		resp.Body.Close()
	}()
}
