package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newPoll(expiresAt int64) *Poll {
	return &Poll{
		Question: "Best study spot?",
		Options: []PollOption{
			{OptionName: "Library", Votes: []primitive.ObjectID{}},
			{OptionName: "Cafe", Votes: []primitive.ObjectID{}},
		},
		ExpiresAt: expiresAt,
	}
}

func TestPollFindVote(t *testing.T) {
	voter := primitive.NewObjectID()
	poll := newPoll(time.Now().Add(time.Hour).Unix())

	assert.Nil(t, poll.FindVote(voter))

	poll.Options[1].Votes = append(poll.Options[1].Votes, voter)
	option := poll.FindVote(voter)
	require.NotNil(t, option)
	assert.Equal(t, "Cafe", option.OptionName)
}

func TestPollHasOption(t *testing.T) {
	poll := newPoll(time.Now().Add(time.Hour).Unix())

	assert.True(t, poll.HasOption("Library"))
	assert.False(t, poll.HasOption("library"))
	assert.False(t, poll.HasOption("Gym"))
}

func TestPollIsExpired(t *testing.T) {
	active := newPoll(time.Now().Add(time.Hour).Unix())
	assert.False(t, active.IsExpired())

	expired := newPoll(time.Now().Add(-time.Second).Unix())
	assert.True(t, expired.IsExpired())

	// Deadline exactly now counts as expired, no grace window
	boundary := newPoll(time.Now().Unix())
	assert.True(t, boundary.IsExpired())
}
