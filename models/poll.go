package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PollOption struct {
	OptionName string               `bson:"optionName" json:"optionName"`
	Votes      []primitive.ObjectID `bson:"votes" json:"votes"`
}

// Poll is embedded in a Post and has no lifecycle of its own. A voter
// appears in at most one option's vote set at a time.
type Poll struct {
	Question   string       `bson:"question" json:"question"`
	Options    []PollOption `bson:"options" json:"options"`
	TotalVotes int          `bson:"totalVotes" json:"totalVotes"`
	ExpiresAt  int64        `bson:"expiresAt" json:"expiresAt"`
}

// FindVote returns the option holding userID's vote, or nil if the user
// has not voted.
func (p *Poll) FindVote(userID primitive.ObjectID) *PollOption {
	for i := range p.Options {
		for _, v := range p.Options[i].Votes {
			if v == userID {
				return &p.Options[i]
			}
		}
	}
	return nil
}

// HasOption reports whether an option with the exact name exists.
func (p *Poll) HasOption(optionName string) bool {
	for i := range p.Options {
		if p.Options[i].OptionName == optionName {
			return true
		}
	}
	return false
}

// IsExpired compares the deadline against wall-clock time at call time.
// No grace window.
func (p *Poll) IsExpired() bool {
	return time.Now().Unix() >= p.ExpiresAt
}
