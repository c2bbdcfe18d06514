package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash *string            `bson:"passwordHash,omitempty" json:"-"`

	Name       string               `bson:"name" json:"name"`
	University string               `bson:"university" json:"university"`
	Department string               `bson:"department" json:"department"`
	Photo      string               `bson:"photo" json:"photo"`
	Friends    []primitive.ObjectID `bson:"friends" json:"friends"`

	CreatedAt int64 `bson:"createdAt" json:"createdAt"`
	LastSeen  int64 `bson:"lastSeen" json:"lastSeen"`
}

// IsFriendOf reports whether userID is in this user's friends list.
func (u *User) IsFriendOf(userID primitive.ObjectID) bool {
	for _, f := range u.Friends {
		if f == userID {
			return true
		}
	}
	return false
}

// CanInteract is the single authorization gate shared by post viewing,
// feed assembly and poll voting: the actor must be a friend of the
// subject or attend the same university. University comparison is
// case-sensitive.
func CanInteract(actor, subject *User) bool {
	if actor.IsFriendOf(subject.ID) {
		return true
	}
	return actor.University == subject.University
}
