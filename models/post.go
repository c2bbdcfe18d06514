package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type PostContent struct {
	Caption   string   `bson:"caption" json:"caption"`
	MediaURLs []string `bson:"mediaUrls" json:"mediaUrls"`
}

type Post struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Creator      primitive.ObjectID   `bson:"creator" json:"creator"`
	Content      PostContent          `bson:"content" json:"content"`
	Likes        []primitive.ObjectID `bson:"likes" json:"likes"`
	Comments     []primitive.ObjectID `bson:"comments" json:"comments"`
	CommentCount int                  `bson:"commentCount" json:"commentCount"`
	Poll         *Poll                `bson:"poll,omitempty" json:"poll,omitempty"`
	Event        *primitive.ObjectID  `bson:"event,omitempty" json:"event,omitempty"`
	IsUpdated    bool                 `bson:"isUpdated" json:"isUpdated"`
	CreatedAt    int64                `bson:"createdAt" json:"createdAt"`

	User *User `bson:"-" json:"user,omitempty"` // Populated in response only
}

// IsAuthor reports whether userID created this post.
func (p *Post) IsAuthor(userID primitive.ObjectID) bool {
	return p.Creator == userID
}

// IsLiked reports whether userID has liked this post. Always false when
// the likes list is empty.
func (p *Post) IsLiked(userID primitive.ObjectID) bool {
	if len(p.Likes) == 0 {
		return false
	}
	for _, l := range p.Likes {
		if l == userID {
			return true
		}
	}
	return false
}

func (p *Post) LikeCount() int {
	return len(p.Likes)
}
