package services

import (
	"io"

	"unilink/models"
)

// CreatePostInput is the inbound shape for post creation.
type CreatePostInput struct {
	Caption string     `json:"caption"`
	Poll    *PollInput `json:"poll,omitempty"`
	EventID string     `json:"eventId,omitempty"`
}

type PollInput struct {
	Question  string   `json:"question"`
	Options   []string `json:"options"`
	ExpiresAt int64    `json:"expiresAt"`
}

// FileUpload pairs a file stream with its declared MIME type.
type FileUpload struct {
	Name        string
	ContentType string
	Reader      io.Reader
}

// UserForPost is the read-only projection of a user for feed rendering.
type UserForPost struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	University string `json:"university"`
	Department string `json:"department"`
	Photo      string `json:"photo"`
}

// PostForCreate echoes the accepted input back on success.
type PostForCreate struct {
	ID        string   `json:"id"`
	Caption   string   `json:"caption"`
	MediaURLs []string `json:"mediaUrls"`
	CreatedAt int64    `json:"createdAt"`
}

// PostDetails is the single-post read projection.
type PostDetails struct {
	ID           string       `json:"id"`
	User         *UserForPost `json:"user,omitempty"`
	Caption      string       `json:"caption"`
	MediaURLs    []string     `json:"mediaUrls"`
	LikeCount    int          `json:"likeCount"`
	CommentCount int          `json:"commentCount"`
	IsLiked      bool         `json:"isLiked"`
	IsUpdated    bool         `json:"isUpdated"`
	Poll         *models.Poll `json:"poll,omitempty"`
	CreatedAt    int64        `json:"createdAt"`
}

// PostForLike is returned from like/unlike mutations.
type PostForLike struct {
	ID        string `json:"id"`
	LikeCount int    `json:"likeCount"`
	IsLiked   bool   `json:"isLiked"`
}

func userForPost(u *models.User) *UserForPost {
	if u == nil {
		return nil
	}
	return &UserForPost{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		University: u.University,
		Department: u.Department,
		Photo:      u.Photo,
	}
}

func postDetails(p *models.Post, viewer *models.User, author *models.User) *PostDetails {
	details := &PostDetails{
		ID:           p.ID.Hex(),
		User:         userForPost(author),
		Caption:      p.Content.Caption,
		MediaURLs:    p.Content.MediaURLs,
		LikeCount:    p.LikeCount(),
		CommentCount: p.CommentCount,
		IsUpdated:    p.IsUpdated,
		Poll:         p.Poll,
		CreatedAt:    p.CreatedAt,
	}
	if viewer != nil {
		details.IsLiked = p.IsLiked(viewer.ID)
	}
	return details
}
