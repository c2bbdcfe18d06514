package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"unilink/media"
	"unilink/models"
	"unilink/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Expected business failure and success messages.
const (
	MsgContentRequired     = "Post must have content or media!"
	MsgTooManyFiles        = "You can upload up to 10 media files!"
	MsgPostNotFound        = "Post not found"
	MsgUserNotFound        = "User not found"
	MsgNotAuthorizedView   = "You are not authorized to view this post!"
	MsgNotAuthorizedDelete = "You are not authorized to delete this post!"
	MsgNotAuthorizedEdit   = "You are not authorized to edit this post!"
	MsgAlreadyLiked        = "Error! You have already liked this post!"
	MsgNotLikedYet         = "Error! You haven't liked this post yet!"
	MsgPostLiked           = "Post liked!"
	MsgPostUnliked         = "Post unliked!"
	MsgDeletionFailed      = "Media deletion failed!"
	MsgCaptionRequired     = "Caption cannot be empty!"
	MsgNoPoll              = "This post has no poll!"
	MsgPollExpired         = "Poll has expired!"
	MsgInvalidOption       = "Invalid poll option!"
	MsgNotAuthorizedVote   = "You are not authorized to vote on this poll!"
	MsgAlreadyVoted        = "You have already voted for this option!"
	MsgVoteRecorded        = "Vote recorded!"
)

// MaxMediaFiles caps the number of files accepted per post.
const MaxMediaFiles = 10

// Event is pushed to connected clients when engagement changes.
type Event struct {
	Type    string      `json:"type"`
	PostID  string      `json:"postId"`
	ActorID string      `json:"actorId"`
	Data    interface{} `json:"data,omitempty"`
}

// EventPublisher fans engagement events out to listeners. Publishing is
// best-effort and must never block a request.
type EventPublisher interface {
	Publish(event Event)
}

// Notifier delivers push notifications. Delivery failures are logged by
// the implementation, not surfaced to the caller.
type Notifier interface {
	SendToUser(ctx context.Context, userID primitive.ObjectID, title, body string)
}

// VoteReceipt is returned after a successful poll vote.
type VoteReceipt struct {
	OptionName string `json:"optionName"`
	TotalVotes int    `json:"totalVotes"`
}

type PostService struct {
	posts    repository.PostRepository
	users    repository.UserRepository
	media    media.Store
	notifier Notifier
	events   EventPublisher
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, store media.Store, notifier Notifier, events EventPublisher) *PostService {
	return &PostService{
		posts:    posts,
		users:    users,
		media:    store,
		notifier: notifier,
		events:   events,
	}
}

// CreatePost validates the input, classifies and uploads the media
// files, and persists the post. An unrecognized file type aborts the
// whole operation before anything is uploaded or persisted.
func (s *PostService) CreatePost(ctx context.Context, userID primitive.ObjectID, input CreatePostInput, files []FileUpload) (*Result, error) {
	if len(files) == 0 && input.Caption == "" {
		return Fail(http.StatusBadRequest, MsgContentRequired), nil
	}
	if len(files) > MaxMediaFiles {
		return Fail(http.StatusBadRequest, MsgTooManyFiles), nil
	}

	var poll *models.Poll
	if input.Poll != nil {
		var result *Result
		poll, result = buildPoll(input.Poll)
		if result != nil {
			return result, nil
		}
	}

	var eventID *primitive.ObjectID
	if input.EventID != "" {
		id, err := primitive.ObjectIDFromHex(input.EventID)
		if err != nil {
			return Fail(http.StatusBadRequest, "Invalid event ID"), nil
		}
		eventID = &id
	}

	// Classify everything up front so a bad file can't leave a partial
	// upload behind.
	kinds := make([]media.Kind, len(files))
	paths := make([]string, len(files))
	for i, f := range files {
		kind, ext, err := media.Classify(f.ContentType)
		if err != nil {
			return nil, NewError(http.StatusBadRequest, err.Error())
		}
		kinds[i] = kind
		paths[i] = media.StoragePath(kind, ext)
	}

	for i, f := range files {
		if _, err := s.media.Upload(ctx, f.Reader, paths[i], kinds[i]); err != nil {
			log.Printf("[CreatePost] upload failed for %s: %v", f.Name, err)
			return nil, NewError(http.StatusInternalServerError, "Failed to upload media")
		}
	}

	post := &models.Post{
		ID:      primitive.NewObjectID(),
		Creator: userID,
		Content: models.PostContent{
			Caption:   input.Caption,
			MediaURLs: paths,
		},
		Likes:     []primitive.ObjectID{},
		Comments:  []primitive.ObjectID{},
		Poll:      poll,
		Event:     eventID,
		CreatedAt: nowUnix(),
	}

	if _, err := s.posts.Create(ctx, post); err != nil {
		log.Printf("[CreatePost] persist failed: %v", err)
		return nil, NewError(http.StatusInternalServerError, "Failed to create post")
	}

	return Ok(http.StatusCreated, "Post created successfully", &PostForCreate{
		ID:        post.ID.Hex(),
		Caption:   post.Content.Caption,
		MediaURLs: post.Content.MediaURLs,
		CreatedAt: post.CreatedAt,
	}), nil
}

func buildPoll(input *PollInput) (*models.Poll, *Result) {
	if input.Question == "" || len(input.Options) < 2 {
		return nil, Fail(http.StatusBadRequest, "Poll needs a question and at least two options")
	}
	options := make([]models.PollOption, len(input.Options))
	for i, name := range input.Options {
		options[i] = models.PollOption{OptionName: name, Votes: []primitive.ObjectID{}}
	}
	return &models.Poll{
		Question:  input.Question,
		Options:   options,
		ExpiresAt: input.ExpiresAt,
	}, nil
}

// GetPostDetails loads a post and authorizes the requester: the author
// always may view, anyone else must be a friend of the creator or share
// a university with them.
func (s *PostService) GetPostDetails(ctx context.Context, postID, userID primitive.ObjectID) (*Result, error) {
	post, result, err := s.loadPost(ctx, postID)
	if post == nil {
		return result, err
	}

	viewer, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, s.lookupError(err, "viewer")
	}

	author := viewer
	if !post.IsAuthor(userID) {
		author, err = s.users.FindByID(ctx, post.Creator)
		if err != nil {
			return nil, s.lookupError(err, "creator")
		}
		if !models.CanInteract(viewer, author) {
			return Fail(http.StatusForbidden, MsgNotAuthorizedView), nil
		}
	}

	return Ok(http.StatusOK, "Post fetched successfully", postDetails(post, viewer, author)), nil
}

// LikePost appends the user to the post's like set. The duplicate guard
// lives here, not in storage.
func (s *PostService) LikePost(ctx context.Context, postID, userID primitive.ObjectID) (*Result, error) {
	post, result, err := s.loadPost(ctx, postID)
	if post == nil {
		return result, err
	}

	if post.IsLiked(userID) {
		return Fail(http.StatusBadRequest, MsgAlreadyLiked), nil
	}

	if err := s.posts.AddLike(ctx, postID, userID); err != nil {
		log.Printf("[LikePost] mutation failed: %v", err)
		return nil, NewError(http.StatusInternalServerError, "Failed to like post")
	}

	s.announceLike(ctx, post, userID)

	return Ok(http.StatusOK, MsgPostLiked, &PostForLike{
		ID:        post.ID.Hex(),
		LikeCount: post.LikeCount() + 1,
		IsLiked:   true,
	}), nil
}

// UnlikePost removes the user from the like set, guarded the same way.
func (s *PostService) UnlikePost(ctx context.Context, postID, userID primitive.ObjectID) (*Result, error) {
	post, result, err := s.loadPost(ctx, postID)
	if post == nil {
		return result, err
	}

	if !post.IsLiked(userID) {
		return Fail(http.StatusBadRequest, MsgNotLikedYet), nil
	}

	if err := s.posts.RemoveLike(ctx, postID, userID); err != nil {
		log.Printf("[UnlikePost] mutation failed: %v", err)
		return nil, NewError(http.StatusInternalServerError, "Failed to unlike post")
	}

	return Ok(http.StatusOK, MsgPostUnliked, &PostForLike{
		ID:        post.ID.Hex(),
		LikeCount: post.LikeCount() - 1,
		IsLiked:   false,
	}), nil
}

// DeletePost deletes the post's media files one by one, then the post
// row. The media loop fails fast: files already deleted are not
// re-created when a later one fails.
func (s *PostService) DeletePost(ctx context.Context, postID, userID primitive.ObjectID) (*Result, error) {
	post, result, err := s.loadPost(ctx, postID)
	if post == nil {
		return result, err
	}

	if !post.IsAuthor(userID) {
		return Fail(http.StatusForbidden, MsgNotAuthorizedDelete), nil
	}

	for _, path := range post.Content.MediaURLs {
		if err := s.media.Delete(ctx, path); err != nil {
			log.Printf("[DeletePost] media delete failed for %s: %v", path, err)
			return Fail(http.StatusInternalServerError, MsgDeletionFailed), nil
		}
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		log.Printf("[DeletePost] row delete failed: %v", err)
		return nil, NewError(http.StatusInternalServerError, "Failed to delete post")
	}

	return Ok(http.StatusOK, "Post deleted successfully", nil), nil
}

// UpdateCaption edits the caption and marks the post as updated.
func (s *PostService) UpdateCaption(ctx context.Context, postID, userID primitive.ObjectID, caption string) (*Result, error) {
	if caption == "" {
		return Fail(http.StatusBadRequest, MsgCaptionRequired), nil
	}

	post, result, err := s.loadPost(ctx, postID)
	if post == nil {
		return result, err
	}

	if !post.IsAuthor(userID) {
		return Fail(http.StatusForbidden, MsgNotAuthorizedEdit), nil
	}

	if err := s.posts.UpdateCaption(ctx, postID, caption); err != nil {
		log.Printf("[UpdateCaption] mutation failed: %v", err)
		return nil, NewError(http.StatusInternalServerError, "Failed to update post")
	}

	return Ok(http.StatusOK, "Post updated successfully", nil), nil
}

// GetFriendsPosts assembles the friends feed, newest first.
func (s *PostService) GetFriendsPosts(ctx context.Context, userID primitive.ObjectID, limit int64) (*Result, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return Fail(http.StatusNotFound, MsgUserNotFound), nil
	}
	if err != nil {
		return nil, s.lookupError(err, "user")
	}

	if len(user.Friends) == 0 {
		return Ok(http.StatusOK, "Posts fetched successfully", []*PostDetails{}), nil
	}

	posts, err := s.posts.FindByCreators(ctx, user.Friends, limit)
	if err != nil {
		log.Printf("[GetFriendsPosts] query failed: %v", err)
		return nil, NewError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	return Ok(http.StatusOK, "Posts fetched successfully", projectFeed(posts, user)), nil
}

// GetUniversityPosts assembles the university feed, newest first.
func (s *PostService) GetUniversityPosts(ctx context.Context, userID primitive.ObjectID, limit int64) (*Result, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err == repository.ErrNotFound {
		return Fail(http.StatusNotFound, MsgUserNotFound), nil
	}
	if err != nil {
		return nil, s.lookupError(err, "user")
	}

	posts, err := s.posts.FindByUniversity(ctx, user.University, limit)
	if err != nil {
		log.Printf("[GetUniversityPosts] query failed: %v", err)
		return nil, NewError(http.StatusInternalServerError, "Failed to fetch posts")
	}

	return Ok(http.StatusOK, "Posts fetched successfully", projectFeed(posts, user)), nil
}

// VotePoll casts or moves the user's single active vote. Voting the
// same option twice fails; voting a different option moves the vote and
// leaves totalVotes unchanged.
func (s *PostService) VotePoll(ctx context.Context, postID, userID primitive.ObjectID, optionName string) (*Result, error) {
	post, result, err := s.loadPost(ctx, postID)
	if post == nil {
		return result, err
	}

	poll := post.Poll
	if poll == nil {
		return Fail(http.StatusNotFound, MsgNoPoll), nil
	}
	if poll.IsExpired() {
		return Fail(http.StatusBadRequest, MsgPollExpired), nil
	}
	if !poll.HasOption(optionName) {
		return Fail(http.StatusBadRequest, MsgInvalidOption), nil
	}

	voter, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, s.lookupError(err, "voter")
	}
	creator := voter
	if !post.IsAuthor(userID) {
		creator, err = s.users.FindByID(ctx, post.Creator)
		if err != nil {
			return nil, s.lookupError(err, "creator")
		}
	}
	if !models.CanInteract(voter, creator) {
		return Fail(http.StatusForbidden, MsgNotAuthorizedVote), nil
	}

	existing := poll.FindVote(userID)
	if existing != nil && existing.OptionName == optionName {
		return Fail(http.StatusBadRequest, MsgAlreadyVoted), nil
	}
	firstVote := existing == nil

	if err := s.posts.CastVote(ctx, postID, userID, optionName, firstVote); err != nil {
		log.Printf("[VotePoll] mutation failed: %v", err)
		return nil, NewError(http.StatusInternalServerError, "Failed to record vote")
	}

	total := poll.TotalVotes
	if firstVote {
		total++
	}

	if s.events != nil {
		s.events.Publish(Event{
			Type:    "poll.voted",
			PostID:  post.ID.Hex(),
			ActorID: userID.Hex(),
			Data:    &VoteReceipt{OptionName: optionName, TotalVotes: total},
		})
	}

	return Ok(http.StatusOK, MsgVoteRecorded, &VoteReceipt{
		OptionName: optionName,
		TotalVotes: total,
	}), nil
}

// loadPost translates lookup outcomes into the two failure tiers.
// A nil post means the caller should return (result, err) as-is.
func (s *PostService) loadPost(ctx context.Context, postID primitive.ObjectID) (*models.Post, *Result, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err == repository.ErrNotFound {
		return nil, Fail(http.StatusNotFound, MsgPostNotFound), nil
	}
	if err != nil {
		log.Printf("[PostService] lookup failed: %v", err)
		return nil, nil, NewError(http.StatusInternalServerError, "Failed to fetch post")
	}
	return post, nil, nil
}

func (s *PostService) lookupError(err error, who string) *Error {
	log.Printf("[PostService] %s lookup failed: %v", who, err)
	return NewError(http.StatusInternalServerError, fmt.Sprintf("Failed to fetch %s", who))
}

// announceLike notifies the post creator and broadcasts the event.
// Both are best-effort: failures are logged and swallowed.
func (s *PostService) announceLike(ctx context.Context, post *models.Post, actorID primitive.ObjectID) {
	if s.events != nil {
		s.events.Publish(Event{
			Type:    "post.liked",
			PostID:  post.ID.Hex(),
			ActorID: actorID.Hex(),
			Data:    map[string]int{"likeCount": post.LikeCount() + 1},
		})
	}

	if s.notifier == nil || post.Creator == actorID {
		return
	}

	actorName := "Someone"
	if actor, err := s.users.FindByID(ctx, actorID); err == nil && actor.Name != "" {
		actorName = actor.Name
	}
	s.notifier.SendToUser(ctx, post.Creator, "New like", actorName+" liked your post")
}

func nowUnix() int64 {
	return time.Now().Unix()
}

func projectFeed(posts []*models.Post, viewer *models.User) []*PostDetails {
	feed := make([]*PostDetails, len(posts))
	for i, p := range posts {
		feed[i] = postDetails(p, viewer, p.User)
	}
	return feed
}
