package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"unilink/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostHandler struct {
	posts *services.PostService
}

func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// CreatePost accepts either a JSON body (caption/poll only) or a
// multipart form with media files and a "post" JSON part.
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input services.CreatePostInput
	var files []services.FileUpload

	if c.ContentType() == "application/json" {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
			return
		}
	} else {
		if err := c.Request.ParseMultipartForm(32 << 20); err != nil && err != http.ErrNotMultipart {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form data"})
			return
		}

		input.Caption = c.PostForm("caption")
		input.EventID = c.PostForm("eventId")
		if pollJSON := c.PostForm("poll"); pollJSON != "" {
			if err := json.Unmarshal([]byte(pollJSON), &input.Poll); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid poll data"})
				return
			}
		}

		if form := c.Request.MultipartForm; form != nil {
			for _, header := range form.File["media"] {
				file, err := header.Open()
				if err != nil {
					c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read media file"})
					return
				}
				defer file.Close()
				files = append(files, services.FileUpload{
					Name:        header.Filename,
					ContentType: header.Header.Get("Content-Type"),
					Reader:      file,
				})
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := h.posts.CreatePost(ctx, userID, input, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

func (h *PostHandler) GetPostDetails(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.posts.GetPostDetails(ctx, postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

func (h *PostHandler) LikePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.posts.LikePost(ctx, postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

func (h *PostHandler) UnlikePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.posts.UnlikePost(ctx, postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	result, err := h.posts.DeletePost(ctx, postID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

func (h *PostHandler) UpdateCaption(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Caption string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.posts.UpdateCaption(ctx, postID, userID, req.Caption)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

func (h *PostHandler) GetFriendsFeed(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.posts.GetFriendsPosts(ctx, userID, feedLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

func (h *PostHandler) GetUniversityFeed(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.posts.GetUniversityPosts(ctx, userID, feedLimit(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

func (h *PostHandler) VotePoll(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		OptionName string `json:"optionName" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := h.posts.VotePoll(ctx, postID, userID, req.OptionName)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(result.Status, result)
}

// currentUser pulls the authenticated user's ID out of the context set
// by the JWT middleware.
func currentUser(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

func pathID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid post ID"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func feedLimit(c *gin.Context) int64 {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return 0
	}
	limit, err := strconv.ParseInt(limitStr, 10, 64)
	if err != nil || limit < 0 {
		return 0
	}
	return limit
}

// respondError translates the unexpected-failure tier into JSON.
func respondError(c *gin.Context, err error) {
	if svcErr, ok := err.(*services.Error); ok {
		c.JSON(svcErr.Code, gin.H{"error": svcErr.Error()})
		return
	}
	log.Printf("[handlers] unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": services.DefaultErrorMessage})
}
