package handlers

import (
	"net/http"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/services"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService    *services.PostService
	commentService *services.CommentService
	logger         *logger.Logger
}

func NewPostHandler(postService *services.PostService, commentService *services.CommentService, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postService:    postService,
		commentService: commentService,
		logger:         logger,
	}
}

func (h *PostHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/feed", h.GetFeed)
	r.GET("/users/:id/posts", h.GetUserPosts)

	posts := r.Group("/posts")
	{
		posts.GET("", h.ListPosts)
		posts.POST("", h.CreatePost)
		posts.GET("/:id", h.GetPost)
		posts.PUT("/:id", h.UpdatePost)
		posts.DELETE("/:id", h.DeletePost)
		posts.POST("/:id/like", h.ToggleLike)
		posts.GET("/:id/comments", h.GetPostComments)
	}
}

func (h *PostHandler) ListPosts(c *gin.Context) {
	posts, err := h.postService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) GetFeed(c *gin.Context) {
	posts, err := h.postService.GetFeed(c.Request.Context(), currentOr(c.Query("user_id")))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) GetUserPosts(c *gin.Context) {
	posts, err := h.postService.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	var req models.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.postService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	var patch models.PostPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"post":    post,
	})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	if err := h.postService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ToggleLike accepts an optional {"user_id": ...} body; without one the
// current user likes or unlikes the post.
func (h *PostHandler) ToggleLike(c *gin.Context) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	userID := currentOr(req.UserID)
	post, err := h.postService.ToggleLike(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post":  post,
		"liked": post.LikedBy(userID),
	})
}

func (h *PostHandler) GetPostComments(c *gin.Context) {
	comments, err := h.commentService.GetByPostID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}
