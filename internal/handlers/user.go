package handlers

import (
	"net/http"

	"github.com/feed-system/social-demo/internal/models"
	"github.com/feed-system/social-demo/internal/services"
	"github.com/feed-system/social-demo/pkg/logger"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService     *services.UserService
	activityService *services.ActivityService
	logger          *logger.Logger
}

// NewUserHandler wires the user routes. activityService may be nil, in which
// case the activity route is not registered.
func NewUserHandler(userService *services.UserService, activityService *services.ActivityService, logger *logger.Logger) *UserHandler {
	return &UserHandler{
		userService:     userService,
		activityService: activityService,
		logger:          logger,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("", h.ListUsers)
		users.GET("/me", h.GetCurrentUser)
		users.GET("/search", h.SearchUsers)
		users.GET("/suggestions", h.GetSuggestions)
		users.GET("/:id", h.GetProfile)
		users.PUT("/:id", h.UpdateProfile)
		users.POST("/:id/follow", h.Follow)
		users.DELETE("/:id/follow", h.Unfollow)
		if h.activityService != nil {
			users.GET("/:id/activity", h.GetActivity)
		}
	}
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetCurrentUser(c *gin.Context) {
	user, err := h.userService.GetCurrentUser(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

func (h *UserHandler) Follow(c *gin.Context) {
	targetID := c.Param("id")
	if targetID == models.CurrentUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot follow yourself"})
		return
	}

	user, err := h.userService.FollowUser(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Followed successfully",
		"user":    user,
	})
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	targetID := c.Param("id")
	if targetID == models.CurrentUserID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cannot unfollow yourself"})
		return
	}

	user, err := h.userService.UnfollowUser(c.Request.Context(), targetID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Unfollowed successfully",
		"user":    user,
	})
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")

	users, err := h.userService.SearchUsers(c.Request.Context(), query)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"query": query,
	})
}

func (h *UserHandler) GetSuggestions(c *gin.Context) {
	users, err := h.userService.GetSuggestions(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

func (h *UserHandler) GetActivity(c *gin.Context) {
	userID := c.Param("id")

	counts, err := h.activityService.Get(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  userID,
		"activity": counts,
	})
}
