package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/savvy/internal/dtos"
	"github.com/justsurfingit/savvy/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	UserService  *services.UserService
	Associations *services.AssociationManager
	Logger       *zap.Logger
}

func NewUserHandler(users *services.UserService, assoc *services.AssociationManager, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		UserService:  users,
		Associations: assoc,
		Logger:       logger,
	}
}

type edgeFunc func(ctx context.Context, ownerID, targetID uint) error

// CreateUser is the POST /api/users endpoint
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req dtos.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, "Invalid JSON format: "+err.Error())
		return
	}
	user, err := h.UserService.CreateUser(c.Request.Context(), &req)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	// A new user has no relations yet.
	c.JSON(http.StatusCreated, dtos.NewUserResponse(user))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.respondWithUser(c, id)
}

func (h *UserHandler) GetSavedPosts(c *gin.Context) {
	h.listRelation(c, func(r dtos.UserResponse) gin.H { return gin.H{"posts_saved": r.PostsSaved} })
}

func (h *UserHandler) GetAppliedPosts(c *gin.Context) {
	h.listRelation(c, func(r dtos.UserResponse) gin.H { return gin.H{"posts_applied": r.PostsApplied} })
}

func (h *UserHandler) GetTags(c *gin.Context) {
	h.listRelation(c, func(r dtos.UserResponse) gin.H { return gin.H{"tags": r.Tags} })
}

func (h *UserHandler) AddSavedPost(c *gin.Context) {
	h.addEdge(c, postFromBody, h.Associations.AddSavedPost)
}

func (h *UserHandler) RemoveSavedPost(c *gin.Context) {
	h.removeEdge(c, "post_id", h.Associations.RemoveSavedPost)
}

func (h *UserHandler) AddAppliedPost(c *gin.Context) {
	h.addEdge(c, postFromBody, h.Associations.AddAppliedPost)
}

func (h *UserHandler) RemoveAppliedPost(c *gin.Context) {
	h.removeEdge(c, "post_id", h.Associations.RemoveAppliedPost)
}

func (h *UserHandler) AddTag(c *gin.Context) {
	h.addEdge(c, tagFromBody, h.Associations.AddTagToUser)
}

func (h *UserHandler) RemoveTag(c *gin.Context) {
	h.removeEdge(c, "tag_id", h.Associations.RemoveTagFromUser)
}

func postFromBody(c *gin.Context) (uint, bool) {
	var req dtos.PostEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, "Missing post_id")
		return 0, false
	}
	return req.PostID, true
}

func tagFromBody(c *gin.Context) (uint, bool) {
	var req dtos.TagEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		failure(c, http.StatusBadRequest, "Missing tag_id")
		return 0, false
	}
	return req.TagID, true
}

func (h *UserHandler) addEdge(c *gin.Context, target func(*gin.Context) (uint, bool), op edgeFunc) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	targetID, ok := target(c)
	if !ok {
		return
	}
	if err := op(c.Request.Context(), userID, targetID); err != nil {
		failWith(c, h.Logger, err)
		return
	}
	h.respondWithUser(c, userID)
}

func (h *UserHandler) removeEdge(c *gin.Context, targetParam string, op edgeFunc) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	targetID, ok := pathID(c, targetParam)
	if !ok {
		return
	}
	if err := op(c.Request.Context(), userID, targetID); err != nil {
		failWith(c, h.Logger, err)
		return
	}
	h.respondWithUser(c, userID)
}

func (h *UserHandler) listRelation(c *gin.Context, pick func(dtos.UserResponse) gin.H) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := h.UserService.GetUser(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, pick(dtos.NewUserResponse(user)))
}

func (h *UserHandler) respondWithUser(c *gin.Context, id uint) {
	user, err := h.UserService.GetUser(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewUserResponse(user))
}
