package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/savvy/internal/dtos"
	"github.com/justsurfingit/savvy/internal/services"
	"go.uber.org/zap"
)

type PostHandler struct {
	PostService  *services.PostService
	Matcher      *services.MatcherService
	Associations *services.AssociationManager
	Logger       *zap.Logger
}

func NewPostHandler(posts *services.PostService, matcher *services.MatcherService, assoc *services.AssociationManager, logger *zap.Logger) *PostHandler {
	return &PostHandler{
		PostService:  posts,
		Matcher:      matcher,
		Associations: assoc,
		Logger:       logger,
	}
}

// ListPosts is the GET /posts/ endpoint. The field, location, payment and
// qualifications query parameters narrow the result to posts with those tags.
func (h *PostHandler) ListPosts(c *gin.Context) {
	var filter dtos.PostFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		failure(c, http.StatusBadRequest, "Invalid filter: "+err.Error())
		return
	}
	posts, err := h.Matcher.FilterPosts(c.Request.Context(), filter)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": dtos.NewPostResponses(posts)})
}

func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.PostService.GetPost(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewPostResponse(post))
}

func (h *PostHandler) GetSavers(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.Associations.SaversOf(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dtos.NewUserSummaries(users)})
}

func (h *PostHandler) GetApplicants(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	users, err := h.Associations.ApplicantsOf(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": dtos.NewUserSummaries(users)})
}
