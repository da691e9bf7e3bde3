package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/savvy/internal/dtos"
	"github.com/justsurfingit/savvy/internal/services"
	"go.uber.org/zap"
)

type TagHandler struct {
	TagService *services.TagService
	Logger     *zap.Logger
}

func NewTagHandler(tags *services.TagService, logger *zap.Logger) *TagHandler {
	return &TagHandler{TagService: tags, Logger: logger}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.TagService.ListTags(c.Request.Context(), c.Query("type"))
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": dtos.NewTagResponses(tags)})
}

func (h *TagHandler) GetTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag, err := h.TagService.GetTag(c.Request.Context(), id)
	if err != nil {
		failWith(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, dtos.NewTagResponse(tag))
}
