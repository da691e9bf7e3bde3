package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	apperrors "github.com/justsurfingit/savvy/internal/errors"
	"go.uber.org/zap"
)

var statusByType = map[apperrors.ErrorType]int{
	apperrors.ErrTypeValidation:       http.StatusBadRequest,
	apperrors.ErrTypeNotFound:         http.StatusNotFound,
	apperrors.ErrTypeEdgeNotFound:     http.StatusNotFound,
	apperrors.ErrTypeUnsupportedMedia: http.StatusUnsupportedMediaType,
	apperrors.ErrTypeUpload:           http.StatusBadGateway,
	apperrors.ErrTypeUnavailable:      http.StatusServiceUnavailable,
	apperrors.ErrTypeInternal:         http.StatusInternalServerError,
}

func failure(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}

// failWith maps a service error to its status code. Internal errors are
// logged and hidden from the client.
func failWith(c *gin.Context, logger *zap.Logger, err error) {
	errType := apperrors.TypeOf(err)
	status, ok := statusByType[errType]
	if !ok {
		status = http.StatusInternalServerError
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("type", string(errType)),
			zap.Error(err))
		if errType == apperrors.ErrTypeInternal {
			failure(c, status, "internal server error")
			return
		}
	}
	_ = c.Error(err)
	failure(c, status, apperrors.MessageOf(err))
}

// pathID reads a positive integer path parameter, answering 400 when it is
// malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		failure(c, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
