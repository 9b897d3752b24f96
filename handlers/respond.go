package handlers

import (
	"net/http"

	"partnerhub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondOK writes the standard success envelope.
func respondOK(c *gin.Context, status int, message string, data any) {
	body := gin.H{"success": true, "data": data}
	if message != "" {
		body["message"] = message
	}
	c.JSON(status, body)
}

// respondError renders err as {success:false, message, kind}. Internal failures are
// logged with their cause and shown with a generic message.
func respondError(c *gin.Context, err error) {
	kind := utils.KindOf(err)
	logger := getLogger(c)
	if kind == utils.KindInternal {
		logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	} else {
		logger.Info("request rejected", zap.String("path", c.FullPath()), zap.String("kind", string(kind)), zap.Error(err))
	}
	c.JSON(utils.HTTPStatus(kind), utils.ErrorResponse{
		Message: utils.PublicMessage(err),
		Kind:    kind,
	})
}

func respondBindError(c *gin.Context, err error) {
	getLogger(c).Debug("invalid request body", zap.Error(err))
	c.JSON(http.StatusBadRequest, utils.ErrorResponse{
		Message: "Invalid request",
		Kind:    utils.KindInvalidArgument,
		Details: err.Error(),
	})
}
