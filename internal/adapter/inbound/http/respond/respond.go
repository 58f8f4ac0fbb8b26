// Package respond holds the JSON response helpers shared by the HTTP handlers.
package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/teamhub/server/internal/domain/collaboration"
	apperrors "github.com/teamhub/server/internal/utils/errors"
	"github.com/teamhub/server/internal/utils/logger"
	"github.com/teamhub/server/internal/utils/middleware"
)

// Error writes err as {"error":{"code","message"}} with the status of its category.
// Server errors are logged with their cause and answered generically.
func Error(c *gin.Context, err error) {
	appErr := apperrors.FromDomain(err)
	if appErr.StatusCode >= http.StatusInternalServerError {
		logger.FromContext(c.Request.Context()).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}

// BadRequest writes a 400 for an undecodable body.
func BadRequest(c *gin.Context, err error) {
	appErr := apperrors.BadRequest(err.Error())
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}

// Actor returns the authenticated user or writes a 401.
func Actor(c *gin.Context) (collaboration.UserID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		appErr := apperrors.Unauthorized("")
		c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
		return collaboration.UserID{}, false
	}
	return userID, true
}

// OK writes a 200 JSON body.
func OK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// Created writes a 201 JSON body.
func Created(c *gin.Context, body any) {
	c.JSON(http.StatusCreated, body)
}

// NoContent writes a 204.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
