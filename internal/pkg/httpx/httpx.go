// Package httpx holds the response conventions shared by every gin handler.
package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/i18n"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
)

const (
	LoginPath     = "/login"
	RegisterPath  = "/register"
	DashboardPath = "/dashboard"
)

type Responder struct {
	messages *i18n.Bundle
	logger   logger.ZapLogger
}

func NewResponder(messages *i18n.Bundle, log logger.ZapLogger) *Responder {
	return &Responder{messages: messages, logger: log}
}

// Languages returns the caller's preferred languages, most preferred first.
func Languages(c *gin.Context) []string {
	if accept := c.GetHeader("Accept-Language"); accept != "" {
		return []string{accept}
	}
	return nil
}

func (r *Responder) T(c *gin.Context, messageID string) string {
	return r.messages.Localize(messageID, Languages(c)...)
}

func (r *Responder) TAll(c *gin.Context, messageIDs []string) []string {
	out := make([]string, 0, len(messageIDs))
	for _, id := range messageIDs {
		out = append(out, r.T(c, id))
	}
	return out
}

// SeeOther redirects after a form post so a reload does not resubmit it.
func SeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

// Error writes the response for err and aborts the chain.
func (r *Responder) Error(c *gin.Context, err error) {
	if ve, ok := apperror.AsValidation(err); ok {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"errors": r.messages.LocalizeAll(ve.Fields, Languages(c)...),
		})
		return
	}

	switch {
	case errors.Is(err, apperror.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": r.T(c, i18n.MsgNotFound)})
	case errors.Is(err, apperror.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": r.T(c, i18n.MsgForbidden)})
	case errors.Is(err, apperror.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": r.T(c, i18n.MsgInvalidCredentials)})
	case errors.Is(err, apperror.ErrUnauthenticated):
		SeeOther(c, LoginPath)
		c.Abort()
	case errors.Is(err, apperror.ErrNoVendor):
		SeeOther(c, RegisterPath)
		c.Abort()
	case errors.Is(err, apperror.ErrQuotaExceeded):
		SeeOther(c, DashboardPath)
		c.Abort()
	default:
		r.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": r.T(c, i18n.MsgInternal)})
	}
}

// Bind decodes the form or JSON body into dst. Malformed bodies are answered with 400.
func (r *Responder) Bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		r.logger.Debug("malformed request body", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": r.T(c, validation.MsgInvalid)})
		return false
	}
	return true
}

// ParamID reads a positive integer path parameter. Anything else is a 404.
func (r *Responder) ParamID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		r.Error(c, apperror.ErrNotFound)
		return 0, false
	}
	return id, true
}
