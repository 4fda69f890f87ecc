package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/fekuna/marketplace-service/internal/auth"
	"github.com/fekuna/marketplace-service/internal/pkg/httpx"
	"github.com/fekuna/marketplace-service/internal/pkg/i18n"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/seller"
	"github.com/fekuna/marketplace-service/internal/seller/dto"
)

type VendorHandler struct {
	uc        seller.UseCase
	sessions  auth.SessionStore
	responder *httpx.Responder
	logger    logger.ZapLogger
}

func NewVendorHandler(uc seller.UseCase, sessions auth.SessionStore, responder *httpx.Responder, log logger.ZapLogger) *VendorHandler {
	return &VendorHandler{
		uc:        uc,
		sessions:  sessions,
		responder: responder,
		logger:    log,
	}
}

type profileRequest struct {
	Name           string `form:"name" json:"name"`
	Description    string `form:"description" json:"description"`
	WhatsAppNumber string `form:"whatsapp_number" json:"whatsapp_number"`
	ImageURL       string `form:"image_url" json:"image_url"`
}

func (h *VendorHandler) Premium(c *gin.Context) {
	p := auth.CurrentPrincipal(c)

	status, err := h.uc.PremiumStatus(c.Request.Context(), p.UserID)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *VendorHandler) UpdateProfile(c *gin.Context) {
	p := auth.CurrentPrincipal(c)

	var req profileRequest
	if !h.responder.Bind(c, &req) {
		return
	}

	_, err := h.uc.UpdateProfile(c.Request.Context(), &dto.UpdateProfileInput{
		UserID:         p.UserID,
		Name:           req.Name,
		Description:    req.Description,
		WhatsAppNumber: req.WhatsAppNumber,
		ImageURL:       req.ImageURL,
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	if err := h.sessions.PushFlash(c.Request.Context(), p.SessionID, i18n.MsgProfileUpdated); err != nil {
		h.logger.Warn("failed to store flash message", zap.Error(err))
	}
	httpx.SeeOther(c, httpx.DashboardPath)
}
