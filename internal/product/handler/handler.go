package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fekuna/marketplace-service/internal/auth"
	"github.com/fekuna/marketplace-service/internal/pkg/apperror"
	"github.com/fekuna/marketplace-service/internal/pkg/httpx"
	"github.com/fekuna/marketplace-service/internal/pkg/i18n"
	"github.com/fekuna/marketplace-service/internal/pkg/logger"
	"github.com/fekuna/marketplace-service/internal/pkg/pagination"
	"github.com/fekuna/marketplace-service/internal/pkg/validation"
	"github.com/fekuna/marketplace-service/internal/product"
	"github.com/fekuna/marketplace-service/internal/product/dto"
)

type ProductHandler struct {
	uc        product.UseCase
	sessions  auth.SessionStore
	responder *httpx.Responder
	logger    logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, sessions auth.SessionStore, responder *httpx.Responder, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:        uc,
		sessions:  sessions,
		responder: responder,
		logger:    log,
	}
}

type productRequest struct {
	Name        string `form:"name" json:"name"`
	Description string `form:"description" json:"description"`
	Price       string `form:"price" json:"price"`
	Category    string `form:"category" json:"category"`
	ImageURL    string `form:"image_url" json:"image_url"`
	IsActive    string `form:"is_active" json:"is_active"`
}

// parsed turns the raw form values into typed ones. Unparseable values are reported
// separately so the usecase still gets to run its own checks first.
func (r productRequest) parsed() (price decimal.Decimal, categoryID *int64, badPrice bool) {
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		price, badPrice = decimal.Zero, true
	}
	if raw := strings.TrimSpace(r.Category); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// No category has id 0, so this surfaces as an unknown category.
			id = 0
		}
		categoryID = &id
	}
	return price, categoryID, badPrice
}

func checked(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

func (h *ProductHandler) Dashboard(c *gin.Context) {
	p := auth.CurrentPrincipal(c)

	board, err := h.uc.Dashboard(c.Request.Context(), p.UserID, pagination.ParseNumber(c.Query("page")))
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	messages, err := h.sessions.DrainFlash(c.Request.Context(), p.SessionID)
	if err != nil {
		h.logger.Warn("failed to read flash messages", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{
		"dashboard": board,
		"messages":  h.responder.TAll(c, messages),
	})
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	p := auth.CurrentPrincipal(c)

	var req productRequest
	if !h.responder.Bind(c, &req) {
		return
	}
	price, categoryID, badPrice := req.parsed()

	_, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		UserID:      p.UserID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	})
	if errors.Is(err, apperror.ErrQuotaExceeded) {
		h.flash(c, p, i18n.MsgQuotaExceeded)
		httpx.SeeOther(c, httpx.DashboardPath)
		return
	}
	if err != nil {
		h.responder.Error(c, withPriceFormat(err, badPrice))
		return
	}

	h.flash(c, p, i18n.MsgProductCreated)
	httpx.SeeOther(c, httpx.DashboardPath)
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	p := auth.CurrentPrincipal(c)
	id, ok := h.responder.ParamID(c, "id")
	if !ok {
		return
	}

	var req productRequest
	if !h.responder.Bind(c, &req) {
		return
	}
	price, categoryID, badPrice := req.parsed()

	_, err := h.uc.UpdateProduct(c.Request.Context(), &dto.UpdateProductInput{
		ID:          id,
		UserID:      p.UserID,
		CategoryID:  categoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       price,
		ImageURL:    strings.TrimSpace(req.ImageURL),
		IsActive:    checked(req.IsActive),
	})
	if err != nil {
		h.responder.Error(c, withPriceFormat(err, badPrice))
		return
	}

	h.flash(c, p, i18n.MsgProductUpdated)
	httpx.SeeOther(c, httpx.DashboardPath)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	p := auth.CurrentPrincipal(c)
	id, ok := h.responder.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.DeleteProduct(c.Request.Context(), id, p.UserID); err != nil {
		h.responder.Error(c, err)
		return
	}

	h.flash(c, p, i18n.MsgProductDeleted)
	httpx.SeeOther(c, httpx.DashboardPath)
}

func (h *ProductHandler) flash(c *gin.Context, p *auth.Principal, messageID string) {
	if err := h.sessions.PushFlash(c.Request.Context(), p.SessionID, messageID); err != nil {
		h.logger.Warn("failed to store flash message", zap.String("message", messageID), zap.Error(err))
	}
}

// withPriceFormat replaces the range message with a format one when the price was not a number.
func withPriceFormat(err error, badPrice bool) error {
	if ve, ok := apperror.AsValidation(err); ok && badPrice {
		if _, flagged := ve.Fields["price"]; flagged {
			ve.Fields["price"] = validation.MsgInvalid
		}
	}
	return err
}
