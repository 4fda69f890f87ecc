package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/marketplace-service/internal/catalog"
	"github.com/fekuna/marketplace-service/internal/catalog/dto"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/httpx"
	"github.com/fekuna/marketplace-service/internal/pkg/pagination"
)

type Images struct {
	DefaultVendor  string
	DefaultProduct string
}

type CatalogHandler struct {
	uc        catalog.UseCase
	responder *httpx.Responder
	images    Images
}

func NewCatalogHandler(uc catalog.UseCase, responder *httpx.Responder, images Images) *CatalogHandler {
	return &CatalogHandler{
		uc:        uc,
		responder: responder,
		images:    images,
	}
}

type vendorSummary struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	SubscriptionPlan string `json:"subscription_plan"`
	WhatsAppNumber   string `json:"whatsapp_number"`
	ImageURL         string `json:"image_url"`
}

type productSummary struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Price          string `json:"price"`
	Description    string `json:"description"`
	ImageURL       string `json:"image_url"`
	Vendor         string `json:"vendor"`
	VendorWhatsApp string `json:"vendor_whatsapp"`
}

// Home serves GET /?q=&category=&page=.
func (h *CatalogHandler) Home(c *gin.Context) {
	res, err := h.uc.Browse(c.Request.Context(), &dto.BrowseInput{
		Query:        c.Query("q"),
		CategorySlug: c.Query("category"),
		Page:         pagination.ParseNumber(c.Query("page")),
	})
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *CatalogHandler) ProductDetail(c *gin.Context) {
	id, ok := h.responder.ParamID(c, "id")
	if !ok {
		return
	}

	listing, err := h.uc.ProductDetail(c.Request.Context(), id)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, listing)
}

func (h *CatalogHandler) VendorDetail(c *gin.Context) {
	id, ok := h.responder.ParamID(c, "id")
	if !ok {
		return
	}

	sf, err := h.uc.VendorStorefront(c.Request.Context(), id)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, sf)
}

func (h *CatalogHandler) ListVendors(c *gin.Context) {
	vendors, err := h.uc.ListVerifiedVendors(c.Request.Context())
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	out := make([]vendorSummary, len(vendors))
	for i := range vendors {
		out[i] = h.mapVendor(c, &vendors[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	listings, err := h.uc.ListActiveProducts(c.Request.Context())
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	out := make([]productSummary, len(listings))
	for i := range listings {
		out[i] = h.mapProduct(c, &listings[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *CatalogHandler) mapVendor(c *gin.Context, v *model.Vendor) vendorSummary {
	return vendorSummary{
		ID:               v.ID,
		Name:             v.Name,
		Description:      v.Description,
		SubscriptionPlan: v.SubscriptionPlan,
		WhatsAppNumber:   v.WhatsAppNumber,
		ImageURL:         absoluteURL(c, imageOr(v.ImageURL, h.images.DefaultVendor)),
	}
}

func (h *CatalogHandler) mapProduct(c *gin.Context, l *model.ProductListing) productSummary {
	return productSummary{
		ID:             l.ID,
		Name:           l.Name,
		Price:          l.Price.StringFixed(2),
		Description:    l.Description,
		ImageURL:       absoluteURL(c, imageOr(l.ImageURL, h.images.DefaultProduct)),
		Vendor:         l.VendorName,
		VendorWhatsApp: l.VendorWhatsAppNumber,
	}
}

func imageOr(url *string, fallback string) string {
	if url == nil || *url == "" {
		return fallback
	}
	return *url
}

// absoluteURL resolves site-relative paths against the request host.
func absoluteURL(c *gin.Context, path string) string {
	if !strings.HasPrefix(path, "/") || strings.HasPrefix(path, "//") {
		return path
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + path
}
