package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/marketplace-service/internal/category"
	"github.com/fekuna/marketplace-service/internal/model"
	"github.com/fekuna/marketplace-service/internal/pkg/httpx"
)

type CategoryHandler struct {
	uc        category.UseCase
	responder *httpx.Responder
}

func NewCategoryHandler(uc category.UseCase, responder *httpx.Responder) *CategoryHandler {
	return &CategoryHandler{
		uc:        uc,
		responder: responder,
	}
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	cats, err := h.uc.ListCategories(c.Request.Context())
	if err != nil {
		h.responder.Error(c, err)
		return
	}

	out := make([]categoryResponse, len(cats))
	for i := range cats {
		out[i] = mapModelToResponse(&cats[i])
	}
	c.JSON(http.StatusOK, out)
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, ok := h.responder.ParamID(c, "id")
	if !ok {
		return
	}

	cat, err := h.uc.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.responder.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, mapModelToResponse(cat))
}

func mapModelToResponse(m *model.Category) categoryResponse {
	return categoryResponse{ID: m.ID, Name: m.Name, Slug: m.Slug}
}
