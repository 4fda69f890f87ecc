package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fekuna/marketplace-service/internal/auth"
	"github.com/fekuna/marketplace-service/internal/auth/dto"
	"github.com/fekuna/marketplace-service/internal/pkg/httpx"
)

type CookieConfig struct {
	Name   string
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	uc        auth.UseCase
	responder *httpx.Responder
	cookie    CookieConfig
}

func NewAuthHandler(uc auth.UseCase, responder *httpx.Responder, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, responder: responder, cookie: cookie}
}

type registerRequest struct {
	Username        string `form:"username" json:"username"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password1" json:"password1"`
	PasswordConfirm string `form:"password2" json:"password2"`
	Name            string `form:"name" json:"name"`
	Description     string `form:"description" json:"description"`
	WhatsAppNumber  string `form:"whatsapp_number" json:"whatsapp_number"`
	ImageURL        string `form:"image_url" json:"image_url"`
}

type loginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}

// Form answers GET /register and GET /login: signed-in users go straight to the dashboard.
func (h *AuthHandler) Form(fields ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth.CurrentPrincipal(c) != nil {
			httpx.SeeOther(c, httpx.DashboardPath)
			return
		}
		c.JSON(http.StatusOK, gin.H{"fields": fields})
	}
}

func (h *AuthHandler) Register() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if !h.responder.Bind(c, &req) {
			return
		}

		user, _, err := h.uc.Register(c.Request.Context(), &dto.RegisterInput{
			Username:        req.Username,
			Email:           req.Email,
			Password:        req.Password,
			PasswordConfirm: req.PasswordConfirm,
			ShopName:        req.Name,
			Description:     req.Description,
			WhatsAppNumber:  req.WhatsAppNumber,
			ImageURL:        req.ImageURL,
		})
		if err != nil {
			h.responder.Error(c, err)
			return
		}

		token, err := h.uc.StartSession(c.Request.Context(), user.ID)
		if err != nil {
			h.responder.Error(c, err)
			return
		}
		h.setCookie(c, token)
		httpx.SeeOther(c, httpx.DashboardPath)
	}
}

func (h *AuthHandler) Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if !h.responder.Bind(c, &req) {
			return
		}

		token, _, err := h.uc.Login(c.Request.Context(), &dto.LoginInput{
			Username: req.Username,
			Password: req.Password,
		})
		if err != nil {
			h.responder.Error(c, err)
			return
		}
		h.setCookie(c, token)
		httpx.SeeOther(c, safeNext(c.Query("next")))
	}
}

func (h *AuthHandler) Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if p := auth.CurrentPrincipal(c); p != nil {
			if err := h.uc.Logout(c.Request.Context(), p.Token); err != nil {
				h.responder.Error(c, err)
				return
			}
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
		httpx.SeeOther(c, httpx.LoginPath)
	}
}

func (h *AuthHandler) setCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, int(h.cookie.TTL.Seconds()), "/", "", h.cookie.Secure, true)
}

// safeNext only follows local paths after login.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return httpx.DashboardPath
}
