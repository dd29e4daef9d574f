package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/medhq/hospital-api/internal/handler"
	"github.com/medhq/hospital-api/internal/middleware"
	"github.com/medhq/hospital-api/internal/model"
	"github.com/medhq/hospital-api/internal/service/auth"
	apperrors "github.com/medhq/hospital-api/pkg/errors"
)

type Handler struct {
	service *auth.Service
}

func NewHandler(service *auth.Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts signup and login outside the auth middleware.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/signup", h.Signup)
	r.POST("/auth/login", h.Login)
}

// RegisterProtectedRoutes mounts the session-check endpoint.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/auth/me", h.Me)
}

func (h *Handler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	user, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Signup successful", "user": user})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handler.BindError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Me(c *gin.Context) {
	id, err := uuid.Parse(c.GetString(middleware.ContextUserID))
	if err != nil {
		handler.Error(c, apperrors.Auth("invalid token"))
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}
