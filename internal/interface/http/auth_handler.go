package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-restaurant-orders/internal/application"
	"github.com/oksasatya/go-restaurant-orders/pkg/response"
	"github.com/oksasatya/go-restaurant-orders/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type registerRequest struct {
	Username string `json:"username" binding:"required,username"`
	Password string `json:"password" binding:"required,pwd"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// loginResponse is the flat body clients read the token from.
type loginResponse struct {
	Status int    `json:"status"`
	Token  string `json:"token"`
	Name   string `json:"name"`
}

// Register POST /register {username, password}
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing fields", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err, "error registering user")
		return
	}
	h.Logger.WithField("user_id", u.ID).Info("user registered")
	response.Success(c, http.StatusCreated, gin.H{"id": u.ID, "username": u.Username}, "user registered successfully", nil)
}

// Login POST /login {username, password}
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "missing fields", validation.ToDetails(err))
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err, "error logging in")
		return
	}
	h.Logger.WithField("user_id", res.UserID).Info("user logged in")
	c.JSON(http.StatusOK, loginResponse{Status: http.StatusOK, Token: res.Token, Name: res.Name})
}
