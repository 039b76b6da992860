package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront/database"
	"storefront/logger"
	"storefront/services"
)

// AuthController exposes signup, login, logout and the session probe.
type AuthController struct {
	Auth   *services.AuthService
	Orders *database.OrderRepository
}

func NewAuthController(auth *services.AuthService, orders *database.OrderRepository) *AuthController {
	return &AuthController{Auth: auth, Orders: orders}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup creates an account and logs it in.
func (ac *AuthController) Signup(c *gin.Context) {
	var req services.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	user, fieldErrs, err := ac.Auth.Signup(c.Request.Context(), req)
	if err == services.ErrDuplicateAccount {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
		return
	}
	if err != nil {
		logger.Error(c, "signup failed", err, zap.String("email", req.Email))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}
	if len(fieldErrs) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"field_errors": fieldErrs})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"name": user.Name, "email": user.Email})
}

// Login authenticates and sets the session user.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	user, err := ac.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err == services.ErrInvalidCredentials {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		logger.Error(c, "login failed", err, zap.String("email", req.Email))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"name": user.Name, "email": user.Email})
}

// Logout clears the session.
func (ac *AuthController) Logout(c *gin.Context) {
	if err := ac.Auth.Logout(c.Request.Context()); err != nil {
		logger.Error(c, "logout failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to log out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// Me returns the session user, or 401 when nobody is logged in.
func (ac *AuthController) Me(c *gin.Context) {
	user, err := ac.Auth.CurrentUser(c.Request.Context())
	if err != nil {
		logger.Error(c, "session read failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read session"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": user.Name, "email": user.Email})
}

// MyOrders returns the receipts of the session user, oldest first.
func (ac *AuthController) MyOrders(c *gin.Context) {
	user, err := ac.Auth.CurrentUser(c.Request.Context())
	if err != nil {
		logger.Error(c, "session read failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read session"})
		return
	}
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not logged in"})
		return
	}

	orders, err := ac.Orders.ForUser(c.Request.Context(), user.Email)
	if err != nil {
		logger.Error(c, "orders read failed", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}
