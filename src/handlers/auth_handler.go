package handlers

import (
	"errors"
	"net/http"
	"strings"

	"taskman-app/src/datamode"
	"taskman-app/src/logger"
	"taskman-app/src/models"
	"taskman-app/src/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AuthHandler 認証ハンドラー。
// ログイン・ログアウトがデータモードの切り替えを駆動する
type AuthHandler struct {
	authService service.AuthService
	modes       *datamode.Selector
}

// NewAuthHandler 認証ハンドラーのコンストラクタ
func NewAuthHandler(authService service.AuthService, modes *datamode.Selector) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		modes:       modes,
	}
}

// Register 新規登録
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// 新規登録処理
	authResponse, err := h.authService.Register(&req)
	if err != nil {
		if errors.Is(err, service.ErrCloudDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cloud store is not configured"})
			return
		}
		if strings.Contains(err.Error(), "email already exists") {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
			return
		}
		logger.WithField("error", err.Error()).Error("ユーザー登録に失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
		return
	}

	// 登録直後からクラウドストアを使う
	h.modes.OnLogin(authResponse.User.ID)

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"data":    authResponse,
	})
}

// Login ログイン
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	// ログイン処理
	authResponse, err := h.authService.Login(&req)
	if err != nil {
		if errors.Is(err, service.ErrCloudDisabled) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Cloud store is not configured"})
			return
		}
		if strings.Contains(err.Error(), "invalid credentials") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
			return
		}
		if strings.Contains(err.Error(), "account is deactivated") {
			c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
			return
		}
		logger.WithField("error", err.Error()).Error("ログインに失敗")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	// データモードをクラウドに切り替え
	h.modes.OnLogin(authResponse.User.ID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    authResponse,
	})
}

// RefreshToken トークンリフレッシュ
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	type RefreshRequest struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	authResponse, err := h.authService.RefreshToken(req.RefreshToken)
	if err != nil {
		if strings.Contains(err.Error(), "invalid refresh token") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Token refresh failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed successfully",
		"data":    authResponse,
	})
}

// GetProfile 現在のユーザープロフィールを取得
func (h *AuthHandler) GetProfile(c *gin.Context) {
	// ミドルウェアから認証されたユーザーを取得
	userInterface, exists := c.Get("user")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	user, ok := userInterface.(*models.User)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user data"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": user.ToPublic(),
	})
}

// Logout ログアウトしてローカルストアに戻す
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := h.modes.UserID()
	h.modes.OnLogout()

	logger.WithFields(logrus.Fields{
		"user_id": userID,
	}).Info("ログアウトしました")

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully logged out",
	})
}
