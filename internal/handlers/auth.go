package handlers

import (
	"net/http"
	"strings"
	"talknfix/internal/db"
	"talknfix/internal/models"
	"talknfix/internal/services"
	"talknfix/internal/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	FullName string `json:"fullName"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register - POST /api/auth/register
// 邮箱必须在白名单内才允许注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Please provide username, email and password")
		return
	}

	if len(req.Password) < 6 {
		JSONError(c, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 白名单校验
	var entry models.Whitelist
	if err := db.DB.Where("email = ?", email).First(&entry).Error; err != nil {
		JSONError(c, http.StatusForbidden, "Email is not whitelisted for registration")
		return
	}

	// 重复注册检查
	var count int64
	db.DB.Model(&models.User{}).
		Where("email = ? OR username = ?", email, req.Username).
		Count(&count)
	if count > 0 {
		JSONError(c, http.StatusConflict, "User already exists")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user := models.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    email,
		Password: hash,
		Level:    1,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Login - POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Please provide email and password")
		return
	}

	var user models.User
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := db.DB.Where("email = ?", email).First(&user).Error; err != nil {
		JSONError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if !utils.CheckPasswordHash(req.Password, user.Password) {
		JSONError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	// 每日登录奖励，当日只发一次
	if !services.HasLoggedInToday(user.ID) {
		services.GetReputationService().ScheduleAction(user.ID, services.ActionDailyLogin)
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"user":    user,
	})
}

// Me - GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := CurrentUser(c)

	// 附带勋章
	db.DB.Preload("Badges").First(user, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
	})
}

// UpdateLanguage - PUT /api/auth/language
func (h *AuthHandler) UpdateLanguage(c *gin.Context) {
	user := CurrentUser(c)

	var req struct {
		Language string `json:"language" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Please provide a language")
		return
	}

	if req.Language != "en" && req.Language != "zh" {
		JSONError(c, http.StatusBadRequest, "Unsupported language")
		return
	}

	if err := db.DB.Model(user).Update("language", req.Language).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to update language")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"language": req.Language,
	})
}
