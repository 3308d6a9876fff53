package handlers

import (
	"strconv"
	"talknfix/internal/middleware"
	"talknfix/internal/models"

	"github.com/gin-gonic/gin"
)

// CurrentUser 从上下文取出 AuthRequired 加载的用户
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(middleware.CheckUserKey).(*models.User)
}

// JSONError 统一错误响应
func JSONError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{
		"success": false,
		"message": message,
	})
}

// pageParams 解析分页参数，page 从 1 起，limit 默认 10 封顶 50
func pageParams(c *gin.Context) (page, limit, offset int) {
	page = 1
	if p, err := strconv.Atoi(c.Query("page")); err == nil && p > 0 {
		page = p
	}
	limit = 10
	if l, err := strconv.Atoi(c.Query("limit")); err == nil && l > 0 {
		limit = l
	}
	if limit > 50 {
		limit = 50
	}
	return page, limit, (page - 1) * limit
}
