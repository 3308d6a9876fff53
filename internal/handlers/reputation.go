package handlers

import (
	"net/http"
	"time"

	"talknfix/internal/db"
	"talknfix/internal/models"
	"talknfix/internal/services"
	"talknfix/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReputationHandler struct{}

func NewReputationHandler() *ReputationHandler {
	return &ReputationHandler{}
}

func (h *ReputationHandler) summary(c *gin.Context, userID uint) {
	summary, err := services.GetReputationService().Summary(userID)
	if err != nil {
		if err == services.ErrUserNotFound {
			JSONError(c, http.StatusNotFound, "User not found")
			return
		}
		JSONError(c, http.StatusInternalServerError, "Failed to load reputation")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"reputation": summary,
	})
}

// Mine - GET /api/reputation/me
func (h *ReputationHandler) Mine(c *gin.Context) {
	h.summary(c, CurrentUser(c).ID)
}

// ByUser - GET /api/reputation/:userId
func (h *ReputationHandler) ByUser(c *gin.Context) {
	h.summary(c, utils.StringToUint(c.Param("userId")))
}

// History - GET /api/reputation/me/history
func (h *ReputationHandler) History(c *gin.Context) {
	user := CurrentUser(c)

	var logs []models.ReputationLog
	db.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(100).
		Find(&logs)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"history": logs,
	})
}

// leaderboardEntry 排行榜单行
type leaderboardEntry struct {
	Rank       int                `json:"rank"`
	User       models.UserPreview `json:"user"`
	Reputation int                `json:"reputation"`
	Level      int                `json:"level"`
	BadgeCount int                `json:"badgeCount"`
}

// Leaderboard - GET /api/reputation/leaderboard
// 声望前 20 名，结果缓存 1 分钟
func (h *ReputationHandler) Leaderboard(c *gin.Context) {
	const cacheKey = "reputation:leaderboard"
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if entries, ok := cached.([]leaderboardEntry); ok {
			c.JSON(http.StatusOK, gin.H{
				"success":     true,
				"leaderboard": entries,
			})
			return
		}
	}

	var users []models.User
	db.DB.Preload("Badges").
		Order("reputation DESC, id ASC").
		Limit(20).
		Find(&users)

	entries := make([]leaderboardEntry, 0, len(users))
	for i := range users {
		entries = append(entries, leaderboardEntry{
			Rank:       i + 1,
			User:       users[i].Preview(),
			Reputation: users[i].Reputation,
			Level:      users[i].Level,
			BadgeCount: len(users[i].Badges),
		})
	}

	utils.GetCache().Set(cacheKey, entries, 1*time.Minute)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"leaderboard": entries,
	})
}
