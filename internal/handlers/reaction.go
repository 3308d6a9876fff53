package handlers

import (
	"net/http"
	"talknfix/internal/db"
	"talknfix/internal/models"
	"talknfix/internal/services"
	"talknfix/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReactionHandler struct{}

func NewReactionHandler() *ReactionHandler {
	return &ReactionHandler{}
}

// 反应类型到声望动作的映射
var receiveActions = map[string]services.Action{
	models.ReactionLike:       services.ActionReceiveLike,
	models.ReactionUpvote:     services.ActionReceiveUpvote,
	models.ReactionHelpful:    services.ActionReceiveHelpful,
	models.ReactionInsightful: services.ActionReceiveInsightful,
}

var loseActions = map[string]services.Action{
	models.ReactionLike:       services.ActionLoseLike,
	models.ReactionUpvote:     services.ActionLoseUpvote,
	models.ReactionHelpful:    services.ActionLoseHelpful,
	models.ReactionInsightful: services.ActionLoseInsightful,
}

// helpful 和 insightful 都计入"有帮助"计数器
func countsAsHelpful(reactionType string) bool {
	return reactionType == models.ReactionHelpful || reactionType == models.ReactionInsightful
}

// creditAuthor 给帖子作者结算收到反应的声望与计数器。
// direction 为 +1（收到）或 -1（失去）；自己给自己的帖子反应不计分。
func creditAuthor(authorID, actorID uint, reactionType string, direction int) {
	if authorID == actorID {
		return
	}

	rep := services.GetReputationService()
	if direction > 0 {
		rep.ScheduleAction(authorID, receiveActions[reactionType])
	} else {
		rep.ScheduleAction(authorID, loseActions[reactionType])
	}
	rep.ScheduleStat(authorID, services.StatTotalReceived, direction)
	if countsAsHelpful(reactionType) {
		rep.ScheduleStat(authorID, services.StatHelpfulReceived, direction)
	}
}

// Toggle - POST /api/reactions
// 同类型再次提交即取消，不同类型即切换
func (h *ReactionHandler) Toggle(c *gin.Context) {
	user := CurrentUser(c)

	var req struct {
		PostID uint   `json:"postId" binding:"required"`
		Type   string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Please provide postId")
		return
	}
	if req.Type == "" {
		req.Type = models.ReactionLike
	}
	if !models.ValidReactionType(req.Type) {
		JSONError(c, http.StatusBadRequest, "Invalid reaction type")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, req.PostID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}

	var existing models.Reaction
	err := db.DB.Where("post_id = ? AND user_id = ?", post.ID, user.ID).First(&existing).Error

	if err == nil {
		if existing.Type == req.Type {
			// 取消反应
			txErr := db.DB.Transaction(func(tx *gorm.DB) error {
				if err := tx.Delete(&existing).Error; err != nil {
					return err
				}
				return tx.Model(&models.Post{}).
					Where("id = ?", post.ID).
					UpdateColumn("reactions_count", gorm.Expr("GREATEST(reactions_count - 1, 0)")).Error
			})
			if txErr != nil {
				JSONError(c, http.StatusInternalServerError, "Failed to remove reaction")
				return
			}

			creditAuthor(post.UserID, user.ID, req.Type, -1)

			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Reaction removed",
				"reacted": false,
			})
			return
		}

		// 切换类型：总数不变，作者失去旧类型分值、获得新类型分值
		oldType := existing.Type
		existing.Type = req.Type
		if err := db.DB.Save(&existing).Error; err != nil {
			JSONError(c, http.StatusInternalServerError, "Failed to update reaction")
			return
		}

		if post.UserID != user.ID {
			rep := services.GetReputationService()
			rep.ScheduleAction(post.UserID, loseActions[oldType])
			rep.ScheduleAction(post.UserID, receiveActions[req.Type])
			if countsAsHelpful(oldType) != countsAsHelpful(req.Type) {
				if countsAsHelpful(req.Type) {
					rep.ScheduleStat(post.UserID, services.StatHelpfulReceived, 1)
				} else {
					rep.ScheduleStat(post.UserID, services.StatHelpfulReceived, -1)
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"message":  "Reaction updated",
			"reacted":  true,
			"reaction": existing,
		})
		return
	}

	// 新增反应
	reaction := models.Reaction{
		PostID: post.ID,
		UserID: user.ID,
		Type:   req.Type,
	}
	txErr := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reaction).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", post.ID).
			UpdateColumn("reactions_count", gorm.Expr("reactions_count + 1")).Error
	})
	if txErr != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to add reaction")
		return
	}

	creditAuthor(post.UserID, user.ID, req.Type, 1)

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Reaction added",
		"reacted":  true,
		"reaction": reaction,
	})
}

// List - GET /api/reactions/:postId
func (h *ReactionHandler) List(c *gin.Context) {
	postID := utils.StringToUint(c.Param("postId"))

	var reactions []models.Reaction
	db.DB.Preload("User").Where("post_id = ?", postID).Find(&reactions)

	byType := make(map[string]int)
	for _, r := range reactions {
		byType[r.Type]++
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"total":     len(reactions),
		"byType":    byType,
		"reactions": reactions,
	})
}

// Check - GET /api/reactions/:postId/check
func (h *ReactionHandler) Check(c *gin.Context) {
	user := CurrentUser(c)
	postID := utils.StringToUint(c.Param("postId"))

	var reaction models.Reaction
	err := db.DB.Where("post_id = ? AND user_id = ?", postID, user.ID).First(&reaction).Error
	if err != nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"reacted": false,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"reacted":  true,
		"reaction": reaction,
	})
}
