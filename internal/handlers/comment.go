package handlers

import (
	"net/http"
	"strings"
	"talknfix/internal/db"
	"talknfix/internal/models"
	"talknfix/internal/services"
	"talknfix/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

// Create - POST /api/comments
func (h *CommentHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req struct {
		PostID  uint   `json:"postId" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Please provide postId and content")
		return
	}

	var post models.Post
	if err := db.DB.First(&post, req.PostID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}

	comment := models.Comment{
		Cid:     utils.RandStringBytesMaskImpr(8),
		PostID:  post.ID,
		UserID:  user.ID,
		Content: utils.SanitizeHTML(strings.TrimSpace(req.Content)),
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&models.Post{}).
			Where("id = ?", post.ID).
			UpdateColumn("comments_count", gorm.Expr("comments_count + 1")).Error
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to create comment")
		return
	}

	db.DB.Preload("User").First(&comment, comment.ID)

	rep := services.GetReputationService()
	rep.ScheduleAction(user.ID, services.ActionCommentCreated)
	rep.ScheduleStat(user.ID, services.StatTotalComments, 1)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"comment": comment,
	})
}

// List - GET /api/comments/:postId
func (h *CommentHandler) List(c *gin.Context) {
	postID := utils.StringToUint(c.Param("postId"))

	var comments []models.Comment
	db.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(comments),
		"comments": comments,
	})
}

// Delete - DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if comment.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "Not authorized to delete this comment")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&comment).Error; err != nil {
			return err
		}
		// 计数下限为 0
		return tx.Model(&models.Post{}).
			Where("id = ?", comment.PostID).
			UpdateColumn("comments_count", gorm.Expr("GREATEST(comments_count - 1, 0)")).Error
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to delete comment")
		return
	}

	rep := services.GetReputationService()
	rep.ScheduleAction(user.ID, services.ActionCommentDeleted)
	rep.ScheduleStat(user.ID, services.StatTotalComments, -1)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Comment deleted successfully",
	})
}

// Accept - POST /api/comments/:id/accept
// 帖子作者将一条评论采纳为答案，同一帖子同时只保留一条被采纳的评论
func (h *CommentHandler) Accept(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.Preload("Post").First(&comment, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if comment.Post.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "Only the post author can accept an answer")
		return
	}
	if comment.UserID == user.ID {
		JSONError(c, http.StatusBadRequest, "Cannot accept your own comment")
		return
	}
	if comment.IsAccepted {
		JSONError(c, http.StatusBadRequest, "Comment is already accepted")
		return
	}

	var count int64
	db.DB.Model(&models.Comment{}).
		Where("post_id = ? AND is_accepted = ?", comment.PostID, true).
		Count(&count)
	if count > 0 {
		JSONError(c, http.StatusBadRequest, "Post already has an accepted answer")
		return
	}

	if err := db.DB.Model(&comment).Update("is_accepted", true).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to accept comment")
		return
	}

	// 被采纳者获得声望
	rep := services.GetReputationService()
	rep.ScheduleAction(comment.UserID, services.ActionAnswerAccepted)
	rep.ScheduleStat(comment.UserID, services.StatAcceptedAnswers, 1)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Answer accepted",
	})
}

// Unaccept - POST /api/comments/:id/unaccept
func (h *CommentHandler) Unaccept(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.Preload("Post").First(&comment, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Comment not found")
		return
	}
	if comment.Post.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "Only the post author can unaccept an answer")
		return
	}
	if !comment.IsAccepted {
		JSONError(c, http.StatusBadRequest, "Comment is not accepted")
		return
	}

	if err := db.DB.Model(&comment).Update("is_accepted", false).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to unaccept comment")
		return
	}

	rep := services.GetReputationService()
	rep.ScheduleAction(comment.UserID, services.ActionAnswerUnaccepted)
	rep.ScheduleStat(comment.UserID, services.StatAcceptedAnswers, -1)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Answer unaccepted",
	})
}
