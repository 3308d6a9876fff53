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

type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// areFriends 判断两个用户之间是否存在好友关系
func areFriends(userID, otherID uint) bool {
	var count int64
	db.DB.Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, otherID).
		Count(&count)
	return count > 0
}

// friendIDs 返回用户全部好友的 ID
func friendIDs(userID uint) []uint {
	var ids []uint
	db.DB.Model(&models.Friendship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids)
	return ids
}

// Profile - GET /api/users/:id
func (h *UserHandler) Profile(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var user models.User
	if err := db.DB.Preload("Badges").First(&user, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "User not found")
		return
	}

	// 好友列表（精简信息）
	var friendships []models.Friendship
	db.DB.Preload("Friend").Where("user_id = ?", user.ID).Find(&friendships)
	friends := make([]models.UserPreview, 0, len(friendships))
	for _, f := range friendships {
		friends = append(friends, f.Friend.Preview())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"user":    user,
		"friends": friends,
	})
}

// SearchUsers - GET /api/users/search?q=
func (h *UserHandler) SearchUsers(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		JSONError(c, http.StatusBadRequest, "Please provide a search query")
		return
	}

	pattern := "%" + query + "%"
	var users []models.User
	db.DB.Where("username ILIKE ? OR full_name ILIKE ?", pattern, pattern).
		Limit(20).
		Find(&users)

	previews := make([]models.UserPreview, 0, len(users))
	for i := range users {
		previews = append(previews, users[i].Preview())
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(previews),
		"users":   previews,
	})
}

// SendFriendRequest - POST /api/users/:id/friend-request
func (h *UserHandler) SendFriendRequest(c *gin.Context) {
	user := CurrentUser(c)
	targetID := utils.StringToUint(c.Param("id"))

	if targetID == user.ID {
		JSONError(c, http.StatusBadRequest, "Cannot send a friend request to yourself")
		return
	}

	var target models.User
	if err := db.DB.First(&target, targetID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "User not found")
		return
	}

	if areFriends(user.ID, targetID) {
		JSONError(c, http.StatusBadRequest, "Already friends")
		return
	}

	var count int64
	db.DB.Model(&models.FriendRequest{}).
		Where("from_id = ? AND to_id = ?", user.ID, targetID).
		Count(&count)
	if count > 0 {
		JSONError(c, http.StatusBadRequest, "Friend request already sent")
		return
	}

	request := models.FriendRequest{FromID: user.ID, ToID: targetID}
	if err := db.DB.Create(&request).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to send friend request")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Friend request sent",
	})
}

// AcceptFriendRequest - POST /api/users/friend-request/:requestId/accept
// requestId 为发起方用户 ID，与原 API 保持一致
func (h *UserHandler) AcceptFriendRequest(c *gin.Context) {
	user := CurrentUser(c)
	fromID := utils.StringToUint(c.Param("requestId"))

	var request models.FriendRequest
	if err := db.DB.Where("from_id = ? AND to_id = ?", fromID, user.ID).First(&request).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Friend request not found")
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&request).Error; err != nil {
			return err
		}
		// 双向写入好友关系
		if err := tx.Create(&models.Friendship{UserID: user.ID, FriendID: fromID}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Friendship{UserID: fromID, FriendID: user.ID}).Error
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to accept friend request")
		return
	}

	// 双方都获得交友声望
	rep := services.GetReputationService()
	rep.ScheduleAction(user.ID, services.ActionFriendAccepted)
	rep.ScheduleAction(fromID, services.ActionFriendAccepted)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Friend request accepted",
	})
}

// RejectFriendRequest - POST /api/users/friend-request/:requestId/reject
func (h *UserHandler) RejectFriendRequest(c *gin.Context) {
	user := CurrentUser(c)
	fromID := utils.StringToUint(c.Param("requestId"))

	db.DB.Where("from_id = ? AND to_id = ?", fromID, user.ID).
		Delete(&models.FriendRequest{})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Friend request rejected",
	})
}

// RemoveFriend - DELETE /api/users/:id/friend
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	user := CurrentUser(c)
	friendID := utils.StringToUint(c.Param("id"))

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ? AND friend_id = ?", user.ID, friendID).
			Delete(&models.Friendship{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, user.ID).
			Delete(&models.Friendship{}).Error
	})
	if err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to remove friend")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Friend removed",
	})
}

// FriendRequests - GET /api/users/friend-requests
func (h *UserHandler) FriendRequests(c *gin.Context) {
	user := CurrentUser(c)

	var requests []models.FriendRequest
	db.DB.Preload("From").
		Where("to_id = ?", user.ID).
		Order("created_at DESC").
		Find(&requests)

	type requestView struct {
		ID        uint               `json:"id"`
		From      models.UserPreview `json:"from"`
		CreatedAt string             `json:"created_at"`
	}
	views := make([]requestView, 0, len(requests))
	for _, r := range requests {
		views = append(views, requestView{
			ID:        r.FromID, // 与原 API 对齐：requestId 即发起方用户 ID
			From:      r.From.Preview(),
			CreatedAt: r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"requests": views,
	})
}
