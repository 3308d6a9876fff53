package handlers

import (
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"talknfix/internal/db"
	"talknfix/internal/models"
	"talknfix/internal/services"
	"talknfix/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PostHandler struct{}

func NewPostHandler() *PostHandler {
	return &PostHandler{}
}

// attachUserReactions 批量填充当前用户对一组帖子的反应类型
func attachUserReactions(posts []models.Post, userID uint) {
	if len(posts) == 0 {
		return
	}

	postIDs := make([]uint, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
	}

	var reactions []models.Reaction
	db.DB.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&reactions)

	byPost := make(map[uint]string, len(reactions))
	for _, r := range reactions {
		byPost[r.PostID] = r.Type
	}
	for i := range posts {
		posts[i].UserReaction = byPost[posts[i].ID]
	}
}

// hiddenPostIDs 当前用户隐藏的帖子 ID
func hiddenPostIDs(userID uint) []uint {
	var ids []uint
	db.DB.Model(&models.HiddenPost{}).
		Where("user_id = ?", userID).
		Pluck("post_id", &ids)
	return ids
}

// visibleScope 信息流可见性条件：公开帖 ∪ 好友的私密帖 ∪ 自己的全部帖子
func visibleScope(userID uint) func(tx *gorm.DB) *gorm.DB {
	friends := friendIDs(userID)
	return func(tx *gorm.DB) *gorm.DB {
		if len(friends) == 0 {
			return tx.Where("visibility = ? OR user_id = ?", models.VisibilityPublic, userID)
		}
		return tx.Where(
			"visibility = ? OR (visibility = ? AND user_id IN ?) OR user_id = ?",
			models.VisibilityPublic, models.VisibilityPrivate, friends, userID,
		)
	}
}

// sanitizeContent 按内容类型清洗/渲染正文
func sanitizeContent(content, contentType string) string {
	switch contentType {
	case "markdown":
		return utils.RenderMarkdown(content)
	case "text":
		return content
	default:
		return utils.SanitizeHTML(content)
	}
}

// Create - POST /api/posts （multipart 表单，最多 5 张图片）
func (h *PostHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	title := strings.TrimSpace(c.PostForm("title"))
	content := c.PostForm("content")
	if title == "" || content == "" {
		JSONError(c, http.StatusBadRequest, "Please provide a title and content")
		return
	}
	if len(title) > 200 {
		JSONError(c, http.StatusBadRequest, "Title cannot exceed 200 characters")
		return
	}
	if len(content) > 10000 {
		JSONError(c, http.StatusBadRequest, "Content cannot exceed 10000 characters")
		return
	}

	visibility := c.DefaultPostForm("visibility", models.VisibilityPublic)
	if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
		JSONError(c, http.StatusBadRequest, "Invalid visibility")
		return
	}
	contentType := c.DefaultPostForm("contentType", "html")

	images, err := services.SaveUploadedImages(c, "images")
	if err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}

	post := models.Post{
		Pid:         utils.RandStringBytesMaskImpr(8),
		UserID:      user.ID,
		Title:       title,
		Content:     sanitizeContent(content, contentType),
		ContentType: contentType,
		Visibility:  visibility,
		Tags:        c.PostFormArray("tags"),
		Images:      images,
	}

	if err := db.DB.Create(&post).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to create post")
		return
	}

	db.DB.Preload("User").First(&post, post.ID)

	// 主操作已提交，声望与计数器异步结算
	rep := services.GetReputationService()
	rep.ScheduleAction(user.ID, services.ActionPostCreated)
	rep.ScheduleStat(user.ID, services.StatTotalPosts, 1)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"post":    post,
	})
}

// Feed - GET /api/posts/feed?page=1&limit=10
func (h *PostHandler) Feed(c *gin.Context) {
	user := CurrentUser(c)
	page, limit, offset := pageParams(c)

	hidden := hiddenPostIDs(user.ID)

	query := db.DB.Model(&models.Post{}).Scopes(visibleScope(user.ID))
	if len(hidden) > 0 {
		query = query.Where("id NOT IN ?", hidden)
	}

	var total int64
	query.Count(&total)
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	var posts []models.Post
	listQuery := db.DB.Preload("User").Scopes(visibleScope(user.ID))
	if len(hidden) > 0 {
		listQuery = listQuery.Where("id NOT IN ?", hidden)
	}
	listQuery.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts)

	attachUserReactions(posts, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"posts":   posts,
		"pagination": gin.H{
			"currentPage":  page,
			"totalPages":   totalPages,
			"totalPosts":   total,
			"postsPerPage": limit,
			"hasNextPage":  page < totalPages,
			"hasPrevPage":  page > 1,
		},
	})
}

// Get - GET /api/posts/:id
func (h *PostHandler) Get(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.Preload("User").First(&post, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}

	// 私密帖只有作者和作者的好友可见
	if post.Visibility == models.VisibilityPrivate &&
		post.UserID != user.ID && !areFriends(user.ID, post.UserID) {
		JSONError(c, http.StatusForbidden, "You do not have permission to view this post")
		return
	}

	var reaction models.Reaction
	if err := db.DB.Where("post_id = ? AND user_id = ?", post.ID, user.ID).First(&reaction).Error; err == nil {
		post.UserReaction = reaction.Type
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post,
	})
}

// Update - PUT /api/posts/:id
func (h *PostHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}
	if post.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "Not authorized to update this post")
		return
	}

	if title := strings.TrimSpace(c.PostForm("title")); title != "" {
		if len(title) > 200 {
			JSONError(c, http.StatusBadRequest, "Title cannot exceed 200 characters")
			return
		}
		post.Title = title
	}
	if content := c.PostForm("content"); content != "" {
		if len(content) > 10000 {
			JSONError(c, http.StatusBadRequest, "Content cannot exceed 10000 characters")
			return
		}
		post.Content = sanitizeContent(content, post.ContentType)
	}
	if visibility := c.PostForm("visibility"); visibility != "" {
		if visibility != models.VisibilityPublic && visibility != models.VisibilityPrivate {
			JSONError(c, http.StatusBadRequest, "Invalid visibility")
			return
		}
		post.Visibility = visibility
	}
	if tags := c.PostFormArray("tags"); len(tags) > 0 {
		post.Tags = tags
	}

	// 保留客户端声明的现有图片，再追加新上传的
	images := c.PostFormArray("existingImages")
	newImages, err := services.SaveUploadedImages(c, "images")
	if err != nil {
		JSONError(c, http.StatusBadRequest, err.Error())
		return
	}
	if len(images) > 0 || len(newImages) > 0 {
		post.Images = append(images, newImages...)
	}

	if err := db.DB.Save(&post).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to update post")
		return
	}

	db.DB.Preload("User").First(&post, post.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"post":    post,
	})
}

// Delete - DELETE /api/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}
	if post.UserID != user.ID {
		JSONError(c, http.StatusForbidden, "Not authorized to delete this post")
		return
	}

	if err := db.DB.Delete(&post).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to delete post")
		return
	}

	rep := services.GetReputationService()
	rep.ScheduleAction(user.ID, services.ActionPostDeleted)
	rep.ScheduleStat(user.ID, services.StatTotalPosts, -1)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post deleted successfully",
	})
}

// Hide - POST /api/posts/:id/hide
func (h *PostHandler) Hide(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var post models.Post
	if err := db.DB.First(&post, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Post not found")
		return
	}

	var count int64
	db.DB.Model(&models.HiddenPost{}).
		Where("user_id = ? AND post_id = ?", user.ID, id).
		Count(&count)
	if count > 0 {
		JSONError(c, http.StatusBadRequest, "Post already hidden")
		return
	}

	if err := db.DB.Create(&models.HiddenPost{UserID: user.ID, PostID: id}).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to hide post")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post hidden from your feed",
	})
}

// Unhide - POST /api/posts/:id/unhide
func (h *PostHandler) Unhide(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	db.DB.Where("user_id = ? AND post_id = ?", user.ID, id).
		Delete(&models.HiddenPost{})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Post unhidden",
	})
}

// UserPosts - GET /api/posts/user/:userId
func (h *PostHandler) UserPosts(c *gin.Context) {
	user := CurrentUser(c)
	targetID := utils.StringToUint(c.Param("userId"))

	query := db.DB.Preload("User").Where("user_id = ?", targetID)

	// 非本人且非好友只能看公开帖
	if targetID != user.ID && !areFriends(user.ID, targetID) {
		query = query.Where("visibility = ?", models.VisibilityPublic)
	}

	var posts []models.Post
	query.Order("created_at DESC").Find(&posts)

	attachUserReactions(posts, user.ID)

	// 汇总被浏览用户的互动总量
	type totals struct {
		TotalReactions int `json:"totalReactions"`
		TotalComments  int `json:"totalComments"`
	}
	var stats totals
	db.DB.Model(&models.Post{}).
		Select("COALESCE(SUM(reactions_count),0) AS total_reactions, COALESCE(SUM(comments_count),0) AS total_comments").
		Where("user_id = ?", targetID).
		Scan(&stats)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(posts),
		"posts":   posts,
		"stats":   stats,
	})
}

// Search - GET /api/posts/search
func (h *PostHandler) Search(c *gin.Context) {
	user := CurrentUser(c)

	query := db.DB.Preload("User").Scopes(visibleScope(user.ID))

	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("title ILIKE ? OR content ILIKE ?", pattern, pattern)
	}

	// 标签过滤：JSON 数组列上做子串匹配（大小写不敏感）
	if tags := c.Query("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			query = query.Where("tags::text ILIKE ?", "%\""+tag+"\"%")
		}
	}

	if author := c.Query("author"); author != "" {
		var authorUser models.User
		if err := db.DB.Where("username ILIKE ?", author).First(&authorUser).Error; err == nil {
			query = query.Where("user_id = ?", authorUser.ID)
		} else {
			// 作者不存在时返回空结果，而不是忽略过滤条件
			query = query.Where("1 = 0")
		}
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if t, err := time.Parse("2006-01-02", dateFrom); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if dateTo := c.Query("dateTo"); dateTo != "" {
		if t, err := time.Parse("2006-01-02", dateTo); err == nil {
			query = query.Where("created_at <= ?", t)
		}
	}

	if minReactions := c.Query("minReactions"); minReactions != "" {
		if n, err := strconv.Atoi(minReactions); err == nil {
			query = query.Where("reactions_count >= ?", n)
		}
	}

	switch c.Query("sortBy") {
	case "oldest":
		query = query.Order("created_at ASC")
	case "mostReactions":
		query = query.Order("reactions_count DESC")
	case "mostComments":
		query = query.Order("comments_count DESC")
	default:
		query = query.Order("created_at DESC")
	}

	var posts []models.Post
	query.Limit(50).Find(&posts)

	attachUserReactions(posts, user.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(posts),
		"posts":   posts,
	})
}
