package handlers

import (
	"net/http"
	"strings"
	"talknfix/internal/db"
	"talknfix/internal/models"
	"talknfix/internal/utils"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct{}

func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{}
}

// List - GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	var projects []models.Project
	db.DB.Preload("Owner").Preload("Collaborators").
		Order("updated_at DESC").
		Find(&projects)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": projects,
	})
}

// Get - GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var project models.Project
	if err := db.DB.Preload("Owner").Preload("Collaborators").
		Preload("Updates").Preload("Updates.User").
		First(&project, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": project,
	})
}

// ByUser - GET /api/projects/user/:userId
func (h *ProjectHandler) ByUser(c *gin.Context) {
	userID := utils.StringToUint(c.Param("userId"))

	var projects []models.Project
	db.DB.Preload("Owner").Preload("Collaborators").
		Where("owner_id = ?", userID).
		Order("updated_at DESC").
		Find(&projects)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"projects": projects,
	})
}

// Create - POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.Description == "" {
		JSONError(c, http.StatusBadRequest, "Title and description are required")
		return
	}
	if req.Status == "" {
		req.Status = models.ProjectStatusFuture
	}
	if !models.ValidProjectStatus(req.Status) {
		JSONError(c, http.StatusBadRequest, "Invalid project status")
		return
	}

	project := models.Project{
		OwnerID:     user.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	}
	if err := db.DB.Create(&project).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to create project")
		return
	}

	db.DB.Preload("Owner").First(&project, project.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"project": project,
	})
}

// Update - PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var project models.Project
	if err := db.DB.First(&project, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Project not found")
		return
	}
	if project.OwnerID != user.ID {
		JSONError(c, http.StatusForbidden, "Not authorized to update this project")
		return
	}

	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Status      string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Title != "" {
		project.Title = strings.TrimSpace(req.Title)
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	if req.Status != "" {
		if !models.ValidProjectStatus(req.Status) {
			JSONError(c, http.StatusBadRequest, "Invalid project status")
			return
		}
		project.Status = req.Status
	}

	if err := db.DB.Save(&project).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to update project")
		return
	}

	db.DB.Preload("Owner").Preload("Collaborators").First(&project, project.ID)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"project": project,
	})
}

// Delete - DELETE /api/projects/:id
func (h *ProjectHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var project models.Project
	if err := db.DB.First(&project, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Project not found")
		return
	}
	if project.OwnerID != user.ID {
		JSONError(c, http.StatusForbidden, "Not authorized to delete this project")
		return
	}

	if err := db.DB.Select("Updates", "Collaborators").Delete(&project).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to delete project")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}

// AddUpdate - POST /api/projects/:id/updates
// 项目拥有者和协作者都可以记录进展
func (h *ProjectHandler) AddUpdate(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var project models.Project
	if err := db.DB.Preload("Collaborators").First(&project, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Project not found")
		return
	}

	allowed := project.OwnerID == user.ID
	for _, collaborator := range project.Collaborators {
		if collaborator.ID == user.ID {
			allowed = true
			break
		}
	}
	if !allowed {
		JSONError(c, http.StatusForbidden, "Not authorized to update this project")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Please provide content")
		return
	}

	update := models.ProjectUpdate{
		ProjectID: project.ID,
		UserID:    user.ID,
		Content:   req.Content,
	}
	if err := db.DB.Create(&update).Error; err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to add update")
		return
	}

	// 刷新项目的 updated_at
	db.DB.Model(&project).Update("updated_at", update.CreatedAt)

	db.DB.Preload("User").First(&update, update.ID)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"update":  update,
	})
}

// AddCollaborator - POST /api/projects/:id/collaborators
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var project models.Project
	if err := db.DB.Preload("Collaborators").First(&project, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Project not found")
		return
	}
	if project.OwnerID != user.ID {
		JSONError(c, http.StatusForbidden, "Only the owner can add collaborators")
		return
	}

	var req struct {
		UserID uint `json:"userId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		JSONError(c, http.StatusBadRequest, "Please provide userId")
		return
	}

	if req.UserID == project.OwnerID {
		JSONError(c, http.StatusBadRequest, "Owner is already part of the project")
		return
	}
	for _, collaborator := range project.Collaborators {
		if collaborator.ID == req.UserID {
			JSONError(c, http.StatusBadRequest, "User is already a collaborator")
			return
		}
	}

	var collaborator models.User
	if err := db.DB.First(&collaborator, req.UserID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := db.DB.Model(&project).Association("Collaborators").Append(&collaborator); err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to add collaborator")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Collaborator added",
	})
}

// RemoveCollaborator - DELETE /api/projects/:id/collaborators/:userId
func (h *ProjectHandler) RemoveCollaborator(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))
	collaboratorID := utils.StringToUint(c.Param("userId"))

	var project models.Project
	if err := db.DB.First(&project, id).Error; err != nil {
		JSONError(c, http.StatusNotFound, "Project not found")
		return
	}
	if project.OwnerID != user.ID {
		JSONError(c, http.StatusForbidden, "Only the owner can remove collaborators")
		return
	}

	var collaborator models.User
	if err := db.DB.First(&collaborator, collaboratorID).Error; err != nil {
		JSONError(c, http.StatusNotFound, "User not found")
		return
	}

	if err := db.DB.Model(&project).Association("Collaborators").Delete(&collaborator); err != nil {
		JSONError(c, http.StatusInternalServerError, "Failed to remove collaborator")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Collaborator removed",
	})
}
