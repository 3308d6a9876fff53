package services

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	maxUploadSize  = 5 << 20 // 5MB
	maxImagesCount = 5
)

// 允许的扩展名：图片 + 常见文档
var allowedExtensions = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
}

func uploadDir() string {
	dir := os.Getenv("UPLOAD_PATH")
	if dir == "" {
		dir = "uploads"
	}
	return dir
}

// AllowedUpload 校验文件名扩展是否在白名单内
func AllowedUpload(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// SaveUploadedImages 保存表单中的图片文件，返回可访问的相对路径列表。
// 超过数量上限的文件忽略，非法类型或超限大小返回错误。
func SaveUploadedImages(c *gin.Context, field string) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// 非 multipart 请求（纯 JSON 提交）不是错误，只是没有文件
		return nil, nil
	}

	files := form.File[field]
	if len(files) > maxImagesCount {
		files = files[:maxImagesCount]
	}

	if err := os.MkdirAll(uploadDir(), 0o755); err != nil {
		return nil, err
	}

	var paths []string
	for _, file := range files {
		path, err := saveOne(c, file)
		if err != nil {
			return nil, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func saveOne(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if file.Size > maxUploadSize {
		return "", fmt.Errorf("file %s exceeds 5MB limit", file.Filename)
	}
	if !AllowedUpload(file.Filename) {
		return "", fmt.Errorf("invalid file type: %s", file.Filename)
	}

	// 重命名为 uuid，避免路径注入和重名覆盖
	name := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(uploadDir(), name)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}
