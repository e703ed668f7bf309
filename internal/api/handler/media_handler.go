package handler

import (
	"BiuBiuStar/internal/pkg/consts"
	"BiuBiuStar/internal/pkg/minio"
	"BiuBiuStar/internal/pkg/response"
	"BiuBiuStar/internal/pkg/util"
	"BiuBiuStar/internal/service"
	log "log/slog"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type MediaHandler struct {
	maxSize int64
}

func NewMediaHandler(maxSize int64) *MediaHandler {
	if maxSize <= 0 {
		maxSize = 10 << 20
	}
	return &MediaHandler{maxSize: maxSize}
}

// Upload 只接受图片，类型按文件头嗅探，不信客户端声明
func (s *MediaHandler) Upload(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if file.Size > s.maxSize {
		response.Error(c, service.ErrFileTooLarge)
		return
	}

	reader, err := file.Open()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	defer func() { _ = reader.Close() }()

	contentType, err := util.GetSafeContentType(reader)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		response.Error(c, service.ErrFileNotSupported)
		return
	}

	ext := path.Ext(file.Filename)
	objectName := time.Now().Format("2006/01/02/") + uuid.NewString() + ext

	fileKey, err := minio.UploadFile(c.Request.Context(), objectName, reader, file.Size, contentType)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO upload failed", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}

	response.Success(c, map[string]string{
		"key": fileKey,
		"url": minio.GetPublicURL(fileKey),
	})
}

// Delete 按 key 删除对象，仅后台使用
func (s *MediaHandler) Delete(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	if key == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := minio.DeleteFile(c.Request.Context(), key); err != nil {
		log.ErrorContext(c.Request.Context(), "MinIO delete failed", "key", key, "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}
	response.Success(c, nil)
}
