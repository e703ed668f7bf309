package util

import (
	"BiuBiuStar/internal/pkg/consts"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetPagination 从 query 解析 limit/offset，越界取默认值
func GetPagination(c *gin.Context) (int, int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(consts.DefaultPageSize)))
	if err != nil || limit <= 0 {
		limit = consts.DefaultPageSize
	}
	if limit > consts.MaxPageSize {
		limit = consts.MaxPageSize
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// GetSafeContentType 基于文件头嗅探真实类型，不信任客户端声明
func GetSafeContentType(file multipart.File) (string, error) {
	buf := make([]byte, 512)
	n, err := file.Read(buf)
	if err != nil && err != io.EOF {
		return "", err
	}
	if _, err = file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(buf[:n]), nil
}
