package response

import (
	"BiuBiuStar/internal/api/dto"
	"BiuBiuStar/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	BadRequest          = http.StatusBadRequest
	Unauthorized        = http.StatusUnauthorized
	Forbidden           = http.StatusForbidden
	NotFound            = http.StatusNotFound
	TooManyRequests     = http.StatusTooManyRequests
	InternalServerError = http.StatusInternalServerError
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{
		Success: false,
		Message: message,
	})
}

// FailWithErrors 参数校验失败时附带字段明细
func FailWithErrors(c *gin.Context, message string, fieldErrors []dto.FieldError) {
	c.JSON(http.StatusBadRequest, dto.Response{
		Success: false,
		Message: message,
		Errors:  fieldErrors,
	})
}

// Error 处理错误
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fieldErrors := make([]dto.FieldError, 0, len(ve))
		for _, fe := range ve {
			fieldErrors = append(fieldErrors, dto.FieldError{
				Field:   fe.Field(),
				Message: "校验规则 [" + fe.Tag() + "] 不满足",
			})
		}
		FailWithErrors(c, "参数错误", fieldErrors)
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	status, ok := service.ErrorMap[err]
	if !ok {
		status = InternalServerError
		log.ErrorContext(c.Request.Context(), "Error", "err", err)
		Fail(c, status, "系统异常，请稍后重试")
		return
	}
	Fail(c, status, err.Error())
}
