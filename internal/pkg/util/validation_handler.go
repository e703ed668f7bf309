package util

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验 DTO，直接返回 validator 的错误，由 response.Error 展开为字段明细
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}
