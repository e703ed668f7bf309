package dto

// Response 统一响应结构
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    any          `json:"data,omitempty"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// FieldError 参数校验失败的明细
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PageDTO 分页结果
type PageDTO struct {
	Items   any   `json:"items"`
	Total   int64 `json:"total"`
	Limit   int   `json:"limit"`
	Offset  int   `json:"offset"`
	HasMore bool  `json:"has_more"`
}
