package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserBan             = errors.New("用户已被封禁")
	ErrUserBanSelf         = errors.New("不能封禁自己")
	ErrEmailExist          = errors.New("邮箱已被注册")
	ErrUsernameExist       = errors.New("用户名已存在")
	ErrCredentialIncorrect = errors.New("邮箱或密码错误")
	ErrUserFollowExist     = errors.New("已关注该用户")
	ErrUserFollowSelf      = errors.New("不能关注自己")
	ErrRoleForbidden       = errors.New("权限不足：仅超级管理员可授予管理员角色")
	ErrRoleInvalid         = errors.New("无效的角色")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrPostReviewed        = errors.New("帖子不存在或已审核")
	ErrNotPostOwner        = errors.New("只有作者可以删除帖子")
	ErrLikeExist           = errors.New("已点赞该帖子")
	ErrCommentNotFound     = errors.New("评论不存在")
	ErrEventNotFound       = errors.New("活动不存在")
	ErrNotOrganizer        = errors.New("只有组织者可以操作该活动")
	ErrEventTimeInvalid    = errors.New("结束时间必须晚于开始时间")
	ErrEventStarted        = errors.New("活动已开始")
	ErrEventFull           = errors.New("活动报名人数已满")
	ErrEventJoinExist      = errors.New("已报名该活动")
	ErrContactDuplicate    = errors.New("24小时内已提交过联系表单")
	ErrRateLimited         = errors.New("操作过于频繁，请稍后重试")
	ErrFileNotSupported    = errors.New("不支持的文件类型")
	ErrFileTooLarge        = errors.New("文件大小超出限制")
	UnauthorizedError      = errors.New("未登录或登录已过期")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

// ErrorMap 业务错误到 HTTP 状态码的映射
var ErrorMap = map[error]int{
	ErrParamInvalid:        http.StatusBadRequest,
	ErrUserNotFound:        http.StatusNotFound,
	ErrUserBan:             http.StatusForbidden,
	ErrUserBanSelf:         http.StatusBadRequest,
	ErrEmailExist:          http.StatusBadRequest,
	ErrUsernameExist:       http.StatusBadRequest,
	ErrCredentialIncorrect: http.StatusUnauthorized,
	ErrUserFollowExist:     http.StatusBadRequest,
	ErrUserFollowSelf:      http.StatusBadRequest,
	ErrRoleForbidden:       http.StatusForbidden,
	ErrRoleInvalid:         http.StatusBadRequest,
	ErrPostNotFound:        http.StatusNotFound,
	ErrPostReviewed:        http.StatusNotFound,
	ErrNotPostOwner:        http.StatusForbidden,
	ErrLikeExist:           http.StatusBadRequest,
	ErrCommentNotFound:     http.StatusNotFound,
	ErrEventNotFound:       http.StatusNotFound,
	ErrNotOrganizer:        http.StatusForbidden,
	ErrEventTimeInvalid:    http.StatusBadRequest,
	ErrEventStarted:        http.StatusBadRequest,
	ErrEventFull:           http.StatusBadRequest,
	ErrEventJoinExist:      http.StatusBadRequest,
	ErrContactDuplicate:    http.StatusTooManyRequests,
	ErrRateLimited:         http.StatusTooManyRequests,
	ErrFileNotSupported:    http.StatusBadRequest,
	ErrFileTooLarge:        http.StatusBadRequest,
	UnauthorizedError:      http.StatusUnauthorized,
	UnExpectedError:        http.StatusInternalServerError,
}
