package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid     = errors.New("参数错误")
	ErrNotAuthenticated = errors.New("未登录")
	ErrUserNotFound     = errors.New("用户不存在")
	ErrUsernameFormat   = errors.New("用户名只能包含字母、数字、下划线和连字符")
	ErrUsernameLength   = errors.New("用户名长度需在 3 到 20 个字符之间")
	ErrUsernameTaken    = errors.New("username is already taken")
	ErrUserFollowExist  = errors.New("用户已关注")
	ErrUserFollowLimit  = errors.New("用户关注数量超过限制")
	ErrUserFollowSelf   = errors.New("用户不能关注自己")
	ErrPostNotFound     = errors.New("帖子不存在")
	ErrPostScheduleTime = errors.New("定时发布时间必须晚于当前时间")
	ErrCommentNotFound  = errors.New("评论不存在")
	ErrCommentEmpty     = errors.New("评论内容不能为空")
	UnauthorizedError   = errors.New("权限不足")
	UnExpectedError     = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:     BadRequest,
	ErrNotAuthenticated: Unauthorized,
	ErrUserNotFound:     NotFound,
	ErrUsernameFormat:   BadRequest,
	ErrUsernameLength:   BadRequest,
	ErrUsernameTaken:    BadRequest,
	ErrUserFollowExist:  BadRequest,
	ErrUserFollowLimit:  BadRequest,
	ErrUserFollowSelf:   BadRequest,
	ErrPostNotFound:     NotFound,
	ErrPostScheduleTime: BadRequest,
	ErrCommentNotFound:  NotFound,
	ErrCommentEmpty:     BadRequest,
	UnauthorizedError:   Forbidden,
	UnExpectedError:     InternalServerError,
}
