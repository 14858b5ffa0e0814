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
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserBan           = errors.New("用户已被封禁")
	ErrUserExist         = errors.New("用户名或邮箱已被注册")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	ErrFileTooLarge      = errors.New("文件超过大小限制")
	ErrUserFollowSelf    = errors.New("用户不能关注自己")
	ErrUserFollowExist   = errors.New("用户已关注")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrPostNotOwned      = errors.New("只能删除自己的帖子")
	ErrActionDuplicate   = errors.New("重复操作")
	ErrReportNotFound    = errors.New("举报工单不存在")
	ErrReportClosed      = errors.New("工单已关闭，状态不可回退")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserBan:           Unauthorized,
	ErrUserExist:         BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrFileNotSupported:  BadRequest,
	ErrFileTooLarge:      BadRequest,
	ErrUserFollowSelf:    BadRequest,
	ErrUserFollowExist:   BadRequest,
	ErrPostNotFound:      NotFound,
	ErrPostNotOwned:      Forbidden,
	ErrActionDuplicate:   BadRequest,
	ErrReportNotFound:    NotFound,
	ErrReportClosed:      BadRequest,
	UnauthorizedError:    Forbidden,
	UnExpectedError:      InternalServerError,
}
