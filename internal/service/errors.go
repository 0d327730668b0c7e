package service

import (
	"errors"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrFollowSelf        = errors.New("用户不能关注自己")
	ErrFollowLimit       = errors.New("用户关注数量超过限制")
	ErrIncompleteAnswers = errors.New("问卷回答不完整")
	ErrDuplicateEvent    = errors.New("重复的通知事件")
	ErrPlaylistNotFound  = errors.New("餐厅清单不存在")
	ErrRestaurantExist   = errors.New("餐厅已在清单中")
	ErrSyncRejected      = errors.New("服务器拒绝了本次同步")
	UnauthorizedError    = errors.New("权限不足")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrFollowSelf:        BadRequest,
	ErrFollowLimit:       BadRequest,
	ErrIncompleteAnswers: BadRequest,
	ErrDuplicateEvent:    BadRequest,
	ErrPlaylistNotFound:  NotFound,
	ErrRestaurantExist:   BadRequest,
	ErrSyncRejected:      BadRequest,
	UnauthorizedError:    Unauthorized,
	UnExpectedError:      InternalServerError,
}
