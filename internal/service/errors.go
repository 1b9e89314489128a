package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid          = errors.New("参数错误")
	ErrArticleNotFound       = errors.New("文章不存在")
	ErrActionNotSupported    = errors.New("不支持的互动类型")
	ErrDependencyUnavailable = errors.New("依赖服务不可用")
	ErrRecommendUnavailable  = errors.New("推荐暂不可用")
	UnauthorizedError        = errors.New("权限不足")
	UnExpectedError          = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:          BadRequest,
	ErrArticleNotFound:       NotFound,
	ErrActionNotSupported:    BadRequest,
	ErrDependencyUnavailable: ServiceUnavailable,
	ErrRecommendUnavailable:  ServiceUnavailable,
	UnauthorizedError:        Unauthorized,
	UnExpectedError:          InternalServerError,
}
