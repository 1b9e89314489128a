package response

import (
	"Pressroom/internal/api/dto"
	"Pressroom/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

const (
	Ok                  = 200
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

// Success 成功返回封装
func Success(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, dto.Response{
		Code:    Ok,
		Message: "success",
		Data:    data,
	})
}

// Fail 业务错误同样返回 HTTP 200，错误码放在 code 字段
func Fail(c *gin.Context, businessCode int, message string) {
	c.JSON(http.StatusOK, dto.Response{
		Code:    businessCode,
		Message: message,
	})
}

// Error 按错误类型映射业务码，未知错误只记日志不外泄细节
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, BadRequest, "参数错误")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, BadRequest, "Json错误")
		return
	}

	if sentinel, code, ok := lookup(err); ok {
		Fail(c, code, sentinel.Error())
		return
	}

	log.ErrorContext(c.Request.Context(), "unexpected error", "err", err, "path", c.FullPath())
	Fail(c, InternalServerError, service.UnExpectedError.Error())
}

// lookup 支持被 %w 包装过的哨兵错误
func lookup(err error) (error, int, bool) {
	for sentinel, code := range service.ErrorMap {
		if errors.Is(err, sentinel) {
			return sentinel, code, true
		}
	}
	return nil, 0, false
}
